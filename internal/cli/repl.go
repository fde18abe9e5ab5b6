package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dmitrijs2005/gamingclub/internal/common"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the command surface the REPL needs. The real App type
// satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	isAdmin() bool

	Products(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Categories(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Add(ctx context.Context, args []string) error
	Inc(ctx context.Context, args []string) error
	Dec(ctx context.Context, args []string) error
	Remove(ctx context.Context, args []string) error
	Cart(ctx context.Context, args []string) error
	Checkout(ctx context.Context, args []string) error
	Login(ctx context.Context, args []string) error
	Logout(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context, args []string) error
	AdminAdd(ctx context.Context, args []string) error
	AdminEdit(ctx context.Context, args []string) error
	AdminDelete(ctx context.Context, args []string) error
	AdminImage(ctx context.Context, args []string) error
	Stats(ctx context.Context, args []string) error
	Notifications(ctx context.Context, args []string) error
}

const (
	helpShop  = "Shop: products [category], search <text>, categories, show <id>, add <id>, inc <id>, dec <id>, remove <id>, cart, checkout, notifications [dismiss <id>]"
	helpGuest = "Account: login [-r], exit"
	helpUser  = "Account: whoami, logout, exit"
	helpAdmin = "Admin: admin-add, admin-edit <id>, admin-delete <id>, admin-image <id> <file>, stats"
)

func helpText(loggedIn, admin bool) string {
	lines := []string{helpShop}
	if loggedIn {
		lines = append(lines, helpUser)
	} else {
		lines = append(lines, helpGuest)
	}
	if admin {
		lines = append(lines, helpAdmin)
	}
	return strings.Join(lines, "\n")
}

// describe turns a command error into the line shown to the user.
func describe(err error) string {
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		parts := make([]string, 0, len(ve.Fields))
		for _, f := range ve.Fields {
			parts = append(parts, f.Message)
		}
		return strings.Join(parts, "; ")
	}
	return err.Error()
}

// runREPL reads commands from scanner until EOF, "exit" or "quit", and
// dispatches them to a. The prompt shows statusFn. Command errors are
// printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gamingclub %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		var err error
		switch cmd {
		case "help", "?":
			printlnFn(helpText(a.isLoggedIn(), a.isAdmin()))

		case "products", "p", "list":
			err = a.Products(ctx, args)
		case "search":
			err = a.Search(ctx, args)
		case "categories":
			err = a.Categories(ctx, args)
		case "show":
			err = a.Show(ctx, args)

		case "add":
			err = a.Add(ctx, args)
		case "inc":
			err = a.Inc(ctx, args)
		case "dec":
			err = a.Dec(ctx, args)
		case "remove", "rm":
			err = a.Remove(ctx, args)
		case "cart":
			err = a.Cart(ctx, args)
		case "checkout":
			err = a.Checkout(ctx, args)

		case "login":
			err = a.Login(ctx, args)
		case "logout":
			err = a.Logout(ctx, args)
		case "whoami":
			err = a.WhoAmI(ctx, args)

		case "admin-add":
			err = a.AdminAdd(ctx, args)
		case "admin-edit":
			err = a.AdminEdit(ctx, args)
		case "admin-delete":
			err = a.AdminDelete(ctx, args)
		case "admin-image":
			err = a.AdminImage(ctx, args)
		case "stats":
			err = a.Stats(ctx, args)

		case "notifications", "n":
			err = a.Notifications(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}

		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			printlnFn("Error:", describe(err))
		}
	}
}

// Run starts the catalog watcher and the REPL and blocks until the user
// leaves or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	go a.watcher.Run(ctx)

	fmt.Fprintln(a.out, "Welcome to GamingClub (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.in)
}
