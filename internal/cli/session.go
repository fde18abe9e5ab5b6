package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamingclub/internal/auth"
	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/notify"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Login prompts for credentials. "login -r" (or --remember) keeps the
// session for 30 days instead of 24 hours.
func (a *App) Login(ctx context.Context, args []string) error {
	remember := false
	for _, arg := range args {
		switch arg {
		case "-r", "--remember":
			remember = true
		default:
			return fmt.Errorf("usage: login [-r|--remember]")
		}
	}

	d, who, err := a.auth.Guard(ctx, auth.SurfaceLogin)
	if err != nil {
		return err
	}
	if d == auth.RedirectToAdmin {
		fmt.Fprintf(a.out, "Already logged in as %s.\n", who.Username)
		return nil
	}

	username, err := getSimpleText(a.in, "Username", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.in, a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	view, err := a.auth.Login(ctx, auth.LoginInput{Username: username, Password: password, RememberMe: remember})
	if err != nil {
		if errors.Is(err, common.ErrAuth) {
			a.notify(notify.LevelError, "Login failed", err.Error())
			return nil
		}
		return err
	}

	a.notify(notify.LevelSuccess, "Welcome", view.Username)
	return nil
}

func (a *App) Logout(ctx context.Context, _ []string) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Logged out.")
	return nil
}

func (a *App) WhoAmI(ctx context.Context, _ []string) error {
	who, err := a.auth.Current(ctx)
	if err != nil {
		return err
	}
	if who == nil {
		fmt.Fprintln(a.out, "Not logged in.")
		return nil
	}
	renderAccount(a.out, *who)
	return nil
}

// requireAdmin runs the admin surface check.
func (a *App) requireAdmin(ctx context.Context) error {
	d, _, err := a.auth.Guard(ctx, auth.SurfaceAdmin)
	if err != nil {
		return err
	}
	if d == auth.RedirectToLogin {
		return fmt.Errorf("%w: log in as an administrator first", common.ErrForbidden)
	}
	return nil
}
