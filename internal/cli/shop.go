package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gamingclub/internal/cart"
	"github.com/dmitrijs2005/gamingclub/internal/catalog"
	"github.com/dmitrijs2005/gamingclub/internal/models"
	"github.com/dmitrijs2005/gamingclub/internal/notify"
)

func parseID(args []string, usage string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("usage: %s", usage)
	}
	id, err := strconv.Atoi(args[0])
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid product id %q", args[0])
	}
	return id, nil
}

// Products lists the catalog, optionally narrowed to one category.
func (a *App) Products(ctx context.Context, args []string) error {
	f := catalog.Filter{Category: catalog.CategoryAll}
	if len(args) > 0 {
		c := models.Category(strings.ToLower(args[0]))
		if !c.Valid() && string(c) != catalog.CategoryAll {
			return fmt.Errorf("unknown category %q, see 'categories'", args[0])
		}
		f.Category = string(c)
	}
	products, err := a.catalog.Filter(ctx, f)
	if err != nil {
		return err
	}
	a.listProducts(products)
	return nil
}

// Search matches the query against product names and descriptions.
func (a *App) Search(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: search <text>")
	}
	products, err := a.catalog.Filter(ctx, catalog.Filter{Query: strings.Join(args, " ")})
	if err != nil {
		return err
	}
	a.listProducts(products)
	return nil
}

func (a *App) Categories(ctx context.Context, _ []string) error {
	st, err := a.catalog.Stats(ctx)
	if err != nil {
		return err
	}
	for _, c := range models.Categories {
		fmt.Fprintf(a.out, "  %-12s %-14s %d\n", c, c.Title(), st.ByCategory[c])
	}
	return nil
}

func (a *App) Show(ctx context.Context, args []string) error {
	id, err := parseID(args, "show <product id>")
	if err != nil {
		return err
	}
	p, ok, err := a.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %d not found", id)
	}
	renderProduct(a.out, p)
	return nil
}

func (a *App) Add(ctx context.Context, args []string) error {
	id, err := parseID(args, "add <product id>")
	if err != nil {
		return err
	}
	ok, err := a.cart.Add(ctx, id)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("product %d not found", id)
	}
	p, _, err := a.catalog.Get(ctx, id)
	if err != nil {
		return err
	}
	a.notify(notify.LevelSuccess, "Added to cart", p.Name)
	return nil
}

func (a *App) adjust(ctx context.Context, args []string, delta int, usage string) error {
	id, err := parseID(args, usage)
	if err != nil {
		return err
	}
	if err := a.cart.AdjustQuantity(ctx, id, delta); err != nil {
		return err
	}
	return a.Cart(ctx, nil)
}

func (a *App) Inc(ctx context.Context, args []string) error {
	return a.adjust(ctx, args, 1, "inc <product id>")
}

func (a *App) Dec(ctx context.Context, args []string) error {
	return a.adjust(ctx, args, -1, "dec <product id>")
}

func (a *App) Remove(ctx context.Context, args []string) error {
	id, err := parseID(args, "remove <product id>")
	if err != nil {
		return err
	}
	if err := a.cart.Remove(ctx, id); err != nil {
		return err
	}
	return a.Cart(ctx, nil)
}

func (a *App) Cart(ctx context.Context, _ []string) error {
	items, err := a.cart.Items(ctx)
	if err != nil {
		return err
	}
	renderCart(a.out, items, cart.Subtotal(items))
	return nil
}

// Notifications lists active notifications with their ids, or dismisses
// one: "notifications dismiss <id>".
func (a *App) Notifications(_ context.Context, args []string) error {
	if len(args) > 0 {
		if args[0] != "dismiss" || len(args) != 2 {
			return fmt.Errorf("usage: notifications [dismiss <id>]")
		}
		id, err := strconv.Atoi(args[1])
		if err != nil || id <= 0 {
			return fmt.Errorf("invalid notification id %q", args[1])
		}
		if !a.notes.Dismiss(id) {
			return fmt.Errorf("notification %d not found", id)
		}
		fmt.Fprintf(a.out, "Notification #%d dismissed.\n", id)
		return nil
	}

	active := a.notes.Active()
	if len(active) == 0 {
		fmt.Fprintln(a.out, "No notifications.")
		return nil
	}
	for _, n := range active {
		fmt.Fprintf(a.out, "#%d %s\n", n.ID, formatNotification(n))
	}
	return nil
}
