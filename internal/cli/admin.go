package cli

import (
	"context"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/gamingclub/internal/catalog"
	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/models"
	"github.com/dmitrijs2005/gamingclub/internal/notify"
)

// askField prompts with the current value in brackets; an empty answer
// keeps it.
func (a *App) askField(label, current string) (string, error) {
	prompt := label
	if current != "" {
		prompt = fmt.Sprintf("%s [%s]", label, current)
	}
	s, err := getSimpleText(a.in, prompt, a.out)
	if err != nil {
		return "", err
	}
	if s == "" {
		return current, nil
	}
	return s, nil
}

func (a *App) askProduct(ctx context.Context, in catalog.ProductInput) (catalog.ProductInput, error) {
	var err error
	if in.Name, err = a.askField("Name", in.Name); err != nil {
		return in, err
	}
	if in.Description, err = a.askField("Description", in.Description); err != nil {
		return in, err
	}

	price := ""
	if in.ID != 0 {
		price = strconv.FormatFloat(in.Price, 'f', 2, 64)
	}
	if price, err = a.askField("Price", price); err != nil {
		return in, err
	}
	if in.Price, err = parsePrice(price); err != nil {
		return in, err
	}

	names := make([]string, len(models.Categories))
	for i, c := range models.Categories {
		names[i] = string(c)
	}
	cat, err := a.askField("Category ("+strings.Join(names, ", ")+")", string(in.Category))
	if err != nil {
		return in, err
	}
	in.Category = models.Category(strings.ToLower(cat))

	path, err := a.askField("Image file (empty to skip)", "")
	if err != nil {
		return in, err
	}
	if path != "" {
		if in.Image, err = a.encodeImage(ctx, path); err != nil {
			return in, err
		}
	}
	return in, nil
}

// parsePrice accepts "12.50" and "12,50". Anything else fails before the
// product is saved.
func parsePrice(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, common.NewValidationError(map[string]string{"price": "price is required"})
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0, common.NewValidationError(map[string]string{"price": "enter a valid price"})
	}
	return v, nil
}

func (a *App) encodeImage(ctx context.Context, path string) (string, error) {
	data, err := a.readFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	uri, err := a.images.Encode(ctx, filepath.Base(path), data)
	if err != nil {
		return "", fmt.Errorf("encode image: %w", err)
	}
	return uri, nil
}

func (a *App) AdminAdd(ctx context.Context, _ []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	in, err := a.askProduct(ctx, catalog.ProductInput{})
	if err != nil {
		return err
	}
	p, err := a.catalog.Upsert(ctx, in)
	if err != nil {
		return err
	}
	a.notify(notify.LevelSuccess, "Product created", fmt.Sprintf("#%d %s", p.ID, p.Name))
	return nil
}

func (a *App) AdminEdit(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	id, err := parseID(args, "admin-edit <product id>")
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

	in, err := a.askProduct(ctx, catalog.ProductInput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
	})
	if err != nil {
		return err
	}
	if _, err := a.catalog.Upsert(ctx, in); err != nil {
		return err
	}
	a.notify(notify.LevelSuccess, "Product updated", fmt.Sprintf("#%d %s", p.ID, in.Name))
	return nil
}

func (a *App) AdminDelete(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	id, err := parseID(args, "admin-delete <product id>")
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
	yes, err := confirm(a.in, fmt.Sprintf("Delete %q?", p.Name), a.out)
	if err != nil || !yes {
		return err
	}
	if err := a.catalog.Remove(ctx, id); err != nil {
		return err
	}
	a.notify(notify.LevelSuccess, "Product deleted", p.Name)
	return nil
}

// AdminImage replaces a product image: "admin-image <id> <file>".
func (a *App) AdminImage(ctx context.Context, args []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	if len(args) != 2 {
		return fmt.Errorf("usage: admin-image <product id> <file>")
	}
	id, err := parseID(args, "")
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

	uri, err := a.encodeImage(ctx, args[1])
	if err != nil {
		return err
	}
	if _, err := a.catalog.Upsert(ctx, catalog.ProductInput{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Category:    p.Category,
		Image:       uri,
	}); err != nil {
		return err
	}
	a.notify(notify.LevelSuccess, "Image updated", p.Name)
	return nil
}

func (a *App) Stats(ctx context.Context, _ []string) error {
	if err := a.requireAdmin(ctx); err != nil {
		return err
	}
	st, err := a.catalog.Stats(ctx)
	if err != nil {
		return err
	}
	renderStats(a.out, st)
	return nil
}
