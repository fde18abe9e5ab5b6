// Package cart implements the shopping cart store. Every mutation rewrites
// the whole "cart" document and keeps two rules: each line has quantity >= 1
// and no two lines share a product id.
package cart

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/kv"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/models"
)

// ProductFinder resolves product ids when adding to the cart.
// *catalog.Service satisfies it.
type ProductFinder interface {
	Get(ctx context.Context, id int) (models.Product, bool, error)
}

type Service struct {
	repo     kv.Repository
	products ProductFinder
	logger   logging.Logger
}

func NewService(repo kv.Repository, products ProductFinder, logger logging.Logger) *Service {
	return &Service{repo: repo, products: products, logger: logger.With("component", "cart")}
}

// Items returns the current line items. A missing or malformed document
// reads as an empty cart.
func (s *Service) Items(ctx context.Context) ([]models.LineItem, error) {
	var items []models.LineItem
	_, err := kv.LoadJSON(ctx, s.repo, common.KeyCart, &items)
	if errors.Is(err, kv.ErrMalformed) {
		s.logger.Warn(ctx, "cart document is malformed, treating as empty", "error", err)
		return []models.LineItem{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load cart: %w", err)
	}
	if items == nil {
		items = []models.LineItem{}
	}
	return items, nil
}

// Add puts one unit of the product into the cart. It reports false when the
// product does not exist, in which case the cart is unchanged.
func (s *Service) Add(ctx context.Context, productID int) (bool, error) {
	p, ok, err := s.products.Get(ctx, productID)
	if err != nil {
		return false, err
	}
	if !ok {
		s.logger.Debug(ctx, "add ignored, unknown product", "product_id", productID)
		return false, nil
	}

	items, err := s.Items(ctx)
	if err != nil {
		return false, err
	}

	if i := indexOf(items, productID); i >= 0 {
		items[i].Quantity++
	} else {
		items = append(items, models.LineItem{
			ProductID: p.ID,
			Name:      p.Name,
			Price:     p.Price,
			Image:     p.Image,
			Quantity:  1,
		})
	}

	if err := s.save(ctx, items); err != nil {
		return false, err
	}
	return true, nil
}

// AdjustQuantity changes the quantity of a line by delta. A resulting
// quantity of zero or less removes the line. Unknown products are ignored.
func (s *Service) AdjustQuantity(ctx context.Context, productID, delta int) error {
	items, err := s.Items(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, productID)
	if i < 0 {
		return nil
	}

	items[i].Quantity += delta
	if items[i].Quantity <= 0 {
		items = append(items[:i], items[i+1:]...)
	}
	return s.save(ctx, items)
}

// Remove deletes the line for productID, if any.
func (s *Service) Remove(ctx context.Context, productID int) error {
	items, err := s.Items(ctx)
	if err != nil {
		return err
	}
	i := indexOf(items, productID)
	if i < 0 {
		return nil
	}
	return s.save(ctx, append(items[:i], items[i+1:]...))
}

// Total is the sum of price * quantity over all lines.
func (s *Service) Total(ctx context.Context) (float64, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return Subtotal(items), nil
}

// Count is the number of units in the cart.
func (s *Service) Count(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, it := range items {
		n += it.Quantity
	}
	return n, nil
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	if err := s.repo.Delete(ctx, common.KeyCart); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	s.logger.Info(ctx, "cart cleared")
	return nil
}

// Subtotal sums price * quantity.
func Subtotal(items []models.LineItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	return total
}

func (s *Service) save(ctx context.Context, items []models.LineItem) error {
	if err := kv.SaveJSON(ctx, s.repo, common.KeyCart, items); err != nil {
		return fmt.Errorf("save cart: %w", err)
	}
	return nil
}

func indexOf(items []models.LineItem, productID int) int {
	for i, it := range items {
		if it.ProductID == productID {
			return i
		}
	}
	return -1
}
