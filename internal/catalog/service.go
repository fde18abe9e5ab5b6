// Package catalog implements the product catalog store on top of the
// key-value substrate.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/dmitrijs2005/gamingclub/internal/common"
	"github.com/dmitrijs2005/gamingclub/internal/kv"
	"github.com/dmitrijs2005/gamingclub/internal/logging"
	"github.com/dmitrijs2005/gamingclub/internal/models"
)

// CategoryAll matches every category in Filter.
const CategoryAll = "all"

// Filter narrows List. Zero values match everything.
type Filter struct {
	Category string
	Query    string
}

// ProductInput is what the admin form submits. A zero ID creates a product.
type ProductInput struct {
	ID          int
	Name        string
	Description string
	Price       float64
	Category    models.Category
	Image       string
}

// Stats summarises the catalog for the admin dashboard.
type Stats struct {
	Products   int                     `json:"products"`
	Categories int                     `json:"categories"`
	TotalValue float64                 `json:"totalValue"`
	ByCategory map[models.Category]int `json:"byCategory"`
}

// Service reads the catalog from storage on every call; it keeps no cache.
type Service struct {
	repo   kv.Repository
	logger logging.Logger
}

func NewService(repo kv.Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger.With("component", "catalog")}
}

// List returns all products. On first run the default catalog is written to
// storage. A malformed document reads as an empty catalog.
func (s *Service) List(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	found, err := kv.LoadJSON(ctx, s.repo, common.KeyProducts, &products)
	switch {
	case errors.Is(err, kv.ErrMalformed):
		s.logger.Warn(ctx, "catalog document is malformed, treating as empty", "error", err)
		return []models.Product{}, nil
	case err != nil:
		return nil, fmt.Errorf("load catalog: %w", err)
	case !found:
		products = DefaultProducts()
		if err := s.save(ctx, products); err != nil {
			return nil, err
		}
		s.logger.Info(ctx, "seeded default catalog", "products", len(products))
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Get returns the product with id.
func (s *Service) Get(ctx context.Context, id int) (models.Product, bool, error) {
	products, err := s.List(ctx)
	if err != nil {
		return models.Product{}, false, err
	}
	for _, p := range products {
		if p.ID == id {
			return p, true, nil
		}
	}
	return models.Product{}, false, nil
}

// Upsert creates a product when in.ID is zero, otherwise merges in over the
// stored product with that id. An empty in.Image keeps the stored image.
// Updating an unknown id returns common.ErrorNotFound and changes nothing.
func (s *Service) Upsert(ctx context.Context, in ProductInput) (models.Product, error) {
	if err := validate(in); err != nil {
		return models.Product{}, err
	}

	products, err := s.List(ctx)
	if err != nil {
		return models.Product{}, err
	}

	var saved models.Product
	if in.ID == 0 {
		saved = models.Product{
			ID:          nextID(products),
			Name:        in.Name,
			Description: in.Description,
			Price:       in.Price,
			Category:    in.Category,
			Image:       in.Image,
		}
		if saved.Image == "" {
			saved.Image = PlaceholderImage
		}
		products = append(products, saved)
	} else {
		idx := indexOf(products, in.ID)
		if idx < 0 {
			return models.Product{}, fmt.Errorf("product %d: %w", in.ID, common.ErrorNotFound)
		}
		saved = products[idx]
		saved.Name = in.Name
		saved.Description = in.Description
		saved.Price = in.Price
		saved.Category = in.Category
		if in.Image != "" {
			saved.Image = in.Image
		}
		products[idx] = saved
	}

	if err := s.save(ctx, products); err != nil {
		return models.Product{}, err
	}
	s.logger.Info(ctx, "product saved", "id", saved.ID, "category", saved.Category)
	return saved, nil
}

// Remove deletes the product with id. Unknown ids are ignored.
func (s *Service) Remove(ctx context.Context, id int) error {
	products, err := s.List(ctx)
	if err != nil {
		return err
	}
	idx := indexOf(products, id)
	if idx < 0 {
		return nil
	}
	products = append(products[:idx], products[idx+1:]...)
	if err := s.save(ctx, products); err != nil {
		return err
	}
	s.logger.Info(ctx, "product removed", "id", id)
	return nil
}

// Filter returns products in f.Category whose name or description contains
// f.Query, ignoring case. Order is preserved.
func (s *Service) Filter(ctx context.Context, f Filter) ([]models.Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	q := strings.ToLower(strings.TrimSpace(f.Query))
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if f.Category != "" && f.Category != CategoryAll && string(p.Category) != f.Category {
			continue
		}
		if q != "" &&
			!strings.Contains(strings.ToLower(p.Name), q) &&
			!strings.Contains(strings.ToLower(p.Description), q) {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Service) Stats(ctx context.Context) (Stats, error) {
	products, err := s.List(ctx)
	if err != nil {
		return Stats{}, err
	}
	st := Stats{Products: len(products), ByCategory: make(map[models.Category]int)}
	for _, p := range products {
		st.TotalValue += p.Price
		st.ByCategory[p.Category]++
	}
	st.Categories = len(st.ByCategory)
	return st, nil
}

// Reset replaces the stored catalog with the default products.
func (s *Service) Reset(ctx context.Context) ([]models.Product, error) {
	products := DefaultProducts()
	if err := s.save(ctx, products); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "catalog reset to defaults")
	return products, nil
}

type changeSource interface {
	Subscribe(fn func(kv.Change)) (unsubscribe func())
}

// Subscribe calls fn after every catalog write when the repository publishes
// changes (see kv.Observable). Otherwise it returns a no-op unsubscribe.
func (s *Service) Subscribe(fn func()) (unsubscribe func()) {
	o, ok := s.repo.(changeSource)
	if !ok {
		return func() {}
	}
	return o.Subscribe(func(c kv.Change) {
		if c.Key == common.KeyProducts || c.Op == kv.OpClear {
			fn()
		}
	})
}

func (s *Service) save(ctx context.Context, products []models.Product) error {
	if err := kv.SaveJSON(ctx, s.repo, common.KeyProducts, products); err != nil {
		return fmt.Errorf("save catalog: %w", err)
	}
	return nil
}

func validate(in ProductInput) error {
	fields := make(map[string]string)
	if strings.TrimSpace(in.Name) == "" {
		fields["name"] = "name is required"
	}
	if strings.TrimSpace(in.Description) == "" {
		fields["description"] = "description is required"
	}
	if in.Category == "" {
		fields["category"] = "category is required"
	} else if !in.Category.Valid() {
		fields["category"] = "unknown category"
	}
	if math.IsNaN(in.Price) || math.IsInf(in.Price, 0) || in.Price < 0 {
		fields["price"] = "price must be a non-negative number"
	}
	if len(fields) > 0 {
		return common.NewValidationError(fields)
	}
	return nil
}

func nextID(products []models.Product) int {
	top := 0
	for _, p := range products {
		if p.ID > top {
			top = p.ID
		}
	}
	return top + 1
}

func indexOf(products []models.Product, id int) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}
