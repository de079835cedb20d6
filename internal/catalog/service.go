package catalog

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	pkgerrors "github.com/brewlinehq/storefront-backend/pkg/errors"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
)

// Source reads raw rows from wherever the catalog lives (the spreadsheet in
// production, a fixture in tests).
type Source interface {
	ReadRows(ctx context.Context, readRange string) ([][]any, error)
}

// Service loads the product list and answers filter/search queries over it.
// The list is cached briefly so every page view does not hit the sheet; a
// failed fetch surfaces once and is only retried by the next caller.
type Service interface {
	List(ctx context.Context) ([]Product, error)
	FindBySlug(ctx context.Context, slug string) (*Product, error)
	FindByID(ctx context.Context, id int) (*Product, error)
	Search(ctx context.Context, query string) ([]Product, error)
	ByCategory(ctx context.Context, tag string) ([]Product, error)
	DiscountedOnly(ctx context.Context) ([]Product, error)
}

type service struct {
	source    Source
	readRange string
	ttl       time.Duration
	logg      *logger.Logger

	mu        sync.Mutex
	cached    []Product
	fetchedAt time.Time
}

// NewService builds the catalog accessor.
func NewService(source Source, readRange string, ttl time.Duration, logg *logger.Logger) (Service, error) {
	if source == nil {
		return nil, fmt.Errorf("catalog source required")
	}
	if readRange == "" {
		return nil, fmt.Errorf("catalog range required")
	}
	return &service{
		source:    source,
		readRange: readRange,
		ttl:       ttl,
		logg:      logg,
	}, nil
}

func (s *service) List(ctx context.Context) ([]Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cached != nil && time.Since(s.fetchedAt) < s.ttl {
		return s.cached, nil
	}

	values, err := s.source.ReadRows(ctx, s.readRange)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "failed to fetch products").
			WithDetails(map[string]any{"upstream": err.Error()})
	}

	if len(values) < 2 {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "no catalog data in spreadsheet")
	}

	products := ParseProducts(values)
	s.cached = products
	s.fetchedAt = time.Now()

	if s.logg != nil {
		s.logg.Info(s.logg.WithField(ctx, "count", len(products)), "catalog refreshed")
	}
	return products, nil
}

func (s *service) FindBySlug(ctx context.Context, slug string) (*Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].Slug == slug {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %q not found", slug))
}

func (s *service) FindByID(ctx context.Context, id int) (*Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range products {
		if products[i].ID == id {
			return &products[i], nil
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("product %d not found", id))
}

func (s *service) Search(ctx context.Context, query string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(query))
	if term == "" {
		return products, nil
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if productMatches(p, term, true) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

// ByCategory is a coarse substring filter over name and description, not a
// real taxonomy.
func (s *service) ByCategory(ctx context.Context, tag string) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	term := strings.ToLower(strings.TrimSpace(tag))
	if term == "" {
		return products, nil
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if productMatches(p, term, false) {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func (s *service) DiscountedOnly(ctx context.Context) ([]Product, error) {
	products, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	matched := make([]Product, 0, len(products))
	for _, p := range products {
		if p.Discounted() {
			matched = append(matched, p)
		}
	}
	return matched, nil
}

func productMatches(p Product, term string, includeFeatures bool) bool {
	if strings.Contains(strings.ToLower(p.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.Description), term) {
		return true
	}
	if includeFeatures {
		for _, feature := range p.Features {
			if strings.Contains(strings.ToLower(feature), term) {
				return true
			}
		}
	}
	return false
}
