package catalog

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/mitienda/storefront-backend/pkg/db/models"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/pagination"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Service exposes storefront catalog browsing.
type Service interface {
	ListProducts(ctx context.Context, params QueryParams, page pagination.Params) (*ListResult, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListCategories(ctx context.Context) ([]string, error)
}

// ListResult is a page of the filtered, sorted catalog.
type ListResult struct {
	Products []models.Product `json:"products"`
	Total    int              `json:"total"`
	Page     int              `json:"page"`
	Limit    int              `json:"limit"`
}

type service struct {
	repo            Repository
	logg            *logger.Logger
	collator        *collate.Collator
	minSearchLength int
}

// NewService wires the catalog service. minSearchLength at or below
// zero falls back to the package default.
func NewService(repo Repository, logg *logger.Logger, minSearchLength int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("catalog: logger is required")
	}
	if minSearchLength <= 0 {
		minSearchLength = MinSearchLength
	}
	return &service{
		repo:            repo,
		logg:            logg,
		collator:        collate.New(language.Spanish, collate.IgnoreCase),
		minSearchLength: minSearchLength,
	}, nil
}

// ListProducts loads the catalog, runs the query pipeline in memory and
// windows the result. Total counts the filtered set, not the page.
func (s *service) ListProducts(ctx context.Context, params QueryParams, page pagination.Params) (*ListResult, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	filtered := ApplyQuery(products, params, s.minSearchLength, s.collator)
	window := pagination.Slice(filtered, page)
	norm := page.Normalize()

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"total":    len(filtered),
		"page":     norm.Page,
		"returned": len(window),
	})
	s.logg.Info(logCtx, "catalog listing served")

	return &ListResult{
		Products: window,
		Total:    len(filtered),
		Page:     norm.Page,
		Limit:    norm.Limit,
	}, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// ListCategories returns the distinct categories present in the
// catalog, collated alphabetically.
func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(products))
	categories := make([]string, 0, len(products))
	for _, p := range products {
		if _, ok := seen[p.Category]; ok {
			continue
		}
		seen[p.Category] = struct{}{}
		categories = append(categories, p.Category)
	}
	sort.Slice(categories, func(i, j int) bool {
		return compareStrings(categories[i], categories[j], s.collator) < 0
	})
	return categories, nil
}
