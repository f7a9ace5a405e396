package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mitienda/storefront-backend/api/responses"
	"github.com/mitienda/storefront-backend/api/validators"
	"github.com/mitienda/storefront-backend/internal/catalog"
	"github.com/mitienda/storefront-backend/pkg/config"
	"github.com/mitienda/storefront-backend/pkg/enums"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/pagination"
)

const maxQueryTermLength = 120

// ListProducts serves the filtered, sorted, paginated catalog.
func ListProducts(svc catalog.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		params, err := queryParamsFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		page, err := paginationFromRequest(r, cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ListProducts(r.Context(), params, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// GetProduct serves a single catalog product by ID.
func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

// ListCatalogCategories serves the distinct categories present in the
// catalog (as opposed to the configured business type categories).
func ListCatalogCategories(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := svc.ListCategories(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"categories": categories})
	}
}

func queryParamsFromRequest(r *http.Request) (catalog.QueryParams, error) {
	params := catalog.QueryParams{
		Search:   validators.ParseQueryString(r, "q", maxQueryTermLength),
		Category: validators.ParseQueryString(r, "category", maxQueryTermLength),
	}

	if raw := validators.ParseQueryString(r, "price", maxQueryTermLength); raw != "" {
		bucket, err := enums.ParsePriceBucket(raw)
		if err != nil {
			return catalog.QueryParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid price filter").
				WithDetails(map[string]any{"field": "price"})
		}
		params.PriceBucket = bucket
	}

	if raw := validators.ParseQueryString(r, "sort_by", maxQueryTermLength); raw != "" {
		key, err := enums.ParseSortKey(raw)
		if err != nil {
			return catalog.QueryParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort key").
				WithDetails(map[string]any{"field": "sort_by"})
		}
		params.SortBy = key
	}

	if raw := validators.ParseQueryString(r, "sort_order", maxQueryTermLength); raw != "" {
		order, err := enums.ParseSortOrder(raw)
		if err != nil {
			return catalog.QueryParams{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid sort order").
				WithDetails(map[string]any{"field": "sort_order"})
		}
		params.SortOrder = order
	}

	return params, nil
}

func paginationFromRequest(r *http.Request, defaultLimit, maxLimit int) (pagination.Params, error) {
	if defaultLimit <= 0 {
		defaultLimit = pagination.DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = pagination.MaxLimit
	}

	page, err := validators.ParseQueryInt(r, "page", 1, 1, 1<<30)
	if err != nil {
		return pagination.Params{}, err
	}
	limit, err := validators.ParseQueryInt(r, "limit", defaultLimit, 1, maxLimit)
	if err != nil {
		return pagination.Params{}, err
	}
	return pagination.Params{Page: page, Limit: limit}, nil
}
