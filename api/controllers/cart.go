package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mitienda/storefront-backend/api/middleware"
	"github.com/mitienda/storefront-backend/api/responses"
	"github.com/mitienda/storefront-backend/api/validators"
	"github.com/mitienda/storefront-backend/internal/cart"
	"github.com/mitienda/storefront-backend/internal/catalog"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
)

type addCartItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"omitempty,min=1"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" validate:"min=0"`
}

// GetCart serves the session's cart.
func GetCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		summary, err := manager.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, summary)
	}
}

// AddCartItem resolves the product and puts it in the session's cart.
// A persistence warning still returns the updated cart.
func AddCartItem(manager *cart.Manager, catalogSvc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(payload.ProductID, "product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		quantity := payload.Quantity
		if quantity == 0 {
			quantity = 1
		}

		product, err := catalogSvc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		summary, err := manager.AddItem(r.Context(), sessionID, *product, quantity)
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, summary, err)
	}
}

// UpdateCartItem sets the quantity of a line already in the cart.
func UpdateCartItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		summary, err := manager.UpdateQuantity(r.Context(), sessionID, productID, payload.Quantity)
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, summary, err)
	}
}

// RemoveCartItem drops a line from the cart. Missing lines are a no-op.
func RemoveCartItem(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productId"), "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		summary, err := manager.RemoveItem(r.Context(), sessionID, productID)
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, summary, err)
	}
}

// ClearCart empties the session's cart.
func ClearCart(manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sessionID := middleware.CartSessionFromContext(r.Context())
		summary, err := manager.Clear(r.Context(), sessionID)
		if err != nil && !pkgerrors.IsWarning(err) {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessWithWarning(w, summary, err)
	}
}
