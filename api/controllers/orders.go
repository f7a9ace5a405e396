package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/mitienda/storefront-backend/api/middleware"
	"github.com/mitienda/storefront-backend/api/responses"
	"github.com/mitienda/storefront-backend/api/validators"
	"github.com/mitienda/storefront-backend/internal/cart"
	"github.com/mitienda/storefront-backend/internal/orders"
	"github.com/mitienda/storefront-backend/pkg/config"
	"github.com/mitienda/storefront-backend/pkg/enums"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
)

type placeOrderRequest struct {
	ClientID        string `json:"client_id" validate:"required,uuid"`
	ClientName      string `json:"client_name" validate:"required,min=2,max=120"`
	PaymentMethod   string `json:"payment_method" validate:"required"`
	DeliveryAddress string `json:"delivery_address" validate:"required,min=5,max=300"`
}

type setOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// PlaceOrder turns the session's cart into an order and clears the
// cart on success.
func PlaceOrder(svc orders.Service, manager *cart.Manager, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload placeOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		clientID, err := validators.ParsePathUUID(payload.ClientID, "client_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		paymentMethod, err := enums.ParsePaymentMethod(payload.PaymentMethod)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment method").
				WithDetails(map[string]any{"field": "payment_method"}))
			return
		}

		sessionID := middleware.CartSessionFromContext(r.Context())
		summary, err := manager.Get(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.PlaceOrder(r.Context(), orders.PlaceOrderInput{
			ClientID:        clientID,
			ClientName:      payload.ClientName,
			PaymentMethod:   paymentMethod,
			DeliveryAddress: payload.DeliveryAddress,
			Entries:         summary.Entries,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var warn error
		if _, clearErr := manager.Clear(r.Context(), sessionID); clearErr != nil && pkgerrors.IsWarning(clearErr) {
			warn = clearErr
		}
		responses.WriteSuccessWithWarning(w, order, warn)
	}
}

// ListOrders serves the order history, optionally scoped to a client.
func ListOrders(svc orders.Service, cfg *config.Config, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := paginationFromRequest(r, cfg.Catalog.DefaultPageSize, cfg.Catalog.MaxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var clientID *uuid.UUID
		if raw := validators.ParseQueryString(r, "client_id", maxQueryTermLength); raw != "" {
			id, err := validators.ParsePathUUID(raw, "client_id")
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			clientID = &id
		}

		result, err := svc.ListOrders(r.Context(), clientID, page)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// GetOrder serves a single order with its line items.
func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.GetOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// CancelOrder cancels a pending or paid order.
func CancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.CancelOrder(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}

// SetOrderStatus moves the order through its lifecycle.
func SetOrderStatus(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "orderId"), "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload setOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := enums.ParseOrderStatus(payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status").
				WithDetails(map[string]any{"field": "status"}))
			return
		}

		order, err := svc.SetStatus(r.Context(), id, status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, order)
	}
}
