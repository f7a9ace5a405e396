package orders

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/mitienda/storefront-backend/internal/checkout"
	"github.com/mitienda/storefront-backend/pkg/db"
	"github.com/mitienda/storefront-backend/pkg/db/models"
	"github.com/mitienda/storefront-backend/pkg/enums"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/pagination"
	"github.com/mitienda/storefront-backend/pkg/types"
)

// Service exposes order placement and lifecycle operations.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.OrderRecord, error)
	GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error)
	ListOrders(ctx context.Context, clientID *uuid.UUID, page pagination.Params) (*ListResult, error)
	CancelOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error)
	SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.OrderRecord, error)
}

// PlaceOrderInput carries everything needed to turn a cart into an order.
type PlaceOrderInput struct {
	ClientID        uuid.UUID
	ClientName      string
	PaymentMethod   enums.PaymentMethod
	DeliveryAddress string
	Entries         []types.CartEntry
}

// ListResult is one page of the order history.
type ListResult struct {
	Orders []models.OrderRecord `json:"orders"`
	Total  int64                `json:"total"`
	Page   int                  `json:"page"`
	Limit  int                  `json:"limit"`
}

// createRetries bounds how often a colliding order number is rerolled.
const createRetries = 3

type service struct {
	repo Repository
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires the orders service.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders: repository is required")
	}
	if logg == nil {
		return nil, fmt.Errorf("orders: logger is required")
	}
	return &service{repo: repo, logg: logg, now: time.Now}, nil
}

// PlaceOrder snapshots the cart entries into an immutable order. The
// order number is rerolled on the rare unique collision.
func (s *service) PlaceOrder(ctx context.Context, input PlaceOrderInput) (*models.OrderRecord, error) {
	if len(input.Entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot place an order from an empty cart")
	}
	if !input.PaymentMethod.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown payment method").
			WithDetails(map[string]any{"payment_method": input.PaymentMethod.String()})
	}

	lineItems := make([]models.OrderLineItem, 0, len(input.Entries))
	for _, entry := range input.Entries {
		lineItems = append(lineItems, models.OrderLineItem{
			ProductID:   entry.Product.ID,
			ProductName: entry.Product.Name,
			UnitPrice:   entry.Product.Price,
			Quantity:    entry.Quantity,
		})
	}

	var created *models.OrderRecord
	var err error
	for attempt := 0; attempt < createRetries; attempt++ {
		order := &models.OrderRecord{
			Number:          NewOrderNumber(s.now()),
			ClientID:        input.ClientID,
			ClientName:      input.ClientName,
			Total:           checkout.CartTotal(input.Entries),
			Status:          enums.OrderStatusPending,
			PaymentMethod:   input.PaymentMethod,
			DeliveryAddress: input.DeliveryAddress,
			LineItems:       lineItems,
		}
		created, err = s.repo.CreateOrder(ctx, order)
		if err == nil {
			break
		}
		if !db.IsUniqueViolation(err, "") {
			return nil, err
		}
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeConflict, err, "could not allocate an order number")
	}

	logCtx := s.logg.WithFields(ctx, map[string]any{
		"order_id":     created.ID.String(),
		"order_number": created.Number,
		"total":        created.Total.String(),
	})
	s.logg.Info(logCtx, "order placed")
	return created, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error) {
	return s.repo.GetOrder(ctx, id)
}

func (s *service) ListOrders(ctx context.Context, clientID *uuid.UUID, page pagination.Params) (*ListResult, error) {
	orders, total, err := s.repo.ListOrders(ctx, clientID, page)
	if err != nil {
		return nil, err
	}
	norm := page.Normalize()
	return &ListResult{
		Orders: orders,
		Total:  total,
		Page:   norm.Page,
		Limit:  norm.Limit,
	}, nil
}

// CancelOrder cancels a pending or paid order. Delivered and already
// cancelled orders cannot be cancelled.
func (s *service) CancelOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error) {
	order, err := s.repo.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanCancel(*order) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "order can no longer be cancelled").
			WithDetails(map[string]any{"order_id": id.String(), "status": order.Status.String()})
	}
	return s.SetStatus(ctx, id, enums.OrderStatusCancelled)
}

// SetStatus moves the order to the given lifecycle state.
func (s *service) SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.OrderRecord, error) {
	if !status.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown order status").
			WithDetails(map[string]any{"status": status.String()})
	}
	if err := s.repo.UpdateStatus(ctx, id, status.String()); err != nil {
		return nil, err
	}
	return s.repo.GetOrder(ctx, id)
}
