package orders

import (
	"context"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/mitienda/storefront-backend/pkg/db/models"
	"github.com/mitienda/storefront-backend/pkg/enums"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/pagination"
	"github.com/mitienda/storefront-backend/pkg/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	orders := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  number TEXT NOT NULL UNIQUE,
  client_id TEXT NOT NULL,
  client_name TEXT NOT NULL DEFAULT '',
  total NUMERIC NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  payment_method TEXT NOT NULL,
  delivery_address TEXT NOT NULL DEFAULT '',
  created_at DATETIME,
  updated_at DATETIME
);`
	lineItems := `
CREATE TABLE IF NOT EXISTS order_line_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_name TEXT NOT NULL,
  unit_price NUMERIC NOT NULL,
  quantity INTEGER NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(orders).Error)
	require.NoError(t, db.Exec(lineItems).Error)
	return db
}

func newOrdersService(t *testing.T) Service {
	t.Helper()

	svc, err := NewService(
		NewRepository(setupOrdersTestDB(t)),
		logger.New(logger.Options{ServiceName: "orders-test", Output: io.Discard}),
	)
	require.NoError(t, err)
	return svc
}

func cartEntry(name, price string, qty int) types.CartEntry {
	return types.CartEntry{
		Product: models.Product{
			ID:    uuid.New(),
			Name:  name,
			Price: decimal.RequireFromString(price),
			Stock: 100,
		},
		Quantity: qty,
	}
}

func placeTestOrder(t *testing.T, svc Service) *models.OrderRecord {
	t.Helper()

	order, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ClientID:        uuid.New(),
		ClientName:      "Juan Pérez",
		PaymentMethod:   enums.PaymentMethodCreditCard,
		DeliveryAddress: "Av. Principal 123, Caracas",
		Entries: []types.CartEntry{
			cartEntry("Paracetamol 500mg", "12.50", 2),
			cartEntry("Ibuprofeno 400mg", "18.75", 1),
		},
	})
	require.NoError(t, err)
	return order
}

func TestPlaceOrder(t *testing.T) {
	svc := newOrdersService(t)

	order := placeTestOrder(t, svc)
	assert.Equal(t, enums.OrderStatusPending, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("43.75")))
	assert.Regexp(t, `^ORD-\d{6}-\d{3}$`, order.Number)
	require.Len(t, order.LineItems, 2)

	// Line items snapshot product price at placement time.
	got, err := svc.GetOrder(context.Background(), order.ID)
	require.NoError(t, err)
	assert.True(t, got.LineItems[0].UnitPrice.Equal(decimal.RequireFromString("12.50")))
	assert.Equal(t, 2, got.LineItems[0].Quantity)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	svc := newOrdersService(t)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ClientID:      uuid.New(),
		PaymentMethod: enums.PaymentMethodCash,
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestPlaceOrderRejectsUnknownPaymentMethod(t *testing.T) {
	svc := newOrdersService(t)

	_, err := svc.PlaceOrder(context.Background(), PlaceOrderInput{
		ClientID:      uuid.New(),
		PaymentMethod: enums.PaymentMethod("crypto"),
		Entries:       []types.CartEntry{cartEntry("A", "1.00", 1)},
	})
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}

func TestListOrdersFiltersByClient(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	first := placeTestOrder(t, svc)
	placeTestOrder(t, svc)

	all, err := svc.ListOrders(ctx, nil, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, all.Total)

	mine, err := svc.ListOrders(ctx, &first.ClientID, pagination.Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, mine.Total)
	require.Len(t, mine.Orders, 1)
	assert.Equal(t, first.ID, mine.Orders[0].ID)
}

func TestCancelOrderLifecycle(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	order := placeTestOrder(t, svc)

	cancelled, err := svc.CancelOrder(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, cancelled.Status)

	// A cancelled order cannot be cancelled again.
	_, err = svc.CancelOrder(ctx, order.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestCancelDeliveredOrderFails(t *testing.T) {
	svc := newOrdersService(t)
	ctx := context.Background()

	order := placeTestOrder(t, svc)
	_, err := svc.SetStatus(ctx, order.ID, enums.OrderStatusDelivered)
	require.NoError(t, err)

	_, err = svc.CancelOrder(ctx, order.ID)
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeConflict, appErr.Code())
}

func TestGetMissingOrder(t *testing.T) {
	svc := newOrdersService(t)

	_, err := svc.GetOrder(context.Background(), uuid.New())
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeNotFound, appErr.Code())
}

func TestSetStatusRejectsUnknownStatus(t *testing.T) {
	svc := newOrdersService(t)

	order := placeTestOrder(t, svc)
	_, err := svc.SetStatus(context.Background(), order.ID, enums.OrderStatus("shipped"))
	appErr := pkgerrors.As(err)
	require.NotNil(t, appErr)
	assert.Equal(t, pkgerrors.CodeValidation, appErr.Code())
}
