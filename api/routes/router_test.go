package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/mitienda/storefront-backend/internal/businessconfig"
	"github.com/mitienda/storefront-backend/internal/cart"
	"github.com/mitienda/storefront-backend/internal/catalog"
	"github.com/mitienda/storefront-backend/internal/orders"
	"github.com/mitienda/storefront-backend/pkg/config"
	"github.com/mitienda/storefront-backend/pkg/db/models"
	"github.com/mitienda/storefront-backend/pkg/enums"
	pkgerrors "github.com/mitienda/storefront-backend/pkg/errors"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/metrics"
	"github.com/mitienda/storefront-backend/pkg/pagination"
	"github.com/mitienda/storefront-backend/pkg/types"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error {
	return nil
}

type stubCatalogService struct {
	listFn func(ctx context.Context, params catalog.QueryParams, page pagination.Params) (*catalog.ListResult, error)
	getFn  func(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

func (s stubCatalogService) ListProducts(ctx context.Context, params catalog.QueryParams, page pagination.Params) (*catalog.ListResult, error) {
	if s.listFn != nil {
		return s.listFn(ctx, params, page)
	}
	return &catalog.ListResult{Page: 1, Limit: 10}, nil
}

func (s stubCatalogService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	if s.getFn != nil {
		return s.getFn(ctx, id)
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}

func (s stubCatalogService) ListCategories(ctx context.Context) ([]string, error) {
	return []string{"Analgésicos", "Vitaminas"}, nil
}

type stubOrdersService struct {
	placeFn func(ctx context.Context, input orders.PlaceOrderInput) (*models.OrderRecord, error)
}

func (s stubOrdersService) PlaceOrder(ctx context.Context, input orders.PlaceOrderInput) (*models.OrderRecord, error) {
	if s.placeFn != nil {
		return s.placeFn(ctx, input)
	}
	if len(input.Entries) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cannot place an order from an empty cart")
	}
	return &models.OrderRecord{ID: uuid.New(), Number: "ORD-123456-001", Status: enums.OrderStatusPending}, nil
}

func (s stubOrdersService) GetOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s stubOrdersService) ListOrders(ctx context.Context, clientID *uuid.UUID, page pagination.Params) (*orders.ListResult, error) {
	return &orders.ListResult{Page: 1, Limit: 10}, nil
}

func (s stubOrdersService) CancelOrder(ctx context.Context, id uuid.UUID) (*models.OrderRecord, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func (s stubOrdersService) SetStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) (*models.OrderRecord, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
}

func testConfig() *config.Config {
	return &config.Config{
		App: config.AppConfig{Env: "test", Port: "0"},
		Cart: config.CartConfig{
			MaxItems:   50,
			MaxPerItem: 99,
		},
		Catalog: config.CatalogConfig{
			MinSearchLength: 2,
			DefaultPageSize: 10,
			MaxPageSize:     100,
		},
	}
}

func newTestRouter(t *testing.T, catalogSvc catalog.Service, ordersSvc orders.Service) http.Handler {
	t.Helper()

	logg := logger.New(logger.Options{ServiceName: "test-routing", Output: io.Discard})
	cfg := testConfig()

	registry := prometheus.NewRegistry()
	manager, err := cart.NewManager(
		cart.NewMemorySnapshotStore(),
		logg,
		metrics.NewCartMetrics(registry),
		cfg.Cart.MaxItems,
		cfg.Cart.MaxPerItem,
	)
	if err != nil {
		t.Fatalf("building cart manager: %v", err)
	}

	store, err := businessconfig.NewStore(context.Background(), businessconfig.NewMemorySnapshotter(), logg)
	if err != nil {
		t.Fatalf("building config store: %v", err)
	}

	return NewRouter(Deps{
		Config:      cfg,
		Logger:      logg,
		HTTPMetrics: metrics.NewHTTPMetrics(registry),

		DBPinger:    stubPinger{},
		RedisPinger: stubPinger{},

		CatalogService: catalogSvc,
		CartManager:    manager,
		ConfigStore:    store,
		OrdersService:  ordersSvc,
	})
}

func decodeData(t *testing.T, body io.Reader) map[string]any {
	t.Helper()
	var envelope types.SuccessEnvelope
	if err := json.NewDecoder(body).Decode(&envelope); err != nil {
		t.Fatalf("decoding success envelope: %v", err)
	}
	data, ok := envelope.Data.(map[string]any)
	if !ok {
		t.Fatalf("unexpected data payload %v", envelope.Data)
	}
	return data
}

func TestHealthEndpointsRespond(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	for _, path := range []string{"/health/live", "/health/ready"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		resp := httptest.NewRecorder()
		router.ServeHTTP(resp, req)
		if resp.Code != http.StatusOK {
			t.Fatalf("%s: expected 200 got %d", path, resp.Code)
		}
	}
}

func TestRequestIDEchoedBack(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	reqID := resp.Header().Get("X-Request-Id")
	if _, err := uuid.Parse(reqID); err != nil {
		t.Fatalf("expected a uuid request id, got %q", reqID)
	}
}

func TestCartSessionMintedWhenAbsent(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if session := resp.Header().Get("X-Cart-Session"); session == "" {
		t.Fatalf("expected a minted cart session header")
	}
	data := decodeData(t, resp.Body)
	if got := data["item_count"].(float64); got != 0 {
		t.Fatalf("expected an empty cart, got item_count %v", got)
	}
}

func TestCartSessionEchoedWhenProvided(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})
	session := uuid.NewString()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	req.Header.Set("X-Cart-Session", session)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if got := resp.Header().Get("X-Cart-Session"); got != session {
		t.Fatalf("expected session %q echoed, got %q", session, got)
	}
}

func TestAddItemThenGetCartKeepsState(t *testing.T) {
	product := &models.Product{
		ID:       uuid.New(),
		Name:     "Paracetamol 500mg",
		Category: "Analgésicos",
		Price:    decimal.RequireFromString("12.50"),
		Stock:    100,
	}
	router := newTestRouter(t, stubCatalogService{
		getFn: func(ctx context.Context, id uuid.UUID) (*models.Product, error) {
			if id != product.ID {
				return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return product, nil
		},
	}, stubOrdersService{})
	session := uuid.NewString()

	body := fmt.Sprintf(`{"product_id":%q,"quantity":2}`, product.ID)
	add := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	add.Header.Set("Content-Type", "application/json")
	add.Header.Set("X-Cart-Session", session)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, add)
	if resp.Code != http.StatusOK {
		t.Fatalf("add item: expected 200 got %d body %s", resp.Code, resp.Body.String())
	}

	get := httptest.NewRequest(http.MethodGet, "/api/v1/cart/", nil)
	get.Header.Set("X-Cart-Session", session)
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, get)
	data := decodeData(t, resp.Body)
	if got := data["item_count"].(float64); got != 2 {
		t.Fatalf("expected item_count 2, got %v", got)
	}
}

func TestAddCartItemRejectsMalformedBody(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid payload got %d", resp.Code)
	}
}

func TestAddCartItemUnknownProductIs404(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	body := fmt.Sprintf(`{"product_id":%q}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown product got %d", resp.Code)
	}
}

func TestGetProductRejectsBadID(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/not-a-uuid", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad product id got %d", resp.Code)
	}
}

func TestListProductsRejectsUnknownPriceBucket(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/products/?price=enormous", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown price bucket got %d", resp.Code)
	}
}

func TestChangeBusinessTypeValidatesVertical(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	unknown := httptest.NewRequest(http.MethodPost, "/api/v1/config/business-type", strings.NewReader(`{"business_type_id":"bakery"}`))
	unknown.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, unknown)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for unknown vertical got %d", resp.Code)
	}

	known := httptest.NewRequest(http.MethodPost, "/api/v1/config/business-type", strings.NewReader(`{"business_type_id":"supermarket"}`))
	known.Header.Set("Content-Type", "application/json")
	resp = httptest.NewRecorder()
	router.ServeHTTP(resp, known)
	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 for supermarket got %d body %s", resp.Code, resp.Body.String())
	}
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	router := newTestRouter(t, stubCatalogService{}, stubOrdersService{})

	body := fmt.Sprintf(`{"client_id":%q,"client_name":"Ana Pérez","payment_method":"cash","delivery_address":"Av. Principal 12, Caracas"}`, uuid.NewString())
	req := httptest.NewRequest(http.MethodPost, "/api/v1/orders/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)
	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for an empty cart got %d body %s", resp.Code, resp.Body.String())
	}
}
