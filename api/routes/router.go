package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mitienda/storefront-backend/api/controllers"
	"github.com/mitienda/storefront-backend/api/middleware"
	"github.com/mitienda/storefront-backend/internal/businessconfig"
	"github.com/mitienda/storefront-backend/internal/cart"
	"github.com/mitienda/storefront-backend/internal/catalog"
	"github.com/mitienda/storefront-backend/internal/orders"
	"github.com/mitienda/storefront-backend/pkg/config"
	"github.com/mitienda/storefront-backend/pkg/logger"
	"github.com/mitienda/storefront-backend/pkg/metrics"
)

// Deps bundles everything the router wires into handlers.
type Deps struct {
	Config        *config.Config
	Logger        *logger.Logger
	HTTPMetrics   *metrics.HTTPMetrics
	MetricsServer http.Handler

	DBPinger    controllers.Pinger
	RedisPinger controllers.Pinger

	CatalogService catalog.Service
	CartManager    *cart.Manager
	ConfigStore    *businessconfig.Store
	OrdersService  orders.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": deps.DBPinger,
			"redis":    deps.RedisPinger,
		}))
	})

	metricsHandler := deps.MetricsServer
	if metricsHandler == nil {
		metricsHandler = promhttp.Handler()
	}
	r.Method(http.MethodGet, "/metrics", metricsHandler)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ListProducts(deps.CatalogService, cfg, logg))
			r.Get("/categories", controllers.ListCatalogCategories(deps.CatalogService, logg))
			r.Get("/{productId}", controllers.GetProduct(deps.CatalogService, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(middleware.CartSession(logg))
			r.Get("/", controllers.GetCart(deps.CartManager, logg))
			r.Delete("/", controllers.ClearCart(deps.CartManager, logg))
			r.Post("/items", controllers.AddCartItem(deps.CartManager, deps.CatalogService, logg))
			r.Patch("/items/{productId}", controllers.UpdateCartItem(deps.CartManager, logg))
			r.Delete("/items/{productId}", controllers.RemoveCartItem(deps.CartManager, logg))
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/", controllers.GetBusinessConfig(deps.ConfigStore))
			r.Patch("/", controllers.UpdateBusinessConfig(deps.ConfigStore, logg))
			r.Post("/business-type", controllers.ChangeBusinessType(deps.ConfigStore, logg))
			r.Post("/reset", controllers.ResetBusinessConfig(deps.ConfigStore, logg))
			r.Get("/export", controllers.ExportBusinessConfig(deps.ConfigStore, logg))
			r.Post("/import", controllers.ImportBusinessConfig(deps.ConfigStore, logg))
			r.Get("/business-types", controllers.ListBusinessTypes())
			r.Get("/terminology", controllers.GetTerminology(deps.ConfigStore))
			r.Get("/categories", controllers.GetConfiguredCategories(deps.ConfigStore))
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(middleware.CartSession(logg)).Post("/", controllers.PlaceOrder(deps.OrdersService, deps.CartManager, logg))
			r.Get("/", controllers.ListOrders(deps.OrdersService, cfg, logg))
			r.Get("/{orderId}", controllers.GetOrder(deps.OrdersService, logg))
			r.Post("/{orderId}/cancel", controllers.CancelOrder(deps.OrdersService, logg))
			r.Patch("/{orderId}/status", controllers.SetOrderStatus(deps.OrdersService, logg))
		})
	})

	return r
}
