package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/invisimart/storefront-web/api/controllers"
	"github.com/invisimart/storefront-web/api/middleware"
	"github.com/invisimart/storefront-web/internal/cart"
	"github.com/invisimart/storefront-web/internal/catalog"
	checkoutsvc "github.com/invisimart/storefront-web/internal/checkout"
	"github.com/invisimart/storefront-web/internal/health"
	"github.com/invisimart/storefront-web/pkg/config"
	"github.com/invisimart/storefront-web/pkg/logger"
	"github.com/invisimart/storefront-web/pkg/metrics"
	pkgredis "github.com/invisimart/storefront-web/pkg/redis"
)

// Deps carries everything the router wires into handlers.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	Catalog     *catalog.Client
	CartStore   cart.Store
	Checkout    *checkoutsvc.Service
	Monitor     *health.Monitor
	Redis       *pkgredis.Client
	HTTPMetrics *metrics.HTTPMetrics
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
	)
	if cfg.App.IsDev() {
		// Cross-origin only happens when the UI dev server runs on its own port.
		r.Use(middleware.CORS())
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		if deps.Redis != nil {
			r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Catalog, deps.Redis))
		} else {
			r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Catalog, nil))
		}
	})

	r.Handle("/metrics", promhttp.Handler())

	// Browser contract endpoints: raw JSON shapes, no envelope.
	r.Get("/api/config", controllers.RuntimeConfig(logg))
	r.Route("/api/proxy", func(r chi.Router) {
		r.Get("/*", controllers.Proxy(deps.Catalog, logg))
		r.Post("/*", controllers.Proxy(deps.Catalog, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart.CookieName, cfg.App.IsProd(), logg))
		if deps.Redis != nil {
			r.Use(middleware.Idempotency(deps.Redis, logg))
		}

		r.Get("/products", controllers.ProductList(deps.Catalog, logg))
		r.Get("/products/{productId}", controllers.ProductDetail(deps.Catalog, logg))

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(deps.CartStore, logg))
			r.Delete("/", controllers.CartClear(deps.CartStore, logg))
			r.Post("/items", controllers.CartAdd(deps.CartStore, logg))
			r.Patch("/items/{itemId}", controllers.CartUpdateQuantity(deps.CartStore, logg))
			r.Delete("/items/{itemId}", controllers.CartRemove(deps.CartStore, logg))
		})

		r.Post("/checkout", controllers.Checkout(deps.Checkout, logg))
		r.Get("/orders/{orderId}", controllers.OrderDetail(deps.Catalog, logg))
	})

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Get("/inventory", controllers.AdminInventory(deps.Catalog, logg))
		r.Get("/inventory/events", controllers.AdminEvents(deps.Catalog, logg))
		r.Get("/health", controllers.AdminHealth(deps.Monitor, logg))
	})

	return r
}
