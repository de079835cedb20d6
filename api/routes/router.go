package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/brewlinehq/storefront-backend/api/controllers"
	"github.com/brewlinehq/storefront-backend/api/middleware"
	cartsvc "github.com/brewlinehq/storefront-backend/internal/cart"
	"github.com/brewlinehq/storefront-backend/internal/catalog"
	checkoutsvc "github.com/brewlinehq/storefront-backend/internal/checkout"
	ordersvc "github.com/brewlinehq/storefront-backend/internal/orders"
	"github.com/brewlinehq/storefront-backend/pkg/config"
	"github.com/brewlinehq/storefront-backend/pkg/logger"
	"github.com/brewlinehq/storefront-backend/pkg/metrics"
)

// Deps collects everything the router wires into handlers.
type Deps struct {
	Config     *config.Config
	Logger     *logger.Logger
	Metrics    *metrics.HTTPMetrics
	StorePing  controllers.Pinger
	LedgerPing controllers.Pinger

	Catalog  catalog.Service
	Cart     cartsvc.Service
	Checkout checkoutsvc.Service
	Orders   ordersvc.Service
}

func NewRouter(d Deps) http.Handler {
	cfg := d.Config
	logg := d.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(d.Metrics),
		middleware.CORS(cfg.CORS),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, d.StorePing, d.LedgerPing))
	})

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Session(cfg.Cart.SessionCookie, cfg.Cart.TTL, cfg.App.IsProd(), logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(d.Catalog, logg))
			r.Get("/{slug}", controllers.ProductDetail(d.Catalog, logg))
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", controllers.CartFetch(d.Cart, logg))
			r.Delete("/", controllers.CartClear(d.Cart, logg))
			r.Post("/items", controllers.CartAddLine(d.Cart, d.Catalog, logg))
			r.Patch("/items/{productId}", controllers.CartUpdateLine(d.Cart, logg))
			r.Delete("/items/{productId}", controllers.CartRemoveLine(d.Cart, logg))
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", controllers.CheckoutCreate(d.Checkout, logg))
			r.Get("/draft", controllers.CheckoutDraft(d.Checkout, logg))
		})

		r.Route("/payment", func(r chi.Router) {
			r.Post("/intent", controllers.PaymentIntentCreate(d.Checkout, logg))
			r.Post("/confirm", controllers.PaymentConfirm(d.Checkout, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(d.Orders, logg))
			r.Get("/{orderId}", controllers.OrderDetail(d.Orders, logg))
		})
	})

	return r
}
