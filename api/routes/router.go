package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/orderdesk/api/controllers"
	"github.com/angelmondragon/orderdesk/api/middleware"
	"github.com/angelmondragon/orderdesk/internal/catalog"
	"github.com/angelmondragon/orderdesk/internal/orders"
	"github.com/angelmondragon/orderdesk/internal/payouts"
	"github.com/angelmondragon/orderdesk/pkg/config"
	"github.com/angelmondragon/orderdesk/pkg/logger"
	pkgredis "github.com/angelmondragon/orderdesk/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	idemStore pkgredis.IdempotencyStore,
	redisP controllers.Pinger,
	commerceP controllers.Pinger,
	registry *prometheus.Registry,
	ordersSvc orders.Service,
	payoutsSvc payouts.Service,
	catalogSvc catalog.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, redisP, commerceP))
	})

	if registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Get("/api/public/ping", controllers.PublicPing())

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Idempotency(idemStore, logg))

		r.Get("/ping", controllers.AdminPing())

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", controllers.AdminListOrders(ordersSvc, logg))
			r.Post("/refresh", controllers.AdminRefreshOrders(ordersSvc, logg))
			r.Patch("/{orderId}/status", controllers.AdminChangeOrderStatus(ordersSvc, logg))
			r.Post("/{orderId}/refund", controllers.AdminRequestRefund(ordersSvc, logg))
		})

		r.Route("/payouts", func(r chi.Router) {
			r.Get("/vendors", controllers.AdminListVendorSummaries(payoutsSvc, logg))
			r.Post("/", controllers.AdminCreatePayout(payoutsSvc, logg))
		})

		r.Route("/brands", func(r chi.Router) {
			r.Get("/", controllers.AdminListBrands(catalogSvc, logg))
			r.Post("/", controllers.AdminCreateBrand(catalogSvc, logg))
			r.Delete("/{brandId}", controllers.AdminDeleteBrand(catalogSvc, logg))
		})

		r.Get("/categories", controllers.AdminListCategories(catalogSvc, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.AdminListProducts(catalogSvc, logg))
			r.Post("/", controllers.AdminCreateProduct(catalogSvc, logg))
			r.Patch("/{productId}", controllers.AdminUpdateProduct(catalogSvc, logg))
			r.Delete("/{productId}", controllers.AdminDeleteProduct(catalogSvc, logg))
		})
	})

	return r
}
