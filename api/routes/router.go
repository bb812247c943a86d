package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/grovechain/foodtrace-backend/api/controllers"
	"github.com/grovechain/foodtrace-backend/api/middleware"
	product "github.com/grovechain/foodtrace-backend/internal/products"
	"github.com/grovechain/foodtrace-backend/pkg/config"
	"github.com/grovechain/foodtrace-backend/pkg/logger"
	"github.com/grovechain/foodtrace-backend/pkg/metrics"
	pkgredis "github.com/grovechain/foodtrace-backend/pkg/redis"
)

// NewRouter assembles the full HTTP surface. Reads are public; mutations
// require a bearer token and replay stored responses on idempotency-key
// reuse.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	gatherer prometheus.Gatherer,
	httpMetrics *metrics.HTTPMetrics,
	readiness map[string]controllers.Pinger,
	idem pkgredis.IdempotencyStore,
	productService product.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
		middleware.Metrics(httpMetrics),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", controllers.ListProducts(productService, logg))
		r.Get("/{productId}", controllers.GetProduct(productService, logg))
		r.Get("/{productId}/history", controllers.ProductHistory(productService, logg))

		r.Group(func(r chi.Router) {
			r.Use(middleware.Auth(cfg.JWT, logg))
			r.Use(middleware.Idempotency(idem, cfg.Idempotency.TTL, logg))

			r.Post("/", controllers.CreateProduct(productService, logg))
			r.Put("/{productId}", controllers.UpdateProduct(productService, logg))
			r.Delete("/{productId}", controllers.DeleteProduct(productService, logg))
			r.Post("/{productId}/transfer", controllers.TransferProduct(productService, logg))
			r.Post("/{productId}/inspect", controllers.InspectProduct(productService, logg))
		})
	})

	return r
}
