package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/storefront-backend/api/controllers"
	"github.com/angelmondragon/storefront-backend/api/middleware"
	internalorders "github.com/angelmondragon/storefront-backend/internal/orders"
	"github.com/angelmondragon/storefront-backend/pkg/config"
	"github.com/angelmondragon/storefront-backend/pkg/logger"
	pkgredis "github.com/angelmondragon/storefront-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbPinger controllers.Pinger,
	redisClient *pkgredis.Client,
	ordersSvc internalorders.Service,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, map[string]controllers.Pinger{
			"database": dbPinger,
			"redis":    redisClient,
		}))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/orders", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))
		r.Use(middleware.Idempotency(redisClient, logg))

		r.Get("/", controllers.ListOrders(ordersSvc, logg))
		r.Post("/", controllers.CreateOrder(ordersSvc, logg))
		r.Post("/confirm", controllers.ConfirmOrder(ordersSvc, logg))
		r.Get("/{orderId}", controllers.OrderDetail(ordersSvc, logg))
	})

	return r
}
