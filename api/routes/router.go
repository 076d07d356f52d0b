package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/packfinderz-insights/api/controllers"
	analyticscontrollers "github.com/angelmondragon/packfinderz-insights/api/controllers/analytics"
	"github.com/angelmondragon/packfinderz-insights/api/middleware"
	"github.com/angelmondragon/packfinderz-insights/internal/analytics"
	"github.com/angelmondragon/packfinderz-insights/pkg/config"
	"github.com/angelmondragon/packfinderz-insights/pkg/logger"
	"github.com/angelmondragon/packfinderz-insights/pkg/metrics"
	"github.com/angelmondragon/packfinderz-insights/pkg/redis"
)

// NewRouter wires every route. redisClient may be nil, in which case rate limiting is off
// and readiness reports Redis as disabled. gatherer defaults to the global registry.
func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	redisClient *redis.Client,
	analyticsService analytics.Service,
	projectionMetrics *metrics.ProjectionMetrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS.AllowedOrigins),
	)

	var readiness controllers.Pinger
	if redisClient != nil {
		readiness = redisClient
	}

	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, readiness))
	})
	r.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	r.Route("/api/v1/analytics", func(r chi.Router) {
		if redisClient != nil && cfg.RateLimit.Enabled {
			policy := middleware.NewRateLimitPolicy("analytics", cfg.RateLimit.Window, cfg.RateLimit.Limit)
			r.Use(middleware.RateLimit(policy, redisClient, projectionMetrics, logg))
		}

		r.Get("/metrics", analyticscontrollers.Metrics())
		r.Post("/projection", analyticscontrollers.Projection(
			analyticsService,
			analyticscontrollers.DefaultsFromConfig(cfg.Projection),
			logg,
		))
	})

	return r
}
