package routes

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelmondragon/partsdesk-backend/api/controllers"
	"github.com/angelmondragon/partsdesk-backend/api/middleware"
	"github.com/angelmondragon/partsdesk-backend/internal/session"
	"github.com/angelmondragon/partsdesk-backend/internal/storefront"
	"github.com/angelmondragon/partsdesk-backend/pkg/config"
	"github.com/angelmondragon/partsdesk-backend/pkg/logger"
)

// Deps groups what the router wires into handlers.
type Deps struct {
	Storefront storefront.Service
	Sessions   session.Store
	RateLimits middleware.RateLimitStore
	Readiness  map[string]controllers.Pinger
	Gatherer   prometheus.Gatherer
	Now        func() time.Time
}

func NewRouter(cfg *config.Config, logg *logger.Logger, deps Deps) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	refreshPolicy := middleware.NewRateLimitPolicy("refresh", cfg.Limits.Window, cfg.Limits.RefreshLimit)
	orderPolicy := middleware.NewRateLimitPolicy("order", cfg.Limits.Window, cfg.Limits.OrderLimit)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, deps.Readiness))
	})
	r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))

	sessionMW := middleware.Session(deps.Sessions, middleware.SessionOptions{
		CookieName: cfg.Session.CookieName,
		TTL:        cfg.Session.TTL,
		Secure:     cfg.Session.CookieSecure,
	}, logg)

	svc := deps.Storefront
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/origins", controllers.CatalogOrigins(svc, logg))
			r.With(middleware.RateLimit(refreshPolicy, deps.RateLimits, logg)).
				Post("/refresh", controllers.CatalogRefresh(svc, logg))

			r.Group(func(r chi.Router) {
				r.Use(sessionMW)
				r.Get("/", controllers.CatalogView(svc, logg))
				r.Put("/search", controllers.CatalogSearch(svc, logg))
				r.Put("/origin", controllers.CatalogOrigin(svc, logg))
				r.Put("/page", controllers.CatalogPage(svc, logg))
			})
		})

		r.Route("/cart", func(r chi.Router) {
			r.Use(sessionMW)
			r.Get("/", controllers.CartGet(svc, logg))
			r.Delete("/", controllers.CartReset(svc, logg))
			r.Route("/items/{productId}", func(r chi.Router) {
				r.Post("/increment", controllers.CartIncrement(svc, logg))
				r.Post("/decrement", controllers.CartDecrement(svc, logg))
				r.Post("/adjust", controllers.CartAdjust(svc, logg))
			})
		})

		r.With(sessionMW, middleware.RateLimit(orderPolicy, deps.RateLimits, logg)).
			Post("/order", controllers.OrderCreate(svc, logg, deps.Now))
	})

	return r
}
