package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/happyinline/inline-backend/api/controllers"
	"github.com/happyinline/inline-backend/api/middleware"
	"github.com/happyinline/inline-backend/internal/auth"
	"github.com/happyinline/inline-backend/internal/customers"
	"github.com/happyinline/inline-backend/internal/enrollment"
	"github.com/happyinline/inline-backend/internal/notifications"
	"github.com/happyinline/inline-backend/internal/shops"
	"github.com/happyinline/inline-backend/pkg/config"
	"github.com/happyinline/inline-backend/pkg/db"
	"github.com/happyinline/inline-backend/pkg/logger"
	"github.com/happyinline/inline-backend/pkg/metrics"
	"github.com/happyinline/inline-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	redisClient *redis.Client,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	authService auth.Service,
	shopsService shops.Service,
	enrollmentService enrollment.Service,
	customersService customers.Service,
	notificationsService notifications.Service,
) http.Handler {
	var cache redis.Pinger
	var limiterStore middleware.RateLimiterStore
	if redisClient != nil {
		cache = redisClient
		limiterStore = redisClient
	}

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(httpMetrics),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRateLimit.RegisterWindow,
		cfg.AuthRateLimit.RegisterIPLimit,
		cfg.AuthRateLimit.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP, cache, logg))
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	r.Route("/api/public", func(r chi.Router) {
		r.Get("/ping", controllers.PublicPing())
	})

	r.Route("/api/shops", func(r chi.Router) {
		r.Get("/", controllers.ListShops(shopsService, logg))
		r.Get("/{shopId}", controllers.GetShop(shopsService, logg))
	})

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, limiterStore, logg)).Post("/login", controllers.AuthLogin(authService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, limiterStore, logg)).Post("/register", controllers.AuthRegister(authService, logg))
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Get("/ping", controllers.PrivatePing())

		r.Post("/providers/create", controllers.CreateProvider(enrollmentService, logg))
		r.Post("/customer/link-shop", controllers.LinkShop(customersService, logg))

		r.Route("/notifications", func(r chi.Router) {
			r.Get("/", controllers.ListNotifications(notificationsService, logg))
			r.Post("/booking", controllers.SendBookingEmail(notificationsService, logg))
		})
	})

	return r
}
