package api

import (
	"net/http"

	"github.com/MohamadRiza/happytime/internal/api/middleware"
	"github.com/MohamadRiza/happytime/internal/auth"
	"github.com/MohamadRiza/happytime/internal/metrics"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	AdminAuth    *AdminAuthHandler
	Customers    *CustomerHandler
	Products     *ProductHandler
	Vacancies    *VacancyHandler
	Applications *ApplicationHandler
	Messages     *MessageHandler

	JWTService  *auth.JWTService
	RateLimiter *middleware.RateLimiter
	Metrics     *metrics.Collector
	Logger      *zap.Logger
}

// NewRouter builds the full HTTP surface: public storefront endpoints,
// customer-authenticated endpoints, and the admin console API.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.Logging(cfg.Logger, cfg.Metrics))

	requireAuth := middleware.Auth(cfg.JWTService)
	requireAdmin := middleware.RequireRole(auth.RoleAdmin)
	requireCustomer := middleware.RequireRole(auth.RoleCustomer)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		respondMessage(w, http.StatusOK, "ok")
	})
	if cfg.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", cfg.Metrics.Handler())
	}

	r.Route("/api", func(r chi.Router) {
		if cfg.RateLimiter != nil {
			r.Use(cfg.RateLimiter.General())
		}

		// Public storefront
		r.Get("/products", cfg.Products.List)
		r.Get("/products/facets", cfg.Products.Facets)
		r.Get("/products/{id}", cfg.Products.Get)
		r.Get("/vacancies", cfg.Vacancies.ListPublic)
		r.Get("/vacancies/{id}", cfg.Vacancies.Get)
		r.Post("/applications/check-status", cfg.Applications.CheckStatus)
		r.Post("/messages", cfg.Messages.Submit)

		// Abuse-prone endpoints get the stricter limiter.
		r.Group(func(r chi.Router) {
			if cfg.RateLimiter != nil {
				r.Use(cfg.RateLimiter.Auth())
			}
			r.Post("/auth/admin/login", cfg.AdminAuth.Login)
			r.Post("/customers/login", cfg.Customers.Login)
			r.Post("/customers/register", cfg.Customers.Register)
			r.Post("/applications", cfg.Applications.Submit)
		})

		// Customer account
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireCustomer)
			r.Get("/customers/profile", cfg.Customers.GetProfile)
			r.Put("/customers/profile", cfg.Customers.UpdateProfile)
		})

		// Admin console
		r.Group(func(r chi.Router) {
			r.Use(requireAuth, requireAdmin)

			r.Post("/products", cfg.Products.Create)
			r.Put("/products/{id}", cfg.Products.Update)
			r.Delete("/products/{id}", cfg.Products.Delete)

			r.Get("/vacancies/all", cfg.Vacancies.ListAll)
			r.Post("/vacancies", cfg.Vacancies.Create)
			r.Put("/vacancies/{id}", cfg.Vacancies.Update)
			r.Delete("/vacancies/{id}", cfg.Vacancies.Delete)

			r.Get("/applications", cfg.Applications.List)
			r.Put("/applications/{id}/status", cfg.Applications.UpdateStatus)

			r.Get("/messages", cfg.Messages.List)
			r.Get("/messages/{id}", cfg.Messages.Get)
			r.Delete("/messages/{id}", cfg.Messages.Delete)
		})
	})

	return r
}
