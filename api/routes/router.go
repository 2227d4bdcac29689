package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/procureflow/procureflow-backend/api/controllers"
	"github.com/procureflow/procureflow-backend/api/middleware"
	"github.com/procureflow/procureflow-backend/internal/auth"
	"github.com/procureflow/procureflow-backend/internal/quotes"
	"github.com/procureflow/procureflow-backend/internal/requisitions"
	"github.com/procureflow/procureflow-backend/internal/roles"
	"github.com/procureflow/procureflow-backend/pkg/auth/session"
	"github.com/procureflow/procureflow-backend/pkg/config"
	"github.com/procureflow/procureflow-backend/pkg/enums"
	"github.com/procureflow/procureflow-backend/pkg/logger"
	"github.com/procureflow/procureflow-backend/pkg/redis"
)

type sessionManager interface {
	session.AccessSessionChecker
	Rotate(context.Context, string, string) (string, string, error)
	Revoke(context.Context, string) error
}

// RouterParams bundles everything the HTTP surface needs.
type RouterParams struct {
	Config             *config.Config
	Logger             *logger.Logger
	Redis              *redis.Client
	Sessions           sessionManager
	AuthService        auth.Service
	RegisterService    auth.RegisterService
	RoleResolver       *roles.Service
	RequisitionService requisitions.Service
	QuoteService       quotes.Service
	ReadyDeps          map[string]controllers.Pinger
}

func NewRouter(p RouterParams) http.Handler {
	cfg := p.Config
	logg := p.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
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
		r.Get("/ready", controllers.HealthReady(cfg, logg, p.ReadyDeps))
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, p.Redis, logg)).Post("/login", controllers.AuthLogin(p.AuthService, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, p.Redis, logg)).Post("/register", controllers.AuthRegister(p.RegisterService, p.AuthService, logg))
		r.Post("/logout", controllers.AuthLogout(p.Sessions, cfg.JWT, logg))
		r.Post("/refresh", controllers.AuthRefresh(p.Sessions, cfg.JWT, logg))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, p.Sessions, logg))

		r.Route("/requisitions", func(r chi.Router) {
			r.Get("/", controllers.RequisitionList(p.RequisitionService, logg))
			r.Get("/{requisitionId}", controllers.RequisitionDetail(p.RequisitionService, logg))
			r.Get("/{requisitionId}/quotes", controllers.QuotesForRequisition(p.QuoteService, logg))
			r.With(middleware.RequireRole(string(enums.RoleVendor), logg)).
				Post("/{requisitionId}/quotes", controllers.QuoteSubmit(p.QuoteService, p.RoleResolver, logg))
		})

		r.Route("/quotes", func(r chi.Router) {
			r.With(middleware.RequireRole(string(enums.RoleVendor), logg)).
				Get("/mine", controllers.MyQuotes(p.QuoteService, logg))
		})
	})

	return r
}
