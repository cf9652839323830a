package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/pratik-mahalle/bizdesk/docs"
	"github.com/pratik-mahalle/bizdesk/internal/api/handlers"
	"github.com/pratik-mahalle/bizdesk/internal/api/middleware"
	"github.com/pratik-mahalle/bizdesk/internal/config"
	"github.com/pratik-mahalle/bizdesk/internal/domain/user"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/logger"
	"github.com/pratik-mahalle/bizdesk/internal/pkg/metrics"
)

// Handlers groups every HTTP handler the router mounts
type Handlers struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Invoice   *handlers.InvoiceHandler
	Tier      *handlers.TierHandler
	Lead      *handlers.LeadHandler
	Task      *handlers.TaskHandler
	Team      *handlers.TeamHandler
	Campaign  *handlers.CampaignHandler
	Post      *handlers.PostHandler
	Payment   *handlers.PaymentHandler
	Portfolio *handlers.PortfolioHandler
	Stats     *handlers.StatsHandler
	Admin     *handlers.AdminHandler
}

// Deps are the non-handler collaborators of the router
type Deps struct {
	Users   user.Repository
	Limiter *middleware.RateLimiter
}

// New builds the HTTP handler tree
func New(cfg *config.Config, log *logger.Logger, deps Deps, h *Handlers) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID())
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(middleware.Recovery(log))
	r.Use(metrics.Middleware)
	r.Use(middleware.SecurityHeaders)
	r.Use(middleware.DefaultCORS(cfg.Server.FrontendURL))
	if deps.Limiter != nil {
		r.Use(middleware.RateLimit(deps.Limiter))
	}

	// Operational endpoints
	r.Get("/health", h.Health.Healthz)
	r.Get("/healthz", h.Health.Healthz)
	r.Get("/readyz", h.Health.Readyz)
	r.Handle("/metrics", metrics.Handler())
	r.Get("/swagger/*", httpSwagger.WrapHandler)

	r.Route("/api/v1", func(r chi.Router) {
		// Public routes
		r.Post("/auth/register", h.Auth.Register)
		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/refresh", h.Auth.Refresh)
		r.Post("/auth/logout", h.Auth.Logout)
		r.Get("/tier/plans", h.Tier.Plans)
		r.Post("/invoices/calculate", h.Invoice.Calculate)
		r.Get("/public/portfolio/{slug}", h.Portfolio.GetPublic)

		// Protected routes
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(cfg.Auth.JWTSecret))

			r.Get("/auth/me", h.Auth.Me)
			r.Put("/auth/me", h.Auth.UpdateProfile)

			r.Route("/invoices", func(r chi.Router) {
				r.Get("/", h.Invoice.List)
				r.Post("/", h.Invoice.Create)
				r.Get("/export.csv", h.Invoice.ExportCSV)
				r.Post("/preview.pdf", h.Invoice.PreviewPDF)
				r.Get("/{id}", h.Invoice.Get)
				r.Put("/{id}", h.Invoice.Update)
				r.Delete("/{id}", h.Invoice.Delete)
				r.Patch("/{id}/status", h.Invoice.UpdateStatus)
				r.Get("/{id}/pdf", h.Invoice.ExportPDF)
			})

			r.Route("/tier", func(r chi.Router) {
				r.Get("/", h.Tier.Status)
				r.Get("/features/{feature}", h.Tier.CheckFeature)
			})

			r.Route("/leads", func(r chi.Router) {
				r.Get("/", h.Lead.List)
				r.Post("/", h.Lead.Create)
				r.Get("/summary", h.Lead.Summary)
				r.Get("/{id}", h.Lead.Get)
				r.Put("/{id}", h.Lead.Update)
				r.Delete("/{id}", h.Lead.Delete)
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", h.Task.List)
				r.Post("/", h.Task.Create)
				r.Get("/{id}", h.Task.Get)
				r.Put("/{id}", h.Task.Update)
				r.Patch("/{id}/status", h.Task.UpdateStatus)
				r.Delete("/{id}", h.Task.Delete)
			})

			r.Route("/team", func(r chi.Router) {
				r.Get("/", h.Team.List)
				r.Post("/", h.Team.Add)
				r.Put("/{id}", h.Team.Update)
				r.Delete("/{id}", h.Team.Remove)
			})

			r.Route("/campaigns", func(r chi.Router) {
				r.Get("/", h.Campaign.List)
				r.Post("/", h.Campaign.Create)
				r.Get("/{id}", h.Campaign.Get)
				r.Put("/{id}", h.Campaign.Update)
				r.Delete("/{id}", h.Campaign.Delete)
			})

			r.Route("/posts", func(r chi.Router) {
				r.Get("/", h.Post.List)
				r.Post("/", h.Post.Create)
				r.Get("/{id}", h.Post.Get)
				r.Put("/{id}", h.Post.Update)
				r.Delete("/{id}", h.Post.Delete)
			})

			r.Route("/payments", func(r chi.Router) {
				r.Get("/", h.Payment.List)
				r.Post("/", h.Payment.Create)
			})

			r.Get("/portfolio", h.Portfolio.GetMine)
			r.Put("/portfolio", h.Portfolio.Save)

			r.Get("/stats", h.Stats.Dashboard)

			// Admin
			r.Route("/admin", func(r chi.Router) {
				r.Use(middleware.RequireAdmin(deps.Users))

				r.Get("/users", h.Admin.ListUsers)
				r.Get("/payments", h.Payment.ListAll)
				r.Patch("/payments/{id}", h.Payment.UpdateStatus)
				r.Get("/jobs", h.Admin.ListJobs)
				r.Get("/jobs/{name}", h.Admin.JobHistory)
				r.Post("/jobs/{name}/run", h.Admin.TriggerJob)
			})
		})
	})

	return r
}
