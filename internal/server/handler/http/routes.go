package http

import (
	"net/http"

	"github.com/atinyakov/LocalSites/internal/middleware"
	"go.uber.org/zap"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// Handlers groups the handlers mounted by NewRouter.
type Handlers struct {
	Health    *HealthHandler
	Templates *TemplateHandler
	Auth      *AuthHandler
	Contact   *ContactHandler
	Static    *StaticHandler
}

// NewRouter constructs the HTTP handler serving the mock API and the site.
//
// Routes:
//
//	GET  /api/health          → Health
//	GET  /api/templates       → Templates.List
//	GET  /api/templates/{id}  → Templates.Get
//	POST /api/auth/login      → Auth.Login
//	POST /api/auth/signup     → Auth.Signup
//	POST /api/contact         → Contact.Contact
//	GET  /*                   → Static (unknown paths redirect to /)
//	HEAD /*                   → Static
//
// Middleware chain (applied in order): request ID, real IP, request
// logging, panic recovery, security headers, CORS, compression. POST
// bodies of any media type other than JSON or a URL-encoded form reach
// the handlers as empty requests.
func NewRouter(h Handlers, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(middleware.WithRequestLogging(logger))
	r.Use(middleware.Recover(logger))
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.CORS())
	r.Use(chiMiddleware.Compress(5))

	// Must be set before Route so the /api subrouter inherits it.
	r.NotFound(h.Static.ServeHTTP)

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", h.Health.Health)
		r.Get("/templates", h.Templates.List)
		r.Get("/templates/{id}", h.Templates.Get)

		r.Post("/auth/login", h.Auth.Login)
		r.Post("/auth/signup", h.Auth.Signup)
		r.Post("/contact", h.Contact.Contact)
	})

	r.Get("/*", h.Static.ServeHTTP)
	r.Head("/*", h.Static.ServeHTTP)

	return r
}
