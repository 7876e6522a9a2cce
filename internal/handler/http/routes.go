package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withMetrics)
	router.Use(middleware.Recoverer)

	// routes without authorization; profile lookup stays public because the
	// client resolves usernames to canonical emails before it can log in
	router.Group(func(r chi.Router) {
		r.With(h.withLoginRateLimit()).Post("/api/auth/login", h.login)
		r.Get("/api/profiles/lookup", h.lookupProfile)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes requiring a valid session token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Post("/api/auth/logout", h.logout)
		r.Get("/api/auth/session", h.session)

		r.Get("/api/profiles/me", h.currentProfile)
	})

	// administration, restricted to super admins and platform operators
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.requireAdmin)

		r.Patch("/api/admin/profiles/{username}/role", h.changeRole)
		r.Post("/api/admin/profiles/{username}/activate", h.activateProfile)
		r.Post("/api/admin/profiles/{username}/deactivate", h.deactivateProfile)
		r.Post("/api/admin/seed", h.seed)
	})

	router.Method("GET", "/metrics", h.metrics.Handler())

	return router
}
