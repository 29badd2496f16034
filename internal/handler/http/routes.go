package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withRequestID)
	router.Use(h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/register", h.register)
		r.Post("/api/login", h.login)
		r.Post("/api/request-password-reset", h.requestPasswordReset)
		r.Post("/api/reset-password", h.resetPassword)
		r.Get("/api/fics", h.approvedFics)
		r.Get("/api/search", h.searchFics)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes that require a valid bearer token
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/check-auth", h.checkAuth)
		r.Post("/api/bind-telegram", h.bindTelegram)
		r.Post("/api/submit-fic", h.submitFic)
	})

	// moderation routes, admin only
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Use(h.adminOnly)

		r.Get("/api/check-admin", h.checkAdmin)
		r.Get("/api/pending-fics", h.pendingFics)
		r.Post("/api/update-fic", h.updateFic)
		r.Post("/api/set-mark", h.setMark)
		r.Post("/api/update-age", h.updateAge)
	})

	return router
}
