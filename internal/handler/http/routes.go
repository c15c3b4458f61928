package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer, h.withTraceID, h.withLogging, withGZip)
	if h.requestTimeout > 0 {
		router.Use(middleware.Timeout(h.requestTimeout))
	}

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/signup", h.signUp)
		r.Post("/api/auth/login", h.login)
		r.With(h.withSaltRateLimit).Get("/api/crypto/salt", h.salt)
		r.Get("/api/version", h.getServerVersion)
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Get("/api/vault", h.listVault)
		r.Post("/api/vault", h.createVaultRecord)
		r.Put("/api/vault/{id}", h.updateVaultRecord)
		r.Delete("/api/vault/{id}", h.deleteVaultRecord)
	})

	router.NotFound(notFound)
	router.MethodNotAllowed(CheckHTTPMethod())

	return router
}
