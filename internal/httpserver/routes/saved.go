package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/herathmmr/stash/internal/httpserver/deps"
	"github.com/herathmmr/stash/internal/httpserver/handlers"
	"github.com/herathmmr/stash/internal/httpserver/mw"
)

func init() { Register(registerSaved) }

// registerSaved mounts the saved-list API. Everything under /api/saved is
// session-gated, and mutations are rate limited per user.
func registerSaved(r chi.Router, d deps.Deps) {
	limit := mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.RateLimitBurst,
		RefillPerMin: d.RateLimitPerMin,
		TrustProxy:   d.TrustProxy,
	})

	r.Route("/api/saved", func(r chi.Router) {
		r.Use(mw.Session(d.Logger))

		r.Get("/", handlers.SavedList(d))

		r.Group(func(r chi.Router) {
			r.Use(limit)
			r.Post("/{kind}/{id}/toggle", handlers.Toggle(d))
			r.Post("/{kind}/{id}/delete", handlers.RequestDelete(d))
			r.Post("/delete/confirm", handlers.ConfirmDelete(d))
			r.Post("/delete/cancel", handlers.CancelDelete(d))
		})
	})
}
