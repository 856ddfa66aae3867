package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	// routes without authorization: login, public verification and
	// certificate claiming
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/login", h.login)
		r.Get("/api/verify/{id}", h.verify)
		r.Post("/api/events/{id}/claims", h.claimCertificate)
		r.Get("/api/claims/{id}/qr", h.claimQRCode)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Route("/api/letters", func(r chi.Router) {
			r.Post("/", h.createLetter)
			r.Get("/", h.listLetters)
			r.Get("/{id}", h.getLetter)
			r.Put("/{id}", h.updateLetter)
			r.Delete("/{id}", h.deleteLetter)
			r.Post("/{id}/sign", h.signLetter)
			r.Get("/{id}/qr", h.letterQRCode)
		})

		r.Route("/api/users", func(r chi.Router) {
			r.Post("/", h.createUser)
			r.Get("/", h.listUsers)
			r.Get("/{id}", h.getUser)
			r.Put("/{id}", h.updateUser)
			r.Delete("/{id}", h.deleteUser)
			r.Post("/{id}/reset-key", h.resetSecretKey)
		})

		r.Route("/api/events", func(r chi.Router) {
			r.Post("/", h.createEvent)
			r.Get("/", h.listEvents)
			r.Get("/{id}", h.getEvent)
			r.Put("/{id}", h.updateEvent)
			r.Delete("/{id}", h.deleteEvent)
			r.Get("/{id}/claims", h.listClaims)
		})

		r.Get("/api/logs", h.listActivityLogs)
		r.Get("/api/stats", h.stats)
	})

	return router
}
