package http

import (
	"github.com/MKhiriev/go-tour-auth/models"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)

	router.Route("/api/v1/users", func(r chi.Router) {
		// routes without authorization
		r.Group(func(r chi.Router) {
			r.Use(h.tryAuth)
			r.Post("/signup", h.signup)
			r.Post("/login", h.login)
			r.Get("/logout", h.logout)
			r.Post("/forgotPassword", h.forgotPassword)
			r.Patch("/resetPassword/{token}", h.resetPassword)
		})

		// routes for authenticated users
		r.Group(func(r chi.Router) {
			r.Use(h.auth)
			r.Get("/me", h.me)
			r.Patch("/updateMyPassword", h.updatePassword)
			r.Delete("/deleteMe", h.deleteMe)
		})

		// administrative routes
		r.Group(func(r chi.Router) {
			r.Use(h.auth, h.restrictTo(models.RoleAdmin, models.RoleLeadGuide))
			r.Delete("/{id}", h.deleteUser)
		})
	})

	return router
}
