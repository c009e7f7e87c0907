// internal/app/features/trips/routes.go
package trips

import (
	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
)

// Register attaches the trip routes to the shared /api router. Every route
// requires an authenticated caller.
func Register(r chi.Router, h *Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequirePrincipal)

		pr.Get("/perfil", h.Profile)

		pr.Post("/viagem/criar", h.Create)
		pr.Get("/viagem/{viagemID}", h.Detail)
		pr.Delete("/viagem/{viagemID}", h.Delete)
		pr.Get("/viagem/{viagemID}/editar", h.EditForm)
		pr.Put("/viagem/{viagemID}/editar", h.Edit)

		// Shared variant with an explicit owner segment, readable by the
		// owner and by accepted guests.
		pr.Get("/viagem/{ownerID}/{viagemID}", h.SharedDetail)
	})
}

// Routes returns the trip routes as a standalone router; used by tests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	Register(r, h)
	return r
}
