// internal/app/features/activities/routes.go
package activities

import (
	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
)

// Register attaches the activity routes to the shared /api router. Every
// route requires an authenticated caller.
func Register(r chi.Router, h *Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequirePrincipal)

		pr.Post("/viagem/{viagemID}/atividade", h.Create)
		pr.Get("/viagem/{viagemID}/atividade/{atividadeID}", h.Get)
		pr.Put("/viagem/{viagemID}/atividade/{atividadeID}", h.Update)
		pr.Delete("/viagem/{viagemID}/atividade/{atividadeID}", h.Delete)

		// Shared variants with an explicit owner segment.
		pr.Post("/viagem/{ownerID}/{viagemID}/atividade", h.SharedCreate)
		pr.Get("/viagem/{ownerID}/{viagemID}/atividade/{atividadeID}", h.SharedGet)
		pr.Put("/viagem/{ownerID}/{viagemID}/atividade/{atividadeID}", h.SharedUpdate)
		pr.Delete("/viagem/{ownerID}/{viagemID}/atividade/{atividadeID}", h.SharedDelete)
	})
}

// Routes returns the activity routes as a standalone router; used by tests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	Register(r, h)
	return r
}
