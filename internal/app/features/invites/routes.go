// internal/app/features/invites/routes.go
package invites

import (
	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
)

// Register attaches the invitation routes to the shared /api router.
// Every route requires an authenticated caller.
func Register(r chi.Router, h *Handler) {
	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequirePrincipal)

		pr.Post("/viagem/{viagemID}/convites", h.Create)
		pr.Get("/viagem/{viagemID}/convites", h.ListForTrip)
		pr.Delete("/viagem/{viagemID}/convites/{guestID}", h.Revoke)

		pr.Get("/convites", h.ListMine)
		pr.Put("/convites/{conviteID}", h.Respond)
	})
}

// Routes returns the invitation routes as a standalone router; used by tests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	Register(r, h)
	return r
}
