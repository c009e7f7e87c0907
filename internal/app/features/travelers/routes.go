// internal/app/features/travelers/routes.go
package travelers

import (
	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
)

// Register attaches the traveler account routes to the shared /api router.
func Register(r chi.Router, h *Handler) {
	r.Post("/cadastro", h.Register)
	r.Post("/login", h.Login)
	r.Get("/confirmar/{token}", h.Confirm)
	r.Get("/usuario/{email}", h.Lookup)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequirePrincipal)
		pr.Get("/sair", h.Logout)
	})
}

// Routes returns the traveler routes as a standalone router; used by tests.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	Register(r, h)
	return r
}
