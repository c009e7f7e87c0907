// internal/app/features/authgoogle/routes.go
package authgoogle

import "github.com/go-chi/chi/v5"

// RegisterRoot attaches the OAuth entry point to the root router.
func RegisterRoot(r chi.Router, h *Handler) {
	r.Get("/login/google", h.ServeLogin)
}

// RegisterAPI attaches the OAuth callback to the shared /api router.
func RegisterAPI(r chi.Router, h *Handler) {
	r.Get("/auth/google", h.ServeCallback)
}
