// internal/app/features/travelers/lookup.go
package travelers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Lookup handles GET /api/usuario/{email}: fetches a traveler by e-mail.
// The frontend uses it to resolve the signed-in user after OAuth callbacks.
func (h *Handler) Lookup(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	t, err := h.Travelers.GetByEmail(ctx, chi.URLParam(r, "email"))
	if err != nil {
		if errors.Is(err, travelerstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}
		h.Log.Error("usuario: lookup failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar usuário.")
		return
	}

	respond.JSON(w, http.StatusOK, t)
}
