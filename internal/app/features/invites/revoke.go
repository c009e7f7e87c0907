// internal/app/features/invites/revoke.go
package invites

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Revoke handles DELETE /api/viagem/{viagemID}/convites/{guestID}: the
// owner withdraws a guest's invitation. Revocation transitions the records
// rather than deleting them, so a revoked guest's access is denied by the
// same status check as everyone else's.
func (h *Handler) Revoke(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	viagemID, ok := inviteTripID(w, r)
	if !ok {
		return
	}
	guestID := chi.URLParam(r, "guestID")

	if _, err := h.Trips.Get(ctx, p.ID, viagemID); err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("convite revoke: trip load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao revogar convite.")
		return
	}

	revoked, err := h.Invites.RevokeAll(ctx, p.ID, viagemID, guestID)
	if err != nil {
		h.Log.Error("convite revoke: store failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao revogar convite.")
		return
	}
	if !revoked {
		respond.Mensagem(w, http.StatusOK, "Nenhum convite encontrado para revogar (talvez já tenha sido removido).")
		return
	}

	respond.Mensagem(w, http.StatusOK, "Convite revogado com sucesso")
}
