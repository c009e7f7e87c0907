// internal/app/features/trips/delete.go
package trips

import (
	"context"
	"errors"
	"net/http"

	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Delete handles DELETE /api/viagem/{viagemID}: removes the trip and its
// activities. Only the owner's own trips are addressable here, so a guest
// attempting a delete simply finds nothing.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, _ := auth.Current(r)
	id, ok := tripID(w, r, "viagemID")
	if !ok {
		return
	}

	if err := h.Trips.DeleteCascade(ctx, p.ID, id); err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("viagem delete: cascade failed",
			zap.String("owner_id", p.ID), zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao excluir viagem.")
		return
	}

	respond.Mensagem(w, http.StatusOK, "Viagem excluída com sucesso!")
}
