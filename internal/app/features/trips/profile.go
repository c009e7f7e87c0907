// internal/app/features/trips/profile.go
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

// Profile handles GET /api/perfil: every trip the caller can see — their
// own (papel "dono") plus trips shared with them through an accepted
// invitation (papel "convidado"). A shared trip whose record has since
// been deleted is silently skipped; the stale invitation does not break
// the listing.
func (h *Handler) Profile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	p, _ := auth.Current(r)

	own, err := h.Trips.List(ctx, p.ID)
	if err != nil {
		h.Log.Error("perfil: list trips failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar perfil.")
		return
	}

	viagens := make([]tripSummary, 0, len(own))
	for _, t := range own {
		viagens = append(viagens, newTripSummary(t, papelDono))
	}

	convites, err := h.Invites.ListAcceptedByGuest(ctx, p.ID)
	if err != nil {
		h.Log.Error("perfil: list accepted invites failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar perfil.")
		return
	}
	for _, inv := range convites {
		t, err := h.Trips.Get(ctx, inv.OwnerID, inv.ViagemID)
		if err != nil {
			if !errors.Is(err, tripstore.ErrNotFound) {
				h.Log.Warn("perfil: shared trip load failed",
					zap.String("owner_id", inv.OwnerID),
					zap.String("viagem_id", inv.ViagemID.Hex()),
					zap.Error(err))
			}
			continue
		}
		v := newTripSummary(t, papelConvidado)
		v.DonoID = inv.OwnerID
		viagens = append(viagens, v)
	}

	respond.JSON(w, http.StatusOK, profileResponse{
		QtdViagens: len(viagens),
		Viagens:    viagens,
	})
}
