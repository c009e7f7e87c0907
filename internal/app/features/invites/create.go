// internal/app/features/invites/create.go
package invites

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/mailer"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.uber.org/zap"
)

// Create handles POST /api/viagem/{viagemID}/convites: the owner invites
// another registered traveler to a trip. The new invitation starts
// pending; the guest is notified by e-mail, best-effort.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	viagemID, ok := inviteTripID(w, r)
	if !ok {
		return
	}

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	if req.EmailConvidado == "" {
		respond.Erro(w, http.StatusBadRequest, "E-mail do convidado é obrigatório.")
		return
	}

	trip, err := h.Trips.Get(ctx, p.ID, viagemID)
	if err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("convite create: trip load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao criar convite.")
		return
	}

	guest, err := h.Travelers.GetByEmail(ctx, req.EmailConvidado)
	if err != nil {
		if errors.Is(err, travelerstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Convidado não encontrado.")
			return
		}
		h.Log.Error("convite create: guest lookup failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao criar convite.")
		return
	}

	// Owner name snapshot for display in the guest's invite list.
	var ownerNome string
	if owner, err := h.Travelers.GetByEmail(ctx, p.ID); err == nil {
		ownerNome = owner.Nome
	}

	inv, err := h.Invites.Create(ctx, models.Invitation{
		GuestID:           guest.ID,
		OwnerID:           p.ID,
		ViagemID:          viagemID,
		DestinoSnapshot:   trip.Destino,
		OwnerNomeSnapshot: ownerNome,
	})
	if err != nil {
		h.Log.Error("convite create: insert failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao criar convite.")
		return
	}

	h.sendInvite(guest.Email, ownerNome, trip.Destino)

	respond.JSON(w, http.StatusCreated, map[string]string{
		"mensagem":   "Convite criado",
		"convite_id": inv.ID.Hex(),
	})
}

func (h *Handler) sendInvite(to, ownerNome, destino string) {
	if h.Mail == nil {
		return
	}
	msg := mailer.BuildInviteEmail(mailer.InviteEmailData{
		SiteName:  h.SiteName,
		OwnerNome: ownerNome,
		Destino:   destino,
	})
	msg.To = to
	if err := h.Mail.Send(msg); err != nil {
		h.Log.Warn("convite create: invite e-mail failed",
			zap.String("to", to), zap.Error(err))
	}
}
