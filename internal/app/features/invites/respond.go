// internal/app/features/invites/respond.go
package invites

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	invitestore "github.com/mytripteam/mytrip/internal/app/store/invites"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// Respond handles PUT /api/convites/{conviteID}: the guest accepts or
// declines a pending invitation. Responses are final: an invitation that
// has already been answered or revoked cannot be answered again.
func (h *Handler) Respond(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	conviteID, err := primitive.ObjectIDFromHex(chi.URLParam(r, "conviteID"))
	if err != nil {
		respond.Erro(w, http.StatusNotFound, "Convite não encontrado.")
		return
	}

	var req respondRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}

	var novoStatus, mensagem string
	switch req.Acao {
	case acaoAceitar:
		novoStatus = models.ConviteAceito
		mensagem = "Convite aceito com sucesso"
	case acaoRecusar:
		novoStatus = models.ConviteRecusado
		mensagem = "Convite recusado com sucesso"
	default:
		respond.Erro(w, http.StatusBadRequest, "Ação inválida. Use 'aceitar' ou 'recusar'.")
		return
	}

	inv, err := h.Invites.GetByID(ctx, p.ID, conviteID)
	if err != nil {
		if errors.Is(err, invitestore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Convite não encontrado.")
			return
		}
		h.Log.Error("convite respond: load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao responder convite.")
		return
	}
	if inv.Status != models.ConvitePendente {
		respond.Erro(w, http.StatusBadRequest, "Convite já respondido ou revogado.")
		return
	}

	if err := h.Invites.UpdateStatus(ctx, p.ID, conviteID, novoStatus); err != nil {
		if errors.Is(err, invitestore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Convite não encontrado.")
			return
		}
		h.Log.Error("convite respond: update failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao responder convite.")
		return
	}

	// Keep the owner-side mirror in step, best-effort. The guest copy just
	// written is authoritative; a stale mirror only affects the owner's
	// invite listing.
	matched, err := h.Invites.MirrorUpdateStatus(ctx, inv.OwnerID, inv.ViagemID, p.ID, novoStatus)
	if err != nil {
		h.Log.Warn("convite respond: mirror update failed",
			zap.String("owner_id", inv.OwnerID),
			zap.String("guest_id", p.ID),
			zap.Error(err))
	} else if !matched {
		h.Log.Info("convite respond: mirror record missing",
			zap.String("owner_id", inv.OwnerID),
			zap.String("guest_id", p.ID),
			zap.String("viagem_id", inv.ViagemID.Hex()))
	}

	respond.Mensagem(w, http.StatusOK, mensagem)
}
