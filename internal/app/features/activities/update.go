// internal/app/features/activities/update.go
package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/policy/trippolicy"
	activitystore "github.com/mytripteam/mytrip/internal/app/store/activities"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/sanitize"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Update handles PUT /api/viagem/{viagemID}/atividade/{atividadeID}.
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.Current(r)
	h.update(w, r, p.ID)
}

// SharedUpdate is the shared-path variant with an explicit owner segment.
func (h *Handler) SharedUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	ownerID := chi.URLParam(r, "ownerID")
	viagemID, ok := objectID(w, r, "viagemID", "Atividade não encontrada.")
	if !ok {
		return
	}

	allowed, err := trippolicy.CanAccessTrip(ctx, h.Invites, p.ID, ownerID, viagemID)
	if err != nil {
		h.Log.Error("atividade shared update: access check failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao editar atividade.")
		return
	}
	if !allowed {
		respond.Erro(w, http.StatusForbidden, "Acesso negado a esta viagem.")
		return
	}

	h.update(w, r, ownerID)
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request, ownerID string) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	viagemID, ok := objectID(w, r, "viagemID", "Atividade não encontrada.")
	if !ok {
		return
	}
	atividadeID, ok := objectID(w, r, "atividadeID", "Atividade não encontrada.")
	if !ok {
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	fields := activitystore.UpdateFields{ValorAtividade: req.ValorAtividade}
	if req.NomeAtividade != nil {
		nome := sanitize.Label(*req.NomeAtividade)
		if nome == "" {
			respond.Erro(w, http.StatusBadRequest, "Nome e valor da atividade são obrigatórios.")
			return
		}
		fields.NomeAtividade = &nome
	}
	if fields.NomeAtividade == nil && fields.ValorAtividade == nil {
		respond.Erro(w, http.StatusBadRequest, "Nome e valor da atividade são obrigatórios.")
		return
	}

	if err := h.Activities.Update(ctx, ownerID, viagemID, atividadeID, fields); err != nil {
		if errors.Is(err, activitystore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Atividade não encontrada.")
			return
		}
		h.Log.Error("atividade update: store failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao editar atividade.")
		return
	}

	restante, err := h.Reconciler.Reconcile(ctx, ownerID, viagemID)
	if err != nil {
		h.Log.Warn("atividade update: reconcile failed", zap.Error(err))
		respond.Erro(w, http.StatusPartialContent, "Atividade editada, mas erro ao atualizar saldo.")
		return
	}

	respond.JSON(w, http.StatusOK, mutationResponse{
		Mensagem:     "Atividade editada com sucesso!",
		NovoRestante: restante,
	})
}
