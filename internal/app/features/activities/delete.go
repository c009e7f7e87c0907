// internal/app/features/activities/delete.go
package activities

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/policy/trippolicy"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Delete handles DELETE /api/viagem/{viagemID}/atividade/{atividadeID}.
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.Current(r)
	h.delete(w, r, p.ID)
}

// SharedDelete is the shared-path variant with an explicit owner segment.
func (h *Handler) SharedDelete(w http.ResponseWriter, r *http.Request) {
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
		h.Log.Error("atividade shared delete: access check failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao excluir atividade.")
		return
	}
	if !allowed {
		respond.Erro(w, http.StatusForbidden, "Acesso negado a esta viagem.")
		return
	}

	h.delete(w, r, ownerID)
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request, ownerID string) {
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

	deleted, err := h.Activities.Delete(ctx, ownerID, viagemID, atividadeID)
	if err != nil {
		h.Log.Error("atividade delete: store failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao excluir atividade.")
		return
	}
	if !deleted {
		respond.Erro(w, http.StatusNotFound, "Atividade não encontrada.")
		return
	}

	restante, err := h.Reconciler.Reconcile(ctx, ownerID, viagemID)
	if err != nil {
		h.Log.Warn("atividade delete: reconcile failed", zap.Error(err))
		respond.Erro(w, http.StatusPartialContent, "Atividade excluída, mas erro ao atualizar saldo.")
		return
	}

	respond.JSON(w, http.StatusOK, mutationResponse{
		Mensagem:     "Atividade excluída com sucesso!",
		NovoRestante: restante,
	})
}
