// internal/app/features/activities/create.go
package activities

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/policy/trippolicy"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/sanitize"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.uber.org/zap"
)

// Create handles POST /api/viagem/{viagemID}/atividade: the owner logs an
// expense on their own trip.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.Current(r)
	h.create(w, r, p.ID, false)
}

// SharedCreate handles POST /api/viagem/{ownerID}/{viagemID}/atividade:
// an accepted guest (or the owner) logs an expense. The activity records
// who created it.
func (h *Handler) SharedCreate(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	ownerID := chi.URLParam(r, "ownerID")
	viagemID, ok := objectID(w, r, "viagemID", "Viagem não encontrada.")
	if !ok {
		return
	}

	allowed, err := trippolicy.CanAccessTrip(ctx, h.Invites, p.ID, ownerID, viagemID)
	if err != nil {
		h.Log.Error("atividade shared create: access check failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao criar atividade.")
		return
	}
	if !allowed {
		respond.Erro(w, http.StatusForbidden, "Acesso negado a esta viagem.")
		return
	}

	h.create(w, r, ownerID, true)
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request, ownerID string, shared bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	viagemID, ok := objectID(w, r, "viagemID", "Viagem não encontrada.")
	if !ok {
		return
	}

	var req activityRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	var nome string
	if req.NomeAtividade != nil {
		nome = sanitize.Label(*req.NomeAtividade)
	}
	if nome == "" || req.ValorAtividade == nil {
		respond.Erro(w, http.StatusBadRequest, "Nome e valor da atividade são obrigatórios.")
		return
	}

	if _, err := h.Trips.Get(ctx, ownerID, viagemID); err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("atividade create: trip load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao criar atividade.")
		return
	}

	a := models.Activity{
		OwnerID:        ownerID,
		ViagemID:       viagemID,
		NomeAtividade:  nome,
		ValorAtividade: *req.ValorAtividade,
	}
	if shared {
		a.CriadoPor = p.ID
	}
	if _, err := h.Activities.Create(ctx, a); err != nil {
		h.Log.Error("atividade create: insert failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao criar atividade.")
		return
	}

	restante, err := h.Reconciler.Reconcile(ctx, ownerID, viagemID)
	if err != nil {
		h.Log.Warn("atividade create: reconcile failed", zap.Error(err))
		respond.Erro(w, http.StatusPartialContent, "Atividade criada, mas erro ao atualizar saldo.")
		return
	}

	respond.JSON(w, http.StatusCreated, mutationResponse{
		Mensagem:     "Atividade criada",
		NovoRestante: restante,
	})
}
