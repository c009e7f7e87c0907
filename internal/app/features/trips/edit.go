// internal/app/features/trips/edit.go
package trips

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/budget"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/sanitize"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// EditForm handles GET /api/viagem/{viagemID}/editar: the raw trip fields
// for form prefill.
func (h *Handler) EditForm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	id, ok := tripID(w, r, "viagemID")
	if !ok {
		return
	}

	t, err := h.Trips.Get(ctx, p.ID, id)
	if err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("viagem editar: load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar viagem.")
		return
	}

	respond.JSON(w, http.StatusOK, editView{
		Destino:    t.Destino,
		ValorTotal: t.ValorTotal,
	})
}

// Edit handles PUT /api/viagem/{viagemID}/editar: updates destination and
// total budget, then reconciles the remaining balance against the existing
// activities. A reconcile failure after a successful update is reported as
// partial success.
func (h *Handler) Edit(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	id, ok := tripID(w, r, "viagemID")
	if !ok {
		return
	}

	var req updateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	if req.Destino == nil || req.ValorTotal == nil {
		respond.Erro(w, http.StatusBadRequest, "Destino e valor total são obrigatórios.")
		return
	}
	destino := sanitize.Label(*req.Destino)
	if destino == "" {
		respond.Erro(w, http.StatusBadRequest, "Destino e valor total são obrigatórios.")
		return
	}
	if *req.ValorTotal < 0 {
		respond.Erro(w, http.StatusBadRequest, "Valor total não pode ser negativo.")
		return
	}

	err := h.Trips.Update(ctx, p.ID, id, tripstore.UpdateFields{
		Destino:    &destino,
		ValorTotal: req.ValorTotal,
	})
	if err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Viagem não encontrada.")
			return
		}
		h.Log.Error("viagem editar: update failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao atualizar viagem.")
		return
	}

	if _, err := h.Reconciler.Reconcile(ctx, p.ID, id); err != nil {
		if !errors.Is(err, budget.ErrTripNotFound) {
			h.Log.Warn("viagem editar: reconcile failed", zap.Error(err))
		}
		respond.Erro(w, http.StatusPartialContent, "Viagem atualizada, mas erro ao atualizar saldo.")
		return
	}

	respond.Mensagem(w, http.StatusOK, "Viagem atualizada com sucesso!")
}
