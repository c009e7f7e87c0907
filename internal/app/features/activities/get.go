// internal/app/features/activities/get.go
package activities

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/mytripteam/mytrip/internal/app/policy/trippolicy"
	activitystore "github.com/mytripteam/mytrip/internal/app/store/activities"
	tripstore "github.com/mytripteam/mytrip/internal/app/store/trips"
	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Get handles GET /api/viagem/{viagemID}/atividade/{atividadeID}: the trip
// and one of its activities, for the edit-expense form.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	p, _ := auth.Current(r)
	h.get(w, r, p.ID, false)
}

// SharedGet is the shared-path variant with an explicit owner segment.
func (h *Handler) SharedGet(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	ownerID := chi.URLParam(r, "ownerID")
	viagemID, ok := objectID(w, r, "viagemID", "Recurso não encontrado.")
	if !ok {
		return
	}

	allowed, err := trippolicy.CanAccessTrip(ctx, h.Invites, p.ID, ownerID, viagemID)
	if err != nil {
		h.Log.Error("atividade shared get: access check failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar atividade.")
		return
	}
	if !allowed {
		respond.Erro(w, http.StatusForbidden, "Acesso negado a esta viagem.")
		return
	}

	h.get(w, r, ownerID, true)
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request, ownerID string, shared bool) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)
	viagemID, ok := objectID(w, r, "viagemID", "Recurso não encontrado.")
	if !ok {
		return
	}
	atividadeID, ok := objectID(w, r, "atividadeID", "Recurso não encontrado.")
	if !ok {
		return
	}

	t, err := h.Trips.Get(ctx, ownerID, viagemID)
	if err != nil {
		if errors.Is(err, tripstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}
		h.Log.Error("atividade get: trip load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar atividade.")
		return
	}

	a, err := h.Activities.Get(ctx, ownerID, viagemID, atividadeID)
	if err != nil {
		if errors.Is(err, activitystore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Recurso não encontrado.")
			return
		}
		h.Log.Error("atividade get: load failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao buscar atividade.")
		return
	}

	resp := map[string]any{
		"viagem":    t,
		"atividade": a,
	}
	if shared {
		resp["owner_id"] = ownerID
		resp["papel"] = "convidado"
		if p.ID == ownerID {
			resp["papel"] = "dono"
		}
	}
	respond.JSON(w, http.StatusOK, resp)
}
