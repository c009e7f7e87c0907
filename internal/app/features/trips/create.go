// internal/app/features/trips/create.go
package trips

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/sanitize"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.uber.org/zap"
)

// Create handles POST /api/viagem/criar. The remaining balance starts
// equal to the total budget.
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, _ := auth.Current(r)

	var req createRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	req.Destino = sanitize.Label(req.Destino)
	if req.Destino == "" || req.ValorTotal == nil {
		respond.Erro(w, http.StatusBadRequest, "Destino e valor total são obrigatórios.")
		return
	}
	if *req.ValorTotal < 0 {
		respond.Erro(w, http.StatusBadRequest, "Valor total não pode ser negativo.")
		return
	}

	t, err := h.Trips.Create(ctx, models.Trip{
		OwnerID:    p.ID,
		Destino:    req.Destino,
		ValorTotal: *req.ValorTotal,
	})
	if err != nil {
		h.Log.Error("viagem criar: insert failed",
			zap.String("owner_id", p.ID), zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao criar viagem.")
		return
	}

	respond.JSON(w, http.StatusCreated, newTripView(t))
}
