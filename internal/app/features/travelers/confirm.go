// internal/app/features/travelers/confirm.go
package travelers

import (
	"context"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/app/system/tokens"
	"go.uber.org/zap"
)

// Confirm handles GET /api/confirmar/{token}: verifies the e-mail token and
// activates the account. Confirming an already-verified account is a no-op
// that still returns the traveler.
func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	email, err := h.Tokens.ConfirmEmail(chi.URLParam(r, "token"))
	if err != nil {
		if errors.Is(err, tokens.ErrExpired) {
			respond.Erro(w, http.StatusGone, "O link expirou.")
			return
		}
		respond.Erro(w, http.StatusBadRequest, "O link é inválido.")
		return
	}

	t, err := h.Travelers.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, travelerstore.ErrNotFound) {
			respond.Erro(w, http.StatusNotFound, "Usuário não encontrado.")
			return
		}
		h.Log.Error("confirmar: lookup failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao confirmar conta.")
		return
	}

	if !t.IsVerified {
		if err := h.Travelers.SetVerified(ctx, email, true); err != nil {
			h.Log.Error("confirmar: set verified failed",
				zap.String("email", email), zap.Error(err))
			respond.Erro(w, http.StatusInternalServerError, "Erro ao confirmar conta.")
			return
		}
		t.IsVerified = true
	}

	respond.JSON(w, http.StatusOK, t)
}
