// internal/app/features/travelers/login.go
package travelers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"go.uber.org/zap"
)

// Login handles POST /api/login: password authentication. On success it
// returns the traveler record and, when sessions are enabled, sets the
// session cookie so browsers can talk to this service directly.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	if req.Email == "" || req.Senha == "" {
		respond.Erro(w, http.StatusBadRequest, "E-mail e senha são obrigatórios.")
		return
	}

	if h.Limiter != nil {
		if ok, reason := h.Limiter.Check(r, req.Email); !ok {
			respond.Erro(w, http.StatusTooManyRequests, reason)
			return
		}
	}

	t, err := h.Travelers.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, travelerstore.ErrNotFound) {
			respond.Erro(w, http.StatusUnauthorized, "Credenciais inválidas.")
			return
		}
		h.Log.Error("login: lookup failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao efetuar login.")
		return
	}

	if !t.HasPassword() || !travelerstore.CheckPassword(*t.SenhaHash, req.Senha) {
		respond.Erro(w, http.StatusUnauthorized, "Credenciais inválidas.")
		return
	}
	if !t.IsVerified {
		respond.Erro(w, http.StatusForbidden, "Conta não ativada. Verifique seu e-mail.")
		return
	}

	if h.Limiter != nil {
		h.Limiter.ResetEmail(req.Email)
	}

	if h.Sessions != nil {
		if err := h.Sessions.SignIn(w, r, t.ID); err != nil {
			h.Log.Warn("login: session save failed", zap.Error(err))
		}
	}

	respond.JSON(w, http.StatusOK, t)
}
