// internal/app/features/travelers/register.go
package travelers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	"github.com/mytripteam/mytrip/internal/app/system/mailer"
	"github.com/mytripteam/mytrip/internal/app/system/respond"
	"github.com/mytripteam/mytrip/internal/app/system/sanitize"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.uber.org/zap"
)

// Register handles POST /api/cadastro: creates an unverified traveler and
// e-mails the confirmation link.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.Erro(w, http.StatusBadRequest, "Corpo da requisição inválido.")
		return
	}
	req.Nome = sanitize.Label(req.Nome)
	if req.Nome == "" || req.Email == "" || req.Senha == "" {
		respond.Erro(w, http.StatusBadRequest, "Nome, e-mail e senha são obrigatórios.")
		return
	}

	hash, err := travelerstore.HashPassword(req.Senha)
	if err != nil {
		h.Log.Error("cadastro: password hash failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao registrar usuário.")
		return
	}

	t, err := h.Travelers.Create(ctx, models.Traveler{
		Nome:      req.Nome,
		Email:     req.Email,
		SenhaHash: &hash,
	})
	if err != nil {
		if errors.Is(err, travelerstore.ErrDuplicateEmail) {
			respond.Erro(w, http.StatusConflict, "E-mail já cadastrado.")
			return
		}
		h.Log.Error("cadastro: create traveler failed", zap.Error(err))
		respond.Erro(w, http.StatusInternalServerError, "Erro ao registrar usuário.")
		return
	}

	h.sendConfirmation(t)

	respond.Mensagem(w, http.StatusCreated, "Usuário registrado! Verifique seu e-mail para ativar a conta.")
}

// sendConfirmation e-mails the activation link. Failures are logged only:
// the account exists either way and the user can ask for a resend.
func (h *Handler) sendConfirmation(t models.Traveler) {
	if h.Mail == nil {
		return
	}
	token, err := h.Tokens.ConfirmToken(t.Email)
	if err != nil {
		h.Log.Error("cadastro: confirmation token failed",
			zap.String("email", t.Email), zap.Error(err))
		return
	}
	msg := mailer.BuildConfirmationEmail(mailer.ConfirmationEmailData{
		SiteName:   h.SiteName,
		ConfirmURL: h.BaseURL + "/api/confirmar/" + token,
		ExpiresIn:  h.TokenTTL,
	})
	msg.To = t.Email
	if err := h.Mail.Send(msg); err != nil {
		h.Log.Warn("cadastro: confirmation e-mail failed",
			zap.String("email", t.Email), zap.Error(err))
	}
}
