// internal/app/features/travelers/handler.go
package travelers

import (
	"context"
	"net/http"

	"github.com/mytripteam/mytrip/internal/app/system/mailer"
	"github.com/mytripteam/mytrip/internal/app/system/ratelimit"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.uber.org/zap"
)

// TravelerStore is the slice of the traveler store this feature needs.
type TravelerStore interface {
	Create(ctx context.Context, t models.Traveler) (models.Traveler, error)
	GetByEmail(ctx context.Context, email string) (models.Traveler, error)
	SetVerified(ctx context.Context, email string, verified bool) error
}

// TokenSigner issues and verifies e-mail confirmation tokens.
type TokenSigner interface {
	ConfirmToken(email string) (string, error)
	ConfirmEmail(token string) (string, error)
}

// MailSender dispatches outbound e-mail. Delivery is best-effort: a send
// failure is logged and never fails the request that triggered it.
type MailSender interface {
	Send(e mailer.Email) error
}

// Sessions establishes and clears the browser session cookie.
type Sessions interface {
	SignIn(w http.ResponseWriter, r *http.Request, travelerID string) error
	SignOut(w http.ResponseWriter, r *http.Request) error
}

// Handler is the feature-level handler for traveler accounts: registration,
// e-mail confirmation, password login and logout.
type Handler struct {
	Travelers TravelerStore
	Tokens    TokenSigner
	Mail      MailSender // nil disables outbound e-mail
	Sessions  Sessions   // nil disables session cookies
	Log       *zap.Logger

	Limiter *ratelimit.LoginLimiter // nil disables login throttling

	BaseURL  string // where /api/confirmar/{token} is reachable
	SiteName string
	TokenTTL string // human-readable token lifetime, e.g. "1 hora"
}

func NewHandler(travelers TravelerStore, tokens TokenSigner, mail MailSender, sessions Sessions, baseURL, siteName, tokenTTL string, logger *zap.Logger) *Handler {
	return &Handler{
		Travelers: travelers,
		Tokens:    tokens,
		Mail:      mail,
		Sessions:  sessions,
		Log:       logger,
		BaseURL:   baseURL,
		SiteName:  siteName,
		TokenTTL:  tokenTTL,
	}
}
