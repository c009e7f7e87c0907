// internal/app/features/authgoogle/handler.go
package authgoogle

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	travelerstore "github.com/mytripteam/mytrip/internal/app/store/travelers"
	"github.com/mytripteam/mytrip/internal/app/system/timeouts"
	"github.com/mytripteam/mytrip/internal/domain/models"
	"go.uber.org/zap"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

// TravelerStore is the slice of the traveler store this feature needs.
// Google sign-ins auto-provision an account on first use.
type TravelerStore interface {
	GetByEmail(ctx context.Context, email string) (models.Traveler, error)
	Create(ctx context.Context, t models.Traveler) (models.Traveler, error)
}

// StateStore persists the OAuth state value across the redirect
// round-trip. A state is single-use and expires.
type StateStore interface {
	Save(ctx context.Context, state, returnURL string, expiresAt time.Time) error
	Validate(ctx context.Context, state string) (returnURL string, valid bool, err error)
}

// Sessions establishes the browser session after a successful callback.
type Sessions interface {
	SignIn(w http.ResponseWriter, r *http.Request, travelerID string) error
}

// Handler handles Google OAuth authentication.
type Handler struct {
	Travelers  TravelerStore
	StateStore StateStore
	Sessions   Sessions // nil disables session cookies
	Log        *zap.Logger

	ClientID     string
	ClientSecret string
	RedirectURL  string // e.g. "https://api.mytrip.example/api/auth/google"
	FrontendURL  string // SPA origin receiving the post-login redirect

	// userInfoURL is Google's userinfo endpoint; overridable in tests.
	userInfoURL string
}

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// NewHandler creates a new Google OAuth handler. The callback is served at
// baseURL + /api/auth/google.
func NewHandler(travelers TravelerStore, stateStore StateStore, sessions Sessions, clientID, clientSecret, baseURL, frontendURL string, logger *zap.Logger) *Handler {
	return &Handler{
		Travelers:    travelers,
		StateStore:   stateStore,
		Sessions:     sessions,
		Log:          logger,
		ClientID:     clientID,
		ClientSecret: clientSecret,
		RedirectURL:  baseURL + "/api/auth/google",
		FrontendURL:  frontendURL,
		userInfoURL:  googleUserInfoURL,
	}
}

// oauth2Config returns the Google OAuth2 configuration.
func (h *Handler) oauth2Config() *oauth2.Config {
	return &oauth2.Config{
		ClientID:     h.ClientID,
		ClientSecret: h.ClientSecret,
		RedirectURL:  h.RedirectURL,
		Scopes: []string{
			"openid",
			"https://www.googleapis.com/auth/userinfo.email",
			"https://www.googleapis.com/auth/userinfo.profile",
		},
		Endpoint: google.Endpoint,
	}
}

// IsConfigured returns true if Google OAuth is configured.
func (h *Handler) IsConfigured() bool {
	return h.ClientID != "" && h.ClientSecret != ""
}

// failRedirect sends the browser back to the frontend's access page with a
// generic error marker. OAuth failure details stay in the logs.
func (h *Handler) failRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, h.FrontendURL+"/acesso?erro=auth_failed", http.StatusSeeOther)
}

// ServeLogin handles GET /login/google: starts the OAuth flow by
// redirecting to Google's consent screen.
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if !h.IsConfigured() {
		h.Log.Warn("google oauth not configured")
		h.failRedirect(w, r)
		return
	}

	state, err := generateState()
	if err != nil {
		h.Log.Error("oauth state generation failed", zap.Error(err))
		h.failRedirect(w, r)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	returnURL := r.URL.Query().Get("return")
	expiresAt := time.Now().UTC().Add(10 * time.Minute)
	if err := h.StateStore.Save(ctx, state, returnURL, expiresAt); err != nil {
		h.Log.Error("oauth state save failed", zap.Error(err))
		h.failRedirect(w, r)
		return
	}

	http.Redirect(w, r, h.oauth2Config().AuthCodeURL(state), http.StatusTemporaryRedirect)
}

// ServeCallback handles GET /api/auth/google: validates state, exchanges
// the code, fetches the Google profile and signs the traveler in,
// provisioning a verified account on first login. All failure paths land
// on the frontend's access page with erro=auth_failed.
func (h *Handler) ServeCallback(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if errParam := r.URL.Query().Get("error"); errParam != "" {
		h.Log.Warn("google oauth denied",
			zap.String("error", errParam),
			zap.String("description", r.URL.Query().Get("error_description")))
		h.failRedirect(w, r)
		return
	}

	state := r.URL.Query().Get("state")
	if state == "" {
		h.Log.Warn("oauth callback missing state")
		h.failRedirect(w, r)
		return
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, timeouts.Short())
	defer cancel()

	_, valid, err := h.StateStore.Validate(ctxTimeout, state)
	if err != nil {
		h.Log.Error("oauth state validation failed", zap.Error(err))
		h.failRedirect(w, r)
		return
	}
	if !valid {
		h.Log.Warn("oauth state invalid or expired")
		h.failRedirect(w, r)
		return
	}

	code := r.URL.Query().Get("code")
	if code == "" {
		h.Log.Warn("oauth callback missing code")
		h.failRedirect(w, r)
		return
	}

	token, err := h.oauth2Config().Exchange(ctx, code)
	if err != nil {
		h.Log.Error("oauth code exchange failed", zap.Error(err))
		h.failRedirect(w, r)
		return
	}

	info, err := h.fetchUserInfo(ctx, token)
	if err != nil {
		h.Log.Error("google userinfo fetch failed", zap.Error(err))
		h.failRedirect(w, r)
		return
	}
	if info.Email == "" {
		h.Log.Warn("google userinfo carries no email")
		h.failRedirect(w, r)
		return
	}

	t, err := h.findOrCreateTraveler(ctxTimeout, info)
	if err != nil {
		h.Log.Error("traveler provisioning failed",
			zap.String("email", info.Email), zap.Error(err))
		h.failRedirect(w, r)
		return
	}

	if h.Sessions != nil {
		if err := h.Sessions.SignIn(w, r, t.ID); err != nil {
			h.Log.Warn("oauth session save failed", zap.Error(err))
		}
	}

	http.Redirect(w, r,
		h.FrontendURL+"/login/callback?email="+url.QueryEscape(t.Email),
		http.StatusSeeOther)
}

// findOrCreateTraveler resolves the Google account to a traveler record.
// First-time sign-ins get a verified, passwordless account: the e-mail is
// already attested by Google.
func (h *Handler) findOrCreateTraveler(ctx context.Context, info *googleUserInfo) (models.Traveler, error) {
	t, err := h.Travelers.GetByEmail(ctx, info.Email)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, travelerstore.ErrNotFound) {
		return models.Traveler{}, err
	}

	nome := info.Name
	if nome == "" {
		nome = info.Email
	}
	created, err := h.Travelers.Create(ctx, models.Traveler{
		Nome:       nome,
		Email:      info.Email,
		IsVerified: true,
	})
	if errors.Is(err, travelerstore.ErrDuplicateEmail) {
		// Lost a race with a concurrent first login; the record exists now.
		return h.Travelers.GetByEmail(ctx, info.Email)
	}
	return created, err
}

// googleUserInfo represents user info returned from Google.
type googleUserInfo struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// fetchUserInfo retrieves user information from Google's userinfo endpoint.
func (h *Handler) fetchUserInfo(ctx context.Context, token *oauth2.Token) (*googleUserInfo, error) {
	client := oauth2.NewClient(ctx, oauth2.StaticTokenSource(token))

	resp, err := client.Get(h.userInfoURL)
	if err != nil {
		return nil, fmt.Errorf("fetch user info: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var info googleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("decode user info: %w", err)
	}
	return &info, nil
}

// generateState produces a cryptographically random state value.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
