// Package auth resolves the caller's identity once at the edge and injects
// it into the request context as an opaque Principal. Business logic never
// re-reads headers or cookies; it asks for the Principal.
//
// Two sources are accepted, in order:
//
//  1. the X-Viajante-ID trusted header, set by the page-rendering frontend
//     when it proxies API calls for an already-authenticated session;
//  2. the signed session cookie, for browsers talking to this service
//     directly (login and OAuth flows establish it).
package auth

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"go.uber.org/zap"
)

// PrincipalHeader is the trusted-header name carrying the caller's
// traveler id (their email). Its value is pre-authenticated by the
// frontend; this service does not re-verify it.
const PrincipalHeader = "X-Viajante-ID"

const (
	isAuthKey = "is_authenticated"
	userIDKey = "user_id"
)

// Principal is the authenticated caller. ID is the traveler's document id
// (folded email).
type Principal struct {
	ID string
}

type ctxKey string

const principalKey ctxKey = "principal"

// Current returns the request's Principal and a found flag.
func Current(r *http.Request) (Principal, bool) {
	p, ok := r.Context().Value(principalKey).(Principal)
	return p, ok
}

// WithPrincipal returns a copy of r carrying the given Principal.
// Exported for tests; production code goes through SessionManager.
func WithPrincipal(r *http.Request, p Principal) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), principalKey, p))
}

// SessionManager owns the cookie store and the principal-resolution
// middleware.
type SessionManager struct {
	store *sessions.CookieStore
	name  string
	log   *zap.Logger
}

// NewSessionManager builds a SessionManager. The session key signs
// cookies and must be at least 32 random characters in production.
func NewSessionManager(sessionKey, sessionName, domain string, secure bool, logger *zap.Logger) (*SessionManager, error) {
	if sessionKey == "" {
		return nil, fmt.Errorf("session key is empty; provide ≥32 random chars")
	}
	if len(sessionKey) < 32 {
		logger.Warn("session key is short; 32+ chars recommended",
			zap.Int("length", len(sessionKey)))
	}

	store := sessions.NewCookieStore([]byte(sessionKey))
	opts := &sessions.Options{
		Domain:   domain,
		Path:     "/",
		Secure:   secure,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if secure {
		opts.SameSite = http.SameSiteNoneMode
	}
	store.Options = opts

	logger.Info("session store initialized",
		zap.Bool("secure", secure),
		zap.String("domain", domain))

	return &SessionManager{store: store, name: sessionName, log: logger}, nil
}

// LoadPrincipal resolves the caller identity and injects it into context.
// Header wins over cookie; neither being present is not an error here —
// RequirePrincipal decides whether the route needs one.
func (sm *SessionManager) LoadPrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if id := r.Header.Get(PrincipalHeader); id != "" {
			next.ServeHTTP(w, WithPrincipal(r, Principal{ID: id}))
			return
		}

		sess, err := sm.store.Get(r, sm.name)
		if err != nil {
			if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
				sm.log.Debug("session cookie invalid, treating as anonymous", zap.Error(err))
			}
			next.ServeHTTP(w, r)
			return
		}
		if isAuth, _ := sess.Values[isAuthKey].(bool); isAuth {
			if id, _ := sess.Values[userIDKey].(string); id != "" {
				r = WithPrincipal(r, Principal{ID: id})
			}
		}
		next.ServeHTTP(w, r)
	})
}

// RequirePrincipal rejects requests without a resolved Principal before any
// store access happens.
func RequirePrincipal(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := Current(r); !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"erro":"Autenticação necessária (header X-Viajante-ID ausente)"}`))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SignIn establishes an authenticated session for the given traveler id.
func (sm *SessionManager) SignIn(w http.ResponseWriter, r *http.Request, travelerID string) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		if scErr, ok := err.(securecookie.Error); ok && scErr.IsDecode() {
			sm.log.Warn("session cookie invalid, using fresh session", zap.Error(err))
		} else {
			return err
		}
	}
	sess.Values[isAuthKey] = true
	sess.Values[userIDKey] = travelerID
	return sess.Save(r, w)
}

// SignOut clears the session.
func (sm *SessionManager) SignOut(w http.ResponseWriter, r *http.Request) error {
	sess, err := sm.store.Get(r, sm.name)
	if err != nil {
		return err
	}
	sess.Values = map[any]any{}
	sess.Options.MaxAge = -1
	return sess.Save(r, w)
}
