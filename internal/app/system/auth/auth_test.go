package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mytripteam/mytrip/internal/app/system/auth"
	"go.uber.org/zap"
)

func newTestSessionManager(t *testing.T) *auth.SessionManager {
	t.Helper()
	sm, err := auth.NewSessionManager(
		"test-session-key-must-be-32-chars-long",
		"test-session",
		"",
		false,
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("failed to create session manager: %v", err)
	}
	return sm
}

func echoPrincipal(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := auth.Current(r)
		if !ok {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write([]byte(p.ID))
	})
}

func TestLoadPrincipal_TrustedHeader(t *testing.T) {
	sm := newTestSessionManager(t)
	handler := sm.LoadPrincipal(echoPrincipal(t))

	req := httptest.NewRequest("GET", "/api/perfil", nil)
	req.Header.Set(auth.PrincipalHeader, "ana@example.com")
	rec := httptest.NewRecorder()

	handler.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "ana@example.com" {
		t.Errorf("principal id: got %q, want %q", got, "ana@example.com")
	}
}

func TestLoadPrincipal_SessionCookie(t *testing.T) {
	sm := newTestSessionManager(t)

	// Establish a session.
	signinRec := httptest.NewRecorder()
	signinReq := httptest.NewRequest("POST", "/api/login", nil)
	if err := sm.SignIn(signinRec, signinReq, "bia@example.com"); err != nil {
		t.Fatalf("SignIn: %v", err)
	}
	cookies := signinRec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("SignIn set no cookie")
	}

	handler := sm.LoadPrincipal(echoPrincipal(t))
	req := httptest.NewRequest("GET", "/api/perfil", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Body.String(); got != "bia@example.com" {
		t.Errorf("principal id: got %q, want %q", got, "bia@example.com")
	}
}

func TestRequirePrincipal_Missing_Returns401(t *testing.T) {
	called := false
	handler := auth.RequirePrincipal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest("GET", "/api/perfil", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusUnauthorized)
	}
	if !strings.Contains(rec.Body.String(), "erro") {
		t.Errorf("expected JSON error body, got %q", rec.Body.String())
	}
	if called {
		t.Error("next handler must not run for unauthenticated requests")
	}
}

func TestRequirePrincipal_Present_PassesThrough(t *testing.T) {
	handler := auth.RequirePrincipal(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	req := auth.WithPrincipal(httptest.NewRequest("GET", "/api/perfil", nil), auth.Principal{ID: "ana@example.com"})
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status: got %d, want %d", rec.Code, http.StatusNoContent)
	}
}
