// internal/app/system/ratelimit/ratelimit_test.go
package ratelimit

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestLimiterAllowsUpToLimit(t *testing.T) {
	l := New(3, time.Minute)

	for i := 0; i < 3; i++ {
		if !l.Allow("k") {
			t.Fatalf("attempt %d should be allowed", i+1)
		}
	}
	if l.Allow("k") {
		t.Error("attempt beyond limit should be denied")
	}
	if !l.Allow("other") {
		t.Error("separate key should have its own window")
	}
}

func TestLimiterWindowExpiry(t *testing.T) {
	l := New(1, 10*time.Millisecond)

	if !l.Allow("k") {
		t.Fatal("first attempt should pass")
	}
	if l.Allow("k") {
		t.Fatal("second attempt should be denied")
	}
	time.Sleep(15 * time.Millisecond)
	if !l.Allow("k") {
		t.Error("attempt after window expiry should pass")
	}
}

func TestLimiterRemainingAndReset(t *testing.T) {
	l := New(2, time.Minute)

	if got := l.Remaining("k"); got != 2 {
		t.Errorf("fresh key Remaining = %d, want 2", got)
	}
	l.Allow("k")
	if got := l.Remaining("k"); got != 1 {
		t.Errorf("after one attempt Remaining = %d, want 1", got)
	}
	l.Reset("k")
	if got := l.Remaining("k"); got != 2 {
		t.Errorf("after Reset Remaining = %d, want 2", got)
	}
}

func TestClientIP(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/login", nil)
	r.RemoteAddr = "10.0.0.1:4321"
	if got := ClientIP(r); got != "10.0.0.1" {
		t.Errorf("ClientIP from RemoteAddr = %q, want 10.0.0.1", got)
	}

	r.Header.Set("X-Real-IP", "172.16.0.9")
	if got := ClientIP(r); got != "172.16.0.9" {
		t.Errorf("ClientIP from X-Real-IP = %q", got)
	}

	r.Header.Set("X-Forwarded-For", "203.0.113.5, 10.0.0.1")
	if got := ClientIP(r); got != "203.0.113.5" {
		t.Errorf("ClientIP from X-Forwarded-For = %q", got)
	}
}

func TestLoginLimiterBlocksEmailAcrossIPs(t *testing.T) {
	ll := NewLoginLimiterWithConfig(100, time.Minute, 2, time.Minute)

	for i := 0; i < 2; i++ {
		r := httptest.NewRequest("POST", "/api/login", nil)
		r.RemoteAddr = "10.0.0.1:1"
		if ok, _ := ll.Check(r, "Alvo@Example.com"); !ok {
			t.Fatalf("attempt %d should pass", i+1)
		}
	}

	r := httptest.NewRequest("POST", "/api/login", nil)
	r.RemoteAddr = "10.9.9.9:1" // different IP, same account
	ok, reason := ll.Check(r, "alvo@example.com")
	if ok {
		t.Fatal("third attempt on same email should be blocked")
	}
	if reason == "" {
		t.Error("blocked attempt should carry a reason")
	}

	ll.ResetEmail("ALVO@example.com")
	if ok, _ := ll.Check(r, "alvo@example.com"); !ok {
		t.Error("attempt after ResetEmail should pass")
	}
}
