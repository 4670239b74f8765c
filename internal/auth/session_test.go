package auth

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func sessionCookie(t *testing.T, m *SessionManager, username string) *http.Cookie {
	t.Helper()
	rr := httptest.NewRecorder()
	if err := m.Issue(rr, username); err != nil {
		t.Fatalf("issue: %v", err)
	}
	for _, c := range rr.Result().Cookies() {
		if c.Name == sessionCookieName {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestSessionRoundTrip(t *testing.T) {
	m := NewSessionManager("test-secret-test-secret", time.Hour, false)
	c := sessionCookie(t, m, "alice")

	if !c.HttpOnly {
		t.Fatal("session cookie must be HttpOnly")
	}

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	got, err := m.Identify(req)
	if err != nil {
		t.Fatalf("identify: %v", err)
	}
	if got != "alice" {
		t.Fatalf("expected alice, got %q", got)
	}
}

func TestIdentifyRejectsMissingCookie(t *testing.T) {
	m := NewSessionManager("test-secret-test-secret", time.Hour, false)
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if _, err := m.Identify(req); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expected ErrNoSession, got %v", err)
	}
}

func TestIdentifyRejectsForeignSignature(t *testing.T) {
	issuer := NewSessionManager("secret-one-secret-one", time.Hour, false)
	verifier := NewSessionManager("secret-two-secret-two", time.Hour, false)

	c := sessionCookie(t, issuer, "alice")
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if _, err := verifier.Identify(req); !errors.Is(err, ErrNoSession) {
		t.Fatalf("token signed with a different secret must be rejected, got %v", err)
	}
}

func TestIdentifyRejectsExpiredToken(t *testing.T) {
	m := NewSessionManager("test-secret-test-secret", time.Hour, false)
	m.ttl = -time.Minute
	c := sessionCookie(t, m, "alice")
	m.ttl = time.Hour

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(c)
	if _, err := m.Identify(req); !errors.Is(err, ErrNoSession) {
		t.Fatalf("expired token must be rejected, got %v", err)
	}
}

func TestClearExpiresCookie(t *testing.T) {
	m := NewSessionManager("test-secret-test-secret", time.Hour, false)
	rr := httptest.NewRecorder()
	m.Clear(rr)

	cookies := rr.Result().Cookies()
	if len(cookies) != 1 || cookies[0].MaxAge != -1 || cookies[0].Value != "" {
		t.Fatalf("expected expired empty cookie, got %+v", cookies)
	}
}
