package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/spendtrack/spendtrack-go/internal/auth"
)

func authGateRequest(t *testing.T, tokens *auth.TokenService, header string) (*httptest.ResponseRecorder, *auth.Identity) {
	t.Helper()

	var seen *auth.Identity
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if identity, ok := IdentityFromContext(r.Context()); ok {
			seen = &identity
		}
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/categories", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}

	rec := httptest.NewRecorder()
	Authenticate(tokens)(next).ServeHTTP(rec, req)
	return rec, seen
}

func TestAuthenticateMissingHeader(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	rec, seen := authGateRequest(t, tokens, "")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "no authorization header") {
		t.Errorf("body = %q, want no-header message", rec.Body.String())
	}
	if seen != nil {
		t.Error("downstream handler should not run without a header")
	}
}

func TestAuthenticateMissingToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	for _, header := range []string{"Bearer ", "Token abc"} {
		rec, seen := authGateRequest(t, tokens, header)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("header %q: status = %d, want 401", header, rec.Code)
		}
		if !strings.Contains(rec.Body.String(), "no token provided") {
			t.Errorf("header %q: body = %q, want no-token message", header, rec.Body.String())
		}
		if seen != nil {
			t.Errorf("header %q: downstream handler should not run", header)
		}
	}
}

func TestAuthenticateInvalidToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)

	rec, seen := authGateRequest(t, tokens, "Bearer garbage")

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if seen != nil {
		t.Error("downstream handler should not run with an invalid token")
	}
}

func TestAuthenticateExpiredToken(t *testing.T) {
	issuer := auth.NewTokenService("test-secret", time.Millisecond)
	token, err := issuer.Issue(42, "ann@example.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}
	time.Sleep(10 * time.Millisecond)

	tokens := auth.NewTokenService("test-secret", time.Hour)
	rec, _ := authGateRequest(t, tokens, "Bearer "+token)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "expired") {
		t.Errorf("body = %q, want expired message", rec.Body.String())
	}
}

func TestAuthenticateValidToken(t *testing.T) {
	tokens := auth.NewTokenService("test-secret", time.Hour)
	token, err := tokens.Issue(42, "ann@example.com")
	if err != nil {
		t.Fatalf("Issue() unexpected error: %v", err)
	}

	rec, seen := authGateRequest(t, tokens, "Bearer "+token)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if seen == nil {
		t.Fatal("downstream handler did not receive an identity")
	}
	if seen.UserID != 42 || seen.Email != "ann@example.com" {
		t.Errorf("identity = %+v, want {42 ann@example.com}", *seen)
	}
}
