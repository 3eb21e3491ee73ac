package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/lestrrat-go/jwx/v2/jwa"
	"github.com/lestrrat-go/jwx/v2/jwt"

	"github.com/craftel-io/backend-craftel/internal/common"
)

func signTestToken(t *testing.T, secret []byte, subject, role string, issued time.Time, ttl time.Duration) string {
	t.Helper()
	builder := jwt.NewBuilder().
		Subject(subject).
		Issuer("https://id.example.com").
		Audience([]string{"craftel-api"}).
		IssuedAt(issued).
		Expiration(issued.Add(ttl))
	if role != "" {
		builder = builder.Claim("role", role)
	}
	token, err := builder.Build()
	if err != nil {
		t.Fatalf("build token: %v", err)
	}
	signed, err := jwt.Sign(token, jwt.WithKey(jwa.HS256, secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return string(signed)
}

func newTestVerifier(t *testing.T, secret []byte, now time.Time) *Verifier {
	t.Helper()
	v, err := NewVerifier(secret, "https://id.example.com", "craftel-api", time.Second)
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	v.Now = func() time.Time { return now }
	return v
}

func TestVerifierParseToken(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Now()
	v := newTestVerifier(t, secret, now)

	token := signTestToken(t, secret, "user-42", "maker", now, time.Minute)
	identity, err := v.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if identity.UserID != "user-42" {
		t.Fatalf("unexpected subject: %q", identity.UserID)
	}
	if identity.Admin() {
		t.Fatal("maker role must not be admin")
	}
}

func TestVerifierAdminRole(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Now()
	v := newTestVerifier(t, secret, now)

	token := signTestToken(t, secret, "admin-1", "admin", now, time.Minute)
	identity, err := v.ParseToken(token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if !identity.Admin() {
		t.Fatal("expected admin identity")
	}
}

func TestVerifierRejectsWrongSecret(t *testing.T) {
	now := time.Now()
	v := newTestVerifier(t, []byte("0123456789abcdef0123456789abcdef"), now)

	token := signTestToken(t, []byte("another-secret-another-secret-ab"), "user-1", "", now, time.Minute)
	if _, err := v.ParseToken(token); err == nil {
		t.Fatal("expected signature verification to fail")
	}
}

func TestVerifierRejectsExpiredToken(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Now()
	v := newTestVerifier(t, secret, now)

	token := signTestToken(t, secret, "user-1", "", now.Add(-time.Hour), time.Minute)
	if _, err := v.ParseToken(token); err == nil {
		t.Fatal("expected expiry validation to fail")
	}
}

func TestMiddlewareRequireAdmin(t *testing.T) {
	secret := []byte("0123456789abcdef0123456789abcdef")
	now := time.Now()
	mw := Middleware{Verifier: newTestVerifier(t, secret, now)}

	var sawUser string
	handler := mw.RequireAdmin(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawUser, _ = common.UserID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, "admin-1", "admin", now, time.Minute))
	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for admin, got %d", rr.Code)
	}
	if sawUser != "admin-1" {
		t.Fatalf("expected user id on context, got %q", sawUser)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+signTestToken(t, secret, "user-1", "maker", now, time.Minute))
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-admin, got %d", rr.Code)
	}

	req = httptest.NewRequest(http.MethodPost, "/admin", nil)
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rr.Code)
	}
}
