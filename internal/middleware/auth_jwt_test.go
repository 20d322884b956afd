package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestSignAndVerifyJWT(t *testing.T) {
	token, err := SignJWT("secret", TokenClaims{Sub: "user-1", Role: "owner", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("SignJWT error: %v", err)
	}
	claims, err := VerifyJWT("secret", token)
	if err != nil {
		t.Fatalf("VerifyJWT error: %v", err)
	}
	if claims.Sub != "user-1" || claims.Role != "owner" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestVerifyJWTWrongSecret(t *testing.T) {
	token, _ := SignJWT("secret", TokenClaims{Sub: "user-1"})
	if _, err := VerifyJWT("other", token); err == nil {
		t.Fatal("expected signature failure")
	}
}

func TestVerifyJWTExpired(t *testing.T) {
	token, _ := SignJWT("secret", TokenClaims{Sub: "user-1", Exp: time.Now().Add(-time.Minute).Unix()})
	if _, err := VerifyJWT("secret", token); err == nil {
		t.Fatal("expected expiry failure")
	}
}

func TestAuthJWTInjectsIdentity(t *testing.T) {
	token, _ := SignJWT("secret", TokenClaims{Sub: "user-1", Role: "user", Exp: time.Now().Add(time.Hour).Unix()})

	var gotUser, gotRole string
	handler := AuthJWT("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUser = UserIDFromContext(r.Context())
		gotRole = RoleFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if gotUser != "user-1" || gotRole != "user" {
		t.Fatalf("identity = %q/%q", gotUser, gotRole)
	}
}

func TestAuthJWTRejectsMissingHeader(t *testing.T) {
	handler := AuthJWT("secret")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	}))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}
