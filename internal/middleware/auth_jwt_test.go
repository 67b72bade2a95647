package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestVerifyJWTRoundTrip(t *testing.T) {
	secret := "test-secret"
	token, err := SignJWT(secret, TokenClaims{Sub: "user-1", Email: "u@example.com", Exp: time.Now().Add(time.Hour).Unix()})
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	claims, err := VerifyJWT(secret, token)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "user-1" {
		t.Fatalf("sub = %q", claims.Sub)
	}
}

func TestVerifyJWTRejectsExpired(t *testing.T) {
	token, _ := SignJWT("s", TokenClaims{Sub: "user-1", Exp: time.Now().Add(-time.Minute).Unix()})
	if _, err := VerifyJWT("s", token); err == nil {
		t.Fatal("expected expiry error")
	}
}

func TestVerifyJWTRejectsBadSignature(t *testing.T) {
	token, _ := SignJWT("secret-a", TokenClaims{Sub: "user-1", Exp: time.Now().Add(time.Hour).Unix()})
	if _, err := VerifyJWT("secret-b", token); err == nil {
		t.Fatal("expected signature error")
	}
}

func TestAuthJWTAllowsAnonymous(t *testing.T) {
	var got string
	h := AuthJWT("s")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFromContext(r.Context())
	}))
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got != "" {
		t.Fatalf("user id = %q, want empty", got)
	}
}

func TestAuthJWTSetsUserID(t *testing.T) {
	token, _ := SignJWT("s", TokenClaims{Sub: "user-7", Exp: time.Now().Add(time.Hour).Unix()})
	var got string
	h := AuthJWT("s")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = UserIDFromContext(r.Context())
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	h.ServeHTTP(httptest.NewRecorder(), req)
	if got != "user-7" {
		t.Fatalf("user id = %q", got)
	}
}
