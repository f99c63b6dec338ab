package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	pkgauth "github.com/wanderstay/wanderstay-backend/pkg/auth"
	"github.com/wanderstay/wanderstay-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "wanderstay-test",
		ExpirationMinutes: 60,
	}
}

func TestAuthRejectsMissingToken(t *testing.T) {
	mw := Auth(testJWTConfig(), nil)
	handlerCalled := false
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handlerCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
	if handlerCalled {
		t.Fatalf("handler should not run without a token")
	}
}

func TestAuthRejectsGarbageToken(t *testing.T) {
	mw := Auth(testJWTConfig(), nil)
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	mw(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d", resp.Code)
	}
}

func TestAuthSeedsGuestContext(t *testing.T) {
	cfg := testJWTConfig()
	guestID := uuid.New()
	token, err := pkgauth.MintAccessToken(cfg, time.Now(), pkgauth.AccessTokenPayload{
		GuestID:     guestID,
		PhoneNumber: "+15550001111",
		JTI:         uuid.NewString(),
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	var gotGuest uuid.UUID
	var gotPhone string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotGuest = GuestIDFromContext(r.Context())
		gotPhone = PhoneNumberFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp := httptest.NewRecorder()
	Auth(cfg, nil)(handler).ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if gotGuest != guestID {
		t.Fatalf("expected guest %s in context, got %s", guestID, gotGuest)
	}
	if gotPhone != "+15550001111" {
		t.Fatalf("expected phone in context, got %q", gotPhone)
	}
}
