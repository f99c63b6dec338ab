package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wanderstay/wanderstay-backend/pkg/config"
)

func testJWTConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "unit-test-secret",
		Issuer:            "wanderstay-test",
		ExpirationMinutes: 30,
	}
}

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := testJWTConfig()
	guestID := uuid.New()

	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{
		GuestID:     guestID,
		PhoneNumber: "+15550100",
	})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if strings.Count(token, ".") != 2 {
		t.Fatalf("expected a JWT, got %q", token)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse token: %v", err)
	}
	if claims.GuestID != guestID {
		t.Fatalf("expected guest id %s got %s", guestID, claims.GuestID)
	}
	if claims.PhoneNumber != "+15550100" {
		t.Fatalf("unexpected phone number %q", claims.PhoneNumber)
	}
	if claims.ID == "" {
		t.Fatal("expected a jti to be assigned")
	}
}

func TestMintAccessTokenRequiresGuest(t *testing.T) {
	_, err := MintAccessToken(testJWTConfig(), time.Now(), AccessTokenPayload{})
	if err == nil {
		t.Fatal("expected error for missing guest id")
	}
}

func TestParseAccessTokenRejectsWrongIssuer(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{GuestID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}

	other := cfg
	other.Issuer = "someone-else"
	if _, err := ParseAccessToken(other, token); err == nil {
		t.Fatal("expected issuer validation to fail")
	}
}

func TestParseAccessTokenRejectsExpired(t *testing.T) {
	cfg := testJWTConfig()
	token, err := MintAccessToken(cfg, time.Now().Add(-2*time.Hour), AccessTokenPayload{GuestID: uuid.New()})
	if err != nil {
		t.Fatalf("mint token: %v", err)
	}
	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expired token to be rejected")
	}
}
