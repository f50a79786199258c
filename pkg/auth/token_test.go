package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/careerlink-app/careerlink-backend/pkg/config"
	"github.com/careerlink-app/careerlink-backend/pkg/enums"
	"github.com/google/uuid"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "careerlink",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()
	userID := uuid.New()

	payload := AccessTokenPayload{
		UserID:          userID,
		UserType:        enums.UserTypeEmployer,
		ProfileComplete: true,
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != userID {
		t.Fatalf("expected user_id %s, got %s", userID, claims.UserID)
	}
	if claims.UserType != enums.UserTypeEmployer {
		t.Fatalf("unexpected user type %s", claims.UserType)
	}
	if !claims.ProfileComplete {
		t.Fatal("profile_complete not preserved")
	}
	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected a generated jti")
	}

	exp := now.Add(time.Duration(cfg.ExpirationMinutes) * time.Minute)
	diff := claims.ExpiresAt.Sub(exp)
	if diff < 0 {
		diff = -diff
	}
	if diff >= time.Second {
		t.Fatalf("expected exp roughly %v, got %v (diff %v)", exp.UTC(), claims.ExpiresAt.UTC(), diff)
	}
}

func TestMintAccessToken_RejectsInvalidInput(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "careerlink", ExpirationMinutes: 30}
	now := time.Now().UTC()

	if _, err := MintAccessToken(config.JWTConfig{}, now, AccessTokenPayload{UserType: enums.UserTypeEmployer}); err == nil {
		t.Fatal("expected error without secret")
	}
	if _, err := MintAccessToken(cfg, now, AccessTokenPayload{UserType: enums.UserType("admin")}); err == nil {
		t.Fatal("expected error for unknown user type")
	}
}

func TestParseAccessToken_RejectsForgedToken(t *testing.T) {
	cfg := config.JWTConfig{Secret: "secret", Issuer: "careerlink", ExpirationMinutes: 30}
	other := config.JWTConfig{Secret: "other-secret", Issuer: "careerlink", ExpirationMinutes: 30}

	token, err := MintAccessToken(other, time.Now().UTC(), AccessTokenPayload{
		UserID:   uuid.New(),
		UserType: enums.UserTypeJobSeeker,
	})
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil || !strings.Contains(err.Error(), "signature") {
		t.Fatalf("expected signature error, got %v", err)
	}
}
