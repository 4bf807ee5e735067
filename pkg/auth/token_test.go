package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/pitlanehq/garage-backend/pkg/config"
	"github.com/pitlanehq/garage-backend/pkg/enums"
)

func TestMintAndParseAccessToken(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "garage",
		ExpirationMinutes: 30,
	}
	now := time.Now().UTC()

	payload := AccessTokenPayload{
		UserID: 42,
		Name:   "Test Mechanic",
		Roles:  []enums.Role{enums.RoleMechanic, enums.RoleDriver},
	}

	token, err := MintAccessToken(cfg, now, payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	claims, err := ParseAccessToken(cfg, token)
	if err != nil {
		t.Fatalf("parse access token: %v", err)
	}

	if claims.UserID != 42 {
		t.Fatalf("expected user_id 42, got %d", claims.UserID)
	}
	if claims.Name != "Test Mechanic" {
		t.Fatalf("unexpected name %q", claims.Name)
	}
	if !claims.HasRole(enums.RoleMechanic) || !claims.HasRole(enums.RoleDriver) {
		t.Fatalf("roles not preserved: %v", claims.Roles)
	}
	if claims.HasRole(enums.RoleManager) {
		t.Fatal("unexpected manager role")
	}
	if !claims.HasAnyRole(enums.RoleManager, enums.RoleDriver) {
		t.Fatal("HasAnyRole missed driver")
	}

	if claims.Issuer != cfg.Issuer {
		t.Fatalf("expected issuer %s, got %s", cfg.Issuer, claims.Issuer)
	}
	if claims.ID == "" {
		t.Fatal("expected generated jti")
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

func TestParseAccessTokenInvalidSignature(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "garage",
		ExpirationMinutes: 10,
	}
	payload := AccessTokenPayload{
		UserID: 1,
		Roles:  []enums.Role{enums.RoleManager},
	}

	token, err := MintAccessToken(cfg, time.Now(), payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token+"x"); err == nil {
		t.Fatal("expected invalid signature error")
	}
}

func TestParseAccessTokenExpired(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "garage",
		ExpirationMinutes: 15,
	}
	payload := AccessTokenPayload{
		UserID: 7,
		Roles:  []enums.Role{enums.RolePartsClerk},
	}

	token, err := MintAccessToken(cfg, time.Now().Add(-time.Hour), payload)
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	if _, err := ParseAccessToken(cfg, token); err == nil {
		t.Fatal("expected expiration error")
	} else if !strings.Contains(err.Error(), "expired") {
		t.Fatalf("unexpected error: %v", err)
	}

	// Refresh still needs the jti out of an expired token.
	claims, err := ParseAccessTokenAllowExpired(cfg, token)
	if err != nil {
		t.Fatalf("parse expired token: %v", err)
	}
	if claims.UserID != 7 {
		t.Fatalf("expected user_id 7, got %d", claims.UserID)
	}
}

func TestMintAccessTokenInvalidInput(t *testing.T) {
	cfg := config.JWTConfig{
		Secret:            "secret",
		Issuer:            "garage",
		ExpirationMinutes: 5,
	}

	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 0}); err == nil {
		t.Fatal("expected invalid user id error")
	}
	if _, err := MintAccessToken(cfg, time.Now(), AccessTokenPayload{UserID: 1, Roles: []enums.Role{"Janitor"}}); err == nil {
		t.Fatal("expected invalid role error")
	}
}
