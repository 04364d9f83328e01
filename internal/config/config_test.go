package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AccessTokenTTL != 15*time.Minute {
		t.Fatalf("access ttl: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != 168*time.Hour {
		t.Fatalf("refresh ttl: %v", cfg.RefreshTokenTTL)
	}
	if cfg.JWTSecret != DevJWTSecret {
		t.Fatalf("secret: %v", cfg.JWTSecret)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("ACCESS_TOKEN_TTL", "1m")
	t.Setenv("REFRESH_TOKEN_TTL", "1h")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("HTTP_ADDRESS", ":9999")

	cfg, err := Load()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.AccessTokenTTL != time.Minute {
		t.Fatalf("access ttl: %v", cfg.AccessTokenTTL)
	}
	if cfg.RefreshTokenTTL != time.Hour {
		t.Fatalf("refresh ttl: %v", cfg.RefreshTokenTTL)
	}
	if cfg.JWTSecret != "s3cret" {
		t.Fatalf("secret: %v", cfg.JWTSecret)
	}
	if cfg.HTTPAddress != ":9999" {
		t.Fatalf("addr: %v", cfg.HTTPAddress)
	}
}

func TestProductionRefusesDevSecret(t *testing.T) {
	t.Setenv("ENVIRONMENT", "production")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for dev secret in production")
	}

	t.Setenv("JWT_SECRET", "real-secret")
	if _, err := Load(); err != nil {
		t.Fatal(err)
	}
}
