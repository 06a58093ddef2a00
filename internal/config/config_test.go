package config

import (
	"strings"
	"testing"
)

func TestValidateDevelopmentDefaults(t *testing.T) {
	cfg := &Config{
		Port:      "8460",
		JWTSecret: "your-secret-key-change-in-production",
		Env:       "development",
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("development defaults should validate, got: %v", err)
	}
}

func TestValidateRequiredFields(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		want string
	}{
		{"missing port", Config{JWTSecret: "s"}, "PORT"},
		{"missing secret", Config{Port: "8460"}, "JWT_SECRET"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if err == nil {
				t.Fatal("expected an error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %s", err, tc.want)
			}
		})
	}
}

func TestValidateProductionHardening(t *testing.T) {
	base := Config{
		Port:       "8460",
		JWTSecret:  strings.Repeat("x", 32),
		DBPassword: "a-real-password",
		DBSSLMode:  "require",
		Env:        "production",
	}

	if err := base.Validate(); err != nil {
		t.Fatalf("hardened production config should validate, got: %v", err)
	}

	defaultSecret := base
	defaultSecret.JWTSecret = "your-secret-key-change-in-production"
	if err := defaultSecret.Validate(); err == nil {
		t.Fatal("default JWT secret must be rejected in production")
	}

	shortSecret := base
	shortSecret.JWTSecret = "short"
	if err := shortSecret.Validate(); err == nil {
		t.Fatal("short JWT secret must be rejected in production")
	}

	weakDB := base
	weakDB.DBPassword = "password"
	if err := weakDB.Validate(); err == nil {
		t.Fatal("default DB password must be rejected in production")
	}
}
