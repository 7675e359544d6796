package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestLoad_Defaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Port != 8080 {
		t.Errorf("Expected default port 8080, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.MaxBodyBytes != 512*1024 {
		t.Errorf("Expected default body cap 512KB, got %d", cfg.MaxBodyBytes)
	}
	if !cfg.RateLimitEnabled {
		t.Error("Expected rate limiting on by default")
	}
	if cfg.JWTSecret != "" {
		t.Error("JWT secret must not have a default")
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("GIGVORA_PORT", "9090")
	t.Setenv("GIGVORA_JWT_SECRET", "env-secret")
	t.Setenv("GIGVORA_RATE_LIMIT_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Port != 9090 {
		t.Errorf("Expected port 9090 from env, got %d", cfg.Port)
	}
	if cfg.JWTSecret != "env-secret" {
		t.Errorf("Expected secret from env, got %q", cfg.JWTSecret)
	}
	if cfg.RateLimitEnabled {
		t.Error("Expected rate limiting disabled via env")
	}
}
