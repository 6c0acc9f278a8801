package config

import (
	"context"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != "http://localhost:8001" {
		t.Fatalf("unexpected backend url %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 0 {
		t.Fatalf("expected no client timeout by default, got %v", cfg.Backend.Timeout)
	}
	if cfg.Store.Driver != "file" || cfg.Store.Key != "token" {
		t.Fatalf("unexpected store config %+v", cfg.Store)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JOBPORTAL_BACKEND_URL", "https://auth.example.com")
	t.Setenv("AUTH_HTTP_TIMEOUT", "15s")
	t.Setenv("TOKEN_STORE", "redis")
	t.Setenv("REDIS_DB", "2")

	cfg, err := Load(context.Background())
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend.URL != "https://auth.example.com" || cfg.Backend.Timeout != 15*time.Second {
		t.Fatalf("unexpected backend config %+v", cfg.Backend)
	}
	if cfg.Store.Driver != "redis" || cfg.Redis.DB != 2 {
		t.Fatalf("unexpected store config %+v / %+v", cfg.Store, cfg.Redis)
	}
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("TOKEN_STORE", "sqlite")

	if _, err := Load(context.Background()); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
