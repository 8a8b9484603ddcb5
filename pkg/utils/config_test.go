package utils

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig without .env: %v", err)
	}
	if cfg.App.Port != "8080" || cfg.App.Storage != StoragePostgres {
		t.Fatalf("unexpected app config: %+v", cfg.App)
	}
	if cfg.Database.MaxConns != 10 || cfg.Database.Port != "5432" {
		t.Fatalf("unexpected database config: %+v", cfg.Database)
	}
	if cfg.Domain.FriendshipPolicy != "confirmation" || cfg.Domain.TopFilmsDefault != 10 {
		t.Fatalf("unexpected domain config: %+v", cfg.Domain)
	}
	if cfg.HTTP.RateLimitWindow != time.Minute || len(cfg.HTTP.CORSAllowedOrigins) != 1 {
		t.Fatalf("unexpected http config: %+v", cfg.HTTP)
	}
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE", "Memory")
	t.Setenv("FRIENDSHIP_POLICY", "mutual")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.App.Storage != StorageMemory {
		t.Errorf("storage = %q", cfg.App.Storage)
	}
	if cfg.Domain.FriendshipPolicy != "mutual" {
		t.Errorf("policy = %q", cfg.Domain.FriendshipPolicy)
	}
	if got := cfg.HTTP.CORSAllowedOrigins; len(got) != 2 || got[1] != "http://b.test" {
		t.Errorf("origins = %v", got)
	}
	if cfg.App.ShutdownTimeout != 3*time.Second {
		t.Errorf("shutdown timeout = %v", cfg.App.ShutdownTimeout)
	}
}
