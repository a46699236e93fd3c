package config

import (
	"os"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "ENV", "REDIS_URL", "MAX_BODY_BYTES", "RATE_LIMIT_WINDOW", "RATE_LIMIT_MAX_REQUESTS", "CORS_ALLOWED_ORIGINS", "SHUTDOWN_TIMEOUT"} {
		unsetEnv(t, key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want %q", cfg.Port, "8080")
	}
	if !cfg.IsDevelopment() {
		t.Errorf("IsDevelopment() = false, want true")
	}
	if cfg.MaxBodyBytes != 65536 {
		t.Errorf("MaxBodyBytes = %d, want 65536", cfg.MaxBodyBytes)
	}
	if cfg.RateLimitEnabled() {
		t.Error("RateLimitEnabled() = true without REDIS_URL")
	}
	if cfg.RateLimit.Window != time.Minute {
		t.Errorf("RateLimit.Window = %v, want 1m", cfg.RateLimit.Window)
	}
	if cfg.ShutdownTimeout != 5*time.Second {
		t.Errorf("ShutdownTimeout = %v, want 5s", cfg.ShutdownTimeout)
	}
	if cfg.CORS.AllowedOrigins != "*" {
		t.Errorf("CORS.AllowedOrigins = %q, want %q", cfg.CORS.AllowedOrigins, "*")
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("RATE_LIMIT_MAX_REQUESTS", "10")
	t.Setenv("RATE_LIMIT_WINDOW", "30s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want %q", cfg.Port, "9090")
	}
	if !cfg.IsProduction() {
		t.Error("IsProduction() = false, want true")
	}
	if !cfg.RateLimitEnabled() {
		t.Error("RateLimitEnabled() = false with REDIS_URL set")
	}
	if cfg.RateLimit.MaxRequests != 10 {
		t.Errorf("RateLimit.MaxRequests = %d, want 10", cfg.RateLimit.MaxRequests)
	}
	if cfg.RateLimit.Window != 30*time.Second {
		t.Errorf("RateLimit.Window = %v, want 30s", cfg.RateLimit.Window)
	}
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"bad duration", map[string]string{"RATE_LIMIT_WINDOW": "soon"}},
		{"zero body limit", map[string]string{"MAX_BODY_BYTES": "0"}},
		{"zero requests with redis", map[string]string{"REDIS_URL": "redis://localhost:6379", "RATE_LIMIT_MAX_REQUESTS": "0"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); err == nil {
				t.Error("Load() should fail")
			}
		})
	}
}

// unsetEnv removes key for the duration of the test. envconfig treats a set
// but empty variable as a value, so t.Setenv(key, "") would skip defaults.
func unsetEnv(t *testing.T, key string) {
	t.Helper()
	if old, ok := os.LookupEnv(key); ok {
		t.Cleanup(func() { os.Setenv(key, old) })
	}
	os.Unsetenv(key)
}
