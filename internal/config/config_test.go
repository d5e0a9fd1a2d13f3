package config

import (
	"testing"
	"time"
)

var allKeys = []string{
	"SYNTHPANEL_PORT", "LOG_LEVEL", "STORE_BACKEND", "DATABASE_URL", "REDIS_URL", "REDIS_TTL",
	"NATS_URL", "NATS_TOKEN", "BACKEND_URL", "BACKEND_TOKEN", "REMOTE_CHAT_ENABLED",
	"BACKEND_TIMEOUT", "HEALTH_TIMEOUT", "HEALTH_CHECK_INTERVAL", "EVAL_DELAY_MIN", "EVAL_DELAY_MAX",
	"TYPING_DELAY_MIN", "TYPING_DELAY_MAX", "CREATIVITY_LEVEL", "RANDOM_SEED",
	"SYNTHPANEL_API_TOKEN", "CORS_ORIGINS",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range allKeys {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()

	if cfg.Port != 8760 {
		t.Errorf("expected default port 8760, got %d", cfg.Port)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.StoreBackend != "memory" {
		t.Errorf("expected memory store, got %s", cfg.StoreBackend)
	}
	if cfg.NatsURL != "" {
		t.Errorf("expected events disabled by default, got %s", cfg.NatsURL)
	}
	if cfg.RemoteChatEnabled {
		t.Error("expected remote chat disabled by default")
	}
	if cfg.HealthTimeout != 5*time.Second {
		t.Errorf("expected 5s health timeout, got %v", cfg.HealthTimeout)
	}
	if cfg.EvalDelayMin != 500*time.Millisecond || cfg.EvalDelayMax != 1500*time.Millisecond {
		t.Errorf("unexpected evaluation delay %v-%v", cfg.EvalDelayMin, cfg.EvalDelayMax)
	}
	if cfg.TypingDelayMin != 1500*time.Millisecond || cfg.TypingDelayMax != 3500*time.Millisecond {
		t.Errorf("unexpected typing delay %v-%v", cfg.TypingDelayMin, cfg.TypingDelayMax)
	}
	if cfg.CreativityLevel != 70 {
		t.Errorf("expected creativity 70, got %d", cfg.CreativityLevel)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected time-based seed, got %d", cfg.Seed)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "http://localhost:5173" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNTHPANEL_PORT", "9999")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_URL", "redis://cache:6379/2")
	t.Setenv("REDIS_TTL", "24h")
	t.Setenv("NATS_URL", "nats://custom:4222")
	t.Setenv("NATS_TOKEN", "s3cr3t-token")
	t.Setenv("BACKEND_URL", "https://rag.example.com")
	t.Setenv("REMOTE_CHAT_ENABLED", "true")
	t.Setenv("HEALTH_TIMEOUT", "2s")
	t.Setenv("TYPING_DELAY_MIN", "0s")
	t.Setenv("CREATIVITY_LEVEL", "35")
	t.Setenv("RANDOM_SEED", "42")
	t.Setenv("SYNTHPANEL_API_TOKEN", "panel-token")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com,")

	cfg := Load()

	if cfg.Port != 9999 {
		t.Errorf("expected port 9999, got %d", cfg.Port)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.LogLevel)
	}
	if cfg.StoreBackend != "redis" || cfg.RedisURL != "redis://cache:6379/2" || cfg.RedisTTL != 24*time.Hour {
		t.Errorf("unexpected redis settings %s %s %v", cfg.StoreBackend, cfg.RedisURL, cfg.RedisTTL)
	}
	if cfg.NatsURL != "nats://custom:4222" || cfg.NatsToken != "s3cr3t-token" {
		t.Errorf("unexpected nats settings %s %s", cfg.NatsURL, cfg.NatsToken)
	}
	if cfg.BackendURL != "https://rag.example.com" || !cfg.RemoteChatEnabled {
		t.Errorf("unexpected backend settings %s %v", cfg.BackendURL, cfg.RemoteChatEnabled)
	}
	if cfg.HealthTimeout != 2*time.Second {
		t.Errorf("expected 2s health timeout, got %v", cfg.HealthTimeout)
	}
	if cfg.TypingDelayMin != 0 {
		t.Errorf("expected zero typing delay min, got %v", cfg.TypingDelayMin)
	}
	if cfg.CreativityLevel != 35 {
		t.Errorf("expected creativity 35, got %d", cfg.CreativityLevel)
	}
	if cfg.Seed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.Seed)
	}
	if cfg.APIToken != "panel-token" {
		t.Errorf("expected custom api token, got %s", cfg.APIToken)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("SYNTHPANEL_PORT", "notanumber")
	t.Setenv("REMOTE_CHAT_ENABLED", "maybe")
	t.Setenv("HEALTH_TIMEOUT", "-3s")
	t.Setenv("EVAL_DELAY_MAX", "soon")
	t.Setenv("RANDOM_SEED", "-1")

	cfg := Load()

	if cfg.Port != 8760 {
		t.Errorf("expected default port on invalid value, got %d", cfg.Port)
	}
	if cfg.RemoteChatEnabled {
		t.Error("expected default flag on invalid bool")
	}
	if cfg.HealthTimeout != 5*time.Second {
		t.Errorf("expected default health timeout on negative value, got %v", cfg.HealthTimeout)
	}
	if cfg.EvalDelayMax != 1500*time.Millisecond {
		t.Errorf("expected default delay on invalid duration, got %v", cfg.EvalDelayMax)
	}
	if cfg.Seed != 0 {
		t.Errorf("expected default seed on invalid value, got %d", cfg.Seed)
	}
}

func TestLoad_CreativityClamped(t *testing.T) {
	clearEnv(t)
	t.Setenv("CREATIVITY_LEVEL", "250")
	if got := Load().CreativityLevel; got != 100 {
		t.Errorf("expected creativity clamped to 100, got %d", got)
	}
	t.Setenv("CREATIVITY_LEVEL", "-5")
	if got := Load().CreativityLevel; got != 0 {
		t.Errorf("expected creativity clamped to 0, got %d", got)
	}
}
