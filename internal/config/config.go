package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     int
	LogLevel string

	StoreBackend string
	DatabaseURL  string
	RedisURL     string
	RedisTTL     time.Duration

	NatsURL   string
	NatsToken string

	BackendURL          string
	BackendToken        string
	RemoteChatEnabled   bool
	BackendTimeout      time.Duration
	HealthTimeout       time.Duration
	HealthCheckInterval time.Duration

	EvalDelayMin    time.Duration
	EvalDelayMax    time.Duration
	TypingDelayMin  time.Duration
	TypingDelayMax  time.Duration
	CreativityLevel int
	Seed            uint64

	APIToken       string
	AllowedOrigins []string
}

// Load reads the configuration from the environment. A .env file in the
// working directory is loaded first if present; real environment variables
// win over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:     envInt("SYNTHPANEL_PORT", 8760),
		LogLevel: envStr("LOG_LEVEL", "info"),

		StoreBackend: envStr("STORE_BACKEND", "memory"),
		DatabaseURL:  envStr("DATABASE_URL", ""),
		RedisURL:     envStr("REDIS_URL", "redis://localhost:6379/0"),
		RedisTTL:     envDuration("REDIS_TTL", 0),

		NatsURL:   envStr("NATS_URL", ""),
		NatsToken: envStr("NATS_TOKEN", ""),

		BackendURL:          envStr("BACKEND_URL", "http://localhost:8000"),
		BackendToken:        envStr("BACKEND_TOKEN", ""),
		RemoteChatEnabled:   envBool("REMOTE_CHAT_ENABLED", false),
		BackendTimeout:      envDuration("BACKEND_TIMEOUT", 30*time.Second),
		HealthTimeout:       envDuration("HEALTH_TIMEOUT", 5*time.Second),
		HealthCheckInterval: envDuration("HEALTH_CHECK_INTERVAL", time.Minute),

		EvalDelayMin:    envDuration("EVAL_DELAY_MIN", 500*time.Millisecond),
		EvalDelayMax:    envDuration("EVAL_DELAY_MAX", 1500*time.Millisecond),
		TypingDelayMin:  envDuration("TYPING_DELAY_MIN", 1500*time.Millisecond),
		TypingDelayMax:  envDuration("TYPING_DELAY_MAX", 3500*time.Millisecond),
		CreativityLevel: clampCreativity(envInt("CREATIVITY_LEVEL", 70)),
		Seed:            envUint("RANDOM_SEED", 0),

		APIToken:       envStr("SYNTHPANEL_API_TOKEN", ""),
		AllowedOrigins: envList("CORS_ORIGINS", []string{"http://localhost:5173"}),
	}
}

func clampCreativity(n int) int {
	return max(0, min(n, 100))
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envUint(key string, fallback uint64) uint64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d >= 0 {
			return d
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
