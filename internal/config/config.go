package config

import (
	"os"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

// RateLimitSettings controls the per-client token bucket on the HTTP layer.
type RateLimitSettings struct {
	RequestsPerSecond float64
	Burst             int
	ClientTTL         time.Duration
}

// Config holds runtime configuration values for the StackNova server.
type Config struct {
	ServerPort        int
	LogLevel          string
	Environment       string
	SentryDSN         string
	DBPath            string
	DocstoreBackend   string
	DocstorePath      string
	AdminPasswordHash string
	JWTSecret         string
	AssetBaseURL      string
	UploadBaseURL     string
	RateLimit         RateLimitSettings
	ShutdownGrace     time.Duration
}

const (
	defaultServerPort      = 8080
	defaultLogLevel        = "info"
	defaultEnvironment     = "development"
	defaultDBPath          = "./data/stacknova.db"
	defaultDocstoreBackend = BackendSQLite
	defaultAssetBaseURL    = "https://res.cloudinary.com/stacknova/image/upload"
	defaultUploadBaseURL   = "/uploads"
	defaultRateLimitRPS    = 5.0
	defaultRateLimitBurst  = 20
	defaultClientTTL       = 5 * time.Minute
	defaultShutdownGrace   = 10 * time.Second
)

// BackendBadger and BackendSQLite name the selectable document store implementations.
const (
	BackendBadger = "badger"
	BackendSQLite = "sqlite"
)

// Load reads configuration values from environment variables, applying defaults where necessary.
func Load() (*Config, error) {
	cfg := &Config{
		LogLevel:          getEnv("LOG_LEVEL", defaultLogLevel),
		Environment:       getEnv("ENV", defaultEnvironment),
		SentryDSN:         os.Getenv("SENTRY_DSN"),
		DBPath:            getEnv("DB_PATH", defaultDBPath),
		DocstorePath:      os.Getenv("DOCSTORE_PATH"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		JWTSecret:         os.Getenv("JWT_SECRET"),
		AssetBaseURL:      getEnv("ASSET_BASE_URL", defaultAssetBaseURL),
		UploadBaseURL:     getEnv("UPLOAD_BASE_URL", defaultUploadBaseURL),
	}

	// A badger directory implies the badger backend unless DOCSTORE says otherwise.
	backendFallback := defaultDocstoreBackend
	if cfg.DocstorePath != "" {
		backendFallback = BackendBadger
	}
	cfg.DocstoreBackend = getEnv("DOCSTORE", backendFallback)
	if cfg.DocstoreBackend != BackendBadger && cfg.DocstoreBackend != BackendSQLite {
		return nil, eris.Errorf("unknown DOCSTORE backend: %s", cfg.DocstoreBackend)
	}

	port, err := intEnv("SERVER_PORT", defaultServerPort)
	if err != nil {
		return nil, err
	}
	cfg.ServerPort = port

	rps, err := floatEnv("RATE_LIMIT_RPS", defaultRateLimitRPS)
	if err != nil {
		return nil, err
	}

	burst, err := intEnv("RATE_LIMIT_BURST", defaultRateLimitBurst)
	if err != nil {
		return nil, err
	}

	ttl, err := durationEnv("RATE_LIMIT_CLIENT_TTL", defaultClientTTL)
	if err != nil {
		return nil, err
	}

	cfg.RateLimit = RateLimitSettings{
		RequestsPerSecond: rps,
		Burst:             burst,
		ClientTTL:         ttl,
	}

	grace, err := durationEnv("SHUTDOWN_GRACE", defaultShutdownGrace)
	if err != nil {
		return nil, err
	}
	cfg.ShutdownGrace = grace

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func intEnv(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}

func floatEnv(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}

func durationEnv(key string, fallback time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}

	value, err := time.ParseDuration(raw)
	if err != nil {
		return 0, eris.Wrapf(err, "invalid %s value: %s", key, raw)
	}
	return value, nil
}
