package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Store backends selectable via STORE_BACKEND.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
	StoreMemory   = "memory"
)

// Auth backends selectable via AUTH_BACKEND.
const (
	AuthJWT  = "jwt"
	AuthStub = "stub"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Port string

	StoreBackend string
	DatabaseURL  string
	SQLiteDBPath string
	Table        string

	AuthBackend string
	JWTSecret   string
	JWTIssuer   string
	JWTTTL      time.Duration

	CORSOrigins []string

	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	LogLevel slog.Level
}

// Load reads configuration from the environment and performs minimal
// validation.
func Load() (Config, error) {
	cfg := Config{
		Port:         fallback(os.Getenv("PORT"), "8080"),
		StoreBackend: fallback(os.Getenv("STORE_BACKEND"), StoreSQLite),
		DatabaseURL:  strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLiteDBPath: fallback(os.Getenv("SQLITE_DB_PATH"), "./data/expensely.db"),
		Table:        fallback(os.Getenv("EXPENSES_TABLE"), "expenses"),
		AuthBackend:  fallback(os.Getenv("AUTH_BACKEND"), AuthJWT),
		JWTSecret:    strings.TrimSpace(os.Getenv("JWT_SECRET")),
		JWTIssuer:    fallback(os.Getenv("JWT_ISSUER"), "expensely-be"),
		CORSOrigins:  parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		AMQPURL:      strings.TrimSpace(os.Getenv("AMQP_URL")),
		AMQPExchange: fallback(os.Getenv("AMQP_EXCHANGE"), "expensely"),
		AMQPQueue:    fallback(os.Getenv("AMQP_QUEUE"), "expense_events"),
		LogLevel:     parseLogLevel(os.Getenv("LOG_LEVEL")),
	}

	minutes := fallback(os.Getenv("JWT_TTL_MINUTES"), "60")
	if ttlMinutes, err := strconv.Atoi(minutes); err == nil && ttlMinutes > 0 {
		cfg.JWTTTL = time.Duration(ttlMinutes) * time.Minute
	} else {
		cfg.JWTTTL = 60 * time.Minute
	}

	switch cfg.StoreBackend {
	case StorePostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required for the postgres backend")
		}
	case StoreSQLite:
		if cfg.SQLiteDBPath == "" {
			return Config{}, errors.New("SQLITE_DB_PATH is required for the sqlite backend")
		}
	case StoreMemory:
	default:
		return Config{}, fmt.Errorf("invalid STORE_BACKEND %q: must be one of postgres, sqlite, memory", cfg.StoreBackend)
	}

	switch cfg.AuthBackend {
	case AuthJWT:
		if cfg.JWTSecret == "" {
			return Config{}, errors.New("JWT_SECRET is required for the jwt auth backend")
		}
	case AuthStub:
	default:
		return Config{}, fmt.Errorf("invalid AUTH_BACKEND %q: must be jwt or stub", cfg.AuthBackend)
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
