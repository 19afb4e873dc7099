package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "STORE_BACKEND", "DATABASE_URL", "SQLITE_DB_PATH", "EXPENSES_TABLE",
		"AUTH_BACKEND", "JWT_SECRET", "JWT_ISSUER", "JWT_TTL_MINUTES",
		"CORS_ALLOWED_ORIGINS", "AMQP_URL", "AMQP_EXCHANGE", "AMQP_QUEUE", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, StoreSQLite, cfg.StoreBackend)
	assert.Equal(t, "./data/expensely.db", cfg.SQLiteDBPath)
	assert.Equal(t, "expenses", cfg.Table)
	assert.Equal(t, AuthJWT, cfg.AuthBackend)
	assert.Equal(t, "expensely-be", cfg.JWTIssuer)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, slog.LevelInfo, cfg.LogLevel)
}

func TestLoadPostgresRequiresDatabaseURL(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORE_BACKEND", StorePostgres)
	t.Setenv("JWT_SECRET", "secret")

	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/expensely")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, StorePostgres, cfg.StoreBackend)
}

func TestLoadJWTRequiresSecret(t *testing.T) {
	clearEnv(t)

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadStubAuthNeedsNoSecret(t *testing.T) {
	clearEnv(t)
	t.Setenv("AUTH_BACKEND", AuthStub)
	t.Setenv("STORE_BACKEND", StoreMemory)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, AuthStub, cfg.AuthBackend)
}

func TestLoadRejectsUnknownBackends(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("STORE_BACKEND", "dynamo")
	_, err := Load()
	assert.Error(t, err)

	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AUTH_BACKEND", "cognito")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoadParsesCORSOrigins(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, cfg.CORSOrigins)
}

func TestLoadTTLOverride(t *testing.T) {
	clearEnv(t)
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("JWT_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.JWTTTL)

	// Bad values fall back to the default.
	t.Setenv("JWT_TTL_MINUTES", "soon")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
}
