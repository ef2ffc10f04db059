package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/siknue/gpg-back/internal/calc/plate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"ADDR", "TLS_CERT", "TLS_KEY", "TOKEN_KEY", "DATABASE_URL", "RATE_LIMIT", "RATE_BURST", "PARTIAL_INDEXING", "CORS_ORIGIN"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", "secret")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, []byte("secret"), cfg.TokenKey)
	assert.Equal(t, rate.Limit(1), cfg.RateLimit)
	assert.Equal(t, 3, cfg.RateBurst)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, plate.IndexByLoadLength, cfg.Partial)
	assert.False(t, cfg.TLS())
}

func TestLoadFromEnvironment(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("ADDR", ":9443")
	t.Setenv("TLS_CERT", "server.crt")
	t.Setenv("TLS_KEY", "server.key")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("RATE_BURST", "10")
	t.Setenv("PARTIAL_INDEXING", "legacy")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, ":9443", cfg.Addr)
	assert.True(t, cfg.TLS())
	assert.Equal(t, rate.Limit(2.5), cfg.RateLimit)
	assert.Equal(t, 10, cfg.RateBurst)
	assert.Equal(t, plate.IndexLegacy, cfg.Partial)
}

func TestLoadDotEnvFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("TOKEN_KEY=from-file\nDATABASE_URL=postgres://db/glass\n"), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("from-file"), cfg.TokenKey)
	assert.Equal(t, "postgres://db/glass", cfg.DatabaseURL)
}

func TestLoadErrors(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing.env")

	clearEnv(t)
	_, err := Load(missing)
	assert.ErrorIs(t, err, ErrNoTokenKey)

	t.Setenv("TOKEN_KEY", "secret")
	t.Setenv("RATE_BURST", "0")
	_, err = Load(missing)
	assert.Error(t, err)

	t.Setenv("RATE_BURST", "")
	t.Setenv("PARTIAL_INDEXING", "sideways")
	_, err = Load(missing)
	assert.Error(t, err)
}
