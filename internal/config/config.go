// Package config reads server settings from the environment, optionally
// seeded from a .env file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/siknue/gpg-back/internal/calc/plate"
	"golang.org/x/time/rate"
)

var ErrNoTokenKey = errors.New("TOKEN_KEY environment variable is not set")

type Config struct {
	Addr        string
	TLSCert     string
	TLSKey      string
	TokenKey    []byte
	DatabaseURL string
	RateLimit   rate.Limit
	RateBurst   int
	CORSOrigin  string
	Partial     plate.PartialIndexing
}

// TLS reports whether both certificate and key are configured.
func (c Config) TLS() bool { return c.TLSCert != "" && c.TLSKey != "" }

// Load reads the given .env files (a missing file is not an error) and then
// the process environment.
func Load(files ...string) (Config, error) {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Config{
		Addr:        getenv("ADDR", ":8080"),
		TLSCert:     os.Getenv("TLS_CERT"),
		TLSKey:      os.Getenv("TLS_KEY"),
		TokenKey:    []byte(os.Getenv("TOKEN_KEY")),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		CORSOrigin:  getenv("CORS_ORIGIN", "*"),
	}
	if len(cfg.TokenKey) == 0 {
		return Config{}, ErrNoTokenKey
	}

	limit, err := strconv.ParseFloat(getenv("RATE_LIMIT", "1"), 64)
	if err != nil || limit < 0 {
		return Config{}, fmt.Errorf("RATE_LIMIT must be a non-negative number, got %q", os.Getenv("RATE_LIMIT"))
	}
	cfg.RateLimit = rate.Limit(limit)

	cfg.RateBurst, err = strconv.Atoi(getenv("RATE_BURST", "3"))
	if err != nil || cfg.RateBurst < 1 {
		return Config{}, fmt.Errorf("RATE_BURST must be a positive integer, got %q", os.Getenv("RATE_BURST"))
	}

	cfg.Partial, err = plate.ParsePartialIndexing(os.Getenv("PARTIAL_INDEXING"))
	if err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
