// Package config holds runtime settings for the capifit CLI.
package config

import (
	"flag"
	"os"
	"time"
)

// Config holds the client settings.
//
// Fields:
//   - ServerURL: base URL of the capifit API, including the /api/v1 prefix.
//   - RequestTimeout: per-call deadline for gateway requests.
//   - SessionPath: path of the client-local sqlite session database.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	SessionPath    string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8080/api/v1"
	c.RequestTimeout = 10 * time.Second
	c.SessionPath = "capifit.db"
}

// Load constructs a Config: defaults first, then environment variables,
// then command-line flags. Later sources take precedence.
func Load() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}

func parseEnv(cfg *Config) {
	if v := os.Getenv("CAPIFIT_SERVER_URL"); v != "" {
		cfg.ServerURL = v
	}
	if v := os.Getenv("CAPIFIT_SESSION_PATH"); v != "" {
		cfg.SessionPath = v
	}
	if v := os.Getenv("CAPIFIT_REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.RequestTimeout = d
		}
	}
}

func parseFlags(cfg *Config) {
	flag.StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "base URL of the capifit API")
	flag.StringVar(&cfg.SessionPath, "session", cfg.SessionPath, "path of the local session database")
	flag.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request deadline")
	flag.Parse()
}
