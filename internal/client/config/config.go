package config

import (
	"errors"
	"time"
)

var ErrInvalidPageSize = errors.New("page size must be positive")

// Config holds runtime settings for the stockkeeper CLI.
//
// Fields:
//   - ServerBaseURL: root of the inventory API; endpoint paths are appended.
//   - RequestTimeout: upper bound for a single HTTP request.
//   - PageSize: products per page, fixed for the session.
//   - DatabasePath: SQLite file holding the persisted session.
//   - ExportDir: where CSV exports are written.
//   - LogFormat, LogLevel: diagnostics written to stderr.
type Config struct {
	ServerBaseURL  string
	RequestTimeout time.Duration
	PageSize       int
	DatabasePath   string
	ExportDir      string
	LogFormat      string
	LogLevel       string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:5000/api"
	c.RequestTimeout = 10 * time.Second
	c.PageSize = 10
	c.DatabasePath = "stockkeeper.db"
	c.ExportDir = "export"
	c.LogFormat = "text"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones. Malformed JSON or flags
// panic; a malformed environment variable is returned as an error.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseEnv(cfg); err != nil {
		return nil, err
	}
	parseJson(cfg)
	parseFlags(cfg)
	if cfg.PageSize < 1 {
		return nil, ErrInvalidPageSize
	}
	return cfg, nil
}
