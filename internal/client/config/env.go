package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "STOCKKEEPER"

type envConfig struct {
	ServerBaseURL  string        `envconfig:"SERVER_URL"`
	RequestTimeout time.Duration `envconfig:"REQUEST_TIMEOUT"`
	PageSize       int           `envconfig:"PAGE_SIZE"`
	DatabasePath   string        `envconfig:"DB"`
	ExportDir      string        `envconfig:"EXPORT_DIR"`
	LogFormat      string        `envconfig:"LOG_FORMAT"`
	LogLevel       string        `envconfig:"LOG_LEVEL"`
}

// parseEnv overlays Config with STOCKKEEPER_* variables. Unset variables
// keep the current value.
func parseEnv(cfg *Config) error {
	ec := envConfig{
		ServerBaseURL:  cfg.ServerBaseURL,
		RequestTimeout: cfg.RequestTimeout,
		PageSize:       cfg.PageSize,
		DatabasePath:   cfg.DatabasePath,
		ExportDir:      cfg.ExportDir,
		LogFormat:      cfg.LogFormat,
		LogLevel:       cfg.LogLevel,
	}
	if err := envconfig.Process(envPrefix, &ec); err != nil {
		return fmt.Errorf("environment: %w", err)
	}

	cfg.ServerBaseURL = ec.ServerBaseURL
	cfg.RequestTimeout = ec.RequestTimeout
	cfg.PageSize = ec.PageSize
	cfg.DatabasePath = ec.DatabasePath
	cfg.ExportDir = ec.ExportDir
	cfg.LogFormat = ec.LogFormat
	cfg.LogLevel = ec.LogLevel
	return nil
}
