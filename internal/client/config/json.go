package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/stockkeeper/internal/flagx"
	"github.com/dmitrijs2005/stockkeeper/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
type JsonConfig struct {
	ServerBaseURL  string          `json:"server_base_url"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	PageSize       int             `json:"page_size"`
	DatabasePath   string          `json:"database_path"`
	ExportDir      string          `json:"export_dir"`
	LogFormat      string          `json:"log_format"`
	LogLevel       string          `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing is loaded. Read or unmarshal
// errors panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServerBaseURL != "" {
		cfg.ServerBaseURL = jc.ServerBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	if jc.PageSize > 0 {
		cfg.PageSize = jc.PageSize
	}
	if jc.DatabasePath != "" {
		cfg.DatabasePath = jc.DatabasePath
	}
	if jc.ExportDir != "" {
		cfg.ExportDir = jc.ExportDir
	}
	if jc.LogFormat != "" {
		cfg.LogFormat = jc.LogFormat
	}
	if jc.LogLevel != "" {
		cfg.LogLevel = jc.LogLevel
	}
}
