// Package config loads runtime configuration for the stockkeeper CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables prefixed with STOCKKEEPER_ (see parseEnv).
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string   base URL of the inventory API, e.g. http://127.0.0.1:5000/api
//	-t int      request timeout (seconds)
//	-l int      products per page
//	-d string   path of the local SQLite database
//	-e string   directory export files are written to
//
// # JSON schema
//
// The JSON loader uses timex.Duration for timeouts, so values can be either
// strings like "10s" or integer nanoseconds. Keys left out keep their
// previous value:
//
//	{
//	  "server_base_url": "http://127.0.0.1:5000/api",
//	  "request_timeout": "10s",
//	  "page_size": 10,
//	  "database_path": "stockkeeper.db",
//	  "export_dir": "export",
//	  "log_format": "text",
//	  "log_level": "warn"
//	}
package config
