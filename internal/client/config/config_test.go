package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaults() Config {
	var c Config
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	c := defaults()

	assert.Equal(t, "http://127.0.0.1:5000/api", c.ServerBaseURL)
	assert.Equal(t, 10*time.Second, c.RequestTimeout)
	assert.Equal(t, 10, c.PageSize)
	assert.Equal(t, "stockkeeper.db", c.DatabasePath)
	assert.Equal(t, "export", c.ExportDir)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, "warn", c.LogLevel)
}

func TestLoadConfig_UsesDefaultsBeforeParsing(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin"}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg, "LoadConfig must not return nil")
	assert.Equal(t, defaults(), *cfg)
}

func TestLoadConfig_Precedence(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	t.Setenv("STOCKKEEPER_SERVER_URL", "http://env:1/api")
	t.Setenv("STOCKKEEPER_PAGE_SIZE", "25")
	t.Setenv("STOCKKEEPER_LOG_LEVEL", "debug")

	path := writeTempJSON(t, "", "", map[string]any{
		"server_base_url": "http://json:2/api",
		"export_dir":      "/tmp/json-exports",
	})
	os.Args = []string{"testbin", "-c", path, "-a", "http://flag:3/api"}

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "http://flag:3/api", cfg.ServerBaseURL)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, "/tmp/json-exports", cfg.ExportDir)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 10*time.Second, cfg.RequestTimeout)
}

func TestLoadConfig_RejectsBadPageSize(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"testbin", "-l", "0"}

	_, err := LoadConfig()
	assert.ErrorIs(t, err, ErrInvalidPageSize)
}
