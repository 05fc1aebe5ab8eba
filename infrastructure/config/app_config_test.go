package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadAppConfigFromEnv_Defaults(t *testing.T) {
	for _, key := range []string{"HTTP_ADDR", "SP_PAGES_LIBRARY", "SP_REQUEST_TIMEOUT", "DB_PATH", "LOG_LEVEL", "LOG_COMPRESS"} {
		t.Setenv(key, "")
	}

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "Site Pages", cfg.PagesLibrary)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "./sppages.db", cfg.Database.Path)
	assert.True(t, cfg.Database.EnableWAL)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Compress)
	require.NoError(t, cfg.Validate())
}

func TestLoadAppConfigFromEnv_Overrides(t *testing.T) {
	t.Setenv("SP_PAGES_LIBRARY", "News")
	t.Setenv("SP_REQUEST_TIMEOUT", "5s")
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("DB_ENABLE_WAL", "off")
	t.Setenv("LOG_OUTPUT", "/var/log/sppages.log")
	t.Setenv("LOG_MAX_BACKUPS", "9")

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, "News", cfg.PagesLibrary)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 3, cfg.Database.MaxOpenConns)
	assert.False(t, cfg.Database.EnableWAL)
	assert.Equal(t, "/var/log/sppages.log", cfg.Logging.Output)
	assert.Equal(t, 9, cfg.Logging.MaxBackups)
}

func TestLoadAppConfigFromEnv_BadValuesFallBack(t *testing.T) {
	t.Setenv("SP_REQUEST_TIMEOUT", "soon")
	t.Setenv("DB_MAX_OPEN_CONNS", "many")
	t.Setenv("LOG_COMPRESS", "maybe")

	cfg := LoadAppConfigFromEnv()

	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 25, cfg.Database.MaxOpenConns)
	assert.True(t, cfg.Logging.Compress)
}

func TestAppConfig_Validate(t *testing.T) {
	cfg := LoadAppConfigFromEnv()
	cfg.PagesLibrary = ""
	assert.Error(t, cfg.Validate())
}
