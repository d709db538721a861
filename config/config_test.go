package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3003", cfg.Listen)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 172800, cfg.SessionMaxAge)
	require.NotNil(t, cfg.Database)
	assert.Equal(t, "./data/betbook.db", cfg.Database.Path)
	assert.Empty(t, cfg.SessionKey)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("BETBOOK_LISTEN", "127.0.0.1:8080")
	t.Setenv("BETBOOK_SESSION_KEY", "from-env")
	t.Setenv("BETBOOK_DATABASE_PATH", "/tmp/test.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, "from-env", cfg.SessionKey)
	assert.Equal(t, "/tmp/test.db", cfg.Database.Path)
}
