package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.Framework.Dir)
	assert.Empty(t, cfg.Framework.Tag)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.False(t, cfg.Logging.Development)
}

func TestLoadWithEnvironmentVariables(t *testing.T) {
	t.Setenv("RESTABLE_FRAMEWORK_DIR", "/tmp/fw")
	t.Setenv("RESTABLE_FRAMEWORK_TAG", "v34")
	t.Setenv("RESTABLE_LOG_LEVEL", "debug")
	t.Setenv("RESTABLE_LOG_DEV", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "/tmp/fw", cfg.Framework.Dir)
	assert.Equal(t, "v34", cfg.Framework.Tag)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Logging.Development)
}

func TestLoadOrDefault(t *testing.T) {
	cfg := LoadOrDefault()

	assert.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
}
