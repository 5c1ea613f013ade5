package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateXDG points every XDG base directory at a fresh temp dir so tests
// never touch the real user configuration.
func isolateXDG(t *testing.T) string {
	t.Helper()

	base := t.TempDir()
	t.Setenv("ENV", "")
	t.Setenv("HOME", base)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(base, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(base, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(base, "state"))
	t.Setenv("DUSK_LOG_LEVEL", "")
	t.Setenv("DUSK_LOG_FORMAT", "")
	return base
}

func writeConfig(t *testing.T, content string) {
	t.Helper()

	dir := filepath.Join(os.Getenv("XDG_CONFIG_HOME"), "dusk")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0o644))
}

func TestManager_LoadCreatesDefaultConfig(t *testing.T) {
	base := isolateXDG(t)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, defaultIntervalMs, cfg.IntervalMs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.History.Enabled)
	assert.Empty(t, cfg.Environment)

	// A fresh default file must now exist on disk.
	_, statErr := os.Stat(filepath.Join(base, "config", "dusk", "config.toml"))
	assert.NoError(t, statErr)
}

func TestManager_LoadReadsExistingFile(t *testing.T) {
	isolateXDG(t)
	writeConfig(t, `
interval_ms = 500
environment = "darwin"

[commands]
dark = "osascript -e 'dark'"
light = "osascript -e 'light'"

[logging]
level = "debug"
format = "json"

[history]
enabled = false
`)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 500, cfg.IntervalMs)
	assert.Equal(t, "darwin", cfg.Environment)
	assert.Equal(t, "osascript -e 'dark'", cfg.Commands.Dark)
	assert.Equal(t, "osascript -e 'light'", cfg.Commands.Light)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.False(t, cfg.History.Enabled)
}

func TestManager_PartialFileKeepsDefaults(t *testing.T) {
	isolateXDG(t)
	writeConfig(t, `interval_ms = 1000`)

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	cfg := m.Get()
	assert.Equal(t, 1000, cfg.IntervalMs)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.History.Enabled)
}

func TestManager_EnvVarOverridesLogLevel(t *testing.T) {
	isolateXDG(t)
	t.Setenv("DUSK_LOG_LEVEL", "trace")

	m, err := NewManager()
	require.NoError(t, err)
	require.NoError(t, m.Load())

	assert.Equal(t, "trace", m.Get().Logging.Level)
}

func TestManager_LoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"interval below floor", `interval_ms = 50`, "interval_ms"},
		{"unknown environment", `environment = "solaris"`, "unknown environment"},
		{"bad log level", "[logging]\nlevel = \"verbose\"", "logging.level"},
		{"bad log format", "[logging]\nformat = \"xml\"", "logging.format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolateXDG(t)
			writeConfig(t, tt.content)

			m, err := NewManager()
			require.NoError(t, err)

			err = m.Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidateConfig_AcceptsDefaults(t *testing.T) {
	assert.NoError(t, validateConfig(DefaultConfig()))
}
