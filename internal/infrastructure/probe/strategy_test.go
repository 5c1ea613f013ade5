package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/dusk/internal/infrastructure/environ"
)

func TestForEnvironment_CommandSelection(t *testing.T) {
	tests := []struct {
		name        string
		env         environ.Environment
		wantContain string
	}{
		{"darwin queries defaults", environ.Darwin, "defaults read -g AppleInterfaceStyle"},
		{"native linux counts prefer-dark", environ.NativeLinux, "grep -c prefer-dark"},
		{"windows filters the registry value", environ.WindowsOrWSL, "AppsUseLightTheme"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			strategy, err := ForEnvironment(tt.env, "/home/u/.config/dusk/theme-preference")
			require.NoError(t, err)
			assert.Contains(t, strategy.Command, tt.wantContain)
		})
	}
}

func TestForEnvironment_FileBasedUsesPreferencePath(t *testing.T) {
	for _, env := range []environ.Environment{environ.DockerLinux, environ.RemoteLinuxFile} {
		strategy, err := ForEnvironment(env, "/tmp/pref file")
		require.NoError(t, err)
		assert.Contains(t, strategy.Command, "grep -c dark")
		// Path with a space must arrive quoted.
		assert.Contains(t, strategy.Command, "'/tmp/pref file'")
	}
}

func TestForEnvironment_RemoteTerminalHasNoCommand(t *testing.T) {
	strategy, err := ForEnvironment(environ.RemoteTerminalProbe, "")
	require.NoError(t, err)
	assert.Empty(t, strategy.Command)
}

func TestForEnvironment_UnsupportedErrors(t *testing.T) {
	_, err := ForEnvironment(environ.Unsupported, "")
	assert.Error(t, err)
}

func TestAdjustForRoot(t *testing.T) {
	const cmd = "gsettings get org.gnome.desktop.interface color-scheme | grep -c prefer-dark"

	t.Run("non-root is untouched", func(t *testing.T) {
		assert.Equal(t, cmd, AdjustForRoot(cmd, 1000, "alice"))
	})

	t.Run("root without sudo user is untouched", func(t *testing.T) {
		assert.Equal(t, cmd, AdjustForRoot(cmd, 0, ""))
	})

	t.Run("root under sudo reruns as the original user", func(t *testing.T) {
		adjusted := AdjustForRoot(cmd, 0, "alice")
		assert.Contains(t, adjusted, "sudo -u 'alice'")
		assert.Contains(t, adjusted, "sh -c")
		assert.Contains(t, adjusted, "prefer-dark")
	})

	t.Run("empty command stays empty", func(t *testing.T) {
		assert.Empty(t, AdjustForRoot("", 0, "alice"))
	})
}

func TestShellQuote(t *testing.T) {
	assert.Equal(t, "'plain'", shellQuote("plain"))
	assert.Equal(t, `'it'\''s'`, shellQuote("it's"))
}
