package probe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bnema/dusk/internal/infrastructure/environ"
)

func TestParse_Darwin(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		wantDark bool
	}{
		{"dark mode", "Dark", true},
		{"missing key prints nothing", "", false},
		{"explicit light", "Light", false},
		{"case sensitive", "dark", false},
		{"error text from defaults", "2024-01-01 The domain/default pair does not exist", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantDark, Parse(environ.Darwin, tt.line))
		})
	}
}

func TestParse_MatchCountEnvironments(t *testing.T) {
	for _, env := range []environ.Environment{
		environ.NativeLinux,
		environ.DockerLinux,
		environ.RemoteLinuxFile,
	} {
		t.Run(env.String(), func(t *testing.T) {
			assert.True(t, Parse(env, "1"))
			assert.True(t, Parse(env, "prefer-dark: 1 match"))
			assert.False(t, Parse(env, "0"))
			assert.False(t, Parse(env, ""))
		})
	}
}

func TestParse_LinuxLegacy(t *testing.T) {
	assert.True(t, Parse(environ.LinuxLegacy, "   variant       uint32 1"))
	assert.True(t, Parse(environ.LinuxLegacy, "uint32 1"))
	assert.False(t, Parse(environ.LinuxLegacy, "uint32 2"))
	assert.False(t, Parse(environ.LinuxLegacy, "uint32 0"))
	assert.False(t, Parse(environ.LinuxLegacy, ""))
}

func TestParse_WindowsInvertedPolarity(t *testing.T) {
	// AppsUseLightTheme 0x1 means light mode.
	assert.False(t, Parse(environ.WindowsOrWSL, "    AppsUseLightTheme    REG_DWORD    0x1"))
	assert.True(t, Parse(environ.WindowsOrWSL, "    AppsUseLightTheme    REG_DWORD    0x0"))
	// A failed probe (empty line) reads as dark on Windows.
	assert.True(t, Parse(environ.WindowsOrWSL, ""))
}

func TestParse_IsTotal(t *testing.T) {
	inputs := []string{"", "garbage", "1", "uint32 1", "Dark", "\x00\xff"}
	environments := []environ.Environment{
		environ.Unsupported,
		environ.NativeLinux,
		environ.LinuxLegacy,
		environ.Darwin,
		environ.WindowsOrWSL,
		environ.DockerLinux,
		environ.RemoteLinuxFile,
		environ.RemoteTerminalProbe,
	}

	for _, env := range environments {
		for _, input := range inputs {
			assert.NotPanics(t, func() {
				Parse(env, input)
			})
		}
	}
}

func TestParse_UnknownEnvironmentIsFalse(t *testing.T) {
	assert.False(t, Parse(environ.Unsupported, "1"))
	assert.False(t, Parse(environ.RemoteTerminalProbe, "dark"))
}
