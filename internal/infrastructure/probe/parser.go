package probe

import (
	"strings"

	"github.com/bnema/dusk/internal/infrastructure/environ"
)

// parsers maps each environment to its response grammar. Dispatching over
// the closed enum keeps the table exhaustive; Unsupported and
// RemoteTerminalProbe intentionally have no entry (no command output exists
// for them) and fall through to false.
var parsers = map[environ.Environment]func(string) bool{
	// gsettings / grep -c output: a match count, "1" means prefer-dark.
	environ.NativeLinux:     containsOne,
	environ.DockerLinux:     containsOne,
	environ.RemoteLinuxFile: containsOne,

	// Portal reply wraps the code in a variant: "variant uint32 1".
	environ.LinuxLegacy: func(line string) bool {
		return strings.Contains(line, "uint32 1")
	},

	// `defaults read -g AppleInterfaceStyle` prints exactly "Dark" in dark
	// mode; in light mode the key is absent and the command errors out.
	environ.Darwin: func(line string) bool {
		return line == "Dark"
	},

	// AppsUseLightTheme: 0x1 means light, so the polarity is inverted. An
	// empty line (key missing, probe failed) therefore reads as dark.
	environ.WindowsOrWSL: func(line string) bool {
		return !strings.Contains(line, "1")
	},
}

func containsOne(line string) bool {
	return strings.Contains(line, "1")
}

// Parse maps the first output line of a probe to "prefers dark". It is total:
// any input for any environment yields a boolean without failing.
func Parse(env environ.Environment, firstLine string) bool {
	parse, ok := parsers[env]
	if !ok {
		return false
	}
	return parse(firstLine)
}
