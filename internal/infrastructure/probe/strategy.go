// Package probe selects and runs the theme probe for a classified
// environment and parses its output.
package probe

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/bnema/dusk/internal/infrastructure/environ"
)

// Strategy describes how the theme preference is sampled. Exactly one
// strategy is active per environment: either a shell command whose first
// stdout line is parsed, or (for remote terminals) no command at all.
type Strategy struct {
	// Command is run through `sh -c`; empty for RemoteTerminalProbe.
	Command string
}

const (
	darwinCommand      = "defaults read -g AppleInterfaceStyle"
	nativeLinuxCommand = "gsettings get org.gnome.desktop.interface color-scheme | grep -c prefer-dark"

	// The portal read carries its own 1s reply timeout; dusk enforces no
	// other timeout on probes.
	linuxLegacyCommand = "dbus-send --session --print-reply=literal --reply-timeout=1000" +
		" --dest=org.freedesktop.portal.Desktop /org/freedesktop/portal/desktop" +
		" org.freedesktop.portal.Settings.Read string:org.freedesktop.appearance string:color-scheme"

	// AppsUseLightTheme is 0x1 for light themes, hence the inverted parse.
	windowsCommand = `reg.exe query 'HKCU\SOFTWARE\Microsoft\Windows\CurrentVersion\Themes\Personalize'` +
		" /v AppsUseLightTheme | grep AppsUseLightTheme"
)

// ForEnvironment returns the probe strategy for an environment.
// LinuxLegacy requires dbus-send on PATH and fails with remediation
// instructions when it is missing; this is the only strategy with a hard
// tooling requirement.
func ForEnvironment(env environ.Environment, prefPath string) (Strategy, error) {
	switch env {
	case environ.Darwin:
		return Strategy{Command: darwinCommand}, nil
	case environ.NativeLinux:
		return Strategy{Command: nativeLinuxCommand}, nil
	case environ.DockerLinux, environ.RemoteLinuxFile:
		return Strategy{Command: fmt.Sprintf("grep -c dark %s", shellQuote(prefPath))}, nil
	case environ.LinuxLegacy:
		if _, err := exec.LookPath("dbus-send"); err != nil {
			return Strategy{}, fmt.Errorf(
				"dbus-send not found on PATH: the portal-based probe needs it on this system\n"+
					"Install the dbus tools (e.g. 'apt install dbus' or 'pacman -S dbus') or set commands manually: %w", err)
		}
		return Strategy{Command: linuxLegacyCommand}, nil
	case environ.WindowsOrWSL:
		return Strategy{Command: windowsCommand}, nil
	case environ.RemoteTerminalProbe:
		return Strategy{}, nil
	default:
		return Strategy{}, fmt.Errorf("no probe strategy for environment %q", env)
	}
}

// Adjusted applies the root-privilege rewrite against the real process
// identity. See AdjustForRoot.
func (s Strategy) Adjusted() Strategy {
	if runtime.GOOS == "windows" {
		return s
	}
	s.Command = AdjustForRoot(s.Command, os.Geteuid(), os.Getenv("SUDO_USER"))
	return s
}

// AdjustForRoot rewrites a probe command to execute as the original user when
// the process runs as root under sudo. Desktop settings live in the user's
// session, not root's, so the probe must keep that context.
func AdjustForRoot(command string, euid int, sudoUser string) string {
	if euid != 0 || sudoUser == "" || command == "" {
		return command
	}
	return fmt.Sprintf("sudo -u %s -- sh -c %s", shellQuote(sudoUser), shellQuote(command))
}

// shellQuote wraps s in single quotes, escaping embedded ones.
func shellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}
