package environ

import (
	"os"
	"os/exec"
	"runtime"

	"github.com/bnema/dusk/internal/config"
)

// Facts is everything classification looks at, gathered once so that
// Classify itself stays a pure function.
type Facts struct {
	// OS is the running operating system ("linux", "darwin", "windows").
	OS string

	// KernelRelease is the kernel release string (uname -r); empty when it
	// cannot be determined. WSL distributions embed "WSL" in it.
	KernelRelease string

	// SSHSession is true when an SSH session environment variable is set.
	SSHSession bool

	// DockerMarker is true when /.dockerenv exists.
	DockerMarker bool

	// PreferenceFile is true when the fallback theme preference file exists.
	PreferenceFile bool

	// DesktopSession is true when a graphical session is indicated
	// (XDG_CURRENT_DESKTOP, WAYLAND_DISPLAY or DISPLAY).
	DesktopSession bool

	// HasGsettings is true when the gsettings binary is on PATH.
	HasGsettings bool
}

const dockerMarkerPath = "/.dockerenv"

// Snapshot gathers classification facts from the running system.
func Snapshot() Facts {
	facts := Facts{
		OS:            runtime.GOOS,
		KernelRelease: kernelRelease(),
		SSHSession:    isSSHSession(),
	}

	if _, err := os.Stat(dockerMarkerPath); err == nil {
		facts.DockerMarker = true
	}

	if prefPath, err := config.GetPreferenceFile(); err == nil {
		if _, statErr := os.Stat(prefPath); statErr == nil {
			facts.PreferenceFile = true
		}
	}

	facts.DesktopSession = os.Getenv("XDG_CURRENT_DESKTOP") != "" ||
		os.Getenv("WAYLAND_DISPLAY") != "" ||
		os.Getenv("DISPLAY") != ""

	if _, err := exec.LookPath("gsettings"); err == nil {
		facts.HasGsettings = true
	}

	return facts
}

func isSSHSession() bool {
	for _, name := range []string{"SSH_CLIENT", "SSH_TTY", "SSH_CONNECTION"} {
		if os.Getenv(name) != "" {
			return true
		}
	}
	return false
}
