// Package environ classifies the deployment context that determines how the
// host's theme preference can be probed.
package environ

// Environment is the detected deployment context. It is chosen once at
// initialization and stays fixed for the lifetime of a watcher; every probe
// strategy and response parser dispatches on it.
type Environment int

const (
	// Unsupported means no known probe strategy applies. Initialization
	// treats it as an inert no-op rather than an error.
	Unsupported Environment = iota

	// NativeLinux is a Linux desktop session with gsettings available.
	NativeLinux

	// LinuxLegacy is a Linux session without gsettings; the preference is
	// read through the XDG desktop portal via dbus-send.
	LinuxLegacy

	// Darwin is macOS.
	Darwin

	// WindowsOrWSL is native Windows or a WSL distribution; both read the
	// personalization key through reg.exe.
	WindowsOrWSL

	// DockerLinux is a Linux container; the preference comes from the
	// fallback preference file.
	DockerLinux

	// RemoteLinuxFile is a host that carries a fallback preference file.
	RemoteLinuxFile

	// RemoteTerminalProbe is an SSH session; the terminal background color
	// is queried instead of the (unreachable) desktop.
	RemoteTerminalProbe
)

var environmentNames = map[Environment]string{
	Unsupported:         "unsupported",
	NativeLinux:         "native-linux",
	LinuxLegacy:         "linux-legacy",
	Darwin:              "darwin",
	WindowsOrWSL:        "windows-wsl",
	DockerLinux:         "docker-linux",
	RemoteLinuxFile:     "remote-linux-file",
	RemoteTerminalProbe: "remote-terminal",
}

func (e Environment) String() string {
	if name, ok := environmentNames[e]; ok {
		return name
	}
	return "unsupported"
}

// Parse maps a configuration name back to an Environment. It returns
// (Unsupported, false) for unknown names so that a typo in the config
// override is caught during validation instead of silently disabling dusk.
func Parse(name string) (Environment, bool) {
	for env, n := range environmentNames {
		if n == name {
			return env, true
		}
	}
	return Unsupported, false
}

// Supported reports whether a probe strategy exists for the environment.
func (e Environment) Supported() bool {
	return e != Unsupported
}
