package environ

import "strings"

// Classify maps gathered facts to an Environment. First match wins:
//
//  1. SSH session: the desktop is unreachable, probe the terminal instead.
//  2. Kernel release containing "WSL": the Windows registry is authoritative
//     even though the process runs on a Linux kernel.
//  3. Docker marker file: no desktop session exists inside the container.
//  4. Fallback preference file: the host opted into file-based preference.
//  5. Operating system: darwin, windows, or linux. Plain Linux resolves to
//     NativeLinux when a desktop session is indicated and gsettings is
//     available, otherwise to the portal-based LinuxLegacy strategy.
//
// Anything else classifies as Unsupported, which initialization treats as an
// inert no-op.
func Classify(facts Facts) Environment {
	if facts.SSHSession {
		return RemoteTerminalProbe
	}

	if strings.Contains(facts.KernelRelease, "WSL") {
		return WindowsOrWSL
	}

	if facts.DockerMarker {
		return DockerLinux
	}

	if facts.PreferenceFile {
		return RemoteLinuxFile
	}

	switch facts.OS {
	case "darwin":
		return Darwin
	case "windows":
		return WindowsOrWSL
	case "linux":
		if facts.DesktopSession && facts.HasGsettings {
			return NativeLinux
		}
		return LinuxLegacy
	default:
		return Unsupported
	}
}
