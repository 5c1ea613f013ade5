//go:build linux

package environ

import "golang.org/x/sys/unix"

// kernelRelease returns the uname release string, e.g.
// "5.15.167.4-microsoft-standard-WSL2".
func kernelRelease() string {
	var uts unix.Utsname
	if err := unix.Uname(&uts); err != nil {
		return ""
	}
	return unix.ByteSliceToString(uts.Release[:])
}
