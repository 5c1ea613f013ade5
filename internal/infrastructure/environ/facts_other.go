//go:build !linux

package environ

// kernelRelease is only consulted for the WSL check, which can only match on
// a Linux kernel.
func kernelRelease() string {
	return ""
}
