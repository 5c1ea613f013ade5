//go:build windows

package probe

// QueryTerminalBackground is only used by the remote-terminal strategy,
// which never classifies on Windows. Report the remote default.
func QueryTerminalBackground() bool {
	return true
}
