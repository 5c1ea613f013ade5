//go:build !windows

package probe

import (
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

const terminalReplyTimeout = 100 * time.Millisecond

// QueryTerminalBackground asks the terminal for its background color with an
// OSC 11 query and reports whether it is dark. Remote sessions default to
// dark, so true is returned when stdin is not a terminal, raw mode cannot be
// entered, or the terminal does not answer in time.
func QueryTerminalBackground() bool {
	fd := int(os.Stdin.Fd())

	if !term.IsTerminal(fd) {
		return true
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return true
	}

	_, _ = os.Stdout.WriteString("\x1b]11;?\x07")

	buf := make([]byte, 64)
	done := make(chan int, 1)

	go func() {
		n, _ := os.Stdin.Read(buf)
		done <- n
	}()

	result := true
	select {
	case n := <-done:
		if luma, ok := parseLuma(string(buf[:n])); ok {
			result = luma < 0.5
		}
	case <-time.After(terminalReplyTimeout):
	}

	// Drain whatever arrives after the timeout with non-blocking reads so a
	// late reply does not leak into the shell.
	_ = unix.SetNonblock(fd, true)
	drainBuf := make([]byte, 64)
	for {
		n, _ := unix.Read(fd, drainBuf)
		if n <= 0 {
			break
		}
	}
	_ = unix.SetNonblock(fd, false)

	_ = term.Restore(fd, oldState)

	return result
}

// parseLuma extracts the perceived brightness from an OSC 11 reply such as
// "\x1b]11;rgb:1e1e/2a2a/3636\x1b\\". Components may be 1-4 hex digits.
func parseLuma(reply string) (float64, bool) {
	i := strings.Index(reply, "rgb:")
	if i == -1 {
		return 0, false
	}

	parts := strings.SplitN(reply[i+4:], "/", 3)
	if len(parts) < 3 {
		return 0, false
	}

	r := parseHexComponent(parts[0])
	g := parseHexComponent(parts[1])
	b := parseHexComponent(parts[2])

	return 0.299*r + 0.587*g + 0.114*b, true
}

// parseHexComponent normalizes a hex color component to [0, 1].
func parseHexComponent(s string) float64 {
	s = strings.TrimFunc(s, func(r rune) bool {
		return !strings.ContainsRune("0123456789abcdefABCDEF", r)
	})
	if s == "" {
		return 0
	}
	if len(s) > 4 {
		s = s[:4]
	}

	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0
	}

	maxVal := float64(uint64(1)<<(4*len(s))) - 1
	return float64(v) / maxVal
}
