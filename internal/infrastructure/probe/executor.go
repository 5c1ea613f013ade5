package probe

import (
	"context"
	"os/exec"
	"strings"

	"github.com/bnema/dusk/internal/application/port"
	"github.com/bnema/dusk/internal/logging"
)

// ShellExecutor runs probe commands through `sh -c` and delivers the first
// line of standard output on its own goroutine. Command failure and empty
// output are both delivered as an empty line; the parser decides what that
// means per environment.
type ShellExecutor struct{}

// Compile-time interface check.
var _ port.ProbeExecutor = ShellExecutor{}

// NewShellExecutor creates the default probe executor.
func NewShellExecutor() ShellExecutor {
	return ShellExecutor{}
}

// Run implements port.ProbeExecutor. The command is deliberately not bound
// to ctx's cancellation: probes are fire-and-forget, and a probe already in
// flight when the watcher is disabled must still deliver its real output,
// not an empty line fabricated by killing the process mid-run.
func (ShellExecutor) Run(ctx context.Context, command string, onFirstLine func(string)) {
	go func() {
		log := logging.FromContext(ctx)

		out, err := exec.Command("sh", "-c", command).Output()
		if err != nil {
			// Non-fatal: the next tick probes again. `defaults read` exits
			// non-zero in light mode, so this is an expected path.
			log.Debug().Err(err).Str("command", command).Msg("probe command failed")
		}

		line, _, _ := strings.Cut(string(out), "\n")
		onFirstLine(strings.TrimRight(line, "\r"))
	}()
}
