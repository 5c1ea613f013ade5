// Package port defines the interfaces consumed by the watch core.
package port

import "context"

// ProbeExecutor runs a command and delivers the first line of its standard
// output. The callback is invoked asynchronously, never on the caller's
// goroutine. A command that fails or produces no output is delivered as an
// empty first line; exit codes are not inspected.
type ProbeExecutor interface {
	Run(ctx context.Context, command string, onFirstLine func(string))
}
