package watch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/bnema/dusk/internal/application/port"
	"github.com/bnema/dusk/internal/infrastructure/environ"
	"github.com/bnema/dusk/internal/infrastructure/probe"
	"github.com/bnema/dusk/internal/logging"
)

// detect snapshots the active strategy and dispatches one probe. It never
// blocks: results are delivered to the debouncer from the executor's
// goroutine. Reentrant callers (Init holds the lock) use runProbe directly.
func (w *Watcher) detect(ctx context.Context) {
	w.mu.Lock()
	env, strategy, helper := w.env, w.strategy, w.helper
	w.mu.Unlock()

	w.runProbe(ctx, env, strategy, helper)
}

func (w *Watcher) runProbe(ctx context.Context, env environ.Environment, strategy probe.Strategy, helper string) {
	if env == environ.RemoteTerminalProbe {
		w.probeTerminal(ctx, env, helper)
		return
	}

	w.executor.Run(ctx, strategy.Command, func(line string) {
		w.apply(ctx, env, probe.Parse(env, line), "command")
	})
}

// probeTerminal resolves the remote-terminal strategy: prefer the installed
// helper script, then a direct OSC 11 query, which itself defaults to dark
// when the terminal does not answer.
func (w *Watcher) probeTerminal(ctx context.Context, env environ.Environment, helper string) {
	if helper == "" {
		helper = environ.InstalledHelper()
	}

	if helper != "" {
		w.executor.Run(ctx, helper, func(line string) {
			w.apply(ctx, env, strings.TrimSpace(line) == "dark", "helper")
		})
		return
	}

	go func() {
		w.apply(ctx, env, probe.QueryTerminalBackground(), "terminal")
	}()
}

// apply hands the observation to the debouncer and journals fired switches.
func (w *Watcher) apply(ctx context.Context, env environ.Environment, isDark bool, source string) {
	if !w.switcher.Apply(isDark) {
		return
	}

	log := logging.FromContext(ctx)
	log.Info().Bool("dark", isDark).Str("source", source).Msg("theme switched")

	if w.opts.Journal == nil {
		return
	}

	transition := port.Transition{
		At:          time.Now(),
		Environment: env.String(),
		Dark:        isDark,
		Source:      source,
	}
	if err := w.opts.Journal.Record(ctx, transition); err != nil {
		log.Warn().Err(err).Msg("failed to journal theme transition")
	}
}

// DetectOnce runs a single probe for env and returns the result
// synchronously. It is the one-shot counterpart of a running Watcher, used
// by `dusk detect`.
func DetectOnce(ctx context.Context, env environ.Environment, executor port.ProbeExecutor, prefPath string) (bool, error) {
	if !env.Supported() {
		return false, fmt.Errorf("unsupported environment")
	}

	if env == environ.RemoteTerminalProbe {
		if helper := environ.InstalledHelper(); helper != "" {
			result := make(chan bool, 1)
			executor.Run(ctx, helper, func(line string) {
				result <- strings.TrimSpace(line) == "dark"
			})
			select {
			case isDark := <-result:
				return isDark, nil
			case <-ctx.Done():
				return false, ctx.Err()
			}
		}
		return probe.QueryTerminalBackground(), nil
	}

	strategy, err := probe.ForEnvironment(env, prefPath)
	if err != nil {
		return false, err
	}
	strategy = strategy.Adjusted()

	result := make(chan bool, 1)
	executor.Run(ctx, strategy.Command, func(line string) {
		result <- probe.Parse(env, line)
	})

	select {
	case isDark := <-result:
		return isDark, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}
