// Package watch owns the polling state machine that turns raw probe output
// into debounced theme-change events.
package watch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/dusk/internal/application/port"
	"github.com/bnema/dusk/internal/config"
	"github.com/bnema/dusk/internal/infrastructure/environ"
	"github.com/bnema/dusk/internal/infrastructure/probe"
	"github.com/bnema/dusk/internal/logging"
)

// DefaultInterval is the polling interval used when none is configured.
const DefaultInterval = 3 * time.Second

// Options configures a Watcher.
type Options struct {
	// SetDark and SetLight are the switch actions. Both are required; the
	// debouncer invokes exactly one of them per observed transition.
	SetDark  func()
	SetLight func()

	// Interval between probes. Defaults to DefaultInterval.
	Interval time.Duration

	// Environment overrides classification when set to a supported value.
	// The zero value (Unsupported) means classify at Init.
	Environment environ.Environment

	// PreferenceFile overrides the fallback preference file path.
	PreferenceFile string

	// Executor runs probe commands. Defaults to probe.NewShellExecutor().
	Executor port.ProbeExecutor

	// Journal, when non-nil, records every fired transition. Journal
	// failures are logged and never interrupt polling.
	Journal port.TransitionJournal
}

// Watcher polls the theme preference and fires the switch actions on
// transitions. A Watcher alternates between two states: idle (no ticker) and
// running. Init moves it to running, Disable back to idle; the cycle may be
// repeated. Probes are fire-and-forget: Disable stops future ticks but does
// not cancel a probe already in flight, whose result still reaches the
// debouncer.
type Watcher struct {
	mu       sync.Mutex
	opts     Options
	executor port.ProbeExecutor
	switcher *Switcher

	env      environ.Environment
	strategy probe.Strategy
	helper   string

	cancel context.CancelFunc
	nudge  chan struct{}

	// classify is swapped out in tests.
	classify func() environ.Environment
}

// New validates the options and creates an idle Watcher. Missing switch
// actions are a configuration error: polling without them could only ever
// observe, never apply.
func New(opts Options) (*Watcher, error) {
	if opts.SetDark == nil || opts.SetLight == nil {
		return nil, fmt.Errorf(
			"both switch actions must be configured before init\n" +
				"Provide SetDark and SetLight (CLI: set commands.dark and commands.light in config.toml)")
	}
	if opts.Interval <= 0 {
		opts.Interval = DefaultInterval
	}

	executor := opts.Executor
	if executor == nil {
		executor = probe.NewShellExecutor()
	}

	return &Watcher{
		opts:     opts,
		executor: executor,
		switcher: NewSwitcher(opts.SetDark, opts.SetLight),
		nudge:    make(chan struct{}, 1),
		classify: func() environ.Environment {
			return environ.Classify(environ.Snapshot())
		},
	}, nil
}

// Init classifies the environment, selects the probe strategy and starts
// polling. It fires one immediate probe before the first scheduled tick.
// Init is idempotent: when already running, the existing ticker is stopped
// first, so no second ticker can leak.
//
// An unsupported environment is not an error: Init logs and returns without
// starting anything. Missing required tooling (dbus-send for the
// portal-based strategy) is an error.
func (w *Watcher) Init(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	log := logging.FromContext(ctx)

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}

	env := w.opts.Environment
	if !env.Supported() {
		env = w.classify()
	}

	if !env.Supported() {
		log.Info().Msg("unsupported environment, theme watching disabled")
		return nil
	}

	// Every log line from here on, including probe results delivered much
	// later, carries the chosen environment.
	ctx = logging.WithEnvironment(ctx, env.String())
	log = logging.FromContext(ctx)

	if env == environ.RemoteTerminalProbe {
		w.helper = environ.InstallHelper(ctx)
	}

	prefPath := w.opts.PreferenceFile
	if prefPath == "" {
		var err error
		if prefPath, err = config.GetPreferenceFile(); err != nil {
			return fmt.Errorf("resolve preference file: %w", err)
		}
	}

	strategy, err := probe.ForEnvironment(env, prefPath)
	if err != nil {
		return err
	}

	w.env = env
	w.strategy = strategy.Adjusted()

	log.Info().
		Dur("interval", w.opts.Interval).
		Msg("starting theme watcher")

	loopCtx, cancel := context.WithCancel(ctx)
	w.cancel = cancel

	// Immediate unconditional probe; the first observation always fires a
	// switch action because no prior state exists. runProbe is used instead
	// of detect because the lock is still held here.
	w.runProbe(loopCtx, w.env, w.strategy, w.helper)

	go w.loop(loopCtx)

	return nil
}

// Disable stops polling. Further probes only happen after another Init.
func (w *Watcher) Disable() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.cancel != nil {
		w.cancel()
		w.cancel = nil
	}
}

// Nudge requests an immediate probe between ticks. It is a no-op while idle
// and coalesces with an already pending nudge.
func (w *Watcher) Nudge() {
	select {
	case w.nudge <- struct{}{}:
	default:
	}
}

// Environment returns the environment chosen by the last Init.
func (w *Watcher) Environment() environ.Environment {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.env
}

// Current returns the last applied state and whether one exists yet.
func (w *Watcher) Current() (isDark, known bool) {
	return w.switcher.Current()
}

func (w *Watcher) loop(ctx context.Context) {
	ticker := time.NewTicker(w.opts.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.detect(ctx)
		case <-w.nudge:
			w.detect(ctx)
		}
	}
}
