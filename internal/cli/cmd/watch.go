package cmd

import (
	"context"
	"fmt"
	"io"
	"os/exec"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/dusk/internal/application/port"
	"github.com/bnema/dusk/internal/infrastructure/config"
	"github.com/bnema/dusk/internal/infrastructure/environ"
	"github.com/bnema/dusk/internal/infrastructure/probe"
	"github.com/bnema/dusk/internal/logging"
	"github.com/bnema/dusk/internal/watch"
)

var watchIntervalMs int

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Poll the theme preference and run the configured commands on change",
	Long: `Watch polls the theme preference at the configured interval and runs
commands.dark or commands.light exactly once per observed transition.

Both commands must be configured; watch refuses to start without them.
The interval comes from interval_ms in config.toml (default 3000) and can
be overridden with --interval.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().IntVar(&watchIntervalMs, "interval", 0, "Polling interval in milliseconds (overrides config)")
}

func runWatch(_ *cobra.Command, _ []string) error {
	app := GetApp()
	ctx := logging.WithComponent(app.Ctx(), "watch")
	log := logging.FromContext(ctx)

	journal, err := app.Journal()
	if err != nil {
		// Journaling is best-effort; never a reason not to watch.
		log.Warn().Err(err).Msg("transition journal unavailable")
		journal = nil
	}

	watcher, err := buildWatcher(ctx, app.Config, journal)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := watcher.Init(ctx); err != nil {
		return err
	}

	session := &activeWatch{}
	session.swap(watcher, startNudgers(ctx, watcher))

	// Config edits take effect without a restart: rebuild on reload. The
	// callback runs on viper's watch goroutine, so the running watcher is
	// only touched through the session.
	if err := app.Manager.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watching unavailable")
	}
	app.Manager.OnConfigChange(func(newCfg *config.Config) {
		log.Info().Msg("config changed, restarting watcher")
		next, buildErr := buildWatcher(ctx, newCfg, journal)
		if buildErr != nil {
			log.Error().Err(buildErr).Msg("new config rejected, watcher stays stopped")
			session.stop()
			return
		}
		if initErr := next.Init(ctx); initErr != nil {
			log.Error().Err(initErr).Msg("failed to restart watcher")
			session.stop()
			return
		}
		session.swap(next, startNudgers(ctx, next))
	})

	<-ctx.Done()
	session.stop()
	log.Info().Msg("theme watcher stopped")
	return nil
}

// activeWatch holds the running watcher and its nudgers behind a mutex so
// config reloads (viper's goroutine) and shutdown (main goroutine) never
// race on them.
type activeWatch struct {
	mu      sync.Mutex
	watcher *watch.Watcher
	nudgers []io.Closer
}

// swap disables the current watcher, closes its nudgers and installs the
// replacements.
func (a *activeWatch) swap(next *watch.Watcher, nudgers []io.Closer) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.teardownLocked()
	a.watcher = next
	a.nudgers = nudgers
}

// stop disables the current watcher and closes its nudgers.
func (a *activeWatch) stop() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.teardownLocked()
	a.watcher = nil
	a.nudgers = nil
}

func (a *activeWatch) teardownLocked() {
	if a.watcher != nil {
		a.watcher.Disable()
	}
	for _, nudger := range a.nudgers {
		_ = nudger.Close()
	}
}

// buildWatcher turns the config into watch.Options. Missing switch commands
// are the fatal configuration error the watcher itself also guards against;
// catching them here gives the user a config-file-shaped message.
func buildWatcher(ctx context.Context, cfg *config.Config, journal port.TransitionJournal) (*watch.Watcher, error) {
	if cfg.Commands.Dark == "" || cfg.Commands.Light == "" {
		return nil, fmt.Errorf(
			"no switch commands configured\n" +
				"Set commands.dark and commands.light in config.toml, e.g.:\n" +
				"  [commands]\n" +
				"  dark = \"gsettings set org.gnome.desktop.interface color-scheme prefer-dark\"\n" +
				"  light = \"gsettings set org.gnome.desktop.interface color-scheme prefer-light\"")
	}

	intervalMs := cfg.IntervalMs
	if watchIntervalMs > 0 {
		intervalMs = watchIntervalMs
	}

	opts := watch.Options{
		SetDark:  func() { runAction(ctx, cfg.Commands.Dark) },
		SetLight: func() { runAction(ctx, cfg.Commands.Light) },
		Interval: time.Duration(intervalMs) * time.Millisecond,
		Journal:  journal,
	}

	if cfg.Environment != "" {
		env, ok := environ.Parse(cfg.Environment)
		if !ok {
			return nil, fmt.Errorf("unknown environment %q in config", cfg.Environment)
		}
		opts.Environment = env
	}

	return watch.New(opts)
}

// runAction executes a configured switch command. Failures are logged, not
// propagated: the theme state has already moved on.
func runAction(ctx context.Context, action string) {
	log := logging.FromContext(ctx)
	if err := exec.CommandContext(ctx, "sh", "-c", action).Run(); err != nil {
		log.Error().Err(err).Str("command", action).Msg("switch command failed")
	} else {
		log.Debug().Str("command", action).Msg("switch command ran")
	}
}

// startNudgers hooks the push-based change sources matching the environment:
// portal signals on Linux desktops, file events for file-based preferences.
// Both only shorten reaction latency; polling continues regardless. The
// returned closers belong to the caller, so a config reload can shut down
// the previous set instead of accumulating connections.
func startNudgers(ctx context.Context, watcher *watch.Watcher) []io.Closer {
	log := logging.FromContext(ctx)

	switch watcher.Environment() {
	case environ.NativeLinux, environ.LinuxLegacy:
		monitor, err := probe.NewPortalMonitor(ctx)
		if err != nil {
			log.Debug().Err(err).Msg("portal monitor unavailable")
			return nil
		}
		monitor.Run(ctx, watcher.Nudge)
		return []io.Closer{monitor}

	case environ.DockerLinux, environ.RemoteLinuxFile:
		prefPath, err := prefFilePath()
		if err != nil {
			log.Debug().Err(err).Msg("preference path unavailable")
			return nil
		}
		prefWatcher, err := probe.NewPreferenceWatcher(prefPath)
		if err != nil {
			log.Debug().Err(err).Msg("preference watcher unavailable")
			return nil
		}
		prefWatcher.Run(ctx, watcher.Nudge)
		return []io.Closer{prefWatcher}
	}

	return nil
}
