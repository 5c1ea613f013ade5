package config

import (
	"fmt"

	"github.com/bnema/dusk/internal/infrastructure/environ"
)

// validateConfig rejects values the watcher cannot work with. The commands
// themselves are deliberately not validated here: only `dusk watch` needs
// them, and it reports their absence with its own remediation message.
func validateConfig(config *Config) error {
	if config.IntervalMs < minIntervalMs {
		return fmt.Errorf("interval_ms must be at least %d, got %d", minIntervalMs, config.IntervalMs)
	}

	if config.Environment != "" {
		if _, ok := environ.Parse(config.Environment); !ok {
			return fmt.Errorf("unknown environment %q\nValid values: native-linux, linux-legacy, darwin, windows-wsl, docker-linux, remote-linux-file, remote-terminal", config.Environment)
		}
	}

	switch config.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging.level %q (use trace, debug, info, warn or error)", config.Logging.Level)
	}

	switch config.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q (use console or json)", config.Logging.Format)
	}

	return nil
}
