// Package config loads, validates and watches dusk's TOML configuration.
package config

// Config represents the complete configuration for dusk.
type Config struct {
	// IntervalMs is the polling interval in milliseconds.
	IntervalMs int `mapstructure:"interval_ms" toml:"interval_ms" json:"interval_ms" jsonschema:"minimum=100,description=Polling interval in milliseconds"`

	// Environment forces a probe environment instead of classifying at
	// startup. Empty means auto-detect. One of: native-linux, linux-legacy,
	// darwin, windows-wsl, docker-linux, remote-linux-file, remote-terminal.
	Environment string `mapstructure:"environment" toml:"environment" json:"environment,omitempty"`

	// Commands are the switch actions run on theme transitions.
	Commands CommandsConfig `mapstructure:"commands" toml:"commands" json:"commands"`

	Logging LoggingConfig `mapstructure:"logging" toml:"logging" json:"logging"`
	History HistoryConfig `mapstructure:"history" toml:"history" json:"history"`
}

// CommandsConfig holds the shell commands invoked on transitions. Both must
// be set before `dusk watch` will start.
type CommandsConfig struct {
	// Dark is run once per transition to dark mode.
	Dark string `mapstructure:"dark" toml:"dark" json:"dark"`
	// Light is run once per transition to light mode.
	Light string `mapstructure:"light" toml:"light" json:"light"`
}

// LoggingConfig controls log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error"`
	Format string `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json"`
}

// HistoryConfig controls the transition journal.
type HistoryConfig struct {
	// Enabled toggles journaling of observed transitions.
	Enabled bool `mapstructure:"enabled" toml:"enabled" json:"enabled"`
	// Path overrides the journal database location
	// (default: $XDG_STATE_HOME/dusk/dusk.sqlite).
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty"`
}
