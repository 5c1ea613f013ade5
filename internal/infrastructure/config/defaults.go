package config

// Default configuration constants
const (
	// Polling defaults
	defaultIntervalMs = 3000 // ms
	minIntervalMs     = 100  // ms

	// Logging defaults
	defaultLogLevel  = "info"
	defaultLogFormat = "console"
)

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	return &Config{
		IntervalMs: defaultIntervalMs,
		Logging: LoggingConfig{
			Level:  defaultLogLevel,
			Format: defaultLogFormat,
		},
		History: HistoryConfig{
			Enabled: true,
		},
	}
}

// setDefaults registers defaults on the manager's viper instance so that a
// partial config file still unmarshals into a complete Config.
func (m *Manager) setDefaults() {
	m.viper.SetDefault("interval_ms", defaultIntervalMs)
	m.viper.SetDefault("environment", "")
	m.viper.SetDefault("commands.dark", "")
	m.viper.SetDefault("commands.light", "")
	m.viper.SetDefault("logging.level", defaultLogLevel)
	m.viper.SetDefault("logging.format", defaultLogFormat)
	m.viper.SetDefault("history.enabled", true)
	m.viper.SetDefault("history.path", "")
}
