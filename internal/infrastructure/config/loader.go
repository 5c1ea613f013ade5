package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"

	xdg "github.com/bnema/dusk/internal/config"
)

const filePerm = 0o644

// Manager handles configuration loading, watching, and reloading.
type Manager struct {
	config    *Config
	viper     *viper.Viper
	mu        sync.RWMutex
	callbacks []func(*Config)
	watching  bool
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := xdg.GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)
	v.AddConfigPath(".") // Current directory for development

	v.SetEnvPrefix("DUSK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings for env vars whose names predate the config keys.
	if err := v.BindEnv("logging.level", "DUSK_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind DUSK_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "DUSK_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind DUSK_LOG_FORMAT: %w", err)
	}

	return &Manager{
		viper:     v,
		callbacks: make([]func(*Config), 0),
	}, nil
}

// Load loads the configuration from file and environment variables.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := xdg.EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}

	config, err := m.unmarshalConfig()
	if err != nil {
		return err
	}

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func (m *Manager) readConfigFile() error {
	if err := m.viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			if createErr := m.createDefaultConfig(); createErr != nil {
				configDir, _ := xdg.GetConfigDir()
				return fmt.Errorf(
					"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
					configDir,
					createErr,
				)
			}
			if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
				return fmt.Errorf(
					"failed to read newly created config file: %w\nThe config file was created but couldn't be read. Please check the file format",
					rereadErr,
				)
			}
		} else {
			configFile := m.viper.ConfigFileUsed()
			if configFile == "" {
				configDir, _ := xdg.GetConfigDir()
				configFile = filepath.Join(configDir, "config.toml")
			}
			return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
		}
	}
	return nil
}

func (m *Manager) unmarshalConfig() (*Config, error) {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		configFile := m.viper.ConfigFileUsed()
		return nil, fmt.Errorf("failed to unmarshal config file %s: %w\nCheck the key names and value types against `dusk config schema`", configFile, err)
	}
	return config, nil
}

// createDefaultConfig writes a commented default config.toml alongside its
// JSON schema, mirroring what a fresh install should look like.
func (m *Manager) createDefaultConfig() error {
	configDir, err := xdg.GetConfigDir()
	if err != nil {
		return err
	}

	configFile := filepath.Join(configDir, "config.toml")
	if err := os.WriteFile(configFile, []byte(defaultConfigTOML), filePerm); err != nil {
		return err
	}

	// Schema generation failures are not fatal; the config itself works.
	_ = GenerateSchemaFile()

	return nil
}

const defaultConfigTOML = `# dusk configuration
# Polling interval in milliseconds.
interval_ms = 3000

# Force a probe environment instead of auto-detecting. One of:
# native-linux, linux-legacy, darwin, windows-wsl, docker-linux,
# remote-linux-file, remote-terminal.
#environment = ""

[commands]
# Shell commands run exactly once per theme transition.
#dark = "gsettings set org.gnome.desktop.interface color-scheme prefer-dark"
#light = "gsettings set org.gnome.desktop.interface color-scheme prefer-light"
dark = ""
light = ""

[logging]
level = "info"    # trace, debug, info, warn, error
format = "console" # console, json

[history]
# Journal observed transitions to $XDG_STATE_HOME/dusk/dusk.sqlite.
enabled = true
#path = ""
`

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}
