package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig holds persistence settings.
type StorageConfig struct {
	// Path is the SQLite database file backing the task slot.
	Path string `mapstructure:"path" yaml:"path"`
}

// DisplayConfig holds UI/rendering preferences.
type DisplayConfig struct {
	Theme string `mapstructure:"theme" yaml:"theme"`

	// BayOrder lists bay keys in display order.
	BayOrder []string `mapstructure:"bay_order" yaml:"bay_order"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	// Path is the log file; empty disables logging.
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Display DisplayConfig `mapstructure:"display" yaml:"display"`
	Log     LogConfig     `mapstructure:"log" yaml:"log"`
}

// configDir returns the per-user configuration directory for the app,
// ~/.config/tasx.
func configDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(home, ".config", "tasx")
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/tasx/config.yaml.
func DefaultConfigPath() string {
	return filepath.Join(configDir(), "config.yaml")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	dir := configDir()
	return &AppConfig{
		Storage: StorageConfig{
			Path: filepath.Join(dir, "tasks.db"),
		},
		Display: DisplayConfig{
			Theme:    "default",
			BayOrder: []string{"general", "deadline"},
		},
		Log: LogConfig{
			Path: filepath.Join(dir, "tasx.log"),
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// If the file does not exist, it returns a default configuration. The
// TASX_DB_PATH environment variable overrides the storage path.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	defaults := defaultAppConfig()
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("display.theme", defaults.Display.Theme)
	v.SetDefault("display.bay_order", defaults.Display.BayOrder)
	v.SetDefault("log.path", defaults.Log.Path)

	cfg := defaultAppConfig()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return applyEnvOverrides(cfg), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return applyEnvOverrides(cfg), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if len(cfg.Display.BayOrder) == 0 {
		cfg.Display.BayOrder = defaults.Display.BayOrder
	}

	return applyEnvOverrides(cfg), nil
}

// applyEnvOverrides applies environment variable overrides to cfg.
func applyEnvOverrides(cfg *AppConfig) *AppConfig {
	if p := os.Getenv("TASX_DB_PATH"); p != "" {
		cfg.Storage.Path = p
	}
	if p := os.Getenv("TASX_LOG_PATH"); p != "" {
		cfg.Log.Path = p
	}
	return cfg
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("display", cfg.Display)
	v.Set("log", cfg.Log)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
