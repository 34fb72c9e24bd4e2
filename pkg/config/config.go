/*
Package config manages TOML config for typeahead services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"typeahead/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Widget WidgetConfig `toml:"widget"`
	List   ListConfig   `toml:"list"`
	Server ServerConfig `toml:"server"`
}

// WidgetConfig has search pipeline options.
type WidgetConfig struct {
	Engine     string `toml:"engine"` // "strict", "loose" or "prefix"
	Threshold  int    `toml:"threshold"`
	DebounceMs int    `toml:"debounce_ms"`
	MaxResults int    `toml:"max_results"`
	Highlight  bool   `toml:"highlight"`
	Diacritics bool   `toml:"diacritics"`
}

// ListConfig holds results list options.
type ListConfig struct {
	MaxVisible int  `toml:"max_visible"`
	Wrap       bool `toml:"wrap"`
}

// ServerConfig has IPC server related options.
type ServerConfig struct {
	MaxLimit int `toml:"max_limit"`
	MaxQuery int `toml:"max_query"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/
// 2. ~/Library/Application Support/ (macOS)
// 3. Current executable dir
// 4. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "typeahead")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	// Not conventional, fallback from ~/.config if not writable
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "typeahead")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from --config flag
// 2. Default path: [UserConfigDir]/typeahead/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	var config *Config
	var err error

	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err = LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err = InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Widget: WidgetConfig{
			Engine:     "strict",
			Threshold:  1,
			DebounceMs: 120,
			MaxResults: 20,
			Highlight:  true,
			Diacritics: false,
		},
		List: ListConfig{
			MaxVisible: 10,
			Wrap:       true,
		},
		Server: ServerConfig{
			MaxLimit: 64,
			MaxQuery: 60,
		},
	}
}

// InitConfig loads config from file or creates default if missing
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

// tryPartialParse salvages the valid sections of a broken TOML file.
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if widgetSection, ok := utils.ExtractSection(tempConfig, "widget"); ok {
		extractWidgetConfig(widgetSection, &config.Widget)
	}
	if listSection, ok := utils.ExtractSection(tempConfig, "list"); ok {
		extractListConfig(listSection, &config.List)
	}
	if serverSection, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(serverSection, &config.Server)
	}
	return config, nil
}

func extractWidgetConfig(data map[string]any, widget *WidgetConfig) {
	if val, ok := utils.ExtractString(data, "engine"); ok {
		widget.Engine = val
	}
	if val, ok := utils.ExtractInt64(data, "threshold"); ok {
		widget.Threshold = val
	}
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		widget.DebounceMs = val
	}
	if val, ok := utils.ExtractInt64(data, "max_results"); ok {
		widget.MaxResults = val
	}
	if val, ok := utils.ExtractBool(data, "highlight"); ok {
		widget.Highlight = val
	}
	if val, ok := utils.ExtractBool(data, "diacritics"); ok {
		widget.Diacritics = val
	}
}

func extractListConfig(data map[string]any, list *ListConfig) {
	if val, ok := utils.ExtractInt64(data, "max_visible"); ok {
		list.MaxVisible = val
	}
	if val, ok := utils.ExtractBool(data, "wrap"); ok {
		list.Wrap = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		server.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query"); ok {
		server.MaxQuery = val
	}
}

// RebuildConfigFile force creates a new config.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	configDir := filepath.Dir(defaultPath)
	if err := utils.EnsureDir(configDir); err != nil {
		return err
	}
	config := DefaultConfig()
	return utils.SaveTOMLFile(config, defaultPath)
}

// GetActiveConfigPath returns the absolute path of loaded config file
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes widget values and saves to file
func (c *Config) Update(configPath string, threshold, debounceMs, maxResults *int, highlight *bool) error {
	widget := &c.Widget
	if threshold != nil {
		widget.Threshold = *threshold
	}
	if debounceMs != nil {
		widget.DebounceMs = *debounceMs
	}
	if maxResults != nil {
		widget.MaxResults = *maxResults
	}
	if highlight != nil {
		widget.Highlight = *highlight
	}
	return SaveConfig(c, configPath)
}
