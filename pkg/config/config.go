/*
Package config manages TOML config for the suggest services.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/typefield/suggest/internal/utils"
)

// Config holds the entire config structure
type Config struct {
	Dict    DictConfig    `toml:"dict"`
	Server  ServerConfig  `toml:"server"`
	Suggest SuggestConfig `toml:"suggest"`
}

// DictConfig points at the dictionary pair to load.
type DictConfig struct {
	AffPath string `toml:"aff_path"`
	DicPath string `toml:"dic_path"`
}

// ServerConfig has server related options.
type ServerConfig struct {
	MaxLimit   int `toml:"max_limit"`
	MaxWordLen int `toml:"max_word_len"`
}

// SuggestConfig holds suggestion output options.
type SuggestConfig struct {
	DefaultLimit int `toml:"default_limit"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/suggest
// 2. Current executable dir
// 3. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execPath, execErr := os.Executable()
		if execErr != nil {
			return "", execErr
		}
		return filepath.Dir(execPath), nil
	}
	return filepath.Join(homeDir, ".config", "suggest"), nil
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
// 2. Default path: ~/.config/suggest/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if utils.FileExists(customConfigPath) {
			config, err := LoadConfig(customConfigPath)
			if err == nil {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
			log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
		} else {
			log.Warnf("Custom config file not found at %s. Trying default path...", customConfigPath)
		}
	}
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}
	config, err := InitConfig(defaultPath)
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
		Dict: DictConfig{
			AffPath: "index.aff",
			DicPath: "index.dic",
		},
		Server: ServerConfig{
			MaxLimit:   64,
			MaxWordLen: 60,
		},
		Suggest: SuggestConfig{
			DefaultLimit: 15,
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

	return LoadConfig(configPath)
}

// LoadConfig loads from a TOML file
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		log.Warnf("Could not parse configuration from %s: %v. Using all defaults.", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
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
