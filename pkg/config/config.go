/*
Package config manages TOML config for gridfill.
*/
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"

	"github.com/avosk/gridfill/internal/utils"
	"github.com/avosk/gridfill/pkg/fill"
)

// Config holds the entire config structure
type Config struct {
	Generation GenerationConfig `toml:"generation"`
	Sources    SourcesConfig    `toml:"sources"`
	CLI        CliConfig        `toml:"cli"`
}

// GenerationConfig has fill engine options.
type GenerationConfig struct {
	Strategy        string `toml:"strategy"`   // recursive or iterative
	SlotOrder       string `toml:"slot_order"` // most_constrained or longest_first
	Randomized      bool   `toml:"randomized"`
	Seed            int64  `toml:"seed"`
	MaxAttempts     int    `toml:"max_attempts"`
	TimeoutSeconds  int    `toml:"timeout_seconds"`
	RepairBudget    int    `toml:"repair_budget"`
	RequireFullFill bool   `toml:"require_full_fill"`
}

// SourcesConfig lists where candidate words come from.
type SourcesConfig struct {
	WordFiles []string `toml:"word_files"`
	Delimiter string   `toml:"delimiter"`
	Database  string   `toml:"database"`
	Blacklist []string `toml:"blacklist"`
}

// CliConfig holds cli interface options.
type CliConfig struct {
	ShowScore  bool `toml:"show_score"`
	ShowTiming bool `toml:"show_timing"`
	// MaxResults caps how many matches the interactive lookup prints.
	MaxResults int `toml:"max_results"`
}

// GetConfigDir returns the config directory with fallback priority:
// 1. ~/.config/gridfill
// 2. Current executable dir
// 3. builtin defaults
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		return utils.GetExecutableDir()
	}
	primaryPath := filepath.Join(homeDir, ".config", "gridfill")
	if err := utils.EnsureDir(primaryPath); err == nil {
		return primaryPath, nil
	}
	return utils.GetExecutableDir()
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
// 2. Default path: ~/.config/gridfill/config.toml
// 3. Builtin defaults
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
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
		Generation: GenerationConfig{
			Strategy:       "recursive",
			SlotOrder:      "most_constrained",
			TimeoutSeconds: 60,
			RepairBudget:   3,
		},
		Sources: SourcesConfig{
			Delimiter: " ",
		},
		CLI: CliConfig{
			ShowScore:  true,
			ShowTiming: true,
			MaxResults: 24,
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
		return nil, err
	}
	return config, nil
}

// SaveConfig saves into a TOML file
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
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

// ToOptions maps the generation section onto engine options.
func (c *Config) ToOptions() (fill.Options, error) {
	opts := fill.DefaultOptions()

	strategy, err := fill.ParseStrategy(c.Generation.Strategy)
	if err != nil {
		return opts, err
	}
	opts.Strategy = strategy

	switch c.Generation.SlotOrder {
	case "", "most_constrained":
		opts.SlotOrder = fill.MostConstrained
	case "longest_first":
		opts.SlotOrder = fill.LongestFirst
	default:
		return opts, fmt.Errorf("config: unknown slot_order %q", c.Generation.SlotOrder)
	}

	if c.Generation.Randomized {
		opts.TieBreak = fill.Randomized
		opts.Seed = c.Generation.Seed
	}
	opts.MaxAttempts = c.Generation.MaxAttempts
	opts.MaxDuration = time.Duration(c.Generation.TimeoutSeconds) * time.Second
	if c.Generation.RepairBudget > 0 {
		opts.RepairBudget = c.Generation.RepairBudget
	}
	opts.RequireFullFill = c.Generation.RequireFullFill
	return opts, nil
}
