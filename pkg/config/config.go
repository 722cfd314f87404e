/*
Package config manages the TOML config of unipick.

The file lives at $XDG_CONFIG_HOME/unipick/unipick.toml (or
~/.config/unipick/unipick.toml) and is created with defaults when missing.
A file that fails to parse as a whole is recovered section by section, and
anything that cannot be recovered falls back to the builtin defaults.
*/
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/bastiangx/unipick/internal/utils"
	"github.com/bastiangx/unipick/pkg/search"
)

// FileName is the name of the config file inside the config directory
const FileName = "unipick.toml"

// Config holds the entire config structure
type Config struct {
	Search  SearchConfig  `toml:"search"`
	Catalog CatalogConfig `toml:"catalog"`
	Server  ServerConfig  `toml:"server"`
	CLI     CliConfig     `toml:"cli"`
}

// SearchConfig has matcher options.
type SearchConfig struct {
	DefaultLimit       int      `toml:"default_limit"`
	MaxLimit           int      `toml:"max_limit"`
	MaxQueryLen        int      `toml:"max_query_len"`
	CacheSize          int      `toml:"cache_size"`
	SuggestCorrections bool     `toml:"suggest_corrections"`
	Categories         []string `toml:"categories"`
}

// CatalogConfig selects the character data.
type CatalogConfig struct {
	DataDir     string `toml:"data_dir"`
	AliasesFile string `toml:"aliases_file"`
}

// ServerConfig has host bridge options.
type ServerConfig struct {
	WatchConfig bool `toml:"watch_config"`
	DebounceMS  int  `toml:"debounce_ms"`
}

// CliConfig holds cli and tui options.
type CliConfig struct {
	DefaultLimit   int  `toml:"default_limit"`
	CopyOnActivate bool `toml:"copy_on_activate"`
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			DefaultLimit:       32,
			MaxLimit:           256,
			MaxQueryLen:        utils.DefaultMaxQueryLen,
			CacheSize:          search.DefaultCacheSize,
			SuggestCorrections: true,
			Categories:         []string{},
		},
		Catalog: CatalogConfig{
			DataDir:     "",
			AliasesFile: "aliases.yaml",
		},
		Server: ServerConfig{
			WatchConfig: true,
			DebounceMS:  100,
		},
		CLI: CliConfig{
			DefaultLimit:   24,
			CopyOnActivate: false,
		},
	}
}

// Validate reports values no component can work with.
func (c *Config) Validate() error {
	var errs []error
	if c.Search.DefaultLimit < 1 {
		errs = append(errs, fmt.Errorf("search.default_limit must be positive, got %d", c.Search.DefaultLimit))
	}
	if c.Search.MaxLimit < c.Search.DefaultLimit {
		errs = append(errs, fmt.Errorf("search.max_limit (%d) is below search.default_limit (%d)", c.Search.MaxLimit, c.Search.DefaultLimit))
	}
	if c.Search.MaxQueryLen < 1 {
		errs = append(errs, fmt.Errorf("search.max_query_len must be positive, got %d", c.Search.MaxQueryLen))
	}
	if c.Search.CacheSize < 1 {
		errs = append(errs, fmt.Errorf("search.cache_size must be positive, got %d", c.Search.CacheSize))
	}
	if c.Server.DebounceMS < 0 {
		errs = append(errs, fmt.Errorf("server.debounce_ms must not be negative, got %d", c.Server.DebounceMS))
	}
	if c.CLI.DefaultLimit < 1 {
		errs = append(errs, fmt.Errorf("cli.default_limit must be positive, got %d", c.CLI.DefaultLimit))
	}
	return errors.Join(errs...)
}

// SearchOptions converts the search section for the matcher.
func (c *Config) SearchOptions() search.Options {
	cats := make([]string, len(c.Search.Categories))
	copy(cats, c.Search.Categories)
	return search.Options{
		MaxQueryLen:        c.Search.MaxQueryLen,
		Categories:         cats,
		CacheSize:          c.Search.CacheSize,
		SuggestCorrections: c.Search.SuggestCorrections,
	}
}

// Limit resolves a requested page size: zero or less means the default,
// anything above max_limit is capped.
func (c *Config) Limit(requested int) int {
	if requested <= 0 {
		return c.Search.DefaultLimit
	}
	if requested > c.Search.MaxLimit {
		return c.Search.MaxLimit
	}
	return requested
}

// GetConfigDir returns the config directory with fallback priority:
// 1. $XDG_CONFIG_HOME/unipick or ~/.config/unipick
// 2. Current executable dir
func GetConfigDir() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" && filepath.IsAbs(configHome) {
		primary := filepath.Join(configHome, utils.AppName)
		if result := utils.CheckDirStatus(primary); result.Writable {
			return primary, nil
		}
	}

	homeDir, err := os.UserHomeDir()
	if err == nil {
		primary := filepath.Join(homeDir, ".config", utils.AppName)
		if result := utils.CheckDirStatus(primary); result.Writable {
			return primary, nil
		}
	} else {
		log.Errorf("Failed to get home directory: %v", err)
	}

	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for unipick.toml
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, FileName), nil
}

// LoadConfigWithPriority loads config with priority:
// 1. Custom path from -config flag
// 2. Default path: [config dir]/unipick.toml
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

// LoadConfig loads from a TOML file. Values that fail validation are
// reported and the builtin defaults are used instead.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()

	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		config, err = tryPartialParse(configPath)
		if err != nil {
			return nil, err
		}
	}
	if err := config.Validate(); err != nil {
		log.Warnf("Invalid values in %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// tryPartialParse attempts to parse a TOML file section by section
func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "search"); ok {
		extractSearchConfig(section, &config.Search)
	}
	if section, ok := utils.ExtractSection(tempConfig, "catalog"); ok {
		extractCatalogConfig(section, &config.Catalog)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

// extractSearchConfig extracts search configuration from a map
func extractSearchConfig(data map[string]any, s *SearchConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		s.DefaultLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_limit"); ok {
		s.MaxLimit = val
	}
	if val, ok := utils.ExtractInt64(data, "max_query_len"); ok {
		s.MaxQueryLen = val
	}
	if val, ok := utils.ExtractInt64(data, "cache_size"); ok {
		s.CacheSize = val
	}
	if val, ok := utils.ExtractBool(data, "suggest_corrections"); ok {
		s.SuggestCorrections = val
	}
	if val, ok := utils.ExtractStringSlice(data, "categories"); ok {
		s.Categories = val
	}
}

// extractCatalogConfig extracts catalog configuration from a map
func extractCatalogConfig(data map[string]any, c *CatalogConfig) {
	if val, ok := utils.ExtractString(data, "data_dir"); ok {
		c.DataDir = val
	}
	if val, ok := utils.ExtractString(data, "aliases_file"); ok {
		c.AliasesFile = val
	}
}

// extractServerConfig extracts server configuration from a map
func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractBool(data, "watch_config"); ok {
		server.WatchConfig = val
	}
	if val, ok := utils.ExtractInt64(data, "debounce_ms"); ok {
		server.DebounceMS = val
	}
}

// extractCliConfig extracts CLI config from a map
func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := utils.ExtractInt64(data, "default_limit"); ok {
		cli.DefaultLimit = val
	}
	if val, ok := utils.ExtractBool(data, "copy_on_activate"); ok {
		cli.CopyOnActivate = val
	}
}

// RebuildConfigFile force creates a new unipick.toml at default
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
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

// Update changes the search values and saves to file
func (c *Config) Update(configPath string, defaultLimit, maxLimit *int, suggestCorrections *bool) error {
	s := &c.Search
	if defaultLimit != nil {
		s.DefaultLimit = *defaultLimit
	}
	if maxLimit != nil {
		s.MaxLimit = *maxLimit
	}
	if suggestCorrections != nil {
		s.SuggestCorrections = *suggestCorrections
	}
	if err := c.Validate(); err != nil {
		return err
	}
	return SaveConfig(c, configPath)
}
