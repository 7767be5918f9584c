package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"kin/internal/explain"
)

// Config represents the complete kin configuration
type Config struct {
	Version int `json:"version" mapstructure:"version"`

	Storage StorageConfig `json:"storage" mapstructure:"storage"`
	Search  SearchConfig  `json:"search" mapstructure:"search"`
	Logging LoggingConfig `json:"logging" mapstructure:"logging"`
}

// StorageConfig contains database settings
type StorageConfig struct {
	// Path is the directory holding kin.db. Empty means the data directory
	// itself.
	Path string `json:"path" mapstructure:"path"`
}

// SearchConfig tunes path resolution and explanation output
type SearchConfig struct {
	MaxDepth        int `json:"maxDepth" mapstructure:"maxDepth"`
	ReferenceDepth  int `json:"referenceDepth" mapstructure:"referenceDepth"`
	MaxExplanations int `json:"maxExplanations" mapstructure:"maxExplanations"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Format string `json:"format" mapstructure:"format"`
	Level  string `json:"level" mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	defaults := explain.DefaultOptions()
	return &Config{
		Version: 1,
		Storage: StorageConfig{
			Path: "",
		},
		Search: SearchConfig{
			MaxDepth:        defaults.MaxDepth,
			ReferenceDepth:  defaults.ReferenceDepth,
			MaxExplanations: defaults.MaxResults,
		},
		Logging: LoggingConfig{
			Format: "human",
			Level:  "info",
		},
	}
}

// DataDir resolves the data directory: the KIN_DATA_DIR environment
// variable if set, otherwise ~/.kin.
func DataDir() (string, error) {
	if dir := os.Getenv("KIN_DATA_DIR"); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, ".kin"), nil
}

// LoadConfig loads configuration from <dataDir>/config.json
func LoadConfig(dataDir string) (*Config, error) {
	v := viper.New()

	// Set defaults
	defaults := DefaultConfig()
	v.SetDefault("version", defaults.Version)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("search.maxDepth", defaults.Search.MaxDepth)
	v.SetDefault("search.referenceDepth", defaults.Search.ReferenceDepth)
	v.SetDefault("search.maxExplanations", defaults.Search.MaxExplanations)
	v.SetDefault("logging.format", defaults.Logging.Format)
	v.SetDefault("logging.level", defaults.Logging.Level)

	// Configure viper
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(dataDir)

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		// If config doesn't exist, return default config
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaults, nil
		}
		return nil, err
	}

	// Unmarshal into config struct
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes the configuration to <dataDir>/config.json
func (c *Config) Save(dataDir string) error {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(filepath.Join(dataDir, "config.json"), data, 0644)
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Version != 1 {
		return fmt.Errorf("unsupported config version %d", c.Version)
	}
	if c.Search.MaxDepth < 1 {
		return fmt.Errorf("search.maxDepth must be at least 1")
	}
	if c.Search.ReferenceDepth < 1 {
		return fmt.Errorf("search.referenceDepth must be at least 1")
	}
	if c.Search.MaxExplanations < 1 {
		return fmt.Errorf("search.maxExplanations must be at least 1")
	}
	switch c.Logging.Format {
	case "human", "json":
	default:
		return fmt.Errorf("logging.format must be human or json, got %q", c.Logging.Format)
	}
	return nil
}

// StorageDir resolves where the database lives, relative paths are taken
// under the data directory.
func (c *Config) StorageDir(dataDir string) string {
	if c.Storage.Path == "" {
		return dataDir
	}
	if filepath.IsAbs(c.Storage.Path) {
		return c.Storage.Path
	}
	return filepath.Join(dataDir, c.Storage.Path)
}

// ExplainOptions maps the search section onto explainer options
func (c *Config) ExplainOptions() explain.Options {
	return explain.Options{
		MaxDepth:       c.Search.MaxDepth,
		ReferenceDepth: c.Search.ReferenceDepth,
		MaxResults:     c.Search.MaxExplanations,
	}
}
