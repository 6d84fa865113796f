package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/iancoleman/strcase"
	"gopkg.in/yaml.v3"
)

// Key renaming styles.
const (
	KeyStyleKeep   = "keep"
	KeyStyleCamel  = "camel"
	KeyStyleSnake  = "snake"
	KeyStylePascal = "pascal"
)

// Config represents the complete configuration for pyjson
type Config struct {
	Indent   int          `yaml:"indent"`
	SortKeys bool         `yaml:"sort_keys"`
	Naming   NamingConfig `yaml:"naming"`
	Output   OutputConfig `yaml:"output"`
}

// NamingConfig controls how object keys are rewritten in the output
type NamingConfig struct {
	KeyStyle    string            `yaml:"key_style"`
	KeyMappings map[string]string `yaml:"key_mappings"`
}

// OutputConfig controls output generation options
type OutputConfig struct {
	TrailingNewline bool `yaml:"trailing_newline"`
}

// NewConfig creates a new Config with default values
func NewConfig() *Config {
	return &Config{
		Indent:   4,
		SortKeys: false,
		Naming: NamingConfig{
			KeyStyle:    KeyStyleKeep,
			KeyMappings: make(map[string]string),
		},
		Output: OutputConfig{
			TrailingNewline: true,
		},
	}
}

// LoadConfig loads configuration from a YAML file
func LoadConfig(path string) (*Config, error) {
	// Read file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Start with defaults
	cfg := NewConfig()

	// Parse YAML
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// FindConfigFile searches for a config file in current directory and parents
func FindConfigFile() string {
	configNames := []string{".pyjson.yml", ".pyjson.yaml", "pyjson.yml", "pyjson.yaml"}

	// Start from current directory
	currentDir, err := os.Getwd()
	if err != nil {
		return ""
	}

	// Search up the directory tree
	for {
		for _, name := range configNames {
			configPath := filepath.Join(currentDir, name)
			if _, err := os.Stat(configPath); err == nil {
				return configPath
			}
		}

		// Move up one directory
		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			// Reached root directory
			break
		}
		currentDir = parentDir
	}

	return ""
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if c.Indent < 0 {
		return fmt.Errorf("indent must not be negative, got %d", c.Indent)
	}
	switch c.Naming.KeyStyle {
	case KeyStyleKeep, KeyStyleCamel, KeyStyleSnake, KeyStylePascal:
		return nil
	}
	return fmt.Errorf("unknown key style '%s': must be one of keep, camel, snake, pascal", c.Naming.KeyStyle)
}

// GetKeyName returns the output key for a source key, applying explicit
// mappings first and the configured style second
func (c *Config) GetKeyName(key string) string {
	if mapped, exists := c.Naming.KeyMappings[key]; exists {
		return mapped
	}

	switch c.Naming.KeyStyle {
	case KeyStyleCamel:
		return strcase.ToLowerCamel(key)
	case KeyStyleSnake:
		return strcase.ToSnake(key)
	case KeyStylePascal:
		return strcase.ToCamel(key)
	}

	// Return original key
	return key
}

// LoadConfigWithCLI loads config with CLI argument precedence.
// CLI values override the config file only when they differ from the
// defaults, so explicit file settings survive default flag values.
func LoadConfigWithCLI(configPath string, cliIndent int, cliSortKeys bool, cliKeyStyle string) (*Config, error) {
	// Start with defaults
	cfg := NewConfig()

	// Load config file if provided
	if configPath != "" {
		fileConfig, err := LoadConfig(configPath)
		if err != nil {
			return nil, err
		}
		cfg = fileConfig
	}

	if cliIndent != 4 {
		cfg.Indent = cliIndent
	}
	if cliSortKeys {
		cfg.SortKeys = true
	}
	if cliKeyStyle != "" && cliKeyStyle != KeyStyleKeep {
		cfg.Naming.KeyStyle = cliKeyStyle
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
