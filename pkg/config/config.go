// Package config holds application configuration loaded from file and
// environment variables.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	// Log configuration
	Log LogConfig `mapstructure:"log"`

	// Data configuration
	Data DataConfig `mapstructure:"data"`

	// Mappings configuration
	Mappings MappingsConfig `mapstructure:"mappings"`

	// Telemetry configuration
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DataConfig holds ontology data configuration
type DataConfig struct {
	// Paths are the directories walked for YAML data files, in order.
	Paths []string `mapstructure:"paths"`
}

// MappingsConfig holds SSSOM mapping import configuration
type MappingsConfig struct {
	// Dir holds the source TSV tables.
	Dir string `mapstructure:"dir"`
	// OutDir receives the generated YAML fragments.
	OutDir string `mapstructure:"out_dir"`
}

// TelemetryConfig holds query telemetry configuration
type TelemetryConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Dir       string `mapstructure:"dir"`
	BatchSize int    `mapstructure:"batch_size"`
}

// Load loads configuration from file and environment variables
func Load() (*Config, error) {
	// Set defaults
	setDefaults()

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Override with environment variables if present
	overrideWithEnv(config)

	return config, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Log defaults
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "text")

	// Data defaults
	viper.SetDefault("data.paths", []string{"./data/knowledge_graph"})

	// Mappings defaults
	viper.SetDefault("mappings.dir", "./data/mappings")
	viper.SetDefault("mappings.out_dir", "./data/knowledge_graph/mappings")

	// Telemetry defaults
	viper.SetDefault("telemetry.enabled", false)
	viper.SetDefault("telemetry.batch_size", 100)
	home, err := os.UserHomeDir()
	if err == nil {
		viper.SetDefault("telemetry.dir", filepath.Join(home, ".ontonav", "telemetry"))
	}
}

// overrideWithEnv overrides config with environment variables
func overrideWithEnv(config *Config) {
	if paths := os.Getenv("ONTONAV_DATA_PATHS"); paths != "" {
		config.Data.Paths = strings.Split(paths, string(os.PathListSeparator))
	}
	if dir := os.Getenv("ONTONAV_MAPPINGS_DIR"); dir != "" {
		config.Mappings.Dir = dir
	}
	if dir := os.Getenv("ONTONAV_MAPPINGS_OUT_DIR"); dir != "" {
		config.Mappings.OutDir = dir
	}
	if dir := os.Getenv("ONTONAV_TELEMETRY_DIR"); dir != "" {
		config.Telemetry.Dir = dir
	}
	if v := os.Getenv("ONTONAV_TELEMETRY_ENABLED"); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			config.Telemetry.Enabled = enabled
		}
	}
	if level := os.Getenv("ONTONAV_LOG_LEVEL"); level != "" {
		config.Log.Level = level
	}
	if format := os.Getenv("ONTONAV_LOG_FORMAT"); format != "" {
		config.Log.Format = format
	}
}
