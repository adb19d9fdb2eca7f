// Package config loads colorlab-mcp settings.
//
// Values are resolved in order: built-in defaults, an optional config file
// (any format viper understands, selected by extension), then environment
// variables prefixed with COLORLAB_ (for example COLORLAB_LOG_LEVEL).
package config

import (
	"fmt"

	"github.com/spf13/viper"

	"github.com/ironsheep/colorlab-mcp/internal/colormath"
	"github.com/ironsheep/colorlab-mcp/internal/swatch"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "COLORLAB"

// Config holds runtime settings.
type Config struct {
	// LogLevel is one of debug, info, warn, error.
	LogLevel string `mapstructure:"log_level"`

	// LogFormat is "json" or "console".
	LogFormat string `mapstructure:"log_format"`

	// StorePath is the SQLite file for preferences. Empty keeps them in memory.
	StorePath string `mapstructure:"store_path"`

	// GradientSteps is used when a gradient request omits steps.
	GradientSteps int `mapstructure:"gradient_steps"`

	// SwatchSize is the default cell size in pixels for rendered swatches.
	SwatchSize int `mapstructure:"swatch_size"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:      "info",
		LogFormat:     "json",
		StorePath:     "",
		GradientSteps: 9,
		SwatchSize:    32,
	}
}

// Load resolves the configuration. path may be empty.
func Load(path string) (*Config, error) {
	v := viper.New()

	def := DefaultConfig()
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_format", def.LogFormat)
	v.SetDefault("store_path", def.StorePath)
	v.SetDefault("gradient_steps", def.GradientSteps)
	v.SetDefault("swatch_size", def.SwatchSize)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges. swatch_size is bounded by what the swatch
// renderer accepts.
func (c *Config) Validate() error {
	if c.GradientSteps < colormath.MinSteps || c.GradientSteps > colormath.MaxSteps {
		return fmt.Errorf("gradient_steps must be between %d and %d, got %d",
			colormath.MinSteps, colormath.MaxSteps, c.GradientSteps)
	}
	if c.SwatchSize < 1 || c.SwatchSize > swatch.MaxCellSize {
		return fmt.Errorf("swatch_size must be between 1 and %d, got %d", swatch.MaxCellSize, c.SwatchSize)
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		return fmt.Errorf("log_format must be json or console, got %q", c.LogFormat)
	}
	return nil
}
