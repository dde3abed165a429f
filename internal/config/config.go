package config

import (
	"errors"
	"strings"

	"github.com/spf13/viper"
)

// Config represents the root configuration structure for respcat
type Config struct {
	Input  InputConfig  `mapstructure:"input"`
	Output OutputConfig `mapstructure:"output"`
	Limits LimitsConfig `mapstructure:"limits"`
	Log    LogConfig    `mapstructure:"log"`
}

// InputConfig selects the byte source of the RESP stream
type InputConfig struct {
	Path string `mapstructure:"path"` // file path, or "-" for stdin
}

// OutputConfig controls how decoded values are rendered
type OutputConfig struct {
	Format string `mapstructure:"format"` // tree, inline
}

// LimitsConfig holds the guards applied to decoded values. The codec itself
// imposes no nesting or count ceiling; they are enforced here, at the
// deployment boundary.
type LimitsConfig struct {
	MaxDepth  int `mapstructure:"max_depth"`  // 0 disables the check
	MaxValues int `mapstructure:"max_values"` // 0 reads until EOF
}

// LogConfig defines logging verbosity and output style
type LogConfig struct {
	Level  string `mapstructure:"level"`  // debug, info, warn, error
	Format string `mapstructure:"format"` // json, console
}

// Load reads the configuration from a file and overrides it with environment variables
func Load(path string) (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(path)
	viper.AddConfigPath(".")

	viper.SetEnvPrefix("RESPCAT")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, err
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// setDefaults populates viper with fallback values if they are not provided via file or ENV
func setDefaults() {
	// Input
	viper.SetDefault("input.path", "-")

	// Output
	viper.SetDefault("output.format", "tree")

	// Limits
	viper.SetDefault("limits.max_depth", 128)
	viper.SetDefault("limits.max_values", 0)

	// Logger
	viper.SetDefault("log.level", "info")
	viper.SetDefault("log.format", "console")
}
