package config

import (
	"github.com/spf13/viper"

	"github.com/gherkit/gherkit/internal/constants"
)

// DefaultConfig returns the built-in configuration used when no other
// source provides a value.
func DefaultConfig() *Config {
	return &Config{
		Strict:          false,
		Concurrency:     constants.DefaultConcurrency,
		ChainDepthLimit: constants.DefaultChainDepthLimit,
		LogLevel:        "info",
		Color:           ColorAuto,
		Paths:           []string{"features"},
	}
}

// setDefaults registers the built-in defaults on a viper instance.
func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("strict", defaults.Strict)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("chain_depth_limit", defaults.ChainDepthLimit)
	v.SetDefault("log_level", defaults.LogLevel)
	v.SetDefault("color", defaults.Color)
	v.SetDefault("paths", defaults.Paths)
}
