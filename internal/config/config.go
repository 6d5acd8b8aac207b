// Package config provides configuration management for gherkit with layered
// precedence.
//
// Configuration sources are loaded in the following order (highest
// precedence first):
//  1. CLI flags (passed via LoadWithOverrides)
//  2. Environment variables (GHERKIT_ prefix)
//  3. Project config (.gherkit/config.yaml)
//  4. Global config (~/.gherkit/config.yaml)
//  5. Built-in defaults
//
// Each higher level completely overrides the lower level for the same key.
//
// IMPORTANT: This package may import internal/constants and internal/errors,
// but MUST NOT import internal/domain or other internal packages.
package config

// Color mode values for the "color" key.
const (
	// ColorAuto enables color only on a terminal, honoring NO_COLOR.
	ColorAuto = "auto"
	// ColorAlways forces color output.
	ColorAlways = "always"
	// ColorNever disables color output.
	ColorNever = "never"
)

// Config is the root configuration structure for gherkit.
type Config struct {
	// Strict maps Undefined, Pending, and Ambiguous outcomes to a non-zero
	// exit, in addition to Failed.
	Strict bool `yaml:"strict" mapstructure:"strict"`

	// Concurrency is how many scenarios execute at once. Steps within a
	// scenario always run sequentially.
	Concurrency int `yaml:"concurrency" mapstructure:"concurrency"`

	// ChainDepthLimit bounds recursive chained-step resolution.
	ChainDepthLimit int `yaml:"chain_depth_limit" mapstructure:"chain_depth_limit"`

	// LogLevel is the zerolog level name (trace, debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`

	// Color controls report styling: auto, always, or never.
	Color string `yaml:"color" mapstructure:"color"`

	// Paths holds the default feature paths used when a command receives no
	// path arguments.
	Paths []string `yaml:"paths" mapstructure:"paths"`
}
