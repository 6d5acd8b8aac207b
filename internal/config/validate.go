package config

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gherkit/gherkit/internal/errors"
)

// Validate checks a Config for invalid values. Configuration errors are
// fatal to startup; they are surfaced before any scenario runs.
func Validate(cfg *Config) error {
	if cfg == nil {
		return errors.Wrap(errors.ErrConfigInvalid, "config is nil")
	}

	if cfg.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be at least 1, got %d",
			errors.ErrConfigInvalid, cfg.Concurrency)
	}

	if cfg.ChainDepthLimit < 1 {
		return fmt.Errorf("%w: chain_depth_limit must be at least 1, got %d",
			errors.ErrConfigInvalid, cfg.ChainDepthLimit)
	}

	if _, err := zerolog.ParseLevel(cfg.LogLevel); err != nil {
		return fmt.Errorf("%w: unknown log_level %q", errors.ErrConfigInvalid, cfg.LogLevel)
	}

	switch cfg.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("%w: color must be %s, %s, or %s, got %q",
			errors.ErrConfigInvalid, ColorAuto, ColorAlways, ColorNever, cfg.Color)
	}

	return nil
}
