package config

import (
	"context"
	stderrors "errors"
	"os"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	"github.com/gherkit/gherkit/internal/constants"
	"github.com/gherkit/gherkit/internal/errors"
)

// newViperInstance creates a new Viper instance with standard gherkit
// configuration: defaults, GHERKIT_ environment prefix, and key replacer.
func newViperInstance() *viper.Viper {
	v := viper.New()
	setDefaults(v)
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

// isConfigNotFoundError returns true if the error is a viper config file not
// found error. Missing config files are expected in most setups.
func isConfigNotFoundError(err error) bool {
	if err == nil {
		return false
	}
	var notFound viper.ConfigFileNotFoundError
	return stderrors.As(err, &notFound)
}

// viperDecoderOption returns the decode hooks used when unmarshaling into
// Config: comma-delimited strings become slices so GHERKIT_PATHS=a,b works.
func viperDecoderOption() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	))
}

// unmarshalAndValidate unmarshals viper config into Config and validates it.
func unmarshalAndValidate(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg, viperDecoderOption()); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := Validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// loadViper assembles the layered viper instance: defaults, then the global
// config file, then the project config file, with the environment applied on
// read.
func loadViper() (*viper.Viper, error) {
	v := newViperInstance()

	if dir, err := GlobalConfigDir(); err == nil {
		v.SetConfigName(constants.ConfigFileName)
		v.SetConfigType(constants.ConfigFileType)
		v.AddConfigPath(dir)
		if err := v.ReadInConfig(); err != nil && !isConfigNotFoundError(err) {
			return nil, errors.Wrap(err, "read global config")
		}
	}

	project := ProjectConfigFile()
	if _, err := os.Stat(project); err == nil {
		v.SetConfigFile(project)
		if err := v.MergeInConfig(); err != nil {
			return nil, errors.Wrap(err, "read project config")
		}
	}

	return v, nil
}

// Load reads configuration from all available sources with proper
// precedence. Missing config files are not errors.
//
// The context parameter is accepted for API consistency; config reads are
// fast local I/O and are not canceled mid-read.
func Load(_ context.Context) (*Config, error) {
	v, err := loadViper()
	if err != nil {
		return nil, err
	}
	return unmarshalAndValidate(v)
}

// LoadWithOverrides is Load with CLI flag values applied at the highest
// precedence. Only keys present in overrides are set.
func LoadWithOverrides(_ context.Context, overrides map[string]any) (*Config, error) {
	v, err := loadViper()
	if err != nil {
		return nil, err
	}
	for key, value := range overrides {
		v.Set(key, value)
	}
	return unmarshalAndValidate(v)
}
