package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// envPrefix is the environment variable prefix for every setting.
const envPrefix = "GERRYSIM"

// LoadOption customizes the viper instance before loading.
type LoadOption func(*viper.Viper) error

// WithFlagSet binds CLI flags onto configuration keys, so changed flags
// override environment and file values. bindings maps flag names to keys,
// e.g. "districts" → "simulation.districts"; flags absent from fs are
// skipped.
func WithFlagSet(fs *pflag.FlagSet, bindings map[string]string) LoadOption {
	return func(v *viper.Viper) error {
		for name, key := range bindings {
			f := fs.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(key, f); err != nil {
				return fmt.Errorf("%w: binding flag %q: %v", ErrParse, name, err)
			}
		}

		return nil
	}
}

// newViper builds a pre-configured viper instance: YAML file type,
// GERRYSIM_ env prefix, automatic env binding, and a key replacer mapping
// "." to "_" so "simulation.districts" resolves from
// GERRYSIM_SIMULATION_DISTRICTS.
func newViper() *viper.Viper {
	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	setDefaults(v)

	return v
}

// Load reads the YAML file at path, merges GERRYSIM_* environment
// overrides on top, applies defaults for unset fields, and validates the
// result. Precedence from strongest to weakest: bound flags, environment,
// file, defaults.
func Load(path string, opts ...LoadOption) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigParseError); ok {
			return nil, fmt.Errorf("%w: %q: %v", ErrParse, path, err)
		}

		return nil, fmt.Errorf("%w: %q: %v", ErrNotFound, path, err)
	}

	return finalize(v, opts)
}

// LoadFromEnv builds a Config from GERRYSIM_* environment variables and
// defaults, with no file required.
func LoadFromEnv(opts ...LoadOption) (*Config, error) {
	return finalize(newViper(), opts)
}

// finalize applies options, unmarshals viper state, and validates the
// result.
func finalize(v *viper.Viper, opts []LoadOption) (*Config, error) {
	for _, opt := range opts {
		if err := opt(v); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
