// Package config holds the settings threaded through a genbind run.
package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/dennwc/genbind/errors"
	"github.com/dennwc/genbind/logger"
)

// EnvPrefix is the prefix of environment variables overriding config keys,
// e.g. GENBIND_OUTPUT_DIR.
const EnvPrefix = "GENBIND"

// Config is the configuration of one generator run.
type Config struct {
	Verbose bool `mapstructure:"verbose"`
	// Debug writes the AST dumps and interface map diagnostics.
	Debug bool `mapstructure:"debug"`
	// DebugLog writes a debug level JSON log into the output directory.
	DebugLog bool `mapstructure:"debug_log"`
	// Warnings is a comma separated list of warning categories.
	Warnings  string `mapstructure:"warnings"`
	OutputDir string `mapstructure:"output_dir"`
	// IDLPath is the directory WebIDL files named by the binding are read from.
	IDLPath string `mapstructure:"idl_path"`
	// StrictParents turns an unresolved parent interface into an error.
	StrictParents bool `mapstructure:"strict_parents"`
	JSONLog       bool `mapstructure:"json_log"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{OutputDir: ".", IDLPath: "."}
}

// SetDefaults configures default values for all configuration options
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("verbose", d.Verbose)
	v.SetDefault("debug", d.Debug)
	v.SetDefault("debug_log", d.DebugLog)
	v.SetDefault("warnings", d.Warnings)
	v.SetDefault("output_dir", d.OutputDir)
	v.SetDefault("idl_path", d.IDLPath)
	v.SetDefault("strict_parents", d.StrictParents)
	v.SetDefault("json_log", d.JSONLog)
}

// NewViper returns a viper instance with defaults and environment binding.
// Callers bind command line flags on top of it.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	SetDefaults(v)
	return v
}

// Load reads the optional TOML config file into v and returns the
// resulting configuration. Precedence (lowest to highest): defaults < file <
// env vars < flags bound on v.
func Load(v *viper.Viper, configFile string) (*Config, error) {
	if configFile != "" {
		v.SetConfigFile(configFile)
		v.SetConfigType("toml")
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.Wrapf(err, "failed to read config file %s", configFile)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadFile loads configuration from a specific file path, without
// environment overrides.
func LoadFile(path string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	return Load(v, path)
}

// Validate checks values that cannot be checked by decoding alone.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return errors.WithHint(errors.New("output directory is empty"), "set output_dir or pass -o")
	}
	if _, err := c.WarningSet(); err != nil {
		return errors.Wrap(err, "invalid warnings")
	}
	return nil
}

// WarningSet returns the enabled warning categories.
func (c *Config) WarningSet() (logger.Warning, error) {
	return logger.ParseWarnings(c.Warnings)
}
