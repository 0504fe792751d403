// Package config resolves questgen settings from defaults, an optional
// questgen.yaml, QUESTGEN_* environment variables and command-line flags,
// in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Output formats accepted by the CLI.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds every tunable the CLI and service read.
type Config struct {
	DatasetDir   string `mapstructure:"dataset_dir"`
	DBPath       string `mapstructure:"db_path"`
	UseDB        bool   `mapstructure:"use_db"`
	DefaultLimit int    `mapstructure:"default_limit"`
	CacheSize    int    `mapstructure:"cache_size"`
	LogLevel     string `mapstructure:"log_level"`
	LogUseCases  bool   `mapstructure:"log_use_cases"`
	Output       string `mapstructure:"output"`
	MetricsDump  bool   `mapstructure:"metrics"`
}

// flagKeys maps command-line flag names onto config keys.
var flagKeys = map[string]string{
	"dataset":       "dataset_dir",
	"db":            "db_path",
	"use-db":        "use_db",
	"limit":         "default_limit",
	"cache-size":    "cache_size",
	"log-level":     "log_level",
	"log-use-cases": "log_use_cases",
	"output":        "output",
	"metrics":       "metrics",
}

// DefaultConfig returns the built-in settings. The dataset directory
// defaults to ./dataset and the document store to ~/.questgen/questgen.db.
func DefaultConfig() Config {
	dbPath := "questgen.db"
	if home, err := os.UserHomeDir(); err == nil {
		dbPath = filepath.Join(home, ".questgen", "questgen.db")
	}
	return Config{
		DatasetDir:   "dataset",
		DBPath:       dbPath,
		UseDB:        false,
		DefaultLimit: 5,
		CacheSize:    256,
		LogLevel:     "info",
		LogUseCases:  false,
		Output:       OutputText,
		MetricsDump:  false,
	}
}

// Load layers config sources onto v. flags may be nil. A missing config
// file is not an error; a malformed one is.
func Load(v *viper.Viper, flags *pflag.FlagSet) (Config, error) {
	def := DefaultConfig()
	v.SetDefault("dataset_dir", def.DatasetDir)
	v.SetDefault("db_path", def.DBPath)
	v.SetDefault("use_db", def.UseDB)
	v.SetDefault("default_limit", def.DefaultLimit)
	v.SetDefault("cache_size", def.CacheSize)
	v.SetDefault("log_level", def.LogLevel)
	v.SetDefault("log_use_cases", def.LogUseCases)
	v.SetDefault("output", def.Output)
	v.SetDefault("metrics", def.MetricsDump)

	v.SetEnvPrefix("QUESTGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("config"); f != nil && f.Value.String() != "" {
			v.SetConfigFile(f.Value.String())
		}
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return Config{}, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}
	if v.ConfigFileUsed() == "" {
		v.SetConfigName("questgen")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".questgen"))
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.Output = strings.ToLower(strings.TrimSpace(cfg.Output))
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the CLI cannot act on.
func (c Config) Validate() error {
	var errs []error
	switch c.Output {
	case OutputText, OutputJSON, OutputYAML:
	default:
		errs = append(errs, fmt.Errorf("output: unsupported format %q", c.Output))
	}
	if c.DefaultLimit < 1 {
		errs = append(errs, fmt.Errorf("default_limit: must be >= 1, got %d", c.DefaultLimit))
	}
	if c.CacheSize < 0 {
		errs = append(errs, fmt.Errorf("cache_size: must be >= 0, got %d", c.CacheSize))
	}
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	if c.UseDB && strings.TrimSpace(c.DBPath) == "" {
		errs = append(errs, errors.New("db_path: required when use_db is set"))
	}
	if !c.UseDB && strings.TrimSpace(c.DatasetDir) == "" {
		errs = append(errs, errors.New("dataset_dir: required"))
	}
	return errors.Join(errs...)
}

// ParseLogLevel accepts debug, info, warn or error, case-insensitively.
func ParseLogLevel(s string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("log_level: %w", err)
	}
	return lvl, nil
}
