package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/thoreinstein/edmx/internal/errors"
	"github.com/thoreinstein/edmx/internal/paths"
	"github.com/thoreinstein/edmx/pkg/fileutil"
)

// EnvPrefix prefixes every environment override, e.g. EDMX_OUTPUT_FORMAT.
const EnvPrefix = "EDMX"

// CurrentVersion is the only config file version this build understands.
const CurrentVersion = 1

// Config represents the top-level configuration structure.
type Config struct {
	Version int          `mapstructure:"version" yaml:"version"`
	Profile string       `mapstructure:"profile" yaml:"profile"`
	Schema  SchemaConfig `mapstructure:"schema" yaml:"schema"`
	Output  OutputConfig `mapstructure:"output" yaml:"output"`
	Checks  ChecksConfig `mapstructure:"checks" yaml:"checks"`
	Limits  LimitsConfig `mapstructure:"limits" yaml:"limits"`
	Batch   BatchConfig  `mapstructure:"batch" yaml:"batch"`
}

// SchemaConfig overrides the embedded schema resources. Empty means embedded.
type SchemaConfig struct {
	Shapes  string `mapstructure:"shapes" yaml:"shapes"`
	Classes string `mapstructure:"classes" yaml:"classes"`
}

// OutputConfig controls report rendering.
type OutputConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
}

// ChecksConfig toggles optional checks.
type ChecksConfig struct {
	Orphans bool `mapstructure:"orphans" yaml:"orphans"`
}

// LimitsConfig bounds the input accepted per record.
type LimitsConfig struct {
	MaxRecordSize int64 `mapstructure:"max_record_size" yaml:"max_record_size"`
}

// BatchConfig controls directory validation.
type BatchConfig struct {
	Workers int `mapstructure:"workers" yaml:"workers"`
}

// defaults is the single source of default values; Init registers it with
// viper and Default returns it.
var defaults = map[string]any{
	"version":                CurrentVersion,
	"profile":                "",
	"schema.shapes":          "",
	"schema.classes":         "",
	"output.format":          "text",
	"checks.orphans":         false,
	"limits.max_record_size": fileutil.DefaultMaxRecordSize,
	"batch.workers":          0,
}

// Keys returns every recognized configuration key in sorted order.
func Keys() []string {
	return []string{
		"batch.workers",
		"checks.orphans",
		"limits.max_record_size",
		"output.format",
		"profile",
		"schema.classes",
		"schema.shapes",
		"version",
	}
}

// IsKey reports whether key is a recognized configuration key.
func IsKey(key string) bool {
	_, ok := defaults[key]
	return ok
}

// Default returns the configuration used when no file or environment
// override is present.
func Default() *Config {
	return &Config{
		Version: CurrentVersion,
		Output:  OutputConfig{Format: "text"},
		Limits:  LimitsConfig{MaxRecordSize: fileutil.DefaultMaxRecordSize},
	}
}

// Init resets viper and registers search paths, environment binding and
// defaults. Call it once at startup before Load.
//
// Search order: $EDMX_CONFIG_DIR, the current directory, then
// $XDG_CONFIG_HOME/edmx.
func Init() {
	viper.Reset()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	if dir := os.Getenv(EnvPrefix + "_CONFIG_DIR"); dir != "" {
		viper.AddConfigPath(dir)
	}
	viper.AddConfigPath(".")
	viper.AddConfigPath(paths.ConfigDir())

	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	for key, value := range defaults {
		viper.SetDefault(key, value)
	}
}

// LoadEnv loads variables from the given .env files, or ./.env when none are
// given. Missing files are ignored; variables already set are not overridden.
func LoadEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if _, err := os.Stat(f); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "loading %s", f)
		}
	}
	return nil
}

// Load reads the configuration file and validates the result.
// If path is provided, it reads from that specific file and a missing file
// is an error. If path is empty, the search paths are used and a missing file
// means defaults plus environment overrides.
func Load(path string) (*Config, error) {
	if path != "" {
		viper.SetConfigFile(path)
	}

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		switch {
		case errors.As(err, &notFound) && path == "":
		case errors.As(err, &notFound), errors.Is(err, os.ErrNotExist):
			return nil, errors.Wrapf(errors.ErrNotFound, "config file not found at %s", path)
		default:
			return nil, errors.Wrap(err, "reading config file")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "unmarshaling config")
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, errors.Wrap(errs[0], "validating config")
	}

	return &cfg, nil
}

// Save writes cfg to path atomically as YAML, creating parent directories.
func Save(path string, cfg *Config) error {
	if err := paths.EnsureDir(filepath.Dir(path), 0); err != nil {
		return errors.Wrap(err, "creating config directory")
	}
	return fileutil.AtomicWriteYAML(path, cfg)
}
