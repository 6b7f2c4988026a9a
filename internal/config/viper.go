package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every configuration key read from the environment,
// e.g. PROMOB_LOG_LEVEL or PROMOB_IMPORT_DEFAULT_UNIT.
const EnvPrefix = "PROMOB"

// Config is the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Output struct {
		Directory  string `mapstructure:"directory" yaml:"directory"`
		JSONIndent string `mapstructure:"json_indent" yaml:"json_indent"`
	} `mapstructure:"output" yaml:"output"`

	CSV struct {
		Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	} `mapstructure:"csv" yaml:"csv"`

	Import struct {
		DefaultUnit         string `mapstructure:"default_unit" yaml:"default_unit"`
		FallbackCategory    string `mapstructure:"fallback_category" yaml:"fallback_category"`
		TraditionalFallback bool   `mapstructure:"traditional_fallback" yaml:"traditional_fallback"`
		ValidateDocument    bool   `mapstructure:"validate_document" yaml:"validate_document"`
	} `mapstructure:"import" yaml:"import"`

	Batch struct {
		Workers int `mapstructure:"workers" yaml:"workers"`
	} `mapstructure:"batch" yaml:"batch"`

	Data struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
	} `mapstructure:"data" yaml:"data"`
}

// InitializeConfig reads defaults, then config.yaml from $HOME/.promob-import,
// ./.promob-import or ., then PROMOB_* environment variables, and validates
// the result.
func InitializeConfig() (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.promob-import")
	v.AddConfigPath(".promob-import")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Default returns the configuration obtained from defaults alone.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var cfg Config
	// Defaults always decode.
	_ = v.Unmarshal(&cfg)
	return &cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("output.directory", "")
	v.SetDefault("output.json_indent", "  ")

	v.SetDefault("csv.delimiter", ";")

	v.SetDefault("import.default_unit", "UN")
	v.SetDefault("import.fallback_category", "Categoria Principal")
	v.SetDefault("import.traditional_fallback", true)
	v.SetDefault("import.validate_document", true)

	v.SetDefault("batch.workers", 4)

	v.SetDefault("data.directory", "data")
}

func validateConfig(cfg *Config) error {
	if _, err := logrus.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", cfg.Log.Level)
	}

	if cfg.Log.Format != "text" && cfg.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", cfg.Log.Format)
	}

	if len([]rune(cfg.CSV.Delimiter)) != 1 {
		return fmt.Errorf("CSV delimiter must be a single character, got: %q", cfg.CSV.Delimiter)
	}

	if strings.TrimSpace(cfg.Import.DefaultUnit) == "" {
		return fmt.Errorf("import.default_unit must not be empty")
	}

	if strings.TrimSpace(cfg.Import.FallbackCategory) == "" {
		return fmt.Errorf("import.fallback_category must not be empty")
	}

	if cfg.Batch.Workers < 1 || cfg.Batch.Workers > 64 {
		return fmt.Errorf("batch.workers must be between 1 and 64, got: %d", cfg.Batch.Workers)
	}

	return nil
}

// DelimiterRune returns the configured CSV delimiter as a rune.
func (c *Config) DelimiterRune() rune {
	r := []rune(c.CSV.Delimiter)
	if len(r) == 0 {
		return ';'
	}
	return r[0]
}
