// Package config loads application settings from a yaml file,
// environment variables and command-line flags, in that precedence
// order.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/vocabrecall/vocabrecall/internal/extract"
)

const envPrefix = "VOCABRECALL_"

// Config holds all application settings.
type Config struct {
	DBPath     string     `koanf:"db" validate:"required"`
	ReposDir   string     `koanf:"repos_dir" validate:"required"`
	LogLevel   string     `koanf:"log_level" validate:"oneof=debug info warn error"`
	Extraction Extraction `koanf:"extraction"`
}

// Extraction mirrors the pipeline options; see extract.Config.
type Extraction struct {
	Language            string  `koanf:"language" validate:"required"`
	Delimiter           string  `koanf:"delimiter" validate:"required"`
	StructuredThreshold float64 `koanf:"structured_threshold" validate:"gt=0,lte=1"`
	DetectStructured    bool    `koanf:"detect_structured"`
	NLPEnabled          bool    `koanf:"nlp_enabled"`
	FallbackEnabled     bool    `koanf:"fallback_enabled"`
}

// Default returns the stock configuration.
func Default() Config {
	return Config{
		DBPath:   "vocabrecall.db",
		ReposDir: "repos",
		LogLevel: "info",
		Extraction: Extraction{
			Language:            "de",
			Delimiter:           ";",
			StructuredThreshold: extract.DefaultStructuredThreshold,
			DetectStructured:    true,
			NLPEnabled:          true,
			FallbackEnabled:     true,
		},
	}
}

// Load merges the optional yaml file at path, VOCABRECALL_* environment
// variables and the given flag set over the defaults, then validates
// the result. flags may be nil.
func Load(path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")

	// The config file is optional; a missing one just means defaults.
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
				return Config{}, fmt.Errorf("config file %s: %w", path, err)
			}
		}
	}

	// Double underscore nests: VOCABRECALL_EXTRACTION__NLP_ENABLED →
	// extraction.nlp_enabled, VOCABRECALL_LOG_LEVEL → log_level.
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, envPrefix)), "__", ".")
	}), nil)
	if err != nil {
		return Config{}, fmt.Errorf("config env: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.Provider(flags, ".", k), nil); err != nil {
			return Config{}, fmt.Errorf("config flags: %w", err)
		}
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("config unmarshal: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, fmt.Errorf("config invalid: %w", err)
	}
	return cfg, nil
}

// ExtractConfig converts the loaded settings into a pipeline config.
func (c Config) ExtractConfig() extract.Config {
	return extract.Config{
		Language:            c.Extraction.Language,
		Delimiter:           c.Extraction.Delimiter,
		StructuredThreshold: c.Extraction.StructuredThreshold,
		DetectStructured:    c.Extraction.DetectStructured,
		NLPEnabled:          c.Extraction.NLPEnabled,
		FallbackEnabled:     c.Extraction.FallbackEnabled,
	}
}

// SlogLevel maps the configured log level to a slog.Level.
func (c Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
