// Package config loads mmprep settings from TOML.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/glmack/multilingual-machines/bleu"
)

//go:embed sample_config.toml
var sampleConfig string

// Output formats accepted by Output.Format.
const (
	FormatAuto  = "auto"
	FormatJSON  = "json"
	FormatTable = "table"
)

// Tokenize contains settings for sentence preparation.
type Tokenize struct {
	Clean bool `toml:"clean"` // strip edge punctuation after splitting
}

// BLEU contains scoring settings.
type BLEU struct {
	MaxOrder int       `toml:"max_order"`
	Weights  []float64 `toml:"weights"` // empty = uniform over max_order
}

// Output contains result rendering settings.
type Output struct {
	Format string `toml:"format"`
}

// Logging contains configuration for log output.
type Logging struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Config encapsulates all configuration values for mmprep.
type Config struct {
	Tokenize Tokenize `toml:"tokenize"`
	BLEU     BLEU     `toml:"bleu"`
	Output   Output   `toml:"output"`
	Logging  Logging  `toml:"log"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Tokenize: Tokenize{Clean: true},
		BLEU:     BLEU{MaxOrder: bleu.DefaultMaxOrder},
		Output:   Output{Format: FormatAuto},
		Logging:  Logging{Level: "info", Format: "console"},
	}
}

// SampleConfig returns the annotated sample configuration file.
func SampleConfig() string {
	return sampleConfig
}

// Load parses and validates the configuration at path. An empty path
// returns the defaults. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		file, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		decoder.DisallowUnknownFields()
		if err := decoder.Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) normalize() {
	c.Output.Format = strings.ToLower(strings.TrimSpace(c.Output.Format))
	if c.Output.Format == "" {
		c.Output.Format = FormatAuto
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	switch c.Output.Format {
	case FormatAuto, FormatJSON, FormatTable:
	default:
		return fmt.Errorf("output.format: unsupported value %q (want auto, json or table)", c.Output.Format)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("log.format: unsupported value %q (want console or json)", c.Logging.Format)
	}
	if c.BLEU.MaxOrder < 1 {
		return errors.New("bleu.max_order must be at least 1")
	}
	for i, w := range c.BLEU.Weights {
		if w < 0 {
			return fmt.Errorf("bleu.weights[%d] must not be negative", i)
		}
	}
	return nil
}

// ScoreOptions converts the BLEU section into scoring options.
// Explicit weights take precedence over max_order.
func (c *Config) ScoreOptions() []bleu.Option {
	if len(c.BLEU.Weights) > 0 {
		return []bleu.Option{bleu.WithWeights(c.BLEU.Weights...)}
	}
	return []bleu.Option{bleu.WithMaxOrder(c.BLEU.MaxOrder)}
}
