package config

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/dpshade/wordsmith/internal/composer"
	"github.com/dpshade/wordsmith/internal/errors"
)

// Config holds every setting that can come from the environment. Command-line
// flags are applied on top by main.
type Config struct {
	// Dir is the resource directory holding word lists and templates
	Dir string `env:"WORDSMITH_DIR" envDefault:"res"`
	// Seed fixes the random source; 0 seeds from the runtime
	Seed uint64 `env:"WORDSMITH_SEED" envDefault:"0"`

	Prefix composer.Choice `env:"WORDSMITH_PREFIX" envDefault:"always"`
	Noun   composer.Choice `env:"WORDSMITH_NOUN" envDefault:"always"`
	Title  composer.Choice `env:"WORDSMITH_TITLE" envDefault:"always"`
	Suffix composer.Choice `env:"WORDSMITH_SUFFIX" envDefault:"always"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"warn"`
	Verbose  bool   `env:"WORDSMITH_VERBOSE" envDefault:"false"`
	// NoColor follows the no-color.org convention: any non-empty value disables color
	NoColor string `env:"NO_COLOR"`
}

// Load reads an optional .env file (or the given files) and then parses the
// process environment
func Load(dotenv ...string) (*Config, error) {
	if err := godotenv.Load(dotenv...); err != nil {
		switch {
		case !stderrors.Is(err, fs.ErrNotExist):
			return nil, errors.Wrap(err, errors.ErrCodeResourceCorrupted, "failed to parse .env file")
		case len(dotenv) > 0:
			return nil, errors.Wrap(err, errors.ErrCodeMissingResource, "failed to load .env file")
		}
	}
	return parse(env.Options{})
}

// LoadFrom parses the given variables instead of the process environment
func LoadFrom(vars map[string]string) (*Config, error) {
	return parse(env.Options{Environment: vars})
}

func parse(opts env.Options) (*Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return nil, errors.Wrap(err, errors.ErrCodeInvalidInput, "invalid configuration").
			WithDetails(err.Error())
	}
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Policy returns the title composer's inclusion policy
func (c *Config) Policy() composer.Policy {
	return composer.Policy{
		Prefix: c.Prefix,
		Noun:   c.Noun,
		Title:  c.Title,
		Suffix: c.Suffix,
	}
}

// ColorEnabled reports whether colored output is allowed
func (c *Config) ColorEnabled() bool {
	return c.NoColor == ""
}

// Level parses LogLevel into a zerolog level
func (c *Config) Level() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(strings.ToLower(strings.TrimSpace(c.LogLevel)))
	if err != nil {
		return zerolog.NoLevel, errors.InvalidInputError(fmt.Sprintf("invalid LOG_LEVEL %q", c.LogLevel))
	}
	return level, nil
}

// SetChoice overrides one clause's choice by name, as used by --choice flags
func (c *Config) SetChoice(clause string, value string) error {
	choice, err := composer.ParseChoice(value)
	if err != nil {
		return err
	}
	switch strings.ToLower(clause) {
	case "prefix", "adjective":
		c.Prefix = choice
	case "noun":
		c.Noun = choice
	case "title":
		c.Title = choice
	case "suffix":
		c.Suffix = choice
	default:
		return errors.InvalidInputError(fmt.Sprintf("unknown clause %q", clause)).
			WithDetails("expected prefix, noun, title or suffix")
	}
	return nil
}
