package config

import (
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pfrederiksen/tv-fixtures/internal/filter"
	"github.com/pfrederiksen/tv-fixtures/internal/scraper"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid configuration")

const (
	DefaultUserAgent  = scraper.UserAgent
	DefaultTimeout    = scraper.Timeout
	DefaultRenderWait = 2 * time.Second
)

type Config struct {
	UKOnly   bool          `yaml:"uk_only"`
	Team     string        `yaml:"team"`
	LogLevel string        `yaml:"log_level" validate:"omitempty,oneof=debug info warn error DEBUG INFO WARN ERROR"`
	Filter   FilterConfig  `yaml:"filter"`
	Scraper  ScraperConfig `yaml:"scraper"`
}

// FilterConfig overrides the competition keyword lists. A nil list keeps
// the built-in default; an explicit empty list is honoured.
type FilterConfig struct {
	WomenTerms           []string `yaml:"women_terms"`
	ExcludedKeywords     []string `yaml:"excluded_keywords"`
	DomesticCompetitions []string `yaml:"domestic_competitions"`
}

type ScraperConfig struct {
	UserAgent  string        `yaml:"user_agent" validate:"required"`
	Timeout    time.Duration `yaml:"timeout" validate:"gt=0"`
	Render     bool          `yaml:"render"`
	RenderWait time.Duration `yaml:"render_wait" validate:"gte=0"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		UKOnly:   true,
		LogLevel: "info",
		Scraper: ScraperConfig{
			UserAgent:  DefaultUserAgent,
			Timeout:    DefaultTimeout,
			RenderWait: DefaultRenderWait,
		},
	}
}

// Load reads configPath over the defaults. An empty path returns the
// defaults unchanged.
func Load(configPath string) (*Config, error) {
	cfg := Default()
	if configPath == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config file")
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Wrap(err, "failed to parse config file")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks struct constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return errors.Mark(errors.Wrap(err, "validate config"), ErrInvalid)
	}
	return nil
}

// CompetitionFilter builds the competition filter described by c.
func (c *Config) CompetitionFilter() *filter.Filter {
	f := filter.Default(c.UKOnly)
	if c.Filter.WomenTerms != nil {
		f.WomenTerms = append([]string(nil), c.Filter.WomenTerms...)
	}
	if c.Filter.ExcludedKeywords != nil {
		f.ExcludedKeywords = append([]string(nil), c.Filter.ExcludedKeywords...)
	}
	if c.Filter.DomesticCompetitions != nil {
		f.DomesticCompetitions = append([]string(nil), c.Filter.DomesticCompetitions...)
	}
	return f
}
