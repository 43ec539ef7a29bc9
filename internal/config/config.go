// Package config loads the scraper settings. Values come from built-in
// defaults, then the YAML file, then SCRAPER_* environment variables
// (a .env file in the working directory is honoured).
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"tsn-scraper/internal/crawler"
)

const (
	ModeListing = "listing"
	ModeStatic  = "static"

	DefaultPath       = "configs/scraper.yaml"
	DefaultListingURL = "https://tsn.ua/"
)

// Environment variables.
const (
	EnvConfigPath = "SCRAPER_CONFIG"
	EnvTargetDate = "SCRAPER_TARGET_DATE"
	EnvOutputPath = "SCRAPER_OUTPUT_PATH"
	EnvLogLevel   = "SCRAPER_LOG_LEVEL"
)

// Configuration validation errors.
var (
	ErrInvalidMode           = errors.New("mode must be 'listing' or 'static'")
	ErrInvalidTargetDate     = errors.New("target_date must be an ISO-8601 date (YYYY-MM-DD)")
	ErrMissingOutputPath     = errors.New("output_path is required")
	ErrInvalidFetchTimeout   = errors.New("fetch_timeout_seconds must be at least 1")
	ErrInvalidListingTimeout = errors.New("listing_timeout_seconds must be at least 1")
	ErrInvalidListingURL     = errors.New("listing_url must be an absolute http(s) url")
	ErrNoStaticURLs          = errors.New("static mode needs urls or urls_file")
	ErrInvalidMaxBodyBytes   = errors.New("max_body_bytes must be positive")
	ErrInvalidLogLevel       = errors.New("log_level must be one of: debug, info, warn, error")
)

type Config struct {
	Mode                  string   `yaml:"mode"`
	TargetDate            string   `yaml:"target_date"`
	OutputPath            string   `yaml:"output_path"`
	FetchTimeoutSeconds   int      `yaml:"fetch_timeout_seconds"`
	ListingTimeoutSeconds int      `yaml:"listing_timeout_seconds"`
	UserAgent             string   `yaml:"user_agent"`
	Accept                string   `yaml:"accept"`
	ListingURL            string   `yaml:"listing_url"`
	URLs                  []string `yaml:"urls"`
	URLsFile              string   `yaml:"urls_file"`
	// nil means "use the mode's default": the category column is written in
	// listing mode and omitted in static mode.
	IncludeCategory *bool  `yaml:"include_category"`
	MaxBodyBytes    int64  `yaml:"max_body_bytes"`
	LogLevel        string `yaml:"log_level"`
}

// Default uses the browser User-Agent and the 10s/30s timeouts the scraper has always run with.
func Default() *Config {
	return &Config{
		Mode:                  ModeListing,
		OutputPath:            "tsn_articles.csv",
		FetchTimeoutSeconds:   10,
		ListingTimeoutSeconds: 30,
		UserAgent:             crawler.DefaultUserAgent,
		Accept:                crawler.DefaultAccept,
		ListingURL:            DefaultListingURL,
		MaxBodyBytes:          5 * 1024 * 1024,
		LogLevel:              "info",
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	cfg.ApplyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// FromEnvironment is what the binary uses: it loads .env if present, then
// the file named by SCRAPER_CONFIG. A missing default config file is not an
// error; the built-in defaults are used instead.
func FromEnvironment() (*Config, error) {
	_ = godotenv.Load()

	path := os.Getenv(EnvConfigPath)
	if path == "" {
		path = DefaultPath
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			cfg := Default()
			cfg.ApplyEnv()
			if err := cfg.Validate(); err != nil {
				return nil, fmt.Errorf("configuration validation failed: %w", err)
			}
			return cfg, nil
		}
	}
	return Load(path)
}

func (c *Config) ApplyEnv() {
	if v := os.Getenv(EnvTargetDate); v != "" {
		c.TargetDate = v
	}
	if v := os.Getenv(EnvOutputPath); v != "" {
		c.OutputPath = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.LogLevel = v
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeListing && c.Mode != ModeStatic {
		return ErrInvalidMode
	}
	if c.TargetDate != "" {
		if _, err := time.Parse(time.DateOnly, c.TargetDate); err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidTargetDate, c.TargetDate)
		}
	}
	if strings.TrimSpace(c.OutputPath) == "" {
		return ErrMissingOutputPath
	}
	if c.FetchTimeoutSeconds < 1 {
		return ErrInvalidFetchTimeout
	}
	if c.ListingTimeoutSeconds < 1 {
		return ErrInvalidListingTimeout
	}
	if c.MaxBodyBytes <= 0 {
		return ErrInvalidMaxBodyBytes
	}

	switch c.Mode {
	case ModeListing:
		u, err := url.Parse(c.ListingURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: %q", ErrInvalidListingURL, c.ListingURL)
		}
	case ModeStatic:
		if len(c.URLs) == 0 && c.URLsFile == "" {
			return ErrNoStaticURLs
		}
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.LogLevel)] {
		return ErrInvalidLogLevel
	}
	return nil
}

// Target returns the configured date, or today's UTC date when none is set.
func (c *Config) Target(now time.Time) time.Time {
	if c.TargetDate != "" {
		if t, err := time.Parse(time.DateOnly, c.TargetDate); err == nil {
			return t
		}
	}
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func (c *Config) WithCategory() bool {
	if c.IncludeCategory != nil {
		return *c.IncludeCategory
	}
	return c.Mode == ModeListing
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

func (c *Config) ListingTimeout() time.Duration {
	return time.Duration(c.ListingTimeoutSeconds) * time.Second
}

func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Target: %q, Output: %s, Timeouts: %ds/%ds}",
		c.Mode, c.TargetDate, c.OutputPath, c.FetchTimeoutSeconds, c.ListingTimeoutSeconds)
}
