// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Input
	JobURL  string `json:"job_url,omitempty"`  // URL to fetch a job posting from
	JobFile string `json:"job_file,omitempty"` // Path to a job posting text file

	// Behavior
	CooldownDays       int     `json:"cooldown_days,omitempty" validate:"gte=0"`        // Duplicate guard window in days
	RatePerHost        float64 `json:"rate_per_host,omitempty" validate:"gte=0"`        // Fetch requests per second per host
	RequestTimeoutSecs int     `json:"request_timeout_secs,omitempty" validate:"gte=0"` // HTTP request timeout
	UseBrowser         bool    `json:"use_browser,omitempty"`                           // Use headless browser for SPA sites
	Verbose            bool    `json:"verbose,omitempty"`                               // Print detailed debug information

	// Integration
	APIKey      string `json:"api_key,omitempty"`                         // Gemini API key
	StoragePath string `json:"storage_path,omitempty"`                    // Outreach log path
	DatabaseURL string `json:"database_url,omitempty" validate:"omitempty,url"` // PostgreSQL connection URL
}

// DefaultConfig returns the built-in defaults applied when neither the
// config file nor flags set a value.
func DefaultConfig() Config {
	return Config{
		CooldownDays:       30,
		RatePerHost:        0.5,
		RequestTimeoutSecs: 15,
		StoragePath:        "outreach_log.jsonl",
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.JobURL != "" && c.JobFile != "" {
		return fmt.Errorf("config error: 'job_url' and 'job_file' are mutually exclusive")
	}

	if c.JobFile != "" {
		if _, err := os.Stat(c.JobFile); os.IsNotExist(err) {
			return fmt.Errorf("config error: job file not found: %s", c.JobFile)
		}
	}

	if err := validate.Struct(c); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return fmt.Errorf("config error: field '%s' failed validation '%s'", errs[0].Field(), errs[0].Tag())
		}
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

// MergeWithDefaults returns a new Config with unset fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.JobFile == "" {
		result.JobFile = defaults.JobFile
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.StoragePath == "" {
		result.StoragePath = defaults.StoragePath
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	// Numeric fields: use default if zero
	if result.CooldownDays == 0 {
		result.CooldownDays = defaults.CooldownDays
	}
	if result.RatePerHost == 0 {
		result.RatePerHost = defaults.RatePerHost
	}
	if result.RequestTimeoutSecs == 0 {
		result.RequestTimeoutSecs = defaults.RequestTimeoutSecs
	}

	// Bool fields: true wins (no way to distinguish unset from false)
	result.UseBrowser = result.UseBrowser || defaults.UseBrowser
	result.Verbose = result.Verbose || defaults.Verbose

	return result
}
