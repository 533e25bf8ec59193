// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Inputs
	Profile    string `json:"profile,omitempty"`     // Path to a profile JSON file
	Envelope   string `json:"envelope,omitempty"`    // Path to a pre-built widget envelope JSON file
	JobURL     string `json:"job_url,omitempty"`     // URL to fetch the job posting from
	JobContext string `json:"job_context,omitempty"` // Path to a job context JSON file

	// Generation limits
	Template                string `json:"template,omitempty"`                   // Layout template name
	MinScore                int    `json:"min_score,omitempty"`                  // Minimum widget relevance score
	MaxExperiences          int    `json:"max_experiences,omitempty"`            // Maximum experiences kept
	MaxBulletsPerExperience int    `json:"max_bullets_per_experience,omitempty"` // Maximum bullets per experience

	// Behavior
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key
	UseBrowser  bool   `json:"use_browser,omitempty"`  // Use headless browser for SPA sites
	Verbose     bool   `json:"verbose,omitempty"`      // Print detailed debug information
	JSONLogs    bool   `json:"json_logs,omitempty"`    // Emit logs as JSON
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	Port        int    `json:"port,omitempty"`         // HTTP server port
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

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

// Validate checks that the configuration has valid values.
// Required fields are enforced by CLI flag validation after merging.
func (c *Config) Validate() error {
	if c.Envelope != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'envelope' and 'job_url' are mutually exclusive")
	}
	if c.JobURL != "" && c.JobContext != "" {
		return fmt.Errorf("config error: 'job_url' and 'job_context' are mutually exclusive")
	}

	if c.MinScore < 0 || c.MinScore > 100 {
		return fmt.Errorf("config error: 'min_score' must be between 0 and 100")
	}
	if c.MaxExperiences < 0 {
		return fmt.Errorf("config error: 'max_experiences' must be non-negative")
	}
	if c.MaxBulletsPerExperience < 0 {
		return fmt.Errorf("config error: 'max_bullets_per_experience' must be non-negative")
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be a valid port number")
	}

	for _, path := range []string{c.Profile, c.Envelope, c.JobContext} {
		if path == "" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: file not found: %s", path)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	if result.Profile == "" {
		result.Profile = defaults.Profile
	}
	if result.Envelope == "" {
		result.Envelope = defaults.Envelope
	}
	if result.JobURL == "" {
		result.JobURL = defaults.JobURL
	}
	if result.JobContext == "" {
		result.JobContext = defaults.JobContext
	}
	if result.Template == "" {
		result.Template = defaults.Template
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}

	if result.MinScore == 0 {
		result.MinScore = defaults.MinScore
	}
	if result.MaxExperiences == 0 {
		result.MaxExperiences = defaults.MaxExperiences
	}
	if result.MaxBulletsPerExperience == 0 {
		result.MaxBulletsPerExperience = defaults.MaxBulletsPerExperience
	}
	if result.Port == 0 {
		result.Port = defaults.Port
	}

	if !result.UseBrowser {
		result.UseBrowser = defaults.UseBrowser
	}
	if !result.Verbose {
		result.Verbose = defaults.Verbose
	}
	if !result.JSONLogs {
		result.JSONLogs = defaults.JSONLogs
	}

	return result
}
