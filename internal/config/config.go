package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

// Config represents the application configuration
type Config struct {
	Gemini     GeminiConfig     `yaml:"gemini"`
	Market     MarketConfig     `yaml:"market"`
	Processing ProcessingConfig `yaml:"processing"`
}

// GeminiConfig represents Gemini API configuration. The API key can be
// left empty in the YAML file and supplied through the GEMINI_API_KEY
// environment variable (a .env file is honored).
type GeminiConfig struct {
	APIKey         string `yaml:"api_key"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// MarketConfig narrows the analysis to a regional market context
type MarketConfig struct {
	Region   string `yaml:"region"`
	Currency string `yaml:"currency"`
}

// ProcessingConfig represents output handling configuration
type ProcessingConfig struct {
	OutputDir   string `yaml:"output_dir"`
	SaveResults bool   `yaml:"save_results"`
}

// LoadConfig loads configuration from a YAML file. A missing file is not
// an error: the defaults plus environment variables are enough to run,
// and a missing API key must stay recoverable (simulation mode) rather
// than abort startup.
func LoadConfig(configPath string) (*Config, error) {
	// Best effort; absence of a .env file is fine.
	_ = godotenv.Load()

	var config Config

	data, err := os.ReadFile(configPath)
	if err == nil {
		if err := yaml.Unmarshal(data, &config); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.Gemini.APIKey = key
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &config, nil
}

// Default returns the configuration used when no file exists, also the
// template written by the init command.
func Default() *Config {
	var config Config
	config.applyDefaults()
	return &config
}

func (c *Config) applyDefaults() {
	if c.Gemini.Model == "" {
		c.Gemini.Model = "gemini-3-pro-preview"
	}
	if c.Gemini.TimeoutSeconds == 0 {
		c.Gemini.TimeoutSeconds = 60
	}
	if c.Market.Region == "" {
		c.Market.Region = "India"
	}
	if c.Market.Currency == "" {
		c.Market.Currency = "INR"
	}
	if c.Processing.OutputDir == "" {
		c.Processing.OutputDir = "./output"
	}
}

// Validate validates the configuration. The API key is deliberately not
// required here: its absence routes every request into simulation mode.
func (c *Config) Validate() error {
	if c.Gemini.TimeoutSeconds < 0 {
		return fmt.Errorf("gemini timeout must not be negative")
	}
	if c.Market.Currency == "" {
		return fmt.Errorf("market currency is required")
	}
	return nil
}
