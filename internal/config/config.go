// Package config loads the application configuration from an XDG-located
// YAML file, layered with .env and process environment for credentials.
// Missing files are not an error: defaults apply and the API key is taken
// from the environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// envConfigPath overrides the config file location when set.
const envConfigPath = "NOVELAGENT_CONFIG"

// Config is the full application configuration.
type Config struct {
	AI       AIConfig `yaml:"ai"`
	Limits   Limits   `yaml:"limits"`
	Defaults Defaults `yaml:"defaults"`
}

// AIConfig selects the generation backend. APIKey is never written to the
// config file; it comes from ANTHROPIC_API_KEY or OPENAI_API_KEY.
type AIConfig struct {
	APIKey  string `yaml:"-" validate:"omitempty,min=20"`
	Model   string `yaml:"model" validate:"required"`
	BaseURL string `yaml:"base_url" validate:"required,url"`
}

// Defaults are the writing settings applied when a caller supplies none.
type Defaults struct {
	Temperature float64 `yaml:"temperature" validate:"min=0,max=1"`
	MaxTokens   int     `yaml:"max_tokens" validate:"min=1"`
	PointOfView string  `yaml:"point_of_view" validate:"oneof=1st 2nd 3rd-limited 3rd-omniscient"`
}

// Load reads the config file (if present), layers environment credentials on
// top and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaultConfig()

	path := Path()
	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		// No file: defaults plus environment.
	case err != nil:
		return nil, fmt.Errorf("reading config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if cfg.AI.APIKey == "" {
		if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
			cfg.AI.APIKey = key
		} else if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			cfg.AI.APIKey = key
			if !strings.Contains(cfg.AI.BaseURL, "openai") {
				cfg.AI.BaseURL = "https://api.openai.com/v1"
				cfg.AI.Model = "gpt-4"
			}
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}
	return cfg, nil
}

// Path returns the resolved config file location.
func Path() string {
	if path := os.Getenv(envConfigPath); path != "" {
		return expandTilde(path)
	}
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return filepath.Join(xdgConfig, "novelagent", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "novelagent", "config.yaml")
}

// Save writes the config to its resolved location, creating the directory
// as needed. The API key is never persisted.
func Save(cfg *Config) error {
	path := Path()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}

func defaultConfig() *Config {
	return &Config{
		AI: AIConfig{
			Model:   "claude-3-5-sonnet-20241022",
			BaseURL: "https://api.anthropic.com",
		},
		Limits: DefaultLimits(),
		Defaults: Defaults{
			Temperature: 0.7,
			MaxTokens:   4096,
			PointOfView: "3rd-limited",
		},
	}
}

func expandTilde(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

func (c *Config) validate() error {
	if c.Limits.MaxRetries == 0 && c.Limits.RequestTimeoutSec == 0 {
		c.Limits = DefaultLimits()
	}
	if c.Defaults.PointOfView == "" {
		c.Defaults.PointOfView = "3rd-limited"
	}
	if c.Defaults.MaxTokens == 0 {
		c.Defaults.MaxTokens = 4096
	}

	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}
