package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	ListenAddr           string `yaml:"listenAddr" validate:"required"`
	DatabaseURL          string `yaml:"databaseURL" validate:"required"`
	RedisURL             string `yaml:"redisURL,omitempty"`
	TokenCacheTTLMinutes int    `yaml:"tokenCacheTTLMinutes,omitempty" validate:"omitempty,min=1"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// Load loads and validates the configuration from shift_select_config.yaml
// It looks for the config file in the current directory first, then in the user's home directory
func Load() (*Config, error) {
	return LoadWithEnv("")
}

// LoadWithEnv loads the configuration for a specific environment.
// It prefers shift_select_config.<env>.yaml and falls back to the
// un-suffixed file.
func LoadWithEnv(env string) (*Config, error) {
	configPath, err := findConfigFile(env)
	if err != nil {
		return nil, fmt.Errorf("failed to find config file: %w", err)
	}

	return LoadFromPath(configPath)
}

// LoadFromPath loads and validates the configuration from a specific path
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := Validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate validates the configuration struct
func Validate(cfg *Config) error {
	if err := validate.Struct(cfg); err != nil {
		return fmt.Errorf("config validation failed: %w", err)
	}
	return nil
}

// findConfigFile searches for the config file in current directory and home directory
func findConfigFile(env string) (string, error) {
	candidates := []string{"shift_select_config.yaml"}
	if env != "" {
		candidates = []string{
			fmt.Sprintf("shift_select_config.%s.yaml", env),
			"shift_select_config.yaml",
		}
	}

	homeDir, homeErr := os.UserHomeDir()

	for _, name := range candidates {
		// Check current directory
		if _, err := os.Stat(name); err == nil {
			return name, nil
		}

		// Check home directory
		if homeErr == nil {
			homePath := filepath.Join(homeDir, name)
			if _, err := os.Stat(homePath); err == nil {
				return homePath, nil
			}
		}
	}

	return "", fmt.Errorf("config file not found in current directory or home directory")
}
