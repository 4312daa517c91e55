package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config represents the ffigen.json configuration file
type Config struct {
	Name      string    `json:"name"`
	Model     string    `json:"model"`
	Language  string    `json:"language"`
	Output    string    `json:"output"`
	Package   string    `json:"package,omitempty"`
	Component string    `json:"component,omitempty"`
	Dev       DevConfig `json:"dev"`
}

// DevConfig contains watch-mode configuration
type DevConfig struct {
	Watch   []string `json:"watch"`
	Exclude []string `json:"exclude"`
}

// LoadConfig loads the ffigen.json configuration from the current directory or a parent directory
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return LoadConfigFromDir(dir)
}

// LoadConfigFromPath loads the ffigen.json configuration from a specific path
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if config.Model == "" {
		config.Model = "./interface.json"
	}
	if config.Language == "" {
		config.Language = "kotlin"
	}
	if config.Output == "" {
		config.Output = "./bindings"
	}
	if len(config.Dev.Watch) == 0 {
		config.Dev.Watch = []string{"*.json", "**/*.json"}
	}
	if len(config.Dev.Exclude) == 0 {
		config.Dev.Exclude = []string{"bindings", "build", ".git", "node_modules"}
	}

	return &config, nil
}

// LoadConfigFromDir searches for ffigen.json in the given directory and its parents
func LoadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, "ffigen.json")
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("no ffigen.json found in %s or any parent directory", startDir)
}
