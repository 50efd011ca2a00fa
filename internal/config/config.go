package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`
	JWT struct {
		Secret   string `yaml:"secret"`
		TTLHours int    `yaml:"ttl_hours"`
	} `yaml:"jwt"`
	YouTube struct {
		APIKey      string `yaml:"api_key"`
		MaxComments int    `yaml:"max_comments"`
	} `yaml:"youtube"`
	Gemini struct {
		APIKey            string `yaml:"api_key"`
		ModelName         string `yaml:"model_name"`
		MaxRetries        int    `yaml:"max_retries"`
		RequestsPerMinute int    `yaml:"requests_per_minute"`
	} `yaml:"gemini"`
	Translation struct {
		Enabled        bool   `yaml:"enabled"`
		TargetLanguage string `yaml:"target_language"`
	} `yaml:"translation"`
}

// LoadConfig reads configuration from the specified YAML file.
func LoadConfig(configPath string) (*Config, error) {
	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	// Set defaults
	if config.Server.Port == "" {
		config.Server.Port = ":8080"
	}

	if config.JWT.TTLHours == 0 {
		config.JWT.TTLHours = 24
	}

	if config.YouTube.MaxComments == 0 {
		config.YouTube.MaxComments = 1000
	}

	if config.Gemini.ModelName == "" {
		config.Gemini.ModelName = "gemini-2.0-flash"
	}

	if config.Gemini.MaxRetries == 0 {
		config.Gemini.MaxRetries = 3
	}

	if config.Gemini.RequestsPerMinute == 0 {
		config.Gemini.RequestsPerMinute = 8
	}

	if config.Translation.TargetLanguage == "" {
		config.Translation.TargetLanguage = "en"
	}

	// Expand environment variables in secrets
	config.Database.URL = os.ExpandEnv(config.Database.URL)
	config.JWT.Secret = os.ExpandEnv(config.JWT.Secret)
	config.YouTube.APIKey = os.ExpandEnv(config.YouTube.APIKey)
	config.Gemini.APIKey = os.ExpandEnv(config.Gemini.APIKey)

	return config, nil
}
