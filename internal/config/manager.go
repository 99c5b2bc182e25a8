package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds the user's persistent configuration preferences.
// Environment variables take precedence over stored values.
type Config struct {
	LLMProvider string `json:"llm_provider,omitempty"` // openai, anthropic, ollama, groq
	APIKey      string `json:"api_key,omitempty"`      // The API key for the selected provider
	Model       string `json:"model,omitempty"`        // Default model name
	BaseURL     string `json:"base_url,omitempty"`     // Optional override for API base URL

	DuffelAPIKey   string `json:"duffel_api_key,omitempty"`      // Flight search
	SerpAPIKey     string `json:"serpapi_api_key,omitempty"`     // Hotel and activity search
	OpenWeatherKey string `json:"openweather_api_key,omitempty"` // Weather checks

	Storage string `json:"storage,omitempty"` // Itinerary backend: file (default) or sqlite
}

// Manager handles loading and saving the configuration.
type Manager struct {
	configDir string
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get user config dir: %w", err)
	}

	return &Manager{
		configDir: filepath.Join(configDir, "voyager"),
	}, nil
}

// DataDir returns the directory holding sessions and itineraries.
func (m *Manager) DataDir() string {
	return m.configDir
}

// GetConfigPath returns the absolute path to the config.json file.
func (m *Manager) GetConfigPath() string {
	return filepath.Join(m.configDir, "config.json")
}

// Load reads the configuration from disk.
// If the file does not exist, it returns an empty Config and no error.
func (m *Manager) Load() (*Config, error) {
	path := m.GetConfigPath()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return &Config{}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config json: %w", err)
	}

	return &cfg, nil
}

// Save writes the configuration to disk with restricted permissions (0600).
func (m *Manager) Save(cfg *Config) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	path := m.GetConfigPath()
	// Keys live in this file, so owner-only permissions.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Exists checks if the configuration file has been created.
func (m *Manager) Exists() bool {
	_, err := os.Stat(m.GetConfigPath())
	return !os.IsNotExist(err)
}

// ApplyToEnv exports stored values into the process environment for
// any that are not already set, so env vars always win.
func (c *Config) ApplyToEnv() {
	setIfEmpty := func(key, value string) {
		if value != "" && os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}

	setIfEmpty("LLM_PROVIDER", c.LLMProvider)
	setIfEmpty("DUFFEL_API_KEY", c.DuffelAPIKey)
	setIfEmpty("SERPAPI_API_KEY", c.SerpAPIKey)
	setIfEmpty("OPENWEATHER_API_KEY", c.OpenWeatherKey)

	switch c.LLMProvider {
	case "openai":
		setIfEmpty("OPENAI_API_KEY", c.APIKey)
		setIfEmpty("OPENAI_MODEL", c.Model)
		setIfEmpty("OPENAI_BASE_URL", c.BaseURL)
	case "anthropic":
		setIfEmpty("ANTHROPIC_API_KEY", c.APIKey)
		setIfEmpty("ANTHROPIC_MODEL", c.Model)
	case "ollama":
		setIfEmpty("OLLAMA_API_KEY", c.APIKey)
		setIfEmpty("OLLAMA_MODEL", c.Model)
		setIfEmpty("OLLAMA_BASE_URL", c.BaseURL)
	case "groq":
		setIfEmpty("GROQ_API_KEY", c.APIKey)
		setIfEmpty("GROQ_MODEL", c.Model)
	}
}
