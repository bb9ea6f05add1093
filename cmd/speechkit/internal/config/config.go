// Package config provides the configuration system for the speechkit CLI.
//
// Settings are stored as a single YAML file under os.UserConfigDir()/speechkit/:
//
//	~/Library/Application Support/speechkit/settings.yaml   (macOS)
//	~/.config/speechkit/settings.yaml                       (Linux)
//	%AppData%/speechkit/settings.yaml                       (Windows)
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
)

const (
	// appDir is the directory name under os.UserConfigDir().
	appDir = "speechkit"

	// settingsFile is the YAML file holding all settings.
	settingsFile = "settings.yaml"
)

// OpenAISettings configures the optional OpenAI speech backend.
type OpenAISettings struct {
	// APIKey enables the openai-speech provider when non-empty.
	APIKey string `yaml:"api_key,omitempty"`

	// BaseURL overrides the API endpoint (optional).
	BaseURL string `yaml:"base_url,omitempty"`

	// Model overrides the default speech model (optional).
	Model string `yaml:"model,omitempty"`
}

// Settings holds the persisted CLI defaults.
type Settings struct {
	// Provider is the default synthesis provider id.
	Provider string `yaml:"provider,omitempty"`

	// Voice is the default voice id for say.
	Voice string `yaml:"voice,omitempty"`

	// Rate, Volume and Pitch are default prosody adjustments.
	Rate   string `yaml:"rate,omitempty"`
	Volume string `yaml:"volume,omitempty"`
	Pitch  string `yaml:"pitch,omitempty"`

	OpenAI OpenAISettings `yaml:"openai,omitempty"`
}

// Config binds settings to the directory they were loaded from.
type Config struct {
	// Dir is the root configuration directory.
	Dir string

	Settings Settings
}

// Load loads the configuration from the default location.
func Load() (*Config, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine config directory: %w", err)
	}
	return LoadFrom(filepath.Join(base, appDir))
}

// LoadFrom loads the configuration from a specific root directory.
// A missing settings file is not an error: defaults apply.
func LoadFrom(dir string) (*Config, error) {
	cfg := &Config{Dir: dir}

	data, err := os.ReadFile(filepath.Join(dir, settingsFile))
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("read settings: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg.Settings); err != nil {
		return nil, fmt.Errorf("parse settings: %w", err)
	}
	return cfg, nil
}

// Path returns the settings file path.
func (c *Config) Path() string {
	return filepath.Join(c.Dir, settingsFile)
}

// Save writes the settings file, creating the directory if needed.
func (c *Config) Save() error {
	if err := os.MkdirAll(c.Dir, 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := yaml.Marshal(c.Settings)
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}

	if err := os.WriteFile(c.Path(), data, 0644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// Set updates a settings key by its dotted name and persists the file.
func (c *Config) Set(key, value string) error {
	switch key {
	case "provider":
		c.Settings.Provider = value
	case "voice":
		c.Settings.Voice = value
	case "rate":
		c.Settings.Rate = value
	case "volume":
		c.Settings.Volume = value
	case "pitch":
		c.Settings.Pitch = value
	case "openai.api_key":
		c.Settings.OpenAI.APIKey = value
	case "openai.base_url":
		c.Settings.OpenAI.BaseURL = value
	case "openai.model":
		c.Settings.OpenAI.Model = value
	default:
		return fmt.Errorf("unknown setting %q", key)
	}
	return c.Save()
}

// Get returns a settings value by its dotted name.
func (c *Config) Get(key string) (string, error) {
	switch key {
	case "provider":
		return c.Settings.Provider, nil
	case "voice":
		return c.Settings.Voice, nil
	case "rate":
		return c.Settings.Rate, nil
	case "volume":
		return c.Settings.Volume, nil
	case "pitch":
		return c.Settings.Pitch, nil
	case "openai.api_key":
		return c.Settings.OpenAI.APIKey, nil
	case "openai.base_url":
		return c.Settings.OpenAI.BaseURL, nil
	case "openai.model":
		return c.Settings.OpenAI.Model, nil
	}
	return "", fmt.Errorf("unknown setting %q", key)
}

// Keys lists the settable keys in display order.
func Keys() []string {
	return []string{
		"provider", "voice", "rate", "volume", "pitch",
		"openai.api_key", "openai.base_url", "openai.model",
	}
}
