// Package settings manages persistent user settings for the virtnode CLI.
package settings

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// Settings holds persistent user preferences
type Settings struct {
	// Bridge overrides the default bridge device name
	Bridge string `json:"bridge,omitempty"`

	// InterfacesPath overrides the default interfaces file location
	InterfacesPath string `json:"interfaces_path,omitempty"`

	// ProfilePath is the provisioning profile used when --profile is
	// not specified
	ProfilePath string `json:"profile_path,omitempty"`
}

// Path returns the default path for the settings file
func Path() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "virtnode_settings.json"
	}
	return filepath.Join(home, ".virtnode", "settings.json")
}

// Load reads settings from the default location
func Load() (*Settings, error) {
	return LoadFrom(Path())
}

// LoadFrom reads settings from a specific path
func LoadFrom(path string) (*Settings, error) {
	s := &Settings{}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Return empty settings if file doesn't exist
			return s, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, s); err != nil {
		return nil, err
	}

	return s, nil
}

// Save writes settings to the default location
func (s *Settings) Save() error {
	return s.SaveTo(Path())
}

// SaveTo writes settings to a specific path
func (s *Settings) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Clear resets all settings to defaults
func (s *Settings) Clear() {
	*s = Settings{}
}
