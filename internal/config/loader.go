package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadCogito loads the game configuration.
// Search order: customPath -> ~/.cogito/configs/cogito.yaml -> ./configs/cogito.yaml -> embedded default
func LoadCogito(customPath string) (CogitoConfig, error) {
	var cfg CogitoConfig

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		fillDefaults(&cfg)
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("cogito.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if err := yaml.Unmarshal(data, &cfg); err == nil {
				fillDefaults(&cfg)
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/cogito.yaml"); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err == nil {
			fillDefaults(&cfg)
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg = CogitoConfig{}
	if err := yaml.Unmarshal(GetDefaultYAML(), &cfg); err != nil {
		return DefaultCogitoConfig(), nil // Fallback to hardcoded if embed fails
	}
	fillDefaults(&cfg)
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	dir := HomeDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "configs", filename)
}

// HomeDir returns ~/.cogito, or empty if home is unavailable.
func HomeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".cogito")
}
