package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadDash loads the game configuration.
// Search order: customPath -> ~/.dash/configs/dash.yaml -> ./configs/dash.yaml -> embedded default
//
// Files are decoded on top of the defaults, so a file only needs the keys it
// changes.
func LoadDash(customPath string) (DashConfig, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DashConfig{}, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return DashConfig{}, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return DashConfig{}, fmt.Errorf("%s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("dash.yaml"); userCfgPath != "" {
		if cfg, ok := tryLoad(userCfgPath); ok {
			return cfg, nil
		}
	}

	// Try local configs directory
	if cfg, ok := tryLoad(filepath.Join("configs", "dash.yaml")); ok {
		return cfg, nil
	}

	// Use embedded default YAML
	cfg, err := parse(defaultDashYAML)
	if err != nil {
		return DefaultDashConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file; unreadable or invalid files are skipped.
func tryLoad(path string) (DashConfig, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return DashConfig{}, false
	}
	cfg, err := parse(data)
	if err != nil || cfg.Validate() != nil {
		return DashConfig{}, false
	}
	return cfg, true
}

// parse decodes YAML over the hard-coded defaults.
func parse(data []byte) (DashConfig, error) {
	cfg := DefaultDashConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DashConfig{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".dash", "configs", filename)
}
