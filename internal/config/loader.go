package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadT2048 loads 2048 configuration.
// Search order: customPath -> ~/.tui2048/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
// Fields missing from a file keep their default values.
func LoadT2048(customPath string) (T2048Config, error) {
	cfg := DefaultT2048Config()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, fmt.Errorf("invalid config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath("t2048.yaml"), filepath.Join("configs", "t2048.yaml")} {
		if path == "" {
			continue
		}
		if loaded, ok := tryLoad(path, cfg); ok {
			return loaded, nil
		}
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultT2048YAML, &cfg); err != nil {
		return DefaultT2048Config(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// tryLoad reads an optional config file on top of base. Unreadable or
// invalid files are skipped.
func tryLoad(path string, base T2048Config) (T2048Config, bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return base, false
	}
	cfg := base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return base, false
	}
	if err := cfg.Validate(); err != nil {
		return base, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tui2048", "configs", filename)
}
