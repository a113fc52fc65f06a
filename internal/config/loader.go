package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the config file name looked up in the user and local
// directories.
const FileName = "roomplan.yaml"

// Load loads the roomplan configuration.
// Search order: customPath -> ~/.roomplan/config.yaml -> ./configs/roomplan.yaml -> embedded default
//
// Every file is decoded over DefaultConfig, so a file only needs the keys it
// changes. An explicit customPath that cannot be read or parsed is an error;
// the other locations are skipped when missing or broken.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", FileName)); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML over DefaultConfig and validates the result.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the editor or server cannot work with.
func (c Config) Validate() error {
	var errs []error
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level %q must be debug, info, warn or error", c.Log.Level))
	}
	if c.Storage.DBPath == "" {
		errs = append(errs, errors.New("storage.db_path must not be empty"))
	}
	if c.Editor.NudgeStep <= 0 || c.Editor.ResizeStep <= 0 || c.Editor.DoorStep <= 0 {
		errs = append(errs, errors.New("editor steps must be positive"))
	}
	if c.Editor.CellsPerMeter <= 0 {
		errs = append(errs, errors.New("editor.cells_per_meter must be positive"))
	}
	if c.Editor.TickRate <= 0 {
		errs = append(errs, errors.New("editor.tick_rate must be positive"))
	}
	if c.Door.DefaultWidth <= 0 {
		errs = append(errs, errors.New("door.default_width must be positive"))
	}
	return errors.Join(errs...)
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".roomplan", "config.yaml")
}
