// Package config provides YAML-based configuration loading for roomplan:
// storage location, logging, editor tuning, door defaults and the SSH server.
package config

import (
	"time"

	"github.com/vovakirdan/roomplan/internal/core"
)

// Config is the full roomplan configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
	Editor  EditorConfig  `yaml:"editor"`
	Door    DoorConfig    `yaml:"door"`
	Server  ServerConfig  `yaml:"server"`
}

// StorageConfig locates the SQLite database.
type StorageConfig struct {
	DBPath string `yaml:"db_path"` // "~" is expanded by storage.Open
}

// LogConfig sets the logger.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn or error
}

// EditorConfig tunes the terminal editor.
type EditorConfig struct {
	NudgeStep     float64 `yaml:"nudge_step"`      // meters per arrow press
	ResizeStep    float64 `yaml:"resize_step"`     // meters per shift+arrow press
	DoorStep      float64 `yaml:"door_step"`       // normalized wall fraction per press
	CellsPerMeter float64 `yaml:"cells_per_meter"` // horizontal terminal cells per meter
	TickRate      int     `yaml:"tick_rate"`       // redraws per second
	StatusTTLMS   int     `yaml:"status_ttl_ms"`   // how long status messages stay up
}

// DoorConfig holds door defaults.
type DoorConfig struct {
	DefaultWidth float64 `yaml:"default_width"` // meters
}

// ServerConfig configures `roomplan serve`.
type ServerConfig struct {
	Address            string `yaml:"address"`
	HostKey            string `yaml:"host_key"`
	IdleTimeoutMinutes int    `yaml:"idle_timeout_minutes"`
	MetricsAddress     string `yaml:"metrics_address"` // empty disables /metrics
}

// IdleTimeout returns the SSH idle timeout as a duration.
func (s ServerConfig) IdleTimeout() time.Duration {
	return time.Duration(s.IdleTimeoutMinutes) * time.Minute
}

// StatusTTL returns how long editor status messages stay visible.
func (e EditorConfig) StatusTTL() time.Duration {
	return time.Duration(e.StatusTTLMS) * time.Millisecond
}

// Runtime converts the editor and door sections into the engine-facing
// runtime config, keeping defaults for anything unset.
func (c Config) Runtime() core.RuntimeConfig {
	rc := core.DefaultConfig()
	if c.Editor.TickRate > 0 {
		rc.TickRate = c.Editor.TickRate
	}
	if c.Editor.CellsPerMeter > 0 {
		rc.CellsPerMeter = c.Editor.CellsPerMeter
	}
	if c.Editor.NudgeStep > 0 {
		rc.NudgeStep = c.Editor.NudgeStep
	}
	if c.Editor.ResizeStep > 0 {
		rc.ResizeStep = c.Editor.ResizeStep
	}
	if c.Editor.DoorStep > 0 {
		rc.DoorStep = c.Editor.DoorStep
	}
	if c.Door.DefaultWidth > 0 {
		rc.DoorWidth = c.Door.DefaultWidth
	}
	return rc
}
