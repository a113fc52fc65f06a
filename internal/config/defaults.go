package config

import (
	_ "embed"
)

//go:embed defaults/roomplan.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded configuration, used when even the
// embedded YAML cannot be parsed.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{
			DBPath: "~/.roomplan/roomplan.db",
		},
		Log: LogConfig{
			Level: "info",
		},
		Editor: EditorConfig{
			NudgeStep:     0.25,
			ResizeStep:    0.1,
			DoorStep:      0.05,
			CellsPerMeter: 4,
			TickRate:      10,
			StatusTTLMS:   2500,
		},
		Door: DoorConfig{
			DefaultWidth: 1.0,
		},
		Server: ServerConfig{
			Address:            ":23234",
			HostKey:            "~/.roomplan/ssh_host_ed25519",
			IdleTimeoutMinutes: 30,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
