package core

// RuntimeConfig contains configuration passed to the editor at initialization.
// The editor uses it to size its canvas and pace status updates.
type RuntimeConfig struct {
	ScreenW       int     // Screen width in characters
	ScreenH       int     // Screen height in characters
	TickRate      int     // Ticks per second for status expiry (default 10)
	CellsPerMeter float64 // Horizontal characters per meter; rows use half
	NudgeStep     float64 // Meters moved per arrow key press
	ResizeStep    float64 // Meters grown or shrunk per resize key press
	DoorStep      float64 // Normalized door slide per key press
	DoorWidth     float64 // Width for newly placed doors, in meters
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:       80,
		ScreenH:       24,
		TickRate:      10,
		CellsPerMeter: 4,
		NudgeStep:     0.25,
		ResizeStep:    0.1,
		DoorStep:      0.05,
		DoorWidth:     1,
	}
}
