package config

import (
	_ "embed"
)

//go:embed defaults/dash.yaml
var defaultDashYAML []byte

// DefaultDashConfig returns the built-in configuration. The values mirror
// defaults/dash.yaml and are used if the embedded YAML cannot be parsed.
func DefaultDashConfig() DashConfig {
	return DashConfig{
		Screen: DashScreen{
			Width:  800,
			Height: 600,
		},
		Physics: DashPhysics{
			Gravity:   1,
			JumpForce: 20,
		},
		Player: DashPlayer{
			X:           800 / 3,
			Width:       50,
			Height:      50,
			SpawnOffset: 50,
		},
		Level: DashLevel{
			TileSize:  50,
			Dir:       "levels",
			Collision: CollisionHighest,
		},
		Camera: DashCamera{
			ScrollSpeed: 5,
		},
		Render: DashRender{
			CellWidth:  10,
			CellHeight: 25,
			GroundChar: "█",
			DangerChar: "▲",
			PlayerChar: "■",
		},
		Input: DashInput{
			HoldTicks: 8,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultDashYAML
}
