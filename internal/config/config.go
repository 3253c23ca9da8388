// Package config provides YAML-based game configuration loading.
package config

import (
	"errors"
	"fmt"
)

// Collision resolution policies for overlapping ground tiles.
const (
	CollisionHighest = "highest" // snap onto the overlapping tile with the smallest top edge
	CollisionLast    = "last"    // snap onto the last overlapping tile in row-major scan order
)

// DashConfig contains all configuration for the platformer.
type DashConfig struct {
	Screen  DashScreen  `yaml:"screen"`
	Physics DashPhysics `yaml:"physics"`
	Player  DashPlayer  `yaml:"player"`
	Level   DashLevel   `yaml:"level"`
	Camera  DashCamera  `yaml:"camera"`
	Render  DashRender  `yaml:"render"`
	Input   DashInput   `yaml:"input"`
}

// DashScreen defines the logical play field in world units.
type DashScreen struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// DashPhysics defines per-tick physics constants.
type DashPhysics struct {
	Gravity   float64 `yaml:"gravity"`
	JumpForce float64 `yaml:"jump_force"`
}

// DashPlayer defines the player box.
type DashPlayer struct {
	X           float64 `yaml:"x"`
	Width       float64 `yaml:"width"`
	Height      float64 `yaml:"height"`
	SpawnOffset float64 `yaml:"spawn_offset"`
}

// DashLevel defines tile geometry and where level files live.
type DashLevel struct {
	TileSize  float64 `yaml:"tile_size"`
	Dir       string  `yaml:"dir"`
	Collision string  `yaml:"collision"`
}

// DashCamera defines the horizontal scroll.
type DashCamera struct {
	ScrollSpeed float64 `yaml:"scroll_speed"`
}

// DashRender defines how world units map onto terminal cells.
type DashRender struct {
	CellWidth  float64 `yaml:"cell_width"`
	CellHeight float64 `yaml:"cell_height"`
	GroundChar string  `yaml:"ground_char"`
	DangerChar string  `yaml:"danger_char"`
	PlayerChar string  `yaml:"player_char"`
}

// DashInput defines input emulation settings.
type DashInput struct {
	// HoldTicks is how long a key press counts as "held". Terminals report
	// key presses and auto-repeat but never key releases.
	HoldTicks int `yaml:"hold_ticks"`
}

// DefaultSpawnY returns the player's starting y when a level has no spawn marker.
func (c DashConfig) DefaultSpawnY() float64 {
	return float64(c.Screen.Height) - c.Player.Height - c.Player.SpawnOffset
}

// Validate checks that the configuration is usable.
func (c DashConfig) Validate() error {
	var errs []error

	if c.Screen.Width <= 0 || c.Screen.Height <= 0 {
		errs = append(errs, fmt.Errorf("screen size must be positive, got %dx%d", c.Screen.Width, c.Screen.Height))
	}
	if c.Level.TileSize <= 0 {
		errs = append(errs, fmt.Errorf("level.tile_size must be positive, got %v", c.Level.TileSize))
	}
	if c.Player.Width <= 0 || c.Player.Height <= 0 {
		errs = append(errs, fmt.Errorf("player size must be positive, got %vx%v", c.Player.Width, c.Player.Height))
	}
	if c.Camera.ScrollSpeed < 0 {
		errs = append(errs, fmt.Errorf("camera.scroll_speed must not be negative, got %v", c.Camera.ScrollSpeed))
	}
	if c.Render.CellWidth <= 0 || c.Render.CellHeight <= 0 {
		errs = append(errs, fmt.Errorf("render cell size must be positive, got %vx%v", c.Render.CellWidth, c.Render.CellHeight))
	}
	if c.Input.HoldTicks < 1 {
		errs = append(errs, fmt.Errorf("input.hold_ticks must be at least 1, got %d", c.Input.HoldTicks))
	}
	switch c.Level.Collision {
	case CollisionHighest, CollisionLast:
	default:
		errs = append(errs, fmt.Errorf("level.collision must be %q or %q, got %q", CollisionHighest, CollisionLast, c.Level.Collision))
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: invalid: %w", err)
	}
	return nil
}
