// Package physics advances the player under gravity and resolves collisions
// against a tile map. Step is a pure function: it never touches game state,
// it only reports what happened.
package physics

import (
	"github.com/vovakirdan/tile-dash/internal/camera"
	"github.com/vovakirdan/tile-dash/internal/config"
	"github.com/vovakirdan/tile-dash/internal/core"
	"github.com/vovakirdan/tile-dash/internal/level"
)

// Resolve selects which overlapping ground tile the player lands on.
type Resolve int

const (
	// ResolveHighest lands on the overlapping ground tile with the smallest
	// top edge, independent of scan order.
	ResolveHighest Resolve = iota
	// ResolveLastWins lands on the last overlapping ground tile in row-major
	// order. Once a tile has stopped the fall, later tiles see zero velocity
	// and no longer snap.
	ResolveLastWins
)

// String returns the config name of the policy.
func (r Resolve) String() string {
	switch r {
	case ResolveHighest:
		return config.CollisionHighest
	case ResolveLastWins:
		return config.CollisionLast
	default:
		return "unknown"
	}
}

// ParseResolve maps a config value to a policy. Unknown values select
// ResolveHighest.
func ParseResolve(s string) Resolve {
	if s == config.CollisionLast {
		return ResolveLastWins
	}
	return ResolveHighest
}

// Params holds the constants of one simulation.
type Params struct {
	Gravity   float64
	JumpForce float64
	TileSize  float64
	Width     float64 // Player width
	Height    float64 // Player height
	Resolve   Resolve
}

// ParamsFromConfig extracts physics parameters from the game config.
func ParamsFromConfig(cfg config.DashConfig) Params {
	return Params{
		Gravity:   cfg.Physics.Gravity,
		JumpForce: cfg.Physics.JumpForce,
		TileSize:  cfg.Level.TileSize,
		Width:     cfg.Player.Width,
		Height:    cfg.Player.Height,
		Resolve:   ParseResolve(cfg.Level.Collision),
	}
}

// Player is the physical state of the player square. X never changes; the
// camera scrolls the level past it instead.
type Player struct {
	X       float64
	Y       float64
	VY      float64 // Vertical velocity, positive is down
	Jumping bool    // Airborne or mid-jump; blocks a new jump
	Alive   bool
}

// NewPlayer creates a live player at rest.
func NewPlayer(x, y float64) Player {
	return Player{X: x, Y: y, Alive: true}
}

// Rect returns the player's collision box.
func (p Player) Rect(prm Params) core.RectF {
	return core.NewRectF(p.X, p.Y, prm.Width, prm.Height)
}

// Outcome is the result of one physics step.
type Outcome struct {
	Player   Player
	Grounded bool // Landed on ground this step
	Died     bool // Touched a danger tile this step
}

// TileRect returns the screen-space box of the tile at (row, col) under the
// given camera offset.
func TileRect(row, col int, offset, tileSize float64) core.RectF {
	x := camera.Camera{Offset: offset}.TileScreenX(col, tileSize)
	return core.NewRectF(x, float64(row)*tileSize, tileSize, tileSize)
}

// Step advances the player by one tick.
//
// Order matters: jump impulse, gravity, integration, then a full collision
// scan. Ground only stops a falling player (VY > 0) and pushes it up so its
// bottom edge sits on the tile's top edge. Danger kills on any overlap with
// the box after ground resolution. A player that did not land this step is
// marked as jumping.
func Step(p Player, m level.TileMap, offset float64, jump bool, prm Params) Outcome {
	if jump && !p.Jumping {
		p.VY = -prm.JumpForce
		p.Jumping = true
	}

	p.VY += prm.Gravity
	p.Y += p.VY

	out := Outcome{}
	box := p.Rect(prm)

	landTop := 0.0
	landFound := false

	for row := range m {
		for col, tile := range m[row] {
			if tile == level.TileEmpty {
				continue
			}
			tr := TileRect(row, col, offset, prm.TileSize)
			if !box.Intersects(tr) {
				continue
			}

			switch tile {
			case level.TileGround:
				if prm.Resolve == ResolveLastWins {
					if p.VY > 0 {
						p.Y = tr.Top() - prm.Height
						p.VY = 0
						p.Jumping = false
						out.Grounded = true
						// Later tiles are tested against the snapped box.
						box = p.Rect(prm)
					}
					continue
				}
				if p.VY > 0 && (!landFound || tr.Top() < landTop) {
					landTop = tr.Top()
					landFound = true
				}
			case level.TileDanger:
				if prm.Resolve == ResolveLastWins {
					p.Alive = false
					out.Died = true
				}
			}
		}
	}

	if landFound {
		p.Y = landTop - prm.Height
		p.VY = 0
		p.Jumping = false
		out.Grounded = true
	}

	if prm.Resolve != ResolveLastWins && touches(p.Rect(prm), m, offset, prm.TileSize, level.TileDanger) {
		p.Alive = false
		out.Died = true
	}

	if !out.Grounded {
		p.Jumping = true
	}

	out.Player = p
	return out
}

// touches reports whether box overlaps any tile of the given kind.
func touches(box core.RectF, m level.TileMap, offset, tileSize float64, kind level.Tile) bool {
	for row := range m {
		for col, tile := range m[row] {
			if tile == kind && box.Intersects(TileRect(row, col, offset, tileSize)) {
				return true
			}
		}
	}
	return false
}
