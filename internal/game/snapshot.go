package game

import "math"

// Snapshot is a copy of everything the renderer reads, taken after a tick
// has fully completed. Uses primitive types only for stable comparison.
type Snapshot struct {
	Tick     int
	Level    int
	State    State
	Paused   bool
	PlayerX  float64
	PlayerY  float64
	PlayerVY float64
	Jumping  bool
	Alive    bool
	Offset   float64
	Rows     int
	Cols     int
}

// Snapshot returns the current session state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Tick:     s.tick,
		Level:    s.levelID,
		State:    s.state,
		Paused:   s.paused,
		PlayerX:  s.player.X,
		PlayerY:  s.player.Y,
		PlayerVY: s.player.VY,
		Jumping:  s.player.Jumping,
		Alive:    s.player.Alive,
		Offset:   s.camera.Offset,
		Rows:     s.tiles.Rows(),
		Cols:     s.tiles.Width(),
	}
}

// Hash returns a simple hash of the snapshot for determinism testing.
func (snap *Snapshot) Hash() uint64 {
	h := uint64(snap.Tick)        //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Level) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.State) //#nosec G115 -- hash computation
	h = h*31 + boolBit(snap.Paused)
	h = h*31 + math.Float64bits(snap.PlayerX)
	h = h*31 + math.Float64bits(snap.PlayerY)
	h = h*31 + math.Float64bits(snap.PlayerVY)
	h = h*31 + boolBit(snap.Jumping)
	h = h*31 + boolBit(snap.Alive)
	h = h*31 + math.Float64bits(snap.Offset)
	h = h*31 + uint64(snap.Rows) //#nosec G115 -- hash computation
	h = h*31 + uint64(snap.Cols) //#nosec G115 -- hash computation
	return h
}

func boolBit(b bool) uint64 {
	if b {
		return 1
	}
	return 0
}
