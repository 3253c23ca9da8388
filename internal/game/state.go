// Package game implements the platformer's state machine. A Session owns
// everything that changes during play: the level number, tile map, player,
// camera and current state. The platform drives it one tick at a time.
package game

// State is the top-level mode of a session.
type State int

const (
	StateMenu     State = iota // Waiting for New Game / Restart / Next Level
	StatePlaying               // Physics and camera run every tick
	StateGameOver              // Player touched danger; waiting for restart
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StatePlaying:
		return "playing"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}
