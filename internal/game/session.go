package game

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-dash/internal/camera"
	"github.com/vovakirdan/tile-dash/internal/config"
	"github.com/vovakirdan/tile-dash/internal/core"
	"github.com/vovakirdan/tile-dash/internal/level"
	"github.com/vovakirdan/tile-dash/internal/physics"
)

// LevelSource loads levels by number.
type LevelSource interface {
	Load(id int) (*level.Level, error)
}

// StepResult is returned by Session.Step after each tick.
type StepResult struct {
	State   State
	Died    bool // Player died this tick
	Cleared bool // Player reached the end of the level this tick
	Quit    bool // Quit was requested; the platform should exit
}

// Session is the whole mutable game. It is not safe for concurrent use;
// the platform calls Step and Render from a single loop.
type Session struct {
	cfg    config.DashConfig
	prm    physics.Params
	levels LevelSource
	logger *log.Logger

	levelID int
	tiles   level.TileMap
	player  physics.Player
	camera  camera.Camera
	state   State
	paused  bool
	quit    bool
	tick    int // Ticks since the current run started

	lastErr     error // Last level load failure, shown in the menu
	lastCleared int   // Last level cleared, shown in the menu
	attempts    int   // Runs started on the current level
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for state transitions and load failures.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithLevel sets the level number the menu starts on.
func WithLevel(id int) Option {
	return func(s *Session) {
		if id >= 1 {
			s.levelID = id
		}
	}
}

// NewSession creates a session in the menu with level 1 selected.
func NewSession(cfg config.DashConfig, levels LevelSource, opts ...Option) *Session {
	s := &Session{
		cfg:     cfg,
		prm:     physics.ParamsFromConfig(cfg),
		levels:  levels,
		logger:  log.New(io.Discard),
		levelID: 1,
		state:   StateMenu,
		camera:  camera.New(cfg.Camera.ScrollSpeed),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.player = s.spawnPlayer()
	return s
}

// Step advances the session by one tick.
//
// Input is handled first and may change state; the logic for the resulting
// state then runs in the same tick.
func (s *Session) Step(in core.InputFrame) StepResult {
	if in.Has(core.ActionQuit) {
		s.quit = true
		return StepResult{State: s.state, Quit: true}
	}

	switch s.state {
	case StateMenu:
		switch {
		case in.Has(core.ActionNewGame):
			s.NewGame()
		case in.Has(core.ActionRestart):
			s.Restart()
		case in.Has(core.ActionNextLevel):
			s.NextLevel()
		}
	case StatePlaying:
		if in.Has(core.ActionMenu) {
			s.ToMenu()
		} else if in.Has(core.ActionPause) {
			s.paused = !s.paused
		}
	case StateGameOver:
		if in.Has(core.ActionRestart) {
			s.Restart()
		} else if in.Has(core.ActionMenu) {
			s.ToMenu()
		}
	}

	res := StepResult{}
	if s.state == StatePlaying && !s.paused {
		res.Died, res.Cleared = s.update(in.Has(core.ActionJump))
	}
	res.State = s.state
	return res
}

// update runs physics and scrolling for one tick of play.
func (s *Session) update(jump bool) (died, cleared bool) {
	if !s.player.Alive {
		return false, false
	}

	s.tick++
	out := physics.Step(s.player, s.tiles, s.camera.Offset, jump, s.prm)
	s.player = out.Player
	s.camera.Advance()

	if out.Died {
		s.state = StateGameOver
		s.logger.Info("player died",
			"level", s.levelID,
			"tick", s.tick,
			"distance", s.Distance(),
			"attempt", s.attempts,
		)
		return true, false
	}

	if s.pastLevelEnd() {
		s.lastCleared = s.levelID
		s.state = StateMenu
		s.logger.Info("level cleared", "level", s.levelID, "tick", s.tick, "attempts", s.attempts)
		return false, true
	}
	return false, false
}

// pastLevelEnd reports whether the player has scrolled beyond the last column
// while still inside the map. A player that fell below the last row never
// clears the level.
func (s *Session) pastLevelEnd() bool {
	if s.tiles.Empty() {
		return false
	}
	if s.player.Y >= float64(s.tiles.Rows())*s.cfg.Level.TileSize {
		return false
	}
	end := float64(s.tiles.Width()) * s.cfg.Level.TileSize
	return s.player.X+s.camera.Offset >= end
}

// NewGame starts over from level 1.
func (s *Session) NewGame() {
	s.levelID = 1
	s.attempts = 0
	s.reset()
}

// Restart replays the current level.
func (s *Session) Restart() {
	s.reset()
}

// NextLevel advances to the next level number. There is no upper bound; a
// missing level sends the session back to the menu.
func (s *Session) NextLevel() {
	s.levelID++
	s.attempts = 0
	s.reset()
}

// ToMenu returns to the menu without changing the level number.
func (s *Session) ToMenu() {
	s.state = StateMenu
	s.paused = false
}

// reset puts player, camera and state back to the start of the current
// level and loads it. The result depends only on the level number and config.
func (s *Session) reset() {
	s.player = s.spawnPlayer()
	s.camera.Reset()
	s.paused = false
	s.tick = 0
	s.lastErr = nil
	s.lastCleared = 0
	s.state = StatePlaying
	s.load()
}

// load replaces the tile map with the current level. The old map is dropped
// before loading, so a failure leaves the map empty.
func (s *Session) load() {
	s.tiles = nil

	lvl, err := s.levels.Load(s.levelID)
	if err != nil {
		s.lastErr = err
		s.state = StateMenu
		s.logger.Warn("level not found, returning to menu", "level", s.levelID, "error", err)
		return
	}

	s.tiles = lvl.Tiles
	s.player.Y = lvl.SpawnY(s.cfg.Level.TileSize, s.cfg.DefaultSpawnY())
	s.attempts++
	s.logger.Debug("level loaded",
		"level", s.levelID,
		"source", lvl.Source,
		"rows", lvl.Tiles.Rows(),
		"cols", lvl.Tiles.Width(),
		"spawn_y", s.player.Y,
	)
}

// spawnPlayer returns a fresh player at the configured start position.
func (s *Session) spawnPlayer() physics.Player {
	return physics.NewPlayer(s.cfg.Player.X, s.cfg.DefaultSpawnY())
}

// State returns the current state.
func (s *Session) State() State { return s.state }

// Level returns the selected level number.
func (s *Session) Level() int { return s.levelID }

// Tiles returns the loaded tile map; empty when no level is loaded.
func (s *Session) Tiles() level.TileMap { return s.tiles }

// Player returns the player.
func (s *Session) Player() physics.Player { return s.player }

// Offset returns the camera offset.
func (s *Session) Offset() float64 { return s.camera.Offset }

// Paused reports whether play is paused.
func (s *Session) Paused() bool { return s.paused }

// Quit reports whether quit was requested.
func (s *Session) Quit() bool { return s.quit }

// LastError returns the last level load failure since the last reset.
func (s *Session) LastError() error { return s.lastErr }

// Config returns the session configuration.
func (s *Session) Config() config.DashConfig { return s.cfg }

// Distance returns how many tiles the player has travelled in this run.
func (s *Session) Distance() int {
	return int(s.camera.Offset / s.cfg.Level.TileSize)
}

// Progress returns how far through the level the player is, from 0 to 1.
func (s *Session) Progress() float64 {
	if s.tiles.Empty() {
		return 0
	}
	end := float64(s.tiles.Width()) * s.cfg.Level.TileSize
	p := (s.player.X + s.camera.Offset) / end
	if p > 1 {
		return 1
	}
	return p
}
