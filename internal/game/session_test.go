package game

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-dash/internal/config"
	"github.com/vovakirdan/tile-dash/internal/core"
	"github.com/vovakirdan/tile-dash/internal/level"
)

// flatLevel is 40 columns of ground under a spawn row. With the default
// config the player rests on it at y 500.
func flatLevel() string {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString("p\n")
	sb.WriteString(strings.Repeat("#", 40) + "\n")
	return sb.String()
}

// hazardLevel is flatLevel with a danger tile at column 8 on the player's row.
func hazardLevel() string {
	var sb strings.Builder
	for i := 0; i < 10; i++ {
		sb.WriteString("\n")
	}
	sb.WriteString("p.......D\n")
	sb.WriteString(strings.Repeat("#", 40) + "\n")
	return sb.String()
}

func testLoader() *level.Loader {
	return level.NewLoader(fstest.MapFS{
		"level-1.txt": {Data: []byte(flatLevel())},
		"level-2.txt": {Data: []byte(hazardLevel())},
	})
}

func newTestSession(opts ...Option) *Session {
	return NewSession(config.DefaultDashConfig(), testLoader(), opts...)
}

func input(actions ...core.Action) core.InputFrame {
	in := core.NewInputFrame()
	for _, a := range actions {
		in.Set(a)
	}
	return in
}

// stepN runs n ticks with no input and returns the last result.
func stepN(s *Session, n int) StepResult {
	var res StepResult
	for i := 0; i < n; i++ {
		res = s.Step(input())
	}
	return res
}

type failingSource struct{ err error }

func (f failingSource) Load(int) (*level.Level, error) { return nil, f.err }

func TestNewSessionStartsInMenu(t *testing.T) {
	s := newTestSession()

	if s.State() != StateMenu {
		t.Errorf("state = %s, expected menu", s.State())
	}
	if s.Level() != 1 {
		t.Errorf("level = %d, expected 1", s.Level())
	}
	if !s.Tiles().Empty() {
		t.Error("no level should be loaded before the first game")
	}

	// Menu ticks do not run physics
	stepN(s, 10)
	if s.Snapshot().Tick != 0 || s.Offset() != 0 {
		t.Errorf("menu advanced the game: %+v", s.Snapshot())
	}
}

func TestWithLevel(t *testing.T) {
	if s := newTestSession(WithLevel(2)); s.Level() != 2 {
		t.Errorf("level = %d, expected 2", s.Level())
	}
	if s := newTestSession(WithLevel(0)); s.Level() != 1 {
		t.Errorf("level = %d, expected invalid option to be ignored", s.Level())
	}
}

func TestMenuActions(t *testing.T) {
	tests := []struct {
		name      string
		start     int
		action    core.Action
		wantLevel int
		wantState State
	}{
		{"new game from level 2", 2, core.ActionNewGame, 1, StatePlaying},
		{"restart keeps level", 2, core.ActionRestart, 2, StatePlaying},
		{"next level", 1, core.ActionNextLevel, 2, StatePlaying},
		{"next level past the end", 2, core.ActionNextLevel, 3, StateMenu},
		{"jump does nothing", 1, core.ActionJump, 1, StateMenu},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := newTestSession(WithLevel(tc.start))
			res := s.Step(input(tc.action))

			if res.State != tc.wantState || s.State() != tc.wantState {
				t.Errorf("state = %s, expected %s", s.State(), tc.wantState)
			}
			if s.Level() != tc.wantLevel {
				t.Errorf("level = %d, expected %d", s.Level(), tc.wantLevel)
			}
		})
	}
}

func TestNewGameRunsFirstTick(t *testing.T) {
	s := newTestSession()
	s.Step(input(core.ActionNewGame))

	snap := s.Snapshot()
	if snap.Tick != 1 {
		t.Errorf("tick = %d, expected the transition tick to run logic", snap.Tick)
	}
	if snap.Offset != 5 {
		t.Errorf("offset = %v, expected 5", snap.Offset)
	}
	if snap.PlayerY != 500 || snap.PlayerVY != 0 || snap.Jumping {
		t.Errorf("player should rest on the ground: %+v", snap)
	}
	if snap.Rows != 12 || snap.Cols != 40 {
		t.Errorf("map %dx%d, expected 12x40", snap.Rows, snap.Cols)
	}
}

func TestMissingLevelReturnsToMenu(t *testing.T) {
	s := newTestSession(WithLevel(2))
	s.Step(input(core.ActionNewGame))
	stepN(s, 3)

	s.NextLevel()
	s.NextLevel()

	if s.State() != StateMenu {
		t.Fatalf("state = %s, expected menu", s.State())
	}
	if s.Level() != 3 {
		t.Errorf("level = %d, expected 3", s.Level())
	}
	if !s.Tiles().Empty() {
		t.Error("failed load should leave the map empty")
	}
	if !errors.Is(s.LastError(), level.ErrLevelNotFound) {
		t.Errorf("last error = %v, expected ErrLevelNotFound", s.LastError())
	}

	// Menu keeps working after a failed load
	s.Step(input(core.ActionNewGame))
	if s.State() != StatePlaying || s.Level() != 1 || s.LastError() != nil {
		t.Errorf("new game after failure: state %s level %d err %v", s.State(), s.Level(), s.LastError())
	}
}

func TestLoadFailureFromSource(t *testing.T) {
	boom := errors.New("disk unavailable")
	s := NewSession(config.DefaultDashConfig(), failingSource{err: boom})

	s.Step(input(core.ActionNewGame))

	if s.State() != StateMenu {
		t.Errorf("state = %s, expected menu", s.State())
	}
	if !errors.Is(s.LastError(), boom) {
		t.Errorf("last error = %v, expected %v", s.LastError(), boom)
	}
}

func TestHazardEndsGame(t *testing.T) {
	var buf bytes.Buffer
	s := newTestSession(WithLevel(2), WithLogger(log.New(&buf)))
	s.Step(input(core.ActionRestart))

	died := false
	for i := 0; i < 100 && !died; i++ {
		res := s.Step(input())
		died = res.Died
	}
	if !died {
		t.Fatal("expected the player to hit the danger tile")
	}
	if s.State() != StateGameOver {
		t.Errorf("state = %s, expected game_over", s.State())
	}
	if s.Player().Alive {
		t.Error("player should be dead")
	}
	if !strings.Contains(buf.String(), "player died") {
		t.Errorf("expected death to be logged, got %q", buf.String())
	}

	// Game over is frozen until restart
	before := s.Snapshot()
	stepN(s, 20)
	s.Step(input(core.ActionJump))
	after := s.Snapshot()
	if before.Hash() != after.Hash() {
		t.Error("game over should not advance")
	}
}

func TestGameOverRestart(t *testing.T) {
	s := newTestSession(WithLevel(2))
	s.Step(input(core.ActionRestart))
	for i := 0; i < 100 && s.State() == StatePlaying; i++ {
		s.Step(input())
	}
	if s.State() != StateGameOver {
		t.Fatalf("state = %s, expected game_over", s.State())
	}

	// New Game is not a game over action
	s.Step(input(core.ActionNewGame))
	if s.State() != StateGameOver {
		t.Errorf("state = %s, expected game_over", s.State())
	}

	s.Step(input(core.ActionRestart))
	if s.State() != StatePlaying {
		t.Fatalf("state = %s, expected playing", s.State())
	}
	if s.Level() != 2 {
		t.Errorf("level = %d, expected 2", s.Level())
	}
	if !s.Player().Alive || s.Offset() != 5 {
		t.Errorf("restart should respawn: alive %v offset %v", s.Player().Alive, s.Offset())
	}
}

func TestGameOverToMenu(t *testing.T) {
	s := newTestSession(WithLevel(2))
	s.Step(input(core.ActionRestart))
	for i := 0; i < 100 && s.State() == StatePlaying; i++ {
		s.Step(input())
	}

	s.Step(input(core.ActionMenu))
	if s.State() != StateMenu {
		t.Errorf("state = %s, expected menu", s.State())
	}
}

func TestCameraAdvancesEveryTick(t *testing.T) {
	s := newTestSession()
	s.Step(input(core.ActionNewGame))

	prev := s.Offset()
	for n := 2; n <= 50; n++ {
		s.Step(input())
		if s.Offset() < prev {
			t.Fatalf("tick %d: offset went backwards %v -> %v", n, prev, s.Offset())
		}
		prev = s.Offset()
	}
	if s.Offset() != 250 {
		t.Errorf("offset after 50 ticks = %v, expected 250", s.Offset())
	}
	if s.Distance() != 5 {
		t.Errorf("distance = %d, expected 5", s.Distance())
	}
}

func TestResetIsIdempotent(t *testing.T) {
	played := newTestSession()
	played.Step(input(core.ActionNewGame))
	for i := 0; i < 30; i++ {
		in := input()
		if i%7 == 0 {
			in.Set(core.ActionJump)
		}
		played.Step(in)
	}
	played.Restart()

	fresh := newTestSession()
	fresh.Restart()

	a, b := played.Snapshot(), fresh.Snapshot()
	if a.Hash() != b.Hash() {
		t.Errorf("restart depends on history:\n%+v\n%+v", a, b)
	}

	played.Restart()
	if c := played.Snapshot(); c.Hash() != a.Hash() {
		t.Error("restarting twice should give the same state")
	}
}

func TestJumpLeavesGround(t *testing.T) {
	s := newTestSession()
	s.Step(input(core.ActionNewGame))

	s.Step(input(core.ActionJump))
	p := s.Player()
	if p.Y != 481 || p.VY != -19 || !p.Jumping {
		t.Errorf("unexpected player after jump %+v", p)
	}

	// Holding jump mid-air does not add another impulse
	s.Step(input(core.ActionJump))
	if s.Player().VY != -18 {
		t.Errorf("VY = %v, expected -18", s.Player().VY)
	}

	// Lands back on the ground eventually
	stepN(s, 60)
	if p := s.Player(); p.Y != 500 || p.Jumping {
		t.Errorf("player should have landed: %+v", p)
	}
}

func TestPauseFreezesPlay(t *testing.T) {
	s := newTestSession()
	s.Step(input(core.ActionNewGame))
	stepN(s, 5)

	s.Step(input(core.ActionPause))
	if !s.Paused() {
		t.Fatal("expected paused")
	}
	before := s.Snapshot()
	stepN(s, 30)
	if after := s.Snapshot(); after.Hash() != before.Hash() {
		t.Error("paused session should not advance")
	}

	s.Step(input(core.ActionPause))
	if s.Paused() {
		t.Fatal("expected unpaused")
	}
	if s.Snapshot().Tick != before.Tick+1 {
		t.Errorf("tick = %d, expected the unpause tick to run", s.Snapshot().Tick)
	}
}

func TestMenuFromPlaying(t *testing.T) {
	s := newTestSession()
	s.Step(input(core.ActionNextLevel))
	s.Step(input(core.ActionPause))

	s.Step(input(core.ActionMenu))
	if s.State() != StateMenu {
		t.Errorf("state = %s, expected menu", s.State())
	}
	if s.Paused() {
		t.Error("menu should clear pause")
	}
	if s.Level() != 2 {
		t.Errorf("level = %d, expected menu to keep level 2", s.Level())
	}
}

func TestLevelCleared(t *testing.T) {
	s := newTestSession()
	s.Step(input(core.ActionNewGame))

	// 40 columns end at x 2000; the player at x 266 reaches it at offset 1735
	var res StepResult
	ticks := 1
	for ; ticks < 1000 && !res.Cleared; ticks++ {
		res = s.Step(input())
	}
	if !res.Cleared {
		t.Fatal("expected the level to be cleared")
	}
	if ticks != 347 {
		t.Errorf("cleared after %d ticks, expected 347", ticks)
	}
	if s.State() != StateMenu || res.State != StateMenu {
		t.Errorf("state = %s, expected menu", s.State())
	}
	if s.Progress() != 1 {
		t.Errorf("progress = %v, expected 1", s.Progress())
	}
}

func TestFallingIntoPitDoesNotClear(t *testing.T) {
	// Six ground columns, then nothing to land on until the end of the map
	pit := strings.Repeat("\n", 10) + "p\n" + "######" + strings.Repeat(".", 34) + "\n"
	s := NewSession(config.DefaultDashConfig(), level.NewLoader(fstest.MapFS{
		"level-1.txt": {Data: []byte(pit)},
	}))
	s.Step(input(core.ActionNewGame))

	for i := 0; i < 1000; i++ {
		if res := s.Step(input()); res.Cleared {
			t.Fatalf("tick %d: cleared while falling at y %v", i, s.Player().Y)
		}
	}
	if s.State() != StatePlaying {
		t.Errorf("state = %s, expected playing", s.State())
	}
	if s.Player().Y < 600 {
		t.Errorf("player y = %v, expected below the map", s.Player().Y)
	}
	if s.Offset() < 2000 {
		t.Errorf("offset = %v, expected the camera past the last column", s.Offset())
	}
}

func TestBlankLevelNeverClears(t *testing.T) {
	s := NewSession(config.DefaultDashConfig(), level.NewLoader(fstest.MapFS{
		"level-1.txt": {Data: []byte("\n\n\n")},
	}))
	s.Step(input(core.ActionNewGame))
	if s.State() != StatePlaying {
		t.Fatalf("state = %s, expected playing", s.State())
	}
	if !s.Tiles().Empty() {
		t.Error("blank rows should give an empty map")
	}

	for i := 0; i < 10; i++ {
		if res := s.Step(input()); res.Cleared {
			t.Fatalf("tick %d: blank level reported cleared", i)
		}
	}
	if s.Progress() != 0 {
		t.Errorf("progress = %v, expected 0", s.Progress())
	}
}

func TestQuit(t *testing.T) {
	s := newTestSession()
	s.Step(input(core.ActionNewGame))

	res := s.Step(input(core.ActionQuit, core.ActionJump))
	if !res.Quit || !s.Quit() {
		t.Error("expected quit")
	}
	if res.State != StatePlaying {
		t.Errorf("state = %s, quit should not change state", res.State)
	}
	if s.Snapshot().Tick != 1 {
		t.Error("quit tick should not run logic")
	}
}

func TestDeterminism(t *testing.T) {
	inputs := make([]core.InputFrame, 300)
	for i := range inputs {
		inputs[i] = core.NewInputFrame()
		switch {
		case i == 0:
			inputs[i].Set(core.ActionRestart)
		case i%13 < 4:
			inputs[i].Set(core.ActionJump)
		}
	}

	run := func() Snapshot {
		s := newTestSession(WithLevel(2))
		for _, in := range inputs {
			s.Step(in)
		}
		return s.Snapshot()
	}

	snap1, snap2 := run(), run()
	if snap1.Hash() != snap2.Hash() {
		t.Errorf("Determinism failed: hashes differ. Run1=%d, Run2=%d", snap1.Hash(), snap2.Hash())
	}
	if snap1 != snap2 {
		t.Errorf("Determinism failed:\n%+v\n%+v", snap1, snap2)
	}
}

func TestStateString(t *testing.T) {
	tests := []struct {
		state State
		want  string
	}{
		{StateMenu, "menu"},
		{StatePlaying, "playing"},
		{StateGameOver, "game_over"},
		{State(42), "unknown"},
	}
	for _, tc := range tests {
		if got := tc.state.String(); got != tc.want {
			t.Errorf("State(%d).String() = %q, expected %q", tc.state, got, tc.want)
		}
	}
}
