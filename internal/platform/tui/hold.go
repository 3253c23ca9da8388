package tui

// JumpHold keeps the jump action held between key events.
// Terminals report key presses and auto-repeats but never releases, so a
// press holds jump for a fixed number of ticks and every repeat extends it.
type JumpHold struct {
	ticks     int
	remaining int
}

// NewJumpHold creates a tracker that holds each press for ticks ticks.
// Values below 1 are treated as 1.
func NewJumpHold(ticks int) JumpHold {
	if ticks < 1 {
		ticks = 1
	}
	return JumpHold{ticks: ticks}
}

// Press registers a jump key press or repeat.
func (h *JumpHold) Press() {
	h.remaining = h.ticks
}

// Held reports whether jump is held for the current tick.
func (h JumpHold) Held() bool {
	return h.remaining > 0
}

// Tick consumes one tick of hold time.
func (h *JumpHold) Tick() {
	if h.remaining > 0 {
		h.remaining--
	}
}

// Release drops the hold immediately.
func (h *JumpHold) Release() {
	h.remaining = 0
}
