package game

import (
	"errors"
	"fmt"
	"math"
	"unicode/utf8"

	"github.com/vovakirdan/tile-dash/internal/core"
	"github.com/vovakirdan/tile-dash/internal/level"
	"github.com/vovakirdan/tile-dash/internal/physics"
)

// Colors for game elements.
const (
	GroundColor = core.ColorGreen
	DangerColor = core.ColorBrightRed
	PlayerColor = core.ColorCyan
	TitleColor  = core.ColorBrightWhite
	ErrorColor  = core.ColorRed
	HUDColor    = core.ColorGray
)

// Menu option labels.
const (
	MenuNewGame   = "New Game (1)"
	MenuRestart   = "Restart (2)"
	MenuNextLevel = "Next Level (3)"
	GameOverText  = "Game Over - Press R to Restart"
)

// viewport maps the logical play field onto the terminal.
type viewport struct {
	originX, originY int
	cols, rows       int
	cellW, cellH     float64
}

// Viewport returns the play field size in cells.
func (s *Session) Viewport() (cols, rows int) {
	vp := s.viewport(0, 0)
	return vp.cols, vp.rows
}

func (s *Session) viewport(screenW, screenH int) viewport {
	cw, ch := s.cfg.Render.CellWidth, s.cfg.Render.CellHeight
	vp := viewport{
		cols:  int(math.Ceil(float64(s.cfg.Screen.Width) / cw)),
		rows:  int(math.Ceil(float64(s.cfg.Screen.Height) / ch)),
		cellW: cw,
		cellH: ch,
	}
	vp.originX = core.Max(0, (screenW-vp.cols)/2)
	vp.originY = core.Max(0, (screenH-vp.rows)/2)
	return vp
}

// fill draws a world-space rectangle clipped to the play field.
func (vp viewport) fill(dst *core.Screen, r core.RectF, ch rune, c core.Color) {
	cells := r.Cells(vp.cellW, vp.cellH)
	x0 := core.Clamp(cells.X, 0, vp.cols)
	x1 := core.Clamp(cells.Right(), 0, vp.cols)
	y0 := core.Clamp(cells.Y, 0, vp.rows)
	y1 := core.Clamp(cells.Bottom(), 0, vp.rows)
	for y := y0; y < y1; y++ {
		for x := x0; x < x1; x++ {
			dst.SetColor(vp.originX+x, vp.originY+y, ch, c)
		}
	}
}

// text draws a string at a play-field cell position.
func (vp viewport) text(dst *core.Screen, x, y int, s string, c core.Color) {
	dst.DrawTextColor(vp.originX+x, vp.originY+y, s, c)
}

// centered draws a string centered in the play field.
func (vp viewport) centered(dst *core.Screen, y int, s string, c core.Color) {
	x := (vp.cols - utf8.RuneCountInString(s)) / 2
	vp.text(dst, x, y, s, c)
}

// Render draws the session into dst. It reads a snapshot taken after the
// last completed tick and never mutates the session.
func (s *Session) Render(dst *core.Screen) {
	dst.Clear()
	snap := s.Snapshot()
	vp := s.viewport(dst.Width(), dst.Height())

	switch snap.State {
	case StateMenu:
		s.renderMenu(dst, vp, snap)
	case StatePlaying:
		s.renderPlaying(dst, vp, snap)
		if snap.Paused {
			drawCenteredMessage(dst, "PAUSED", "Press P to resume")
		}
	case StateGameOver:
		s.renderGameOver(dst, vp, snap)
	}
}

func (s *Session) renderMenu(dst *core.Screen, vp viewport, snap Snapshot) {
	title := "T I L E   D A S H"
	vp.centered(dst, 1, title, TitleColor)
	titleW := utf8.RuneCountInString(title)
	dst.DrawHLine(vp.originX+(vp.cols-titleW)/2, vp.originY+2, titleW, '─', HUDColor)

	x := vp.cols / 4
	vp.text(dst, x, vp.rows/4, MenuNewGame, core.ColorWhite)
	vp.text(dst, x, vp.rows/2, MenuRestart, core.ColorWhite)
	vp.text(dst, x, 3*vp.rows/4, MenuNextLevel, core.ColorWhite)

	vp.centered(dst, vp.rows/4+2, fmt.Sprintf("Level %d", snap.Level), HUDColor)

	switch {
	case s.lastErr != nil && errors.Is(s.lastErr, level.ErrLevelNotFound):
		vp.centered(dst, vp.rows-2, fmt.Sprintf("Level %d not found", snap.Level), ErrorColor)
	case s.lastErr != nil:
		vp.centered(dst, vp.rows-2, s.lastErr.Error(), ErrorColor)
	case s.lastCleared > 0:
		vp.centered(dst, vp.rows-2, fmt.Sprintf("Level %d cleared!", s.lastCleared), GroundColor)
	}
}

func (s *Session) renderPlaying(dst *core.Screen, vp viewport, snap Snapshot) {
	tileSize := s.cfg.Level.TileSize
	groundCh := firstRune(s.cfg.Render.GroundChar, '#')
	dangerCh := firstRune(s.cfg.Render.DangerChar, 'D')

	first, last := s.camera.VisibleCols(float64(s.cfg.Screen.Width), tileSize)
	for row := range s.tiles {
		cols := s.tiles[row]
		for col := first; col < last && col < len(cols); col++ {
			r := physics.TileRect(row, col, snap.Offset, tileSize)
			switch cols[col] {
			case level.TileGround:
				vp.fill(dst, r, groundCh, GroundColor)
			case level.TileDanger:
				vp.fill(dst, r, dangerCh, DangerColor)
			}
		}
	}

	if snap.Alive {
		box := core.NewRectF(snap.PlayerX, snap.PlayerY, s.prm.Width, s.prm.Height)
		vp.fill(dst, box, firstRune(s.cfg.Render.PlayerChar, '@'), PlayerColor)
	}

	hud := fmt.Sprintf(" Level %d  Distance %d  %3.0f%% ", snap.Level, s.Distance(), s.Progress()*100)
	vp.text(dst, 1, 0, hud, HUDColor)
}

func (s *Session) renderGameOver(dst *core.Screen, vp viewport, snap Snapshot) {
	vp.centered(dst, vp.rows/3, GameOverText, ErrorColor)
	vp.centered(dst, vp.rows/3+2, fmt.Sprintf("Level %d  Distance %d", snap.Level, s.Distance()), HUDColor)
}

// drawCenteredMessage draws a message box in the center of the screen.
func drawCenteredMessage(dst *core.Screen, title, subtitle string) {
	w := dst.Width()
	h := dst.Height()

	boxW := core.Max(len(title), len(subtitle)) + 4
	boxH := 5
	boxX := (w - boxW) / 2
	boxY := (h - boxH) / 2

	dst.DrawRect(core.NewRect(boxX, boxY, boxW, boxH), ' ', core.ColorDefault)
	dst.DrawBox(core.NewRect(boxX, boxY, boxW, boxH), TitleColor)

	dst.DrawTextColor(boxX+(boxW-len(title))/2, boxY+1, title, TitleColor)
	dst.DrawTextColor(boxX+(boxW-len(subtitle))/2, boxY+3, subtitle, core.ColorWhite)
}

func firstRune(s string, fallback rune) rune {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 || r == utf8.RuneError {
		return fallback
	}
	return r
}
