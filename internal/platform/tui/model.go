package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tile-dash/internal/core"
	"github.com/vovakirdan/tile-dash/internal/game"
)

// helpHeight is the number of rows reserved below the play field.
const helpHeight = 1

// Options configures the terminal front end.
type Options struct {
	Config        core.RuntimeConfig
	HoldTicks     int    // Ticks a jump key press stays held
	ScreenshotDir string // Defaults to ~/.dash/screenshots
	Logger        *log.Logger
}

// Model is the Bubble Tea model that drives a game session.
type Model struct {
	session    *game.Session
	screen     *core.Screen
	keys       *KeyMapper
	help       help.Model
	hold       JumpHold
	inputFrame core.InputFrame
	config     core.RuntimeConfig
	shotDir    string
	logger     *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given session.
func NewModel(session *game.Session, opts Options) Model {
	cfg := opts.Config
	if cfg.TickRate <= 0 {
		cfg.TickRate = core.DefaultConfig().TickRate
	}
	if cfg.ScreenW <= 0 || cfg.ScreenH <= 0 {
		cfg.ScreenW, cfg.ScreenH = session.Viewport()
		cfg.ScreenH += helpHeight
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = defaultScreenshotDir()
	}

	h := help.New()
	h.ShortSeparator = "  "

	return Model{
		session:    session,
		screen:     core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-helpHeight)),
		keys:       NewKeyMapper(),
		help:       h,
		hold:       NewJumpHold(opts.HoldTicks),
		inputFrame: core.NewInputFrame(),
		config:     cfg,
		shotDir:    shotDir,
		logger:     logger,
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey records the action for the next tick.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.keys.Keys()
	switch {
	case key.Matches(msg, keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.screen.Resize(m.config.ScreenW, core.Max(1, m.config.ScreenH-m.helpRows()))
		return m, nil
	}

	action, _ := m.keys.MapKey(msg)
	switch action {
	case core.ActionNone:
	case core.ActionJump:
		m.hold.Press()
	default:
		m.inputFrame.Set(action)
	}
	return m, nil
}

// handleResize processes window resize events. The session is unaffected;
// the play field is re-centered on the next render.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(1, msg.Height-m.helpRows()))
	m.help.Width = msg.Width
	return m, nil
}

// handleTick runs one simulation step with the input gathered since the last tick.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	if m.hold.Held() {
		m.inputFrame.Set(core.ActionJump)
	}

	prev := m.session.State()
	result := m.session.Step(m.inputFrame)

	m.inputFrame.Clear()
	m.hold.Tick()

	if result.Quit {
		m.quitting = true
		m.logger.Info("quit", "level", m.session.Level(), "state", result.State)
		return m, tea.Quit
	}
	if result.State != prev {
		m.logger.Debug("state changed", "from", prev, "to", result.State, "level", m.session.Level())
		// A held jump must not carry over into a new run
		m.hold.Release()
	}

	return m, tickCmd(m.config.TickRate)
}

// helpRows returns the rows taken by the help view.
func (m Model) helpRows() int {
	if !m.help.ShowAll {
		return helpHeight
	}
	rows := helpHeight
	for _, col := range m.keys.Keys().FullHelp() {
		rows = core.Max(rows, len(col))
	}
	return rows
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.session.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.logger.Warn("screenshot directory", "dir", m.shotDir, "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("level-%d_%s.txt", m.session.Level(), timestamp)
	path := filepath.Join(m.shotDir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("screenshot not saved", "path", path, "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.session.Render(m.screen)

	helpStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys.Keys())))
	return b.String()
}

// Session returns the session driven by the model.
func (m Model) Session() *game.Session {
	return m.session
}

func defaultScreenshotDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".dash", "screenshots")
	}
	return filepath.Join(home, ".dash", "screenshots")
}

// Run starts the Bubble Tea program for the given session.
func Run(session *game.Session, opts Options) error {
	model := NewModel(session, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
