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

	"github.com/vovakirdan/cogito/internal/core"
)

// Game is a core.Game that can follow terminal resizes without reloading
// its level.
type Game interface {
	core.Game
	Resize(w, h int)
}

// Options configure the game screen.
type Options struct {
	Config        core.RuntimeConfig
	ScreenshotDir string
	Logger        *log.Logger
}

// Model is the Bubble Tea model for running the game.
type Model struct {
	game       Game
	screen     *core.Screen
	config     core.RuntimeConfig
	keys       KeyMap
	mapper     *KeyMapper
	help       help.Model
	inputFrame core.InputFrame
	gameState  core.GameState
	shotDir    string
	status     string
	log        *log.Logger
	quitting   bool
}

// NewModel creates a new Bubble Tea model for the given game.
func NewModel(game Game, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	keys := DefaultKeyMap()
	h := help.New()
	h.ShowAll = false

	cfg := opts.Config
	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, screenRows(cfg.ScreenH, false)),
		config:     cfg,
		keys:       keys,
		mapper:     NewKeyMapper(keys),
		help:       h,
		inputFrame: core.NewInputFrame(),
		shotDir:    opts.ScreenshotDir,
		log:        opts.Logger,
	}
}

// screenRows leaves room below the board for the help bar.
func screenRows(height int, full bool) int {
	rows := height - 1
	if full {
		rows = height - 4
	}
	return max(rows, 1)
}

// Init initializes the model and starts the game.
func (m Model) Init() tea.Cmd {
	m.game.Reset(core.RuntimeConfig{
		ScreenW:  m.screen.Width(),
		ScreenH:  m.screen.Height(),
		TickRate: m.config.TickRate,
	})
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

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Screenshot):
		m.saveScreenshot()
		return m, nil
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.resizeScreen()
		return m, nil
	}

	if !m.gameState.Finished {
		m.status = ""
	}
	if m.mapper.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

// handleResize processes window resize events. The level keeps running.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.help.Width = msg.Width
	m.resizeScreen()
	return m, nil
}

func (m *Model) resizeScreen() {
	rows := screenRows(m.config.ScreenH, m.help.ShowAll)
	m.screen.Resize(m.config.ScreenW, rows)
	m.game.Resize(m.config.ScreenW, rows)
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	if result.State.LevelID != m.gameState.LevelID {
		m.log.Info("playing level", "level", result.State.LevelID)
	}
	if result.State.Won && !m.gameState.Won {
		m.log.Info("level won", "level", result.State.LevelID, "moves", result.State.Moves)
	}
	m.gameState = result.State

	m.inputFrame.Clear()

	if m.gameState.Finished {
		m.status = "Campaign complete. Press q to quit."
	}
	return m, tickCmd(m.config.TickRate)
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	if m.shotDir == "" {
		return
	}
	m.game.Render(m.screen)

	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		m.log.Warn("cannot create screenshot directory", "dir", m.shotDir, "err", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s_%s.txt", m.game.ID(), m.gameState.LevelID, timestamp)
	path := filepath.Join(m.shotDir, filename)

	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.log.Warn("cannot save screenshot", "path", path, "err", err)
		return
	}
	m.status = "Saved " + path
	m.log.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	bar := m.help.View(m.keys)
	if m.status != "" && !m.help.ShowAll {
		bar = m.status
	}
	b.WriteString(helpStyle.Render(bar))
	return b.String()
}

// Run starts the Bubble Tea program with the given game.
func Run(game Game, opts Options) error {
	model := NewModel(game, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	_, err := p.Run()
	return err
}
