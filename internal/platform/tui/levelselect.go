package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// LevelInfo is one row of the level picker.
type LevelInfo struct {
	ID        string
	Name      string
	World     int
	Number    int
	Unlocked  bool
	BestMoves int // 0 when never won
}

// Status is the lock state shown for a level.
func (l LevelInfo) Status() string {
	switch {
	case !l.Unlocked:
		return "locked"
	case l.BestMoves > 0:
		return "won"
	default:
		return "open"
	}
}

// LevelSelectKeyMap defines the key bindings for the level picker.
type LevelSelectKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k LevelSelectKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k LevelSelectKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down}, {k.Select, k.Quit}}
}

// DefaultLevelSelectKeyMap returns default key bindings.
func DefaultLevelSelectKeyMap() LevelSelectKeyMap {
	return LevelSelectKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k", "w"),
			key.WithHelp("up/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j", "s"),
			key.WithHelp("down/j", "down"),
		),
		Select: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "play"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// LevelSelectModel is the Bubble Tea model for the level picker.
type LevelSelectModel struct {
	levels   []LevelInfo
	table    table.Model
	help     help.Model
	keys     LevelSelectKeyMap
	width    int
	height   int
	chosen   string
	message  string
	quitting bool
}

// NewLevelSelectModel creates a picker with the cursor on the furthest
// unlocked level.
func NewLevelSelectModel(levels []LevelInfo, width, height int) LevelSelectModel {
	m := LevelSelectModel{
		levels: levels,
		keys:   DefaultLevelSelectKeyMap(),
		help:   help.New(),
		width:  width,
		height: height,
	}
	m.table = m.createTable()
	m.updateTableRows()

	cursor := 0
	for i, l := range levels {
		if l.Unlocked {
			cursor = i
		}
	}
	m.table.SetCursor(cursor)
	return m
}

func (m *LevelSelectModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Level", Width: 6},
		{Title: "Name", Width: 20},
		{Title: "Status", Width: 8},
		{Title: "Best", Width: 6},
	}
	if m.width > 60 {
		columns[1].Width = min(m.width-34, 32)
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-8, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

func (m *LevelSelectModel) updateTableRows() {
	rows := make([]table.Row, len(m.levels))
	for i, l := range m.levels {
		best := "-"
		if l.BestMoves > 0 {
			best = fmt.Sprintf("%d", l.BestMoves)
		}
		name := l.Name
		if name == "" {
			name = l.ID
		}
		rows[i] = table.Row{
			fmt.Sprintf("%d-%d", l.World, l.Number),
			name,
			l.Status(),
			best,
		}
	}
	m.table.SetRows(rows)
}

// Init initializes the picker.
func (m LevelSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the picker.
func (m LevelSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Select):
			i := m.table.Cursor()
			if i < 0 || i >= len(m.levels) {
				return m, nil
			}
			if !m.levels[i].Unlocked {
				m.message = "That level is still locked."
				return m, nil
			}
			m.chosen = m.levels[i].ID
			return m, tea.Quit
		}
		m.message = ""

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		cursor := m.table.Cursor()
		m.table = m.createTable()
		m.updateTableRows()
		m.table.SetCursor(cursor)
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the picker.
func (m LevelSelectModel) View() string {
	if m.quitting || m.chosen != "" {
		return ""
	}

	var b strings.Builder

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("229")).
		MarginBottom(1)
	b.WriteString(titleStyle.Render(centerText("COGITO - SELECT LEVEL", m.width)))
	b.WriteString("\n\n")

	tableStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	b.WriteString(centerText(tableStyle.Render(m.table.View()), m.width))
	b.WriteString("\n")

	if m.message != "" {
		msgStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
		b.WriteString(msgStyle.Render(m.message))
		b.WriteString("\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

// Chosen returns the picked level, empty when the user quit.
func (m LevelSelectModel) Chosen() string {
	return m.chosen
}

// centerText centers every line of text within width using lipgloss.
func centerText(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, text)
}

// RunLevelSelect runs the picker and returns the chosen level ID, or ""
// when the user quit.
func RunLevelSelect(levels []LevelInfo, width, height int) (string, error) {
	model := NewLevelSelectModel(levels, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return "", err
	}

	m, ok := finalModel.(LevelSelectModel)
	if !ok {
		return "", nil
	}
	return m.Chosen(), nil
}
