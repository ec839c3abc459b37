package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/cogito/internal/core"
)

func runeKey(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestMapKey(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())

	tests := []struct {
		name   string
		msg    tea.KeyMsg
		action core.Action
		quit   bool
	}{
		{"arrow left", tea.KeyMsg{Type: tea.KeyLeft}, core.ActionLeft, false},
		{"wasd up", runeKey("w"), core.ActionUp, false},
		{"vim down", runeKey("j"), core.ActionDown, false},
		{"undo z", runeKey("z"), core.ActionUndo, false},
		{"undo backspace", tea.KeyMsg{Type: tea.KeyBackspace}, core.ActionUndo, false},
		{"shift space", tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}, core.ActionShift, false},
		{"restart", runeKey("r"), core.ActionRestart, false},
		{"confirm", tea.KeyMsg{Type: tea.KeyEnter}, core.ActionConfirm, false},
		{"pause", runeKey("p"), core.ActionPause, false},
		{"quit", runeKey("q"), core.ActionQuit, true},
		{"ctrl+c", tea.KeyMsg{Type: tea.KeyCtrlC}, core.ActionQuit, true},
		{"unbound", runeKey("m"), core.ActionNone, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action, quit := km.MapKey(tt.msg)
			if action != tt.action || quit != tt.quit {
				t.Errorf("MapKey(%q) = %v, %v; want %v, %v", tt.msg.String(), action, quit, tt.action, tt.quit)
			}
		})
	}
}

func TestMapKeyToFrame(t *testing.T) {
	km := NewKeyMapper(DefaultKeyMap())
	frame := core.NewInputFrame()

	if km.MapKeyToFrame(runeKey("d"), &frame) {
		t.Fatal("d is not a quit key")
	}
	if !frame.Has(core.ActionRight) {
		t.Error("d should set Right")
	}
	if !km.MapKeyToFrame(runeKey("q"), &frame) {
		t.Error("q should quit")
	}
	if frame.Has(core.ActionQuit) {
		t.Error("quit is handled by the model, not the frame")
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(6, 2)
	s.DrawTextColored(0, 0, "ab", core.ColorIce)
	s.DrawTextColored(2, 0, "cd", core.ColorBrown)
	s.DrawText(0, 1, "xy")

	out := RenderScreen(s)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(lines))
	}
	for _, want := range []string{"ab", "cd", "xy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q: %q", want, out)
		}
	}
}

func TestLevelSelectRefusesLockedLevel(t *testing.T) {
	levels := []LevelInfo{
		{ID: "first", World: 1, Number: 1, Unlocked: true, BestMoves: 7},
		{ID: "second", World: 1, Number: 2, Unlocked: true},
		{ID: "third", World: 1, Number: 3},
	}
	m := NewLevelSelectModel(levels, 80, 24)
	if got := m.table.Cursor(); got != 1 {
		t.Fatalf("cursor starts at %d, want furthest unlocked 1", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(LevelSelectModel)
	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LevelSelectModel)
	if m.Chosen() != "" {
		t.Errorf("picked locked level %q", m.Chosen())
	}
	if m.message == "" {
		t.Error("expected a locked message")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyUp})
	m = next.(LevelSelectModel)
	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(LevelSelectModel)
	if m.Chosen() != "second" {
		t.Errorf("Chosen = %q, want second", m.Chosen())
	}
	if cmd == nil {
		t.Error("choosing should quit the picker")
	}
}

func TestLevelInfoStatus(t *testing.T) {
	tests := []struct {
		info LevelInfo
		want string
	}{
		{LevelInfo{}, "locked"},
		{LevelInfo{Unlocked: true}, "open"},
		{LevelInfo{Unlocked: true, BestMoves: 3}, "won"},
	}
	for _, tt := range tests {
		if got := tt.info.Status(); got != tt.want {
			t.Errorf("Status(%+v) = %s, want %s", tt.info, got, tt.want)
		}
	}
}

type fakeGame struct {
	steps  []core.InputFrame
	resets int
	w, h   int
	state  core.GameState
}

func (g *fakeGame) ID() string                   { return "fake" }
func (g *fakeGame) Title() string                { return "Fake" }
func (g *fakeGame) Reset(cfg core.RuntimeConfig) { g.resets++; g.w, g.h = cfg.ScreenW, cfg.ScreenH }
func (g *fakeGame) Render(dst *core.Screen)      { dst.DrawText(0, 0, "board") }
func (g *fakeGame) State() core.GameState        { return g.state }
func (g *fakeGame) Resize(w, h int)              { g.w, g.h = w, h }

func (g *fakeGame) Step(in core.InputFrame) core.StepResult {
	frame := core.NewInputFrame()
	for a, on := range in.Actions {
		if on {
			frame.Set(a)
		}
	}
	g.steps = append(g.steps, frame)
	return core.StepResult{State: g.state}
}

func TestModelForwardsKeysOnTick(t *testing.T) {
	game := &fakeGame{state: core.GameState{LevelID: "first"}}
	m := NewModel(game, Options{Config: core.RuntimeConfig{ScreenW: 40, ScreenH: 10, TickRate: 60}})
	m.Init()
	if game.resets != 1 || game.h != 9 {
		t.Fatalf("Init reset = %d, height %d; want 1, 9", game.resets, game.h)
	}

	next, _ := m.Update(runeKey("z"))
	m = next.(Model)
	next, cmd := m.Update(TickMsg{})
	m = next.(Model)
	if cmd == nil {
		t.Error("tick should schedule the next tick")
	}
	if len(game.steps) != 1 || !game.steps[0].Has(core.ActionUndo) {
		t.Fatalf("steps = %+v, want one frame with Undo", game.steps)
	}

	m.Update(TickMsg{})
	if game.steps[1].Has(core.ActionUndo) {
		t.Error("frame should be cleared after a tick")
	}

	if !strings.Contains(m.View(), "board") {
		t.Error("View should include the game render")
	}

	next, _ = m.Update(tea.WindowSizeMsg{Width: 60, Height: 20})
	m = next.(Model)
	if game.resets != 1 || game.w != 60 || game.h != 19 {
		t.Errorf("resize: resets %d size %dx%d; want 1, 60x19", game.resets, game.w, game.h)
	}

	if _, cmd := m.Update(runeKey("q")); cmd == nil {
		t.Error("q should quit")
	}
}
