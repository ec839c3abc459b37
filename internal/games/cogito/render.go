package cogito

import (
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/vovakirdan/cogito/internal/core"
	"github.com/vovakirdan/cogito/internal/games/cogito/motion"
	"github.com/vovakirdan/cogito/internal/games/cogito/progress"
	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

const (
	hudRows    = 3
	footerRows = 1
)

func (g *Game) cellWidth() int {
	if g.cfg.Grid.CellWidth <= 0 {
		return 1
	}
	return g.cfg.Grid.CellWidth
}

func (g *Game) boardSize() (w, h int) {
	if g.ctrl != nil {
		return g.ctrl.Grid().W, g.ctrl.Grid().H
	}
	lvl := g.Level()
	if lvl.Width <= 0 {
		lvl.Width = g.cfg.Grid.Width
	}
	if lvl.Height <= 0 {
		lvl.Height = g.cfg.Grid.Height
	}
	return lvl.Size()
}

// Render draws the current state into the screen buffer.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}
	if g.finished {
		g.drawOverlay(dst, dst.Width()/2, dst.Height()/2,
			"CAMPAIGN COMPLETE", "Every cog challenged.", "Q: Quit")
		return
	}

	w, h := g.boardSize()
	cw := g.cellWidth()
	boardX := (dst.Width() - w*cw) / 2
	boardY := hudRows

	g.renderHUD(dst, boardX)
	if g.ctrl == nil {
		g.drawOverlay(dst, dst.Width()/2, boardY+h/2,
			"LEVEL FAILED TO LOAD", truncate(fmt.Sprint(g.loadErr), dst.Width()-6))
		return
	}

	g.renderBoard(dst, boardX, boardY)
	g.renderActor(dst, boardX, boardY)
	g.renderFooter(dst, boardY+h)
	g.renderOverlays(dst, boardX+w*cw/2, boardY+h/2)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	w, h := g.boardSize()
	msg := "Terminal too small"
	hint := fmt.Sprintf("Need %dx%d", w*g.cellWidth()+2, h+hudRows+footerRows)
	y := dst.Height() / 2
	dst.DrawTextCentered(y, msg, core.ColorYellow)
	dst.DrawTextCentered(y+1, hint, core.ColorGray)
}

func (g *Game) renderHUD(dst *core.Screen, boardX int) {
	lvl := g.Level()
	title := fmt.Sprintf("COGITO  %d-%d", lvl.World, lvl.Number)
	if lvl.Name != "" {
		title += "  " + lvl.Name
	}
	dst.DrawTextCentered(0, title, core.ColorBrightWhite)

	if g.ctrl == nil {
		return
	}
	c := g.ctrl.Counters()

	x := max(boardX, 0)
	x = g.hudItem(dst, x, 1, progress.KindChallenged,
		fmt.Sprintf("Cogs %d/%d", c.Challenged(), c.Total()), core.ColorOrange)
	x = g.hudItem(dst, x, 1, progress.KindShifts,
		fmt.Sprintf("Shifts %d", c.Shifts()), core.ColorMagenta)
	x = g.hudItem(dst, x, 1, progress.KindStamina,
		"Air "+staminaBar(c.Stamina(), c.StaminaMax()), core.ColorCyan)
	if c.Candies() > 0 {
		x = g.hudItem(dst, x, 1, progress.KindCandies,
			fmt.Sprintf("Candy %d", c.Candies()), core.ColorBrightMagenta)
	}
	if c.FloatAid() {
		g.hudItem(dst, x, 1, progress.KindFloatAid, "Balloon", core.ColorBrightRed)
	}
}

// hudItem draws one counter and returns the x of the next one. A counter
// that just changed is drawn bright.
func (g *Game) hudItem(dst *core.Screen, x, y int, kind progress.Kind, text string, c core.Color) int {
	if g.fx.flashing(kind) {
		c = core.ColorBrightWhite
	}
	dst.DrawTextColored(x, y, text, c)
	return x + utf8.RuneCountInString(text) + 3
}

func staminaBar(stamina, maxStamina int) string {
	if maxStamina <= 0 {
		return ""
	}
	stamina = core.Clamp(stamina, 0, maxStamina)
	return strings.Repeat("o", maxStamina-stamina) + strings.Repeat(".", stamina)
}

func (g *Game) renderBoard(dst *core.Screen, boardX, boardY int) {
	grid := g.ctrl.Grid()
	cw := g.cellWidth()

	for y := 0; y < grid.H; y++ {
		for x := 0; x < grid.W; x++ {
			r, col := g.cellGlyph(grid.Sample(tile.C(x, y)))
			px := boardX + x*cw
			dst.SetColored(px, boardY+y, r, col)
			for i := 1; i < cw; i++ {
				fill := ' '
				if r == '.' || r == '~' {
					fill = r
				}
				dst.SetColored(px+i, boardY+y, fill, col)
			}
		}
	}

	for _, f := range g.fx.falling {
		// Sand grains thin out as the effect runs.
		r := ':'
		if f.ticks < f.total/2 {
			r = '.'
		}
		dst.SetColored(boardX+f.pos.X*cw, boardY+f.pos.Y, r, core.ColorBrown)
	}
}

// cellGlyph picks what to draw for a cell: the obstacle when one is placed,
// otherwise the ground. Empty cells are drawn blank.
func (g *Game) cellGlyph(s tile.Layered) (rune, core.Color) {
	f := s.Obstacle
	if !f.Placed {
		f = s.Ground
	}
	if !f.Placed {
		return ' ', core.ColorDefault
	}
	def, ok := g.ts.Catalog.Def(f.Visual.Atlas)
	if !ok {
		return '?', core.ColorRed
	}
	col, _ := core.ParseColor(def.Color)
	return g.ts.GlyphFor(f.Visual), col
}

func (g *Game) renderActor(dst *core.Screen, boardX, boardY int) {
	pos := g.ctrl.Position()
	cw := float64(g.cellWidth())
	x := boardX + int(math.Round(pos.X*cw))
	y := boardY + int(math.Round(pos.Y))

	r, col := '@', core.ColorBrightWhite
	switch g.ctrl.Animation() {
	case motion.AnimFall:
		r, col = 'o', core.ColorGray
	case motion.AnimDrown:
		r, col = '~', core.ColorBlue
	case motion.AnimTeleport:
		r, col = '*', core.ColorBrightCyan
	case motion.AnimParadigmShift:
		r, col = '#', core.ColorBrightMagenta
	case motion.AnimSwim, motion.AnimSwimIdle:
		col = core.ColorBrightCyan
	}
	if g.ctrl.Counters().FloatAid() {
		col = core.ColorBrightRed
	}
	dst.SetColored(x, y, r, col)

	if g.cellWidth() > 1 {
		facing := '>'
		if g.ctrl.FacingLeft() {
			facing = '<'
			x--
		} else {
			x++
		}
		if g.ctrl.Animation() != motion.AnimFall {
			dst.SetColored(x, y, facing, core.ColorGray)
		}
	}
}

func (g *Game) renderFooter(dst *core.Screen, y int) {
	if hint := g.Level().Metadata["hint"]; hint != "" {
		dst.DrawTextCentered(y, truncate(hint, dst.Width()), core.ColorGray)
	}
}

func (g *Game) renderOverlays(dst *core.Screen, centerX, centerY int) {
	if g.paused {
		g.drawOverlay(dst, centerX, centerY, "PAUSED", "Press P to resume")
		return
	}

	switch g.fx.overlay {
	case overlayWon:
		stats := g.ctrl.Stats()
		next := "Enter: next level"
		if g.index+1 >= len(g.campaign) {
			next = "Enter: finish"
		}
		g.drawOverlay(dst, centerX, centerY,
			"LEVEL COMPLETE",
			fmt.Sprintf("%d moves, %d undos", stats.Moves, stats.Undos),
			next, "R: replay")
	case overlayLost:
		g.drawOverlay(dst, centerX, centerY, "LOST", "Z: undo", "R: restart")
	}
}

// drawOverlay draws a centered text box.
func (g *Game) drawOverlay(dst *core.Screen, centerX, centerY int, lines ...string) {
	maxLen := 0
	for _, line := range lines {
		maxLen = max(maxLen, utf8.RuneCountInString(line))
	}

	boxW := maxLen + 4
	boxH := len(lines) + 2
	box := core.NewRect(centerX-boxW/2, centerY-boxH/2, boxW, boxH)

	dst.DrawRect(box, ' ', core.ColorDefault)
	dst.DrawBox(box, core.ColorWhite)
	for i, line := range lines {
		x := centerX - utf8.RuneCountInString(line)/2
		dst.DrawTextColored(x, box.Y+1+i, line, core.ColorBrightWhite)
	}
}

func truncate(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n])
}
