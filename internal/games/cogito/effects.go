package cogito

import (
	"github.com/vovakirdan/cogito/internal/config"
	"github.com/vovakirdan/cogito/internal/games/cogito/progress"
	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// flashTicks is how long the HUD highlights a counter after it changes.
const flashTicks = 20

type overlay int

const (
	overlayNone overlay = iota
	overlayWon
	overlayLost
)

type fallingSand struct {
	pos   tile.Coord
	ticks int
	total int
}

// animator plays the controller's requests on the fixed simulation tick.
// It never calls back into the controller; the game polls finished() and
// forwards completion.
type animator struct {
	anims config.CogitoConfig

	name      string
	speed     float64
	remaining float64 // ticks left at speed 1; 0 loops until replaced
	done      bool
	timeScale float64

	falling []fallingSand
	flash   map[progress.Kind]int
	overlay overlay
	persist bool
}

func newAnimator(cfg config.CogitoConfig) *animator {
	return &animator{
		anims:     cfg,
		timeScale: 1,
		flash:     make(map[progress.Kind]int),
	}
}

func (a *animator) NotifyCounterChanged(kind progress.Kind, _ int) {
	a.flash[kind] = flashTicks
}

func (a *animator) PlayAnimation(name string, speed float64) {
	if speed <= 0 {
		speed = 1
	}
	a.name = name
	a.speed = speed
	a.remaining = float64(a.anims.AnimationTicks(name))
	a.done = false
}

func (a *animator) StopAnimation() {
	a.name = ""
	a.remaining = 0
	a.done = false
}

func (a *animator) SetTimeScale(scale float64) {
	a.timeScale = scale
	if scale > 0 && a.overlay != overlayNone {
		a.overlay = overlayNone
	}
}

func (a *animator) SpawnFallingEffect(c tile.Coord) {
	n := a.anims.AnimationTicks("FallingSand")
	if n <= 0 {
		return
	}
	a.falling = append(a.falling, fallingSand{pos: c, ticks: n, total: n})
}

func (a *animator) ClearFallingEffects() {
	a.falling = a.falling[:0]
}

func (a *animator) ShowWinUI()       { a.overlay = overlayWon }
func (a *animator) ShowLoseUI()      { a.overlay = overlayLost }
func (a *animator) PersistProgress() { a.persist = true }

// advance runs one tick and reports whether a finite animation just ended.
func (a *animator) advance() bool {
	for k, n := range a.flash {
		if n <= 1 {
			delete(a.flash, k)
			continue
		}
		a.flash[k] = n - 1
	}

	if a.timeScale <= 0 {
		return false
	}

	kept := a.falling[:0]
	for _, f := range a.falling {
		f.ticks--
		if f.ticks > 0 {
			kept = append(kept, f)
		}
	}
	a.falling = kept

	if a.remaining <= 0 || a.done {
		return false
	}
	a.remaining -= a.speed * a.timeScale
	if a.remaining <= 0 {
		a.done = true
		return true
	}
	return false
}

// takePersist reports and clears a pending save request.
func (a *animator) takePersist() bool {
	p := a.persist
	a.persist = false
	return p
}

func (a *animator) flashing(kind progress.Kind) bool {
	return a.flash[kind] > 0
}
