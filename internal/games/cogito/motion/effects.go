package motion

import (
	"github.com/vovakirdan/cogito/internal/core"
	"github.com/vovakirdan/cogito/internal/games/cogito/progress"
	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// Animation names the controller asks the player to show.
const (
	AnimIdle          = "Idle"
	AnimMove          = "Move"
	AnimSlide         = "Slide"
	AnimSwim          = "Swim"
	AnimSwimIdle      = "SwimIdle"
	AnimFall          = "Fall"
	AnimTeleport      = "Teleport"
	AnimParadigmShift = "ParadigmShift"
	AnimDrown         = "Drown"
)

// FallSpeed is the playback speed of the fall animation.
const FallSpeed = 0.5

// Effects is everything the controller asks of the outside world. None of
// the calls may re-enter the controller; animation completion is reported
// later through AnimationFinished.
type Effects interface {
	progress.Notifier

	PlayAnimation(name string, speed float64)
	StopAnimation()
	SetTimeScale(scale float64)
	SpawnFallingEffect(c tile.Coord)
	ClearFallingEffects()
	ShowWinUI()
	ShowLoseUI()
	PersistProgress()
}

// Input is polled once per Update.
type Input interface {
	IsActionPressed(a core.Action) bool
	IsActionJustPressed(a core.Action) bool
}

// NopEffects ignores every call.
type NopEffects struct{}

func (NopEffects) NotifyCounterChanged(progress.Kind, int) {}
func (NopEffects) PlayAnimation(string, float64)           {}
func (NopEffects) StopAnimation()                          {}
func (NopEffects) SetTimeScale(float64)                    {}
func (NopEffects) SpawnFallingEffect(tile.Coord)           {}
func (NopEffects) ClearFallingEffects()                    {}
func (NopEffects) ShowWinUI()                              {}
func (NopEffects) ShowLoseUI()                             {}
func (NopEffects) PersistProgress()                        {}

var dirActions = [...]struct {
	dir    tile.Dir
	action core.Action
}{
	{tile.Right, core.ActionRight},
	{tile.Left, core.ActionLeft},
	{tile.Up, core.ActionUp},
	{tile.Down, core.ActionDown},
}
