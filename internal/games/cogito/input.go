package cogito

import (
	"github.com/vovakirdan/cogito/internal/core"
)

// holdRelease is how many ticks a repeating key stays held after its last
// repeat. Terminals report no key-up events, so a hold is inferred from
// auto-repeat.
const holdRelease = 6

type keyTrack struct {
	last   uint64 // tick of the last press
	streak int    // presses in a row, each within the repeat window
}

// frameInput adapts per-tick input frames to the controller's polled input.
type frameInput struct {
	window uint64 // max gap between presses that still counts as a repeat
	tick   uint64
	frame  core.InputFrame
	keys   map[core.Action]*keyTrack
}

func newFrameInput(holdTicks int) *frameInput {
	if holdTicks <= 0 {
		holdTicks = 1
	}
	return &frameInput{
		window: uint64(holdTicks),
		keys:   make(map[core.Action]*keyTrack),
	}
}

// observe records the frame of the current tick.
func (f *frameInput) observe(tick uint64, in core.InputFrame) {
	f.tick = tick
	f.frame = in
	for a, on := range in.Actions {
		if !on {
			continue
		}
		k, ok := f.keys[a]
		if !ok {
			k = &keyTrack{}
			f.keys[a] = k
		}
		if k.streak > 0 && tick-k.last <= f.window {
			k.streak++
		} else {
			k.streak = 1
		}
		k.last = tick
	}
}

func (f *frameInput) IsActionJustPressed(a core.Action) bool {
	return f.frame.Has(a)
}

// IsActionPressed is true while a key auto-repeats.
func (f *frameInput) IsActionPressed(a core.Action) bool {
	k, ok := f.keys[a]
	if !ok || k.streak < 2 {
		return false
	}
	return f.tick-k.last <= holdRelease
}

// reset forgets held keys, used when a level is (re)loaded.
func (f *frameInput) reset() {
	for a := range f.keys {
		delete(f.keys, a)
	}
	f.frame = core.InputFrame{}
}
