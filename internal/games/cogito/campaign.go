package cogito

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/vovakirdan/cogito/internal/games/cogito/levels"
)

// Progress is the furthest unlocked level of a save slot.
type Progress struct {
	World int
	Level int
}

// FirstProgress is the progress of a fresh save: only 1-1 is open.
var FirstProgress = Progress{World: 1, Level: 1}

func (p Progress) String() string {
	return fmt.Sprintf("%d-%d", p.World, p.Level)
}

// Less orders progress by world, then level.
func (p Progress) Less(o Progress) bool {
	if p.World != o.World {
		return p.World < o.World
	}
	return p.Level < o.Level
}

// Of returns the campaign position of a level.
func Of(l levels.Level) Progress {
	return Progress{World: l.World, Level: l.Number}
}

// Completion is one won attempt, written to the completion log.
type Completion struct {
	RunID      uuid.UUID
	LevelID    string
	World      int
	Level      int
	Moves      int
	Undos      int
	ShiftsUsed int
}

// Saver persists campaign progress and the completion log.
type Saver interface {
	LoadProgress() (Progress, error)
	SaveProgress(p Progress) error
	RecordCompletion(c Completion) error
}

// Unlocked reports whether lvl may be played with the given progress.
func Unlocked(p Progress, lvl levels.Level) bool {
	return !p.Less(Of(lvl))
}

// Advance returns the progress after winning won. Only a win on the
// furthest unlocked level, or on the first level of the following world,
// moves the save forward; replays of older levels leave it untouched.
// Winning the last level moves progress past the end of the campaign.
func Advance(saved Progress, won levels.Level, campaign []levels.Level) (Progress, bool) {
	cur := Of(won)
	if cur != saved && !(cur.World == saved.World+1 && cur.Level == 1) {
		return saved, false
	}
	if next, ok := NextLevel(campaign, won.ID); ok {
		return Of(next), true
	}
	return Progress{World: cur.World + 1, Level: 1}, true
}

// NextLevel returns the level that follows id in campaign order.
func NextLevel(campaign []levels.Level, id string) (levels.Level, bool) {
	for i, l := range campaign {
		if l.ID == id && i+1 < len(campaign) {
			return campaign[i+1], true
		}
	}
	return levels.Level{}, false
}

// Complete reports whether every level of the campaign is unlocked and the
// last one has been won.
func Complete(p Progress, campaign []levels.Level) bool {
	if len(campaign) == 0 {
		return false
	}
	return Of(campaign[len(campaign)-1]).Less(p)
}

// memorySaver keeps progress in memory when no store is configured.
type memorySaver struct {
	progress    Progress
	completions []Completion
}

// NewMemorySaver returns a Saver that forgets everything on exit.
func NewMemorySaver() Saver {
	return &memorySaver{progress: FirstProgress}
}

func (m *memorySaver) LoadProgress() (Progress, error) { return m.progress, nil }

func (m *memorySaver) SaveProgress(p Progress) error {
	m.progress = p
	return nil
}

func (m *memorySaver) RecordCompletion(c Completion) error {
	m.completions = append(m.completions, c)
	return nil
}
