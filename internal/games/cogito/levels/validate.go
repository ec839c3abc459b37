package levels

import (
	"fmt"

	"github.com/vovakirdan/cogito/internal/games/cogito/tile"
)

// ValidationError contains details about validation failure.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Validate checks a level against a tileset.
// Checks:
//   - metadata is present
//   - every glyph resolves and there is exactly one start
//   - the start cell is standable
//   - there is exactly one goal
//   - every teleporter graphic appears at least twice
//
// The engine tolerates the goal and teleporter problems at runtime, but a
// shipped level should not have them.
func Validate(l Level, ts *Tileset) error {
	if l.ID == "" {
		return ValidationError{Code: "NO_ID", Message: "level has no id"}
	}
	if l.Shifts < 0 {
		return ValidationError{Code: "BAD_SHIFTS", Message: fmt.Sprintf("negative shift budget %d", l.Shifts)}
	}

	g, start, err := l.Build(ts)
	if err != nil {
		return err
	}

	at := g.Sample(start)
	if at.Obstacle.Placed && at.Obstacle.Type.Blocks() {
		return ValidationError{
			Code:    "START_BLOCKED",
			Message: fmt.Sprintf("start %v is on a %v", start, at.Obstacle.Type),
		}
	}
	if at.Ground.IsVoid() {
		return ValidationError{
			Code:    "START_ON_VOID",
			Message: fmt.Sprintf("start %v has no ground", start),
		}
	}

	goals := g.Count(tile.Ground, tile.GoalOff) + g.Count(tile.Ground, tile.GoalOn)
	switch {
	case goals == 0:
		return ValidationError{Code: "NO_GOAL", Message: "level has no goal"}
	case goals > 1:
		return ValidationError{Code: "MULTIPLE_GOALS", Message: fmt.Sprintf("%d goals, expected one", goals)}
	}

	for _, c := range g.FindAllByType(tile.Ground, tile.Teleporter) {
		a := g.Get(tile.Ground, c).Visual.Atlas
		if len(g.FindAllByVisual(tile.Ground, a)) < 2 {
			return ValidationError{
				Code:    "UNPAIRED_TELEPORTER",
				Message: fmt.Sprintf("teleporter at %v has no sibling", c),
			}
		}
	}

	return nil
}
