package core

// Game is the interface the terminal platform drives.
// Implementations contain pure logic; the platform handles input mapping,
// timing and display.
type Game interface {
	// ID returns a stable identifier used for storage keys and screenshots.
	ID() string

	// Title returns a human-readable name for display.
	Title() string

	// Reset initializes or reloads the game state.
	Reset(cfg RuntimeConfig)

	// Step advances the simulation by one fixed tick.
	Step(in InputFrame) StepResult

	// Render draws the current state into the provided screen buffer.
	Render(dst *Screen)

	// State returns the current game state.
	State() GameState
}
