// Package config provides YAML-based configuration loading for Cogito.
package config

// CogitoConfig contains all tunable settings of the game.
type CogitoConfig struct {
	Movement   MovementConfig             `yaml:"movement"`
	Grid       GridConfig                 `yaml:"grid"`
	Stamina    StaminaConfig              `yaml:"stamina"`
	Animations map[string]AnimationConfig `yaml:"animations"`
	Levels     LevelsConfig               `yaml:"levels"`
	Storage    StorageConfig              `yaml:"storage"`
}

// MovementConfig defines how the actor travels between cells.
type MovementConfig struct {
	CellsPerSecond float64 `yaml:"cells_per_second"`
	ArrivalEpsilon float64 `yaml:"arrival_epsilon"` // snap distance in cells
	HoldToMove     bool    `yaml:"hold_to_move"`
	HoldTicks      int     `yaml:"hold_ticks"` // how long a key counts as held after its last repeat
}

// GridConfig defines the board size used when a level leaves it out.
type GridConfig struct {
	Width     int `yaml:"width"`
	Height    int `yaml:"height"`
	CellWidth int `yaml:"cell_width"` // terminal columns per tile
}

// StaminaConfig defines the submersion budget.
type StaminaConfig struct {
	Max   int  `yaml:"max"`
	Floor int  `yaml:"floor"`
	Drown bool `yaml:"drown"`
}

// AnimationConfig defines how long one named animation plays at speed 1.
type AnimationConfig struct {
	Ticks int `yaml:"ticks"`
}

// LevelsConfig points at level data on disk. Empty values use the
// built-in campaign and tileset.
type LevelsConfig struct {
	Dir     string `yaml:"dir"`
	Tileset string `yaml:"tileset"`
}

// StorageConfig defines where progress is saved.
type StorageConfig struct {
	DB   string `yaml:"db"`
	Slot string `yaml:"slot"`
}

// AnimationTicks returns the configured length of an animation, or 0 when
// it loops until replaced.
func (c CogitoConfig) AnimationTicks(name string) int {
	return c.Animations[name].Ticks
}
