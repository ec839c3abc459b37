package config

import (
	_ "embed"
)

//go:embed defaults/cogito.yaml
var defaultCogitoYAML []byte

// DefaultCogitoConfig returns the default Cogito configuration.
func DefaultCogitoConfig() CogitoConfig {
	return CogitoConfig{
		Movement: MovementConfig{
			CellsPerSecond: 4.6875,
			ArrivalEpsilon: 0.0625,
			HoldToMove:     true,
			HoldTicks:      30,
		},
		Grid: GridConfig{
			Width:     20,
			Height:    11,
			CellWidth: 2,
		},
		Stamina: StaminaConfig{
			Max:   3,
			Floor: 0,
		},
		Animations: map[string]AnimationConfig{
			"Fall":          {Ticks: 30},
			"Teleport":      {Ticks: 20},
			"ParadigmShift": {Ticks: 24},
			"Drown":         {Ticks: 40},
			"FallingSand":   {Ticks: 45},
		},
		Levels: LevelsConfig{},
		Storage: StorageConfig{
			DB:   "~/.cogito/cogito.db",
			Slot: "default",
		},
	}
}

// GetDefaultYAML returns the embedded default YAML.
func GetDefaultYAML() []byte {
	return defaultCogitoYAML
}

// fillDefaults replaces unset values with the defaults, so a user file
// only needs the keys it changes.
func fillDefaults(cfg *CogitoConfig) {
	def := DefaultCogitoConfig()

	if cfg.Movement.CellsPerSecond <= 0 {
		cfg.Movement.CellsPerSecond = def.Movement.CellsPerSecond
	}
	if cfg.Movement.ArrivalEpsilon <= 0 {
		cfg.Movement.ArrivalEpsilon = def.Movement.ArrivalEpsilon
	}
	if cfg.Movement.HoldTicks <= 0 {
		cfg.Movement.HoldTicks = def.Movement.HoldTicks
	}
	if cfg.Grid.Width <= 0 {
		cfg.Grid.Width = def.Grid.Width
	}
	if cfg.Grid.Height <= 0 {
		cfg.Grid.Height = def.Grid.Height
	}
	if cfg.Grid.CellWidth <= 0 {
		cfg.Grid.CellWidth = def.Grid.CellWidth
	}
	if cfg.Stamina.Max <= 0 {
		cfg.Stamina.Max = def.Stamina.Max
	}
	if cfg.Animations == nil {
		cfg.Animations = make(map[string]AnimationConfig)
	}
	for name, a := range def.Animations {
		if _, ok := cfg.Animations[name]; !ok {
			cfg.Animations[name] = a
		}
	}
	if cfg.Storage.DB == "" {
		cfg.Storage.DB = def.Storage.DB
	}
	if cfg.Storage.Slot == "" {
		cfg.Storage.Slot = def.Storage.Slot
	}
}
