package tile

import "strings"

// Type is the semantic kind of a placed tile.
type Type int

const (
	None Type = iota
	Rock
	Ice
	Conveyor
	EvilConveyor
	Teleporter
	Sand
	Water
	Void
	GoalOff
	GoalOn
	Cog
	CogCrystal
	ReinforcedCogCrystal
	DeinforcedCogCrystal
	Candy
	Balloon
	LeverLeft
	LeverRight
)

var typeNames = [...]string{
	None:                 "None",
	Rock:                 "Rock",
	Ice:                  "Ice",
	Conveyor:             "Conveyor",
	EvilConveyor:         "EvilConveyor",
	Teleporter:           "Teleporter",
	Sand:                 "Sand",
	Water:                "Water",
	Void:                 "Void",
	GoalOff:              "GoalOff",
	GoalOn:               "GoalOn",
	Cog:                  "Cog",
	CogCrystal:           "CogCrystal",
	ReinforcedCogCrystal: "ReinforcedCogCrystal",
	DeinforcedCogCrystal: "DeinforcedCogCrystal",
	Candy:                "Candy",
	Balloon:              "Balloon",
	LeverLeft:            "LeverLeft",
	LeverRight:           "LeverRight",
}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Unknown"
	}
	return typeNames[t]
}

// ParseType maps a type name (case-insensitive) to its Type.
// The empty string parses as None.
func ParseType(s string) (Type, bool) {
	if s == "" {
		return None, true
	}
	for i, name := range typeNames {
		if strings.EqualFold(name, s) {
			return Type(i), true
		}
	}
	return None, false
}

// Blocks reports whether an obstacle of this type stops the actor.
func (t Type) Blocks() bool {
	switch t {
	case Rock, CogCrystal, ReinforcedCogCrystal, DeinforcedCogCrystal, LeverLeft, LeverRight:
		return true
	}
	return false
}

// IsConveyor reports whether the ground carries the actor.
func (t Type) IsConveyor() bool {
	return t == Conveyor || t == EvilConveyor
}

// IsCrystal reports whether the obstacle is any crystal tier.
func (t Type) IsCrystal() bool {
	return t == CogCrystal || t == ReinforcedCogCrystal || t == DeinforcedCogCrystal
}

// IsLever reports whether the obstacle is a lever in either position.
func (t Type) IsLever() bool {
	return t == LeverLeft || t == LeverRight
}

// Collectible reports whether the actor picks the obstacle up on arrival.
func (t Type) Collectible() bool {
	return t == Cog || t == Candy || t == Balloon
}

// IsGoal reports whether the ground is a goal in either state.
func (t Type) IsGoal() bool {
	return t == GoalOff || t == GoalOn
}

// ConvertsOrthogonally reports whether a paradigm shift turns an orthogonal
// neighbour of this type into a cog.
func (t Type) ConvertsOrthogonally() bool {
	return t.IsCrystal()
}

// ConvertsDiagonally reports whether a paradigm shift turns a diagonal
// neighbour of this type into a cog. Reinforced crystals resist diagonals.
func (t Type) ConvertsDiagonally() bool {
	return t == CogCrystal || t == DeinforcedCogCrystal
}
