package config

import (
	"fmt"
	"strings"
)

// Difficulty selects the launch geometry and pacing profile.
type Difficulty string

const (
	Easy   Difficulty = "EASY"
	Normal Difficulty = "NORMAL"
	Hard   Difficulty = "HARD"
)

// Difficulties lists the supported profiles in menu order.
var Difficulties = []Difficulty{Easy, Normal, Hard}

// ParseDifficulty accepts any casing of a known difficulty name.
func ParseDifficulty(s string) (Difficulty, error) {
	d := Difficulty(strings.ToUpper(strings.TrimSpace(s)))
	switch d {
	case Easy, Normal, Hard:
		return d, nil
	case "":
		return Normal, nil
	}
	return "", fmt.Errorf("unknown difficulty %q", s)
}

// Spread is the fraction of the world width launches may come from,
// centered horizontally.
func (d Difficulty) Spread() float64 {
	switch d {
	case Easy:
		return 0.5
	case Hard:
		return 1.0
	default:
		return 0.8
	}
}

// DriftRange is the width of the uniform horizontal velocity range,
// so vx falls in [-DriftRange/2, DriftRange/2].
func (d Difficulty) DriftRange() float64 {
	switch d {
	case Easy:
		return 0.5
	case Hard:
		return 2
	default:
		return 1
	}
}

// LaunchModifier scales the base launch interval. Values above one launch
// less often.
func (d Difficulty) LaunchModifier() float64 {
	switch d {
	case Easy:
		return 1.5
	case Hard:
		return 0.75
	default:
		return 1
	}
}

// Next cycles to the following difficulty, wrapping around.
func (d Difficulty) Next() Difficulty {
	for i, v := range Difficulties {
		if v == d {
			return Difficulties[(i+1)%len(Difficulties)]
		}
	}
	return Normal
}
