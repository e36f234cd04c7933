// Package world holds the data model of a generated layout: rooms, their
// openings, the edges joining openings and the corridors laid along them.
package world

import (
	"fmt"
	"strings"

	"github.com/samdwyer/dungeongrow/internal/geom"
)

// Direction is one of the four cardinal directions an opening can face.
type Direction int

const (
	North Direction = iota // +Z
	East                   // +X
	South                  // -Z
	West                   // -X
)

// Directions lists the cardinal directions in a fixed order.
var Directions = [4]Direction{North, East, South, West}

// Opposite returns the direction facing the other way.
func (d Direction) Opposite() Direction {
	return (d + 2) % 4
}

// Vector returns the unit ground-plane vector for the direction.
func (d Direction) Vector() geom.Vec3 {
	switch d {
	case North:
		return geom.Vec3{Z: 1}
	case East:
		return geom.Vec3{X: 1}
	case South:
		return geom.Vec3{Z: -1}
	case West:
		return geom.Vec3{X: -1}
	default:
		return geom.Vec3{}
	}
}

// Valid reports whether d is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d >= North && d <= West
}

// String returns a human-readable direction name.
func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case East:
		return "east"
	case South:
		return "south"
	case West:
		return "west"
	default:
		return "unknown"
	}
}

// ParseDirection parses a direction name or its first letter.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "north", "n":
		return North, nil
	case "east", "e":
		return East, nil
	case "south", "s":
		return South, nil
	case "west", "w":
		return West, nil
	default:
		return 0, fmt.Errorf("unknown direction %q", s)
	}
}
