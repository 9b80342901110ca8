package world

import (
	"fmt"
	"strings"
)

// Coordinate identifies a place on the world grid. Places are keyed by the
// literal (x, y) pair; equality is by value.
type Coordinate struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Key returns the string form used to index places and subscriptions.
func (c Coordinate) Key() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%d, %d", c.X, c.Y)
}

// Origin is the default spawn coordinate. Init guarantees a place exists here.
var Origin = Coordinate{X: 0, Y: 0}

// Direction is one of the four cardinal movement directions.
type Direction string

const (
	North Direction = "north"
	South Direction = "south"
	East  Direction = "east"
	West  Direction = "west"
)

// ParseDirection parses a direction token case-insensitively.
// Returns false for anything that is not a cardinal direction.
func ParseDirection(s string) (Direction, bool) {
	switch Direction(strings.ToLower(s)) {
	case North:
		return North, true
	case South:
		return South, true
	case East:
		return East, true
	case West:
		return West, true
	default:
		return "", false
	}
}

// Step returns the coordinate one unit away in the given direction.
// North decreases y, south increases y.
func (d Direction) Step(from Coordinate) Coordinate {
	switch d {
	case North:
		return Coordinate{X: from.X, Y: from.Y - 1}
	case South:
		return Coordinate{X: from.X, Y: from.Y + 1}
	case East:
		return Coordinate{X: from.X + 1, Y: from.Y}
	case West:
		return Coordinate{X: from.X - 1, Y: from.Y}
	default:
		return from
	}
}

// Opposite returns the direction an arriving entity came from.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	case West:
		return East
	default:
		return d
	}
}

func (d Direction) String() string {
	return string(d)
}
