// Package builder is the world-building command surface. It is a thin
// client of the grid manager's place-edit API and never touches the store or
// the subscription registry directly.
package builder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mudstone/typequest/internal/world"
)

const helpText = `The builder can perform the following functions:
/build place <x> <y> <description> | <detailed description>
/build destroy <x> <y>
/build block <x> <y> <direction> <reason>
/build unblock <x> <y> <direction>
/build help`

// PlaceEditor is the slice of the grid manager the builder is allowed to use.
type PlaceEditor interface {
	SavePlace(coord world.Coordinate, desc, detailedDesc string)
	DestroyPlace(coord world.Coordinate) string
	GetPlace(x, y int) (world.Place, bool)
	SetBlockedDirection(coord world.Coordinate, direction, reason string) bool
	ClearBlockedDirection(coord world.Coordinate, direction string) bool
}

type Builder struct {
	grid PlaceEditor
}

func NewBuilder(grid PlaceEditor) *Builder {
	return &Builder{grid: grid}
}

// Handle executes one builder command and returns the text to show the
// invoking user. Invalid input comes back as usage help, never an error.
func (b *Builder) Handle(args []string) string {
	if len(args) == 0 {
		return helpText
	}

	switch strings.ToLower(args[0]) {
	case "help":
		return helpText
	case "place":
		return b.place(args[1:])
	case "destroy":
		return b.destroy(args[1:])
	case "block":
		return b.block(args[1:])
	case "unblock":
		return b.unblock(args[1:])
	default:
		return fmt.Sprintf("I don't know how to %q. Try '/build help'.", args[0])
	}
}

func (b *Builder) place(args []string) string {
	coord, rest, ok := parseCoord(args)
	if !ok || len(rest) == 0 {
		return "Usage: /build place <x> <y> <description> | <detailed description>"
	}

	desc := strings.Join(rest, " ")
	detailed := desc
	if i := strings.Index(desc, "|"); i >= 0 {
		detailed = strings.TrimSpace(desc[i+1:])
		desc = strings.TrimSpace(desc[:i])
	}
	if desc == "" {
		return "Usage: /build place <x> <y> <description> | <detailed description>"
	}

	b.grid.SavePlace(coord, desc, detailed)
	return fmt.Sprintf("Saved place at %s.", coord)
}

func (b *Builder) destroy(args []string) string {
	coord, rest, ok := parseCoord(args)
	if !ok || len(rest) > 0 {
		return "Usage: /build destroy <x> <y>"
	}
	return b.grid.DestroyPlace(coord)
}

func (b *Builder) block(args []string) string {
	coord, rest, ok := parseCoord(args)
	if !ok || len(rest) < 2 {
		return "Usage: /build block <x> <y> <direction> <reason>"
	}
	direction := rest[0]
	reason := strings.Join(rest[1:], " ")

	if _, found := b.grid.GetPlace(coord.X, coord.Y); !found {
		return fmt.Sprintf("There is no place at %s.", coord)
	}
	if !b.grid.SetBlockedDirection(coord, direction, reason) {
		return fmt.Sprintf("%q is not a direction I know.", direction)
	}
	return fmt.Sprintf("Blocked %s at %s.", strings.ToLower(direction), coord)
}

func (b *Builder) unblock(args []string) string {
	coord, rest, ok := parseCoord(args)
	if !ok || len(rest) != 1 {
		return "Usage: /build unblock <x> <y> <direction>"
	}
	direction := rest[0]

	if _, found := b.grid.GetPlace(coord.X, coord.Y); !found {
		return fmt.Sprintf("There is no place at %s.", coord)
	}
	if !b.grid.ClearBlockedDirection(coord, direction) {
		return fmt.Sprintf("%q is not a direction I know.", direction)
	}
	return fmt.Sprintf("Unblocked %s at %s.", strings.ToLower(direction), coord)
}

func parseCoord(args []string) (world.Coordinate, []string, bool) {
	if len(args) < 2 {
		return world.Coordinate{}, nil, false
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return world.Coordinate{}, nil, false
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return world.Coordinate{}, nil, false
	}
	return world.Coordinate{X: x, Y: y}, args[2:], true
}
