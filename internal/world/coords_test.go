package world

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestParseDirection(t *testing.T) {
	tests := map[string]struct {
		input  string
		expDir Direction
		expOk  bool
	}{
		"north":            {"north", North, true},
		"south":            {"south", South, true},
		"east":             {"east", East, true},
		"west":             {"west", West, true},
		"mixed case":       {"NoRtH", North, true},
		"upper case":       {"WEST", West, true},
		"diagonal":         {"northeast", "", false},
		"up":               {"up", "", false},
		"empty":            {"", "", false},
		"leading garbage":  {" north", "", false},
		"numeric nonsense": {"42", "", false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir, ok := ParseDirection(tt.input)
			testutil.AssertEqual(t, "ok", ok, tt.expOk)
			testutil.AssertEqual(t, "direction", dir, tt.expDir)
		})
	}
}

func TestDirectionStep(t *testing.T) {
	from := Coordinate{X: 3, Y: -2}

	tests := map[string]struct {
		dir Direction
		exp Coordinate
	}{
		"north decreases y": {North, Coordinate{X: 3, Y: -3}},
		"south increases y": {South, Coordinate{X: 3, Y: -1}},
		"east increases x":  {East, Coordinate{X: 4, Y: -2}},
		"west decreases x":  {West, Coordinate{X: 2, Y: -2}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "coordinate", tt.dir.Step(from), tt.exp)
		})
	}
}

func TestDirectionOpposite(t *testing.T) {
	testutil.AssertEqual(t, "north", North.Opposite(), South)
	testutil.AssertEqual(t, "south", South.Opposite(), North)
	testutil.AssertEqual(t, "east", East.Opposite(), West)
	testutil.AssertEqual(t, "west", West.Opposite(), East)
}

func TestCoordinateKey(t *testing.T) {
	testutil.AssertEqual(t, "origin", Origin.Key(), "0,0")
	testutil.AssertEqual(t, "negative", Coordinate{X: -1, Y: 7}.Key(), "-1,7")
}
