package builder

import (
	"fmt"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/mudstone/typequest/internal/world"
)

type fakeEditor struct {
	places  map[string]*world.Place
	lastOp  string
	blocked map[string]string
}

func newFakeEditor() *fakeEditor {
	return &fakeEditor{
		places:  map[string]*world.Place{},
		blocked: map[string]string{},
	}
}

func (f *fakeEditor) SavePlace(coord world.Coordinate, desc, detailedDesc string) {
	f.lastOp = fmt.Sprintf("save %s %q %q", coord.Key(), desc, detailedDesc)
	f.places[coord.Key()] = &world.Place{
		Coordinates:         coord,
		Description:         desc,
		DetailedDescription: detailedDesc,
	}
}

func (f *fakeEditor) DestroyPlace(coord world.Coordinate) string {
	p, ok := f.places[coord.Key()]
	if !ok {
		return fmt.Sprintf("There is nothing to destroy at %s.", coord)
	}
	if len(p.EntityIds) > 0 {
		return "The place is not empty of entities."
	}
	delete(f.places, coord.Key())
	return fmt.Sprintf("Destroyed place at %s.", coord)
}

func (f *fakeEditor) GetPlace(x, y int) (world.Place, bool) {
	p, ok := f.places[world.Coordinate{X: x, Y: y}.Key()]
	if !ok {
		return world.Place{}, false
	}
	return *p, true
}

func (f *fakeEditor) SetBlockedDirection(coord world.Coordinate, direction, reason string) bool {
	dir, ok := world.ParseDirection(direction)
	if !ok {
		return false
	}
	f.blocked[coord.Key()+"/"+dir.String()] = reason
	return true
}

func (f *fakeEditor) ClearBlockedDirection(coord world.Coordinate, direction string) bool {
	dir, ok := world.ParseDirection(direction)
	if !ok {
		return false
	}
	delete(f.blocked, coord.Key()+"/"+dir.String())
	return true
}

func TestHandle(t *testing.T) {
	tests := map[string]struct {
		setup  func(f *fakeEditor)
		args   []string
		expOut string
	}{
		"no args shows help": {
			args:   nil,
			expOut: helpText,
		},
		"help": {
			args:   []string{"help"},
			expOut: helpText,
		},
		"unknown verb": {
			args:   []string{"paint", "0", "0"},
			expOut: `I don't know how to "paint". Try '/build help'.`,
		},
		"place": {
			args:   []string{"place", "2", "-1", "A", "dusty", "road."},
			expOut: "Saved place at 2, -1.",
		},
		"place with detailed description": {
			args:   []string{"place", "0", "0", "A road.", "|", "A long dusty road."},
			expOut: "Saved place at 0, 0.",
		},
		"place missing description": {
			args:   []string{"place", "0", "0"},
			expOut: "Usage: /build place <x> <y> <description> | <detailed description>",
		},
		"place bad coordinate": {
			args:   []string{"place", "zero", "0", "A road."},
			expOut: "Usage: /build place <x> <y> <description> | <detailed description>",
		},
		"destroy missing place": {
			args:   []string{"destroy", "4", "4"},
			expOut: "There is nothing to destroy at 4, 4.",
		},
		"destroy": {
			setup: func(f *fakeEditor) {
				f.SavePlace(world.Coordinate{X: 4, Y: 4}, "x", "x")
			},
			args:   []string{"destroy", "4", "4"},
			expOut: "Destroyed place at 4, 4.",
		},
		"destroy extra args": {
			args:   []string{"destroy", "4", "4", "please"},
			expOut: "Usage: /build destroy <x> <y>",
		},
		"block": {
			setup: func(f *fakeEditor) {
				f.SavePlace(world.Coordinate{}, "x", "x")
			},
			args:   []string{"block", "0", "0", "North", "A", "wall", "of", "ice."},
			expOut: "Blocked north at 0, 0.",
		},
		"block missing place": {
			args:   []string{"block", "9", "9", "north", "A wall."},
			expOut: "There is no place at 9, 9.",
		},
		"block bad direction": {
			setup: func(f *fakeEditor) {
				f.SavePlace(world.Coordinate{}, "x", "x")
			},
			args:   []string{"block", "0", "0", "sideways", "A wall."},
			expOut: `"sideways" is not a direction I know.`,
		},
		"block missing reason": {
			args:   []string{"block", "0", "0", "north"},
			expOut: "Usage: /build block <x> <y> <direction> <reason>",
		},
		"unblock": {
			setup: func(f *fakeEditor) {
				f.SavePlace(world.Coordinate{}, "x", "x")
				f.SetBlockedDirection(world.Coordinate{}, "north", "A wall.")
			},
			args:   []string{"unblock", "0", "0", "north"},
			expOut: "Unblocked north at 0, 0.",
		},
		"unblock missing place": {
			args:   []string{"unblock", "9", "9", "north"},
			expOut: "There is no place at 9, 9.",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			f := newFakeEditor()
			if tt.setup != nil {
				tt.setup(f)
			}
			b := NewBuilder(f)

			testutil.AssertEqual(t, "output", b.Handle(tt.args), tt.expOut)
		})
	}
}

func TestHandle_PlaceSplitsDescriptions(t *testing.T) {
	f := newFakeEditor()
	b := NewBuilder(f)

	out := b.Handle([]string{"place", "1", "1", "A road.", "|", "A long dusty road."})
	testutil.AssertEqual(t, "output", out, "Saved place at 1, 1.")
	testutil.AssertEqual(t, "recorded", f.lastOp, `save 1,1 "A road." "A long dusty road."`)
}

func TestHandle_BlockReasonJoined(t *testing.T) {
	f := newFakeEditor()
	f.SavePlace(world.Coordinate{}, "x", "x")
	b := NewBuilder(f)

	b.Handle([]string{"block", "0", "0", "east", "A", "river", "runs", "here."})
	reason := f.blocked["0,0/east"]
	if !strings.Contains(reason, "A river runs here.") {
		t.Errorf("reason not joined: %q", reason)
	}
}
