package display

import (
	"testing"

	"github.com/pixil98/go-testutil"

	"github.com/mudstone/typequest/internal/world"
)

func TestSurroundings(t *testing.T) {
	tests := map[string]struct {
		description string
		others      []world.Entity
		expOut      string
	}{
		"empty place": {
			description: "You are standing in an empty field.",
			expOut:      "You are standing in an empty field.",
		},
		"with occupants": {
			description: "A dusty road.",
			others: []world.Entity{
				{Name: "Bob", Type: world.EntityTypePlayer},
				{Name: "grue", Type: world.EntityTypeMonster},
			},
			expOut: "A dusty road.\n\nYou see:\n* Bob (player)\n* grue (monster)",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "output", Surroundings(tt.description, tt.others), tt.expOut)
		})
	}
}

func TestExpandTemplate(t *testing.T) {
	out, err := ExpandTemplate("Welcome to TypeQuest, {{ .Name }}!", struct{ Name string }{"Ann"})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	testutil.AssertEqual(t, "output", out, "Welcome to TypeQuest, Ann!")

	if _, err := ExpandTemplate("{{ .Name ", nil); err == nil {
		t.Fatal("expected parse error")
	}
}
