package world

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/pixil98/go-testutil"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "world.json"))
}

func TestCreateEntity_NonPlayerAlwaysFresh(t *testing.T) {
	s := newTestStore(t)

	a := s.CreateEntity(Origin, EntityTypeMonster, "grue")
	b := s.CreateEntity(Origin, EntityTypeMonster, "grue")

	if a.Id == b.Id {
		t.Errorf("expected distinct ids, both were %s", a.Id)
	}
	testutil.AssertEqual(t, "registered a", s.GetEntity(a.Id), a)
	testutil.AssertEqual(t, "registered b", s.GetEntity(b.Id), b)
}

func TestCreateEntity_PlayerRespawnRecord(t *testing.T) {
	s := newTestStore(t)

	first := s.CreateEntity(Origin, EntityTypePlayer, "Ann")
	first.Coordinates = Coordinate{X: 1, Y: 0}

	if !s.DestroyEntity(first.Id) {
		t.Fatal("expected destroy to succeed")
	}
	if s.GetEntity(first.Id) != nil {
		t.Fatal("expected entity gone from live map")
	}

	second := s.CreateEntity(Origin, EntityTypePlayer, "Ann")
	testutil.AssertEqual(t, "id preserved", second.Id, first.Id)
	testutil.AssertEqual(t, "resumes at last coordinates", second.Coordinates, Coordinate{X: 1, Y: 0})

	// The respawn record must be independent of the live entity: moving the
	// live entity may not retroactively change the saved spot.
	second.Coordinates = Coordinate{X: 9, Y: 9}
	if !s.DestroyEntity(second.Id) {
		t.Fatal("expected destroy to succeed")
	}
	third := s.CreateEntity(Origin, EntityTypePlayer, "Ann")
	testutil.AssertEqual(t, "record updated on destroy", third.Coordinates, Coordinate{X: 9, Y: 9})
}

func TestCreateEntity_RespawnCopyDoesNotAliasRecord(t *testing.T) {
	s := newTestStore(t)

	first := s.CreateEntity(Origin, EntityTypePlayer, "Bob")
	if !s.DestroyEntity(first.Id) {
		t.Fatal("expected destroy to succeed")
	}

	live := s.CreateEntity(Origin, EntityTypePlayer, "Bob")
	live.Coordinates = Coordinate{X: 5, Y: 5}

	// A second lookup before destroy must still see the recorded spot, not
	// the live mutation.
	rec := s.state.PlayerEntities["Bob"]
	testutil.AssertEqual(t, "record coordinates", rec.Coordinates, Origin)
}

func TestDestroyEntity_Absent(t *testing.T) {
	s := newTestStore(t)
	testutil.AssertEqual(t, "absent destroy", s.DestroyEntity("nope"), false)
}

func TestDestroyPlace(t *testing.T) {
	s := newTestStore(t)
	coord := Coordinate{X: 2, Y: 3}
	s.CreatePlace(coord, "a road", "a long road")

	testutil.AssertEqual(t, "existing", s.DestroyPlace(coord), true)
	testutil.AssertEqual(t, "already gone", s.DestroyPlace(coord), false)
	if s.GetPlace(2, 3) != nil {
		t.Error("expected place gone")
	}
}

func TestUpdateDescription(t *testing.T) {
	s := newTestStore(t)
	s.CreatePlace(Origin, "before", "detailed")

	s.UpdateDescription(0, 0, "after")
	testutil.AssertEqual(t, "updated", s.GetPlace(0, 0).Description, "after")

	// Absent place is a no-op, not a panic
	s.UpdateDescription(8, 8, "nothing")
}

func TestCreateUser(t *testing.T) {
	s := newTestStore(t)

	u, err := s.CreateUser("ann", "hash")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "username", u.Username, "ann")
	testutil.AssertEqual(t, "lookup", s.GetUser("ann"), u)

	_, err = s.CreateUser("ann", "other")
	testutil.AssertEqual(t, "duplicate", err, ErrUserExists, cmpopts.EquateErrors())

	if s.GetUser("bob") != nil {
		t.Error("expected nil for unknown user")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	s := NewStore(path)

	field := s.CreatePlace(Origin, "field", "empty field")
	road := s.CreatePlace(Coordinate{X: 1, Y: 0}, "road", "long road")
	road.BlockedDirections = map[string]string{"east": "A wall of thorns blocks the way."}

	player := s.CreateEntity(Origin, EntityTypePlayer, "Ann")
	field.AddEntity(player.Id)
	grue := s.CreateEntity(Coordinate{X: 1, Y: 0}, EntityTypeMonster, "grue")
	road.AddEntity(grue.Id)
	if _, err := s.CreateUser("ann", "hash"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	loaded := NewStore(path)
	if err := loaded.Load(); err != nil {
		t.Fatalf("load failed: %v", err)
	}

	// Players are purged on load, everywhere
	if loaded.GetEntity(player.Id) != nil {
		t.Error("expected player purged from live map")
	}
	testutil.AssertEqual(t, "field occupants", len(loaded.GetPlace(0, 0).EntityIds), 0)

	// Their respawn records survive
	rec := loaded.state.PlayerEntities["Ann"]
	if rec == nil {
		t.Fatal("expected respawn record to survive reload")
	}
	testutil.AssertEqual(t, "record id", rec.Id, player.Id)

	// Everything else round-trips field for field
	gotRoad := loaded.GetPlace(1, 0)
	testutil.AssertEqual(t, "road description", gotRoad.Description, "road")
	testutil.AssertEqual(t, "road detail", gotRoad.DetailedDescription, "long road")
	testutil.AssertEqual(t, "road occupants", gotRoad.EntityIds[0], grue.Id)
	testutil.AssertEqual(t, "blocked east", gotRoad.BlockedDirections["east"], "A wall of thorns blocks the way.")

	gotGrue := loaded.GetEntity(grue.Id)
	if gotGrue == nil {
		t.Fatal("expected monster to survive reload")
	}
	testutil.AssertEqual(t, "grue name", gotGrue.Name, "grue")
	testutil.AssertEqual(t, "grue type", gotGrue.Type, EntityTypeMonster)
	testutil.AssertEqual(t, "grue coordinates", gotGrue.Coordinates, Coordinate{X: 1, Y: 0})

	user := loaded.GetUser("ann")
	if user == nil {
		t.Fatal("expected user to survive reload")
	}
	testutil.AssertEqual(t, "password hash", user.Password, "hash")
}

func TestLoad_NoSnapshot(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "missing.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("expected missing snapshot to be fine, got %v", err)
	}
}

func TestSave_LeavesNoTempFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "world.json")
	s := NewStore(path)
	s.CreatePlace(Origin, "field", "empty field")

	if err := s.Save(); err != nil {
		t.Fatalf("save failed: %v", err)
	}

	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected snapshot file: %v", err)
	}
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Error("expected temp file to be renamed away")
	}
}

func TestLoad_RejectsInvalidSnapshot(t *testing.T) {
	path := filepath.Join(t.TempDir(), "world.json")
	// A place missing its description fails validation.
	bad := `{"places":{"0,0":{"coordinates":{"x":0,"y":0},"description":"","detailed_description":"","entity_ids":[]}}}`
	if err := os.WriteFile(path, []byte(bad), 0644); err != nil {
		t.Fatal(err)
	}

	s := NewStore(path)
	err := s.Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "validating snapshot") {
		t.Errorf("unexpected error: %v", err)
	}
}
