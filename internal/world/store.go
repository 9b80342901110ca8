package world

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// worldState is the snapshot document. It is serialized whole; there is no
// incremental persistence.
type worldState struct {
	Places         map[string]*Place  `json:"places"`
	EntitiesById   map[string]*Entity `json:"entities_by_id"`
	PlayerEntities map[string]*Entity `json:"player_entities"`
	Users          map[string]*User   `json:"users"`
}

func newWorldState() worldState {
	return worldState{
		Places:         map[string]*Place{},
		EntitiesById:   map[string]*Entity{},
		PlayerEntities: map[string]*Entity{},
		Users:          map[string]*User{},
	}
}

// Store owns all durable and in-memory world data: places by coordinate key,
// entities by id, player respawn records by name, and user credentials.
// It provides create/read/update/delete primitives only; movement and
// notification logic live in the GridManager, which also provides the
// locking. Store methods themselves are not safe for concurrent use.
type Store struct {
	path  string
	state worldState
}

// NewStore creates an empty store persisting to path. Call Load before use.
func NewStore(path string) *Store {
	return &Store{
		path:  path,
		state: newWorldState(),
	}
}

// Load reads the snapshot file if one exists, then purges all player entities
// from the live entity map and from every place's occupant list. Players
// never survive a restart as phantom occupants; they reappear on reconnect
// via their respawn records.
func (s *Store) Load() error {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading snapshot: %w", err)
	}

	state := newWorldState()
	if err := json.Unmarshal(data, &state); err != nil {
		return fmt.Errorf("unmarshalling snapshot: %w", err)
	}

	el := errors.NewErrorList()
	for key, p := range state.Places {
		if err := p.Validate(); err != nil {
			el.Add(fmt.Errorf("place %s: %w", key, err))
		}
	}
	for id, e := range state.EntitiesById {
		if err := e.Validate(); err != nil {
			el.Add(fmt.Errorf("entity %s: %w", id, err))
		}
	}
	if err := el.Err(); err != nil {
		return fmt.Errorf("validating snapshot: %w", err)
	}
	s.state = state

	purged := map[string]bool{}
	for id, e := range s.state.EntitiesById {
		if e.Type == EntityTypePlayer {
			delete(s.state.EntitiesById, id)
			purged[id] = true
		}
	}
	for _, p := range s.state.Places {
		kept := p.EntityIds[:0]
		for _, id := range p.EntityIds {
			if !purged[id] {
				kept = append(kept, id)
			}
		}
		p.EntityIds = kept
	}

	slog.Info("world snapshot loaded",
		"path", s.path,
		"places", len(s.state.Places),
		"entities", len(s.state.EntitiesById),
		"purged_players", len(purged))
	return nil
}

// Save serializes the whole world state to the snapshot file. The write goes
// to a temp file first and is renamed into place, so a failure leaves the
// previous snapshot intact.
func (s *Store) Save() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("marshalling snapshot: %w", err)
	}
	return atomicWrite(s.path, data, 0644)
}

func atomicWrite(path string, data []byte, perm os.FileMode) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, perm); err != nil {
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		if removeErr := os.Remove(tmp); removeErr != nil {
			slog.Warn("failed to remove temp file after rename failure", "path", tmp, "error", removeErr)
		}
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// CreatePlace creates a place at coord, overwriting any existing place there.
// The new place starts with no occupants and no blocked directions.
func (s *Store) CreatePlace(coord Coordinate, desc, detailedDesc string) *Place {
	p := &Place{
		Coordinates:         coord,
		Description:         desc,
		DetailedDescription: detailedDesc,
		EntityIds:           []string{},
	}
	s.state.Places[coord.Key()] = p
	return p
}

// DestroyPlace removes the place at coord if present, reporting whether it
// existed. Occupancy is not checked here; callers enforce that.
func (s *Store) DestroyPlace(coord Coordinate) bool {
	key := coord.Key()
	if _, ok := s.state.Places[key]; !ok {
		return false
	}
	delete(s.state.Places, key)
	return true
}

// GetPlace returns the place at (x, y), or nil if the grid has none there.
func (s *Store) GetPlace(x, y int) *Place {
	return s.state.Places[Coordinate{X: x, Y: y}.Key()]
}

// UpdateDescription replaces the short description of the place at (x, y).
// No-op if the place is absent.
func (s *Store) UpdateDescription(x, y int, desc string) {
	if p := s.state.Places[Coordinate{X: x, Y: y}.Key()]; p != nil {
		p.Description = desc
	}
}

// CreateEntity allocates an entity and registers it in the live entity map.
// For players, an existing respawn record for name takes precedence: the
// returned entity is a fresh copy of the record, keeping its original id and
// last coordinates so the player resumes where they left off. New players
// are also written through to the respawn record.
func (s *Store) CreateEntity(defaultCoord Coordinate, typ EntityType, name string) *Entity {
	var entity *Entity
	if typ == EntityTypePlayer {
		if rec := s.state.PlayerEntities[name]; rec != nil {
			entity = rec.clone()
		} else {
			entity = &Entity{
				Id:          uuid.New().String(),
				Type:        typ,
				Name:        name,
				Coordinates: defaultCoord,
			}
			s.state.PlayerEntities[name] = entity.clone()
		}
	} else {
		entity = &Entity{
			Id:          uuid.New().String(),
			Type:        typ,
			Name:        name,
			Coordinates: defaultCoord,
		}
	}
	s.state.EntitiesById[entity.Id] = entity
	return entity
}

// GetEntity returns the live entity with the given id, or nil.
func (s *Store) GetEntity(id string) *Entity {
	return s.state.EntitiesById[id]
}

// DestroyEntity removes the entity from the live map, reporting whether it
// existed. For players the entity is first copied into the respawn record,
// capturing its last coordinates for the next connect.
func (s *Store) DestroyEntity(id string) bool {
	entity, ok := s.state.EntitiesById[id]
	if !ok {
		return false
	}
	if entity.Type == EntityTypePlayer {
		s.state.PlayerEntities[entity.Name] = entity.clone()
	}
	delete(s.state.EntitiesById, id)
	return true
}

// CreateUser stores a credential pair. Fails with ErrUserExists if the
// username is taken.
func (s *Store) CreateUser(username, password string) (*User, error) {
	if _, ok := s.state.Users[username]; ok {
		return nil, ErrUserExists
	}
	u := &User{Username: username, Password: password}
	s.state.Users[username] = u
	return u, nil
}

// GetUser returns the user with the given username, or nil.
func (s *Store) GetUser(username string) *User {
	return s.state.Users[username]
}
