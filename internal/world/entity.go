package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// EntityType tags what kind of occupant an entity is.
type EntityType string

const (
	EntityTypePlayer  EntityType = "player"
	EntityTypeNpc     EntityType = "npc"
	EntityTypeAnimal  EntityType = "animal"
	EntityTypeMonster EntityType = "monster"
)

// Entity is any movable occupant of the grid. The store is the sole owner;
// other components hold the id and read through the store.
type Entity struct {
	Id   string     `json:"id"`
	Type EntityType `json:"type"`
	// Name is the display name. For players it is also the respawn record key.
	Name        string     `json:"name"`
	Coordinates Coordinate `json:"coordinates"`
}

func (e *Entity) Validate() error {
	el := errors.NewErrorList()

	if e.Id == "" {
		el.Add(fmt.Errorf("id is required"))
	}
	if e.Name == "" {
		el.Add(fmt.Errorf("name is required"))
	}

	switch e.Type {
	case EntityTypePlayer, EntityTypeNpc, EntityTypeAnimal, EntityTypeMonster:
	default:
		el.Add(fmt.Errorf("unknown entity type %q", e.Type))
	}

	return el.Err()
}

// clone returns an independent copy, so the live entity and the respawn
// record never alias.
func (e *Entity) clone() *Entity {
	c := *e
	return &c
}

// User is a credential pair persisted alongside the world.
type User struct {
	Username string `json:"username"`
	// Password holds the bcrypt hash, never the plaintext.
	Password string `json:"password"`
}
