package world

import (
	"fmt"

	"github.com/pixil98/go-errors"
)

// Place is a node in the world grid. One place exists per coordinate.
type Place struct {
	Coordinates Coordinate `json:"coordinates"`
	Description string     `json:"description"`
	// DetailedDescription is shown on an explicit examine; Description is the
	// short form shown on arrival.
	DetailedDescription string `json:"detailed_description"`
	// EntityIds lists current occupants in arrival order. Every id must
	// reference an entity whose coordinates equal this place's coordinates.
	EntityIds []string `json:"entity_ids"`
	// BlockedDirections maps a direction name to the narrative reason movement
	// that way is refused. Absent directions are open.
	BlockedDirections map[string]string `json:"blocked_directions,omitempty"`
}

func (p *Place) Validate() error {
	el := errors.NewErrorList()

	if p.Description == "" {
		el.Add(fmt.Errorf("description is required"))
	}

	for dir := range p.BlockedDirections {
		if _, ok := ParseDirection(dir); !ok {
			el.Add(fmt.Errorf("blocked direction %q is not a cardinal direction", dir))
		}
	}

	return el.Err()
}

// HasEntity reports whether id is listed as an occupant.
func (p *Place) HasEntity(id string) bool {
	for _, eid := range p.EntityIds {
		if eid == id {
			return true
		}
	}
	return false
}

// AddEntity appends id to the occupant list.
func (p *Place) AddEntity(id string) {
	p.EntityIds = append(p.EntityIds, id)
}

// RemoveEntity removes id from the occupant list, preserving order.
// Returns false if the id was not present.
func (p *Place) RemoveEntity(id string) bool {
	for i, eid := range p.EntityIds {
		if eid == id {
			p.EntityIds = append(p.EntityIds[:i], p.EntityIds[i+1:]...)
			return true
		}
	}
	return false
}
