package session

import (
	"fmt"

	"github.com/mudstone/typequest/internal/display"
	"github.com/mudstone/typequest/internal/world"
)

const msgNothingSpecial = "You see nothing special."

// EntityController binds one entity id to one connected session. It
// subscribes the session to place events at the entity's location,
// translates intents (move, look, say, emote) into grid manager calls, and
// formats the results for the player.
type EntityController struct {
	entityId string
	grid     *world.GridManager
	listener world.PlaceListener
}

func NewEntityController(entityId string, grid *world.GridManager, listener world.PlaceListener) *EntityController {
	return &EntityController{
		entityId: entityId,
		grid:     grid,
		listener: listener,
	}
}

// Id returns the bound entity id.
func (c *EntityController) Id() string {
	return c.entityId
}

// Init announces the entity and subscribes the session at its current
// coordinate. A missing entity means the session was bound to a bad id,
// which is a bug, so it fails hard with ErrEntityNotFound.
func (c *EntityController) Init() error {
	entity, ok := c.grid.GetEntity(c.entityId)
	if !ok {
		return fmt.Errorf("initializing controller for %s: %w", c.entityId, world.ErrEntityNotFound)
	}

	c.grid.NotifyPlace(world.PlaceEvent{
		Coordinates: world.Origin,
		SourceId:    c.entityId,
		Kind:        world.EventSpawn,
		Message:     fmt.Sprintf("%s materializes out of thin air.", entity.Name),
	})
	c.grid.AddNotifyPlaceListener(entity.Coordinates, c.entityId, c.listener)
	return nil
}

// Destroy unsubscribes the session from the entity's current coordinate.
func (c *EntityController) Destroy() {
	if entity, ok := c.grid.GetEntity(c.entityId); ok {
		c.grid.RemoveNotifyPlaceListener(entity.Coordinates, c.entityId)
	}
}

// Move attempts to move the entity and, on success, migrates the place
// subscription from the old coordinate to the new one. A subscriber that is
// not migrated silently stops receiving events, so the re-binding happens
// before anything is rendered.
func (c *EntityController) Move(direction string) string {
	if _, ok := c.grid.GetEntity(c.entityId); !ok {
		return "Are you real? I don't seem to have a record of you."
	}

	result := c.grid.MoveEntity(c.entityId, direction)
	if !result.Success {
		if result.Message != "" {
			return result.Message
		}
		return "You can't move that way."
	}

	c.grid.RemoveNotifyPlaceListener(result.OldCoordinates, c.entityId)
	c.grid.AddNotifyPlaceListener(result.NewCoordinates, c.entityId, c.listener)

	if _, ok := c.grid.GetPlace(result.NewCoordinates.X, result.NewCoordinates.Y); ok {
		return c.ExamineSurroundings(false)
	}
	return msgNothingSpecial
}

// ExamineSurroundings renders the current place's short or detailed
// description plus the co-located entities, excluding the viewer.
func (c *EntityController) ExamineSurroundings(detailed bool) string {
	entity, ok := c.grid.GetEntity(c.entityId)
	if !ok {
		return msgNothingSpecial
	}
	place, ok := c.grid.GetPlace(entity.Coordinates.X, entity.Coordinates.Y)
	if !ok {
		return msgNothingSpecial
	}

	description := place.Description
	if detailed {
		description = place.DetailedDescription
	}

	var others []world.Entity
	for _, occupant := range c.grid.Occupants(entity.Coordinates.X, entity.Coordinates.Y) {
		if occupant.Id != c.entityId {
			others = append(others, occupant)
		}
	}

	return display.Surroundings(description, others)
}

// Coordinates reports the entity's current grid position.
func (c *EntityController) Coordinates() string {
	entity, ok := c.grid.GetEntity(c.entityId)
	if !ok {
		return "Are you real? I don't seem to have a record of you."
	}
	return fmt.Sprintf("You are at %s.", entity.Coordinates)
}

// Say broadcasts speech at the entity's coordinate and returns the
// speaker's own view of it.
func (c *EntityController) Say(message string) string {
	if entity, ok := c.grid.GetEntity(c.entityId); ok {
		c.grid.NotifyPlace(world.PlaceEvent{
			Coordinates: entity.Coordinates,
			SourceId:    c.entityId,
			Kind:        world.EventSpeech,
			Message:     fmt.Sprintf("%s says: \"%s\"", entity.Name, message),
		})
	}
	return fmt.Sprintf("You say: \"%s\"", message)
}

// Emote broadcasts a free-form action ("<name> <message>") and returns the
// same line to the actor.
func (c *EntityController) Emote(message string) string {
	entity, ok := c.grid.GetEntity(c.entityId)
	if !ok {
		return "You don't exist."
	}
	output := fmt.Sprintf("%s %s", entity.Name, message)
	c.grid.NotifyPlace(world.PlaceEvent{
		Coordinates: entity.Coordinates,
		SourceId:    c.entityId,
		Kind:        world.EventEmote,
		Message:     output,
	})
	return output
}
