package world

import (
	"fmt"
	"sync"
)

const (
	defaultFieldDescription         = "You are standing in an empty field."
	defaultFieldDetailedDescription = "You are standing in an empty field. There is nothing of interest here."

	msgNoRecordOfYou = "Are you real? I don't seem to have a record of you."
	msgCannotMove    = "You can't move that way."
)

// MoveResult reports the outcome of a move attempt. On success both
// coordinates are set so the caller can migrate its subscription; on failure
// Message carries the human-readable reason.
type MoveResult struct {
	Success        bool
	OldCoordinates Coordinate
	NewCoordinates Coordinate
	Message        string
}

// GridManager orchestrates the world: it validates and executes moves,
// creates and destroys entities and places with consistent membership
// bookkeeping, and fans location-scoped events out through the subscription
// registry. A single mutex makes every public operation atomic with respect
// to the others; each operation fully checks before it mutates, so a failed
// call leaves no partial state behind.
type GridManager struct {
	mu       sync.Mutex
	store    *Store
	registry *SubscriptionRegistry
}

func NewGridManager(store *Store, registry *SubscriptionRegistry) *GridManager {
	return &GridManager{
		store:    store,
		registry: registry,
	}
}

// Init loads the snapshot and guarantees the world has at least one
// enterable location by creating the default field at the origin when
// nothing exists there.
func (g *GridManager) Init() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if err := g.store.Load(); err != nil {
		return fmt.Errorf("loading world: %w", err)
	}
	if g.store.GetPlace(Origin.X, Origin.Y) == nil {
		g.store.CreatePlace(Origin, defaultFieldDescription, defaultFieldDetailedDescription)
	}
	return nil
}

// Save writes the snapshot while holding the world lock.
func (g *GridManager) Save() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.store.Save()
}

// CreateEntity creates an entity through the store and lists it at the place
// it lands on. If no place exists at the entity's coordinate it is created
// floating: registered in the store but listed nowhere. That is accepted,
// not an error.
func (g *GridManager) CreateEntity(defaultCoord Coordinate, typ EntityType, name string) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	entity := g.store.CreateEntity(defaultCoord, typ, name)
	if place := g.store.GetPlace(entity.Coordinates.X, entity.Coordinates.Y); place != nil {
		place.AddEntity(entity.Id)
	}
	return entity.Id
}

// DestroyEntity removes the entity from its place and from the store, then
// announces the vanish at its last coordinate. Fails if the entity or its
// place is missing, or if the place does not actually list it.
func (g *GridManager) DestroyEntity(id string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	entity := g.store.GetEntity(id)
	if entity == nil {
		return false
	}
	place := g.store.GetPlace(entity.Coordinates.X, entity.Coordinates.Y)
	if place == nil {
		return false
	}
	if !place.RemoveEntity(id) {
		return false
	}
	g.store.DestroyEntity(id)

	g.registry.Publish(PlaceEvent{
		Coordinates: entity.Coordinates,
		SourceId:    id,
		Kind:        EventVanish,
		Message:     fmt.Sprintf("%s vanishes into thin air.", entity.Name),
	})
	return true
}

// MoveEntity attempts to move the entity one place in the given direction.
// Preconditions are checked in order and the first failure wins: the entity
// must exist, both places must exist, the direction must not be blocked at
// the origin place, and the origin place must actually list the entity. Only
// after all checks pass is any state touched; departure and arrival are
// announced once both places and the entity agree on the new location.
func (g *GridManager) MoveEntity(id string, direction string) MoveResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	entity := g.store.GetEntity(id)
	if entity == nil {
		return MoveResult{Message: msgNoRecordOfYou}
	}

	dir, ok := ParseDirection(direction)
	if !ok {
		return MoveResult{Message: msgCannotMove}
	}

	oldCoord := entity.Coordinates
	newCoord := dir.Step(oldCoord)

	oldPlace := g.store.GetPlace(oldCoord.X, oldCoord.Y)
	newPlace := g.store.GetPlace(newCoord.X, newCoord.Y)
	if oldPlace == nil || newPlace == nil {
		return MoveResult{Message: msgCannotMove}
	}

	if reason, blocked := oldPlace.BlockedDirections[dir.String()]; blocked {
		return MoveResult{Message: reason}
	}

	if !oldPlace.HasEntity(id) {
		return MoveResult{Message: msgCannotMove}
	}

	oldPlace.RemoveEntity(id)
	newPlace.AddEntity(id)
	entity.Coordinates = newCoord

	g.registry.Publish(PlaceEvent{
		Coordinates: oldCoord,
		SourceId:    id,
		Kind:        EventDeparture,
		Message:     fmt.Sprintf("%s has left to the %s.", entity.Name, dir),
	})
	g.registry.Publish(PlaceEvent{
		Coordinates: newCoord,
		SourceId:    id,
		Kind:        EventArrival,
		Message:     fmt.Sprintf("%s has arrived from the %s.", entity.Name, dir.Opposite()),
	})

	return MoveResult{
		Success:        true,
		OldCoordinates: oldCoord,
		NewCoordinates: newCoord,
	}
}

// SavePlace upserts the place at coord. An existing place keeps its
// occupants and blocked directions and only its descriptions change; this is
// the only safe edit for an occupied place, since CreatePlace resets the
// occupant list.
func (g *GridManager) SavePlace(coord Coordinate, desc, detailedDesc string) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if place := g.store.GetPlace(coord.X, coord.Y); place != nil {
		place.Description = desc
		place.DetailedDescription = detailedDesc
		return
	}
	g.store.CreatePlace(coord, desc, detailedDesc)
}

// DestroyPlace removes the place at coord, refusing when it does not exist
// or still has occupants. The result doubles as the text shown to the
// invoking user.
func (g *GridManager) DestroyPlace(coord Coordinate) string {
	g.mu.Lock()
	defer g.mu.Unlock()

	place := g.store.GetPlace(coord.X, coord.Y)
	if place == nil {
		return fmt.Sprintf("There is nothing to destroy at %s.", coord)
	}
	if len(place.EntityIds) > 0 {
		return "The place is not empty of entities."
	}
	g.store.DestroyPlace(coord)
	return fmt.Sprintf("Destroyed place at %s.", coord)
}

// SetBlockedDirection records a narrative obstacle on the place at coord.
// Returns false if the place or direction is invalid.
func (g *GridManager) SetBlockedDirection(coord Coordinate, direction, reason string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	dir, ok := ParseDirection(direction)
	if !ok {
		return false
	}
	place := g.store.GetPlace(coord.X, coord.Y)
	if place == nil {
		return false
	}
	if place.BlockedDirections == nil {
		place.BlockedDirections = map[string]string{}
	}
	place.BlockedDirections[dir.String()] = reason
	return true
}

// ClearBlockedDirection removes an obstacle. Returns false if the place or
// direction is invalid; clearing an already-open direction succeeds.
func (g *GridManager) ClearBlockedDirection(coord Coordinate, direction string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	dir, ok := ParseDirection(direction)
	if !ok {
		return false
	}
	place := g.store.GetPlace(coord.X, coord.Y)
	if place == nil {
		return false
	}
	delete(place.BlockedDirections, dir.String())
	return true
}

// GetPlace returns a copy of the place at (x, y). Mutation goes through the
// manager's edit methods, never through the returned value.
func (g *GridManager) GetPlace(x, y int) (Place, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	place := g.store.GetPlace(x, y)
	if place == nil {
		return Place{}, false
	}
	return copyPlace(place), true
}

// GetEntity returns a copy of the live entity with the given id.
func (g *GridManager) GetEntity(id string) (Entity, bool) {
	g.mu.Lock()
	defer g.mu.Unlock()

	entity := g.store.GetEntity(id)
	if entity == nil {
		return Entity{}, false
	}
	return *entity, true
}

// Occupants returns copies of the entities listed at (x, y) in arrival
// order. Ids with no live entity are skipped.
func (g *GridManager) Occupants(x, y int) []Entity {
	g.mu.Lock()
	defer g.mu.Unlock()

	place := g.store.GetPlace(x, y)
	if place == nil {
		return nil
	}
	occupants := make([]Entity, 0, len(place.EntityIds))
	for _, id := range place.EntityIds {
		if e := g.store.GetEntity(id); e != nil {
			occupants = append(occupants, *e)
		}
	}
	return occupants
}

// AddNotifyPlaceListener subscribes listener for subscriberId at coord.
// Callers are responsible for re-subscribing at the new coordinate after
// every successful move.
func (g *GridManager) AddNotifyPlaceListener(coord Coordinate, subscriberId string, listener PlaceListener) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Subscribe(coord, subscriberId, listener)
}

// RemoveNotifyPlaceListener unsubscribes subscriberId at coord.
func (g *GridManager) RemoveNotifyPlaceListener(coord Coordinate, subscriberId string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Unsubscribe(coord, subscriberId)
}

// NotifyPlace broadcasts an event to the subscribers at its coordinate.
func (g *GridManager) NotifyPlace(event PlaceEvent) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.registry.Publish(event)
}

func copyPlace(p *Place) Place {
	c := *p
	c.EntityIds = append([]string(nil), p.EntityIds...)
	if p.BlockedDirections != nil {
		c.BlockedDirections = make(map[string]string, len(p.BlockedDirections))
		for k, v := range p.BlockedDirections {
			c.BlockedDirections[k] = v
		}
	}
	return c
}
