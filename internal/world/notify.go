package world

import (
	"log/slog"
	"sort"
)

// EventKind tags what a place event describes.
type EventKind string

const (
	EventArrival   EventKind = "arrival"
	EventDeparture EventKind = "departure"
	EventSpeech    EventKind = "speech"
	EventEmote     EventKind = "emote"
	EventVanish    EventKind = "vanish"
	EventSpawn     EventKind = "spawn"
)

// PlaceEvent is a location-scoped notification delivered to every subscriber
// at its coordinate except the source entity.
type PlaceEvent struct {
	Coordinates Coordinate `json:"coordinates"`
	// SourceId is the acting entity. It never receives an echo of its own
	// action through this channel. May be empty for sourceless events.
	SourceId string    `json:"source_id,omitempty"`
	Kind     EventKind `json:"kind"`
	Message  string    `json:"message"`
}

// PlaceListener receives place events for one subscriber at one coordinate.
type PlaceListener func(PlaceEvent)

// SubscriptionRegistry maps coordinate keys to per-subscriber listener
// callbacks. It is purely in-memory and carries no locking of its own; the
// GridManager serializes access along with the rest of the world state.
type SubscriptionRegistry struct {
	listeners map[string]map[string]PlaceListener
}

func NewSubscriptionRegistry() *SubscriptionRegistry {
	return &SubscriptionRegistry{
		listeners: map[string]map[string]PlaceListener{},
	}
}

// Subscribe registers listener for subscriberId at coord, replacing any
// existing callback for that subscriber there.
func (r *SubscriptionRegistry) Subscribe(coord Coordinate, subscriberId string, listener PlaceListener) {
	key := coord.Key()
	if r.listeners[key] == nil {
		r.listeners[key] = map[string]PlaceListener{}
	}
	r.listeners[key][subscriberId] = listener
}

// Unsubscribe removes the subscriber's callback at coord. No-op if absent.
func (r *SubscriptionRegistry) Unsubscribe(coord Coordinate, subscriberId string) {
	key := coord.Key()
	subs, ok := r.listeners[key]
	if !ok {
		return
	}
	delete(subs, subscriberId)
	if len(subs) == 0 {
		delete(r.listeners, key)
	}
}

// Publish delivers the event to every subscriber at its coordinate except the
// source entity. Delivery order is by subscriber id, so a single publish is
// deterministic. A listener that panics does not stop delivery to the rest.
func (r *SubscriptionRegistry) Publish(event PlaceEvent) {
	subs, ok := r.listeners[event.Coordinates.Key()]
	if !ok {
		return
	}

	ids := make([]string, 0, len(subs))
	for id := range subs {
		if event.SourceId != "" && id == event.SourceId {
			continue
		}
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		r.deliver(subs[id], id, event)
	}
}

func (r *SubscriptionRegistry) deliver(listener PlaceListener, subscriberId string, event PlaceEvent) {
	defer func() {
		if rec := recover(); rec != nil {
			slog.Error("place listener panicked",
				"subscriber", subscriberId,
				"coordinates", event.Coordinates.Key(),
				"panic", rec)
		}
	}()
	listener(event)
}
