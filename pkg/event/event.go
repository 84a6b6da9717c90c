// pkg/event/event.go
package event

import (
	"sync"
)

// Type represents the type of event
type Type string

// Flight notification types. Controllers publish these on the bus they
// were constructed with; there is no process-wide bus.
const (
	ManeuveringChanged Type = "maneuvering_changed"
	POVChanged         Type = "pov_changed"
	VelocityClamped    Type = "velocity_clamped"
	AssistLevelChanged Type = "assist_level_changed"
	CraftSpawned       Type = "craft_spawned"
	CraftRemoved       Type = "craft_removed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// SubscriptionID identifies a registered handler so it can be removed
type SubscriptionID uint64

type subscription struct {
	id      SubscriptionID
	handler Handler
}

// Bus manages event subscriptions and dispatching
type Bus struct {
	handlers map[Type][]subscription
	nextID   SubscriptionID
	mu       sync.RWMutex
}

// NewBus creates a new event bus
func NewBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]subscription),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type and returns
// an identifier for later removal
func (b *Bus) Subscribe(eventType Type, handler Handler) SubscriptionID {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], subscription{id: id, handler: handler})
	return id
}

// Unsubscribe removes a previously registered handler
func (b *Bus) Unsubscribe(eventType Type, id SubscriptionID) {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs, ok := b.handlers[eventType]
	if !ok {
		return
	}

	for i, sub := range subs {
		if sub.id == id {
			b.handlers[eventType] = append(subs[:i], subs[i+1:]...)
			break
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	b.mu.RLock()
	subs, ok := b.handlers[event.GetType()]
	b.mu.RUnlock()

	if !ok {
		return
	}

	for _, sub := range subs {
		sub.handler(event)
	}
}

// Specific event implementations

// ManeuveringEvent fires once on each edge of the fly-by-wire
// maneuvering flag
type ManeuveringEvent struct {
	BaseEvent
	CraftID     uint64
	Maneuvering bool
}

// NewManeuveringEvent creates a maneuvering-flag edge notification
func NewManeuveringEvent(source interface{}, craftID uint64, maneuvering bool) *ManeuveringEvent {
	return &ManeuveringEvent{
		BaseEvent: BaseEvent{
			EventType: ManeuveringChanged,
			Source:    source,
		},
		CraftID:     craftID,
		Maneuvering: maneuvering,
	}
}

// POVEvent fires when pilot input rotates the point-of-view frame
type POVEvent struct {
	BaseEvent
	CraftID uint64
}

// NewPOVEvent creates a POV-changed notification
func NewPOVEvent(source interface{}, craftID uint64) *POVEvent {
	return &POVEvent{
		BaseEvent: BaseEvent{
			EventType: POVChanged,
			Source:    source,
		},
		CraftID: craftID,
	}
}

// VelocityClampedEvent fires when a velocity clamp moved the velocity
// by more than the body's notification epsilon
type VelocityClampedEvent struct {
	BaseEvent
	CraftID  uint64
	OldSpeed float64
	NewSpeed float64
}

// NewVelocityClampedEvent creates a velocity-clamped notification
func NewVelocityClampedEvent(source interface{}, craftID uint64, oldSpeed, newSpeed float64) *VelocityClampedEvent {
	return &VelocityClampedEvent{
		BaseEvent: BaseEvent{
			EventType: VelocityClamped,
			Source:    source,
		},
		CraftID:  craftID,
		OldSpeed: oldSpeed,
		NewSpeed: newSpeed,
	}
}

// AssistLevelEvent fires when the flight-assist level advances
type AssistLevelEvent struct {
	BaseEvent
	CraftID  uint64
	OldLevel int
	NewLevel int
}

// NewAssistLevelEvent creates an assist-level-changed notification
func NewAssistLevelEvent(source interface{}, craftID uint64, oldLevel, newLevel int) *AssistLevelEvent {
	return &AssistLevelEvent{
		BaseEvent: BaseEvent{
			EventType: AssistLevelChanged,
			Source:    source,
		},
		CraftID:  craftID,
		OldLevel: oldLevel,
		NewLevel: newLevel,
	}
}
