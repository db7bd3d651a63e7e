package websocket

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType represents what happened to an entity
type EventType string

const (
	EventTypeCreated EventType = "created"
	EventTypeUpdated EventType = "updated"
	EventTypeClosed  EventType = "closed"
)

// EntityType represents the type of entity the event is about
type EntityType string

const (
	EntityTypePayable EntityType = "payable"
	EntityTypePayment EntityType = "payment"
	EntityTypeProfile EntityType = "profile"
)

// Event represents a WebSocket event message sent to clients
// Format: { type, entity, payload, timestamp }
type Event struct {
	Type      string      `json:"type"`      // Combined type e.g. "payment.created"
	Entity    EntityType  `json:"entity"`    // Entity type e.g. "payment"
	Payload   interface{} `json:"payload"`   // Full entity data
	Timestamp time.Time   `json:"timestamp"` // Event timestamp
}

// NewEvent creates a new event with the given type, entity, and payload
func NewEvent(eventType EventType, entityType EntityType, payload interface{}) Event {
	return Event{
		Type:      fmt.Sprintf("%s.%s", entityType, eventType),
		Entity:    entityType,
		Payload:   payload,
		Timestamp: time.Now().UTC(),
	}
}

// ToJSON serializes the event to JSON bytes
func (e Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PayableCreated creates a payable.created event
func PayableCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypePayable, payload)
}

// PayableUpdated creates a payable.updated event
func PayableUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypePayable, payload)
}

// PayableClosed creates a payable.closed event
func PayableClosed(payload interface{}) Event {
	return NewEvent(EventTypeClosed, EntityTypePayable, payload)
}

// PaymentCreated creates a payment.created event
func PaymentCreated(payload interface{}) Event {
	return NewEvent(EventTypeCreated, EntityTypePayment, payload)
}

// ProfileUpdated creates a profile.updated event
func ProfileUpdated(payload interface{}) Event {
	return NewEvent(EventTypeUpdated, EntityTypeProfile, payload)
}
