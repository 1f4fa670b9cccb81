// Package models provides base building blocks for domain entities and
// the events they record.
package models

import (
	"time"

	"github.com/google/uuid"
)

const eventSchemaVersion = "1.0"

// DomainEvent describes a state change produced by an aggregate.
type DomainEvent struct {
	EventID     string         `json:"event_id"`
	EventType   string         `json:"event_type"`
	AggregateID string         `json:"aggregate_id"`
	Timestamp   time.Time      `json:"timestamp"`
	Version     string         `json:"version"`
	Payload     map[string]any `json:"payload,omitempty"`
}

// NewDomainEvent stamps a fresh event with an identifier and timestamp.
func NewDomainEvent(eventType, aggregateID string, payload map[string]any) DomainEvent {
	return DomainEvent{
		EventID:     uuid.NewString(),
		EventType:   eventType,
		AggregateID: aggregateID,
		Timestamp:   time.Now().UTC(),
		Version:     eventSchemaVersion,
		Payload:     payload,
	}
}

// AggregateRoot is the common base for mutable domain entities. It tracks
// identity, audit timestamps, an optimistic version counter, and the events
// recorded since the last flush.
type AggregateRoot struct {
	ID        string    `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
	Version   int64     `json:"version" bson:"version"`

	events []DomainEvent
}

// NewAggregateRoot initializes an aggregate with a generated identifier.
func NewAggregateRoot() AggregateRoot {
	now := time.Now().UTC()
	return AggregateRoot{
		ID:        uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
}

// RecordEvent appends a domain event and bumps the aggregate version.
func (a *AggregateRoot) RecordEvent(eventType string, payload map[string]any) DomainEvent {
	event := NewDomainEvent(eventType, a.ID, payload)
	a.events = append(a.events, event)
	a.Version++
	a.UpdatedAt = event.Timestamp
	return event
}

// Events returns a copy of the recorded, not yet published events.
func (a *AggregateRoot) Events() []DomainEvent {
	out := make([]DomainEvent, len(a.events))
	copy(out, a.events)
	return out
}

// ClearEvents drops recorded events, typically after publishing.
func (a *AggregateRoot) ClearEvents() {
	a.events = nil
}
