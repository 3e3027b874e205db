package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event is an immutable fact record produced by an aggregate. The envelope
// identifies the fact; Payload carries the event-specific data.
type Event struct {
	ID            string
	Name          string
	AggregateID   string
	OccurredAt    time.Time
	CorrelationID string
	CausationID   string
	Metadata      map[string]string
	Payload       any
}

// EventOption customizes an event envelope at construction time.
type EventOption func(*Event)

// WithCorrelationID links the event to a correlation chain.
func WithCorrelationID(id string) EventOption {
	return func(e *Event) { e.CorrelationID = id }
}

// WithCausationID records the event that caused this one.
func WithCausationID(id string) EventOption {
	return func(e *Event) { e.CausationID = id }
}

// WithMetadata attaches extra metadata to the envelope.
func WithMetadata(md map[string]string) EventOption {
	return func(e *Event) { e.Metadata = md }
}

// WithOccurredAt overrides the occurrence timestamp.
func WithOccurredAt(t time.Time) EventOption {
	return func(e *Event) { e.OccurredAt = t }
}

// NewEvent builds an event envelope with a generated ID and a UTC occurrence
// timestamp.
func NewEvent(name, aggregateID string, payload any, opts ...EventOption) Event {
	e := Event{
		ID:          uuid.New().String(),
		Name:        name,
		AggregateID: aggregateID,
		OccurredAt:  time.Now().UTC(),
		Payload:     payload,
	}
	for _, opt := range opts {
		opt(&e)
	}
	return e
}
