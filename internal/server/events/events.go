// Package events publishes change notifications for accounts and notes.
// Events are emitted after a mutation has committed; delivery is best effort.
package events

import (
	"context"
	"encoding/json"
	"time"
)

// Event types.
const (
	AccountCreated = "account.created"
	AccountUpdated = "account.updated"
	AccountDeleted = "account.deleted"
	NoteCreated    = "note.created"
	NoteUpdated    = "note.updated"
	NoteDeleted    = "note.deleted"
)

// Event describes one committed change. It never carries credential material.
type Event struct {
	Type       string    `json:"type"`
	ResourceID string    `json:"resource_id"`
	OwnerID    string    `json:"owner_id,omitempty"`
	At         time.Time `json:"at"`
}

// New stamps an event with the current UTC time.
func New(typ, resourceID, ownerID string) Event {
	return Event{Type: typ, ResourceID: resourceID, OwnerID: ownerID, At: time.Now().UTC()}
}

func (e Event) encode() ([]byte, error) {
	return json.Marshal(e)
}

// Publisher delivers events to a sink.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Nop discards every event. It is used when no broker is configured.
type Nop struct{}

func (Nop) Publish(context.Context, Event) error { return nil }
func (Nop) Close() error                         { return nil }
