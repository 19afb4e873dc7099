// Package events publishes record change notifications. Publishing is
// fire-and-forget: a failed publish is logged and never fails the request
// that triggered it.
package events

import (
	"context"
	"time"
)

const (
	ActionCreated = "created"
	ActionUpdated = "updated"
	ActionDeleted = "deleted"
)

// Event describes a single mutation of a user's ledger.
type Event struct {
	Action     string    `json:"action"`
	UserID     string    `json:"userId"`
	RecordID   string    `json:"recordId"`
	OccurredAt time.Time `json:"occurredAt"`
}

// NewEvent builds an event stamped with the current time.
func NewEvent(action, userID, recordID string) Event {
	return Event{
		Action:     action,
		UserID:     userID,
		RecordID:   recordID,
		OccurredAt: time.Now(),
	}
}

// Publisher delivers change events to interested consumers.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

var _ Publisher = NopPublisher{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
