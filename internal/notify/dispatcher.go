// Package notify delivers hiring outcome events to freelancers.
package notify

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// EventType names what happened to a freelancer's bid.
type EventType string

const (
	EventHired       EventType = "hired"
	EventBidRejected EventType = "bid_rejected"
)

// Event is addressed to a single freelancer.
type Event struct {
	Type         EventType `json:"type"`
	FreelancerID uuid.UUID `json:"freelancer_id"`
	GigID        uuid.UUID `json:"gig_id"`
	BidID        uuid.UUID `json:"bid_id"`
	GigTitle     string    `json:"gig_title,omitempty"`
	Message      string    `json:"message"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// Dispatcher sends events. Dispatch may fail; callers that have already
// committed state treat failures as non-fatal.
type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
	Close() error
}

// Discard drops every event.
type Discard struct{}

func (Discard) Dispatch(context.Context, Event) error { return nil }
func (Discard) Close() error                          { return nil }

// HiredEvent builds the event sent to the winning freelancer.
func HiredEvent(freelancerID, gigID, bidID uuid.UUID, gigTitle string, at time.Time) Event {
	return Event{
		Type:         EventHired,
		FreelancerID: freelancerID,
		GigID:        gigID,
		BidID:        bidID,
		GigTitle:     gigTitle,
		Message:      "You have been hired for " + quoteTitle(gigTitle),
		OccurredAt:   at,
	}
}

// RejectedEvent builds the event sent to a freelancer whose bid was rejected.
func RejectedEvent(freelancerID, gigID, bidID uuid.UUID, gigTitle string, at time.Time) Event {
	return Event{
		Type:         EventBidRejected,
		FreelancerID: freelancerID,
		GigID:        gigID,
		BidID:        bidID,
		GigTitle:     gigTitle,
		Message:      "Your bid for " + quoteTitle(gigTitle) + " was not selected",
		OccurredAt:   at,
	}
}

func quoteTitle(title string) string {
	if title == "" {
		return "the gig"
	}
	return `"` + title + `"`
}
