package notify

import (
	"context"
	"log"
)

// LogDispatcher writes events to the standard logger. Used when no broker is
// configured.
type LogDispatcher struct{}

func (LogDispatcher) Dispatch(_ context.Context, event Event) error {
	log.Printf("Notify: %s -> user %s (gig %s, bid %s): %s", event.Type, event.FreelancerID, event.GigID, event.BidID, event.Message)
	return nil
}

func (LogDispatcher) Close() error { return nil }
