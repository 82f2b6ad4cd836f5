package notify

import (
	"context"
	"sync"
)

// Fake is an in-memory [Dispatcher] for testing. It captures dispatched
// events and can be told to fail. Safe for concurrent use.
type Fake struct {
	mu     sync.Mutex
	Events []Event
	Err    error
	Closed bool
}

// NewFake returns a ready-to-use [Fake] dispatcher.
func NewFake() *Fake {
	return &Fake{}
}

// Dispatch records the event, then returns Err.
func (f *Fake) Dispatch(_ context.Context, event Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Events = append(f.Events, event)
	return f.Err
}

func (f *Fake) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Closed = true
	return nil
}

// Snapshot returns a copy of the recorded events.
func (f *Fake) Snapshot() []Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Event, len(f.Events))
	copy(out, f.Events)
	return out
}
