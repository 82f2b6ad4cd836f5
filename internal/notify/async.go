package notify

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"

	"gigflow/internal/telemetry"
)

// ErrQueueFull is returned when the async queue cannot take another event.
var ErrQueueFull = errors.New("notification queue full")

// ErrClosed is returned by Dispatch after Close.
var ErrClosed = errors.New("dispatcher closed")

const defaultDeliveryTimeout = 5 * time.Second

// Async hands events to a single background worker through a bounded queue,
// so callers never block on delivery. Close stops intake, drains what is
// queued and then closes the wrapped dispatcher.
type Async struct {
	next    Dispatcher
	queue   chan Event
	done    chan struct{}
	timeout time.Duration

	mu     sync.RWMutex
	closed bool
	once   sync.Once
}

// NewAsync starts the worker. size <= 0 means a queue of 1.
func NewAsync(next Dispatcher, size int) *Async {
	if size <= 0 {
		size = 1
	}
	a := &Async{
		next:    next,
		queue:   make(chan Event, size),
		done:    make(chan struct{}),
		timeout: defaultDeliveryTimeout,
	}
	go a.run()
	return a
}

func (a *Async) run() {
	defer close(a.done)
	for event := range a.queue {
		ctx, cancel := context.WithTimeout(context.Background(), a.timeout)
		err := a.next.Dispatch(ctx, event)
		cancel()
		telemetry.RecordNotify(context.Background(), string(event.Type), event.FreelancerID.String(), err)
		if err != nil {
			log.Printf("Notify: failed to deliver %s event to user %s: %v", event.Type, event.FreelancerID, err)
		}
	}
}

// Dispatch enqueues the event without waiting for delivery.
func (a *Async) Dispatch(_ context.Context, event Event) error {
	a.mu.RLock()
	defer a.mu.RUnlock()
	if a.closed {
		return ErrClosed
	}
	select {
	case a.queue <- event:
		return nil
	default:
		log.Printf("Notify: queue full, dropping %s event for user %s", event.Type, event.FreelancerID)
		telemetry.RecordNotify(context.Background(), string(event.Type), event.FreelancerID.String(), ErrQueueFull)
		return ErrQueueFull
	}
}

// Close is idempotent.
func (a *Async) Close() error {
	var err error
	a.once.Do(func() {
		a.mu.Lock()
		a.closed = true
		close(a.queue)
		a.mu.Unlock()

		<-a.done
		err = a.next.Close()
	})
	return err
}
