package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNoSubscriber is returned when the configured driver cannot stream events.
var ErrNoSubscriber = errors.New("notification streaming not available")

const subscriptionBuffer = 16

// Subscriber streams the events addressed to one user.
type Subscriber interface {
	Subscribe(ctx context.Context, userID uuid.UUID) (Subscription, error)
}

// Subscription is a live feed of events. Events is closed after Close or
// when the underlying transport goes away.
type Subscription interface {
	Events() <-chan Event
	Close() error
}

// Subscribe opens a subscription on the same channel naming the dispatcher
// publishes to.
func (d *RedisDispatcher) Subscribe(ctx context.Context, userID uuid.UUID) (Subscription, error) {
	channel := d.Channel(userID)
	pubsub := d.client.Subscribe(ctx, channel)
	// Wait for the confirmation so a broken connection fails here rather
	// than on the first read.
	if _, err := pubsub.Receive(ctx); err != nil {
		_ = pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", channel, err)
	}

	sub := &redisSubscription{pubsub: pubsub, events: make(chan Event, subscriptionBuffer)}
	go sub.forward(channel)
	return sub, nil
}

type redisSubscription struct {
	pubsub *redis.PubSub
	events chan Event
}

func (s *redisSubscription) forward(channel string) {
	defer close(s.events)
	for msg := range s.pubsub.Channel() {
		var event Event
		if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
			log.Printf("Notify: dropping malformed payload on %s: %v", channel, err)
			continue
		}
		select {
		case s.events <- event:
		default:
			log.Printf("Notify: subscriber buffer full on %s, dropping %s event", channel, event.Type)
		}
	}
}

func (s *redisSubscription) Events() <-chan Event { return s.events }

func (s *redisSubscription) Close() error { return s.pubsub.Close() }

// Hub is an in-process Dispatcher and Subscriber. Events for a user with no
// open subscription are dropped, as are events for a subscriber whose buffer
// is full.
type Hub struct {
	mu     sync.Mutex
	subs   map[uuid.UUID]map[*hubSubscription]struct{}
	closed bool
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{subs: make(map[uuid.UUID]map[*hubSubscription]struct{})}
}

func (h *Hub) Dispatch(_ context.Context, event Event) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	for sub := range h.subs[event.FreelancerID] {
		select {
		case sub.events <- event:
		default:
			log.Printf("Notify: subscriber buffer full for user %s, dropping %s event", event.FreelancerID, event.Type)
		}
	}
	return nil
}

func (h *Hub) Subscribe(_ context.Context, userID uuid.UUID) (Subscription, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil, ErrClosed
	}
	sub := &hubSubscription{hub: h, userID: userID, events: make(chan Event, subscriptionBuffer)}
	if h.subs[userID] == nil {
		h.subs[userID] = make(map[*hubSubscription]struct{})
	}
	h.subs[userID][sub] = struct{}{}
	return sub, nil
}

// Close ends every open subscription.
func (h *Hub) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	for _, subs := range h.subs {
		for sub := range subs {
			sub.closeLocked()
		}
	}
	h.subs = nil
	return nil
}

func (h *Hub) remove(sub *hubSubscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if subs, ok := h.subs[sub.userID]; ok {
		delete(subs, sub)
		if len(subs) == 0 {
			delete(h.subs, sub.userID)
		}
	}
	sub.closeLocked()
}

type hubSubscription struct {
	hub    *Hub
	userID uuid.UUID
	events chan Event
	closed bool // guarded by hub.mu
}

func (s *hubSubscription) Events() <-chan Event { return s.events }

func (s *hubSubscription) Close() error {
	s.hub.remove(s)
	return nil
}

func (s *hubSubscription) closeLocked() {
	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

var (
	_ Subscriber = (*RedisDispatcher)(nil)
	_ Subscriber = (*Hub)(nil)
	_ Dispatcher = (*Hub)(nil)
)
