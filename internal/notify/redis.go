package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const DefaultChannelPrefix = "gigflow"

// RedisDispatcher publishes each event as JSON on the recipient's channel,
// "<prefix>:user:<freelancerID>".
type RedisDispatcher struct {
	client *redis.Client
	prefix string
}

// NewRedisDispatcher creates a dispatcher that publishes through client.
func NewRedisDispatcher(client *redis.Client, prefix string) *RedisDispatcher {
	if prefix == "" {
		prefix = DefaultChannelPrefix
	}
	return &RedisDispatcher{client: client, prefix: prefix}
}

// Channel returns the channel a freelancer's events are published on.
func (d *RedisDispatcher) Channel(freelancerID uuid.UUID) string {
	return fmt.Sprintf("%s:user:%s", d.prefix, freelancerID)
}

func (d *RedisDispatcher) Dispatch(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode %s event: %w", event.Type, err)
	}
	channel := d.Channel(event.FreelancerID)
	if err := d.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish %s event on %s: %w", event.Type, channel, err)
	}
	return nil
}

func (d *RedisDispatcher) Close() error {
	log.Println("RedisDispatcher: closing Redis client")
	return d.client.Close()
}
