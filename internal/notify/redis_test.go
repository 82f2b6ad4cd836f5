package notify

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisDispatcher_Channel(t *testing.T) {
	id := uuid.MustParse("6f1c2f0e-7d55-4b8a-9d5e-0b1e2c3d4e5f")
	d := NewRedisDispatcher(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "")
	assert.Equal(t, "gigflow:user:6f1c2f0e-7d55-4b8a-9d5e-0b1e2c3d4e5f", d.Channel(id))

	d = NewRedisDispatcher(redis.NewClient(&redis.Options{Addr: "127.0.0.1:0"}), "market")
	assert.Equal(t, "market:user:6f1c2f0e-7d55-4b8a-9d5e-0b1e2c3d4e5f", d.Channel(id))
}

func TestRedisDispatcher_Publish(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	subscriber := redis.NewClient(opts)
	defer subscriber.Close()

	d := NewRedisDispatcher(redis.NewClient(opts), "gigflow-test")
	defer d.Close()

	event := HiredEvent(uuid.New(), uuid.New(), uuid.New(), "Logo", time.Now().UTC())
	sub := subscriber.Subscribe(ctx, d.Channel(event.FreelancerID))
	defer sub.Close()
	_, err = sub.Receive(ctx)
	require.NoError(t, err)

	require.NoError(t, d.Dispatch(ctx, event))

	msg, err := sub.ReceiveMessage(ctx)
	require.NoError(t, err)
	var got Event
	require.NoError(t, json.Unmarshal([]byte(msg.Payload), &got))
	assert.Equal(t, event.BidID, got.BidID)
	assert.Equal(t, EventHired, got.Type)
}

func TestRedisDispatcher_Subscribe(t *testing.T) {
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}
	opts, err := redis.ParseURL(url)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	d := NewRedisDispatcher(redis.NewClient(opts), "gigflow-test")
	defer d.Close()

	user := uuid.New()
	sub, err := d.Subscribe(ctx, user)
	require.NoError(t, err)
	defer sub.Close()

	require.NoError(t, d.Dispatch(ctx, RejectedEvent(user, uuid.New(), uuid.New(), "Logo", time.Now().UTC())))

	select {
	case got := <-sub.Events():
		assert.Equal(t, EventBidRejected, got.Type)
		assert.Equal(t, user, got.FreelancerID)
	case <-ctx.Done():
		t.Fatal("timed out waiting for event")
	}
}
