package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// blockingDispatcher holds every Dispatch until release is closed.
type blockingDispatcher struct {
	*Fake
	started chan struct{}
	release chan struct{}
}

func newBlockingDispatcher() *blockingDispatcher {
	return &blockingDispatcher{Fake: NewFake(), started: make(chan struct{}, 16), release: make(chan struct{})}
}

func (b *blockingDispatcher) Dispatch(ctx context.Context, event Event) error {
	b.started <- struct{}{}
	<-b.release
	return b.Fake.Dispatch(ctx, event)
}

func testEvent(t EventType) Event {
	return Event{Type: t, FreelancerID: uuid.New(), GigID: uuid.New(), BidID: uuid.New(), OccurredAt: time.Now()}
}

func TestAsync_CloseDrainsQueue(t *testing.T) {
	fake := NewFake()
	async := NewAsync(fake, 8)

	for i := 0; i < 5; i++ {
		require.NoError(t, async.Dispatch(context.Background(), testEvent(EventBidRejected)))
	}
	require.NoError(t, async.Close())

	assert.Len(t, fake.Snapshot(), 5)
	assert.True(t, fake.Closed)
}

func TestAsync_DropsWhenFull(t *testing.T) {
	inner := newBlockingDispatcher()
	async := NewAsync(inner, 1)

	require.NoError(t, async.Dispatch(context.Background(), testEvent(EventHired)))
	<-inner.started // worker holds the first event

	require.NoError(t, async.Dispatch(context.Background(), testEvent(EventBidRejected)))
	err := async.Dispatch(context.Background(), testEvent(EventBidRejected))
	assert.ErrorIs(t, err, ErrQueueFull)

	close(inner.release)
	require.NoError(t, async.Close())
	assert.Len(t, inner.Snapshot(), 2)
}

func TestAsync_DispatchAfterClose(t *testing.T) {
	async := NewAsync(NewFake(), 1)
	require.NoError(t, async.Close())
	require.NoError(t, async.Close())

	err := async.Dispatch(context.Background(), testEvent(EventHired))
	assert.ErrorIs(t, err, ErrClosed)
}

func TestAsync_DeliveryErrorsAreSwallowed(t *testing.T) {
	fake := NewFake()
	fake.Err = errors.New("broker down")
	async := NewAsync(fake, 2)

	require.NoError(t, async.Dispatch(context.Background(), testEvent(EventHired)))
	require.NoError(t, async.Close())
	assert.Len(t, fake.Snapshot(), 1)
}

func TestEventBuilders(t *testing.T) {
	freelancer, gig, bid := uuid.New(), uuid.New(), uuid.New()
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	hired := HiredEvent(freelancer, gig, bid, "Logo", at)
	assert.Equal(t, EventHired, hired.Type)
	assert.Equal(t, freelancer, hired.FreelancerID)
	assert.Equal(t, `You have been hired for "Logo"`, hired.Message)

	rejected := RejectedEvent(freelancer, gig, bid, "", at)
	assert.Equal(t, EventBidRejected, rejected.Type)
	assert.Equal(t, "Your bid for the gig was not selected", rejected.Message)
	assert.Equal(t, at, rejected.OccurredAt)
}
