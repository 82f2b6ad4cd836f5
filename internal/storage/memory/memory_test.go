package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gigflow/internal/models"
	"gigflow/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedGig(t *testing.T, repos storage.Repositories, clientID uuid.UUID) *models.Gig {
	t.Helper()
	gig, err := repos.Gigs.Create(context.Background(), &models.Gig{
		ClientID:    clientID,
		Title:       "Build a landing page",
		Description: "Single page, responsive",
		Budget:      500,
		Category:    models.CategoryWebDevelopment,
	})
	require.NoError(t, err)
	return gig
}

func TestBidCreate_Guards(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	clientID := uuid.New()
	gig := seedGig(t, repos, clientID)

	_, err := repos.Bids.Create(ctx, &models.Bid{GigID: uuid.New(), FreelancerID: uuid.New()})
	assert.ErrorIs(t, err, storage.ErrNotFound)

	_, err = repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: clientID})
	assert.ErrorIs(t, err, storage.ErrForbidden)

	freelancer := uuid.New()
	bid, err := repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: freelancer, ProposedAmount: 400, DeliveryTime: 3, CoverLetter: "hi"})
	require.NoError(t, err)
	assert.Equal(t, models.BidStatusPending, bid.Status)

	_, err = repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: freelancer})
	assert.ErrorIs(t, err, storage.ErrConflict)

	_, err = repos.Gigs.Cancel(ctx, gig.ID)
	require.NoError(t, err)
	_, err = repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: uuid.New()})
	assert.ErrorIs(t, err, storage.ErrStateMismatch)
}

func TestBidCreate_ConcurrentDuplicatesYieldOneBid(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	gig := seedGig(t, repos, uuid.New())
	freelancer := uuid.New()

	const n = 20
	var wg sync.WaitGroup
	errs := make(chan error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: freelancer, DeliveryTime: 1, CoverLetter: "x"})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	succeeded := 0
	for err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		assert.ErrorIs(t, err, storage.ErrConflict)
	}
	assert.Equal(t, 1, succeeded)

	bids, err := repos.Bids.ListByGig(ctx, gig.ID)
	require.NoError(t, err)
	assert.Len(t, bids, 1)
}

func TestGigTransitions_AreConditioned(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	gig := seedGig(t, repos, uuid.New())

	_, err := repos.Gigs.Complete(ctx, gig.ID)
	assert.ErrorIs(t, err, storage.ErrStateMismatch)

	bidID := uuid.New()
	assigned, err := repos.Gigs.Assign(ctx, gig.ID, bidID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusAssigned, assigned.Status)
	require.NotNil(t, assigned.HiredBidID)
	assert.Equal(t, bidID, *assigned.HiredBidID)
	assert.Equal(t, int64(2), assigned.Version)

	_, err = repos.Gigs.Assign(ctx, gig.ID, uuid.New())
	assert.ErrorIs(t, err, storage.ErrStateMismatch)
	_, err = repos.Gigs.Cancel(ctx, gig.ID)
	assert.ErrorIs(t, err, storage.ErrStateMismatch)

	completed, err := repos.Gigs.Complete(ctx, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusCompleted, completed.Status)
	assert.Equal(t, bidID, *completed.HiredBidID)

	_, err = repos.Gigs.Assign(ctx, uuid.New(), bidID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestMarkHiredAndRejectAll(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	gig := seedGig(t, repos, uuid.New())

	var ids []uuid.UUID
	for i := 0; i < 3; i++ {
		bid, err := repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: uuid.New(), DeliveryTime: 1, CoverLetter: "x"})
		require.NoError(t, err)
		ids = append(ids, bid.ID)
	}

	hired, err := repos.Bids.MarkHired(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, models.BidStatusHired, hired.Status)

	_, err = repos.Bids.MarkHired(ctx, ids[1])
	assert.ErrorIs(t, err, storage.ErrStateMismatch)

	rejected, err := repos.Bids.RejectAllPendingExcept(ctx, gig.ID, ids[1])
	require.NoError(t, err)
	require.Len(t, rejected, 2)
	assert.Equal(t, ids[0], rejected[0].ID)
	assert.Equal(t, ids[2], rejected[1].ID)

	again, err := repos.Bids.RejectAllPendingExcept(ctx, gig.ID, ids[1])
	require.NoError(t, err)
	assert.Empty(t, again)

	still, err := repos.Bids.GetByID(ctx, ids[1])
	require.NoError(t, err)
	assert.Equal(t, models.BidStatusHired, still.Status)
}

func TestDo_RollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	gig := seedGig(t, repos, uuid.New())
	bid, err := repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: uuid.New(), DeliveryTime: 1, CoverLetter: "x"})
	require.NoError(t, err)

	boom := errors.New("boom")
	err = repos.UnitOfWork.Do(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.Gigs().Assign(ctx, gig.ID, bid.ID); err != nil {
			return err
		}
		if _, err := tx.Bids().MarkHired(ctx, bid.ID); err != nil {
			return err
		}
		return boom
	})
	assert.ErrorIs(t, err, boom)

	storedGig, err := repos.Gigs.GetByID(ctx, gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusOpen, storedGig.Status)
	assert.Nil(t, storedGig.HiredBidID)

	storedBid, err := repos.Bids.GetByID(ctx, bid.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BidStatusPending, storedBid.Status)
}

func TestDo_ExpiredContextDoesNotCommit(t *testing.T) {
	repos := New().Repositories()
	gig := seedGig(t, repos, uuid.New())

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond)
	defer cancel()

	err := repos.UnitOfWork.Do(ctx, func(ctx context.Context, tx storage.Tx) error {
		if _, err := tx.Gigs().Cancel(ctx, gig.ID); err != nil {
			return err
		}
		<-ctx.Done()
		return nil
	})
	assert.ErrorIs(t, err, storage.ErrUnavailable)

	stored, err := repos.Gigs.GetByID(context.Background(), gig.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusOpen, stored.Status)
}

func TestGigList_FiltersAndPages(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	client := uuid.New()

	for _, title := range []string{"Logo design", "React dashboard", "Logo animation"} {
		_, err := repos.Gigs.Create(ctx, &models.Gig{ClientID: client, Title: title, Description: "d", Category: models.CategoryDesign})
		require.NoError(t, err)
	}

	gigs, total, err := repos.Gigs.List(ctx, models.GigFilter{Search: "LOGO", Status: models.GigStatusOpen}, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, 2, total)
	require.Len(t, gigs, 2)
	assert.Equal(t, "Logo animation", gigs[0].Title)

	gigs, total, err = repos.Gigs.List(ctx, models.GigFilter{}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	require.Len(t, gigs, 1)
	assert.Equal(t, "Logo design", gigs[0].Title)

	mine, err := repos.Gigs.ListByClient(ctx, client)
	require.NoError(t, err)
	assert.Len(t, mine, 3)
}

func TestUserRepo_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()

	_, err := repos.Users.Create(ctx, &models.User{Name: "Ada", Email: "ada@example.com", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repos.Users.Create(ctx, &models.User{Name: "Ada", Email: "ADA@example.com", PasswordHash: "h"})
	assert.ErrorIs(t, err, storage.ErrConflict)

	found, err := repos.Users.GetByEmail(ctx, "ada@example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)
}

func TestBidDetails_JoinBidderAndGig(t *testing.T) {
	ctx := context.Background()
	repos := New().Repositories()
	gig := seedGig(t, repos, uuid.New())
	user, err := repos.Users.Create(ctx, &models.User{Name: "Grace", Email: "grace@example.com", PasswordHash: "h"})
	require.NoError(t, err)

	first, err := repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: user.ID, ProposedAmount: 10, DeliveryTime: 1, CoverLetter: "hi"})
	require.NoError(t, err)
	anonymous := uuid.New()
	second, err := repos.Bids.Create(ctx, &models.Bid{GigID: gig.ID, FreelancerID: anonymous, ProposedAmount: 20, DeliveryTime: 2, CoverLetter: "me"})
	require.NoError(t, err)

	listed, err := repos.Bids.ListByGig(ctx, gig.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)
	assert.Equal(t, second.ID, listed[0].ID)
	assert.Equal(t, anonymous, listed[0].Freelancer.ID)
	assert.Empty(t, listed[0].Freelancer.Name)
	assert.Equal(t, first.ID, listed[1].ID)
	assert.Equal(t, "Grace", listed[1].Freelancer.Name)
	assert.Equal(t, "grace@example.com", listed[1].Freelancer.Email)

	_, err = repos.Gigs.Cancel(ctx, gig.ID)
	require.NoError(t, err)

	detail, err := repos.Bids.GetDetail(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, gig.Title, detail.Gig.Title)
	assert.Equal(t, gig.Budget, detail.Gig.Budget)
	assert.Equal(t, gig.ClientID, detail.Gig.ClientID)
	assert.Equal(t, models.GigStatusCancelled, detail.Gig.Status)

	mine, err := repos.Bids.ListByFreelancer(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, first.ID, mine[0].ID)

	_, err = repos.Bids.GetDetail(ctx, uuid.New())
	assert.ErrorIs(t, err, storage.ErrNotFound)
}
