package storage

import (
	"context"

	"gigflow/internal/models"

	"github.com/google/uuid"
)

// UserRepository defines the interface for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
}

// GigRepository defines the interface for gig data operations.
// Status-changing methods are conditioned writes: they only apply when the
// gig is still in the expected source state when the write commits, and
// return ErrStateMismatch otherwise.
type GigRepository interface {
	Create(ctx context.Context, gig *models.Gig) (*models.Gig, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	List(ctx context.Context, filter models.GigFilter, offset, limit int) ([]models.Gig, int, error)
	ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Gig, error)

	// Assign moves an open gig to assigned and records the winning bid.
	Assign(ctx context.Context, gigID, bidID uuid.UUID) (*models.Gig, error)
	// Cancel moves an open gig to cancelled.
	Cancel(ctx context.Context, gigID uuid.UUID) (*models.Gig, error)
	// Complete moves an assigned gig to completed.
	Complete(ctx context.Context, gigID uuid.UUID) (*models.Gig, error)
}

// BidRepository defines the interface for bid data operations.
type BidRepository interface {
	// Create inserts a pending bid. The gig-open check, the client-cannot-bid
	// check and the (gig, freelancer) uniqueness check are evaluated together
	// with the insert, not before it.
	Create(ctx context.Context, bid *models.Bid) (*models.Bid, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Bid, error)

	// GetDetail, ListByGig and ListByFreelancer return bids joined with the
	// bidder's name and email and the gig's title, budget and status.
	// Listings are newest first.
	GetDetail(ctx context.Context, id uuid.UUID) (*models.BidDetail, error)
	ListByGig(ctx context.Context, gigID uuid.UUID) ([]models.BidDetail, error)
	ListByFreelancer(ctx context.Context, freelancerID uuid.UUID) ([]models.BidDetail, error)

	// MarkHired moves a pending bid to hired.
	MarkHired(ctx context.Context, bidID uuid.UUID) (*models.Bid, error)
	// RejectAllPendingExcept rejects every pending bid of the gig other than
	// exceptBidID (uuid.Nil rejects all of them) and returns the rejected bids.
	RejectAllPendingExcept(ctx context.Context, gigID, exceptBidID uuid.UUID) ([]models.Bid, error)
}

// Tx exposes repositories bound to one unit of work.
type Tx interface {
	Gigs() GigRepository
	Bids() BidRepository
}

// UnitOfWork runs fn as a single all-or-nothing commit. If fn returns an
// error, or the commit fails, none of the writes made through tx become
// visible to anyone.
type UnitOfWork interface {
	Do(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Repositories bundles one backend's repositories and its unit of work.
type Repositories struct {
	Users      UserRepository
	Gigs       GigRepository
	Bids       BidRepository
	UnitOfWork UnitOfWork
}
