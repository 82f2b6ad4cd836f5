package services

import (
	"context"

	"gigflow/internal/models"
	"gigflow/internal/transport/dto"

	"github.com/google/uuid"
)

// UserService defines the interface for account and token business logic.
type UserService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*models.User, string, error) // Returns user and token
	Login(ctx context.Context, req *dto.LoginRequest) (*models.User, string, error)       // Returns user and token
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// GigService defines the interface for gig posting and browsing.
type GigService interface {
	CreateGig(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error)
	ListGigs(ctx context.Context, req *dto.ListGigsRequest) (*GigPage, error)
	GetGig(ctx context.Context, id uuid.UUID) (*models.Gig, error)
	ListMyGigs(ctx context.Context, clientID uuid.UUID) ([]models.Gig, error)
	CompleteGig(ctx context.Context, req *dto.GigActionRequest) (*models.Gig, error)
}

// BidService defines the interface for submitting and reading bids.
type BidService interface {
	CreateBid(ctx context.Context, req *dto.CreateBidRequest) (*models.Bid, error)
	BidsForGig(ctx context.Context, req *dto.GigActionRequest) ([]models.BidDetail, error)
	MyBids(ctx context.Context, freelancerID uuid.UUID) ([]models.BidDetail, error)
	GetBid(ctx context.Context, req *dto.BidActionRequest) (*models.BidDetail, error)
}

// HiringService coordinates the transitions that take a gig out of open:
// hiring one bid, or cancelling the gig.
type HiringService interface {
	HireBid(ctx context.Context, req *dto.BidActionRequest) (*HireResult, error)
	CancelGig(ctx context.Context, req *dto.GigActionRequest) (*CancelResult, error)
}

// GigPage is one page of a gig listing.
type GigPage struct {
	Gigs  []models.Gig
	Page  int
	Pages int
	Total int
}

// HireResult is the committed outcome of a hire.
type HireResult struct {
	Gig            models.Gig
	Bid            models.Bid
	RejectedBidIDs []uuid.UUID
	Attempts       int
}

// CancelResult is the committed outcome of a cancellation.
type CancelResult struct {
	Gig            models.Gig
	RejectedBidIDs []uuid.UUID
	Attempts       int
}
