package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"gigflow/internal/models"
	"gigflow/internal/storage"
	"gigflow/internal/telemetry"
	"gigflow/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type bidService struct {
	bids     storage.BidRepository
	gigs     storage.GigRepository
	validate *validator.Validate
}

// NewBidService creates a new instance of BidService.
func NewBidService(bids storage.BidRepository, gigs storage.GigRepository, validate *validator.Validate) BidService {
	return &bidService{bids: bids, gigs: gigs, validate: validate}
}

// CreateBid submits a pending bid. The pre-read gives clear errors for the
// common cases; the conditioned insert is what actually enforces them.
func (s *bidService) CreateBid(ctx context.Context, req *dto.CreateBidRequest) (*models.Bid, error) {
	bid, err := s.createBid(ctx, req)
	telemetry.RecordBidCreate(ctx, req.GigID.String(), outcome(err), err)
	return bid, err
}

func (s *bidService) createBid(ctx context.Context, req *dto.CreateBidRequest) (*models.Bid, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.FreelancerID == uuid.Nil {
		return nil, fmt.Errorf("%w: freelancer id is required", ErrValidation)
	}

	// 1. Fetch the gig to check its state
	gig, err := s.gigs.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s for bid", req.GigID))
	}
	if gig.ClientID == req.FreelancerID {
		return nil, fmt.Errorf("%w: you cannot bid on your own gig", ErrForbidden)
	}
	if gig.Status != models.GigStatusOpen {
		log.Printf("CreateBid: Attempt to bid on non-open gig %s (Status: %s)", gig.ID, gig.Status)
		return nil, fmt.Errorf("%w: gig is no longer accepting bids", ErrInvalidState)
	}

	// 2. Conditioned insert
	bid, err := s.bids.Create(ctx, &models.Bid{
		GigID:          req.GigID,
		FreelancerID:   req.FreelancerID,
		ProposedAmount: *req.ProposedAmount,
		DeliveryTime:   req.DeliveryTime,
		CoverLetter:    req.CoverLetter,
	})
	if err != nil {
		if errors.Is(err, storage.ErrConflict) {
			log.Printf("CreateBid: Freelancer %s already bid on gig %s", req.FreelancerID, req.GigID)
			return nil, fmt.Errorf("%w: you have already bid on this gig", ErrConflict)
		}
		return nil, mapRepoError(err, "creating bid")
	}
	return bid, nil
}

// BidsForGig lists a gig's bids, with each bidder's name and email, for its owner.
func (s *bidService) BidsForGig(ctx context.Context, req *dto.GigActionRequest) ([]models.BidDetail, error) {
	gig, err := s.gigs.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s for listing bids", req.GigID))
	}
	if gig.ClientID != req.CallerID {
		log.Printf("BidsForGig: Forbidden attempt by user %s to list bids for gig %s owned by %s", req.CallerID, gig.ID, gig.ClientID)
		return nil, fmt.Errorf("%w: only the gig owner can view its bids", ErrForbidden)
	}

	bids, err := s.bids.ListByGig(ctx, gig.ID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("listing bids for gig %s", gig.ID))
	}
	return bids, nil
}

func (s *bidService) MyBids(ctx context.Context, freelancerID uuid.UUID) ([]models.BidDetail, error) {
	bids, err := s.bids.ListByFreelancer(ctx, freelancerID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("listing bids for freelancer %s", freelancerID))
	}
	return bids, nil
}

// GetBid returns a bid to its author or to the owner of its gig.
func (s *bidService) GetBid(ctx context.Context, req *dto.BidActionRequest) (*models.BidDetail, error) {
	bid, err := s.bids.GetDetail(ctx, req.BidID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching bid %s", req.BidID))
	}
	if bid.FreelancerID != req.CallerID && bid.Gig.ClientID != req.CallerID {
		log.Printf("GetBid: Forbidden attempt by user %s on bid %s (Freelancer: %s, Client: %s)", req.CallerID, bid.ID, bid.FreelancerID, bid.Gig.ClientID)
		return nil, fmt.Errorf("%w: not authorized to view this bid", ErrForbidden)
	}
	return bid, nil
}
