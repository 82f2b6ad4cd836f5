package dto

import (
	"time"

	"github.com/google/uuid"
)

// CreateBidRequest defines the structure for submitting a bid.
type CreateBidRequest struct {
	GigID          uuid.UUID `json:"gig_id" validate:"required"`
	ProposedAmount *float64  `json:"proposed_amount" validate:"required,gte=0,lte=9999999999.99"`
	DeliveryTime   int       `json:"delivery_time" validate:"required,gte=1"` // days
	CoverLetter    string    `json:"cover_letter" validate:"required,min=1,max=1000"`
	FreelancerID   uuid.UUID `json:"-"` // Set from user context
}

// BidActionRequest identifies a bid and the caller acting on it.
type BidActionRequest struct {
	BidID    uuid.UUID `json:"-" validate:"required"` // From path
	CallerID uuid.UUID `json:"-" validate:"required"` // Set from user context
}

// BidResponse is the public view of a bid.
type BidResponse struct {
	ID             uuid.UUID `json:"id"`
	GigID          uuid.UUID `json:"gig_id"`
	FreelancerID   uuid.UUID `json:"freelancer_id"`
	ProposedAmount float64   `json:"proposed_amount"`
	DeliveryTime   int       `json:"delivery_time"`
	CoverLetter    string    `json:"cover_letter"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	// Set on bid listings and single-bid reads.
	Freelancer *BidderSummary `json:"freelancer,omitempty"`
	Gig        *BidGigSummary `json:"gig,omitempty"`
}

// BidderSummary identifies the freelancer behind a bid.
type BidderSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// BidGigSummary describes the gig a bid was placed on.
type BidGigSummary struct {
	ID     uuid.UUID `json:"id"`
	Title  string    `json:"title"`
	Budget float64   `json:"budget"`
	Status string    `json:"status"`
}

// HireResponse reports the outcome of a successful hire.
type HireResponse struct {
	Message        string      `json:"message"`
	Gig            GigResponse `json:"gig"`
	Bid            BidResponse `json:"bid"`
	RejectedBidIDs []uuid.UUID `json:"rejected_bid_ids"`
}
