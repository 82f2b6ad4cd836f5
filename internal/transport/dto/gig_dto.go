package dto

import (
	"time"

	"github.com/google/uuid"
)

// --- Gig Request DTOs ---

// CreateGigRequest defines the structure for posting a new gig.
type CreateGigRequest struct {
	Title       string    `json:"title" validate:"required,min=1,max=100"`
	Description string    `json:"description" validate:"required,min=1,max=1500"`
	Budget      *float64  `json:"budget" validate:"required,gte=0,lte=9999999999.99"` // NUMERIC(12,2)
	Category    string    `json:"category" validate:"omitempty,gig_category"` // defaults to "other"
	ClientID    uuid.UUID `json:"-"`                                          // Set internally by handler from auth context
}

// ListGigsRequest defines query parameters for browsing gigs.
type ListGigsRequest struct {
	Search   string `form:"search" validate:"omitempty,max=200"`
	Category string `form:"category" validate:"omitempty,max=50"` // "all" means no filter
	Status   string `form:"status" validate:"omitempty,gig_status"`
	Page     int    `form:"page,default=1" validate:"omitempty,gte=1"`
	Limit    int    `form:"limit,default=10" validate:"omitempty,gte=1,lte=100"`
}

// GigActionRequest identifies a gig and the caller acting on it.
type GigActionRequest struct {
	GigID    uuid.UUID `json:"-" validate:"required"` // From path
	CallerID uuid.UUID `json:"-" validate:"required"` // Set from user context
}

// --- Gig Response DTOs ---

// GigResponse is the public view of a gig.
type GigResponse struct {
	ID          uuid.UUID  `json:"id"`
	ClientID    uuid.UUID  `json:"client_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Budget      float64    `json:"budget"`
	Category    string     `json:"category"`
	Status      string     `json:"status"`
	HiredBidID  *uuid.UUID `json:"hired_bid_id,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// GigListResponse is one page of gigs.
type GigListResponse struct {
	Gigs  []GigResponse `json:"gigs"`
	Page  int           `json:"page"`
	Pages int           `json:"pages"`
	Total int           `json:"total"`
}

// CancelGigResponse reports a cancelled gig and the bids rejected with it.
type CancelGigResponse struct {
	Gig            GigResponse `json:"gig"`
	RejectedBidIDs []uuid.UUID `json:"rejected_bid_ids"`
}
