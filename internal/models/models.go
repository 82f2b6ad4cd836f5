package models

import (
	"database/sql/driver"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// --- Gig Status Enum ---
type GigStatus string

const (
	GigStatusOpen      GigStatus = "open"
	GigStatusAssigned  GigStatus = "assigned"
	GigStatusCompleted GigStatus = "completed"
	GigStatusCancelled GigStatus = "cancelled"
)

// Scan implements the sql.Scanner interface for GigStatus
func (s *GigStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "GigStatus")
	if err != nil {
		return err
	}
	v := GigStatus(strVal)
	switch v {
	case GigStatusOpen, GigStatusAssigned, GigStatusCompleted, GigStatusCancelled:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid GigStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for GigStatus
func (s GigStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// CanTransitionTo reports whether a gig may move from s to next.
// open -> assigned|cancelled, assigned -> completed. Nothing moves back.
func (s GigStatus) CanTransitionTo(next GigStatus) bool {
	switch s {
	case GigStatusOpen:
		return next == GigStatusAssigned || next == GigStatusCancelled
	case GigStatusAssigned:
		return next == GigStatusCompleted
	default:
		return false
	}
}

// --- Bid Status Enum ---
type BidStatus string

const (
	BidStatusPending  BidStatus = "pending"
	BidStatusHired    BidStatus = "hired"
	BidStatusRejected BidStatus = "rejected"
)

// Scan implements the sql.Scanner interface for BidStatus
func (s *BidStatus) Scan(value interface{}) error {
	strVal, err := scanString(value, "BidStatus")
	if err != nil {
		return err
	}
	v := BidStatus(strVal)
	switch v {
	case BidStatusPending, BidStatusHired, BidStatusRejected:
		*s = v
		return nil
	default:
		return fmt.Errorf("invalid BidStatus value: %s", strVal)
	}
}

// Value implements the driver.Valuer interface for BidStatus
func (s BidStatus) Value() (driver.Value, error) {
	return string(s), nil
}

// CanTransitionTo reports whether a bid may move from s to next.
// Only pending bids move, and only once.
func (s BidStatus) CanTransitionTo(next BidStatus) bool {
	return s == BidStatusPending && (next == BidStatusHired || next == BidStatusRejected)
}

func scanString(value interface{}, typeName string) (string, error) {
	switch v := value.(type) {
	case string:
		return v, nil
	case []byte:
		return string(v), nil
	default:
		return "", fmt.Errorf("failed to scan %s: value is not string or []byte", typeName)
	}
}

// Gig categories accepted on creation.
const (
	CategoryWebDevelopment    = "web-development"
	CategoryMobileDevelopment = "mobile-development"
	CategoryDesign            = "design"
	CategoryWriting           = "writing"
	CategoryMarketing         = "marketing"
	CategoryVideoEditing      = "video-editing"
	CategoryOther             = "other"
)

// User is an account that can post gigs and bid on other people's gigs.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Gig is a job posted by a client.
type Gig struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	ClientID    uuid.UUID  `json:"client_id" db:"client_id"`
	Title       string     `json:"title" db:"title"`
	Description string     `json:"description" db:"description"`
	Budget      float64    `json:"budget" db:"budget"`
	Category    string     `json:"category" db:"category"`
	Status      GigStatus  `json:"status" db:"status"`
	HiredBidID  *uuid.UUID `json:"hired_bid_id,omitempty" db:"hired_bid_id"` // set iff assigned or completed
	Version     int64      `json:"version" db:"version"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`
}

// Bid is a freelancer's proposal for a gig.
type Bid struct {
	ID             uuid.UUID `json:"id" db:"id"`
	GigID          uuid.UUID `json:"gig_id" db:"gig_id"`
	FreelancerID   uuid.UUID `json:"freelancer_id" db:"freelancer_id"`
	ProposedAmount float64   `json:"proposed_amount" db:"proposed_amount"`
	DeliveryTime   int       `json:"delivery_time" db:"delivery_time"` // days
	CoverLetter    string    `json:"cover_letter" db:"cover_letter"`
	Status         BidStatus `json:"status" db:"status"`
	Version        int64     `json:"version" db:"version"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}

// UserSummary is the public part of an account shown next to its bids.
type UserSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// GigSummary is the part of a gig shown next to a bid on it.
type GigSummary struct {
	ID       uuid.UUID `json:"id"`
	ClientID uuid.UUID `json:"client_id"`
	Title    string    `json:"title"`
	Budget   float64   `json:"budget"`
	Status   GigStatus `json:"status"`
}

// BidDetail is a bid together with its bidder and its gig.
type BidDetail struct {
	Bid
	Freelancer UserSummary
	Gig        GigSummary
}

// GigFilter narrows a gig listing. Empty fields are ignored.
type GigFilter struct {
	Search   string
	Category string
	Status   GigStatus
}
