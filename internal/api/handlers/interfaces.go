package handlers

import "github.com/gin-gonic/gin"

// AuthHandlerInterface defines the methods needed by the auth routes.
type AuthHandlerInterface interface {
	Register(c *gin.Context)
	Login(c *gin.Context)
	Me(c *gin.Context)
}

// GigHandlerInterface defines the methods needed by the gig routes.
type GigHandlerInterface interface {
	ListGigs(c *gin.Context)
	CreateGig(c *gin.Context)
	ListMyGigs(c *gin.Context)
	GetGigByID(c *gin.Context)
	ListBidsForGig(c *gin.Context)
	CancelGig(c *gin.Context)
	CompleteGig(c *gin.Context)
}

// BidHandlerInterface defines the methods needed by the bid routes.
type BidHandlerInterface interface {
	CreateBid(c *gin.Context)
	ListMyBids(c *gin.Context)
	GetBidByID(c *gin.Context)
	HireBid(c *gin.Context)
}

// NotificationHandlerInterface defines the methods needed by the notification routes.
type NotificationHandlerInterface interface {
	Stream(c *gin.Context)
}

// Ensure handlers implement the interfaces (compile-time check)
var (
	_ AuthHandlerInterface         = (*AuthHandler)(nil)
	_ GigHandlerInterface          = (*GigHandler)(nil)
	_ BidHandlerInterface          = (*BidHandler)(nil)
	_ NotificationHandlerInterface = (*NotificationHandler)(nil)
)
