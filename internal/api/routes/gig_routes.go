package routes

import (
	"gigflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterGigRoutes registers all routes related to gigs. Browsing and
// reading a single gig are public; everything else requires a token.
func RegisterGigRoutes(
	rg *gin.RouterGroup,
	gigHandler handlers.GigHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	gigs := rg.Group("/gigs")
	{
		gigs.GET("", gigHandler.ListGigs)
		gigs.POST("", authMiddleware, gigHandler.CreateGig)
		gigs.GET("/my", authMiddleware, gigHandler.ListMyGigs)
		gigs.GET("/:id", gigHandler.GetGigByID)
		gigs.GET("/:id/bids", authMiddleware, gigHandler.ListBidsForGig)
		gigs.PATCH("/:id/cancel", authMiddleware, gigHandler.CancelGig)
		gigs.PATCH("/:id/complete", authMiddleware, gigHandler.CompleteGig)
	}
}
