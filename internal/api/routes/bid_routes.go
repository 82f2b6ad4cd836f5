package routes

import (
	"gigflow/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBidRoutes registers all routes related to bids.
// It applies the provided authentication middleware to all bid routes.
func RegisterBidRoutes(
	rg *gin.RouterGroup,
	bidHandler handlers.BidHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	bids := rg.Group("/bids")
	bids.Use(authMiddleware)
	{
		bids.POST("", bidHandler.CreateBid)
		bids.GET("/my", bidHandler.ListMyBids)
		bids.GET("/:id", bidHandler.GetBidByID)
		bids.PATCH("/:id/hire", bidHandler.HireBid)
	}
}
