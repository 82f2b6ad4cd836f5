package handlers

import (
	"net/http"

	"gigflow/internal/services"
	"gigflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// BidHandler holds dependencies for bid operations.
type BidHandler struct {
	bids   services.BidService
	hiring services.HiringService
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(bids services.BidService, hiring services.HiringService) *BidHandler {
	return &BidHandler{bids: bids, hiring: hiring}
}

// CreateBid godoc
// @Summary      Bid on a gig
// @Description  Submits a pending bid. One bid per freelancer per gig; owners cannot bid on their own gigs.
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        bid body      dto.CreateBidRequest true  "Bid details"
// @Success      201 {object}  dto.BidResponse
// @Failure      400 {object}  map[string]interface{} "Validation failed"
// @Failure      403 {object}  map[string]string "Own gig"
// @Failure      404 {object}  map[string]string "Gig not found"
// @Failure      409 {object}  map[string]string "Gig not open or already bid"
// @Router       /bids [post]
// @Security     BearerAuth
func (h *BidHandler) CreateBid(c *gin.Context) {
	freelancerID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.FreelancerID = freelancerID

	bid, err := h.bids.CreateBid(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "create bid")
		return
	}
	c.JSON(http.StatusCreated, MapBidModelToBidResponse(bid))
}

// ListMyBids godoc
// @Summary      My bids
// @Tags         bids
// @Produce      json
// @Success      200 {array}   dto.BidResponse
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /bids/my [get]
// @Security     BearerAuth
func (h *BidHandler) ListMyBids(c *gin.Context) {
	freelancerID, ok := callerID(c)
	if !ok {
		return
	}

	bids, err := h.bids.MyBids(c.Request.Context(), freelancerID)
	if err != nil {
		writeServiceError(c, err, "list your bids")
		return
	}
	c.JSON(http.StatusOK, mapBids(bids))
}

// GetBidByID godoc
// @Summary      Get a bid
// @Description  Visible to the bidder and to the gig owner.
// @Tags         bids
// @Produce      json
// @Param        id path      string true  "Bid ID" Format(uuid)
// @Success      200 {object}  dto.BidResponse
// @Failure      403 {object}  map[string]string "Forbidden"
// @Failure      404 {object}  map[string]string "Bid not found"
// @Router       /bids/{id} [get]
// @Security     BearerAuth
func (h *BidHandler) GetBidByID(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bidID, ok := pathID(c, "bid")
	if !ok {
		return
	}

	bid, err := h.bids.GetBid(c.Request.Context(), &dto.BidActionRequest{BidID: bidID, CallerID: userID})
	if err != nil {
		writeServiceError(c, err, "retrieve bid")
		return
	}
	c.JSON(http.StatusOK, MapBidDetailToBidResponse(bid))
}

// HireBid godoc
// @Summary      Hire a bid
// @Description  Assigns the gig to this bid and rejects every other pending bid in one commit. Owner only.
// @Tags         bids
// @Produce      json
// @Param        id path      string true  "Bid ID" Format(uuid)
// @Success      200 {object}  dto.HireResponse
// @Failure      403 {object}  map[string]string "Not the gig owner"
// @Failure      404 {object}  map[string]string "Bid or gig not found"
// @Failure      409 {object}  map[string]string "Gig no longer open or bid no longer pending"
// @Failure      503 {object}  map[string]string "Store unavailable"
// @Router       /bids/{id}/hire [patch]
// @Security     BearerAuth
func (h *BidHandler) HireBid(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	bidID, ok := pathID(c, "bid")
	if !ok {
		return
	}

	result, err := h.hiring.HireBid(c.Request.Context(), &dto.BidActionRequest{BidID: bidID, CallerID: userID})
	if err != nil {
		writeServiceError(c, err, "hire bid")
		return
	}
	c.JSON(http.StatusOK, dto.HireResponse{
		Message:        "Freelancer hired successfully",
		Gig:            MapGigModelToGigResponse(&result.Gig),
		Bid:            MapBidModelToBidResponse(&result.Bid),
		RejectedBidIDs: nonNilIDs(result.RejectedBidIDs),
	})
}
