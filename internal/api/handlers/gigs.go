package handlers

import (
	"net/http"

	"gigflow/internal/services"
	"gigflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
)

// GigHandler holds dependencies for gig operations. Cancelling goes through
// the hiring service because it rejects the gig's pending bids in the same
// commit.
type GigHandler struct {
	gigs   services.GigService
	bids   services.BidService
	hiring services.HiringService
}

// NewGigHandler creates a new GigHandler.
func NewGigHandler(gigs services.GigService, bids services.BidService, hiring services.HiringService) *GigHandler {
	return &GigHandler{gigs: gigs, bids: bids, hiring: hiring}
}

// ListGigs godoc
// @Summary      Browse gigs
// @Description  Lists gigs newest first. Status defaults to open; category "all" disables the category filter.
// @Tags         gigs
// @Produce      json
// @Param        search   query string false "Case-insensitive match on title or description"
// @Param        category query string false "Category or all"
// @Param        status   query string false "open, assigned, completed or cancelled" default(open)
// @Param        page     query int    false "Page number" default(1)
// @Param        limit    query int    false "Page size (max 100)" default(10)
// @Success      200 {object}  dto.GigListResponse
// @Failure      400 {object}  map[string]interface{} "Invalid query parameters"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs [get]
func (h *GigHandler) ListGigs(c *gin.Context) {
	var req dto.ListGigsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	page, err := h.gigs.ListGigs(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "list gigs")
		return
	}

	c.JSON(http.StatusOK, dto.GigListResponse{
		Gigs:  mapGigs(page.Gigs),
		Page:  page.Page,
		Pages: page.Pages,
		Total: page.Total,
	})
}

// CreateGig godoc
// @Summary      Post a gig
// @Description  Creates an open gig owned by the caller.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        gig body      dto.CreateGigRequest true  "Gig details"
// @Success      201 {object}  dto.GigResponse
// @Failure      400 {object}  map[string]interface{} "Validation failed"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs [post]
// @Security     BearerAuth
func (h *GigHandler) CreateGig(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}

	var req dto.CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ClientID = clientID

	gig, err := h.gigs.CreateGig(c.Request.Context(), &req)
	if err != nil {
		writeServiceError(c, err, "create gig")
		return
	}
	c.JSON(http.StatusCreated, MapGigModelToGigResponse(gig))
}

// ListMyGigs godoc
// @Summary      My gigs
// @Description  Lists every gig the caller posted, in any status.
// @Tags         gigs
// @Produce      json
// @Success      200 {array}   dto.GigResponse
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Router       /gigs/my [get]
// @Security     BearerAuth
func (h *GigHandler) ListMyGigs(c *gin.Context) {
	clientID, ok := callerID(c)
	if !ok {
		return
	}

	gigs, err := h.gigs.ListMyGigs(c.Request.Context(), clientID)
	if err != nil {
		writeServiceError(c, err, "list your gigs")
		return
	}
	c.JSON(http.StatusOK, mapGigs(gigs))
}

// GetGigByID godoc
// @Summary      Get a gig
// @Tags         gigs
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Success      200 {object}  dto.GigResponse
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Gig not found"
// @Router       /gigs/{id} [get]
func (h *GigHandler) GetGigByID(c *gin.Context) {
	gigID, ok := pathID(c, "gig")
	if !ok {
		return
	}

	gig, err := h.gigs.GetGig(c.Request.Context(), gigID)
	if err != nil {
		writeServiceError(c, err, "retrieve gig")
		return
	}
	c.JSON(http.StatusOK, MapGigModelToGigResponse(gig))
}

// ListBidsForGig godoc
// @Summary      Bids on a gig
// @Description  Lists the gig's bids, newest first. Owner only.
// @Tags         gigs
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Success      200 {array}   dto.BidResponse
// @Failure      403 {object}  map[string]string "Not the gig owner"
// @Failure      404 {object}  map[string]string "Gig not found"
// @Router       /gigs/{id}/bids [get]
// @Security     BearerAuth
func (h *GigHandler) ListBidsForGig(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	gigID, ok := pathID(c, "gig")
	if !ok {
		return
	}

	bids, err := h.bids.BidsForGig(c.Request.Context(), &dto.GigActionRequest{GigID: gigID, CallerID: userID})
	if err != nil {
		writeServiceError(c, err, "list bids")
		return
	}
	c.JSON(http.StatusOK, mapBids(bids))
}

// CancelGig godoc
// @Summary      Cancel a gig
// @Description  Cancels an open gig and rejects all of its pending bids in one commit. Owner only.
// @Tags         gigs
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Success      200 {object}  dto.CancelGigResponse
// @Failure      403 {object}  map[string]string "Not the gig owner"
// @Failure      404 {object}  map[string]string "Gig not found"
// @Failure      409 {object}  map[string]string "Gig is not open"
// @Failure      503 {object}  map[string]string "Store unavailable"
// @Router       /gigs/{id}/cancel [patch]
// @Security     BearerAuth
func (h *GigHandler) CancelGig(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	gigID, ok := pathID(c, "gig")
	if !ok {
		return
	}

	result, err := h.hiring.CancelGig(c.Request.Context(), &dto.GigActionRequest{GigID: gigID, CallerID: userID})
	if err != nil {
		writeServiceError(c, err, "cancel gig")
		return
	}
	c.JSON(http.StatusOK, dto.CancelGigResponse{
		Gig:            MapGigModelToGigResponse(&result.Gig),
		RejectedBidIDs: nonNilIDs(result.RejectedBidIDs),
	})
}

// CompleteGig godoc
// @Summary      Complete a gig
// @Description  Marks an assigned gig completed. Owner only.
// @Tags         gigs
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Success      200 {object}  dto.GigResponse
// @Failure      403 {object}  map[string]string "Not the gig owner"
// @Failure      404 {object}  map[string]string "Gig not found"
// @Failure      409 {object}  map[string]string "Gig is not assigned"
// @Router       /gigs/{id}/complete [patch]
// @Security     BearerAuth
func (h *GigHandler) CompleteGig(c *gin.Context) {
	userID, ok := callerID(c)
	if !ok {
		return
	}
	gigID, ok := pathID(c, "gig")
	if !ok {
		return
	}

	gig, err := h.gigs.CompleteGig(c.Request.Context(), &dto.GigActionRequest{GigID: gigID, CallerID: userID})
	if err != nil {
		writeServiceError(c, err, "complete gig")
		return
	}
	c.JSON(http.StatusOK, MapGigModelToGigResponse(gig))
}
