package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"gigflow/internal/api/middleware"
	"gigflow/internal/models"
	"gigflow/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// FormatValidationErrors turns validator output into a field -> message map.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorsMap["error"] = err.Error()
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "gte":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s", fieldName, fieldError.Param())
		case "lte":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s", fieldName, fieldError.Param())
		case "gig_category":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of %v", fieldName, dto.GigCategories)
		case "gig_status":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of open, assigned, completed, cancelled", fieldName)
		}
	}
	return errorsMap
}

// callerID reads the authenticated user, writing 401 when it is missing.
func callerID(c *gin.Context) (uuid.UUID, bool) {
	id, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return uuid.Nil, false
	}
	return id, true
}

// pathID parses the :id path parameter, writing 400 when it is not a UUID.
func pathID(c *gin.Context, what string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s ID format", what)})
		return uuid.Nil, false
	}
	return id, true
}

// MapUserModelToUserResponse converts a models.User to a dto.UserResponse
func MapUserModelToUserResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapGigModelToGigResponse converts a models.Gig to a dto.GigResponse
func MapGigModelToGigResponse(gig *models.Gig) dto.GigResponse {
	return dto.GigResponse{
		ID:          gig.ID,
		ClientID:    gig.ClientID,
		Title:       gig.Title,
		Description: gig.Description,
		Budget:      gig.Budget,
		Category:    gig.Category,
		Status:      string(gig.Status),
		HiredBidID:  gig.HiredBidID,
		CreatedAt:   gig.CreatedAt,
		UpdatedAt:   gig.UpdatedAt,
	}
}

func mapGigs(gigs []models.Gig) []dto.GigResponse {
	out := make([]dto.GigResponse, 0, len(gigs))
	for i := range gigs {
		out = append(out, MapGigModelToGigResponse(&gigs[i]))
	}
	return out
}

// MapBidModelToBidResponse converts a models.Bid to a dto.BidResponse
func MapBidModelToBidResponse(bid *models.Bid) dto.BidResponse {
	return dto.BidResponse{
		ID:             bid.ID,
		GigID:          bid.GigID,
		FreelancerID:   bid.FreelancerID,
		ProposedAmount: bid.ProposedAmount,
		DeliveryTime:   bid.DeliveryTime,
		CoverLetter:    bid.CoverLetter,
		Status:         string(bid.Status),
		CreatedAt:      bid.CreatedAt,
		UpdatedAt:      bid.UpdatedAt,
	}
}

// MapBidDetailToBidResponse converts a models.BidDetail to a dto.BidResponse
// carrying the bidder and gig summaries.
func MapBidDetailToBidResponse(detail *models.BidDetail) dto.BidResponse {
	resp := MapBidModelToBidResponse(&detail.Bid)
	resp.Freelancer = &dto.BidderSummary{
		ID:    detail.Freelancer.ID,
		Name:  detail.Freelancer.Name,
		Email: detail.Freelancer.Email,
	}
	resp.Gig = &dto.BidGigSummary{
		ID:     detail.Gig.ID,
		Title:  detail.Gig.Title,
		Budget: detail.Gig.Budget,
		Status: string(detail.Gig.Status),
	}
	return resp
}

func mapBids(bids []models.BidDetail) []dto.BidResponse {
	out := make([]dto.BidResponse, 0, len(bids))
	for i := range bids {
		out = append(out, MapBidDetailToBidResponse(&bids[i]))
	}
	return out
}

func nonNilIDs(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

