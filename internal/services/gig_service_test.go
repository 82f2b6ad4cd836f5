package services_test

import (
	"context"
	"errors"
	"testing"

	"gigflow/internal/models"
	"gigflow/internal/services"
	"gigflow/internal/storage"
	"gigflow/internal/transport/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func setupGigServiceTest() (context.Context, services.GigService, *MockGigRepository) {
	repo := new(MockGigRepository)
	return context.Background(), services.NewGigService(repo, dto.NewValidator()), repo
}

func TestGigService_CreateGig_DefaultsCategory(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()
	clientID := uuid.New()

	repo.On("Create", ctx, mock.MatchedBy(func(g *models.Gig) bool {
		return g.ClientID == clientID && g.Category == models.CategoryOther && g.Title == "Logo" && g.Budget == 0
	})).Return(&models.Gig{ID: uuid.New(), ClientID: clientID, Title: "Logo", Category: models.CategoryOther, Status: models.GigStatusOpen}, nil).Once()

	gig, err := svc.CreateGig(ctx, &dto.CreateGigRequest{Title: "  Logo ", Description: "Vector logo", Budget: ptrFloat64(0), ClientID: clientID})
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusOpen, gig.Status)
	repo.AssertExpectations(t)
}

func TestGigService_CreateGig_ValidationError(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()

	_, err := svc.CreateGig(ctx, &dto.CreateGigRequest{Title: "", Description: "x", Budget: ptrFloat64(10), ClientID: uuid.New()})
	require.Error(t, err)
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.CreateGig(ctx, &dto.CreateGigRequest{Title: "t", Description: "x", Budget: ptrFloat64(-1), ClientID: uuid.New()})
	assert.ErrorIs(t, err, services.ErrValidation)

	_, err = svc.CreateGig(ctx, &dto.CreateGigRequest{Title: "t", Description: "x", Budget: ptrFloat64(1), Category: "gardening", ClientID: uuid.New()})
	assert.ErrorIs(t, err, services.ErrValidation)

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestGigService_ListGigs_Defaults(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()

	expected := models.GigFilter{Status: models.GigStatusOpen}
	repo.On("List", ctx, expected, 0, 10).Return([]models.Gig{{ID: uuid.New()}}, 21, nil).Once()

	page, err := svc.ListGigs(ctx, &dto.ListGigsRequest{Category: "all"})
	require.NoError(t, err)
	assert.Equal(t, 1, page.Page)
	assert.Equal(t, 3, page.Pages)
	assert.Equal(t, 21, page.Total)
	assert.Len(t, page.Gigs, 1)
	repo.AssertExpectations(t)
}

func TestGigService_ListGigs_FiltersAndPaging(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()

	expected := models.GigFilter{Search: "logo", Category: models.CategoryDesign, Status: models.GigStatusAssigned}
	repo.On("List", ctx, expected, 40, 20).Return([]models.Gig{}, 0, nil).Once()

	page, err := svc.ListGigs(ctx, &dto.ListGigsRequest{Search: " logo ", Category: "design", Status: "assigned", Page: 3, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 3, page.Page)
	assert.Equal(t, 0, page.Pages)
	repo.AssertExpectations(t)
}

func TestGigService_GetGig_NotFound(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()
	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(nil, storage.ErrNotFound).Once()

	_, err := svc.GetGig(ctx, id)
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestGigService_GetGig_Unavailable(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()
	id := uuid.New()
	repo.On("GetByID", ctx, id).Return(nil, errors.Join(storage.ErrUnavailable, errors.New("dial tcp: refused"))).Once()

	_, err := svc.GetGig(ctx, id)
	assert.ErrorIs(t, err, services.ErrStoreUnavailable)
}

func TestGigService_CompleteGig(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()
	owner := uuid.New()
	bidID := uuid.New()
	gigID := uuid.New()

	repo.On("GetByID", ctx, gigID).Return(&models.Gig{ID: gigID, ClientID: owner, Status: models.GigStatusAssigned, HiredBidID: &bidID}, nil)
	repo.On("Complete", ctx, gigID).Return(&models.Gig{ID: gigID, ClientID: owner, Status: models.GigStatusCompleted, HiredBidID: &bidID}, nil).Once()

	_, err := svc.CompleteGig(ctx, &dto.GigActionRequest{GigID: gigID, CallerID: uuid.New()})
	assert.ErrorIs(t, err, services.ErrForbidden)

	gig, err := svc.CompleteGig(ctx, &dto.GigActionRequest{GigID: gigID, CallerID: owner})
	require.NoError(t, err)
	assert.Equal(t, models.GigStatusCompleted, gig.Status)
	repo.AssertExpectations(t)
}

func TestGigService_CompleteGig_RequiresAssigned(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()
	owner := uuid.New()
	gigID := uuid.New()
	repo.On("GetByID", ctx, gigID).Return(&models.Gig{ID: gigID, ClientID: owner, Status: models.GigStatusOpen}, nil)

	_, err := svc.CompleteGig(ctx, &dto.GigActionRequest{GigID: gigID, CallerID: owner})
	assert.ErrorIs(t, err, services.ErrInvalidState)
	repo.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestGigService_CompleteGig_LostRaceIsConflict(t *testing.T) {
	ctx, svc, repo := setupGigServiceTest()
	owner := uuid.New()
	gigID := uuid.New()
	repo.On("GetByID", ctx, gigID).Return(&models.Gig{ID: gigID, ClientID: owner, Status: models.GigStatusAssigned}, nil)
	repo.On("Complete", ctx, gigID).Return(nil, storage.ErrStateMismatch).Once()

	_, err := svc.CompleteGig(ctx, &dto.GigActionRequest{GigID: gigID, CallerID: owner})
	assert.ErrorIs(t, err, services.ErrConflict)
}
