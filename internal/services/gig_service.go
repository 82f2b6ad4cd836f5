package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gigflow/internal/models"
	"gigflow/internal/storage"
	"gigflow/internal/transport/dto"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type gigService struct {
	repo     storage.GigRepository
	validate *validator.Validate
}

// NewGigService creates a new instance of GigService.
func NewGigService(repo storage.GigRepository, validate *validator.Validate) GigService {
	return &gigService{repo: repo, validate: validate}
}

func (s *gigService) CreateGig(ctx context.Context, req *dto.CreateGigRequest) (*models.Gig, error) {
	req.Title = strings.TrimSpace(req.Title)
	if req.Category == "" {
		req.Category = models.CategoryOther
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}
	if req.ClientID == uuid.Nil {
		return nil, fmt.Errorf("%w: client id is required", ErrValidation)
	}

	gig, err := s.repo.Create(ctx, &models.Gig{
		ClientID:    req.ClientID,
		Title:       req.Title,
		Description: req.Description,
		Budget:      *req.Budget,
		Category:    req.Category,
	})
	if err != nil {
		log.Printf("CreateGig: Error creating gig for client %s: %v", req.ClientID, err)
		return nil, mapRepoError(err, "creating gig")
	}
	return gig, nil
}

// ListGigs pages through gigs. Status defaults to open and a category of
// "all" disables the category filter.
func (s *gigService) ListGigs(ctx context.Context, req *dto.ListGigsRequest) (*GigPage, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, validationError(err)
	}

	filter := models.GigFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: req.Category,
		Status:   models.GigStatus(req.Status),
	}
	if filter.Status == "" {
		filter.Status = models.GigStatusOpen
	}
	if filter.Category == "all" {
		filter.Category = ""
	}

	page, limit := req.Page, req.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	gigs, total, err := s.repo.List(ctx, filter, (page-1)*limit, limit)
	if err != nil {
		log.Printf("ListGigs: Error listing gigs: %v", err)
		return nil, mapRepoError(err, "listing gigs")
	}
	return &GigPage{
		Gigs:  gigs,
		Page:  page,
		Pages: (total + limit - 1) / limit,
		Total: total,
	}, nil
}

func (s *gigService) GetGig(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	gig, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s", id))
	}
	return gig, nil
}

func (s *gigService) ListMyGigs(ctx context.Context, clientID uuid.UUID) ([]models.Gig, error) {
	gigs, err := s.repo.ListByClient(ctx, clientID)
	if err != nil {
		log.Printf("ListMyGigs: Error listing gigs for client %s: %v", clientID, err)
		return nil, mapRepoError(err, fmt.Sprintf("listing gigs for client %s", clientID))
	}
	return gigs, nil
}

// CompleteGig marks an assigned gig completed. Only the owner may do this.
func (s *gigService) CompleteGig(ctx context.Context, req *dto.GigActionRequest) (*models.Gig, error) {
	gig, err := s.repo.GetByID(ctx, req.GigID)
	if err != nil {
		return nil, mapRepoError(err, fmt.Sprintf("fetching gig %s", req.GigID))
	}
	if gig.ClientID != req.CallerID {
		log.Printf("CompleteGig: Forbidden attempt by user %s on gig %s owned by %s", req.CallerID, gig.ID, gig.ClientID)
		return nil, fmt.Errorf("%w: only the gig owner can complete it", ErrForbidden)
	}
	if !gig.Status.CanTransitionTo(models.GigStatusCompleted) {
		return nil, fmt.Errorf("%w: gig is %s, not assigned", ErrInvalidState, gig.Status)
	}

	completed, err := s.repo.Complete(ctx, gig.ID)
	if err != nil {
		return nil, mapScopeError(err, fmt.Sprintf("completing gig %s", gig.ID))
	}
	log.Printf("Gig %s marked completed by client %s", gig.ID, req.CallerID)
	return completed, nil
}
