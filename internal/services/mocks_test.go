package services_test

import (
	"context"

	"gigflow/internal/models"
	"gigflow/internal/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

func ptrFloat64(f float64) *float64 { return &f }

// MockUserRepository is a testify mock of storage.UserRepository.
type MockUserRepository struct {
	mock.Mock
}

var _ storage.UserRepository = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {
	args := m.Called(ctx, user)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if u, ok := args.Get(0).(*models.User); ok {
		return u, args.Error(1)
	}
	return nil, args.Error(1)
}

// MockGigRepository is a testify mock of storage.GigRepository.
type MockGigRepository struct {
	mock.Mock
}

var _ storage.GigRepository = (*MockGigRepository)(nil)

func (m *MockGigRepository) gig(args mock.Arguments) (*models.Gig, error) {
	if g, ok := args.Get(0).(*models.Gig); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockGigRepository) Create(ctx context.Context, gig *models.Gig) (*models.Gig, error) {
	return m.gig(m.Called(ctx, gig))
}

func (m *MockGigRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Gig, error) {
	return m.gig(m.Called(ctx, id))
}

func (m *MockGigRepository) List(ctx context.Context, filter models.GigFilter, offset, limit int) ([]models.Gig, int, error) {
	args := m.Called(ctx, filter, offset, limit)
	gigs, _ := args.Get(0).([]models.Gig)
	return gigs, args.Int(1), args.Error(2)
}

func (m *MockGigRepository) ListByClient(ctx context.Context, clientID uuid.UUID) ([]models.Gig, error) {
	args := m.Called(ctx, clientID)
	gigs, _ := args.Get(0).([]models.Gig)
	return gigs, args.Error(1)
}

func (m *MockGigRepository) Assign(ctx context.Context, gigID, bidID uuid.UUID) (*models.Gig, error) {
	return m.gig(m.Called(ctx, gigID, bidID))
}

func (m *MockGigRepository) Cancel(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	return m.gig(m.Called(ctx, gigID))
}

func (m *MockGigRepository) Complete(ctx context.Context, gigID uuid.UUID) (*models.Gig, error) {
	return m.gig(m.Called(ctx, gigID))
}
