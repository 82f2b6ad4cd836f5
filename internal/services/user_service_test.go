package services_test

import (
	"context"
	"testing"
	"time"

	"gigflow/internal/models"
	"gigflow/internal/services"
	"gigflow/internal/storage"
	"gigflow/internal/transport/dto"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

func setupUserServiceTest() (context.Context, services.UserService, *MockUserRepository) {
	repo := new(MockUserRepository)
	return context.Background(), services.NewUserService(repo, dto.NewValidator(), testSecret, time.Hour), repo
}

func TestUserService_Register_Success(t *testing.T) {
	ctx, svc, repo := setupUserServiceTest()
	userID := uuid.New()

	repo.On("Create", ctx, mock.MatchedBy(func(u *models.User) bool {
		return u.Email == "ada@example.com" && bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("secret1")) == nil
	})).Return(&models.User{ID: userID, Name: "Ada", Email: "ada@example.com"}, nil).Once()

	user, token, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: " Ada@Example.com ", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, userID, user.ID)

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) { return []byte(testSecret), nil })
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, userID.String(), claims.Subject)
	repo.AssertExpectations(t)
}

func TestUserService_Register_Duplicate(t *testing.T) {
	ctx, svc, repo := setupUserServiceTest()
	repo.On("Create", ctx, mock.Anything).Return(nil, storage.ErrConflict).Once()

	_, _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "ada@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrConflict)
}

func TestUserService_Register_Validation(t *testing.T) {
	ctx, svc, repo := setupUserServiceTest()

	_, _, err := svc.Register(ctx, &dto.RegisterRequest{Name: "Ada", Email: "not-an-email", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestUserService_Login(t *testing.T) {
	ctx, svc, repo := setupUserServiceTest()
	hash, err := bcrypt.GenerateFromPassword([]byte("secret1"), bcrypt.MinCost)
	require.NoError(t, err)
	user := &models.User{ID: uuid.New(), Email: "ada@example.com", PasswordHash: string(hash)}

	repo.On("GetByEmail", ctx, "ada@example.com").Return(user, nil)
	repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, storage.ErrNotFound)

	got, token, err := svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.NotEmpty(t, token)

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "ada@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, services.ErrInvalidCredentials)
}
