package users

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/ticketkinen/server/internal/domain"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) List(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) UpdateRole(ctx context.Context, email string, role domain.UserRole) error {
	args := m.Called(ctx, email, role)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error {
	args := m.Called(ctx, email, status)
	return args.Error(0)
}

func TestUserService_Register_Defaults(t *testing.T) {
	repo := &MockUserRepository{}
	repo.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).Return(nil)

	svc := NewUserService(repo)
	user, err := svc.Register(context.Background(), RegisterInput{
		Name:  "New User",
		Email: "new@example.com",
	})

	assert.NoError(t, err)
	assert.Equal(t, domain.UserRoleUser, user.Role)
	assert.Equal(t, domain.UserStatusActive, user.Status)
	assert.False(t, user.CreatedAt.IsZero())
	repo.AssertExpectations(t)
}

func TestUserService_Register_DuplicateEmail(t *testing.T) {
	repo := &MockUserRepository{}
	repo.On("Create", mock.Anything, mock.Anything).Return(domain.ErrDuplicateEmail)

	svc := NewUserService(repo)
	_, err := svc.Register(context.Background(), RegisterInput{Email: "dup@example.com"})

	assert.ErrorIs(t, err, domain.ErrDuplicateEmail)
}

func TestUserService_Exists(t *testing.T) {
	repo := &MockUserRepository{}
	repo.On("GetByEmail", mock.Anything, "known@example.com").
		Return(&domain.User{Email: "known@example.com"}, nil)

	svc := NewUserService(repo)
	exists, err := svc.Exists(context.Background(), "known@example.com")

	assert.NoError(t, err)
	assert.True(t, exists)
}

func TestUserService_Exists_UnknownEmail(t *testing.T) {
	repo := &MockUserRepository{}
	// A wrapped sentinel must still read as "no such user".
	repo.On("GetByEmail", mock.Anything, "ghost@example.com").
		Return(nil, fmt.Errorf("%w: invalid id %q", domain.ErrNotFound, "ghost@example.com"))

	svc := NewUserService(repo)
	exists, err := svc.Exists(context.Background(), "ghost@example.com")

	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestUserService_Exists_StoreError(t *testing.T) {
	repo := &MockUserRepository{}
	repo.On("GetByEmail", mock.Anything, "known@example.com").
		Return(nil, errors.New("store unreachable"))

	svc := NewUserService(repo)
	exists, err := svc.Exists(context.Background(), "known@example.com")

	assert.Error(t, err)
	assert.False(t, exists)
}

func TestUserService_Info(t *testing.T) {
	repo := &MockUserRepository{}
	repo.On("GetByEmail", mock.Anything, "vendor@example.com").
		Return(&domain.User{Role: domain.UserRoleVendor, Status: domain.UserStatusActive}, nil)

	svc := NewUserService(repo)
	info, err := svc.Info(context.Background(), "vendor@example.com")

	assert.NoError(t, err)
	assert.Equal(t, domain.UserRoleVendor, info.Role)
	assert.Equal(t, domain.UserStatusActive, info.Status)
}
