package users

import (
	"context"
	"errors"
	"time"

	"github.com/ticketkinen/server/internal/domain"
	"github.com/ticketkinen/server/internal/repository"
)

type UserUseCase interface {
	Register(ctx context.Context, input RegisterInput) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Info(ctx context.Context, email string) (*Info, error)
	UpdateRole(ctx context.Context, email string, role domain.UserRole) error
	UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error
}

type RegisterInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	PhotoURL string `json:"photoURL"`
}

// Info is the public role/status view of a user.
type Info struct {
	Role   domain.UserRole   `json:"role"`
	Status domain.UserStatus `json:"status"`
}

type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Register stores a new account. The role is always "user"; vendors and
// admins are promoted later through UpdateRole.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*domain.User, error) {
	user := &domain.User{
		Name:      input.Name,
		Email:     input.Email,
		PhotoURL:  input.PhotoURL,
		Role:      domain.UserRoleUser,
		Status:    domain.UserStatusActive,
		CreatedAt: time.Now(),
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Exists(ctx context.Context, email string) (bool, error) {
	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

func (s *UserService) Info(ctx context.Context, email string) (*Info, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &Info{Role: user.Role, Status: user.Status}, nil
}

func (s *UserService) UpdateRole(ctx context.Context, email string, role domain.UserRole) error {
	return s.users.UpdateRole(ctx, email, role)
}

func (s *UserService) UpdateStatus(ctx context.Context, email string, status domain.UserStatus) error {
	return s.users.UpdateStatus(ctx, email, status)
}

var _ UserUseCase = (*UserService)(nil)
