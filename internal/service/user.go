package service

import (
	"context"
	"errors"

	"github.com/Kennygunderman/state-of-health-be/internal/models"
)

// UserRepository defines the persistence operations needed by the
// UserService.
type UserRepository interface {
	// GetByID returns the user or models.ErrUserNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail returns the user or models.ErrUserNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Create persists a new user.
	Create(ctx context.Context, user models.User) error
}

// UserService implements user provisioning. The user id comes from the
// external identity provider; this service only records it.
type UserService struct {
	repo UserRepository
}

// NewUserService constructs a UserService.
func NewUserService(repo UserRepository) *UserService {
	return &UserService{repo: repo}
}

// CreateUser records a new user. Fails with models.ErrUserExists when
// the id is taken and models.ErrEmailExists when the email is taken.
// Email shape is validated at the HTTP boundary, not here.
func (s *UserService) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	if _, err := s.repo.GetByID(ctx, user.ID); err == nil {
		return models.User{}, models.ErrUserExists
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}

	if _, err := s.repo.GetByEmail(ctx, user.Email); err == nil {
		return models.User{}, models.ErrEmailExists
	} else if !errors.Is(err, models.ErrUserNotFound) {
		return models.User{}, err
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return models.User{}, err
	}
	return user, nil
}
