package service

import (
	"context"
	"errors"
	"strings"

	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/repository"
)

var (
	ErrUserNotFound    = errors.New("user not found")
	ErrNothingToUpdate = errors.New("provide at least one field to update")
)

// UserService handles profile reads, updates and account deletion.
type UserService struct {
	users *repository.UserRepository
}

// NewUserService creates a new UserService.
func NewUserService(users *repository.UserRepository) *UserService {
	return &UserService{users: users}
}

// Get returns the user's profile.
func (s *UserService) Get(ctx context.Context, userID int64) (model.UserResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}
	return model.NewUserResponse(user), nil
}

// UpdateProfile applies a partial update to name and/or email. Supplied
// fields are trimmed and must be non-empty; an email change re-checks
// uniqueness against every other user.
func (s *UserService) UpdateProfile(ctx context.Context, userID int64, req model.UpdateProfileRequest) (model.UserResponse, error) {
	if req.Name == nil && req.Email == nil {
		return model.UserResponse{}, ErrNothingToUpdate
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return model.UserResponse{}, ErrUserNotFound
		}
		return model.UserResponse{}, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return model.UserResponse{}, ErrNameRequired
		}
		user.Name = name
	}

	if req.Email != nil {
		email, err := normalizeEmail(*req.Email)
		if err != nil {
			return model.UserResponse{}, err
		}
		if email != user.Email {
			taken, err := s.users.EmailExists(ctx, email, userID)
			if err != nil {
				return model.UserResponse{}, err
			}
			if taken {
				return model.UserResponse{}, ErrEmailTaken
			}
			user.Email = email
		}
	}

	if err := s.users.Update(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.UserResponse{}, ErrEmailTaken
		}
		return model.UserResponse{}, err
	}

	return model.NewUserResponse(user), nil
}

// Delete removes the account and everything it owns. Idempotent: deleting
// an already-deleted account succeeds.
func (s *UserService) Delete(ctx context.Context, userID int64) error {
	return s.users.Delete(ctx, userID)
}
