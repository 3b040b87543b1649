package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"github.com/spendtrack/spendtrack-go/internal/auth"
	"github.com/spendtrack/spendtrack-go/internal/model"
	"github.com/spendtrack/spendtrack-go/internal/repository"
)

var (
	ErrNameRequired       = errors.New("name is required")
	ErrEmailRequired      = errors.New("email is required")
	ErrPasswordRequired   = errors.New("password is required")
	ErrInvalidEmail       = errors.New("invalid email address")
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// AuthService handles signup and login.
type AuthService struct {
	users     *repository.UserRepository
	hasher    *auth.Hasher
	tokens    *auth.TokenService
	dummyHash string
}

// NewAuthService creates a new AuthService. A throwaway hash is computed up
// front so login can burn the same hashing cost whether or not the email
// exists, keeping the failure latency uniform.
func NewAuthService(users *repository.UserRepository, hasher *auth.Hasher, tokens *auth.TokenService) *AuthService {
	dummy, err := hasher.Hash("spendtrack-dummy-password")
	if err != nil {
		dummy = ""
	}
	return &AuthService{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		dummyHash: dummy,
	}
}

// Signup creates a new user account and returns an auth token.
func (s *AuthService) Signup(ctx context.Context, req model.SignupRequest) (model.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	email, err := normalizeEmail(req.Email)

	switch {
	case name == "":
		return model.AuthResponse{}, ErrNameRequired
	case strings.TrimSpace(req.Email) == "":
		return model.AuthResponse{}, ErrEmailRequired
	case err != nil:
		return model.AuthResponse{}, err
	case req.Password == "":
		return model.AuthResponse{}, ErrPasswordRequired
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return model.AuthResponse{}, err
	}

	user := &model.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return model.AuthResponse{}, ErrEmailTaken
		}
		return model.AuthResponse{}, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: model.NewUserResponse(user)}, nil
}

// Login authenticates a user and returns an auth token. Unknown email and
// wrong password are the same failure to the caller.
func (s *AuthService) Login(ctx context.Context, req model.LoginRequest) (model.AuthResponse, error) {
	if strings.TrimSpace(req.Email) == "" {
		return model.AuthResponse{}, ErrEmailRequired
	}
	if req.Password == "" {
		return model.AuthResponse{}, ErrPasswordRequired
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			// Burn a comparison anyway so the miss costs the same.
			if s.dummyHash != "" {
				s.hasher.Verify(req.Password, s.dummyHash)
			}
			return model.AuthResponse{}, ErrInvalidCredentials
		}
		return model.AuthResponse{}, err
	}

	match, err := s.hasher.Verify(req.Password, user.PasswordHash)
	if err != nil {
		return model.AuthResponse{}, err
	}
	if !match {
		return model.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return model.AuthResponse{}, err
	}

	return model.AuthResponse{Token: token, User: model.NewUserResponse(user)}, nil
}

// normalizeEmail trims, lowercases and validates an email address.
// Uniqueness checks are therefore case-insensitive.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", ErrEmailRequired
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", ErrInvalidEmail
	}
	return email, nil
}
