package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure userService implements UserService
var _ driving.UserService = (*userService)(nil)

// userService implements the UserService interface
type userService struct {
	userStore   driven.UserStore
	authAdapter driven.AuthAdapter
}

// NewUserService creates a new UserService
func NewUserService(userStore driven.UserStore, authAdapter driven.AuthAdapter) driving.UserService {
	return &userService{
		userStore:   userStore,
		authAdapter: authAdapter,
	}
}

// Setup creates the initial user. It can only run while no users exist.
func (s *userService) Setup(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error) {
	if req.Email == "" || req.Password == "" || req.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	count, err := s.userStore.Count(ctx)
	if err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, domain.ErrForbidden
	}

	hash, err := s.authAdapter.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(req.Email),
		PasswordHash: hash,
		Name:         req.Name,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.userStore.Save(ctx, user); err != nil {
		return nil, err
	}

	return &driving.SetupResponse{User: user.ToSummary()}, nil
}

// Get retrieves a user by ID
func (s *userService) Get(ctx context.Context, id string) (*domain.User, error) {
	return s.userStore.Get(ctx, id)
}
