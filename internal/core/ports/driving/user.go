package driving

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// SetupRequest creates the initial user account.
type SetupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// SetupResponse confirms initial setup.
type SetupResponse struct {
	User *domain.UserSummary `json:"user"`
}

// UserService manages user accounts.
type UserService interface {
	// Setup creates the first user. Fails with domain.ErrForbidden once a
	// user exists.
	Setup(ctx context.Context, req SetupRequest) (*SetupResponse, error)

	// Get retrieves a user by ID.
	Get(ctx context.Context, id string) (*domain.User, error)
}
