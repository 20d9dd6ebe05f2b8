package driving

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// AuthService handles authentication and session management.
type AuthService interface {
	// Authenticate validates credentials and creates a session.
	Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)

	// ValidateToken validates a session token and returns the auth context.
	ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error)

	// RefreshToken exchanges a session refresh token for a new session.
	RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)

	// Logout invalidates the session behind a token.
	Logout(ctx context.Context, token string) error
}
