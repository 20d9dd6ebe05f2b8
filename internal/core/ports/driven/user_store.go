package driven

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// Save creates or updates a user.
	Save(ctx context.Context, user *domain.User) error

	// Get retrieves a user by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.User, error)

	// GetByEmail retrieves a user by email. Returns domain.ErrNotFound if missing.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Count returns the total number of users. Used to gate the one-time
	// setup endpoint.
	Count(ctx context.Context) (int, error)
}
