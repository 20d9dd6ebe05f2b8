package driven

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// SessionStore persists user sessions.
type SessionStore interface {
	// Save stores a session.
	Save(ctx context.Context, session *domain.Session) error

	// Get retrieves a session by ID. Returns domain.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Session, error)

	// GetByRefreshToken retrieves a session by its refresh token.
	// Returns domain.ErrNotFound if missing.
	GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error)

	// Delete removes a session. Deleting a missing session is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes all sessions for a user.
	DeleteByUser(ctx context.Context, userID string) error

	// DeleteExpired removes expired sessions and reports how many were
	// removed. Backends with native TTL expiry may return 0.
	DeleteExpired(ctx context.Context) (int64, error)
}
