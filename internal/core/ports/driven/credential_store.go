package driven

import (
	"context"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// CredentialStore persists OAuth credentials, one row per (user, provider).
// Implementations encrypt token material at rest.
type CredentialStore interface {
	// Upsert creates or replaces the credential for (UserID, Provider).
	// When the incoming RefreshToken is empty an existing stored refresh
	// token is preserved rather than overwritten.
	Upsert(ctx context.Context, cred *domain.Credential) error

	// Get retrieves the credential for (userID, provider) with decrypted
	// tokens. Returns domain.ErrNotFound if no row exists.
	Get(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error)

	// UpdateTokens overwrites the access token and expiry after a refresh.
	// An empty refreshToken preserves the stored one; refresh responses
	// normally do not reissue it.
	UpdateTokens(ctx context.Context, userID string, provider domain.Provider, accessToken, refreshToken string, expiry *time.Time) error

	// Delete removes the credential for (userID, provider).
	// Returns domain.ErrNotFound if no row exists.
	Delete(ctx context.Context, userID string, provider domain.Provider) error

	// List returns connection summaries (no token material) for a user.
	List(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error)
}
