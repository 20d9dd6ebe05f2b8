package driven

import (
	"context"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// OAuthState represents a pending OAuth authorization flow.
// The state value is a server-issued random token, single-use and bound to
// the user who initiated the flow, so the callback can both reject forged
// requests and attribute the exchange to the right account.
type OAuthState struct {
	// State is a cryptographically random string round-tripped through the
	// provider redirect.
	State string

	// UserID is the account that initiated the flow.
	UserID string

	// Provider is the connection being authorized.
	Provider domain.Provider

	// CreatedAt is when the state was issued.
	CreatedAt time.Time

	// ExpiresAt is when the state stops being accepted (typically 10 minutes).
	ExpiresAt time.Time
}

// OAuthStateStore manages pending OAuth flow states.
type OAuthStateStore interface {
	// Save stores a new state.
	Save(ctx context.Context, state *OAuthState) error

	// Consume atomically retrieves and deletes the state, enforcing
	// single-use semantics. Returns nil, nil if the state does not exist
	// or has expired.
	Consume(ctx context.Context, state string) (*OAuthState, error)

	// Cleanup removes expired states. Called periodically by the janitor.
	Cleanup(ctx context.Context) (int64, error)
}
