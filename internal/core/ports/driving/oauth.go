package driving

import (
	"context"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// ConnectRequest starts an authorization flow for a provider.
type ConnectRequest struct {
	UserID   string
	Provider domain.Provider
}

// ConnectResponse carries the consent URL the caller must open.
type ConnectResponse struct {
	AuthURL   string    `json:"authUrl"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// CallbackRequest is the provider redirect, treated as untrusted input.
type CallbackRequest struct {
	Code             string
	State            string
	Error            string
	ErrorDescription string
}

// CallbackResult reports which provider was connected.
type CallbackResult struct {
	Provider domain.Provider
}

// OAuthService manages third-party connection lifecycles: initiating
// consent, exchanging codes, and disconnecting.
type OAuthService interface {
	// Connect builds the provider consent URL and records a single-use,
	// user-bound state for the callback.
	Connect(ctx context.Context, req ConnectRequest) (*ConnectResponse, error)

	// Callback consumes the provider redirect: validates state, exchanges
	// the code, and stores the credential in one atomic write. Nothing is
	// persisted before the exchange succeeds.
	Callback(ctx context.Context, req CallbackRequest) (*CallbackResult, error)

	// Disconnect deletes the stored credential for (user, provider).
	// It does not revoke consent at the provider.
	Disconnect(ctx context.Context, userID string, provider domain.Provider) error

	// ListConnections returns connection summaries without token material.
	ListConnections(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error)
}
