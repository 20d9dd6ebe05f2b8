package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure oauthService implements OAuthService
var _ driving.OAuthService = (*oauthService)(nil)

// DefaultStateTTL is how long an issued authorization state is accepted.
const DefaultStateTTL = 10 * time.Minute

// OAuthServiceConfig holds configuration for the OAuth service.
type OAuthServiceConfig struct {
	// OAuthClient talks to the provider's auth and token endpoints.
	OAuthClient driven.OAuthClient

	// StateStore persists pending flow states.
	StateStore driven.OAuthStateStore

	// CredentialStore persists exchanged tokens.
	CredentialStore driven.CredentialStore

	// StateTTL overrides DefaultStateTTL when non-zero.
	StateTTL time.Duration
}

// oauthService implements the OAuthService interface.
type oauthService struct {
	client   driven.OAuthClient
	states   driven.OAuthStateStore
	creds    driven.CredentialStore
	stateTTL time.Duration
}

// NewOAuthService creates a new OAuth connection service.
func NewOAuthService(cfg OAuthServiceConfig) driving.OAuthService {
	ttl := cfg.StateTTL
	if ttl == 0 {
		ttl = DefaultStateTTL
	}
	return &oauthService{
		client:   cfg.OAuthClient,
		states:   cfg.StateStore,
		creds:    cfg.CredentialStore,
		stateTTL: ttl,
	}
}

// Connect starts an authorization flow: it issues a single-use state bound
// to the requesting user and returns the provider consent URL.
func (s *oauthService) Connect(ctx context.Context, req driving.ConnectRequest) (*driving.ConnectResponse, error) {
	if _, err := domain.ParseProvider(string(req.Provider)); err != nil {
		return nil, err
	}

	state, err := generateState()
	if err != nil {
		return nil, fmt.Errorf("generate state: %w", err)
	}

	// AuthURL fails with ErrNotConfigured before anything is persisted.
	authURL, err := s.client.AuthURL(req.Provider, state)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	expiresAt := now.Add(s.stateTTL)
	if err := s.states.Save(ctx, &driven.OAuthState{
		State:     state,
		UserID:    req.UserID,
		Provider:  req.Provider,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}); err != nil {
		return nil, fmt.Errorf("save oauth state: %w", err)
	}

	return &driving.ConnectResponse{
		AuthURL:   authURL,
		ExpiresAt: expiresAt,
	}, nil
}

// Callback completes the flow. The credential upsert is the single write;
// nothing is persisted if any earlier step fails.
func (s *oauthService) Callback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResult, error) {
	// The provider reporting an error ends the flow before any exchange.
	if req.Error != "" {
		if req.ErrorDescription != "" {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrConsentDenied, req.Error, req.ErrorDescription)
		}
		return nil, fmt.Errorf("%w: %s", domain.ErrConsentDenied, req.Error)
	}
	if req.Code == "" || req.State == "" {
		return nil, domain.ErrInvalidState
	}

	// State is untrusted input: consume it atomically so it is single-use,
	// and resolve the acting user from the stored record rather than from
	// anything the redirect carries.
	pending, err := s.states.Consume(ctx, req.State)
	if err != nil {
		return nil, fmt.Errorf("consume oauth state: %w", err)
	}
	if pending == nil {
		return nil, domain.ErrInvalidState
	}

	token, err := s.client.Exchange(ctx, pending.Provider, req.Code)
	if err != nil {
		return nil, err
	}

	if err := s.creds.Upsert(ctx, &domain.Credential{
		UserID:       pending.UserID,
		Provider:     pending.Provider,
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenExpiry:  token.Expiry,
		UpdatedAt:    time.Now(),
	}); err != nil {
		return nil, fmt.Errorf("store credential: %w", err)
	}

	return &driving.CallbackResult{Provider: pending.Provider}, nil
}

// Disconnect removes the stored credential. Consent at the provider is left
// intact; the user can revoke it from their Google account settings.
func (s *oauthService) Disconnect(ctx context.Context, userID string, provider domain.Provider) error {
	if _, err := domain.ParseProvider(string(provider)); err != nil {
		return err
	}
	return s.creds.Delete(ctx, userID, provider)
}

// ListConnections returns connection summaries for the user.
func (s *oauthService) ListConnections(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error) {
	return s.creds.List(ctx, userID)
}

// generateState creates a cryptographically random state token.
func generateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
