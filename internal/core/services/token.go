package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

const (
	// refreshLockTTL bounds how long a crashed instance can hold a
	// refresh lock.
	refreshLockTTL = 30 * time.Second

	// refreshLockWait is how long a contending request waits before
	// re-reading the credential. The winner has usually finished by then.
	refreshLockWait = 500 * time.Millisecond
)

// TokenService is the token refresher: given a stored credential it returns
// a usable access token, transparently refreshing expired ones. Refreshes
// for the same (user, provider) are single-flighted through the distributed
// lock; if the lock is unavailable the refresh proceeds anyway, since
// last-writer-wins is safe for non-single-use refresh tokens.
type TokenService struct {
	creds  driven.CredentialStore
	client driven.OAuthClient
	lock   driven.DistributedLock

	lockTTL  time.Duration
	lockWait time.Duration
	now      func() time.Time
}

// TokenServiceConfig holds configuration for the TokenService.
type TokenServiceConfig struct {
	CredentialStore driven.CredentialStore
	OAuthClient     driven.OAuthClient

	// Lock is optional; without it concurrent refreshes race benignly.
	Lock driven.DistributedLock
}

// NewTokenService creates a token refresher.
func NewTokenService(cfg TokenServiceConfig) *TokenService {
	return &TokenService{
		creds:    cfg.CredentialStore,
		client:   cfg.OAuthClient,
		lock:     cfg.Lock,
		lockTTL:  refreshLockTTL,
		lockWait: refreshLockWait,
		now:      time.Now,
	}
}

// AccessToken returns a valid access token for (userID, provider).
//
// State machine: a credential whose expiry is nil or in the future is VALID
// and returned unchanged. An expiry at or before now is EXPIRED and requires
// a refresh token; a missing or rejected refresh token fails with
// domain.ErrReauthRequired and leaves the stored credential untouched.
func (s *TokenService) AccessToken(ctx context.Context, userID string, provider domain.Provider) (string, error) {
	cred, err := s.getCredential(ctx, userID, provider)
	if err != nil {
		return "", err
	}

	if !cred.Expired(s.now()) {
		return cred.AccessToken, nil
	}
	if !cred.CanRefresh() {
		return "", fmt.Errorf("%w: no refresh token stored for %s", domain.ErrReauthRequired, provider)
	}

	if s.lock != nil {
		name := refreshLockName(userID, provider)
		acquired, lockErr := s.lock.Acquire(ctx, name, s.lockTTL)
		if lockErr == nil && !acquired {
			// Another request is refreshing. Wait briefly and re-read;
			// if it finished, its token is ours too.
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(s.lockWait):
			}
			cred, err = s.getCredential(ctx, userID, provider)
			if err != nil {
				return "", err
			}
			if !cred.Expired(s.now()) {
				return cred.AccessToken, nil
			}
			// Still expired: fall through and refresh ourselves.
		}
		if lockErr == nil && acquired {
			defer func() { _ = s.lock.Release(ctx, name) }()
			// Re-read under the lock in case we lost the race before
			// acquiring it.
			cred, err = s.getCredential(ctx, userID, provider)
			if err != nil {
				return "", err
			}
			if !cred.Expired(s.now()) {
				return cred.AccessToken, nil
			}
		}
	}

	return s.refresh(ctx, cred)
}

// For returns a TokenProvider view scoped to one (user, provider) pair,
// suitable for handing to the data gateways.
func (s *TokenService) For(userID string, provider domain.Provider) driven.TokenProvider {
	return &scopedTokens{svc: s, userID: userID, provider: provider}
}

func (s *TokenService) getCredential(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	cred, err := s.creds.Get(ctx, userID, provider)
	if err == domain.ErrNotFound {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotConnected, provider)
	}
	if err != nil {
		return nil, fmt.Errorf("load credential: %w", err)
	}
	return cred, nil
}

func (s *TokenService) refresh(ctx context.Context, cred *domain.Credential) (string, error) {
	token, err := s.client.Refresh(ctx, cred.Provider, cred.RefreshToken)
	if err != nil {
		// The stored credential is deliberately left as-is: the record of
		// a prior connection is only removed by an explicit disconnect.
		return "", err
	}

	if err := s.creds.UpdateTokens(ctx, cred.UserID, cred.Provider,
		token.AccessToken, token.RefreshToken, token.Expiry); err != nil {
		return "", fmt.Errorf("store refreshed token: %w", err)
	}

	return token.AccessToken, nil
}

func refreshLockName(userID string, provider domain.Provider) string {
	return "oauth:refresh:" + userID + ":" + string(provider)
}

// scopedTokens implements driven.TokenProvider.
type scopedTokens struct {
	svc      *TokenService
	userID   string
	provider domain.Provider
}

func (t *scopedTokens) AccessToken(ctx context.Context) (string, error) {
	return t.svc.AccessToken(ctx, t.userID, t.provider)
}
