package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Ensure OAuthStateStore implements the interface.
var _ driven.OAuthStateStore = (*OAuthStateStore)(nil)

// DefaultOAuthStateTTL is the default time-to-live for OAuth states.
const DefaultOAuthStateTTL = 10 * time.Minute

// OAuthStateStore implements driven.OAuthStateStore using PostgreSQL.
type OAuthStateStore struct {
	db  *DB
	ttl time.Duration
}

// NewOAuthStateStore creates a new PostgreSQL-backed OAuth state store.
func NewOAuthStateStore(db *DB) *OAuthStateStore {
	return &OAuthStateStore{
		db:  db,
		ttl: DefaultOAuthStateTTL,
	}
}

// NewOAuthStateStoreWithTTL creates an OAuth state store with custom TTL.
func NewOAuthStateStoreWithTTL(db *DB, ttl time.Duration) *OAuthStateStore {
	return &OAuthStateStore{
		db:  db,
		ttl: ttl,
	}
}

// Save stores a new OAuth state.
func (s *OAuthStateStore) Save(ctx context.Context, state *driven.OAuthState) error {
	now := time.Now()
	if state.CreatedAt.IsZero() {
		state.CreatedAt = now
	}
	if state.ExpiresAt.IsZero() {
		state.ExpiresAt = now.Add(s.ttl)
	}

	query := `
		INSERT INTO oauth_states (state, user_id, provider, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
	`

	_, err := s.db.ExecContext(ctx, query,
		state.State,
		state.UserID,
		string(state.Provider),
		state.CreatedAt,
		state.ExpiresAt,
	)
	if err != nil {
		return fmt.Errorf("save oauth state: %w", err)
	}

	return nil
}

// Consume atomically retrieves and deletes the state.
// Uses DELETE ... RETURNING for atomic single-use semantics.
func (s *OAuthStateStore) Consume(ctx context.Context, state string) (*driven.OAuthState, error) {
	query := `
		DELETE FROM oauth_states
		WHERE state = $1 AND expires_at > NOW()
		RETURNING state, user_id, provider, created_at, expires_at
	`

	var (
		oauthState driven.OAuthState
		provider   string
	)
	err := s.db.QueryRowContext(ctx, query, state).Scan(
		&oauthState.State,
		&oauthState.UserID,
		&provider,
		&oauthState.CreatedAt,
		&oauthState.ExpiresAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil // State not found or expired
	}
	if err != nil {
		return nil, fmt.Errorf("consume oauth state: %w", err)
	}
	oauthState.Provider = domain.Provider(provider)

	return &oauthState, nil
}

// Cleanup removes expired states.
func (s *OAuthStateStore) Cleanup(ctx context.Context) (int64, error) {
	query := `DELETE FROM oauth_states WHERE expires_at < NOW()`

	result, err := s.db.ExecContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("cleanup oauth states: %w", err)
	}

	return result.RowsAffected()
}
