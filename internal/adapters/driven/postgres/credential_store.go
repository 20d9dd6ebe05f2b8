package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.CredentialStore = (*CredentialStore)(nil)

// CredentialStore implements driven.CredentialStore using PostgreSQL.
// Token columns hold AES-GCM blobs produced by TokenCipher.
type CredentialStore struct {
	db     *DB
	cipher *TokenCipher
}

// NewCredentialStore creates a new CredentialStore
func NewCredentialStore(db *DB, cipher *TokenCipher) *CredentialStore {
	return &CredentialStore{db: db, cipher: cipher}
}

// Upsert creates or replaces the credential for (UserID, Provider).
// A missing incoming refresh token is stored as NULL and COALESCE keeps the
// previous ciphertext; NULLIF tricks do not work on encrypted columns.
func (s *CredentialStore) Upsert(ctx context.Context, cred *domain.Credential) error {
	accessBlob, err := s.cipher.Encrypt(cred.AccessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}

	var refreshBlob []byte
	if cred.RefreshToken != "" {
		refreshBlob, err = s.cipher.Encrypt(cred.RefreshToken)
		if err != nil {
			return fmt.Errorf("encrypt refresh token: %w", err)
		}
	}

	if cred.UpdatedAt.IsZero() {
		cred.UpdatedAt = time.Now()
	}

	query := `
		INSERT INTO oauth_credentials (user_id, provider, access_token, refresh_token, token_expiry, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id, provider) DO UPDATE SET
			access_token = EXCLUDED.access_token,
			refresh_token = COALESCE(EXCLUDED.refresh_token, oauth_credentials.refresh_token),
			token_expiry = EXCLUDED.token_expiry,
			updated_at = EXCLUDED.updated_at
	`

	_, err = s.db.ExecContext(ctx, query,
		cred.UserID,
		string(cred.Provider),
		accessBlob,
		refreshBlob,
		NullTime(cred.TokenExpiry),
		cred.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert credential: %w", err)
	}

	return nil
}

// Get retrieves the credential for (userID, provider) with decrypted tokens
func (s *CredentialStore) Get(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	query := `
		SELECT user_id, provider, access_token, refresh_token, token_expiry, updated_at
		FROM oauth_credentials
		WHERE user_id = $1 AND provider = $2
	`

	var (
		cred        domain.Credential
		accessBlob  []byte
		refreshBlob []byte
		tokenExpiry sql.NullTime
	)

	err := s.db.QueryRowContext(ctx, query, userID, string(provider)).Scan(
		&cred.UserID,
		&cred.Provider,
		&accessBlob,
		&refreshBlob,
		&tokenExpiry,
		&cred.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get credential: %w", err)
	}

	cred.AccessToken, err = s.cipher.Decrypt(accessBlob)
	if err != nil {
		return nil, fmt.Errorf("decrypt access token: %w", err)
	}
	if refreshBlob != nil {
		cred.RefreshToken, err = s.cipher.Decrypt(refreshBlob)
		if err != nil {
			return nil, fmt.Errorf("decrypt refresh token: %w", err)
		}
	}
	cred.TokenExpiry = TimePtr(tokenExpiry)

	return &cred, nil
}

// UpdateTokens overwrites the access token and expiry after a refresh.
// An empty refreshToken maps to NULL so COALESCE preserves the stored one.
func (s *CredentialStore) UpdateTokens(ctx context.Context, userID string, provider domain.Provider, accessToken, refreshToken string, expiry *time.Time) error {
	accessBlob, err := s.cipher.Encrypt(accessToken)
	if err != nil {
		return fmt.Errorf("encrypt access token: %w", err)
	}

	var refreshBlob []byte
	if refreshToken != "" {
		refreshBlob, err = s.cipher.Encrypt(refreshToken)
		if err != nil {
			return fmt.Errorf("encrypt refresh token: %w", err)
		}
	}

	query := `
		UPDATE oauth_credentials
		SET access_token = $3,
		    refresh_token = COALESCE($4, refresh_token),
		    token_expiry = $5,
		    updated_at = $6
		WHERE user_id = $1 AND provider = $2
	`

	result, err := s.db.ExecContext(ctx, query,
		userID,
		string(provider),
		accessBlob,
		refreshBlob,
		NullTime(expiry),
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("update tokens: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tokens rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// Delete removes the credential for (userID, provider)
func (s *CredentialStore) Delete(ctx context.Context, userID string, provider domain.Provider) error {
	query := `DELETE FROM oauth_credentials WHERE user_id = $1 AND provider = $2`

	result, err := s.db.ExecContext(ctx, query, userID, string(provider))
	if err != nil {
		return fmt.Errorf("delete credential: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete credential rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrNotFound
	}

	return nil
}

// List returns connection summaries (no token material) for a user
func (s *CredentialStore) List(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error) {
	query := `
		SELECT provider, token_expiry, updated_at
		FROM oauth_credentials
		WHERE user_id = $1
		ORDER BY provider
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list credentials: %w", err)
	}
	defer rows.Close()

	summaries := make([]*domain.ConnectionSummary, 0)
	for rows.Next() {
		var (
			summary     domain.ConnectionSummary
			tokenExpiry sql.NullTime
		)
		if err := rows.Scan(&summary.Provider, &tokenExpiry, &summary.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan credential: %w", err)
		}
		summary.Connected = true
		summary.TokenExpiry = TimePtr(tokenExpiry)
		summaries = append(summaries, &summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate credentials: %w", err)
	}

	return summaries, nil
}
