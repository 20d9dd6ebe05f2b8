package postgres

import (
	"context"
	"database/sql"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.BookmarkStore = (*BookmarkStore)(nil)

// BookmarkStore implements driven.BookmarkStore using PostgreSQL
type BookmarkStore struct {
	db *DB
}

// NewBookmarkStore creates a new BookmarkStore
func NewBookmarkStore(db *DB) *BookmarkStore {
	return &BookmarkStore{db: db}
}

// Save creates or updates a bookmark
func (s *BookmarkStore) Save(ctx context.Context, bookmark *domain.Bookmark) error {
	query := `
		INSERT INTO bookmarks (id, user_id, title, url, folder, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			url = EXCLUDED.url,
			folder = EXCLUDED.folder
	`

	_, err := s.db.ExecContext(ctx, query,
		bookmark.ID,
		bookmark.UserID,
		bookmark.Title,
		bookmark.URL,
		bookmark.Folder,
		bookmark.CreatedAt,
	)
	return err
}

// Get retrieves a bookmark by ID, scoped to the owning user
func (s *BookmarkStore) Get(ctx context.Context, userID, id string) (*domain.Bookmark, error) {
	query := `
		SELECT id, user_id, title, url, folder, created_at
		FROM bookmarks
		WHERE user_id = $1 AND id = $2
	`

	var bookmark domain.Bookmark
	err := s.db.QueryRowContext(ctx, query, userID, id).Scan(
		&bookmark.ID,
		&bookmark.UserID,
		&bookmark.Title,
		&bookmark.URL,
		&bookmark.Folder,
		&bookmark.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &bookmark, nil
}

// List returns all bookmarks for a user, newest first
func (s *BookmarkStore) List(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	query := `
		SELECT id, user_id, title, url, folder, created_at
		FROM bookmarks
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	bookmarks := make([]*domain.Bookmark, 0)
	for rows.Next() {
		var bookmark domain.Bookmark
		if err := rows.Scan(
			&bookmark.ID,
			&bookmark.UserID,
			&bookmark.Title,
			&bookmark.URL,
			&bookmark.Folder,
			&bookmark.CreatedAt,
		); err != nil {
			return nil, err
		}
		bookmarks = append(bookmarks, &bookmark)
	}
	return bookmarks, rows.Err()
}

// Delete removes a bookmark, scoped to the owning user
func (s *BookmarkStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM bookmarks WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return err
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
