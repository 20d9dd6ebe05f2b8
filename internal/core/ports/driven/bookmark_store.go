package driven

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// BookmarkStore persists bookmarks.
type BookmarkStore interface {
	Save(ctx context.Context, bookmark *domain.Bookmark) error
	Get(ctx context.Context, userID, id string) (*domain.Bookmark, error)
	List(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}
