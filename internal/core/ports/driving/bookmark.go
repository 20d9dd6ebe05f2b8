package driving

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// CreateBookmarkRequest carries the user-supplied fields for a bookmark.
type CreateBookmarkRequest struct {
	Title  string `json:"title"`
	URL    string `json:"url"`
	Folder string `json:"folder,omitempty"`
}

// BookmarkService manages a user's bookmarks.
type BookmarkService interface {
	Create(ctx context.Context, userID string, req CreateBookmarkRequest) (*domain.Bookmark, error)
	List(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	Delete(ctx context.Context, userID, id string) error
}
