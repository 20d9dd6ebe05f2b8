package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure bookmarkService implements BookmarkService
var _ driving.BookmarkService = (*bookmarkService)(nil)

// bookmarkService implements the BookmarkService interface
type bookmarkService struct {
	store driven.BookmarkStore
}

// NewBookmarkService creates a new BookmarkService
func NewBookmarkService(store driven.BookmarkStore) driving.BookmarkService {
	return &bookmarkService{store: store}
}

// Create validates and stores a new bookmark
func (s *bookmarkService) Create(ctx context.Context, userID string, req driving.CreateBookmarkRequest) (*domain.Bookmark, error) {
	bookmark := &domain.Bookmark{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		URL:       req.URL,
		Folder:    req.Folder,
		CreatedAt: time.Now(),
	}
	if err := bookmark.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, bookmark); err != nil {
		return nil, err
	}
	return bookmark, nil
}

// List returns all bookmarks for a user
func (s *bookmarkService) List(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	return s.store.List(ctx, userID)
}

// Delete removes a bookmark
func (s *bookmarkService) Delete(ctx context.Context, userID, id string) error {
	return s.store.Delete(ctx, userID, id)
}
