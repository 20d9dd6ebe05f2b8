package domain

import (
	"net/url"
	"time"
)

// Bookmark is a saved link.
type Bookmark struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Title     string    `json:"title"`
	URL       string    `json:"url"`
	Folder    string    `json:"folder,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Validate checks the bookmark's user-supplied fields.
func (b *Bookmark) Validate() error {
	if b.Title == "" || b.URL == "" {
		return ErrInvalidInput
	}
	u, err := url.Parse(b.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ErrInvalidInput
	}
	return nil
}
