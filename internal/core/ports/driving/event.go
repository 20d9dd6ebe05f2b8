package driving

import (
	"context"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// CreateEventRequest carries the user-supplied fields for a calendar event.
type CreateEventRequest struct {
	Title    string     `json:"title"`
	StartsAt time.Time  `json:"starts_at"`
	EndsAt   *time.Time `json:"ends_at,omitempty"`
	Location string     `json:"location,omitempty"`
	Notes    string     `json:"notes,omitempty"`
}

// EventService manages a user's calendar events.
type EventService interface {
	Create(ctx context.Context, userID string, req CreateEventRequest) (*domain.Event, error)
	List(ctx context.Context, userID string) ([]*domain.Event, error)
	Delete(ctx context.Context, userID, id string) error
}
