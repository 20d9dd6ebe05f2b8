package driven

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// EventStore persists calendar events.
type EventStore interface {
	Save(ctx context.Context, event *domain.Event) error
	Get(ctx context.Context, userID, id string) (*domain.Event, error)
	List(ctx context.Context, userID string) ([]*domain.Event, error)
	Delete(ctx context.Context, userID, id string) error
}
