package driven

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// TaskStore persists tasks.
type TaskStore interface {
	Save(ctx context.Context, task *domain.Task) error
	Get(ctx context.Context, userID, id string) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	Delete(ctx context.Context, userID, id string) error
}
