package driving

import (
	"context"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// CreateTaskRequest carries the user-supplied fields for a new task.
type CreateTaskRequest struct {
	Title       string              `json:"title"`
	Description string              `json:"description"`
	Deadline    *time.Time          `json:"deadline,omitempty"`
	Priority    domain.TaskPriority `json:"priority"`
	Category    domain.TaskCategory `json:"category"`
	Subject     string              `json:"subject,omitempty"`
}

// UpdateTaskRequest mutates an existing task. Nil fields are left unchanged.
type UpdateTaskRequest struct {
	Title       *string              `json:"title,omitempty"`
	Description *string              `json:"description,omitempty"`
	Deadline    *time.Time           `json:"deadline,omitempty"`
	Priority    *domain.TaskPriority `json:"priority,omitempty"`
	Category    *domain.TaskCategory `json:"category,omitempty"`
	Subject     *string              `json:"subject,omitempty"`
	Completed   *bool                `json:"completed,omitempty"`
}

// TaskService manages a user's tasks.
type TaskService interface {
	Create(ctx context.Context, userID string, req CreateTaskRequest) (*domain.Task, error)
	Update(ctx context.Context, userID, id string, req UpdateTaskRequest) (*domain.Task, error)
	List(ctx context.Context, userID string) ([]*domain.Task, error)
	Delete(ctx context.Context, userID, id string) error
}
