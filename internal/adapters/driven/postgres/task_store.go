package postgres

import (
	"context"
	"database/sql"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.TaskStore = (*TaskStore)(nil)

// TaskStore implements driven.TaskStore using PostgreSQL
type TaskStore struct {
	db *DB
}

// NewTaskStore creates a new TaskStore
func NewTaskStore(db *DB) *TaskStore {
	return &TaskStore{db: db}
}

// Save creates or updates a task
func (s *TaskStore) Save(ctx context.Context, task *domain.Task) error {
	query := `
		INSERT INTO tasks (id, user_id, title, description, deadline, priority, category, subject, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			deadline = EXCLUDED.deadline,
			priority = EXCLUDED.priority,
			category = EXCLUDED.category,
			subject = EXCLUDED.subject,
			completed = EXCLUDED.completed,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.UserID,
		task.Title,
		task.Description,
		NullTime(task.Deadline),
		string(task.Priority),
		string(task.Category),
		task.Subject,
		task.Completed,
		task.CreatedAt,
		task.UpdatedAt,
	)
	return err
}

// Get retrieves a task by ID, scoped to the owning user
func (s *TaskStore) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, deadline, priority, category, subject, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1 AND id = $2
	`

	var (
		task     domain.Task
		deadline sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, userID, id).Scan(
		&task.ID,
		&task.UserID,
		&task.Title,
		&task.Description,
		&deadline,
		&task.Priority,
		&task.Category,
		&task.Subject,
		&task.Completed,
		&task.CreatedAt,
		&task.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	task.Deadline = TimePtr(deadline)
	return &task, nil
}

// List returns all tasks for a user, soonest deadline first
func (s *TaskStore) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	query := `
		SELECT id, user_id, title, description, deadline, priority, category, subject, completed, created_at, updated_at
		FROM tasks
		WHERE user_id = $1
		ORDER BY deadline ASC NULLS LAST, created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]*domain.Task, 0)
	for rows.Next() {
		var (
			task     domain.Task
			deadline sql.NullTime
		)
		if err := rows.Scan(
			&task.ID,
			&task.UserID,
			&task.Title,
			&task.Description,
			&deadline,
			&task.Priority,
			&task.Category,
			&task.Subject,
			&task.Completed,
			&task.CreatedAt,
			&task.UpdatedAt,
		); err != nil {
			return nil, err
		}
		task.Deadline = TimePtr(deadline)
		tasks = append(tasks, &task)
	}
	return tasks, rows.Err()
}

// Delete removes a task, scoped to the owning user
func (s *TaskStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = $1 AND id = $2`, userID, id)
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
