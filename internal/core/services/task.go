package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure taskService implements TaskService
var _ driving.TaskService = (*taskService)(nil)

// taskService implements the TaskService interface
type taskService struct {
	store driven.TaskStore
}

// NewTaskService creates a new TaskService
func NewTaskService(store driven.TaskStore) driving.TaskService {
	return &taskService{store: store}
}

// Create validates and stores a new task
func (s *taskService) Create(ctx context.Context, userID string, req driving.CreateTaskRequest) (*domain.Task, error) {
	now := time.Now()
	task := &domain.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		Deadline:    req.Deadline,
		Priority:    req.Priority,
		Category:    req.Category,
		Subject:     req.Subject,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if task.Category == "" {
		task.Category = domain.CategoryPersonal
	}
	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies the non-nil fields of req to an existing task
func (s *taskService) Update(ctx context.Context, userID, id string, req driving.UpdateTaskRequest) (*domain.Task, error) {
	task, err := s.store.Get(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Deadline != nil {
		task.Deadline = req.Deadline
	}
	if req.Priority != nil {
		task.Priority = *req.Priority
	}
	if req.Category != nil {
		task.Category = *req.Category
	}
	if req.Subject != nil {
		task.Subject = *req.Subject
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}
	task.UpdatedAt = time.Now()

	if err := task.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// List returns all tasks for a user
func (s *taskService) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	return s.store.List(ctx, userID)
}

// Delete removes a task
func (s *taskService) Delete(ctx context.Context, userID, id string) error {
	return s.store.Delete(ctx, userID, id)
}
