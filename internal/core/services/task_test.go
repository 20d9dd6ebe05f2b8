package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// mockTaskStore implements driven.TaskStore for testing
type mockTaskStore struct {
	tasks map[string]*domain.Task
}

func newMockTaskStore() *mockTaskStore {
	return &mockTaskStore{tasks: make(map[string]*domain.Task)}
}

func (m *mockTaskStore) Save(ctx context.Context, task *domain.Task) error {
	copied := *task
	m.tasks[task.ID] = &copied
	return nil
}

func (m *mockTaskStore) Get(ctx context.Context, userID, id string) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return nil, domain.ErrNotFound
	}
	copied := *task
	return &copied, nil
}

func (m *mockTaskStore) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	tasks := make([]*domain.Task, 0)
	for _, task := range m.tasks {
		if task.UserID == userID {
			tasks = append(tasks, task)
		}
	}
	return tasks, nil
}

func (m *mockTaskStore) Delete(ctx context.Context, userID, id string) error {
	task, ok := m.tasks[id]
	if !ok || task.UserID != userID {
		return domain.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

func TestTaskServiceCreate(t *testing.T) {
	store := newMockTaskStore()
	svc := NewTaskService(store)

	deadline := time.Now().Add(48 * time.Hour)
	task, err := svc.Create(context.Background(), "user-1", driving.CreateTaskRequest{
		Title:    "Finish chemistry report",
		Deadline: &deadline,
		Priority: domain.PriorityHigh,
		Category: domain.CategoryStudy,
		Subject:  "Chemistry",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.ID == "" {
		t.Error("expected generated id")
	}
	if task.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", task.UserID)
	}
	if task.Completed {
		t.Error("expected new task not completed")
	}
	if _, ok := store.tasks[task.ID]; !ok {
		t.Error("expected task persisted")
	}
}

func TestTaskServiceCreateDefaults(t *testing.T) {
	svc := NewTaskService(newMockTaskStore())

	task, err := svc.Create(context.Background(), "user-1", driving.CreateTaskRequest{
		Title: "Buy groceries",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if task.Priority != domain.PriorityMedium {
		t.Errorf("expected default priority medium, got %s", task.Priority)
	}
	if task.Category != domain.CategoryPersonal {
		t.Errorf("expected default category personal, got %s", task.Category)
	}
}

func TestTaskServiceCreateInvalid(t *testing.T) {
	svc := NewTaskService(newMockTaskStore())

	tests := []struct {
		name string
		req  driving.CreateTaskRequest
	}{
		{"empty title", driving.CreateTaskRequest{}},
		{"bad priority", driving.CreateTaskRequest{Title: "x", Priority: domain.TaskPriority("urgent")}},
		{"bad category", driving.CreateTaskRequest{Title: "x", Category: domain.TaskCategory("work")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "user-1", tt.req)
			if !errors.Is(err, domain.ErrInvalidInput) {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestTaskServiceUpdate(t *testing.T) {
	store := newMockTaskStore()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), "user-1", driving.CreateTaskRequest{
		Title:    "Draft essay",
		Category: domain.CategoryStudy,
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	newTitle := "Draft history essay"
	completed := true
	updated, err := svc.Update(context.Background(), "user-1", task.ID, driving.UpdateTaskRequest{
		Title:     &newTitle,
		Completed: &completed,
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Title != newTitle {
		t.Errorf("expected title updated, got %s", updated.Title)
	}
	if !updated.Completed {
		t.Error("expected completed set")
	}
	// Untouched fields survive a partial update.
	if updated.Category != domain.CategoryStudy {
		t.Errorf("expected category preserved, got %s", updated.Category)
	}
}

func TestTaskServiceUpdateNotFound(t *testing.T) {
	svc := NewTaskService(newMockTaskStore())

	title := "x"
	_, err := svc.Update(context.Background(), "user-1", "missing", driving.UpdateTaskRequest{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTaskServiceUpdateOtherUsersTask(t *testing.T) {
	store := newMockTaskStore()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), "user-1", driving.CreateTaskRequest{Title: "Private"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	title := "Stolen"
	_, err = svc.Update(context.Background(), "user-2", task.ID, driving.UpdateTaskRequest{Title: &title})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound for other user's task, got %v", err)
	}
}

func TestTaskServiceListAndDelete(t *testing.T) {
	store := newMockTaskStore()
	svc := NewTaskService(store)

	task, err := svc.Create(context.Background(), "user-1", driving.CreateTaskRequest{Title: "One"})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if _, err := svc.Create(context.Background(), "user-2", driving.CreateTaskRequest{Title: "Other"}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	tasks, err := svc.List(context.Background(), "user-1")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task for user-1, got %d", len(tasks))
	}

	if err := svc.Delete(context.Background(), "user-1", task.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if err := svc.Delete(context.Background(), "user-1", task.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("expected ErrNotFound on second delete, got %v", err)
	}
}
