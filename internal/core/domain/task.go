package domain

import "time"

// TaskPriority is the urgency bucket for a task.
type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// Valid reports whether the priority is one of the known values.
func (p TaskPriority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	}
	return false
}

// TaskCategory groups tasks on the dashboard.
type TaskCategory string

const (
	CategoryStudy    TaskCategory = "Study"
	CategoryPersonal TaskCategory = "Personal"
	CategoryAdmin    TaskCategory = "Admin"
)

// Valid reports whether the category is one of the known values.
func (c TaskCategory) Valid() bool {
	switch c {
	case CategoryStudy, CategoryPersonal, CategoryAdmin:
		return true
	}
	return false
}

// Task is a user's to-do item.
type Task struct {
	ID          string       `json:"id"`
	UserID      string       `json:"user_id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Deadline    *time.Time   `json:"deadline,omitempty"`
	Priority    TaskPriority `json:"priority"`
	Category    TaskCategory `json:"category"`
	Subject     string       `json:"subject,omitempty"`
	Completed   bool         `json:"completed"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// Validate checks the task's user-supplied fields.
func (t *Task) Validate() error {
	if t.Title == "" {
		return ErrInvalidInput
	}
	if !t.Priority.Valid() {
		return ErrInvalidInput
	}
	if !t.Category.Valid() {
		return ErrInvalidInput
	}
	return nil
}
