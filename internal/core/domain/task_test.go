package domain

import (
	"testing"
	"time"
)

func TestTaskValidate(t *testing.T) {
	valid := Task{
		Title:    "Finish lab report",
		Priority: PriorityHigh,
		Category: CategoryStudy,
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name string
		task Task
	}{
		{"missing title", Task{Priority: PriorityLow, Category: CategoryAdmin}},
		{"unknown priority", Task{Title: "t", Priority: "urgent", Category: CategoryStudy}},
		{"unknown category", Task{Title: "t", Priority: PriorityLow, Category: "Work"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.task.Validate(); err != ErrInvalidInput {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}

func TestEventValidate(t *testing.T) {
	start := time.Now()
	before := start.Add(-time.Hour)

	valid := Event{Title: "Exam", StartsAt: start}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	inverted := Event{Title: "Exam", StartsAt: start, EndsAt: &before}
	if err := inverted.Validate(); err != ErrInvalidInput {
		t.Errorf("expected ErrInvalidInput for end before start, got %v", err)
	}
}

func TestBookmarkValidate(t *testing.T) {
	valid := Bookmark{Title: "Docs", URL: "https://example.com/docs"}
	if err := valid.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	tests := []struct {
		name     string
		bookmark Bookmark
	}{
		{"missing url", Bookmark{Title: "Docs"}},
		{"relative url", Bookmark{Title: "Docs", URL: "/docs"}},
		{"no host", Bookmark{Title: "Docs", URL: "https://"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.bookmark.Validate(); err != ErrInvalidInput {
				t.Errorf("expected ErrInvalidInput, got %v", err)
			}
		})
	}
}
