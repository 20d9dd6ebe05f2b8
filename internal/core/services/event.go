package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure eventService implements EventService
var _ driving.EventService = (*eventService)(nil)

// eventService implements the EventService interface
type eventService struct {
	store driven.EventStore
}

// NewEventService creates a new EventService
func NewEventService(store driven.EventStore) driving.EventService {
	return &eventService{store: store}
}

// Create validates and stores a new calendar event
func (s *eventService) Create(ctx context.Context, userID string, req driving.CreateEventRequest) (*domain.Event, error) {
	now := time.Now()
	event := &domain.Event{
		ID:        uuid.NewString(),
		UserID:    userID,
		Title:     req.Title,
		StartsAt:  req.StartsAt,
		EndsAt:    req.EndsAt,
		Location:  req.Location,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.store.Save(ctx, event); err != nil {
		return nil, err
	}
	return event, nil
}

// List returns all events for a user
func (s *eventService) List(ctx context.Context, userID string) ([]*domain.Event, error) {
	return s.store.List(ctx, userID)
}

// Delete removes an event
func (s *eventService) Delete(ctx context.Context, userID, id string) error {
	return s.store.Delete(ctx, userID, id)
}
