package postgres

import (
	"context"
	"database/sql"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Verify interface compliance
var _ driven.EventStore = (*EventStore)(nil)

// EventStore implements driven.EventStore using PostgreSQL
type EventStore struct {
	db *DB
}

// NewEventStore creates a new EventStore
func NewEventStore(db *DB) *EventStore {
	return &EventStore{db: db}
}

// Save creates or updates an event
func (s *EventStore) Save(ctx context.Context, event *domain.Event) error {
	query := `
		INSERT INTO events (id, user_id, title, starts_at, ends_at, location, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			starts_at = EXCLUDED.starts_at,
			ends_at = EXCLUDED.ends_at,
			location = EXCLUDED.location,
			notes = EXCLUDED.notes,
			updated_at = EXCLUDED.updated_at
	`

	_, err := s.db.ExecContext(ctx, query,
		event.ID,
		event.UserID,
		event.Title,
		event.StartsAt,
		NullTime(event.EndsAt),
		event.Location,
		event.Notes,
		event.CreatedAt,
		event.UpdatedAt,
	)
	return err
}

// Get retrieves an event by ID, scoped to the owning user
func (s *EventStore) Get(ctx context.Context, userID, id string) (*domain.Event, error) {
	query := `
		SELECT id, user_id, title, starts_at, ends_at, location, notes, created_at, updated_at
		FROM events
		WHERE user_id = $1 AND id = $2
	`

	var (
		event  domain.Event
		endsAt sql.NullTime
	)
	err := s.db.QueryRowContext(ctx, query, userID, id).Scan(
		&event.ID,
		&event.UserID,
		&event.Title,
		&event.StartsAt,
		&endsAt,
		&event.Location,
		&event.Notes,
		&event.CreatedAt,
		&event.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	event.EndsAt = TimePtr(endsAt)
	return &event, nil
}

// List returns all events for a user in start order
func (s *EventStore) List(ctx context.Context, userID string) ([]*domain.Event, error) {
	query := `
		SELECT id, user_id, title, starts_at, ends_at, location, notes, created_at, updated_at
		FROM events
		WHERE user_id = $1
		ORDER BY starts_at ASC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]*domain.Event, 0)
	for rows.Next() {
		var (
			event  domain.Event
			endsAt sql.NullTime
		)
		if err := rows.Scan(
			&event.ID,
			&event.UserID,
			&event.Title,
			&event.StartsAt,
			&endsAt,
			&event.Location,
			&event.Notes,
			&event.CreatedAt,
			&event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		event.EndsAt = TimePtr(endsAt)
		events = append(events, &event)
	}
	return events, rows.Err()
}

// Delete removes an event, scoped to the owning user
func (s *EventStore) Delete(ctx context.Context, userID, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM events WHERE user_id = $1 AND id = $2`, userID, id)
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
