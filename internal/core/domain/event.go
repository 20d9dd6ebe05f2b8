package domain

import "time"

// Event is a calendar entry.
type Event struct {
	ID        string     `json:"id"`
	UserID    string     `json:"user_id"`
	Title     string     `json:"title"`
	StartsAt  time.Time  `json:"starts_at"`
	EndsAt    *time.Time `json:"ends_at,omitempty"`
	Location  string     `json:"location,omitempty"`
	Notes     string     `json:"notes,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// Validate checks the event's user-supplied fields.
func (e *Event) Validate() error {
	if e.Title == "" || e.StartsAt.IsZero() {
		return ErrInvalidInput
	}
	if e.EndsAt != nil && e.EndsAt.Before(e.StartsAt) {
		return ErrInvalidInput
	}
	return nil
}
