package driving

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// ClassroomService fetches recent announcements through the user's Google
// Classroom connection.
type ClassroomService interface {
	FetchAnnouncements(ctx context.Context, userID string) ([]*domain.Announcement, error)
}
