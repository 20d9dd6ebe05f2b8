package services

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure classroomService implements ClassroomService
var _ driving.ClassroomService = (*classroomService)(nil)

const (
	// classroomCourseLimit bounds how many active courses are inspected
	// per fetch, to limit call volume.
	classroomCourseLimit = 3

	// classroomAnnouncementsPerCourse is the per-course page size.
	classroomAnnouncementsPerCourse = 5
)

// classroomService implements the ClassroomService interface.
type classroomService struct {
	tokens  *TokenService
	gateway driven.ClassroomGateway
}

// NewClassroomService creates a Classroom fetch service.
func NewClassroomService(tokens *TokenService, gateway driven.ClassroomGateway) driving.ClassroomService {
	return &classroomService{tokens: tokens, gateway: gateway}
}

// FetchAnnouncements returns recent announcements from the user's active
// courses, normalized.
func (s *classroomService) FetchAnnouncements(ctx context.Context, userID string) ([]*domain.Announcement, error) {
	return s.gateway.RecentAnnouncements(ctx,
		s.tokens.For(userID, domain.ProviderClassroom),
		classroomCourseLimit,
		classroomAnnouncementsPerCourse,
	)
}
