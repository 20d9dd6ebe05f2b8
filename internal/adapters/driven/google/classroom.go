package google

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	classroom "google.golang.org/api/classroom/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

var _ driven.ClassroomGateway = (*ClassroomGateway)(nil)

// courseFetchConcurrency bounds the per-course announcement fan-out.
const courseFetchConcurrency = 3

// ClassroomGateway reads courses and announcements through the Google
// Classroom API.
type ClassroomGateway struct {
	opts    []option.ClientOption
	timeout time.Duration
}

// NewClassroomGateway creates a Classroom gateway.
func NewClassroomGateway(opts ...option.ClientOption) *ClassroomGateway {
	return &ClassroomGateway{opts: opts, timeout: dataRequestTimeout}
}

// RecentAnnouncements lists the user's active courses and fetches recent
// announcements for each of the first maxCourses. Per-course failures are
// tolerated; that course simply contributes no announcements.
func (g *ClassroomGateway) RecentAnnouncements(ctx context.Context, tokens driven.TokenProvider, maxCourses, perCourse int) ([]*domain.Announcement, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	svc, err := g.service(ctx, tokens)
	if err != nil {
		return nil, err
	}

	courseList, err := svc.Courses.List().
		CourseStates("ACTIVE").
		Context(ctx).Do()
	if err != nil {
		return nil, classroomError("list courses", err)
	}

	courses := courseList.Courses
	if len(courses) > maxCourses {
		courses = courses[:maxCourses]
	}
	if len(courses) == 0 {
		return []*domain.Announcement{}, nil
	}

	perCourseResults := make([][]*domain.Announcement, len(courses))
	sem := make(chan struct{}, courseFetchConcurrency)
	var wg sync.WaitGroup
	for i, course := range courses {
		wg.Add(1)
		go func(i int, course *classroom.Course) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			perCourseResults[i] = g.courseAnnouncements(ctx, svc, course, perCourse)
		}(i, course)
	}
	wg.Wait()

	announcements := make([]*domain.Announcement, 0, len(courses)*perCourse)
	for _, batch := range perCourseResults {
		announcements = append(announcements, batch...)
	}
	return announcements, nil
}

// courseAnnouncements fetches one course's announcements, swallowing
// failures so a single broken course does not sink the whole response.
func (g *ClassroomGateway) courseAnnouncements(ctx context.Context, svc *classroom.Service, course *classroom.Course, perCourse int) []*domain.Announcement {
	resp, err := svc.Courses.Announcements.List(course.Id).
		PageSize(int64(perCourse)).
		Context(ctx).Do()
	if err != nil {
		return nil
	}

	out := make([]*domain.Announcement, 0, len(resp.Announcements))
	for _, a := range resp.Announcements {
		out = append(out, &domain.Announcement{
			ID:            a.Id,
			CourseID:      course.Id,
			CourseName:    course.Name,
			Text:          a.Text,
			CreationTime:  a.CreationTime,
			UpdateTime:    a.UpdateTime,
			CreatorUserID: a.CreatorUserId,
		})
	}
	return out
}

func (g *ClassroomGateway) service(ctx context.Context, tokens driven.TokenProvider) (*classroom.Service, error) {
	opts := append([]option.ClientOption{
		option.WithTokenSource(NewTokenSource(ctx, tokens)),
	}, g.opts...)
	svc, err := classroom.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create classroom service: %w", err)
	}
	return svc, nil
}

// classroomError maps a Classroom API failure onto domain errors. A 403 at
// the course listing step almost always means the Classroom API is not
// enabled on the OAuth project, which is actionable by the operator rather
// than the user.
func classroomError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, domain.ErrProviderTimeout)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case 401:
			return fmt.Errorf("%s: %w", op, domain.ErrReauthRequired)
		case 403:
			return fmt.Errorf("%s: %w", op, domain.ErrClassroomAPIDisabled)
		}
		return &domain.FetchError{
			Provider:   domain.ProviderClassroom,
			StatusCode: apiErr.Code,
			Message:    fmt.Sprintf("%s: %s", op, apiErr.Message),
		}
	}
	return fmt.Errorf("classroom %s: %w", op, err)
}
