package http

import (
	"context"
	"net/http"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Function-backed service mocks. Handlers under test only exercise the
// functions a test assigns; the rest return domain.ErrNotFound.

type mockAuthService struct {
	authenticateFn func(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error)
	validateFn     func(ctx context.Context, token string) (*domain.AuthContext, error)
	refreshFn      func(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error)
	logoutFn       func(ctx context.Context, token string) error
}

func (m *mockAuthService) Authenticate(ctx context.Context, req domain.LoginRequest) (*domain.LoginResponse, error) {
	if m.authenticateFn != nil {
		return m.authenticateFn(ctx, req)
	}
	return nil, domain.ErrNotFound
}

func (m *mockAuthService) ValidateToken(ctx context.Context, token string) (*domain.AuthContext, error) {
	if m.validateFn != nil {
		return m.validateFn(ctx, token)
	}
	if token == "valid-token" {
		return &domain.AuthContext{UserID: "user-1", Email: "student@example.com", SessionID: "session-1"}, nil
	}
	return nil, domain.ErrTokenInvalid
}

func (m *mockAuthService) RefreshToken(ctx context.Context, req domain.RefreshRequest) (*domain.LoginResponse, error) {
	if m.refreshFn != nil {
		return m.refreshFn(ctx, req)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *mockAuthService) Logout(ctx context.Context, token string) error {
	if m.logoutFn != nil {
		return m.logoutFn(ctx, token)
	}
	return nil
}

type mockUserService struct {
	setupFn func(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error)
	getFn   func(ctx context.Context, id string) (*domain.User, error)
}

func (m *mockUserService) Setup(ctx context.Context, req driving.SetupRequest) (*driving.SetupResponse, error) {
	if m.setupFn != nil {
		return m.setupFn(ctx, req)
	}
	return nil, domain.ErrForbidden
}

func (m *mockUserService) Get(ctx context.Context, id string) (*domain.User, error) {
	if m.getFn != nil {
		return m.getFn(ctx, id)
	}
	return nil, domain.ErrNotFound
}

type mockOAuthService struct {
	connectFn     func(ctx context.Context, req driving.ConnectRequest) (*driving.ConnectResponse, error)
	callbackFn    func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResult, error)
	disconnectFn  func(ctx context.Context, userID string, provider domain.Provider) error
	connectionsFn func(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error)
}

func (m *mockOAuthService) Connect(ctx context.Context, req driving.ConnectRequest) (*driving.ConnectResponse, error) {
	if m.connectFn != nil {
		return m.connectFn(ctx, req)
	}
	return nil, domain.ErrNotConfigured
}

func (m *mockOAuthService) Callback(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResult, error) {
	if m.callbackFn != nil {
		return m.callbackFn(ctx, req)
	}
	return nil, domain.ErrInvalidState
}

func (m *mockOAuthService) Disconnect(ctx context.Context, userID string, provider domain.Provider) error {
	if m.disconnectFn != nil {
		return m.disconnectFn(ctx, userID, provider)
	}
	return domain.ErrNotFound
}

func (m *mockOAuthService) ListConnections(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error) {
	if m.connectionsFn != nil {
		return m.connectionsFn(ctx, userID)
	}
	return []*domain.ConnectionSummary{}, nil
}

type mockMailService struct {
	fetchFn func(ctx context.Context, userID string) ([]*domain.Message, error)
}

func (m *mockMailService) FetchInbox(ctx context.Context, userID string) ([]*domain.Message, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, userID)
	}
	return []*domain.Message{}, nil
}

type mockClassroomService struct {
	fetchFn func(ctx context.Context, userID string) ([]*domain.Announcement, error)
}

func (m *mockClassroomService) FetchAnnouncements(ctx context.Context, userID string) ([]*domain.Announcement, error) {
	if m.fetchFn != nil {
		return m.fetchFn(ctx, userID)
	}
	return []*domain.Announcement{}, nil
}

type mockAnalysisService struct {
	analyzeFn func(ctx context.Context, content string) (*domain.Analysis, error)
}

func (m *mockAnalysisService) Analyze(ctx context.Context, content string) (*domain.Analysis, error) {
	if m.analyzeFn != nil {
		return m.analyzeFn(ctx, content)
	}
	return nil, domain.ErrNotConfigured
}

type mockTaskService struct {
	createFn func(ctx context.Context, userID string, req driving.CreateTaskRequest) (*domain.Task, error)
	updateFn func(ctx context.Context, userID, id string, req driving.UpdateTaskRequest) (*domain.Task, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Task, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (m *mockTaskService) Create(ctx context.Context, userID string, req driving.CreateTaskRequest) (*domain.Task, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return nil, domain.ErrInvalidInput
}

func (m *mockTaskService) Update(ctx context.Context, userID, id string, req driving.UpdateTaskRequest) (*domain.Task, error) {
	if m.updateFn != nil {
		return m.updateFn(ctx, userID, id, req)
	}
	return nil, domain.ErrNotFound
}

func (m *mockTaskService) List(ctx context.Context, userID string) ([]*domain.Task, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []*domain.Task{}, nil
}

func (m *mockTaskService) Delete(ctx context.Context, userID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return domain.ErrNotFound
}

type mockEventService struct {
	createFn func(ctx context.Context, userID string, req driving.CreateEventRequest) (*domain.Event, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Event, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (m *mockEventService) Create(ctx context.Context, userID string, req driving.CreateEventRequest) (*domain.Event, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return nil, domain.ErrInvalidInput
}

func (m *mockEventService) List(ctx context.Context, userID string) ([]*domain.Event, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []*domain.Event{}, nil
}

func (m *mockEventService) Delete(ctx context.Context, userID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return domain.ErrNotFound
}

type mockBookmarkService struct {
	createFn func(ctx context.Context, userID string, req driving.CreateBookmarkRequest) (*domain.Bookmark, error)
	listFn   func(ctx context.Context, userID string) ([]*domain.Bookmark, error)
	deleteFn func(ctx context.Context, userID, id string) error
}

func (m *mockBookmarkService) Create(ctx context.Context, userID string, req driving.CreateBookmarkRequest) (*domain.Bookmark, error) {
	if m.createFn != nil {
		return m.createFn(ctx, userID, req)
	}
	return nil, domain.ErrInvalidInput
}

func (m *mockBookmarkService) List(ctx context.Context, userID string) ([]*domain.Bookmark, error) {
	if m.listFn != nil {
		return m.listFn(ctx, userID)
	}
	return []*domain.Bookmark{}, nil
}

func (m *mockBookmarkService) Delete(ctx context.Context, userID, id string) error {
	if m.deleteFn != nil {
		return m.deleteFn(ctx, userID, id)
	}
	return domain.ErrNotFound
}

// testServices is the mock bundle a test can customize before newTestServer.
type testServices struct {
	auth      *mockAuthService
	user      *mockUserService
	oauth     *mockOAuthService
	mail      *mockMailService
	classroom *mockClassroomService
	analysis  *mockAnalysisService
	task      *mockTaskService
	event     *mockEventService
	bookmark  *mockBookmarkService
}

func defaultTestServices() *testServices {
	return &testServices{
		auth:      &mockAuthService{},
		user:      &mockUserService{},
		oauth:     &mockOAuthService{},
		mail:      &mockMailService{},
		classroom: &mockClassroomService{},
		analysis:  &mockAnalysisService{},
		task:      &mockTaskService{},
		event:     &mockEventService{},
		bookmark:  &mockBookmarkService{},
	}
}

func newTestServer(svcs *testServices) http.Handler {
	server := NewServer(Config{Version: "test", AllowedOrigins: []string{"*"}}, Services{
		Auth:      svcs.auth,
		User:      svcs.user,
		OAuth:     svcs.oauth,
		Mail:      svcs.mail,
		Classroom: svcs.classroom,
		Analysis:  svcs.analysis,
		Task:      svcs.task,
		Event:     svcs.event,
		Bookmark:  svcs.bookmark,
	}, nil, nil)
	return server.Handler()
}
