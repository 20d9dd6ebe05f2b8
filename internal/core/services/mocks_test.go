package services

import (
	"context"
	"sync"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// mockOAuthStateStore implements driven.OAuthStateStore for testing
type mockOAuthStateStore struct {
	states map[string]*driven.OAuthState
}

func newMockOAuthStateStore() *mockOAuthStateStore {
	return &mockOAuthStateStore{
		states: make(map[string]*driven.OAuthState),
	}
}

func (m *mockOAuthStateStore) Save(ctx context.Context, state *driven.OAuthState) error {
	m.states[state.State] = state
	return nil
}

func (m *mockOAuthStateStore) Consume(ctx context.Context, state string) (*driven.OAuthState, error) {
	s, ok := m.states[state]
	if !ok {
		return nil, nil
	}
	delete(m.states, state)
	if time.Now().After(s.ExpiresAt) {
		return nil, nil
	}
	return s, nil
}

func (m *mockOAuthStateStore) Cleanup(ctx context.Context) (int64, error) {
	var removed int64
	now := time.Now()
	for k, v := range m.states {
		if now.After(v.ExpiresAt) {
			delete(m.states, k)
			removed++
		}
	}
	return removed, nil
}

// mockCredentialStore implements driven.CredentialStore for testing
type mockCredentialStore struct {
	mu    sync.Mutex
	creds map[string]*domain.Credential

	upsertCalls       int
	getCalls          int
	updateTokensCalls int

	// getHook, when set, runs on every Get with the call count. Lets
	// tests mutate the store between reads.
	getHook func(calls int)
}

func newMockCredentialStore() *mockCredentialStore {
	return &mockCredentialStore{
		creds: make(map[string]*domain.Credential),
	}
}

func credKey(userID string, provider domain.Provider) string {
	return userID + ":" + string(provider)
}

func (m *mockCredentialStore) Upsert(ctx context.Context, cred *domain.Credential) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.upsertCalls++

	copied := *cred
	key := credKey(cred.UserID, cred.Provider)
	if existing, ok := m.creds[key]; ok && copied.RefreshToken == "" {
		copied.RefreshToken = existing.RefreshToken
	}
	m.creds[key] = &copied
	return nil
}

func (m *mockCredentialStore) Get(ctx context.Context, userID string, provider domain.Provider) (*domain.Credential, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.getCalls++
	if m.getHook != nil {
		m.getHook(m.getCalls)
	}

	cred, ok := m.creds[credKey(userID, provider)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *cred
	return &copied, nil
}

func (m *mockCredentialStore) UpdateTokens(ctx context.Context, userID string, provider domain.Provider, accessToken, refreshToken string, expiry *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.updateTokensCalls++

	cred, ok := m.creds[credKey(userID, provider)]
	if !ok {
		return domain.ErrNotFound
	}
	cred.AccessToken = accessToken
	if refreshToken != "" {
		cred.RefreshToken = refreshToken
	}
	cred.TokenExpiry = expiry
	cred.UpdatedAt = time.Now()
	return nil
}

func (m *mockCredentialStore) Delete(ctx context.Context, userID string, provider domain.Provider) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := credKey(userID, provider)
	if _, ok := m.creds[key]; !ok {
		return domain.ErrNotFound
	}
	delete(m.creds, key)
	return nil
}

func (m *mockCredentialStore) List(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	summaries := make([]*domain.ConnectionSummary, 0)
	for _, cred := range m.creds {
		if cred.UserID == userID {
			summaries = append(summaries, cred.ToSummary())
		}
	}
	return summaries, nil
}

// mockOAuthClient implements driven.OAuthClient for testing
type mockOAuthClient struct {
	authURLErr   error
	exchangeErr  error
	refreshErr   error
	exchangeTok  *driven.OAuthToken
	refreshTok   *driven.OAuthToken
	exchangeCode string

	exchangeCalls int
	refreshCalls  int
}

func (m *mockOAuthClient) AuthURL(provider domain.Provider, state string) (string, error) {
	if m.authURLErr != nil {
		return "", m.authURLErr
	}
	return "https://accounts.google.com/o/oauth2/v2/auth?state=" + state, nil
}

func (m *mockOAuthClient) Exchange(ctx context.Context, provider domain.Provider, code string) (*driven.OAuthToken, error) {
	m.exchangeCalls++
	m.exchangeCode = code
	if m.exchangeErr != nil {
		return nil, m.exchangeErr
	}
	return m.exchangeTok, nil
}

func (m *mockOAuthClient) Refresh(ctx context.Context, provider domain.Provider, refreshToken string) (*driven.OAuthToken, error) {
	m.refreshCalls++
	if m.refreshErr != nil {
		return nil, m.refreshErr
	}
	return m.refreshTok, nil
}

// mockLock implements driven.DistributedLock for testing
type mockLock struct {
	mu   sync.Mutex
	held map[string]bool

	denyAcquire bool
}

func newMockLock() *mockLock {
	return &mockLock{held: make(map[string]bool)}
}

func (m *mockLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.denyAcquire || m.held[name] {
		return false, nil
	}
	m.held[name] = true
	return true, nil
}

func (m *mockLock) Release(ctx context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.held, name)
	return nil
}

// mockUserStore implements driven.UserStore for testing
type mockUserStore struct {
	users map[string]*domain.User
}

func newMockUserStore() *mockUserStore {
	return &mockUserStore{users: make(map[string]*domain.User)}
}

func (m *mockUserStore) Save(ctx context.Context, user *domain.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserStore) Get(ctx context.Context, id string) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockUserStore) Count(ctx context.Context) (int, error) {
	return len(m.users), nil
}

// mockSessionStore implements driven.SessionStore for testing
type mockSessionStore struct {
	sessions map[string]*domain.Session
}

func newMockSessionStore() *mockSessionStore {
	return &mockSessionStore{sessions: make(map[string]*domain.Session)}
}

func (m *mockSessionStore) Save(ctx context.Context, session *domain.Session) error {
	m.sessions[session.ID] = session
	return nil
}

func (m *mockSessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	session, ok := m.sessions[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return session, nil
}

func (m *mockSessionStore) GetByRefreshToken(ctx context.Context, refreshToken string) (*domain.Session, error) {
	for _, session := range m.sessions {
		if session.RefreshToken == refreshToken {
			return session, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockSessionStore) Delete(ctx context.Context, id string) error {
	delete(m.sessions, id)
	return nil
}

func (m *mockSessionStore) DeleteByUser(ctx context.Context, userID string) error {
	for id, session := range m.sessions {
		if session.UserID == userID {
			delete(m.sessions, id)
		}
	}
	return nil
}

func (m *mockSessionStore) DeleteExpired(ctx context.Context) (int64, error) {
	var removed int64
	for id, session := range m.sessions {
		if session.IsExpired() {
			delete(m.sessions, id)
			removed++
		}
	}
	return removed, nil
}

// mockAuthAdapter implements driven.AuthAdapter for testing
type mockAuthAdapter struct {
	parseErr error
}

func (m *mockAuthAdapter) HashPassword(password string) (string, error) {
	return "hashed:" + password, nil
}

func (m *mockAuthAdapter) VerifyPassword(password, hash string) bool {
	return hash == "hashed:"+password
}

func (m *mockAuthAdapter) GenerateToken(claims *domain.TokenClaims) (string, error) {
	return "token:" + claims.SessionID, nil
}

func (m *mockAuthAdapter) ParseToken(token string) (*domain.TokenClaims, error) {
	if m.parseErr != nil {
		return nil, m.parseErr
	}
	if len(token) <= len("token:") || token[:len("token:")] != "token:" {
		return nil, domain.ErrTokenInvalid
	}
	return &domain.TokenClaims{
		UserID:    "user-1",
		Email:     "student@example.com",
		SessionID: token[len("token:"):],
		IssuedAt:  time.Now().Unix(),
		ExpiresAt: time.Now().Add(time.Hour).Unix(),
	}, nil
}

// mockMailGateway implements driven.MailGateway for testing
type mockMailGateway struct {
	messages []*domain.Message
	err      error

	gotLimit int
}

func (m *mockMailGateway) RecentInbox(ctx context.Context, tokens driven.TokenProvider, limit int) ([]*domain.Message, error) {
	m.gotLimit = limit
	if _, err := tokens.AccessToken(ctx); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.messages, nil
}

// mockClassroomGateway implements driven.ClassroomGateway for testing
type mockClassroomGateway struct {
	announcements []*domain.Announcement
	err           error

	gotMaxCourses int
	gotPerCourse  int
}

func (m *mockClassroomGateway) RecentAnnouncements(ctx context.Context, tokens driven.TokenProvider, maxCourses, perCourse int) ([]*domain.Announcement, error) {
	m.gotMaxCourses = maxCourses
	m.gotPerCourse = perCourse
	if _, err := tokens.AccessToken(ctx); err != nil {
		return nil, err
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.announcements, nil
}
