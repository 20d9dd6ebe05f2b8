package driven

import (
	"context"
	"time"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// OAuthToken is a token response from the provider's token endpoint.
type OAuthToken struct {
	AccessToken string

	// RefreshToken is empty when the provider did not (re)issue one.
	RefreshToken string

	// Expiry is the absolute expiry of AccessToken; nil when the provider
	// reported none.
	Expiry *time.Time
}

// OAuthClient talks to the provider's authorization and token endpoints.
type OAuthClient interface {
	// AuthURL builds the consent URL for the provider with its scope set,
	// offline access, and forced consent (so a refresh token is issued on
	// every authorization). Returns domain.ErrNotConfigured when client
	// credentials are missing.
	AuthURL(provider domain.Provider, state string) (string, error)

	// Exchange trades a single-use authorization code for tokens.
	// Failures wrap domain.ErrExchangeFailed.
	Exchange(ctx context.Context, provider domain.Provider, code string) (*OAuthToken, error)

	// Refresh mints a new access token from a refresh token. A rejected
	// refresh token (revoked consent, invalid grant) wraps
	// domain.ErrReauthRequired.
	Refresh(ctx context.Context, provider domain.Provider, refreshToken string) (*OAuthToken, error)
}

// TokenProvider yields a usable access token for one (user, provider) pair,
// refreshing behind the scenes when needed. Gateways call it once per
// request; they never touch the credential store themselves.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, error)
}

// MailGateway reads a user's Gmail inbox and returns normalized messages.
type MailGateway interface {
	// RecentInbox lists the most recent inbox message ids (bounded by
	// limit) and hydrates a capped number of them into normalized
	// messages.
	RecentInbox(ctx context.Context, tokens TokenProvider, limit int) ([]*domain.Message, error)
}

// ClassroomGateway reads a user's Google Classroom announcements.
type ClassroomGateway interface {
	// RecentAnnouncements lists active courses (bounded by maxCourses) and
	// fetches up to perCourse announcements for each.
	RecentAnnouncements(ctx context.Context, tokens TokenProvider, maxCourses, perCourse int) ([]*domain.Announcement, error)
}
