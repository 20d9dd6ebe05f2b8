package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"golang.org/x/oauth2"
	googleauth "golang.org/x/oauth2/google"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// Ensure OAuthClient implements the interface.
var _ driven.OAuthClient = (*OAuthClient)(nil)

// providerScopes maps each provider to its read-only scope set. Keeping the
// table here keeps the initiator and refresher provider-agnostic.
var providerScopes = map[domain.Provider][]string{
	domain.ProviderGmail: {
		"https://www.googleapis.com/auth/gmail.readonly",
	},
	domain.ProviderClassroom: {
		"https://www.googleapis.com/auth/classroom.courses.readonly",
		"https://www.googleapis.com/auth/classroom.announcements.readonly",
	},
}

// Config holds the registered OAuth application credentials.
type Config struct {
	ClientID     string
	ClientSecret string

	// RedirectURL must exactly match the callback URL registered with
	// Google; the same value is used at authorization and exchange time.
	RedirectURL string
}

// OAuthClient implements the Google OAuth authorization-code flow for the
// supported providers.
type OAuthClient struct {
	cfg        Config
	endpoint   oauth2.Endpoint
	httpClient *http.Client
}

// Option customises an OAuthClient.
type Option func(*OAuthClient)

// WithEndpoint overrides the Google endpoint. Used in tests.
func WithEndpoint(ep oauth2.Endpoint) Option {
	return func(c *OAuthClient) { c.endpoint = ep }
}

// WithHTTPClient overrides the HTTP client used for token endpoint calls.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *OAuthClient) { c.httpClient = hc }
}

// NewOAuthClient creates a Google OAuth client.
func NewOAuthClient(cfg Config, opts ...Option) *OAuthClient {
	c := &OAuthClient{
		cfg:        cfg,
		endpoint:   googleauth.Endpoint,
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// oauthConfig builds the per-provider oauth2 configuration.
func (c *OAuthClient) oauthConfig(provider domain.Provider) (*oauth2.Config, error) {
	if c.cfg.ClientID == "" || c.cfg.ClientSecret == "" {
		return nil, domain.ErrNotConfigured
	}
	scopes, ok := providerScopes[provider]
	if !ok {
		return nil, domain.ErrInvalidProvider
	}
	return &oauth2.Config{
		ClientID:     c.cfg.ClientID,
		ClientSecret: c.cfg.ClientSecret,
		RedirectURL:  c.cfg.RedirectURL,
		Scopes:       scopes,
		Endpoint:     c.endpoint,
	}, nil
}

// AuthURL builds the consent URL. access_type=offline plus prompt=consent
// forces Google to issue a refresh token on every authorization, trading
// user friction for refresh reliability.
func (c *OAuthClient) AuthURL(provider domain.Provider, state string) (string, error) {
	cfg, err := c.oauthConfig(provider)
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL(state,
		oauth2.AccessTypeOffline,
		oauth2.SetAuthURLParam("prompt", "consent"),
	), nil
}

// Exchange trades an authorization code for tokens.
func (c *OAuthClient) Exchange(ctx context.Context, provider domain.Provider, code string) (*driven.OAuthToken, error) {
	cfg, err := c.oauthConfig(provider)
	if err != nil {
		return nil, err
	}

	token, err := cfg.Exchange(c.context(ctx), code)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExchangeFailed, retrieveDetail(err))
	}

	return toOAuthToken(token, ""), nil
}

// Refresh mints a new access token from a refresh token. Google normally
// does not reissue the refresh token; the returned RefreshToken is empty in
// that case so callers preserve the stored one.
func (c *OAuthClient) Refresh(ctx context.Context, provider domain.Provider, refreshToken string) (*driven.OAuthToken, error) {
	cfg, err := c.oauthConfig(provider)
	if err != nil {
		return nil, err
	}

	src := cfg.TokenSource(c.context(ctx), &oauth2.Token{RefreshToken: refreshToken})
	token, err := src.Token()
	if err != nil {
		var rerr *oauth2.RetrieveError
		if errors.As(err, &rerr) {
			// invalid_grant and friends: the refresh token is dead and
			// only a new authorization can recover.
			return nil, fmt.Errorf("%w: %v", domain.ErrReauthRequired, retrieveDetail(err))
		}
		return nil, fmt.Errorf("refresh token: %w", err)
	}

	return toOAuthToken(token, refreshToken), nil
}

// context injects the configured HTTP client for the oauth2 package.
func (c *OAuthClient) context(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)
}

// toOAuthToken converts an oauth2.Token, blanking the refresh token when it
// merely echoes the one already stored.
func toOAuthToken(token *oauth2.Token, previousRefresh string) *driven.OAuthToken {
	out := &driven.OAuthToken{AccessToken: token.AccessToken}
	if token.RefreshToken != "" && token.RefreshToken != previousRefresh {
		out.RefreshToken = token.RefreshToken
	}
	if !token.Expiry.IsZero() {
		expiry := token.Expiry
		out.Expiry = &expiry
	}
	return out
}

// retrieveDetail extracts the provider's error payload when present.
func retrieveDetail(err error) string {
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		if rerr.ErrorCode != "" {
			if rerr.ErrorDescription != "" {
				return rerr.ErrorCode + ": " + rerr.ErrorDescription
			}
			return rerr.ErrorCode
		}
		return rerr.Response.Status
	}
	return err.Error()
}
