package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

func TestConnectionStart(t *testing.T) {
	svcs := defaultTestServices()
	svcs.oauth.connectFn = func(ctx context.Context, req driving.ConnectRequest) (*driving.ConnectResponse, error) {
		require.Equal(t, "user-1", req.UserID)
		require.Equal(t, domain.ProviderGmail, req.Provider)
		return &driving.ConnectResponse{
			AuthURL:   "https://accounts.google.com/o/oauth2/v2/auth?state=abc",
			ExpiresAt: time.Now().Add(10 * time.Minute),
		}, nil
	}
	handler := newTestServer(svcs)

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/connections/gmail/start", "valid-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "accounts.google.com")
}

func TestConnectionStartUnknownProvider(t *testing.T) {
	handler := newTestServer(defaultTestServices())

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/connections/outlook/start", "valid-token", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown provider")
}

func TestConnectionStartNotConfigured(t *testing.T) {
	// The default mock returns ErrNotConfigured when no connectFn is set.
	handler := newTestServer(defaultTestServices())

	rec := doRequest(t, handler, http.MethodPost, "/api/v1/connections/gmail/start", "valid-token", "")
	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "oauth client is not configured")
}

func TestConnectionCallbackSuccess(t *testing.T) {
	svcs := defaultTestServices()
	svcs.oauth.callbackFn = func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResult, error) {
		require.Equal(t, "auth-code", req.Code)
		require.Equal(t, "state-1", req.State)
		return &driving.CallbackResult{Provider: domain.ProviderClassroom}, nil
	}
	handler := newTestServer(svcs)

	// The callback is public: no bearer token, the acting user comes from state.
	rec := doRequest(t, handler, http.MethodGet,
		"/api/v1/connections/callback?code=auth-code&state=state-1", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")

	body := rec.Body.String()
	assert.Contains(t, body, "oauth-success")
	assert.Contains(t, body, string(domain.ProviderClassroom))
	assert.Contains(t, body, "window.close()")
}

func TestConnectionCallbackErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   string
	}{
		{"consent denied", domain.ErrConsentDenied, http.StatusBadRequest, "Authorization was denied."},
		{"invalid state", domain.ErrInvalidState, http.StatusBadRequest, "This authorization link is invalid or has expired."},
		{"exchange failed", domain.ErrExchangeFailed, http.StatusBadGateway, "The authorization could not be completed."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svcs := defaultTestServices()
			svcs.oauth.callbackFn = func(ctx context.Context, req driving.CallbackRequest) (*driving.CallbackResult, error) {
				return nil, tt.err
			}
			handler := newTestServer(svcs)

			rec := doRequest(t, handler, http.MethodGet,
				"/api/v1/connections/callback?code=x&state=y", "", "")
			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), "oauth-error")
			assert.Contains(t, rec.Body.String(), tt.wantBody)
		})
	}
}

func TestListConnections(t *testing.T) {
	svcs := defaultTestServices()
	svcs.oauth.connectionsFn = func(ctx context.Context, userID string) ([]*domain.ConnectionSummary, error) {
		require.Equal(t, "user-1", userID)
		return []*domain.ConnectionSummary{
			{Provider: domain.ProviderGmail, Connected: true},
		}, nil
	}
	handler := newTestServer(svcs)

	rec := doRequest(t, handler, http.MethodGet, "/api/v1/connections", "valid-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "gmail")
	// Token material must never appear in the listing payload.
	assert.NotContains(t, rec.Body.String(), "access_token")
	assert.NotContains(t, rec.Body.String(), "refresh_token")
}

func TestDisconnect(t *testing.T) {
	svcs := defaultTestServices()
	svcs.oauth.disconnectFn = func(ctx context.Context, userID string, provider domain.Provider) error {
		require.Equal(t, domain.ProviderGmail, provider)
		return nil
	}
	handler := newTestServer(svcs)

	rec := doRequest(t, handler, http.MethodDelete, "/api/v1/connections/gmail", "valid-token", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "disconnected")
}

func TestDisconnectNotConnected(t *testing.T) {
	// The default mock returns ErrNotFound when no disconnectFn is set.
	handler := newTestServer(defaultTestServices())

	rec := doRequest(t, handler, http.MethodDelete, "/api/v1/connections/classroom", "valid-token", "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "not connected")
}

func TestDisconnectUnknownProvider(t *testing.T) {
	handler := newTestServer(defaultTestServices())

	rec := doRequest(t, handler, http.MethodDelete, "/api/v1/connections/outlook", "valid-token", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "unknown provider")
}
