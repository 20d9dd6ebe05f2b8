package domain

import (
	"errors"
	"fmt"
)

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates the resource already exists
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnauthorized indicates authentication failed or missing
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the user lacks permission for this action
	ErrForbidden = errors.New("forbidden")

	// ErrTokenExpired indicates the session token has expired
	ErrTokenExpired = errors.New("token expired")

	// ErrTokenInvalid indicates the session token is malformed or invalid
	ErrTokenInvalid = errors.New("token invalid")

	// ErrSessionNotFound indicates the session does not exist
	ErrSessionNotFound = errors.New("session not found")

	// ErrInvalidCredentials indicates wrong email/password combination
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrInvalidProvider indicates an unknown connection provider was specified
	ErrInvalidProvider = errors.New("invalid provider")

	// ErrNotConfigured indicates required OAuth client credentials are missing
	ErrNotConfigured = errors.New("oauth client not configured")

	// ErrConsentDenied indicates the user denied consent at the provider,
	// or the provider returned an error on the authorization redirect
	ErrConsentDenied = errors.New("consent denied by provider")

	// ErrInvalidState indicates the callback state is unknown, expired,
	// or already consumed
	ErrInvalidState = errors.New("invalid oauth state")

	// ErrExchangeFailed indicates the code-for-token exchange was rejected.
	// Authorization codes are single-use, so the whole flow must be re-run.
	ErrExchangeFailed = errors.New("authorization code exchange failed")

	// ErrReauthRequired indicates the refresh token is missing, invalid, or
	// revoked. The user must re-run the authorization flow; this is not
	// auto-recoverable.
	ErrReauthRequired = errors.New("reauthorization required")

	// ErrNotConnected indicates no credential exists for the provider
	ErrNotConnected = errors.New("provider not connected")

	// ErrProviderTimeout indicates the provider data API did not respond
	// within the request deadline. Safe to retry.
	ErrProviderTimeout = errors.New("provider request timed out")

	// ErrClassroomAPIDisabled indicates the Classroom API is not enabled for
	// the OAuth project. This is a one-time setup problem, not a per-user
	// auth problem.
	ErrClassroomAPIDisabled = errors.New("google classroom api is not enabled for this project")
)

// FetchError carries a provider data API failure back to the caller with
// the provider status and message intact.
type FetchError struct {
	Provider   Provider
	StatusCode int
	Message    string
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("%s api error (status %d): %s", e.Provider, e.StatusCode, e.Message)
}
