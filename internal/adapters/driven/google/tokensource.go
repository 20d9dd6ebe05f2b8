package google

import (
	"context"

	"golang.org/x/oauth2"

	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

// tokenSourceAdapter adapts a driven.TokenProvider to oauth2.TokenSource so
// Google API clients can pull tokens through our refresh machinery.
type tokenSourceAdapter struct {
	provider driven.TokenProvider
	ctx      context.Context
}

// NewTokenSource creates an oauth2.TokenSource from a TokenProvider. The
// returned source is handed to option.WithTokenSource when building Google
// API services.
func NewTokenSource(ctx context.Context, provider driven.TokenProvider) oauth2.TokenSource {
	return &tokenSourceAdapter{provider: provider, ctx: ctx}
}

// Token implements oauth2.TokenSource.
func (t *tokenSourceAdapter) Token() (*oauth2.Token, error) {
	accessToken, err := t.provider.AccessToken(t.ctx)
	if err != nil {
		return nil, err
	}
	return &oauth2.Token{
		AccessToken: accessToken,
		TokenType:   "Bearer",
	}, nil
}
