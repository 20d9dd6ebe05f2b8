package services

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure mailService implements MailService
var _ driving.MailService = (*mailService)(nil)

// inboxListLimit is how many recent inbox message ids are listed per fetch.
const inboxListLimit = 10

// mailService implements the MailService interface.
type mailService struct {
	tokens  *TokenService
	gateway driven.MailGateway
}

// NewMailService creates a Gmail fetch service.
func NewMailService(tokens *TokenService, gateway driven.MailGateway) driving.MailService {
	return &mailService{tokens: tokens, gateway: gateway}
}

// FetchInbox returns the user's most recent inbox messages, normalized.
// Token refresh happens inside the TokenProvider; this service never writes
// the credential store.
func (s *mailService) FetchInbox(ctx context.Context, userID string) ([]*domain.Message, error) {
	return s.gateway.RecentInbox(ctx, s.tokens.For(userID, domain.ProviderGmail), inboxListLimit)
}
