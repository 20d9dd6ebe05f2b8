package driving

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// MailService fetches a user's recent inbox through their Gmail connection.
type MailService interface {
	FetchInbox(ctx context.Context, userID string) ([]*domain.Message, error)
}
