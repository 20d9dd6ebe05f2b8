package google

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	gmail "google.golang.org/api/gmail/v1"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
)

var _ driven.MailGateway = (*GmailGateway)(nil)

const (
	// hydrateLimit caps how many listed messages are fetched in full.
	hydrateLimit = 5

	// bodyMaxBytes truncates decoded message bodies to keep responses and
	// downstream analysis prompts small.
	bodyMaxBytes = 500

	// dataRequestTimeout bounds one whole fetch against the provider data
	// API. A deadline hit maps to ErrProviderTimeout, which is retryable.
	dataRequestTimeout = 30 * time.Second
)

// GmailGateway reads inbox messages through the Gmail API.
type GmailGateway struct {
	opts    []option.ClientOption
	timeout time.Duration
}

// NewGmailGateway creates a Gmail gateway. Extra client options are applied
// after the token source; tests use them to point at a fake server.
func NewGmailGateway(opts ...option.ClientOption) *GmailGateway {
	return &GmailGateway{opts: opts, timeout: dataRequestTimeout}
}

// RecentInbox lists the newest inbox messages and hydrates the first few
// into normalized messages.
func (g *GmailGateway) RecentInbox(ctx context.Context, tokens driven.TokenProvider, limit int) ([]*domain.Message, error) {
	ctx, cancel := context.WithTimeout(ctx, g.timeout)
	defer cancel()

	svc, err := g.service(ctx, tokens)
	if err != nil {
		return nil, err
	}

	list, err := svc.Users.Messages.List("me").
		LabelIds("INBOX").
		MaxResults(int64(limit)).
		Context(ctx).Do()
	if err != nil {
		return nil, gmailError("list messages", err)
	}

	ids := list.Messages
	if len(ids) > hydrateLimit {
		ids = ids[:hydrateLimit]
	}

	messages := make([]*domain.Message, 0, len(ids))
	for _, ref := range ids {
		full, err := svc.Users.Messages.Get("me", ref.Id).
			Format("full").
			Context(ctx).Do()
		if err != nil {
			return nil, gmailError(fmt.Sprintf("get message %s", ref.Id), err)
		}
		messages = append(messages, normalizeMessage(full))
	}
	return messages, nil
}

func (g *GmailGateway) service(ctx context.Context, tokens driven.TokenProvider) (*gmail.Service, error) {
	opts := append([]option.ClientOption{
		option.WithTokenSource(NewTokenSource(ctx, tokens)),
	}, g.opts...)
	svc, err := gmail.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create gmail service: %w", err)
	}
	return svc, nil
}

// normalizeMessage flattens a Gmail message into the fields the app uses.
func normalizeMessage(msg *gmail.Message) *domain.Message {
	out := &domain.Message{
		ID:      msg.Id,
		Snippet: msg.Snippet,
	}
	if msg.Payload == nil {
		return out
	}
	for _, h := range msg.Payload.Headers {
		switch h.Name {
		case "Subject":
			out.Subject = h.Value
		case "From":
			out.From = h.Value
		case "Date":
			out.Date = h.Value
		}
	}
	out.Body = truncate(extractPlainText(msg.Payload), bodyMaxBytes)
	return out
}

// extractPlainText walks the MIME tree for the first text/plain part,
// falling back to the top-level body.
func extractPlainText(part *gmail.MessagePart) string {
	if part == nil {
		return ""
	}
	if part.MimeType == "text/plain" && part.Body != nil && part.Body.Data != "" {
		return decodeBody(part.Body.Data)
	}
	for _, p := range part.Parts {
		if text := extractPlainText(p); text != "" {
			return text
		}
	}
	if part.Body != nil && part.Body.Data != "" {
		return decodeBody(part.Body.Data)
	}
	return ""
}

// decodeBody decodes Gmail's base64url body encoding. Undecodable bodies
// are dropped rather than surfaced as garbage.
func decodeBody(data string) string {
	decoded, err := base64.URLEncoding.WithPadding(base64.NoPadding).DecodeString(data)
	if err != nil {
		return ""
	}
	return string(decoded)
}

// truncate cuts s to at most maxBytes, backing up to a rune boundary so a
// multi-byte character is never split into invalid UTF-8.
func truncate(s string, maxBytes int) string {
	if len(s) <= maxBytes {
		return s
	}
	for maxBytes > 0 && !utf8.RuneStart(s[maxBytes]) {
		maxBytes--
	}
	return s[:maxBytes]
}

// gmailError maps a Gmail API failure onto domain errors, keeping the
// provider status code for the HTTP layer.
func gmailError(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w", op, domain.ErrProviderTimeout)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		if apiErr.Code == 401 {
			return fmt.Errorf("%s: %w", op, domain.ErrReauthRequired)
		}
		return &domain.FetchError{
			Provider:   domain.ProviderGmail,
			StatusCode: apiErr.Code,
			Message:    fmt.Sprintf("%s: %s", op, apiErr.Message),
		}
	}
	return fmt.Errorf("gmail %s: %w", op, err)
}
