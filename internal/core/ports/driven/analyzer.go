package driven

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// TaskExtractor turns free text into structured task proposals.
type TaskExtractor interface {
	Extract(ctx context.Context, content string) (*domain.Analysis, error)
}
