package driving

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
)

// AnalysisService extracts actionable tasks from free text.
type AnalysisService interface {
	Analyze(ctx context.Context, content string) (*domain.Analysis, error)
}
