package services

import (
	"context"

	"github.com/studydeck-labs/studydeck-core/internal/core/domain"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driven"
	"github.com/studydeck-labs/studydeck-core/internal/core/ports/driving"
)

// Ensure analysisService implements AnalysisService
var _ driving.AnalysisService = (*analysisService)(nil)

// analysisService implements the AnalysisService interface.
type analysisService struct {
	extractor driven.TaskExtractor
}

// NewAnalysisService creates a text analysis service.
func NewAnalysisService(extractor driven.TaskExtractor) driving.AnalysisService {
	return &analysisService{extractor: extractor}
}

// Analyze extracts task proposals from free text. Read-only: saving the
// extracted tasks is up to the caller via the task service.
func (s *analysisService) Analyze(ctx context.Context, content string) (*domain.Analysis, error) {
	if content == "" {
		return nil, domain.ErrInvalidInput
	}
	if s.extractor == nil {
		return nil, domain.ErrNotConfigured
	}
	return s.extractor.Extract(ctx, content)
}
