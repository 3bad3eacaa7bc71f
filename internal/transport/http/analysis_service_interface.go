package http

import (
	"context"

	"sentimeter/internal/pipeline"
	"sentimeter/pkg/contracts/domain"
)

// AnalysisServiceInterface defines the interface for sentiment analysis operations
type AnalysisServiceInterface interface {
	Analyze(ctx context.Context, req pipeline.Request) (*domain.AnalysisResult, error)
}
