package llm

import (
	"context"
	"fmt"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type jobAnalyzer struct {
	completer llm.Completer
	logger    logger.Logger
}

// NewJobAnalyzer creates a JobAnalyzer backed by completer
func NewJobAnalyzer(completer llm.Completer, logger logger.Logger) (llm.JobAnalyzer, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer is nil")
	}
	return &jobAnalyzer{completer: completer, logger: logger}, nil
}

func (a *jobAnalyzer) Analyze(ctx context.Context, title, description string) (map[string]any, error) {
	content, err := a.completer.Complete(ctx, analyzeJobRequest(title, description))
	if err != nil {
		return nil, fmt.Errorf("failed to analyze job details: %w", err)
	}

	out, err := strictObject(content)
	if err != nil {
		a.logger.Error("Invalid JSON response", "content", truncate(content, 200))
		return nil, fmt.Errorf("failed to parse job details response: %w", err)
	}
	return out, nil
}
