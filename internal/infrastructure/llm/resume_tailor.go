package llm

import (
	"context"
	"fmt"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type resumeTailor struct {
	completer llm.Completer
	logger    logger.Logger
}

// NewResumeTailor creates a ResumeTailor backed by completer
func NewResumeTailor(completer llm.Completer, logger logger.Logger) (llm.ResumeTailor, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer is nil")
	}
	return &resumeTailor{completer: completer, logger: logger}, nil
}

func (t *resumeTailor) Tailor(ctx context.Context, resume, job map[string]any) (map[string]any, error) {
	req, err := tailorRequest(resume, job)
	if err != nil {
		return nil, err
	}

	content, err := t.completer.Complete(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to generate tailored resume: %w", err)
	}

	out, err := strictObject(content)
	if err != nil {
		t.logger.Error("Invalid JSON response", "content", truncate(content, 200))
		return nil, fmt.Errorf("response could not be parsed as JSON: %w", err)
	}
	return out, nil
}
