package llm

import (
	"context"
	"fmt"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type resumeParser struct {
	completer llm.Completer
	logger    logger.Logger
}

// NewResumeParser creates a ResumeParser backed by completer
func NewResumeParser(completer llm.Completer, logger logger.Logger) (llm.ResumeParser, error) {
	if completer == nil {
		return nil, fmt.Errorf("completer is nil")
	}
	return &resumeParser{completer: completer, logger: logger}, nil
}

func (p *resumeParser) ResumeToJSON(ctx context.Context, text string) (map[string]any, error) {
	content, err := p.completer.Complete(ctx, resumeToJSONRequest(text))
	if err != nil {
		p.logger.Error("Error in resume to JSON conversion", "error", err)
		return nil, fmt.Errorf("failed to convert resume to JSON format: %w", err)
	}

	cleaned := stripFences(content)
	out, err := parseObject(cleaned)
	if err == nil {
		return out, nil
	}
	p.logger.Error("JSON decode error", "error", err, "content", truncate(cleaned, 100))

	out, repairErr := parseObject(repairJSON(cleaned))
	if repairErr == nil {
		return out, nil
	}
	p.logger.Error("Failed to repair JSON", "error", err)

	return map[string]any{
		"error":         "Could not parse resume data",
		"personal_info": map[string]any{"name": "Unknown"},
		"summary":       "Failed to parse resume content properly.",
	}, nil
}

func (p *resumeParser) ProcessResume(ctx context.Context, text string) map[string]any {
	content, err := p.completer.Complete(ctx, processResumeRequest(text))
	if err != nil {
		p.logger.Error("Error processing resume", "error", err)
		return placeholderResume("Failed to process resume content.")
	}

	out, err := parseObject(stripFences(content))
	if err != nil {
		p.logger.Error("Invalid JSON response", "content", truncate(content, 200))
		return placeholderResume("Failed to parse resume content properly.")
	}

	out["type"] = "resume"
	return out
}

func placeholderResume(summary string) map[string]any {
	return map[string]any{
		"type":     "resume",
		"filename": "Parsed Resume",
		"summary":  summary,
	}
}
