package main

import (
	"context"
	"fmt"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
)

// unavailableCompleter stands in for the model client when its settings are incomplete,
// so the storage endpoints keep working and pipeline steps fail individually.
type unavailableCompleter struct {
	err error
}

func (c unavailableCompleter) Complete(_ context.Context, _ llm.CompletionRequest) (string, error) {
	return "", fmt.Errorf("language model is not configured: %w", c.err)
}
