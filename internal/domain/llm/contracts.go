// Package llm defines the language model operations the resume pipeline relies on.
package llm

import (
	"context"
	"errors"
)

// ErrInvalidResponse is returned when a completion is not a JSON object
var ErrInvalidResponse = errors.New("response is not in valid JSON format")

// CompletionRequest is a single system+user chat completion
type CompletionRequest struct {
	System      string  `json:"system"`
	User        string  `json:"user"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float32 `json:"temperature"`
}

// Completer sends chat completions to a model deployment
type Completer interface {
	// Complete returns the content of the first choice
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// ResumeParser turns extracted resume text into structured data
type ResumeParser interface {
	// ResumeToJSON parses text, repairing malformed output where it can. Only a failed
	// model call is returned as an error; unparseable output yields a fallback document.
	ResumeToJSON(ctx context.Context, text string) (map[string]any, error)

	// ProcessResume parses text for a stored resume record. It never fails; errors yield a
	// placeholder document typed "resume".
	ProcessResume(ctx context.Context, text string) map[string]any
}

// JobAnalyzer extracts requirements, responsibilities and qualifications from a job posting
type JobAnalyzer interface {
	Analyze(ctx context.Context, title, description string) (map[string]any, error)
}

// ResumeTailor rewrites a parsed resume for a specific job
type ResumeTailor interface {
	Tailor(ctx context.Context, resume, job map[string]any) (map[string]any, error)
}
