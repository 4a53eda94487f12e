//go:build unit
// +build unit

package llm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

func newTestParser(t *testing.T) (llm.ResumeParser, *MockCompleter) {
	t.Helper()
	completer := new(MockCompleter)
	parser, err := NewResumeParser(completer, testutil.SetupTestLogger(t))
	require.NoError(t, err)
	return parser, completer
}

func TestResumeToJSON_Fenced(t *testing.T) {
	parser, completer := newTestParser(t)
	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return req.MaxTokens == 2000 && req.Temperature == 0.3 && req.System == resumeToJSONSystem
	})).Return("```json\n{\"name\":\"Jane Doe\"}\n```", nil)

	out, err := parser.ResumeToJSON(context.Background(), "Jane Doe, engineer")
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", out["name"])
	completer.AssertExpectations(t)
}

func TestResumeToJSON_Repaired(t *testing.T) {
	parser, completer := newTestParser(t)
	completer.On("Complete", mock.Anything, mock.Anything).Return("{name: 'Jane',}", nil)

	out, err := parser.ResumeToJSON(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Jane", out["name"])
}

func TestResumeToJSON_Fallback(t *testing.T) {
	parser, completer := newTestParser(t)
	completer.On("Complete", mock.Anything, mock.Anything).Return("I cannot do that", nil)

	out, err := parser.ResumeToJSON(context.Background(), "text")
	require.NoError(t, err)
	assert.Equal(t, "Could not parse resume data", out["error"])
	assert.Equal(t, map[string]any{"name": "Unknown"}, out["personal_info"])
}

func TestResumeToJSON_CompletionError(t *testing.T) {
	parser, completer := newTestParser(t)
	completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("quota"))

	_, err := parser.ResumeToJSON(context.Background(), "text")
	assert.Error(t, err)
}

func TestProcessResume(t *testing.T) {
	t.Run("sets type", func(t *testing.T) {
		parser, completer := newTestParser(t)
		completer.On("Complete", mock.Anything, mock.Anything).Return(`{"summary":"Engineer"}`, nil)

		out := parser.ProcessResume(context.Background(), "text")
		assert.Equal(t, "resume", out["type"])
		assert.Equal(t, "Engineer", out["summary"])
	})

	t.Run("unparseable", func(t *testing.T) {
		parser, completer := newTestParser(t)
		completer.On("Complete", mock.Anything, mock.Anything).Return("nope", nil)

		out := parser.ProcessResume(context.Background(), "text")
		assert.Equal(t, "Parsed Resume", out["filename"])
		assert.Equal(t, "Failed to parse resume content properly.", out["summary"])
	})

	t.Run("api failure", func(t *testing.T) {
		parser, completer := newTestParser(t)
		completer.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("down"))

		out := parser.ProcessResume(context.Background(), "text")
		assert.Equal(t, "Failed to process resume content.", out["summary"])
	})
}

func TestJobAnalyzer_Analyze(t *testing.T) {
	completer := new(MockCompleter)
	analyzer, err := NewJobAnalyzer(completer, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return req.MaxTokens == 1000 && req.User == "Convert this job posting into JSON format:\n\nTitle: Dev\n\nDescription: Go"
	})).Return(`{"Requirements":{"Skills":["Go"]}}`, nil).Once()

	out, err := analyzer.Analyze(context.Background(), "Dev", "Go")
	require.NoError(t, err)
	assert.Contains(t, out, "Requirements")

	completer.On("Complete", mock.Anything, mock.Anything).Return("Sure! Here it is", nil).Once()
	_, err = analyzer.Analyze(context.Background(), "Dev", "Go")
	assert.ErrorIs(t, err, llm.ErrInvalidResponse)
}

func TestResumeTailor_Tailor(t *testing.T) {
	completer := new(MockCompleter)
	tailor, err := NewResumeTailor(completer, testutil.SetupTestLogger(t))
	require.NoError(t, err)

	completer.On("Complete", mock.Anything, mock.MatchedBy(func(req llm.CompletionRequest) bool {
		return req.System == tailorSystem &&
			req.User == "Tailor this resume to the job requirements and return a valid JSON object:\n\nResume: {\"name\":\"Jane\"}\n\nJob Details: {\"title\":\"Dev\"}"
	})).Return("```json\n{\"name\":\"Jane\",\"summary\":\"Go dev\"}\n```", nil)

	out, err := tailor.Tailor(context.Background(), map[string]any{"name": "Jane"}, map[string]any{"title": "Dev"})
	require.NoError(t, err)
	assert.Equal(t, "Go dev", out["summary"])
}
