package llm

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/sashabaranov/go-openai"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type retryingCompleter struct {
	next     llm.Completer
	attempts uint
	delay    time.Duration
	logger   logger.Logger
}

// NewRetryingCompleter retries rate limits, server errors and transport failures with backoff
func NewRetryingCompleter(next llm.Completer, attempts uint, delay time.Duration, logger logger.Logger) llm.Completer {
	if attempts == 0 {
		attempts = 1
	}
	return &retryingCompleter{
		next:     next,
		attempts: attempts,
		delay:    delay,
		logger:   logger,
	}
}

func (c *retryingCompleter) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	return retry.DoWithData(
		func() (string, error) {
			return c.next.Complete(ctx, req)
		},
		retry.Context(ctx),
		retry.Attempts(c.attempts),
		retry.Delay(c.delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(isRetryable),
		retry.OnRetry(func(n uint, err error) {
			c.logger.Warn("Retrying chat completion", "attempt", n+1, "error", err)
		}),
	)
}

// isRetryable rejects client errors other than 429, which will not succeed on a second try
func isRetryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == http.StatusTooManyRequests || apiErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode == http.StatusTooManyRequests || reqErr.HTTPStatusCode >= http.StatusInternalServerError
	}

	return true
}
