package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/google/uuid"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

// RetryPolicy bounds the attempts made to write a document
type RetryPolicy struct {
	Attempts uint
	Delay    time.Duration
}

// DefaultRetryPolicy makes three attempts, backing off 2s then 4s
var DefaultRetryPolicy = RetryPolicy{Attempts: 3, Delay: 2 * time.Second}

func (p RetryPolicy) do(ctx context.Context, log logger.Logger, id string, fn func() error) error {
	err := retry.Do(
		fn,
		retry.Context(ctx),
		retry.Attempts(p.Attempts),
		retry.Delay(p.Delay),
		retry.DelayType(retry.BackOffDelay),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Error("Error storing document", "id", id, "attempt", n+1, "error", err)
		}),
	)
	if err != nil {
		return fmt.Errorf("%w: %w", documents.ErrStoreExhausted, err)
	}
	return nil
}

// validateForStore rejects a document that no write attempt could store. The failure is
// reported like an exhausted retry so callers see one store error.
func validateForStore(doc *documents.Document) error {
	if err := doc.Validate(); err != nil {
		return fmt.Errorf("%w: validation error: %w", documents.ErrStoreExhausted, err)
	}
	return nil
}

// uniqueID derives a fresh id for a document whose id is already taken
func uniqueID(id string, now time.Time) string {
	return fmt.Sprintf("%s_%d_%s", id, now.Unix(), uuid.New().String()[:8])
}
