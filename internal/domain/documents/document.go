// Package documents describes the JSON documents the processing pipeline persists:
// parsed resumes, analysed job postings and tailored resumes.
package documents

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Kind selects the collection a document is stored in
type Kind string

// Document kinds
const (
	KindResume   Kind = "resume"
	KindJob      Kind = "job"
	KindTailored Kind = "tailored"
)

// Kinds lists every document kind
var Kinds = []Kind{KindResume, KindJob, KindTailored}

// ErrNotFound is returned when no document has the requested id
var ErrNotFound = errors.New("document not found")

// ErrStoreExhausted is returned once every write attempt failed
var ErrStoreExhausted = errors.New("failed to store document after multiple attempts")

// Document is a stored {"id": ..., "data": ...} envelope
type Document struct {
	ID   string         `json:"id" validate:"required,max=255"`
	Kind Kind           `json:"-" validate:"required,oneof=resume job tailored"`
	Data map[string]any `json:"data"`
}

// Validate for validating Document struct
func (d *Document) Validate() error {
	validate := validator.New()

	err := validate.Struct(d)
	if err != nil {
		var validationErrors validator.ValidationErrors
		if errors.As(err, &validationErrors) {
			var messages []string
			for _, fieldErr := range validationErrors {
				messages = append(messages, fmt.Sprintf("Field: %s, Tag: %s", fieldErr.Field(), fieldErr.Tag()))
			}
			return fmt.Errorf("validation failed: %v", messages)
		}
		return fmt.Errorf("validation error: %w", err)
	}

	return nil
}
