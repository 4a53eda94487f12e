// Package pipeline describes the end-to-end resume tailoring run: parse the resume, analyse
// the job, tailor, render and upload.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// Step states
const (
	StepPending  = "pending"
	StepComplete = "complete"
	StepFailed   = "failed"
)

// Overall outcomes
const (
	StatusSuccess        = "success"
	StatusPartialSuccess = "partial_success"
	StatusMostlyFailed   = "mostly_failed"
	StatusFailed         = "failed"
)

// FailedPDFName is reported as pdf_url when rendering or uploading failed
const FailedPDFName = "error_generating.pdf"

// MinTextLength is the extracted text length below which a warning is recorded
const MinTextLength = 100

// mostlyFailedThreshold is the error count at which a run is reported as mostly failed
const mostlyFailedThreshold = 3

// Request is a resume file plus the job posting to tailor it to
type Request struct {
	Title       string `validate:"required"`
	Description string `validate:"required"`
	Filename    string `validate:"required"`
	Content     []byte
}

// Validate for validating Request struct
func (r *Request) Validate() error {
	validate := validator.New()

	err := validate.Struct(r)
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

// Status tracks each step of a run and the errors collected along the way
type Status struct {
	ResumeProcessing string   `json:"resume_processing"`
	JobAnalysis      string   `json:"job_analysis"`
	Tailoring        string   `json:"tailoring"`
	PDFGeneration    string   `json:"pdf_generation"`
	Errors           []string `json:"errors"`
}

// NewStatus returns a Status with every step pending
func NewStatus() *Status {
	return &Status{
		ResumeProcessing: StepPending,
		JobAnalysis:      StepPending,
		Tailoring:        StepPending,
		PDFGeneration:    StepPending,
		Errors:           []string{},
	}
}

// AddError records a failure message
func (s *Status) AddError(format string, args ...any) {
	s.Errors = append(s.Errors, fmt.Sprintf(format, args...))
}

// Overall summarises the step states
func (s *Status) Overall() string {
	overall := StatusSuccess
	for _, step := range []string{s.ResumeProcessing, s.JobAnalysis, s.Tailoring, s.PDFGeneration} {
		if step == StepFailed {
			overall = StatusPartialSuccess
			break
		}
	}
	if len(s.Errors) >= mostlyFailedThreshold {
		overall = StatusMostlyFailed
	}
	return overall
}

// Result is the response of a run
type Result struct {
	Status           string  `json:"status"`
	ResumeID         string  `json:"resume_id"`
	JobID            string  `json:"job_id"`
	TailoredResumeID string  `json:"tailored_resume_id"`
	PDFURL           string  `json:"pdf_url"`
	ProcessDetails   *Status `json:"process_details"`
}

// Failure is the response body when a run aborts unexpectedly
type Failure struct {
	Status        string `json:"status"`
	Error         string `json:"error"`
	Message       string `json:"message"`
	FileProcessed string `json:"file_processed"`
}

// NewFailure builds the body for an aborted run of filename
func NewFailure(filename string, err error) *Failure {
	return &Failure{
		Status:        StatusFailed,
		Error:         err.Error(),
		Message:       "An unexpected error occurred while processing the request.",
		FileProcessed: filename,
	}
}

// PipelineService runs the full resume tailoring flow
type PipelineService interface {
	// ProcessAll never fails for step errors; they are reported in Result.ProcessDetails.
	// Only invalid input or an unexpected failure is returned as an error.
	ProcessAll(ctx context.Context, req *Request) (*Result, error)
}
