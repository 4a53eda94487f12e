package app

import (
	"context"
	"fmt"
	"maps"
	"path/filepath"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/extraction"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/pipeline"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

// pipelineService implements the PipelineService interface
type pipelineService struct {
	extractor extraction.TextExtractor
	parser    llm.ResumeParser
	analyzer  llm.JobAnalyzer
	tailor    llm.ResumeTailor
	renderer  rendering.Renderer
	connector blobs.BlobConnector
	store     documents.DocumentStore
	logger    logger.Logger
}

// NewPipelineService creates a new instance of PipelineService
func NewPipelineService(
	extractor extraction.TextExtractor,
	parser llm.ResumeParser,
	analyzer llm.JobAnalyzer,
	tailor llm.ResumeTailor,
	renderer rendering.Renderer,
	connector blobs.BlobConnector,
	store documents.DocumentStore,
	logger logger.Logger,
) (pipeline.PipelineService, error) {
	return &pipelineService{
		extractor: extractor,
		parser:    parser,
		analyzer:  analyzer,
		tailor:    tailor,
		renderer:  renderer,
		connector: connector,
		store:     store,
		logger:    logger,
	}, nil
}

// ProcessAll runs every step even when earlier ones failed, substituting fallback data
func (s *pipelineService) ProcessAll(ctx context.Context, req *pipeline.Request) (*pipeline.Result, error) {
	if err := req.Validate(); err != nil {
		return nil, apperr.Wrap(err, apperr.ErrBadRequest, err.Error())
	}
	if !extraction.IsSupported(extraction.Ext(req.Filename), false) {
		s.logger.Error("Invalid file type", "filename", req.Filename)
		return nil, apperr.WithMessage(apperr.ErrBadRequest, msgUnsupportedProcess)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.logger.Info("Processing resume file", "filename", req.Filename)

	status := pipeline.NewStatus()
	stem := strings.TrimSuffix(req.Filename, filepath.Ext(req.Filename))

	text := s.extractText(ctx, req, status)

	resumeData, err := s.parser.ResumeToJSON(ctx, text)
	if err != nil {
		s.logger.Error("Resume parsing error", "error", err)
		status.AddError("Failed to parse resume: %v", err)
		status.ResumeProcessing = pipeline.StepFailed
		resumeData = fallbackResume(stem)
	} else {
		status.ResumeProcessing = pipeline.StepComplete
	}

	resumeName := bloburl.SanitizeID(stringOr(resumeData["name"], stem))
	resumeID, err := s.store.Store(ctx, documents.KindResume, resumeName, resumeData)
	if err != nil {
		s.logger.Error("Resume storage error", "error", err)
		status.AddError("Failed to store resume: %v", err)
		resumeID = fmt.Sprintf("temp_%d", time.Now().Unix())
	} else {
		s.logger.Info("Stored resume", "resume_id", resumeID)
	}

	jobID, jobData := s.analyzeJob(ctx, req, status)
	tailoredID, tailoredData := s.tailorResume(ctx, resumeName, jobID, resumeData, jobData, status)
	pdfName := s.generatePDF(ctx, tailoredData, status)

	return &pipeline.Result{
		Status:           status.Overall(),
		ResumeID:         resumeID,
		JobID:            jobID,
		TailoredResumeID: tailoredID,
		PDFURL:           pdfName,
		ProcessDetails:   status,
	}, nil
}

func (s *pipelineService) extractText(ctx context.Context, req *pipeline.Request, status *pipeline.Status) string {
	text, err := s.extractor.Extract(ctx, req.Filename, req.Content)
	if err != nil {
		s.logger.Error("Text extraction error", "error", err)
		status.AddError("Failed to extract text: %v", err)
		return ""
	}

	if n := utf8.RuneCountInString(strings.TrimSpace(text)); n < pipeline.MinTextLength {
		s.logger.Warn("Very little text extracted", "chars", n)
		status.AddError("Very little text could be extracted from the resume.")
	}
	return text
}

func (s *pipelineService) analyzeJob(ctx context.Context, req *pipeline.Request, status *pipeline.Status) (string, map[string]any) {
	jobID := bloburl.SanitizeID(req.Title)

	jobData, err := s.analyzer.Analyze(ctx, req.Title, req.Description)
	if err == nil {
		status.JobAnalysis = pipeline.StepComplete
		var storedID string
		if storedID, err = s.store.Store(ctx, documents.KindJob, jobID, jobData); err == nil {
			s.logger.Info("Stored job", "job_id", storedID)
			return storedID, jobData
		}
	}

	s.logger.Error("Job analysis error", "error", err)
	status.AddError("Failed to analyze job: %v", err)
	status.JobAnalysis = pipeline.StepFailed
	return jobID, fallbackJob()
}

func (s *pipelineService) tailorResume(
	ctx context.Context,
	resumeName, jobID string,
	resumeData, jobData map[string]any,
	status *pipeline.Status,
) (string, map[string]any) {
	tailoredID := resumeName + "_for_" + jobID

	tailored, err := s.tailor.Tailor(ctx, resumeData, jobData)
	if err == nil {
		status.Tailoring = pipeline.StepComplete
		var storedID string
		if storedID, err = s.store.Store(ctx, documents.KindTailored, tailoredID, tailored); err == nil {
			s.logger.Info("Stored tailored resume", "tailored_resume_id", storedID)
			return storedID, tailored
		}
	}

	s.logger.Error("Resume tailoring error", "error", err)
	status.AddError("Failed to tailor resume: %v", err)
	status.Tailoring = pipeline.StepFailed
	return tailoredID, maps.Clone(resumeData)
}

// generatePDF renders the tailored resume, uploads it and returns the blob name
func (s *pipelineService) generatePDF(ctx context.Context, data map[string]any, status *pipeline.Status) string {
	s.logger.Info("Beginning PDF generation")

	name, err := s.renderAndUpload(ctx, data)
	if err != nil {
		s.logger.Error("PDF generation error", "error", err)
		status.AddError("Failed to generate PDF: %v", err)
		status.PDFGeneration = pipeline.StepFailed
		return pipeline.FailedPDFName
	}

	status.PDFGeneration = pipeline.StepComplete
	s.logger.Info("Generated and uploaded PDF", "name", name)
	return name
}

func (s *pipelineService) renderAndUpload(ctx context.Context, data map[string]any) (string, error) {
	content, err := s.renderer.Render(data)
	if err != nil {
		return "", err
	}

	name := bloburl.StandardName(time.Now(), uuid.NewString())
	if err := s.connector.EnsureContainer(ctx); err != nil {
		return "", fmt.Errorf("failed to ensure container: %w", err)
	}
	if _, err := s.connector.Upload(ctx, name, content, resumes.ContentTypePDF); err != nil {
		return "", fmt.Errorf("failed to upload pdf: %w", err)
	}
	return name, nil
}

func fallbackResume(stem string) map[string]any {
	return map[string]any{
		"name":       stem,
		"contact":    map[string]any{},
		"summary":    "Error processing resume content",
		"experience": []any{},
		"education":  []any{},
		"skills":     []any{},
	}
}

func fallbackJob() map[string]any {
	return map[string]any{
		"Requirements":     map[string]any{"Skills": []any{"Processing error"}},
		"Responsibilities": map[string]any{"Main": "Processing error"},
		"Qualifications":   []any{"Processing error"},
	}
}

// stringOr returns v when it is a non-empty string
func stringOr(v any, fallback string) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return fallback
}
