package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/extraction"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

const (
	blobCheckTimeout = 5 * time.Second
	verifyTimeout    = 10 * time.Second
	downloadTimeout  = 15 * time.Second
)

const sampleFilename = "Sample Resume.pdf"

// resumeUploadService implements the ResumeUploadService interface
type resumeUploadService struct {
	repo      resumes.ResumeRepository
	extractor extraction.TextExtractor
	parser    llm.ResumeParser
	saver     blobs.BlobSaver
	logger    logger.Logger
}

// NewResumeUploadService creates a new instance of ResumeUploadService
func NewResumeUploadService(
	repo resumes.ResumeRepository,
	extractor extraction.TextExtractor,
	parser llm.ResumeParser,
	saver blobs.BlobSaver,
	logger logger.Logger,
) (resumes.ResumeUploadService, error) {
	return &resumeUploadService{
		repo:      repo,
		extractor: extractor,
		parser:    parser,
		saver:     saver,
		logger:    logger,
	}, nil
}

// Upload parses the file into a new record for userID and stores the file next to it
func (s *resumeUploadService) Upload(ctx context.Context, userID, filename string, content []byte) (*resumes.UploadResult, error) {
	ext := extraction.Ext(filename)
	if !extraction.IsSupported(ext, true) {
		return nil, apperr.WithMessage(apperr.ErrBadRequest, msgUnsupportedUpload)
	}

	text, err := s.extractor.Extract(ctx, filename, content)
	if err != nil {
		s.logger.Error("Error processing resume", "error", err)
		return nil, internalError("Error processing resume: ", err)
	}

	resume := resumes.FromMap(s.parser.ProcessResume(ctx, text))
	resume.ID = uuid.NewString()
	resume.UserID = userID
	resume.CreatedAt = resumes.Now()
	resume.Filename = filename

	if err := resume.Validate(); err != nil {
		return nil, apperr.Wrap(err, apperr.ErrBadRequest, err.Error())
	}

	if err := s.repo.Create(ctx, resume); err != nil {
		s.logger.Error("Error saving resume", "error", err)
		return nil, internalError("Error processing resume: ", err)
	}
	s.logger.Info("Resume saved", "resume_id", resume.ID)

	blobURL, err := s.saver.SaveFile(ctx, content, userID+"/"+resume.ID+ext)
	if err != nil {
		s.logger.Warn("Failed upload attempts, storing expected URL", "resume_id", resume.ID, "error", err)
	}

	resume.BlobURL = blobURL
	if err := s.repo.Upsert(ctx, resume); err != nil {
		s.logger.Error("Error updating resume with blob URL", "resume_id", resume.ID, "error", err)
		return nil, internalError("Error processing resume: ", err)
	}

	return &resumes.UploadResult{
		Message:  "Resume uploaded and processed successfully",
		ResumeID: resume.ID,
	}, nil
}

// ReplaceFile stores a new file for an existing record and points the record at it
func (s *resumeUploadService) ReplaceFile(ctx context.Context, userID, resumeID, filename string, content []byte) (*resumes.ReplaceResult, error) {
	resume, err := s.repo.GetForUser(ctx, resumeID, userID)
	if err != nil {
		return nil, lookupError("Error replacing resume file: ", err)
	}

	ext := extraction.Ext(filename)
	if !extraction.IsSupported(ext, true) {
		return nil, apperr.WithMessage(apperr.ErrBadRequest, msgUnsupportedUpload)
	}

	blobURL, err := s.saver.SaveFile(ctx, content, userID+"/"+resumeID+ext)
	if err != nil {
		s.logger.Warn("Failed upload attempts, storing expected URL", "resume_id", resumeID, "error", err)
	}

	resume.BlobURL = blobURL
	resume.Filename = filename
	resume.UpdatedAt = resumes.Now()

	if err := s.repo.Replace(ctx, resume); err != nil {
		s.logger.Error("Error replacing resume file", "resume_id", resumeID, "error", err)
		return nil, internalError("Error replacing resume file: ", err)
	}

	s.logger.Info("Resume file replaced successfully", "resume_id", resumeID)
	return &resumes.ReplaceResult{
		Message: "Resume file replaced successfully",
		BlobURL: blobURL,
	}, nil
}

// resumeMetadataService implements the ResumeMetadataService interface
type resumeMetadataService struct {
	repo         resumes.ResumeRepository
	connector    blobs.BlobConnector
	sasConnector blobs.BlobConnector
	prober       blobs.BlobProber
	samples      maintenance.MaintenanceService
	urls         *bloburl.Builder
	logger       logger.Logger
}

// NewResumeMetadataService creates a new instance of ResumeMetadataService.
// sasConnector may be nil when no SAS connection string is configured.
func NewResumeMetadataService(
	repo resumes.ResumeRepository,
	connector blobs.BlobConnector,
	sasConnector blobs.BlobConnector,
	prober blobs.BlobProber,
	samples maintenance.MaintenanceService,
	urls *bloburl.Builder,
	logger logger.Logger,
) (resumes.ResumeMetadataService, error) {
	return &resumeMetadataService{
		repo:         repo,
		connector:    connector,
		sasConnector: sasConnector,
		prober:       prober,
		samples:      samples,
		urls:         urls,
		logger:       logger,
	}, nil
}

// List returns the user's records with re-signed blob URLs
func (s *resumeMetadataService) List(ctx context.Context, userID string) ([]*resumes.View, error) {
	s.logger.Info("Fetching resumes", "user_id", userID)

	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		s.logger.Error("Error fetching resumes", "error", err)
		return nil, internalError("Error fetching resumes: ", err)
	}

	if len(items) == 0 {
		s.logger.Info("No resumes found, creating a sample resume", "user_id", userID)
		if sample, err := s.seedSample(ctx, userID); err != nil {
			s.logger.Error("Error creating sample resume", "user_id", userID, "error", err)
		} else {
			items = append(items, sample)
		}
	}

	views := make([]*resumes.View, 0, len(items))
	for _, item := range items {
		s.repairBlobURL(ctx, item)
		views = append(views, resumes.NewView(item, nil))
	}

	s.logger.Info("Returning resumes", "user_id", userID, "count", len(views))
	return views, nil
}

func (s *resumeMetadataService) seedSample(ctx context.Context, userID string) (*resumes.Resume, error) {
	result, err := s.samples.Sample(ctx, true)
	if err != nil {
		return nil, err
	}

	sample := &resumes.Resume{
		ID:        uuid.NewString(),
		UserID:    userID,
		Filename:  sampleFilename,
		Type:      "resume",
		CreatedAt: resumes.Now(),
		BlobURL:   result.BlobURL,
		Fields:    map[string]any{},
	}
	if err := s.repo.Create(ctx, sample); err != nil {
		return nil, err
	}
	return sample, nil
}

// repairBlobURL re-signs the record's URL and persists the change
func (s *resumeMetadataService) repairBlobURL(ctx context.Context, resume *resumes.Resume) {
	repaired, changed := s.urls.RepairSAS(resume.BlobURL)
	if !changed {
		return
	}

	resume.BlobURL = repaired
	if err := s.repo.Replace(ctx, resume); err != nil {
		s.logger.Warn("Failed to update blob URL in database", "resume_id", resume.ID, "error", err)
		return
	}
	s.logger.Info("Updated blob URL in database", "resume_id", resume.ID)
}

// Get returns a single record and whether its blob currently answers
func (s *resumeMetadataService) Get(ctx context.Context, resumeID, userID string) (*resumes.View, error) {
	s.logger.Info("Fetching resume", "resume_id", resumeID, "user_id", userID)

	resume, err := s.repo.GetForUser(ctx, resumeID, userID)
	if err != nil {
		return nil, lookupError("Error fetching resume: ", err)
	}

	if resume.BlobURL == "" {
		return resumes.NewView(resume, nil), nil
	}

	s.repairBlobURL(ctx, resume)

	check := &resumes.BlobCheck{}
	res, err := s.prober.Head(ctx, resume.BlobURL, blobCheckTimeout)
	switch {
	case err != nil:
		s.logger.Warn("Blob URL validation error", "resume_id", resumeID, "error", err)
		check.Err = err.Error()
	case res.StatusCode == http.StatusOK:
		check.Accessible = true
	default:
		s.logger.Warn("Blob URL validation failed", "resume_id", resumeID, "status_code", res.StatusCode)
		check.StatusCode = res.StatusCode
	}

	return resumes.NewView(resume, check), nil
}

// Delete removes the record. Blob deletion is best effort.
func (s *resumeMetadataService) Delete(ctx context.Context, resumeID, userID string) error {
	s.logger.Info("Deleting resume", "resume_id", resumeID, "user_id", userID)

	resume, err := s.repo.GetForUser(ctx, resumeID, userID)
	if err != nil {
		return lookupError("Error deleting resume: ", err)
	}

	if resume.BlobURL != "" {
		s.deleteBlob(ctx, s.urls.BlobName(resume.BlobURL))
	}

	if err := s.repo.Delete(ctx, resume.ID); err != nil {
		s.logger.Error("Error deleting resume", "resume_id", resumeID, "error", err)
		return internalError("Error deleting resume: ", err)
	}

	s.logger.Info("Deleted resume", "resume_id", resumeID)
	return nil
}

func (s *resumeMetadataService) deleteBlob(ctx context.Context, name string) {
	if name == "" {
		s.logger.Error("Error deleting blob: could not extract blob name")
		return
	}

	if s.sasConnector != nil {
		err := s.sasConnector.Delete(ctx, name)
		if err == nil {
			s.logger.Info("Deleted blob using SAS connection", "name", name)
			return
		}
		s.logger.Warn("Error deleting blob with SAS connection, falling back", "name", name, "error", err)
	}

	if err := s.connector.Delete(ctx, name); err != nil {
		s.logger.Error("Error deleting blob", "name", name, "error", err)
		return
	}
	s.logger.Info("Deleted blob", "name", name)
}

// resumeDownloadService implements the ResumeDownloadService interface
type resumeDownloadService struct {
	repo      resumes.ResumeRepository
	prober    blobs.BlobProber
	recoverer maintenance.BlobRecoverer
	urls      *bloburl.Builder
	logger    logger.Logger
}

// NewResumeDownloadService creates a new instance of ResumeDownloadService
func NewResumeDownloadService(
	repo resumes.ResumeRepository,
	prober blobs.BlobProber,
	recoverer maintenance.BlobRecoverer,
	urls *bloburl.Builder,
	logger logger.Logger,
) (resumes.ResumeDownloadService, error) {
	return &resumeDownloadService{
		repo:      repo,
		prober:    prober,
		recoverer: recoverer,
		urls:      urls,
		logger:    logger,
	}, nil
}

// DownloadURL hands out a verified signed URL, or the proxy endpoint when the blob cannot be confirmed
func (s *resumeDownloadService) DownloadURL(ctx context.Context, resumeID, userID string) (*resumes.DownloadLink, error) {
	s.logger.Info("Download resume request", "resume_id", resumeID, "user_id", userID)

	resume, err := s.repo.GetForUser(ctx, resumeID, userID)
	if err != nil {
		return nil, lookupError("Error processing download: ", err)
	}
	if resume.BlobURL == "" {
		return nil, apperr.WithMessage(apperr.ErrNotFound, msgFileNotInStorage)
	}

	original := resume.BlobURL
	blobURL, _ := s.urls.Standardize(original, resumeID, time.Now())
	blobURL = s.urls.WithSAS(blobURL)

	verified := false
	res, err := s.prober.Head(ctx, blobURL, verifyTimeout)
	switch {
	case err != nil:
		s.logger.Error("Error verifying blob URL", "resume_id", resumeID, "error", err)
	case res.OK():
		verified = true
	case res.IsBlobNotFound():
		s.logger.Warn("BlobNotFound when verifying URL, attempting recovery", "resume_id", resumeID)
		if newURL, _ := s.recoverer.Recover(ctx, blobURL, resume); newURL != "" {
			blobURL = newURL
			verified = true
		} else {
			s.logger.Warn("Recovery failed, using direct-download endpoint", "resume_id", resumeID)
		}
	default:
		s.logger.Warn("Blob URL verification failed", "resume_id", resumeID, "status_code", res.StatusCode)
	}

	if blobURL != original {
		resume.BlobURL = blobURL
		if err := s.repo.Replace(ctx, resume); err != nil {
			s.logger.Warn("Failed to update resume record", "resume_id", resumeID, "error", err)
		}
	}

	if !verified {
		return &resumes.DownloadLink{
			URL:    fmt.Sprintf("/direct-download/%s?user_id=%s", resumeID, userID),
			Direct: true,
		}, nil
	}
	return &resumes.DownloadLink{URL: blobURL}, nil
}

// DirectDownload fetches the file through the service, recovering missing blobs
func (s *resumeDownloadService) DirectDownload(ctx context.Context, resumeID, userID string) (*resumes.FileContent, error) {
	s.logger.Info("Direct download request", "resume_id", resumeID, "user_id", userID)

	resume, err := s.repo.GetForUser(ctx, resumeID, userID)
	if err != nil {
		return nil, lookupError("Error processing download: ", err)
	}

	filename := resume.Filename
	if filename == "" {
		filename = fmt.Sprintf("resume-%s.pdf", resumeID)
	}
	contentType := resumes.ContentType(filename)
	if contentType == "" {
		contentType = resumes.ContentTypeOctet
		if extraction.Ext(filename) == "" {
			contentType = resumes.ContentTypePDF
		}
	}
	file := &resumes.FileContent{Filename: filename, ContentType: contentType}

	if resume.BlobURL == "" {
		if resume.PDFContent == "" {
			return nil, apperr.WithMessage(apperr.ErrNotFound, msgNoLocalContent)
		}
		s.logger.Info("Using PDF content directly from resume data", "resume_id", resumeID)
		file.Content = []byte(resume.PDFContent)
		return file, nil
	}

	blobURL, changed := s.urls.Standardize(resume.BlobURL, resumeID, time.Now())
	if changed {
		resume.BlobURL = blobURL
		if err := s.repo.Replace(ctx, resume); err != nil {
			s.logger.Warn("Failed to update resume with standardized URL", "resume_id", resumeID, "error", err)
		}
	}
	blobURL = s.urls.WithSAS(blobURL)

	content, err := s.fetch(ctx, blobURL, resume)
	if err != nil {
		s.logger.Error("Error downloading blob", "resume_id", resumeID, "error", err)
	}
	if content == nil {
		return nil, apperr.WithMessage(apperr.ErrNotFound, msgCouldNotRetrieve)
	}

	file.Content = content
	return file, nil
}

func (s *resumeDownloadService) fetch(ctx context.Context, blobURL string, resume *resumes.Resume) ([]byte, error) {
	res, err := s.prober.Get(ctx, blobURL, downloadTimeout)
	if err != nil {
		return nil, err
	}
	if res.OK() {
		return res.Body, nil
	}

	s.logger.Warn("Direct download failed", "resume_id", resume.ID, "status_code", res.StatusCode)
	if !res.IsBlobNotFound() {
		return nil, nil
	}

	newURL, content := s.recoverer.Recover(ctx, blobURL, resume)
	if newURL != "" {
		resume.BlobURL = newURL
		if err := s.repo.Replace(ctx, resume); err != nil {
			return content, fmt.Errorf("failed to persist recovered blob url: %w", err)
		}
		s.logger.Info("Updated resume with recovered blob URL", "resume_id", resume.ID)
	}
	return content, nil
}
