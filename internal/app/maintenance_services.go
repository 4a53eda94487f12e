package app

import (
	"context"
	"crypto/subtle"
	"fmt"
	"net/http"
	"time"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

const (
	accessTestTimeout = 15 * time.Second
	fixVerifyTimeout  = 5 * time.Second
)

// maintenanceService implements the MaintenanceService interface
type maintenanceService struct {
	connector    blobs.BlobConnector
	sasConnector blobs.BlobConnector
	saver        blobs.BlobSaver
	prober       blobs.BlobProber
	renderer     rendering.Renderer
	repo         resumes.ResumeRepository
	recoverer    maintenance.BlobRecoverer
	urls         *bloburl.Builder
	adminKey     string
	logger       logger.Logger
}

// NewMaintenanceService creates a new instance of MaintenanceService.
// sasConnector may be nil when no SAS connection string is configured.
func NewMaintenanceService(
	connector blobs.BlobConnector,
	sasConnector blobs.BlobConnector,
	saver blobs.BlobSaver,
	prober blobs.BlobProber,
	renderer rendering.Renderer,
	repo resumes.ResumeRepository,
	recoverer maintenance.BlobRecoverer,
	urls *bloburl.Builder,
	adminKey string,
	logger logger.Logger,
) (maintenance.MaintenanceService, error) {
	if adminKey == "" {
		return nil, fmt.Errorf("admin key is empty")
	}
	return &maintenanceService{
		connector:    connector,
		sasConnector: sasConnector,
		saver:        saver,
		prober:       prober,
		renderer:     renderer,
		repo:         repo,
		recoverer:    recoverer,
		urls:         urls,
		adminKey:     adminKey,
		logger:       logger,
	}, nil
}

// Sample uploads the sample document. Without viaSAS it goes through the blob saver
// and ends up under a standard name; with viaSAS it is written as sample.pdf.
func (s *maintenanceService) Sample(ctx context.Context, viaSAS bool) (*maintenance.SampleResult, error) {
	prefix := "Error uploading sample PDF: "
	if viaSAS {
		prefix = "Error creating sample PDF: "
	}

	content, err := s.renderer.Sample(time.Now())
	if err != nil {
		s.logger.Error("Error rendering sample PDF", "error", err)
		return nil, internalError(prefix, err)
	}

	if !viaSAS {
		blobURL, err := s.saver.SaveFile(ctx, content, maintenance.SampleBlobName)
		if err != nil {
			s.logger.Warn("Sample upload failed, returning expected URL", "error", err)
		}
		return &maintenance.SampleResult{Message: "Sample PDF uploaded successfully", BlobURL: blobURL}, nil
	}

	blobURL, err := s.uploadSample(ctx, content)
	if err != nil {
		s.logger.Error("Error creating sample PDF", "error", err)
		return nil, internalError(prefix, err)
	}

	s.logger.Info("Sample PDF created and uploaded successfully")
	return &maintenance.SampleResult{Message: "Sample PDF created and uploaded successfully", BlobURL: blobURL}, nil
}

func (s *maintenanceService) uploadSample(ctx context.Context, content []byte) (string, error) {
	if s.sasConnector != nil {
		clientURL, err := s.sasConnector.Upload(ctx, maintenance.SampleBlobName, content, resumes.ContentTypePDF)
		if err == nil {
			return s.urls.Sign(clientURL), nil
		}
		s.logger.Warn("Error using SAS connection for sample PDF, falling back", "error", err)
	}

	clientURL, err := s.connector.Upload(ctx, maintenance.SampleBlobName, content, resumes.ContentTypePDF)
	if err != nil {
		return "", err
	}
	return s.urls.Sign(clientURL), nil
}

// FixBlobURLs re-signs stored URLs. URLs on the storage account are always re-signed.
func (s *maintenanceService) FixBlobURLs(ctx context.Context, adminKey string) (*maintenance.FixReport, error) {
	if subtle.ConstantTimeCompare([]byte(adminKey), []byte(s.adminKey)) != 1 {
		return nil, apperr.WithMessage(apperr.ErrForbidden, msgInvalidAdminKey)
	}

	items, err := s.repo.ListWithBlobURL(ctx)
	if err != nil {
		s.logger.Error("Error fixing blob URLs", "error", err)
		return nil, internalError("Error fixing blob URLs: ", err)
	}
	s.logger.Info("Found resumes with blob URLs to check", "count", len(items))

	report := &maintenance.FixReport{
		Message:      "Blob URL fix completed",
		TotalChecked: len(items),
	}

	for _, resume := range items {
		blobURL := resume.BlobURL
		if blobURL == "" {
			continue
		}

		newURL := s.urls.Sign(blobURL)
		// Counted once per URL on the storage account, even when the URL also carries the
		// standard resume_ prefix.
		special := s.urls.IsAccountURL(blobURL)
		if special {
			report.SpecialCasesFixed++
		}

		if (blobURL == newURL || s.urls.HasToken(blobURL)) && !special {
			report.AlreadyCorrect++
			continue
		}

		resume.BlobURL = newURL
		resume.FixedAt = resumes.Now()
		if err := s.repo.Replace(ctx, resume); err != nil {
			s.logger.Error("Error fixing URL", "resume_id", resume.ID, "error", err)
			report.Errors++
			continue
		}
		report.Fixed++
		s.logger.Info("Fixed blob URL", "resume_id", resume.ID)

		s.verify(ctx, newURL)
	}

	return report, nil
}

func (s *maintenanceService) verify(ctx context.Context, blobURL string) {
	res, err := s.prober.Head(ctx, blobURL, fixVerifyTimeout)
	switch {
	case err != nil:
		s.logger.Warn("Couldn't verify URL", "error", err)
	case res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices:
		s.logger.Info("Verified URL is accessible", "status_code", res.StatusCode)
	default:
		s.logger.Warn("New URL may not be accessible", "status_code", res.StatusCode)
	}
}

// TestBlobAccess fetches rawURL after canonicalising and signing it
func (s *maintenanceService) TestBlobAccess(ctx context.Context, rawURL string, download bool) (*maintenance.AccessResult, error) {
	s.logger.Info("Testing access to blob URL", "url", bloburl.StripQuery(rawURL))

	blobURL, _ := s.urls.Standardize(rawURL, "", time.Now())
	blobURL = s.urls.WithSAS(blobURL)

	res, err := s.prober.Get(ctx, blobURL, accessTestTimeout)
	if err != nil {
		s.logger.Error("Error testing blob access", "error", err)
		return &maintenance.AccessResult{
			Report: &maintenance.AccessReport{URLTested: blobURL, Error: err.Error()},
		}, nil
	}

	var content []byte
	recoveryAttempted := false

	switch {
	case res.IsBlobNotFound():
		s.logger.Warn("BlobNotFound error, attempting recovery")
		recoveryAttempted = true

		newURL, newContent := s.recoverer.Recover(ctx, blobURL, nil)
		switch {
		case newURL != "":
			blobURL = newURL
			retry, err := s.prober.Get(ctx, blobURL, accessTestTimeout)
			if err != nil {
				s.logger.Error("Error testing recovered blob URL", "error", err)
				return &maintenance.AccessResult{
					Report: &maintenance.AccessReport{URLTested: blobURL, RecoveryAttempted: true, Error: err.Error()},
				}, nil
			}
			res = retry
			if res.OK() {
				content = res.Body
			}
		case newContent != nil:
			content = newContent
		}
	case res.OK():
		content = res.Body
	}
	success := content != nil

	if download && len(content) > 0 {
		filename := bloburl.FileName(blobURL)
		contentType := resumes.ContentType(filename)
		if contentType == "" {
			contentType = res.ContentType()
		}
		if contentType == "" {
			contentType = resumes.ContentTypeOctet
		}
		return &maintenance.AccessResult{
			Filename:    filename,
			ContentType: contentType,
			Content:     content,
		}, nil
	}

	report := &maintenance.AccessReport{
		URLTested:     blobURL,
		StatusCode:    res.StatusCode,
		Success:       success,
		ContentType:   header(res, "Content-Type"),
		ContentLength: header(res, "Content-Length"),
		CORSHeaders: maintenance.CORSHeaders{
			AllowOrigin:  header(res, "Access-Control-Allow-Origin"),
			AllowMethods: header(res, "Access-Control-Allow-Methods"),
			AllowHeaders: header(res, "Access-Control-Allow-Headers"),
		},
		RecoveryAttempted: recoveryAttempted,
	}
	if !success {
		report.Error = string(res.Body)
	}
	return &maintenance.AccessResult{Report: report}, nil
}

// header returns the value of key, or nil when the response did not carry it
func header(res *blobs.ProbeResult, key string) *string {
	if res == nil || res.Header == nil {
		return nil
	}
	v := res.Header.Get(key)
	if v == "" {
		return nil
	}
	return &v
}
