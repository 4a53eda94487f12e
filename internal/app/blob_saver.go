package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

const saveVerifyTimeout = 5 * time.Second

// blobSaver implements the BlobSaver interface on top of a connector and a URL prober
type blobSaver struct {
	connector blobs.BlobConnector
	prober    blobs.BlobProber
	urls      *bloburl.Builder
	logger    logger.Logger
}

// NewBlobSaver creates a new instance of BlobSaver
func NewBlobSaver(connector blobs.BlobConnector, prober blobs.BlobProber, urls *bloburl.Builder, logger logger.Logger) (blobs.BlobSaver, error) {
	if connector == nil || prober == nil || urls == nil {
		return nil, fmt.Errorf("blob saver requires a connector, a prober and a url builder")
	}
	return &blobSaver{
		connector: connector,
		prober:    prober,
		urls:      urls,
		logger:    logger,
	}, nil
}

// SaveFile stores content under a standard resume name and returns its SAS-signed URL.
// When the signed URL does not answer, the URL reported by the storage client is used instead.
func (s *blobSaver) SaveFile(ctx context.Context, content []byte, name string) (string, error) {
	s.logger.Info("Saving file to blob", "name", name)

	name = bloburl.SanitizeName(name)
	if !bloburl.IsStandardName(name) {
		name = bloburl.StandardName(time.Now(), uuid.NewString())
		s.logger.Info("Renamed blob to follow standard pattern", "name", name)
	}

	signedURL := s.urls.SignedURL(name)

	if err := s.connector.EnsureContainer(ctx); err != nil {
		s.logger.Error("Error uploading blob", "name", name, "error", err)
		return signedURL, fmt.Errorf("failed to ensure container: %w", err)
	}

	contentType := resumes.ContentType(name)
	if contentType == "" {
		contentType = resumes.ContentTypeOctet
	}

	clientURL, err := s.connector.Upload(ctx, name, content, contentType)
	if err != nil {
		s.logger.Error("Error uploading blob", "name", name, "error", err)
		return signedURL, fmt.Errorf("failed to upload blob %s: %w", name, err)
	}
	s.logger.Info("Successfully uploaded blob", "name", name)

	res, err := s.prober.Head(ctx, signedURL, saveVerifyTimeout)
	if err != nil {
		s.logger.Warn("Couldn't verify URL accessibility", "error", err)
		return signedURL, nil
	}
	if res.StatusCode >= http.StatusOK && res.StatusCode < http.StatusMultipleChoices {
		return signedURL, nil
	}

	s.logger.Warn("URL might not be accessible", "status_code", res.StatusCode)
	if bloburl.StripQuery(clientURL) != s.urls.DirectURL(name) {
		s.logger.Warn("Using storage client URL as fallback")
		return s.urls.Sign(clientURL), nil
	}
	return signedURL, nil
}
