package app

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

const (
	recoveryGetTimeout  = 10 * time.Second
	recoveryHeadTimeout = 5 * time.Second
)

// regenerationFields must all be present on a record before its PDF is rebuilt
var regenerationFields = []string{"personal_info", "summary", "experience", "education", "skills"}

type blobRecoverer struct {
	connector blobs.BlobConnector
	prober    blobs.BlobProber
	saver     blobs.BlobSaver
	renderer  rendering.Renderer
	urls      *bloburl.Builder
	logger    logger.Logger
}

// NewBlobRecoverer creates a BlobRecoverer that searches the container, regenerates from
// the parsed record and finally tries the canonical URL.
func NewBlobRecoverer(
	connector blobs.BlobConnector,
	prober blobs.BlobProber,
	saver blobs.BlobSaver,
	renderer rendering.Renderer,
	urls *bloburl.Builder,
	logger logger.Logger,
) (maintenance.BlobRecoverer, error) {
	if connector == nil || prober == nil || saver == nil || renderer == nil || urls == nil {
		return nil, fmt.Errorf("blob recoverer is missing a dependency")
	}
	return &blobRecoverer{
		connector: connector,
		prober:    prober,
		saver:     saver,
		renderer:  renderer,
		urls:      urls,
		logger:    logger,
	}, nil
}

func (r *blobRecoverer) Recover(ctx context.Context, rawURL string, resume *resumes.Resume) (string, []byte) {
	r.logger.Info("Attempting to recover missing blob", "url", bloburl.StripQuery(rawURL))

	u, err := url.Parse(rawURL)
	if err != nil || len(strings.FieldsFunc(u.Path, func(c rune) bool { return c == '/' })) < 2 {
		r.logger.Error("Cannot parse blob URL for recovery", "url", bloburl.StripQuery(rawURL))
		return "", nil
	}
	name := r.urls.BlobName(rawURL)

	if newURL, content := r.fromSimilarName(ctx, name); newURL != "" {
		return newURL, content
	}

	if resume != nil && resume.HasFields(regenerationFields...) {
		if newURL, content, ok := r.regenerate(ctx, resume); ok {
			return newURL, content
		}
	}

	if newURL, content := r.fromDirectURL(ctx, name); newURL != "" {
		return newURL, content
	}

	r.logger.Warn("All recovery strategies failed", "name", name)
	return "", nil
}

// fromSimilarName downloads the newest blob sharing the missing blob's prefix
func (r *blobRecoverer) fromSimilarName(ctx context.Context, name string) (string, []byte) {
	prefix := bloburl.RecoveryPrefix(name)
	if prefix == "" {
		return "", nil
	}

	r.logger.Info("Searching for blobs with prefix", "prefix", prefix)
	items, err := r.connector.ListByPrefix(ctx, prefix)
	if err != nil {
		r.logger.Error("Error listing blobs for recovery", "prefix", prefix, "error", err)
		return "", nil
	}
	if len(items) == 0 {
		return "", nil
	}

	newest := items[0]
	for _, item := range items[1:] {
		if item.LastModified.After(newest.LastModified) {
			newest = item
		}
	}
	r.logger.Info("Found similar blob", "name", newest.Name, "last_modified", newest.LastModified)

	newURL := r.urls.SignedURL(newest.Name)
	res, err := r.prober.Get(ctx, newURL, recoveryGetTimeout)
	if err != nil {
		r.logger.Warn("Error downloading similar blob", "error", err)
		return "", nil
	}
	if !res.OK() {
		r.logger.Warn("Similar blob URL returned unexpected status", "status_code", res.StatusCode)
		return "", nil
	}
	return newURL, res.Body
}

// regenerate renders the record again and uploads it under a fresh name. Content is
// returned without a URL when only the upload failed.
func (r *blobRecoverer) regenerate(ctx context.Context, resume *resumes.Resume) (string, []byte, bool) {
	r.logger.Info("Attempting to regenerate PDF from resume data", "resume_id", resume.ID)

	content, err := r.renderer.Render(resume.ToMap())
	if err != nil {
		r.logger.Error("Failed to regenerate PDF", "error", err)
		return "", nil, false
	}

	name := bloburl.StandardName(time.Now(), uuid.NewString())
	newURL, err := r.saver.SaveFile(ctx, content, name)
	if err != nil {
		r.logger.Error("Failed to upload regenerated file", "error", err)
		return "", content, true
	}
	return newURL, content, true
}

// fromDirectURL retries the canonical location of a standard blob name
func (r *blobRecoverer) fromDirectURL(ctx context.Context, name string) (string, []byte) {
	if !bloburl.IsStandardName(name) {
		return "", nil
	}

	directURL := r.urls.SignedURL(name)
	head, err := r.prober.Head(ctx, directURL, recoveryHeadTimeout)
	if err != nil || !head.OK() {
		return "", nil
	}

	res, err := r.prober.Get(ctx, directURL, recoveryGetTimeout)
	if err != nil || !res.OK() {
		return "", nil
	}
	r.logger.Info("Direct URL construction successful", "name", name)
	return directURL, res.Body
}
