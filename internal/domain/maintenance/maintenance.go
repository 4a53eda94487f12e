// Package maintenance defines the operator tools for blob storage: sample uploads,
// bulk SAS repair and access diagnostics.
package maintenance

import (
	"context"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
)

// SampleBlobName is the fixed name sample documents are uploaded under
const SampleBlobName = "sample.pdf"

// SampleResult is returned after the sample document was uploaded
type SampleResult struct {
	Message string `json:"message"`
	BlobURL string `json:"blob_url"`
}

// FixReport summarises a bulk blob URL repair
type FixReport struct {
	Message           string `json:"message"`
	TotalChecked      int    `json:"total_checked"`
	Fixed             int    `json:"fixed"`
	AlreadyCorrect    int    `json:"already_correct"`
	SpecialCasesFixed int    `json:"special_cases_fixed"`
	Errors            int    `json:"errors"`
}

// CORSHeaders echoes the CORS headers a blob response carried
type CORSHeaders struct {
	AllowOrigin  *string `json:"access_control_allow_origin"`
	AllowMethods *string `json:"access_control_allow_methods"`
	AllowHeaders *string `json:"access_control_allow_headers"`
}

// AccessReport describes a single probe of a blob URL
type AccessReport struct {
	URLTested         string      `json:"url_tested"`
	StatusCode        int         `json:"status_code"`
	Success           bool        `json:"success"`
	ContentType       *string     `json:"content_type"`
	ContentLength     *string     `json:"content_length"`
	CORSHeaders       CORSHeaders `json:"cors_headers"`
	RecoveryAttempted bool        `json:"recovery_attempted"`
	Error             string      `json:"error,omitempty"`
}

// AccessResult holds either the downloaded file or the probe report
type AccessResult struct {
	Report      *AccessReport
	Filename    string
	ContentType string
	Content     []byte
}

// HasContent reports whether the file itself should be served
func (r *AccessResult) HasContent() bool {
	return r != nil && len(r.Content) > 0
}

// MaintenanceService defines the operator tools
type MaintenanceService interface {
	// Sample renders and uploads the sample document. With viaSAS the SAS connection
	// string is tried first.
	Sample(ctx context.Context, viaSAS bool) (*SampleResult, error)

	// FixBlobURLs re-signs every stored blob URL that lacks the SAS token
	FixBlobURLs(ctx context.Context, adminKey string) (*FixReport, error)

	// TestBlobAccess probes url, attempting recovery of missing blobs. When download is set
	// and the file could be fetched, the content is returned instead of the report.
	TestBlobAccess(ctx context.Context, url string, download bool) (*AccessResult, error)
}

// BlobRecoverer finds or regenerates the file behind a missing blob
type BlobRecoverer interface {
	// Recover returns a replacement URL, content, or both. Empty results mean nothing
	// could be recovered. resume may be nil.
	Recover(ctx context.Context, url string, resume *resumes.Resume) (string, []byte)
}
