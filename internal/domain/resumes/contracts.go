package resumes

import (
	"context"
)

// UploadResult is returned after a resume was processed and stored
type UploadResult struct {
	Message  string `json:"message"`
	ResumeID string `json:"resume_id"`
}

// DownloadLink points at the file for a resume. Direct is set when the link is the
// proxy endpoint rather than a signed blob URL.
type DownloadLink struct {
	URL    string `json:"url"`
	Direct bool   `json:"direct"`
}

// FileContent is a resume file served through the proxy endpoint
type FileContent struct {
	Filename    string
	ContentType string
	Content     []byte
}

// ReplaceResult is returned after a resume's file was swapped
type ReplaceResult struct {
	Message string `json:"message"`
	BlobURL string `json:"blob_url"`
}

// ResumeUploadService defines methods for ingesting resume files.
type ResumeUploadService interface {
	// Upload extracts and parses the file, stores the record and the file, and returns the new id
	Upload(ctx context.Context, userID, filename string, content []byte) (*UploadResult, error)

	// ReplaceFile swaps the stored file of an existing record
	ReplaceFile(ctx context.Context, userID, resumeID, filename string, content []byte) (*ReplaceResult, error)
}

// ResumeMetadataService defines methods for reading and deleting resume records.
type ResumeMetadataService interface {
	// List returns the user's resumes, seeding a sample when the user has none
	List(ctx context.Context, userID string) ([]*View, error)

	// Get returns one resume after checking ownership and probing its blob
	Get(ctx context.Context, resumeID, userID string) (*View, error)

	// Delete removes the record and, best effort, its blob
	Delete(ctx context.Context, resumeID, userID string) error
}

// ResumeDownloadService defines methods for handing out resume files.
type ResumeDownloadService interface {
	// DownloadURL returns a verified signed URL, or the proxy endpoint when verification fails
	DownloadURL(ctx context.Context, resumeID, userID string) (*DownloadLink, error)

	// DirectDownload fetches the file content, recovering missing blobs where possible
	DirectDownload(ctx context.Context, resumeID, userID string) (*FileContent, error)
}

// ResumeRepository defines the interface for resume record persistence
type ResumeRepository interface {
	// Create adds a new record
	Create(ctx context.Context, r *Resume) error
	// Upsert creates or overwrites a record
	Upsert(ctx context.Context, r *Resume) error
	// Replace overwrites an existing record
	Replace(ctx context.Context, r *Resume) error
	// GetByID returns the record with id
	GetByID(ctx context.Context, id string) (*Resume, error)
	// GetForUser returns the record with id when it belongs to userID
	GetForUser(ctx context.Context, id, userID string) (*Resume, error)
	// ListByUser returns every record of userID
	ListByUser(ctx context.Context, userID string) ([]*Resume, error)
	// ListWithBlobURL returns every record that has a blob URL
	ListWithBlobURL(ctx context.Context) ([]*Resume, error)
	// Delete removes the record with id
	Delete(ctx context.Context, id string) error
}
