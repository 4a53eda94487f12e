package blobs

import (
	"context"
	"time"
)

// BlobConnector is an interface for interacting with Blob storage
type BlobConnector interface {
	// EnsureContainer creates the container when it does not exist yet
	EnsureContainer(ctx context.Context) error

	// Upload stores content under name, overwriting any existing blob, verifies the write
	// and returns the blob's URL without a SAS token.
	Upload(ctx context.Context, name string, content []byte, contentType string) (string, error)

	// Download retrieves a blob's content by name
	Download(ctx context.Context, name string) ([]byte, error)

	// Delete deletes a blob by name
	Delete(ctx context.Context, name string) error

	// ListByPrefix lists the blobs whose names start with prefix
	ListByPrefix(ctx context.Context, prefix string) ([]BlobItem, error)

	// URL returns the service URL of name as reported by the storage client
	URL(name string) string
}

// BlobProber issues plain HTTP requests against (signed) blob URLs
type BlobProber interface {
	// Head issues a HEAD request and returns status and headers
	Head(ctx context.Context, url string, timeout time.Duration) (*ProbeResult, error)

	// Get downloads url and returns status, body and headers
	Get(ctx context.Context, url string, timeout time.Duration) (*ProbeResult, error)
}

// BlobSaver stores resume files under standard names and hands back signed URLs
type BlobSaver interface {
	// SaveFile uploads content and returns a SAS-signed URL. The URL is returned even when
	// the upload fails so callers can still persist where the file is expected to live.
	SaveFile(ctx context.Context, content []byte, name string) (string, error)
}
