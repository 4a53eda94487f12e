package blobs

import (
	"errors"
	"net/http"
	"strings"
	"time"
)

const errorCodeHeader = "x-ms-error-code"

// ErrBlobNotFound is returned by connectors when the named blob does not exist
var ErrBlobNotFound = errors.New("blob not found")

// BlobItem is a listing entry of the resume container
type BlobItem struct {
	Name         string
	LastModified time.Time
	Size         int64
}

// ProbeResult is the outcome of an HTTP request against a blob URL
type ProbeResult struct {
	StatusCode int
	Body       []byte
	Header     http.Header
}

// OK reports a 200 response
func (p *ProbeResult) OK() bool {
	return p != nil && p.StatusCode == http.StatusOK
}

// IsBlobNotFound reports the storage service's 404 for a missing blob, as opposed to
// a missing container or an expired signature. HEAD responses carry the code only in
// the x-ms-error-code header.
func (p *ProbeResult) IsBlobNotFound() bool {
	if p == nil || p.StatusCode != http.StatusNotFound {
		return false
	}
	if p.Header != nil && p.Header.Get(errorCodeHeader) == "BlobNotFound" {
		return true
	}
	return strings.Contains(string(p.Body), "BlobNotFound")
}

// ContentType returns the Content-Type header, if any
func (p *ProbeResult) ContentType() string {
	if p == nil || p.Header == nil {
		return ""
	}
	return p.Header.Get("Content-Type")
}
