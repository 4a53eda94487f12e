//go:build unit
// +build unit

package app

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
)

const (
	testBaseURL   = "https://pdf1.blob.core.windows.net"
	testContainer = "new"
	testToken     = "sp=r&sv=2022-11-02&sig=abc"
	testBlobName  = "resume_20250310_164411_abcdef12.pdf"
)

func newTestURLs(t *testing.T) *bloburl.Builder {
	t.Helper()
	urls, err := bloburl.NewBuilder(testBaseURL, testContainer, testToken)
	require.NoError(t, err)
	return urls
}

func okResult(body string, header http.Header) *blobs.ProbeResult {
	return &blobs.ProbeResult{StatusCode: http.StatusOK, Body: []byte(body), Header: header}
}

func statusResult(code int) *blobs.ProbeResult {
	return &blobs.ProbeResult{StatusCode: code}
}

func blobNotFoundResult() *blobs.ProbeResult {
	return &blobs.ProbeResult{
		StatusCode: http.StatusNotFound,
		Body:       []byte(`<?xml version="1.0"?><Error><Code>BlobNotFound</Code></Error>`),
	}
}
