package testutil

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// FormFile is a file part of a multipart request
type FormFile struct {
	Field   string
	Name    string
	Content []byte
}

// NewMultipartRequest builds a multipart/form-data request with the given fields and an optional file
func NewMultipartRequest(t *testing.T, method, target string, fields map[string]string, file *FormFile) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}

	if file != nil {
		part, err := writer.CreateFormFile(file.Field, file.Name)
		require.NoError(t, err)

		_, err = part.Write(file.Content)
		require.NoError(t, err)
	}

	require.NoError(t, writer.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
