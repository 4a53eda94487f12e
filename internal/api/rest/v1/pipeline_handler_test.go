//go:build unit
// +build unit

package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/pipeline"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

func processAllRequest(t *testing.T, path string, fields map[string]string) *http.Request {
	t.Helper()
	return testutil.NewMultipartRequest(t, http.MethodPost, path, fields,
		&testutil.FormFile{Field: "file", Name: "cv.pdf", Content: []byte("%PDF")})
}

var jobFields = map[string]string{"title": "Go Developer", "description": "Build services"}

func TestPipelineHandler_ProcessAll(t *testing.T) {
	matchesRequest := mock.MatchedBy(func(req *pipeline.Request) bool {
		return req.Title == "Go Developer" && req.Description == "Build services" &&
			req.Filename == "cv.pdf" && string(req.Content) == "%PDF"
	})

	t.Run("success", func(t *testing.T) {
		tr := newTestRouter()
		status := pipeline.NewStatus()
		tr.pipeline.On("ProcessAll", mock.Anything, matchesRequest).Return(&pipeline.Result{
			Status:         pipeline.StatusSuccess,
			ResumeID:       "jane",
			PDFURL:         "resume_20250310_164411_abcdef12.pdf",
			ProcessDetails: status,
		}, nil)

		w := tr.serve(processAllRequest(t, "/process-all/", jobFields))
		require.Equal(t, http.StatusOK, w.Code)

		var body map[string]any
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, "success", body["status"])
		assert.Equal(t, "jane", body["resume_id"])
		assert.Contains(t, body, "process_details")
	})

	t.Run("without trailing slash", func(t *testing.T) {
		tr := newTestRouter()
		tr.pipeline.On("ProcessAll", mock.Anything, matchesRequest).
			Return(&pipeline.Result{Status: pipeline.StatusSuccess, ProcessDetails: pipeline.NewStatus()}, nil)

		w := tr.serve(processAllRequest(t, "/process-all", jobFields))
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("mostly failed", func(t *testing.T) {
		tr := newTestRouter()
		tr.pipeline.On("ProcessAll", mock.Anything, mock.Anything).
			Return(&pipeline.Result{Status: pipeline.StatusMostlyFailed, ProcessDetails: pipeline.NewStatus()}, nil)

		w := tr.serve(processAllRequest(t, "/process-all/", jobFields))
		assert.Equal(t, http.StatusMultiStatus, w.Code)
	})

	t.Run("unsupported file", func(t *testing.T) {
		tr := newTestRouter()
		tr.pipeline.On("ProcessAll", mock.Anything, mock.Anything).
			Return(nil, apperr.WithMessage(apperr.ErrBadRequest, "Only PDF and DOCX files are supported"))

		w := tr.serve(processAllRequest(t, "/process-all/", jobFields))
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Only PDF and DOCX files are supported", decodeDetail(t, w))
	})

	t.Run("unexpected failure", func(t *testing.T) {
		tr := newTestRouter()
		tr.pipeline.On("ProcessAll", mock.Anything, mock.Anything).Return(nil, errors.New("context canceled"))

		w := tr.serve(processAllRequest(t, "/process-all/", jobFields))
		require.Equal(t, http.StatusInternalServerError, w.Code)
		assert.JSONEq(t, `{
			"status": "failed",
			"error": "context canceled",
			"message": "An unexpected error occurred while processing the request.",
			"file_processed": "cv.pdf"
		}`, w.Body.String())
	})

	t.Run("missing description", func(t *testing.T) {
		tr := newTestRouter()

		w := tr.serve(processAllRequest(t, "/process-all/", map[string]string{"title": "Go Developer"}))
		assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
		assert.Equal(t, "Field required: description", decodeDetail(t, w))
		tr.pipeline.AssertNotCalled(t, "ProcessAll", mock.Anything, mock.Anything)
	})
}
