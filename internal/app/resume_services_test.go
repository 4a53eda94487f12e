//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/apperr"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

type resumeServicesFixture struct {
	repo         *MockResumeRepository
	connector    *MockBlobConnector
	sasConnector *MockBlobConnector
	prober       *MockBlobProber
	saver        *MockBlobSaver
	recoverer    *MockBlobRecoverer
	extractor    *MockTextExtractor
	parser       *MockResumeParser
	samples      *MockMaintenanceService

	upload   resumes.ResumeUploadService
	metadata resumes.ResumeMetadataService
	download resumes.ResumeDownloadService
}

func newResumeServicesFixture(t *testing.T) *resumeServicesFixture {
	t.Helper()
	logger := testutil.SetupTestLogger(t)
	urls := newTestURLs(t)

	f := &resumeServicesFixture{
		repo:         &MockResumeRepository{},
		connector:    &MockBlobConnector{},
		sasConnector: &MockBlobConnector{},
		prober:       &MockBlobProber{},
		saver:        &MockBlobSaver{},
		recoverer:    &MockBlobRecoverer{},
		extractor:    &MockTextExtractor{},
		parser:       &MockResumeParser{},
		samples:      &MockMaintenanceService{},
	}

	var err error
	f.upload, err = NewResumeUploadService(f.repo, f.extractor, f.parser, f.saver, logger)
	require.NoError(t, err)
	f.metadata, err = NewResumeMetadataService(f.repo, f.connector, f.sasConnector, f.prober, f.samples, urls, logger)
	require.NoError(t, err)
	f.download, err = NewResumeDownloadService(f.repo, f.prober, f.recoverer, urls, logger)
	require.NoError(t, err)
	return f
}

func signedBlobURL() string {
	return testBaseURL + "/new/" + testBlobName + "?" + testToken
}

func storedResume(blobURL string) *resumes.Resume {
	return &resumes.Resume{
		ID:        "r-1",
		UserID:    "user-1",
		Filename:  "cv.pdf",
		CreatedAt: "2025-03-10T16:44:11Z",
		BlobURL:   blobURL,
		Fields:    map[string]any{"summary": "Engineer"},
	}
}

func assertAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	require.Error(t, err)
	assert.Equal(t, status, apperr.Status(err))
	assert.Equal(t, message, apperr.Message(err))
}

func TestResumeUploadService_Upload(t *testing.T) {
	ctx := context.Background()
	content := []byte("%PDF")

	t.Run("stores record and file", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		parsed := map[string]any{"type": "resume", "summary": "Engineer", "id": "ignored"}
		blobURL := signedBlobURL()

		f.extractor.On("Extract", ctx, "cv.pdf", content).Return("resume text", nil)
		f.parser.On("ProcessResume", ctx, "resume text").Return(parsed)
		f.repo.On("Create", ctx, mock.MatchedBy(func(r *resumes.Resume) bool {
			return r.UserID == "user-1" && r.Filename == "cv.pdf" && r.ID != "ignored" && r.CreatedAt != ""
		})).Return(nil)
		f.saver.On("SaveFile", ctx, content, mock.MatchedBy(func(name string) bool {
			return strings.HasPrefix(name, "user-1/") && strings.HasSuffix(name, ".pdf")
		})).Return(blobURL, nil)
		f.repo.On("Upsert", ctx, mock.MatchedBy(func(r *resumes.Resume) bool {
			return r.BlobURL == blobURL
		})).Return(nil)

		result, err := f.upload.Upload(ctx, "user-1", "cv.pdf", content)
		require.NoError(t, err)
		assert.Equal(t, "Resume uploaded and processed successfully", result.Message)
		assert.NotEmpty(t, result.ResumeID)
		f.repo.AssertExpectations(t)
	})

	t.Run("upload failure keeps expected url", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.extractor.On("Extract", ctx, "cv.docx", content).Return("text", nil)
		f.parser.On("ProcessResume", ctx, "text").Return(map[string]any{"type": "resume"})
		f.repo.On("Create", ctx, mock.Anything).Return(nil)
		f.saver.On("SaveFile", ctx, content, mock.Anything).Return("https://expected", errors.New("upload failed"))
		f.repo.On("Upsert", ctx, mock.MatchedBy(func(r *resumes.Resume) bool {
			return r.BlobURL == "https://expected"
		})).Return(nil)

		_, err := f.upload.Upload(ctx, "user-1", "cv.docx", content)
		require.NoError(t, err)
	})

	t.Run("unsupported format", func(t *testing.T) {
		f := newResumeServicesFixture(t)

		_, err := f.upload.Upload(ctx, "user-1", "cv.txt", content)
		assertAppError(t, err, http.StatusBadRequest, msgUnsupportedUpload)
		f.extractor.AssertNotCalled(t, "Extract", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("extraction failure", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.extractor.On("Extract", ctx, "cv.doc", content).Return("", errors.New("legacy format"))

		_, err := f.upload.Upload(ctx, "user-1", "cv.doc", content)
		assertAppError(t, err, http.StatusInternalServerError, "Error processing resume: legacy format")
	})

	t.Run("missing user", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.extractor.On("Extract", ctx, "cv.pdf", content).Return("text", nil)
		f.parser.On("ProcessResume", ctx, "text").Return(map[string]any{})

		_, err := f.upload.Upload(ctx, "", "cv.pdf", content)
		require.Error(t, err)
		assert.Equal(t, http.StatusBadRequest, apperr.Status(err))
	})
}

func TestResumeUploadService_ReplaceFile(t *testing.T) {
	ctx := context.Background()
	content := []byte("PK")

	t.Run("replaces file", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(""), nil)
		f.saver.On("SaveFile", ctx, content, "user-1/r-1.docx").Return(signedBlobURL(), nil)
		f.repo.On("Replace", ctx, mock.MatchedBy(func(r *resumes.Resume) bool {
			return r.Filename == "new.docx" && r.BlobURL == signedBlobURL() && r.UpdatedAt != ""
		})).Return(nil)

		result, err := f.upload.ReplaceFile(ctx, "user-1", "r-1", "new.docx", content)
		require.NoError(t, err)
		assert.Equal(t, "Resume file replaced successfully", result.Message)
		assert.Equal(t, signedBlobURL(), result.BlobURL)
	})

	t.Run("not found", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-2").Return(nil, resumes.ErrNotFound)

		_, err := f.upload.ReplaceFile(ctx, "user-2", "r-1", "new.pdf", content)
		assertAppError(t, err, http.StatusNotFound, msgResumeNotFound)
	})

	t.Run("unsupported format", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(""), nil)

		_, err := f.upload.ReplaceFile(ctx, "user-1", "r-1", "new.png", content)
		assertAppError(t, err, http.StatusBadRequest, msgUnsupportedUpload)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(nil, errors.New("db down"))

		_, err := f.upload.ReplaceFile(ctx, "user-1", "r-1", "new.pdf", content)
		assertAppError(t, err, http.StatusInternalServerError, "Error replacing resume file: db down")
	})
}

func TestResumeMetadataService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("seeds sample for new users", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("ListByUser", ctx, "user-1").Return([]*resumes.Resume{}, nil)
		f.samples.On("Sample", ctx, true).Return(&maintenance.SampleResult{BlobURL: signedBlobURL()}, nil)
		f.repo.On("Create", ctx, mock.MatchedBy(func(r *resumes.Resume) bool {
			return r.UserID == "user-1" && r.Filename == sampleFilename
		})).Return(nil)

		views, err := f.metadata.List(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, sampleFilename, views[0].Resume.Filename)
		f.repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("sample failure returns empty list", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("ListByUser", ctx, "user-1").Return([]*resumes.Resume{}, nil)
		f.samples.On("Sample", ctx, true).Return(nil, errors.New("storage down"))

		views, err := f.metadata.List(ctx, "user-1")
		require.NoError(t, err)
		assert.Empty(t, views)
	})

	t.Run("re-signs account urls", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		unsigned := storedResume(testBaseURL + "/new/" + testBlobName + "?sig=expired")
		f.repo.On("ListByUser", ctx, "user-1").Return([]*resumes.Resume{unsigned}, nil)
		f.repo.On("Replace", ctx, unsigned).Return(nil)

		views, err := f.metadata.List(ctx, "user-1")
		require.NoError(t, err)
		require.Len(t, views, 1)
		assert.Equal(t, signedBlobURL(), views[0].Resume.BlobURL)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("ListByUser", ctx, "user-1").Return(nil, errors.New("db down"))

		_, err := f.metadata.List(ctx, "user-1")
		assertAppError(t, err, http.StatusInternalServerError, "Error fetching resumes: db down")
	})
}

func TestResumeMetadataService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("accessible blob", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.repo.On("Replace", ctx, mock.Anything).Return(nil)
		f.prober.On("Head", ctx, signedBlobURL(), blobCheckTimeout).Return(okResult("", nil), nil)

		view, err := f.metadata.Get(ctx, "r-1", "user-1")
		require.NoError(t, err)
		out := view.ToMap()
		assert.Equal(t, true, out["blob_accessible"])
		assert.NotContains(t, out, "blob_status_code")
	})

	t.Run("inaccessible blob", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.repo.On("Replace", ctx, mock.Anything).Return(nil)
		f.prober.On("Head", ctx, signedBlobURL(), blobCheckTimeout).Return(statusResult(http.StatusForbidden), nil)

		view, err := f.metadata.Get(ctx, "r-1", "user-1")
		require.NoError(t, err)
		out := view.ToMap()
		assert.Equal(t, false, out["blob_accessible"])
		assert.Equal(t, http.StatusForbidden, out["blob_status_code"])
	})

	t.Run("probe error", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.repo.On("Replace", ctx, mock.Anything).Return(nil)
		f.prober.On("Head", ctx, signedBlobURL(), blobCheckTimeout).Return(nil, errors.New("dns failure"))

		view, err := f.metadata.Get(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "dns failure", view.ToMap()["blob_error"])
	})

	t.Run("without blob", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(""), nil)

		view, err := f.metadata.Get(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.NotContains(t, view.ToMap(), "blob_accessible")
		f.prober.AssertNotCalled(t, "Head", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(nil, resumes.ErrNotFound)

		_, err := f.metadata.Get(ctx, "r-1", "user-1")
		assertAppError(t, err, http.StatusNotFound, msgResumeNotFound)
	})
}

func TestResumeMetadataService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("falls back to regular connector", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.sasConnector.On("Delete", ctx, testBlobName).Return(errors.New("sas expired"))
		f.connector.On("Delete", ctx, testBlobName).Return(nil)
		f.repo.On("Delete", ctx, "r-1").Return(nil)

		require.NoError(t, f.metadata.Delete(ctx, "r-1", "user-1"))
		f.connector.AssertExpectations(t)
		f.sasConnector.AssertExpectations(t)
	})

	t.Run("blob failure does not block", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.sasConnector.On("Delete", ctx, testBlobName).Return(errors.New("gone"))
		f.connector.On("Delete", ctx, testBlobName).Return(errors.New("gone"))
		f.repo.On("Delete", ctx, "r-1").Return(nil)

		require.NoError(t, f.metadata.Delete(ctx, "r-1", "user-1"))
	})

	t.Run("record failure", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(""), nil)
		f.repo.On("Delete", ctx, "r-1").Return(errors.New("db down"))

		err := f.metadata.Delete(ctx, "r-1", "user-1")
		assertAppError(t, err, http.StatusInternalServerError, "Error deleting resume: db down")
		f.sasConnector.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestResumeDownloadService_DownloadURL(t *testing.T) {
	ctx := context.Background()

	t.Run("verified url", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.prober.On("Head", ctx, signedBlobURL(), verifyTimeout).Return(okResult("", nil), nil)

		link, err := f.download.DownloadURL(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, signedBlobURL(), link.URL)
		assert.False(t, link.Direct)
		f.repo.AssertNotCalled(t, "Replace", mock.Anything, mock.Anything)
	})

	t.Run("standardizes and persists", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		resume := storedResume("https://legacy.example.com/uploads/" + testBlobName)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(resume, nil)
		f.prober.On("Head", ctx, signedBlobURL(), verifyTimeout).Return(okResult("", nil), nil)
		f.repo.On("Replace", ctx, resume).Return(nil)

		link, err := f.download.DownloadURL(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, signedBlobURL(), link.URL)
		assert.Equal(t, signedBlobURL(), resume.BlobURL)
	})

	t.Run("recovers missing blob", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		resume := storedResume(signedBlobURL())
		recovered := testBaseURL + "/new/resume_20250401_000000_11111111.pdf?" + testToken
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(resume, nil)
		f.prober.On("Head", ctx, signedBlobURL(), verifyTimeout).Return(blobNotFoundResult(), nil)
		f.recoverer.On("Recover", ctx, signedBlobURL(), resume).Return(recovered, []byte("%PDF"))
		f.repo.On("Replace", ctx, resume).Return(nil)

		link, err := f.download.DownloadURL(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, recovered, link.URL)
	})

	t.Run("falls back to proxy endpoint", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.prober.On("Head", ctx, signedBlobURL(), verifyTimeout).Return(statusResult(http.StatusForbidden), nil)

		link, err := f.download.DownloadURL(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "/direct-download/r-1?user_id=user-1", link.URL)
		assert.True(t, link.Direct)
	})

	t.Run("no blob", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(""), nil)

		_, err := f.download.DownloadURL(ctx, "r-1", "user-1")
		assertAppError(t, err, http.StatusNotFound, msgFileNotInStorage)
	})

	t.Run("not found", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(nil, resumes.ErrNotFound)

		_, err := f.download.DownloadURL(ctx, "r-1", "user-1")
		assertAppError(t, err, http.StatusNotFound, msgResumeNotFound)
	})
}

func TestResumeDownloadService_DirectDownload(t *testing.T) {
	ctx := context.Background()

	t.Run("streams blob", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(signedBlobURL()), nil)
		f.prober.On("Get", ctx, signedBlobURL(), downloadTimeout).Return(okResult("%PDF", nil), nil)

		file, err := f.download.DirectDownload(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "cv.pdf", file.Filename)
		assert.Equal(t, resumes.ContentTypePDF, file.ContentType)
		assert.Equal(t, []byte("%PDF"), file.Content)
	})

	t.Run("serves stored content", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		resume := storedResume("")
		resume.Filename = ""
		resume.PDFContent = "%PDF-inline"
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(resume, nil)

		file, err := f.download.DirectDownload(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, "resume-r-1.pdf", file.Filename)
		assert.Equal(t, []byte("%PDF-inline"), file.Content)
	})

	t.Run("word documents", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		resume := storedResume(signedBlobURL())
		resume.Filename = "cv.docx"
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(resume, nil)
		f.prober.On("Get", ctx, signedBlobURL(), downloadTimeout).Return(okResult("PK", nil), nil)

		file, err := f.download.DirectDownload(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, resumes.ContentTypeWord, file.ContentType)
	})

	t.Run("recovers missing blob", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		resume := storedResume(signedBlobURL())
		recovered := testBaseURL + "/new/resume_20250401_000000_11111111.pdf?" + testToken
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(resume, nil)
		f.prober.On("Get", ctx, signedBlobURL(), downloadTimeout).Return(blobNotFoundResult(), nil)
		f.recoverer.On("Recover", ctx, signedBlobURL(), resume).Return(recovered, []byte("%PDF-recovered"))
		f.repo.On("Replace", ctx, resume).Return(nil)

		file, err := f.download.DirectDownload(ctx, "r-1", "user-1")
		require.NoError(t, err)
		assert.Equal(t, []byte("%PDF-recovered"), file.Content)
		assert.Equal(t, recovered, resume.BlobURL)
	})

	t.Run("nothing recovered", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		resume := storedResume(signedBlobURL())
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(resume, nil)
		f.prober.On("Get", ctx, signedBlobURL(), downloadTimeout).Return(blobNotFoundResult(), nil)
		f.recoverer.On("Recover", ctx, signedBlobURL(), resume).Return("", nil)

		_, err := f.download.DirectDownload(ctx, "r-1", "user-1")
		assertAppError(t, err, http.StatusNotFound, msgCouldNotRetrieve)
	})

	t.Run("no blob and no content", func(t *testing.T) {
		f := newResumeServicesFixture(t)
		f.repo.On("GetForUser", ctx, "r-1", "user-1").Return(storedResume(""), nil)

		_, err := f.download.DirectDownload(ctx, "r-1", "user-1")
		assertAppError(t, err, http.StatusNotFound, msgNoLocalContent)
	})
}
