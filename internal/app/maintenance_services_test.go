//go:build unit
// +build unit

package app

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

const testAdminKey = "admin-key"

type maintenanceFixture struct {
	connector    *MockBlobConnector
	sasConnector *MockBlobConnector
	saver        *MockBlobSaver
	prober       *MockBlobProber
	renderer     *MockRenderer
	repo         *MockResumeRepository
	recoverer    *MockBlobRecoverer
	service      maintenance.MaintenanceService
}

func newMaintenanceFixture(t *testing.T) *maintenanceFixture {
	t.Helper()
	f := &maintenanceFixture{
		connector:    &MockBlobConnector{},
		sasConnector: &MockBlobConnector{},
		saver:        &MockBlobSaver{},
		prober:       &MockBlobProber{},
		renderer:     &MockRenderer{},
		repo:         &MockResumeRepository{},
		recoverer:    &MockBlobRecoverer{},
	}

	var err error
	f.service, err = NewMaintenanceService(
		f.connector,
		f.sasConnector,
		f.saver,
		f.prober,
		f.renderer,
		f.repo,
		f.recoverer,
		newTestURLs(t),
		testAdminKey,
		testutil.SetupTestLogger(t),
	)
	require.NoError(t, err)
	return f
}

func TestNewMaintenanceService_EmptyAdminKey(t *testing.T) {
	_, err := NewMaintenanceService(nil, nil, nil, nil, nil, nil, nil, newTestURLs(t), "", testutil.SetupTestLogger(t))
	assert.Error(t, err)
}

func TestMaintenanceService_Sample(t *testing.T) {
	ctx := context.Background()
	sample := []byte("%PDF-sample")
	sampleURL := testBaseURL + "/new/" + maintenance.SampleBlobName

	t.Run("through blob saver", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.renderer.On("Sample", mock.Anything).Return(sample, nil)
		f.saver.On("SaveFile", ctx, sample, maintenance.SampleBlobName).Return(signedBlobURL(), nil)

		result, err := f.service.Sample(ctx, false)
		require.NoError(t, err)
		assert.Equal(t, "Sample PDF uploaded successfully", result.Message)
		assert.Equal(t, signedBlobURL(), result.BlobURL)
	})

	t.Run("through sas connection", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.renderer.On("Sample", mock.Anything).Return(sample, nil)
		f.sasConnector.On("Upload", ctx, maintenance.SampleBlobName, sample, resumes.ContentTypePDF).Return(sampleURL+"?old=1", nil)

		result, err := f.service.Sample(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, "Sample PDF created and uploaded successfully", result.Message)
		assert.Equal(t, sampleURL+"?"+testToken, result.BlobURL)
		f.connector.AssertNotCalled(t, "Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("falls back to regular connection", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.renderer.On("Sample", mock.Anything).Return(sample, nil)
		f.sasConnector.On("Upload", ctx, maintenance.SampleBlobName, sample, resumes.ContentTypePDF).Return("", errors.New("sas expired"))
		f.connector.On("Upload", ctx, maintenance.SampleBlobName, sample, resumes.ContentTypePDF).Return(sampleURL, nil)

		result, err := f.service.Sample(ctx, true)
		require.NoError(t, err)
		assert.Equal(t, sampleURL+"?"+testToken, result.BlobURL)
	})

	t.Run("upload failure", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.renderer.On("Sample", mock.Anything).Return(sample, nil)
		f.sasConnector.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("sas expired"))
		f.connector.On("Upload", ctx, mock.Anything, mock.Anything, mock.Anything).Return("", errors.New("forbidden"))

		_, err := f.service.Sample(ctx, true)
		assertAppError(t, err, http.StatusInternalServerError, "Error creating sample PDF: forbidden")
	})

	t.Run("render failure", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.renderer.On("Sample", mock.Anything).Return(nil, errors.New("font missing"))

		_, err := f.service.Sample(ctx, false)
		assertAppError(t, err, http.StatusInternalServerError, "Error uploading sample PDF: font missing")
	})
}

func TestMaintenanceService_FixBlobURLs(t *testing.T) {
	ctx := context.Background()

	t.Run("invalid admin key", func(t *testing.T) {
		f := newMaintenanceFixture(t)

		_, err := f.service.FixBlobURLs(ctx, "wrong")
		assertAppError(t, err, http.StatusForbidden, msgInvalidAdminKey)
		f.repo.AssertNotCalled(t, "ListWithBlobURL", mock.Anything)
	})

	t.Run("counts outcomes", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		onAccount := &resumes.Resume{ID: "a", BlobURL: signedBlobURL()}
		elsewhereSigned := &resumes.Resume{ID: "b", BlobURL: "https://cdn.example.com/new/b.pdf?" + testToken}
		elsewhereUnsigned := &resumes.Resume{ID: "c", BlobURL: "https://cdn.example.com/new/c.pdf"}

		f.repo.On("ListWithBlobURL", ctx).Return([]*resumes.Resume{onAccount, elsewhereSigned, elsewhereUnsigned}, nil)
		f.repo.On("Replace", ctx, mock.MatchedBy(func(r *resumes.Resume) bool { return r.ID == "a" })).Return(nil)
		f.repo.On("Replace", ctx, mock.MatchedBy(func(r *resumes.Resume) bool { return r.ID == "c" })).Return(errors.New("conflict"))
		f.prober.On("Head", ctx, signedBlobURL(), fixVerifyTimeout).Return(okResult("", nil), nil)

		report, err := f.service.FixBlobURLs(ctx, testAdminKey)
		require.NoError(t, err)
		assert.Equal(t, &maintenance.FixReport{
			Message:           "Blob URL fix completed",
			TotalChecked:      3,
			Fixed:             1,
			AlreadyCorrect:    1,
			SpecialCasesFixed: 1,
			Errors:            1,
		}, report)
		assert.NotEmpty(t, onAccount.FixedAt)
		f.prober.AssertNumberOfCalls(t, "Head", 1)
	})

	t.Run("account urls count once each", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		standard := &resumes.Resume{ID: "a", BlobURL: testBaseURL + "/" + testContainer + "/" + testBlobName}
		signed := &resumes.Resume{ID: "b", BlobURL: signedBlobURL()}

		f.repo.On("ListWithBlobURL", ctx).Return([]*resumes.Resume{standard, signed}, nil)
		f.repo.On("Replace", ctx, mock.Anything).Return(nil)
		f.prober.On("Head", ctx, signedBlobURL(), fixVerifyTimeout).Return(okResult("", nil), nil)

		report, err := f.service.FixBlobURLs(ctx, testAdminKey)
		require.NoError(t, err)
		assert.Equal(t, 2, report.SpecialCasesFixed)
		assert.Equal(t, 2, report.Fixed)
		assert.Equal(t, 0, report.AlreadyCorrect)
		assert.Equal(t, signedBlobURL(), standard.BlobURL)
	})

	t.Run("store failure", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.repo.On("ListWithBlobURL", ctx).Return(nil, errors.New("db down"))

		_, err := f.service.FixBlobURLs(ctx, testAdminKey)
		assertAppError(t, err, http.StatusInternalServerError, "Error fixing blob URLs: db down")
	})
}

func TestMaintenanceService_TestBlobAccess(t *testing.T) {
	ctx := context.Background()
	raw := testBaseURL + "/new/" + testBlobName

	t.Run("reports headers", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		header := http.Header{}
		header.Set("Content-Type", "application/pdf")
		header.Set("Content-Length", "4")
		header.Set("Access-Control-Allow-Origin", "*")
		f.prober.On("Get", ctx, signedBlobURL(), accessTestTimeout).Return(okResult("%PDF", header), nil)

		result, err := f.service.TestBlobAccess(ctx, raw, false)
		require.NoError(t, err)
		require.NotNil(t, result.Report)
		report := result.Report
		assert.Equal(t, signedBlobURL(), report.URLTested)
		assert.Equal(t, http.StatusOK, report.StatusCode)
		assert.True(t, report.Success)
		require.NotNil(t, report.ContentType)
		assert.Equal(t, "application/pdf", *report.ContentType)
		require.NotNil(t, report.CORSHeaders.AllowOrigin)
		assert.Equal(t, "*", *report.CORSHeaders.AllowOrigin)
		assert.Nil(t, report.CORSHeaders.AllowMethods)
		assert.False(t, report.RecoveryAttempted)
		assert.Empty(t, report.Error)
	})

	t.Run("downloads content", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		header := http.Header{}
		header.Set("Content-Type", "application/octet-stream")
		f.prober.On("Get", ctx, signedBlobURL(), accessTestTimeout).Return(okResult("%PDF", header), nil)

		result, err := f.service.TestBlobAccess(ctx, raw, true)
		require.NoError(t, err)
		assert.True(t, result.HasContent())
		assert.Equal(t, testBlobName, result.Filename)
		assert.Equal(t, resumes.ContentTypePDF, result.ContentType)
		assert.Nil(t, result.Report)
	})

	t.Run("recovers missing blob", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		recovered := testBaseURL + "/new/resume_20250401_000000_11111111.pdf?" + testToken
		f.prober.On("Get", ctx, signedBlobURL(), accessTestTimeout).Return(blobNotFoundResult(), nil)
		f.recoverer.On("Recover", ctx, signedBlobURL(), (*resumes.Resume)(nil)).Return(recovered, []byte("%PDF"))
		f.prober.On("Get", ctx, recovered, accessTestTimeout).Return(okResult("%PDF", nil), nil)

		result, err := f.service.TestBlobAccess(ctx, raw, false)
		require.NoError(t, err)
		assert.Equal(t, recovered, result.Report.URLTested)
		assert.True(t, result.Report.RecoveryAttempted)
		assert.True(t, result.Report.Success)
	})

	t.Run("unrecoverable", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.prober.On("Get", ctx, signedBlobURL(), accessTestTimeout).Return(blobNotFoundResult(), nil)
		f.recoverer.On("Recover", ctx, signedBlobURL(), (*resumes.Resume)(nil)).Return("", nil)

		result, err := f.service.TestBlobAccess(ctx, raw, true)
		require.NoError(t, err)
		require.NotNil(t, result.Report)
		assert.False(t, result.Report.Success)
		assert.Equal(t, http.StatusNotFound, result.Report.StatusCode)
		assert.Contains(t, result.Report.Error, "BlobNotFound")
	})

	t.Run("request failure", func(t *testing.T) {
		f := newMaintenanceFixture(t)
		f.prober.On("Get", ctx, signedBlobURL(), accessTestTimeout).Return(nil, errors.New("connection refused"))

		result, err := f.service.TestBlobAccess(ctx, raw, false)
		require.NoError(t, err)
		assert.Equal(t, "connection refused", result.Report.Error)
		assert.False(t, result.Report.Success)
	})
}
