//go:build unit
// +build unit

package v1

import (
	"context"
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/pipeline"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
)

// MockResumeUploadService is a mock implementation of ResumeUploadService
type MockResumeUploadService struct {
	mock.Mock
}

func (m *MockResumeUploadService) Upload(ctx context.Context, userID, filename string, content []byte) (*resumes.UploadResult, error) {
	args := m.Called(ctx, userID, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumes.UploadResult), args.Error(1)
}

func (m *MockResumeUploadService) ReplaceFile(ctx context.Context, userID, resumeID, filename string, content []byte) (*resumes.ReplaceResult, error) {
	args := m.Called(ctx, userID, resumeID, filename, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumes.ReplaceResult), args.Error(1)
}

// MockResumeMetadataService is a mock implementation of ResumeMetadataService
type MockResumeMetadataService struct {
	mock.Mock
}

func (m *MockResumeMetadataService) List(ctx context.Context, userID string) ([]*resumes.View, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resumes.View), args.Error(1)
}

func (m *MockResumeMetadataService) Get(ctx context.Context, resumeID, userID string) (*resumes.View, error) {
	args := m.Called(ctx, resumeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumes.View), args.Error(1)
}

func (m *MockResumeMetadataService) Delete(ctx context.Context, resumeID, userID string) error {
	return m.Called(ctx, resumeID, userID).Error(0)
}

// MockResumeDownloadService is a mock implementation of ResumeDownloadService
type MockResumeDownloadService struct {
	mock.Mock
}

func (m *MockResumeDownloadService) DownloadURL(ctx context.Context, resumeID, userID string) (*resumes.DownloadLink, error) {
	args := m.Called(ctx, resumeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumes.DownloadLink), args.Error(1)
}

func (m *MockResumeDownloadService) DirectDownload(ctx context.Context, resumeID, userID string) (*resumes.FileContent, error) {
	args := m.Called(ctx, resumeID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumes.FileContent), args.Error(1)
}

// MockPipelineService is a mock implementation of PipelineService
type MockPipelineService struct {
	mock.Mock
}

func (m *MockPipelineService) ProcessAll(ctx context.Context, req *pipeline.Request) (*pipeline.Result, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pipeline.Result), args.Error(1)
}

// MockMaintenanceService is a mock implementation of MaintenanceService
type MockMaintenanceService struct {
	mock.Mock
}

func (m *MockMaintenanceService) Sample(ctx context.Context, viaSAS bool) (*maintenance.SampleResult, error) {
	args := m.Called(ctx, viaSAS)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.SampleResult), args.Error(1)
}

func (m *MockMaintenanceService) FixBlobURLs(ctx context.Context, adminKey string) (*maintenance.FixReport, error) {
	args := m.Called(ctx, adminKey)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.FixReport), args.Error(1)
}

func (m *MockMaintenanceService) TestBlobAccess(ctx context.Context, url string, download bool) (*maintenance.AccessResult, error) {
	args := m.Called(ctx, url, download)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*maintenance.AccessResult), args.Error(1)
}

// testRouter wires every route against fresh mocks
type testRouter struct {
	engine      *gin.Engine
	upload      *MockResumeUploadService
	metadata    *MockResumeMetadataService
	download    *MockResumeDownloadService
	pipeline    *MockPipelineService
	maintenance *MockMaintenanceService
}

func newTestRouter() *testRouter {
	gin.SetMode(gin.TestMode)
	tr := &testRouter{
		engine:      gin.New(),
		upload:      new(MockResumeUploadService),
		metadata:    new(MockResumeMetadataService),
		download:    new(MockResumeDownloadService),
		pipeline:    new(MockPipelineService),
		maintenance: new(MockMaintenanceService),
	}
	tr.engine.Use(RequestID(), Metrics())
	SetupRoutes(tr.engine, tr.upload, tr.metadata, tr.download, tr.pipeline, tr.maintenance)
	return tr
}

func (tr *testRouter) serve(req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	tr.engine.ServeHTTP(w, req)
	return w
}
