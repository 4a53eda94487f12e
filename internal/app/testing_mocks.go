//go:build unit
// +build unit

package app

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
)

// MockResumeRepository is a mock implementation of ResumeRepository
type MockResumeRepository struct {
	mock.Mock
}

func (m *MockResumeRepository) Create(ctx context.Context, r *resumes.Resume) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResumeRepository) Upsert(ctx context.Context, r *resumes.Resume) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResumeRepository) Replace(ctx context.Context, r *resumes.Resume) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockResumeRepository) GetByID(ctx context.Context, id string) (*resumes.Resume, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumes.Resume), args.Error(1)
}

func (m *MockResumeRepository) GetForUser(ctx context.Context, id, userID string) (*resumes.Resume, error) {
	args := m.Called(ctx, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*resumes.Resume), args.Error(1)
}

func (m *MockResumeRepository) ListByUser(ctx context.Context, userID string) ([]*resumes.Resume, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resumes.Resume), args.Error(1)
}

func (m *MockResumeRepository) ListWithBlobURL(ctx context.Context) ([]*resumes.Resume, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*resumes.Resume), args.Error(1)
}

func (m *MockResumeRepository) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

// MockBlobConnector is a mock implementation of BlobConnector
type MockBlobConnector struct {
	mock.Mock
}

func (m *MockBlobConnector) EnsureContainer(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockBlobConnector) Upload(ctx context.Context, name string, content []byte, contentType string) (string, error) {
	args := m.Called(ctx, name, content, contentType)
	return args.String(0), args.Error(1)
}

func (m *MockBlobConnector) Download(ctx context.Context, name string) ([]byte, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockBlobConnector) Delete(ctx context.Context, name string) error {
	return m.Called(ctx, name).Error(0)
}

func (m *MockBlobConnector) ListByPrefix(ctx context.Context, prefix string) ([]blobs.BlobItem, error) {
	args := m.Called(ctx, prefix)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]blobs.BlobItem), args.Error(1)
}

func (m *MockBlobConnector) URL(name string) string {
	return m.Called(name).String(0)
}

// MockBlobProber is a mock implementation of BlobProber
type MockBlobProber struct {
	mock.Mock
}

func (m *MockBlobProber) Head(ctx context.Context, url string, timeout time.Duration) (*blobs.ProbeResult, error) {
	args := m.Called(ctx, url, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blobs.ProbeResult), args.Error(1)
}

func (m *MockBlobProber) Get(ctx context.Context, url string, timeout time.Duration) (*blobs.ProbeResult, error) {
	args := m.Called(ctx, url, timeout)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*blobs.ProbeResult), args.Error(1)
}

// MockBlobSaver is a mock implementation of BlobSaver
type MockBlobSaver struct {
	mock.Mock
}

func (m *MockBlobSaver) SaveFile(ctx context.Context, content []byte, name string) (string, error) {
	args := m.Called(ctx, content, name)
	return args.String(0), args.Error(1)
}

// MockBlobRecoverer is a mock implementation of BlobRecoverer
type MockBlobRecoverer struct {
	mock.Mock
}

func (m *MockBlobRecoverer) Recover(ctx context.Context, url string, resume *resumes.Resume) (string, []byte) {
	args := m.Called(ctx, url, resume)
	if args.Get(1) == nil {
		return args.String(0), nil
	}
	return args.String(0), args.Get(1).([]byte)
}

// MockTextExtractor is a mock implementation of TextExtractor
type MockTextExtractor struct {
	mock.Mock
}

func (m *MockTextExtractor) Extract(ctx context.Context, filename string, content []byte) (string, error) {
	args := m.Called(ctx, filename, content)
	return args.String(0), args.Error(1)
}

// MockResumeParser is a mock implementation of ResumeParser
type MockResumeParser struct {
	mock.Mock
}

func (m *MockResumeParser) ResumeToJSON(ctx context.Context, text string) (map[string]any, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

func (m *MockResumeParser) ProcessResume(ctx context.Context, text string) map[string]any {
	return m.Called(ctx, text).Get(0).(map[string]any)
}

// MockJobAnalyzer is a mock implementation of JobAnalyzer
type MockJobAnalyzer struct {
	mock.Mock
}

func (m *MockJobAnalyzer) Analyze(ctx context.Context, title, description string) (map[string]any, error) {
	args := m.Called(ctx, title, description)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// MockResumeTailor is a mock implementation of ResumeTailor
type MockResumeTailor struct {
	mock.Mock
}

func (m *MockResumeTailor) Tailor(ctx context.Context, resume, job map[string]any) (map[string]any, error) {
	args := m.Called(ctx, resume, job)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]any), args.Error(1)
}

// MockRenderer is a mock implementation of Renderer
type MockRenderer struct {
	mock.Mock
}

func (m *MockRenderer) Render(data map[string]any) ([]byte, error) {
	args := m.Called(data)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockRenderer) Sample(now time.Time) ([]byte, error) {
	args := m.Called(now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// MockDocumentStore is a mock implementation of DocumentStore
type MockDocumentStore struct {
	mock.Mock
}

func (m *MockDocumentStore) Store(ctx context.Context, kind documents.Kind, id string, data map[string]any) (string, error) {
	args := m.Called(ctx, kind, id, data)
	return args.String(0), args.Error(1)
}

func (m *MockDocumentStore) Get(ctx context.Context, kind documents.Kind, id string) (*documents.Document, error) {
	args := m.Called(ctx, kind, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*documents.Document), args.Error(1)
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
