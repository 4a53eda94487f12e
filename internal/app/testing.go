//go:build integration
// +build integration

package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/maintenance"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/pipeline"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/connector"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/extraction"
	llmInfra "github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/llm"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/persistence"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/prober"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

// Azurite serves blobs under http://127.0.0.1:10000/devstoreaccount1/<container>/<name>
const (
	TestBlobBaseURL = "http://127.0.0.1:10000/devstoreaccount1"
	TestAdminKey    = "test-admin-key"
)

// TestCompletion is returned by the canned completer for every prompt
const TestCompletion = `{
  "personal_info": {"name": "Jane Doe", "email": "jane@example.com"},
  "summary": "Backend engineer",
  "experience": [{"title": "Engineer", "company": "Acme", "dates": "2020-2024", "responsibilities": ["Built APIs"]}],
  "education": [{"degree": "BSc", "institution": "MIT", "dates": "2016-2020"}],
  "skills": {"languages": ["Go", "SQL"]}
}`

// cannedCompleter answers every completion with the same content
type cannedCompleter struct {
	content string
}

func (c *cannedCompleter) Complete(_ context.Context, _ llm.CompletionRequest) (string, error) {
	return c.content, nil
}

// TestServices holds all application services and dependencies for testing
type TestServices struct {
	ResumeUploadService   resumes.ResumeUploadService
	ResumeMetadataService resumes.ResumeMetadataService
	ResumeDownloadService resumes.ResumeDownloadService
	PipelineService       pipeline.PipelineService
	MaintenanceService    maintenance.MaintenanceService

	URLs      *bloburl.Builder
	DBContext *persistence.TestContext
}

// SetupTestServices wires every service against a test database and Azurite
func SetupTestServices(t *testing.T, dbType string) *TestServices {
	t.Helper()

	logger := testutil.SetupTestLogger(t)
	dbContext := persistence.SetupTestDB(t, dbType)

	blobConnector, err := connector.NewAzureBlobConnector(connector.TestConnectionString, connector.TestContainerName, logger)
	require.NoError(t, err, "Failed to create blob connector")

	urls, err := bloburl.NewBuilder(TestBlobBaseURL, connector.TestContainerName, "")
	require.NoError(t, err, "Failed to create url builder")

	blobProber := prober.NewRestyProber(logger)
	renderer := rendering.NewPDFRenderer(logger)
	extractor := extraction.NewTextExtractor(logger)

	completer := &cannedCompleter{content: TestCompletion}
	parser, err := llmInfra.NewResumeParser(completer, logger)
	require.NoError(t, err)
	analyzer, err := llmInfra.NewJobAnalyzer(completer, logger)
	require.NoError(t, err)
	tailor, err := llmInfra.NewResumeTailor(completer, logger)
	require.NoError(t, err)

	saver, err := NewBlobSaver(blobConnector, blobProber, urls, logger)
	require.NoError(t, err, "Failed to create BlobSaver")

	recoverer, err := NewBlobRecoverer(blobConnector, blobProber, saver, renderer, urls, logger)
	require.NoError(t, err, "Failed to create BlobRecoverer")

	maintenanceService, err := NewMaintenanceService(
		blobConnector,
		nil,
		saver,
		blobProber,
		renderer,
		dbContext.ResumeRepo,
		recoverer,
		urls,
		TestAdminKey,
		logger,
	)
	require.NoError(t, err, "Failed to create MaintenanceService")

	uploadService, err := NewResumeUploadService(dbContext.ResumeRepo, extractor, parser, saver, logger)
	require.NoError(t, err, "Failed to create ResumeUploadService")

	metadataService, err := NewResumeMetadataService(
		dbContext.ResumeRepo,
		blobConnector,
		nil,
		blobProber,
		maintenanceService,
		urls,
		logger,
	)
	require.NoError(t, err, "Failed to create ResumeMetadataService")

	downloadService, err := NewResumeDownloadService(dbContext.ResumeRepo, blobProber, recoverer, urls, logger)
	require.NoError(t, err, "Failed to create ResumeDownloadService")

	pipelineService, err := NewPipelineService(
		extractor,
		parser,
		analyzer,
		tailor,
		renderer,
		blobConnector,
		dbContext.DocumentStore,
		logger,
	)
	require.NoError(t, err, "Failed to create PipelineService")

	return &TestServices{
		ResumeUploadService:   uploadService,
		ResumeMetadataService: metadataService,
		ResumeDownloadService: downloadService,
		PipelineService:       pipelineService,
		MaintenanceService:    maintenanceService,
		URLs:                  urls,
		DBContext:             dbContext,
	}
}
