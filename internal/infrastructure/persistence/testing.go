//go:build integration
// +build integration

package persistence

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/gorm"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/testutil"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresDB       = "resumes_test"
	postgresUser     = "postgres"
	postgresPassword = "postgres"
)

// TestRetryPolicy keeps retrying tests fast
var TestRetryPolicy = RetryPolicy{Attempts: 3, Delay: 10 * time.Millisecond}

// TestContext holds test database and repositories
type TestContext struct {
	DB            *gorm.DB
	DocumentStore documents.DocumentStore
	ResumeRepo    resumes.ResumeRepository
}

// SetupTestDB initializes a sqlite file or a postgres container with automatic cleanup
func SetupTestDB(t *testing.T, dbType string) *TestContext {
	t.Helper()

	var settings config.StoreSettings

	switch dbType {
	case config.StoreTypeSqlite:
		settings = config.StoreSettings{
			Type: config.StoreTypeSqlite,
			DSN:  filepath.Join(t.TempDir(), "resumes.db"),
		}

	case config.StoreTypePostgres:
		settings = config.StoreSettings{
			Type: config.StoreTypePostgres,
			DSN:  startPostgres(t),
		}

	default:
		t.Fatalf("Unsupported database type: %s", dbType)
	}

	db, err := NewDBConnection(settings)
	require.NoError(t, err, "Failed to create database connection")

	t.Cleanup(func() {
		_ = CloseDB(db)
	})

	logger := testutil.SetupTestLogger(t)

	store, err := NewGormDocumentStore(db, TestRetryPolicy, logger)
	require.NoError(t, err, "Failed to create document store")

	repo, err := NewGormResumeRepository(db, logger)
	require.NoError(t, err, "Failed to create resume repository")

	return &TestContext{
		DB:            db,
		DocumentStore: store,
		ResumeRepo:    repo,
	}
}

func startPostgres(t *testing.T) string {
	t.Helper()
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		postgresImage,
		postgres.WithDatabase(postgresDB),
		postgres.WithUsername(postgresUser),
		postgres.WithPassword(postgresPassword),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err, "Failed to start postgres container")

	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("failed to terminate postgres container: %v", err)
		}
	})

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)
	return dsn
}

// CreateTestResume creates a resume record with default values
func CreateTestResume(t *testing.T, userID string) *resumes.Resume {
	t.Helper()

	id := uuid.NewString()
	return &resumes.Resume{
		ID:        id,
		UserID:    userID,
		Filename:  "resume.pdf",
		Type:      "resume",
		CreatedAt: resumes.Now(),
		BlobURL:   "https://pdf1.blob.core.windows.net/new/resume_20250310_164411_" + id[:8] + ".pdf",
		Fields: map[string]any{
			"summary": "Backend engineer",
			"skills":  []any{"Go", "SQL"},
		},
	}
}
