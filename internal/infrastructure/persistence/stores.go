package persistence

import (
	"context"
	"fmt"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

// Stores bundles the document store and resume repository of one backend
type Stores struct {
	DocumentStore documents.DocumentStore
	ResumeRepo    resumes.ResumeRepository

	close func() error
}

// Close releases the underlying connection, if the backend holds one
func (s *Stores) Close() error {
	if s.close == nil {
		return nil
	}
	return s.close()
}

// OpenStores builds the stores for the backend selected by cfg.Store.Type
func OpenStores(ctx context.Context, cfg *config.AppConfig, logger logger.Logger) (*Stores, error) {
	if cfg.Store.Type == config.StoreTypeCosmos {
		client, err := NewCosmosClient(&cfg.Cosmos)
		if err != nil {
			return nil, fmt.Errorf("failed to create cosmos client: %w", err)
		}

		resumeRepo, err := NewCosmosResumeRepository(ctx, client, &cfg.Cosmos, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create resume repository: %w", err)
		}

		documentStore, err := NewCosmosDocumentStore(ctx, client, &cfg.Cosmos, DefaultRetryPolicy, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create document store: %w", err)
		}

		logger.Info("Cosmos DB stores initialized successfully")
		return &Stores{DocumentStore: documentStore, ResumeRepo: resumeRepo}, nil
	}

	db, err := NewDBConnection(cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("failed to create db connection: %w", err)
	}
	logger.Info("Database migrations completed successfully", "store", cfg.Store.Type)

	resumeRepo, err := NewGormResumeRepository(db, logger)
	if err != nil {
		_ = CloseDB(db)
		return nil, fmt.Errorf("failed to create resume repository: %w", err)
	}

	documentStore, err := NewGormDocumentStore(db, DefaultRetryPolicy, logger)
	if err != nil {
		_ = CloseDB(db)
		return nil, fmt.Errorf("failed to create document store: %w", err)
	}

	return &Stores{
		DocumentStore: documentStore,
		ResumeRepo:    resumeRepo,
		close:         func() error { return CloseDB(db) },
	}, nil
}
