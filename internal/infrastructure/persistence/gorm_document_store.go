package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/persistence/models"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type gormDocumentStore struct {
	db     *gorm.DB
	retry  RetryPolicy
	logger logger.Logger
}

// NewGormDocumentStore creates a new GORM-based DocumentStore implementation
func NewGormDocumentStore(db *gorm.DB, retry RetryPolicy, logger logger.Logger) (documents.DocumentStore, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &gormDocumentStore{
		db:     db,
		retry:  retry,
		logger: logger,
	}, nil
}

func (s *gormDocumentStore) Store(ctx context.Context, kind documents.Kind, id string, data map[string]any) (string, error) {
	doc := &documents.Document{ID: id, Kind: kind, Data: data}
	if err := validateForStore(doc); err != nil {
		return "", err
	}

	storedID := id
	err := s.retry.do(ctx, s.logger, id, func() error {
		var count int64
		err := s.db.WithContext(ctx).Model(&models.DocumentModel{}).
			Where("kind = ? AND id = ?", string(kind), id).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to look up document: %w", err)
		}

		storedID = id
		if count > 0 {
			storedID = uniqueID(id, time.Now())
			s.logger.Warn("Document exists, storing with new id", "id", id, "new_id", storedID)
		}

		model := &models.DocumentModel{}
		model.FromDomain(&documents.Document{ID: storedID, Kind: kind, Data: data})
		if err := s.db.WithContext(ctx).Create(model).Error; err != nil {
			return fmt.Errorf("failed to create document: %w", err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}

	s.logger.Info("Stored document", "kind", kind, "id", storedID)
	return storedID, nil
}

func (s *gormDocumentStore) Get(ctx context.Context, kind documents.Kind, id string) (*documents.Document, error) {
	var model models.DocumentModel
	err := s.db.WithContext(ctx).Where("kind = ? AND id = ?", string(kind), id).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", documents.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch document: %w", err)
	}
	return model.ToDomain(), nil
}
