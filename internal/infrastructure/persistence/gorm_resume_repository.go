package persistence

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/persistence/models"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type gormResumeRepository struct {
	db     *gorm.DB
	logger logger.Logger
}

// NewGormResumeRepository creates a new GORM-based ResumeRepository implementation
func NewGormResumeRepository(db *gorm.DB, logger logger.Logger) (resumes.ResumeRepository, error) {
	if db == nil {
		return nil, fmt.Errorf("db is nil")
	}
	return &gormResumeRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *gormResumeRepository) Create(ctx context.Context, resume *resumes.Resume) error {
	if err := resume.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ResumeModel{}
	model.FromDomain(resume)

	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	r.logger.Info("Created resume", "id", resume.ID, "user_id", resume.UserID)
	return nil
}

func (r *gormResumeRepository) Upsert(ctx context.Context, resume *resumes.Resume) error {
	if err := resume.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ResumeModel{}
	model.FromDomain(resume)

	if err := r.db.WithContext(ctx).Save(model).Error; err != nil {
		return fmt.Errorf("failed to upsert resume: %w", err)
	}

	r.logger.Info("Upserted resume", "id", resume.ID)
	return nil
}

func (r *gormResumeRepository) Replace(ctx context.Context, resume *resumes.Resume) error {
	if err := resume.Validate(); err != nil {
		return fmt.Errorf("validation error: %w", err)
	}

	model := &models.ResumeModel{}
	model.FromDomain(resume)

	res := r.db.WithContext(ctx).Model(&models.ResumeModel{}).Where("id = ?", resume.ID).
		Select("*").Updates(model)
	if res.Error != nil {
		return fmt.Errorf("failed to replace resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", resumes.ErrNotFound, resume.ID)
	}

	r.logger.Info("Replaced resume", "id", resume.ID)
	return nil
}

func (r *gormResumeRepository) GetByID(ctx context.Context, id string) (*resumes.Resume, error) {
	var model models.ResumeModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", resumes.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch resume: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormResumeRepository) GetForUser(ctx context.Context, id, userID string) (*resumes.Resume, error) {
	var model models.ResumeModel
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", resumes.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to fetch resume: %w", err)
	}
	return model.ToDomain(), nil
}

func (r *gormResumeRepository) ListByUser(ctx context.Context, userID string) ([]*resumes.Resume, error) {
	var modelList []*models.ResumeModel
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch resumes: %w", err)
	}
	return toDomainList(modelList), nil
}

func (r *gormResumeRepository) ListWithBlobURL(ctx context.Context) ([]*resumes.Resume, error) {
	var modelList []*models.ResumeModel
	if err := r.db.WithContext(ctx).Where("blob_url <> ''").Find(&modelList).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch resumes: %w", err)
	}
	return toDomainList(modelList), nil
}

func (r *gormResumeRepository) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.ResumeModel{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s", resumes.ErrNotFound, id)
	}

	r.logger.Info("Deleted resume", "id", id)
	return nil
}

func toDomainList(modelList []*models.ResumeModel) []*resumes.Resume {
	domainList := make([]*resumes.Resume, len(modelList))
	for i, model := range modelList {
		domainList[i] = model.ToDomain()
	}
	return domainList
}
