package persistence

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/resumes"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type cosmosResumeRepository struct {
	container *cosmosContainer
	logger    logger.Logger
}

// NewCosmosResumeRepository opens (or creates) the resume container
func NewCosmosResumeRepository(ctx context.Context, client *azcosmos.Client, settings *config.CosmosSettings, logger logger.Logger) (resumes.ResumeRepository, error) {
	c, err := getOrCreateContainer(ctx, client, settings.ResumeDatabase, settings.ResumeContainer, settings.PartitionKeyPath, logger)
	if err != nil {
		return nil, err
	}
	return &cosmosResumeRepository{container: c, logger: logger}, nil
}

func (r *cosmosResumeRepository) body(resume *resumes.Resume) ([]byte, error) {
	if err := resume.Validate(); err != nil {
		return nil, fmt.Errorf("validation error: %w", err)
	}
	return r.container.encode(resume.ID, resume.ToMap())
}

func (r *cosmosResumeRepository) Create(ctx context.Context, resume *resumes.Resume) error {
	body, err := r.body(resume)
	if err != nil {
		return err
	}
	if _, err := r.container.client.CreateItem(ctx, r.container.pk(resume.ID), body, nil); err != nil {
		return fmt.Errorf("failed to create resume: %w", err)
	}

	r.logger.Info("Created resume", "id", resume.ID, "user_id", resume.UserID)
	return nil
}

func (r *cosmosResumeRepository) Upsert(ctx context.Context, resume *resumes.Resume) error {
	body, err := r.body(resume)
	if err != nil {
		return err
	}
	if _, err := r.container.client.UpsertItem(ctx, r.container.pk(resume.ID), body, nil); err != nil {
		return fmt.Errorf("failed to upsert resume: %w", err)
	}

	r.logger.Info("Upserted resume", "id", resume.ID)
	return nil
}

func (r *cosmosResumeRepository) Replace(ctx context.Context, resume *resumes.Resume) error {
	body, err := r.body(resume)
	if err != nil {
		return err
	}
	if _, err := r.container.client.ReplaceItem(ctx, r.container.pk(resume.ID), resume.ID, body, nil); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", resumes.ErrNotFound, resume.ID)
		}
		return fmt.Errorf("failed to replace resume: %w", err)
	}

	r.logger.Info("Replaced resume", "id", resume.ID)
	return nil
}

// GetByID looks the record up by query rather than point read, so records stored without
// the partition key property are still found.
func (r *cosmosResumeRepository) GetByID(ctx context.Context, id string) (*resumes.Resume, error) {
	query, params := resumeLookupQuery(id, "")
	return r.lookup(ctx, id, query, params)
}

func (r *cosmosResumeRepository) GetForUser(ctx context.Context, id, userID string) (*resumes.Resume, error) {
	query, params := resumeLookupQuery(id, userID)
	return r.lookup(ctx, id, query, params)
}

func (r *cosmosResumeRepository) lookup(ctx context.Context, id, query string, params []azcosmos.QueryParameter) (*resumes.Resume, error) {
	items, err := r.container.query(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch resume: %w", err)
	}
	return firstResume(items, id)
}

// resumeLookupQuery selects one record by id and, when userID is set, by owner
func resumeLookupQuery(id, userID string) (string, []azcosmos.QueryParameter) {
	params := []azcosmos.QueryParameter{{Name: "@id", Value: id}}
	if userID == "" {
		return "SELECT * FROM c WHERE c.id = @id", params
	}
	params = append(params, azcosmos.QueryParameter{Name: "@user_id", Value: userID})
	return "SELECT * FROM c WHERE c.id = @id AND c.user_id = @user_id", params
}

func firstResume(items []map[string]any, id string) (*resumes.Resume, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: %s", resumes.ErrNotFound, id)
	}
	return resumes.FromMap(items[0]), nil
}

func (r *cosmosResumeRepository) ListByUser(ctx context.Context, userID string) ([]*resumes.Resume, error) {
	items, err := r.container.query(ctx, "SELECT * FROM c WHERE c.user_id = @user_id",
		azcosmos.QueryParameter{Name: "@user_id", Value: userID})
	if err != nil {
		return nil, err
	}
	return fromMaps(items), nil
}

func (r *cosmosResumeRepository) ListWithBlobURL(ctx context.Context) ([]*resumes.Resume, error) {
	items, err := r.container.query(ctx, "SELECT * FROM c WHERE IS_DEFINED(c.blob_url)")
	if err != nil {
		return nil, err
	}
	return fromMaps(items), nil
}

func (r *cosmosResumeRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.container.client.DeleteItem(ctx, r.container.pk(id), id, nil); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("%w: %s", resumes.ErrNotFound, id)
		}
		return fmt.Errorf("failed to delete resume: %w", err)
	}

	r.logger.Info("Deleted resume", "id", id)
	return nil
}

func fromMaps(items []map[string]any) []*resumes.Resume {
	out := make([]*resumes.Resume, 0, len(items))
	for _, item := range items {
		out = append(out, resumes.FromMap(item))
	}
	return out
}
