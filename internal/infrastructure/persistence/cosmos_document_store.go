package persistence

import (
	"context"
	"fmt"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/documents"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

type cosmosDocumentStore struct {
	containers map[documents.Kind]*cosmosContainer
	retry      RetryPolicy
	logger     logger.Logger
}

// NewCosmosDocumentStore opens (or creates) the resume, job and tailored resume containers.
// Tailored resumes share the resume database.
func NewCosmosDocumentStore(ctx context.Context, client *azcosmos.Client, settings *config.CosmosSettings, retry RetryPolicy, logger logger.Logger) (documents.DocumentStore, error) {
	layout := map[documents.Kind][2]string{
		documents.KindResume:   {settings.ResumeDatabase, settings.ResumeContainer},
		documents.KindJob:      {settings.JobDatabase, settings.JobContainer},
		documents.KindTailored: {settings.ResumeDatabase, settings.TailoredContainer},
	}

	containers := make(map[documents.Kind]*cosmosContainer, len(layout))
	for kind, ids := range layout {
		c, err := getOrCreateContainer(ctx, client, ids[0], ids[1], settings.PartitionKeyPath, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s container: %w", kind, err)
		}
		containers[kind] = c
	}

	return &cosmosDocumentStore{
		containers: containers,
		retry:      retry,
		logger:     logger,
	}, nil
}

func (s *cosmosDocumentStore) container(kind documents.Kind) (*cosmosContainer, error) {
	c, ok := s.containers[kind]
	if !ok {
		return nil, fmt.Errorf("unknown document kind: %s", kind)
	}
	return c, nil
}

func (s *cosmosDocumentStore) Store(ctx context.Context, kind documents.Kind, id string, data map[string]any) (string, error) {
	doc := &documents.Document{ID: id, Kind: kind, Data: data}
	if err := validateForStore(doc); err != nil {
		return "", err
	}

	c, err := s.container(kind)
	if err != nil {
		return "", err
	}

	storedID := id
	err = s.retry.do(ctx, s.logger, id, func() error {
		storedID = id
		_, err := c.client.ReadItem(ctx, c.pk(id), id, nil)
		switch {
		case err == nil:
			storedID = uniqueID(id, time.Now())
			s.logger.Warn("Document exists, storing with new id", "id", id, "new_id", storedID)
		case !isNotFound(err):
			return fmt.Errorf("failed to look up document: %w", err)
		}

		body, err := c.encode(storedID, map[string]any{"id": storedID, "data": data})
		if err != nil {
			return err
		}
		if _, err := c.client.CreateItem(ctx, c.pk(storedID), body, nil); err != nil {
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

func (s *cosmosDocumentStore) Get(ctx context.Context, kind documents.Kind, id string) (*documents.Document, error) {
	c, err := s.container(kind)
	if err != nil {
		return nil, err
	}

	item, err := c.read(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, fmt.Errorf("%w: %s", documents.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to read document: %w", err)
	}

	data, _ := item["data"].(map[string]any)
	return &documents.Document{ID: id, Kind: kind, Data: data}, nil
}
