package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/data/azcosmos"

	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

// NewCosmosClient creates a Cosmos DB client from the account endpoint and master key
func NewCosmosClient(settings *config.CosmosSettings) (*azcosmos.Client, error) {
	if settings.Endpoint == "" || settings.Key == "" {
		return nil, fmt.Errorf("cosmos endpoint and key are required")
	}

	cred, err := azcosmos.NewKeyCredential(settings.Key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cosmos credential: %w", err)
	}

	client, err := azcosmos.NewClientWithKey(settings.Endpoint, cred, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create cosmos client: %w", err)
	}
	return client, nil
}

// cosmosContainer wraps a container whose partition key value is always the item id
type cosmosContainer struct {
	client       *azcosmos.ContainerClient
	partitionKey string
}

// getOrCreateContainer opens databaseID/containerID, creating either when missing
func getOrCreateContainer(ctx context.Context, client *azcosmos.Client, databaseID, containerID, partitionKeyPath string, log logger.Logger) (*cosmosContainer, error) {
	_, err := client.CreateDatabase(ctx, azcosmos.DatabaseProperties{ID: databaseID}, nil)
	switch {
	case err == nil:
		log.Info("Created new database", "database", databaseID)
	case !isStatus(err, http.StatusConflict):
		return nil, fmt.Errorf("database error: %w", err)
	}

	db, err := client.NewDatabase(databaseID)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	_, err = db.CreateContainer(ctx, azcosmos.ContainerProperties{
		ID: containerID,
		PartitionKeyDefinition: azcosmos.PartitionKeyDefinition{
			Paths: []string{partitionKeyPath},
		},
	}, nil)
	switch {
	case err == nil:
		log.Info("Created new container", "database", databaseID, "container", containerID)
	case !isStatus(err, http.StatusConflict):
		return nil, fmt.Errorf("container error: %w", err)
	}

	container, err := db.NewContainer(containerID)
	if err != nil {
		return nil, fmt.Errorf("container error: %w", err)
	}

	return &cosmosContainer{
		client:       container,
		partitionKey: partitionKeyField(partitionKeyPath),
	}, nil
}

// partitionKeyField is the top-level property a partition key path refers to
func partitionKeyField(path string) string {
	field := strings.TrimPrefix(path, "/")
	if i := strings.IndexByte(field, '/'); i >= 0 {
		field = field[:i]
	}
	return field
}

func (c *cosmosContainer) pk(id string) azcosmos.PartitionKey {
	return azcosmos.NewPartitionKeyString(id)
}

// encode stamps the partition key property with the item id
func (c *cosmosContainer) encode(id string, item map[string]any) ([]byte, error) {
	if c.partitionKey != "" && c.partitionKey != "id" {
		item[c.partitionKey] = id
	}
	return json.Marshal(item)
}

// decode parses an item and drops the partition key property
func (c *cosmosContainer) decode(raw []byte) (map[string]any, error) {
	var item map[string]any
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("failed to decode item: %w", err)
	}
	if c.partitionKey != "id" {
		delete(item, c.partitionKey)
	}
	return item, nil
}

func (c *cosmosContainer) read(ctx context.Context, id string) (map[string]any, error) {
	resp, err := c.client.ReadItem(ctx, c.pk(id), id, nil)
	if err != nil {
		return nil, err
	}
	return c.decode(resp.Value)
}

func (c *cosmosContainer) query(ctx context.Context, query string, params ...azcosmos.QueryParameter) ([]map[string]any, error) {
	pager := c.client.NewQueryItemsPager(query, azcosmos.NewPartitionKey(), &azcosmos.QueryOptions{
		QueryParameters: params,
	})

	var items []map[string]any
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to query items: %w", err)
		}
		for _, raw := range page.Items {
			item, err := c.decode(raw)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
	}
	return items, nil
}

func isStatus(err error, status int) bool {
	var respErr *azcore.ResponseError
	return errors.As(err, &respErr) && respErr.StatusCode == status
}

func isNotFound(err error) bool {
	return isStatus(err, http.StatusNotFound)
}
