package connector

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore/to"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blob"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/bloberror"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

// azureBlobConnector is a struct that holds the Azure Blob storage client and implements the BlobConnector interface.
type azureBlobConnector struct {
	client        *azblob.Client
	containerName string
	logger        logger.Logger
}

// NewAzureBlobConnector creates a new azureBlobConnector instance using a connection string.
// The container is not touched until EnsureContainer or the first upload.
func NewAzureBlobConnector(connectionString, containerName string, logger logger.Logger) (blobs.BlobConnector, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("blob connection string is empty")
	}
	if containerName == "" {
		return nil, fmt.Errorf("blob container name is empty")
	}

	client, err := azblob.NewClientFromConnectionString(connectionString, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure Blob client: %w", err)
	}

	return &azureBlobConnector{
		client:        client,
		containerName: containerName,
		logger:        logger,
	}, nil
}

// EnsureContainer creates the container when it does not exist yet
func (abc *azureBlobConnector) EnsureContainer(ctx context.Context) error {
	_, err := abc.client.CreateContainer(ctx, abc.containerName, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.ContainerAlreadyExists) {
			return nil
		}
		return fmt.Errorf("failed to create container %s: %w", abc.containerName, err)
	}

	abc.logger.Info("Created blob container", "container", abc.containerName)
	return nil
}

// Upload overwrites the blob called name, checks it exists afterwards and returns its URL
func (abc *azureBlobConnector) Upload(ctx context.Context, name string, content []byte, contentType string) (string, error) {
	opts := &azblob.UploadBufferOptions{}
	if contentType != "" {
		opts.HTTPHeaders = &blob.HTTPHeaders{BlobContentType: to.Ptr(contentType)}
	}

	_, err := abc.client.UploadBuffer(ctx, abc.containerName, name, content, opts)
	if err != nil {
		return "", fmt.Errorf("failed to upload blob %s: %w", name, err)
	}

	blobClient := abc.blobClient(name)
	props, err := blobClient.GetProperties(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("upload verification failed for blob %s: %w", name, err)
	}

	var size int64
	if props.ContentLength != nil {
		size = *props.ContentLength
	}
	abc.logger.Info("Uploaded blob", "container", abc.containerName, "blob", name, "size", size)

	return blobClient.URL(), nil
}

// Download retrieves a blob's content by name
func (abc *azureBlobConnector) Download(ctx context.Context, name string) ([]byte, error) {
	resp, err := abc.client.DownloadStream(ctx, abc.containerName, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return nil, fmt.Errorf("%w: %s", blobs.ErrBlobNotFound, name)
		}
		return nil, fmt.Errorf("failed to download blob %s: %w", name, err)
	}
	defer func() {
		if closeErr := resp.Body.Close(); closeErr != nil {
			abc.logger.Warn("Failed to close blob stream", "blob", name, "error", closeErr)
		}
	}()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read blob %s: %w", name, err)
	}

	abc.logger.Info("Downloaded blob", "blob", name, "size", len(data))
	return data, nil
}

// Delete deletes a blob by name
func (abc *azureBlobConnector) Delete(ctx context.Context, name string) error {
	_, err := abc.client.DeleteBlob(ctx, abc.containerName, name, nil)
	if err != nil {
		if bloberror.HasCode(err, bloberror.BlobNotFound) {
			return fmt.Errorf("%w: %s", blobs.ErrBlobNotFound, name)
		}
		return fmt.Errorf("failed to delete blob %s: %w", name, err)
	}

	abc.logger.Info("Deleted blob", "container", abc.containerName, "blob", name)
	return nil
}

// ListByPrefix lists the blobs whose names start with prefix, newest first
func (abc *azureBlobConnector) ListByPrefix(ctx context.Context, prefix string) ([]blobs.BlobItem, error) {
	pager := abc.client.NewListBlobsFlatPager(abc.containerName, &azblob.ListBlobsFlatOptions{
		Prefix: to.Ptr(prefix),
	})

	var items []blobs.BlobItem
	for pager.More() {
		page, err := pager.NextPage(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to list blobs with prefix %s: %w", prefix, err)
		}
		for _, b := range page.Segment.BlobItems {
			if b == nil || b.Name == nil {
				continue
			}
			item := blobs.BlobItem{Name: *b.Name}
			if b.Properties != nil {
				if b.Properties.LastModified != nil {
					item.LastModified = *b.Properties.LastModified
				}
				if b.Properties.ContentLength != nil {
					item.Size = *b.Properties.ContentLength
				}
			}
			items = append(items, item)
		}
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].LastModified.After(items[j].LastModified)
	})

	return items, nil
}

// URL returns the blob URL as reported by the storage client
func (abc *azureBlobConnector) URL(name string) string {
	return abc.blobClient(name).URL()
}

func (abc *azureBlobConnector) blobClient(name string) *blob.Client {
	return abc.client.ServiceClient().NewContainerClient(abc.containerName).NewBlobClient(name)
}
