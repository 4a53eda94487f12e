package main

import (
	"context"
	"errors"
	"strings"

	"github.com/Sai-Prashanth123/resume-processor/internal/domain/blobs"
)

var errBlobStorageNotConfigured = errors.New("blob storage not configured: BLOB_CONNECTION_STRING is empty")

// unavailableConnector stands in for the blob connector when no connection string is set.
// Every storage call fails; URL still reports where a blob would live.
type unavailableConnector struct {
	baseURL   string
	container string
}

func newUnavailableConnector(baseURL, container string) *unavailableConnector {
	return &unavailableConnector{baseURL: strings.TrimRight(baseURL, "/"), container: container}
}

func (c *unavailableConnector) EnsureContainer(_ context.Context) error {
	return errBlobStorageNotConfigured
}

func (c *unavailableConnector) Upload(_ context.Context, _ string, _ []byte, _ string) (string, error) {
	return "", errBlobStorageNotConfigured
}

func (c *unavailableConnector) Download(_ context.Context, _ string) ([]byte, error) {
	return nil, errBlobStorageNotConfigured
}

func (c *unavailableConnector) Delete(_ context.Context, _ string) error {
	return errBlobStorageNotConfigured
}

func (c *unavailableConnector) ListByPrefix(_ context.Context, _ string) ([]blobs.BlobItem, error) {
	return nil, errBlobStorageNotConfigured
}

func (c *unavailableConnector) URL(name string) string {
	return c.baseURL + "/" + c.container + "/" + name
}
