// Package blobs defines the storage contracts for resume files kept in Azure Blob Storage.
package blobs
