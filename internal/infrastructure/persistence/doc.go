// Package persistence provides the document store and resume repository implementations.
// Cosmos DB is the production backend; GORM over sqlite or postgres serves local runs
// and tests. Writes of pipeline documents are retried with exponential backoff.
package persistence
