package documents

import "context"

// DocumentStore persists pipeline documents
type DocumentStore interface {
	// Store writes data under id in the collection for kind and returns the id actually used.
	// When id is taken, a unique id of the form <id>_<unix>_<uuid8> is used instead.
	Store(ctx context.Context, kind Kind, id string, data map[string]any) (string, error)

	// Get reads a document by id
	Get(ctx context.Context, kind Kind, id string) (*Document, error)
}
