package core

import "context"

// Repository defines the contract for storing and retrieving documents.
// Adhering to this interface keeps the mapping layer independent of the
// underlying storage mechanism.
type Repository interface {
	// Save persists a document. It creates if not exists, or updates if it does.
	Save(ctx context.Context, doc Document) error

	// Get retrieves a document by its ID.
	Get(ctx context.Context, id string) (Document, error)

	// List returns all available documents.
	List(ctx context.Context) ([]Document, error)

	// Delete removes a document by its ID.
	Delete(ctx context.Context, id string) error

	// Initialize ensures the underlying storage is ready (e.g., create directories).
	Initialize(ctx context.Context) error
}
