package strata

import (
	"context"
	"log/slog"

	"github.com/aretw0/strata/internal/platform"
	"github.com/aretw0/strata/pkg/core"
	"github.com/aretw0/strata/pkg/mapping"
	"github.com/aretw0/strata/pkg/typed"
)

// --- Types ---

// Store wires a repository to a mapping context.
type Store = platform.Store

// DocumentModel is a public alias for the typed document model.
type DocumentModel[T any] = typed.DocumentModel[T]

// TypedRepository is a public alias for the typed repository.
type TypedRepository[T any] = typed.Repository[T]

// --- Configuration ---

// Option defines a functional option for configuring a Store.
type Option = platform.Option

// WithLogger sets the logger for the repository and the accessor factories.
func WithLogger(logger *slog.Logger) Option {
	return platform.WithLogger(logger)
}

// WithMustExist ensures the store directory must already exist.
func WithMustExist(must bool) Option {
	return platform.WithMustExist(must)
}

// WithDefaultExt sets the file extension for document IDs without one.
func WithDefaultExt(ext string) Option {
	return platform.WithDefaultExt(ext)
}

// WithRepository allows injecting a custom storage adapter.
func WithRepository(repo core.Repository) Option {
	return platform.WithRepository(repo)
}

// WithFactory overrides the property accessor factory.
func WithFactory(f mapping.PropertyAccessorFactory) Option {
	return platform.WithFactory(f)
}

// --- Factory ---

// Open initializes the store at path.
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	return platform.Open(ctx, path, opts...)
}

// Typed returns a type-safe repository for T, which must be registered in
// the store's mapping context.
func Typed[T any](store *Store) (*TypedRepository[T], error) {
	return platform.Typed[T](store)
}
