package platform

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/aretw0/strata/pkg/adapters/fs"
	"github.com/aretw0/strata/pkg/core"
	"github.com/aretw0/strata/pkg/mapping"
	"github.com/aretw0/strata/pkg/typed"
)

// Store wires a repository to a mapping context.
type Store struct {
	Repository core.Repository
	Mapping    *mapping.MappingContext
	Factory    mapping.PropertyAccessorFactory
	Logger     *slog.Logger
}

// Open initializes the storage at path and returns a Store with an empty
// mapping context.
//
//	store, err := platform.Open("./data", platform.WithDefaultExt(".yaml"))
func Open(ctx context.Context, path string, opts ...Option) (*Store, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.Default()
	}

	repo := o.repository
	if repo == nil {
		if path == "" {
			return nil, fmt.Errorf("store path cannot be empty")
		}
		repo = fs.NewRepository(fs.Config{
			Path:       path,
			MustExist:  o.mustExist,
			DefaultExt: o.defaultExt,
			Logger:     logger,
		})
	}

	if err := repo.Initialize(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize repository: %w", err)
	}

	factory := o.factory
	if factory == nil {
		factory = mapping.DefaultFactories(mapping.WithLogger(logger))
	}

	return &Store{
		Repository: repo,
		Mapping:    mapping.NewMappingContext(),
		Factory:    factory,
		Logger:     logger,
	}, nil
}

// Typed returns a typed repository for T. T must be registered in the
// store's mapping context.
func Typed[T any](s *Store) (*typed.Repository[T], error) {
	return typed.NewRepositoryFor[T](s.Repository, s.Mapping, typed.WithFactory(s.Factory))
}
