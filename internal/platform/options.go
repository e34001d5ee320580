package platform

import (
	"log/slog"

	"github.com/aretw0/strata/pkg/core"
	"github.com/aretw0/strata/pkg/mapping"
)

// options holds the internal configuration for a Store.
type options struct {
	repository core.Repository
	logger     *slog.Logger
	mustExist  bool
	defaultExt string
	factory    mapping.PropertyAccessorFactory
}

// Option defines a functional option for configuring a Store.
type Option func(*options)

func defaultOptions() *options {
	return &options{
		defaultExt: ".md",
	}
}

// WithLogger sets the logger shared by the repository and the accessor factories.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMustExist requires the store directory to exist already.
func WithMustExist(must bool) Option {
	return func(o *options) {
		o.mustExist = must
	}
}

// WithDefaultExt sets the file extension for IDs without one (e.g. ".yaml").
func WithDefaultExt(ext string) Option {
	return func(o *options) {
		o.defaultExt = ext
	}
}

// WithRepository injects a custom storage adapter. The filesystem adapter is
// skipped and the path argument is ignored.
func WithRepository(repo core.Repository) Option {
	return func(o *options) {
		o.repository = repo
	}
}

// WithFactory overrides the property accessor factory used by typed repositories.
func WithFactory(f mapping.PropertyAccessorFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}
