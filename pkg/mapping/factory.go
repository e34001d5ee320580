package mapping

import (
	"fmt"
	"log/slog"
)

// PropertyAccessorFactory creates property accessors for the entities it supports.
type PropertyAccessorFactory interface {
	// IsSupported reports whether the factory can create accessors for entity.
	IsSupported(entity PersistentEntity) bool

	// PropertyAccessor binds a new accessor to bean. Callers should check
	// IsSupported first; unsupported entities yield ErrUnsupportedEntity.
	PropertyAccessor(entity PersistentEntity, bean any) (PropertyAccessor, error)
}

// options holds the configuration shared by the factories.
type options struct {
	logger *slog.Logger
}

// Option defines a functional option for configuring a factory.
type Option func(*options)

// WithLogger sets the logger used for diagnostics. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

func buildOptions(opts []Option) options {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// loggerOrDefault resolves the default logger lazily so slog.SetDefault calls
// made after construction are honoured.
func loggerOrDefault(l *slog.Logger) *slog.Logger {
	if l != nil {
		return l
	}
	return slog.Default()
}

// AccessorFunctionFactory creates accessors backed by the get/set functions an
// entity's type information declares through AccessorFunctionAware.
// It holds no per-call state and is safe for concurrent use.
type AccessorFunctionFactory struct {
	logger *slog.Logger
}

var instance = NewAccessorFunctionFactory()

// Instance returns the shared AccessorFunctionFactory.
func Instance() *AccessorFunctionFactory {
	return instance
}

// NewAccessorFunctionFactory creates a factory with the given options.
func NewAccessorFunctionFactory(opts ...Option) *AccessorFunctionFactory {
	o := buildOptions(opts)
	return &AccessorFunctionFactory{logger: o.logger}
}

// IsSupported reports whether the entity's type information declares accessor functions.
func (f *AccessorFunctionFactory) IsSupported(entity PersistentEntity) bool {
	_, ok := AccessorFunctions(entity)
	if entity != nil {
		loggerOrDefault(f.logger).Debug("accessor function support", "entity", entity.Name(), "supported", ok)
	}
	return ok
}

// PropertyAccessor returns an accessor bound to bean.
func (f *AccessorFunctionFactory) PropertyAccessor(entity PersistentEntity, bean any) (PropertyAccessor, error) {
	functions, ok := AccessorFunctions(entity)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not declare accessor functions", ErrUnsupportedEntity, entityName(entity))
	}

	logger := loggerOrDefault(f.logger).With("entity", entity.Name())
	logger.Debug("obtaining accessor function property accessor")
	return &functionPropertyAccessor{
		bean:      bean,
		functions: functions,
		logger:    logger,
	}, nil
}

func entityName(entity PersistentEntity) string {
	if entity == nil {
		return "<nil>"
	}
	return entity.Name()
}

var _ PropertyAccessorFactory = (*AccessorFunctionFactory)(nil)
