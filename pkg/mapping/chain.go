package mapping

import "fmt"

// Factories tries each factory in order and delegates to the first one that
// supports the entity.
type Factories []PropertyAccessorFactory

// DefaultFactories returns the accessor function strategy followed by the
// reflection fallback.
func DefaultFactories(opts ...Option) Factories {
	return Factories{
		NewAccessorFunctionFactory(opts...),
		NewReflectionFactory(opts...),
	}
}

// Lookup returns the first factory supporting entity.
func (fs Factories) Lookup(entity PersistentEntity) (PropertyAccessorFactory, bool) {
	for _, f := range fs {
		if f.IsSupported(entity) {
			return f, true
		}
	}
	return nil, false
}

// IsSupported reports whether any factory supports entity.
func (fs Factories) IsSupported(entity PersistentEntity) bool {
	_, ok := fs.Lookup(entity)
	return ok
}

// PropertyAccessor delegates to the first supporting factory.
func (fs Factories) PropertyAccessor(entity PersistentEntity, bean any) (PropertyAccessor, error) {
	f, ok := fs.Lookup(entity)
	if !ok {
		return nil, fmt.Errorf("%w: no factory for %s", ErrUnsupportedEntity, entityName(entity))
	}
	return f.PropertyAccessor(entity, bean)
}

var _ PropertyAccessorFactory = Factories(nil)
