package mapping

import (
	"fmt"
	"log/slog"
)

// PropertyAccessor reads and writes the properties of a single bean.
// Accessors are not safe for concurrent use.
type PropertyAccessor interface {
	// GetProperty returns the property value, or nil if the property cannot be read.
	GetProperty(p PersistentProperty) (any, error)

	// SetProperty writes the property value. Properties that cannot be written
	// are ignored.
	SetProperty(p PersistentProperty, value any) error

	// Bean returns the current bean, reflecting every successful SetProperty.
	Bean() any
}

// BeanOf returns the accessor's current bean as a T.
func BeanOf[T any](acc PropertyAccessor) (T, error) {
	bean, ok := acc.Bean().(T)
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: want %T, got %T", ErrBeanType, zero, acc.Bean())
	}
	return bean, nil
}

// functionPropertyAccessor holds a bean snapshot and replaces it on every set.
type functionPropertyAccessor struct {
	bean      any
	functions AccessorFunctionAware
	logger    *slog.Logger
}

func (a *functionPropertyAccessor) GetProperty(p PersistentProperty) (any, error) {
	name := p.Name()
	if !a.functions.HasGetFunctionFor(name) {
		return nil, nil
	}

	value, err := a.functions.GetFunctionFor(name)(a.bean)
	if err != nil {
		return nil, err
	}
	a.logger.Debug("read property via getter function", "property", name, "value", value)
	return value, nil
}

func (a *functionPropertyAccessor) SetProperty(p PersistentProperty, value any) error {
	name := p.Name()
	if !a.functions.HasSetFunctionFor(name) {
		return nil
	}

	bean, err := a.functions.SetFunctionFor(name)(a.bean, value)
	if err != nil {
		return err
	}
	a.bean = bean
	a.logger.Debug("wrote property via setter function", "property", name, "value", value)
	return nil
}

func (a *functionPropertyAccessor) Bean() any {
	return a.bean
}
