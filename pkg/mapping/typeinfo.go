package mapping

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
)

// TypeInformationOf declares get/set functions for bean type T.
// Register every function before the type information is shared; lookups are
// not synchronized with registration.
type TypeInformationOf[T any] struct {
	getters map[string]GetFunction
	setters map[string]SetFunction
}

// NewTypeInformation creates an empty TypeInformationOf for T.
func NewTypeInformation[T any]() *TypeInformationOf[T] {
	return &TypeInformationOf[T]{
		getters: make(map[string]GetFunction),
		setters: make(map[string]SetFunction),
	}
}

// Type returns the bean type.
func (ti *TypeInformationOf[T]) Type() reflect.Type {
	return reflect.TypeFor[T]()
}

func (ti *TypeInformationOf[T]) HasGetFunctionFor(name string) bool {
	_, ok := ti.getters[name]
	return ok
}

// GetFunctionFor returns the getter for name, or nil.
func (ti *TypeInformationOf[T]) GetFunctionFor(name string) GetFunction {
	return ti.getters[name]
}

func (ti *TypeInformationOf[T]) HasSetFunctionFor(name string) bool {
	_, ok := ti.setters[name]
	return ok
}

// SetFunctionFor returns the setter for name, or nil.
func (ti *TypeInformationOf[T]) SetFunctionFor(name string) SetFunction {
	return ti.setters[name]
}

// Properties returns every property name with a getter or a setter, sorted.
func (ti *TypeInformationOf[T]) Properties() []string {
	names := make(map[string]struct{}, len(ti.getters))
	for name := range ti.getters {
		names[name] = struct{}{}
	}
	for name := range ti.setters {
		names[name] = struct{}{}
	}
	return slices.Sorted(maps.Keys(names))
}

// Getter registers fn as the getter of property name.
func Getter[T, V any](ti *TypeInformationOf[T], name string, fn func(T) V) {
	ti.getters[name] = func(bean any) (any, error) {
		b, err := castBean[T](bean)
		if err != nil {
			return nil, err
		}
		return fn(b), nil
	}
}

// Setter registers fn as the setter of property name. fn returns the updated
// bean, which replaces the one held by the accessor.
func Setter[T, V any](ti *TypeInformationOf[T], name string, fn func(T, V) T) {
	TrySetter(ti, name, func(bean T, value V) (T, error) {
		return fn(bean, value), nil
	})
}

// TrySetter registers a setter that may reject the value.
// A nil value is passed to fn as the zero V.
func TrySetter[T, V any](ti *TypeInformationOf[T], name string, fn func(T, V) (T, error)) {
	ti.setters[name] = func(bean, value any) (any, error) {
		b, err := castBean[T](bean)
		if err != nil {
			return nil, err
		}
		v, err := convertValue[V](value)
		if err != nil {
			return nil, fmt.Errorf("property %q: %w", name, err)
		}
		return fn(b, v)
	}
}

var (
	_ TypeInformation       = (*TypeInformationOf[any])(nil)
	_ AccessorFunctionAware = (*TypeInformationOf[any])(nil)
	_ PropertyLister        = (*TypeInformationOf[any])(nil)
)
