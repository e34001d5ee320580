package mapping

import "reflect"

// TypeInformation describes the bean type of an entity.
// Implementations may additionally implement AccessorFunctionAware or
// PropertyLister.
type TypeInformation interface {
	Type() reflect.Type
}

// PropertyLister is implemented by type information that can enumerate the
// property names it knows about.
type PropertyLister interface {
	Properties() []string
}

// PersistentProperty identifies a single property of an entity.
type PersistentProperty interface {
	Name() string
}

// PersistentEntity is the mapping metadata of a type stored by the framework.
type PersistentEntity interface {
	Name() string
	TypeInformation() TypeInformation
}

type property string

// Property returns a PersistentProperty for the given name.
func Property(name string) PersistentProperty {
	return property(name)
}

func (p property) Name() string { return string(p) }

func (p property) String() string { return string(p) }

// Entity is the basic PersistentEntity implementation.
type Entity struct {
	name string
	info TypeInformation
}

// NewEntity creates an entity named name described by info.
func NewEntity(name string, info TypeInformation) *Entity {
	return &Entity{name: name, info: info}
}

func (e *Entity) Name() string { return e.name }

func (e *Entity) TypeInformation() TypeInformation { return e.info }

// Properties returns the entity's properties if its type information can list
// them, otherwise nil.
func (e *Entity) Properties() []PersistentProperty {
	return propertiesOf(e)
}

func propertiesOf(entity PersistentEntity) []PersistentProperty {
	lister, ok := entity.TypeInformation().(PropertyLister)
	if !ok {
		return nil
	}
	names := lister.Properties()
	if len(names) == 0 {
		return nil
	}
	props := make([]PersistentProperty, 0, len(names))
	for _, name := range names {
		props = append(props, Property(name))
	}
	return props
}
