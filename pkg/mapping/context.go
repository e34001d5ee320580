package mapping

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/aretw0/introspection"
)

// MappingContext is a registry of persistent entities, looked up by name or by
// bean type. It is safe for concurrent use.
type MappingContext struct {
	mu     sync.RWMutex
	byName map[string]PersistentEntity
	byType map[reflect.Type]PersistentEntity
}

// NewMappingContext creates an empty MappingContext.
func NewMappingContext() *MappingContext {
	return &MappingContext{
		byName: make(map[string]PersistentEntity),
		byType: make(map[reflect.Type]PersistentEntity),
	}
}

// Register adds entity to the context. Entity names must be unique. When two
// entities share a bean type, type lookups resolve to the first one.
func (c *MappingContext) Register(entity PersistentEntity) error {
	if entity == nil || entity.Name() == "" {
		return fmt.Errorf("entity must have a name")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byName[entity.Name()]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateEntity, entity.Name())
	}
	c.byName[entity.Name()] = entity

	if info := entity.TypeInformation(); info != nil && info.Type() != nil {
		if _, ok := c.byType[info.Type()]; !ok {
			c.byType[info.Type()] = entity
		}
	}
	return nil
}

// Entity returns the entity registered under name.
func (c *MappingContext) Entity(name string) (PersistentEntity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entity, ok := c.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrEntityNotFound, name)
	}
	return entity, nil
}

// EntityFor returns the entity whose type information describes t.
func (c *MappingContext) EntityFor(t reflect.Type) (PersistentEntity, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entity, ok := c.byType[t]
	if !ok {
		return nil, fmt.Errorf("%w: type %s", ErrEntityNotFound, t)
	}
	return entity, nil
}

// EntityOf returns the entity registered for bean type T.
func EntityOf[T any](c *MappingContext) (PersistentEntity, error) {
	return c.EntityFor(reflect.TypeFor[T]())
}

// Entities returns all registered entities ordered by name.
func (c *MappingContext) Entities() []PersistentEntity {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]PersistentEntity, 0, len(c.byName))
	for _, e := range c.byName {
		out = append(out, e)
	}
	slices.SortFunc(out, func(a, b PersistentEntity) int {
		return strings.Compare(a.Name(), b.Name())
	})
	return out
}

// MappingContextState exposes internal state for observability.
type MappingContextState struct {
	EntityCount int      `json:"entity_count"`
	Entities    []string `json:"entities"`
}

// State implements introspection.Introspectable.
func (c *MappingContext) State() any {
	entities := c.Entities()
	names := make([]string, 0, len(entities))
	for _, e := range entities {
		names = append(names, e.Name())
	}
	return MappingContextState{
		EntityCount: len(names),
		Entities:    names,
	}
}

// ComponentType implements introspection.Component.
func (c *MappingContext) ComponentType() string {
	return "mapping-context"
}

var _ introspection.Introspectable = (*MappingContext)(nil)
var _ introspection.Component = (*MappingContext)(nil)
