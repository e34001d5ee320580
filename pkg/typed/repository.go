// Package typed maps typed beans to core documents through the mapping layer.
package typed

import (
	"context"
	"fmt"
	"reflect"

	"github.com/aretw0/strata/pkg/core"
	"github.com/aretw0/strata/pkg/mapping"
)

// DocumentModel wraps the raw core.Document with a typed Data field.
// It acts as a typed view of a document.
type DocumentModel[T any] struct {
	ID      string
	Content string
	Data    T        // The mapped bean
	Saver   Saver[T] // Active Record reference interface
}

// Saver interface avoids circular dependencies or tight coupling with Repository structs.
type Saver[T any] interface {
	Save(ctx context.Context, doc *DocumentModel[T]) error
}

// Save persists the document using the attached saver.
func (d *DocumentModel[T]) Save(ctx context.Context) error {
	if d.Saver == nil {
		return fmt.Errorf("document is detached (missing Saver)")
	}
	return d.Saver.Save(ctx, d)
}

type options struct {
	factory mapping.PropertyAccessorFactory
}

// Option configures a typed Repository.
type Option func(*options)

// WithFactory overrides the property accessor factory. Defaults to
// mapping.DefaultFactories().
func WithFactory(f mapping.PropertyAccessorFactory) Option {
	return func(o *options) {
		o.factory = f
	}
}

// Repository wraps a core.Repository to provide type-safe access. Bean
// properties are copied to and from document metadata by a property accessor
// for the entity.
type Repository[T any] struct {
	repo    core.Repository
	entity  mapping.PersistentEntity
	factory mapping.PropertyAccessorFactory
}

// NewRepository creates a typed wrapper mapping T through entity.
func NewRepository[T any](repo core.Repository, entity mapping.PersistentEntity, opts ...Option) *Repository[T] {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.factory == nil {
		o.factory = mapping.DefaultFactories()
	}
	return &Repository[T]{repo: repo, entity: entity, factory: o.factory}
}

// NewRepositoryFor creates a typed wrapper using the entity registered for T
// in mc.
func NewRepositoryFor[T any](repo core.Repository, mc *mapping.MappingContext, opts ...Option) (*Repository[T], error) {
	entity, err := mapping.EntityOf[T](mc)
	if err != nil {
		return nil, err
	}
	return NewRepository[T](repo, entity, opts...), nil
}

// Entity returns the entity the repository maps through.
func (r *Repository[T]) Entity() mapping.PersistentEntity {
	return r.entity
}

// Save persists a typed document.
func (r *Repository[T]) Save(ctx context.Context, doc *DocumentModel[T]) error {
	metadata, err := mapping.ToMetadata(r.factory, r.entity, doc.Data)
	if err != nil {
		return fmt.Errorf("failed to map %s: %w", doc.ID, err)
	}

	if doc.Saver == nil {
		doc.Saver = r
	}

	return r.repo.Save(ctx, core.Document{
		ID:       doc.ID,
		Content:  doc.Content,
		Metadata: metadata,
	})
}

// Get retrieves a document and maps its metadata into a new bean.
func (r *Repository[T]) Get(ctx context.Context, id string) (*DocumentModel[T], error) {
	coreDoc, err := r.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return r.fromCore(coreDoc)
}

// List returns all documents converted to the typed model.
func (r *Repository[T]) List(ctx context.Context) ([]*DocumentModel[T], error) {
	coreDocs, err := r.repo.List(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*DocumentModel[T], 0, len(coreDocs))
	for _, d := range coreDocs {
		model, err := r.fromCore(d)
		if err != nil {
			return nil, fmt.Errorf("failed to process document %s: %w", d.ID, err)
		}
		result = append(result, model)
	}
	return result, nil
}

// Delete removes a document by ID.
func (r *Repository[T]) Delete(ctx context.Context, id string) error {
	return r.repo.Delete(ctx, id)
}

func (r *Repository[T]) fromCore(coreDoc core.Document) (*DocumentModel[T], error) {
	bean, err := mapping.FromMetadata(r.factory, r.entity, newBean[T](), coreDoc.Metadata)
	if err != nil {
		return nil, err
	}
	data, ok := bean.(T)
	if !ok {
		return nil, fmt.Errorf("%w: want %T, got %T", mapping.ErrBeanType, data, bean)
	}

	return &DocumentModel[T]{
		ID:      coreDoc.ID,
		Content: coreDoc.Content,
		Data:    data,
		Saver:   r,
	}, nil
}

// newBean returns the zero T, or a pointer to a zero value when T is a pointer type.
func newBean[T any]() T {
	var zero T
	t := reflect.TypeFor[T]()
	if t.Kind() == reflect.Pointer {
		return reflect.New(t.Elem()).Interface().(T)
	}
	return zero
}
