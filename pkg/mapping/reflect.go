package mapping

import (
	"fmt"
	"log/slog"
	"reflect"
	"strings"
	"sync"
)

// StructTypeInformation describes a struct bean through its exported fields.
// Property names come from the json tag, falling back to the field name.
type StructTypeInformation struct {
	typ    reflect.Type
	fields map[string][]int
	names  []string
}

var structCache sync.Map // map[reflect.Type]*StructTypeInformation

// StructTypeOf returns the StructTypeInformation of T.
func StructTypeOf[T any]() (*StructTypeInformation, error) {
	return NewStructTypeInformation(reflect.TypeFor[T]())
}

// NewStructTypeInformation introspects t, which must be a struct or a pointer
// to one. Results are cached per type.
func NewStructTypeInformation(t reflect.Type) (*StructTypeInformation, error) {
	if t == nil {
		return nil, fmt.Errorf("invalid bean type: nil")
	}
	if cached, ok := structCache.Load(t); ok {
		return cached.(*StructTypeInformation), nil
	}

	st := t
	if st.Kind() == reflect.Pointer {
		st = st.Elem()
	}
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("invalid bean type: %s is not a struct", t)
	}

	info := &StructTypeInformation{
		typ:    t,
		fields: make(map[string][]int),
	}
	for _, f := range reflect.VisibleFields(st) {
		if f.Anonymous || !f.IsExported() {
			continue
		}
		name, ok := fieldName(f)
		if !ok {
			continue
		}
		if _, dup := info.fields[name]; dup {
			continue
		}
		info.fields[name] = f.Index
		info.names = append(info.names, name)
	}

	actual, _ := structCache.LoadOrStore(t, info)
	return actual.(*StructTypeInformation), nil
}

func fieldName(f reflect.StructField) (string, bool) {
	tag := f.Tag.Get("json")
	if tag == "-" {
		return "", false
	}
	if name, _, _ := strings.Cut(tag, ","); name != "" {
		return name, true
	}
	return f.Name, true
}

// Type returns the described bean type (struct or pointer to struct).
func (s *StructTypeInformation) Type() reflect.Type {
	return s.typ
}

// Properties returns the property names in field order.
func (s *StructTypeInformation) Properties() []string {
	out := make([]string, len(s.names))
	copy(out, s.names)
	return out
}

// ReflectionFactory creates accessors that read and write struct fields.
// Struct values are copied on write, so Bean returns a new value; pointers
// are written in place.
type ReflectionFactory struct {
	logger *slog.Logger
}

// NewReflectionFactory creates a ReflectionFactory with the given options.
func NewReflectionFactory(opts ...Option) *ReflectionFactory {
	o := buildOptions(opts)
	return &ReflectionFactory{logger: o.logger}
}

// IsSupported reports whether the entity is described by a StructTypeInformation.
func (f *ReflectionFactory) IsSupported(entity PersistentEntity) bool {
	if entity == nil {
		return false
	}
	_, ok := entity.TypeInformation().(*StructTypeInformation)
	return ok
}

// PropertyAccessor returns an accessor bound to bean. bean must match the
// entity's struct type.
func (f *ReflectionFactory) PropertyAccessor(entity PersistentEntity, bean any) (PropertyAccessor, error) {
	if !f.IsSupported(entity) {
		return nil, fmt.Errorf("%w: %s is not described by struct type information", ErrUnsupportedEntity, entityName(entity))
	}
	info := entity.TypeInformation().(*StructTypeInformation)

	if bean == nil || reflect.TypeOf(bean) != info.typ {
		return nil, fmt.Errorf("%w: want %s, got %T", ErrBeanType, info.typ, bean)
	}

	loggerOrDefault(f.logger).Debug("obtaining reflection property accessor", "entity", entity.Name())
	return &reflectPropertyAccessor{bean: bean, info: info}, nil
}

type reflectPropertyAccessor struct {
	bean any
	info *StructTypeInformation
}

// target returns the addressable struct to operate on. For struct values it
// is a fresh copy when forWrite is set.
func (a *reflectPropertyAccessor) target(forWrite bool) (reflect.Value, bool) {
	v := reflect.ValueOf(a.bean)
	if v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return reflect.Value{}, false
		}
		return v.Elem(), true
	}
	if !forWrite {
		return v, true
	}
	c := reflect.New(v.Type()).Elem()
	c.Set(v)
	return c, true
}

func (a *reflectPropertyAccessor) GetProperty(p PersistentProperty) (any, error) {
	index, ok := a.info.fields[p.Name()]
	if !ok {
		return nil, nil
	}
	v, ok := a.target(false)
	if !ok {
		return nil, nil
	}
	field, err := v.FieldByIndexErr(index)
	if err != nil {
		// nil embedded pointer on the path
		return nil, nil
	}
	if !field.CanInterface() {
		return nil, nil
	}
	return field.Interface(), nil
}

func (a *reflectPropertyAccessor) SetProperty(p PersistentProperty, value any) error {
	index, ok := a.info.fields[p.Name()]
	if !ok {
		return nil
	}
	v, ok := a.target(true)
	if !ok {
		return fmt.Errorf("%w: cannot set %q on nil bean", ErrBeanType, p.Name())
	}
	field, err := v.FieldByIndexErr(index)
	if err != nil {
		return fmt.Errorf("property %q: %w", p.Name(), err)
	}
	if !field.CanSet() {
		return fmt.Errorf("property %q is not settable", p.Name())
	}
	rv, err := assignable(value, field.Type())
	if err != nil {
		return fmt.Errorf("property %q: %w", p.Name(), err)
	}
	field.Set(rv)

	if reflect.TypeOf(a.bean).Kind() != reflect.Pointer {
		a.bean = v.Interface()
	}
	return nil
}

func (a *reflectPropertyAccessor) Bean() any {
	return a.bean
}

var (
	_ PropertyAccessorFactory = (*ReflectionFactory)(nil)
	_ TypeInformation         = (*StructTypeInformation)(nil)
	_ PropertyLister          = (*StructTypeInformation)(nil)
)
