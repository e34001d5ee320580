package mapping

import (
	"fmt"
	"reflect"

	"github.com/aretw0/strata/pkg/core"
)

// MetadataTypeInformation treats a core.Metadata map as a bean whose
// properties are its keys. Every key can be read and written; writes copy the
// map so earlier snapshots stay untouched. Setting nil removes the key.
type MetadataTypeInformation struct {
	keys []string
}

// NewMetadataTypeInformation creates type information listing keys as its
// properties. Access is not limited to keys.
func NewMetadataTypeInformation(keys ...string) *MetadataTypeInformation {
	return &MetadataTypeInformation{keys: keys}
}

func (m *MetadataTypeInformation) Type() reflect.Type {
	return reflect.TypeFor[core.Metadata]()
}

// Properties returns the keys given at construction, or nil if there were none.
func (m *MetadataTypeInformation) Properties() []string {
	if len(m.keys) == 0 {
		return nil
	}
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

func (m *MetadataTypeInformation) HasGetFunctionFor(string) bool { return true }

func (m *MetadataTypeInformation) HasSetFunctionFor(string) bool { return true }

func (m *MetadataTypeInformation) GetFunctionFor(name string) GetFunction {
	return func(bean any) (any, error) {
		md, err := metadataOf(bean)
		if err != nil {
			return nil, err
		}
		return md[name], nil
	}
}

func (m *MetadataTypeInformation) SetFunctionFor(name string) SetFunction {
	return func(bean, value any) (any, error) {
		md, err := metadataOf(bean)
		if err != nil {
			return nil, err
		}
		next := md.Clone()
		if value == nil {
			delete(next, name)
		} else {
			next[name] = value
		}
		return next, nil
	}
}

func metadataOf(bean any) (core.Metadata, error) {
	switch b := bean.(type) {
	case nil:
		return nil, nil
	case core.Metadata:
		return b, nil
	case map[string]any:
		return core.Metadata(b), nil
	}
	return nil, fmt.Errorf("%w: want core.Metadata, got %T", ErrBeanType, bean)
}

var (
	_ TypeInformation       = (*MetadataTypeInformation)(nil)
	_ AccessorFunctionAware = (*MetadataTypeInformation)(nil)
)
