package mapping

import (
	"fmt"
	"maps"
	"slices"

	"github.com/aretw0/strata/pkg/core"
)

// ToMetadata reads every property of entity from bean. Composite values are
// stored in their JSON shape. Properties that read as nil (including nil
// slices and pointers) are left out.
func ToMetadata(factory PropertyAccessorFactory, entity PersistentEntity, bean any) (core.Metadata, error) {
	props := propertiesOf(entity)
	if props == nil {
		return nil, fmt.Errorf("%w: %s does not list its properties", ErrUnsupportedEntity, entityName(entity))
	}

	acc, err := factory.PropertyAccessor(entity, bean)
	if err != nil {
		return nil, err
	}

	metadata := make(core.Metadata, len(props))
	for _, p := range props {
		value, err := acc.GetProperty(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s.%s: %w", entity.Name(), p.Name(), err)
		}
		if value == nil {
			continue
		}
		value, err = normalize(value)
		if err != nil {
			return nil, fmt.Errorf("failed to encode %s.%s: %w", entity.Name(), p.Name(), err)
		}
		if value == nil {
			continue
		}
		metadata[p.Name()] = value
	}
	return metadata, nil
}

// FromMetadata writes metadata into bean and returns the resulting bean.
// Keys the entity cannot write are ignored.
func FromMetadata(factory PropertyAccessorFactory, entity PersistentEntity, bean any, metadata core.Metadata) (any, error) {
	acc, err := factory.PropertyAccessor(entity, bean)
	if err != nil {
		return nil, err
	}

	for _, key := range slices.Sorted(maps.Keys(metadata)) {
		if err := acc.SetProperty(Property(key), metadata[key]); err != nil {
			return nil, fmt.Errorf("failed to write %s.%s: %w", entity.Name(), key, err)
		}
	}
	return acc.Bean(), nil
}
