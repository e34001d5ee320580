package mapping

import "errors"

// Common errors.
var (
	ErrUnsupportedEntity = errors.New("entity not supported by property accessor factory")
	ErrBeanType          = errors.New("bean has unexpected type")
	ErrValueType         = errors.New("value not assignable to property")
	ErrEntityNotFound    = errors.New("entity not registered")
	ErrDuplicateEntity   = errors.New("entity already registered")
)
