package mapping

// GetFunction reads a property from bean.
type GetFunction func(bean any) (any, error)

// SetFunction writes value into bean and returns the resulting bean. For
// immutable beans the result is a new value; for mutable ones it may be bean
// itself.
type SetFunction func(bean, value any) (any, error)

// AccessorFunctionAware is the optional capability of a TypeInformation that
// declares get/set functions per property name.
type AccessorFunctionAware interface {
	HasGetFunctionFor(name string) bool
	GetFunctionFor(name string) GetFunction
	HasSetFunctionFor(name string) bool
	SetFunctionFor(name string) SetFunction
}

// AccessorFunctions returns the entity's accessor functions if its type
// information declares them.
func AccessorFunctions(entity PersistentEntity) (AccessorFunctionAware, bool) {
	if entity == nil || entity.TypeInformation() == nil {
		return nil, false
	}
	functions, ok := entity.TypeInformation().(AccessorFunctionAware)
	return functions, ok
}
