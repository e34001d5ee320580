// Package mapping provides property access over persistent entities.
//
// A PersistentEntity describes a bean type through its TypeInformation. A
// PropertyAccessorFactory decides whether it can serve an entity and, if so,
// binds a PropertyAccessor to one bean. Accessors read and write properties by
// name and always expose the latest bean through Bean, which lets immutable
// value types be rebuilt on every write.
//
// Two strategies are provided:
//
//   - AccessorFunctionFactory uses get/set functions declared statically by the
//     type information (see TypeInformationOf and Getter/Setter). No reflection
//     is involved in property access.
//   - ReflectionFactory walks struct fields for types described by a
//     StructTypeInformation.
//
// Factories chains them, picking the first strategy that supports an entity.
//
// Usage:
//
//	ti := mapping.NewTypeInformation[Person]()
//	mapping.Getter(ti, "age", func(p Person) int { return p.Age })
//	mapping.Setter(ti, "age", func(p Person, age int) Person { return p.WithAge(age) })
//
//	entity := mapping.NewEntity("Person", ti)
//	acc, err := mapping.Instance().PropertyAccessor(entity, Person{Name: "A"})
//	err = acc.SetProperty(mapping.Property("age"), 30)
//	p := acc.Bean().(Person) // Person{Name: "A", Age: 30}
package mapping
