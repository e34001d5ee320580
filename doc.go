// Package strata is the Composition Root for the strata mapping library.
//
// It connects the mapping layer (entities, type information and property
// accessor factories) with a storage adapter. Typed Go values are stored as
// documents whose metadata holds the bean's properties.
//
// Property access is pluggable. Types can declare get/set functions for each
// property, which the accessor function strategy calls without reflection;
// immutable value types are supported because every setter returns the
// updated bean. Plain structs fall back to reflection over their fields.
//
// Usage:
//
//	store, err := strata.Open(ctx, "./data")
//
//	ti := mapping.NewTypeInformation[Person]()
//	mapping.Getter(ti, "age", func(p Person) int { return p.Age })
//	mapping.Setter(ti, "age", func(p Person, age int) Person { return p.WithAge(age) })
//	err = store.Mapping.Register(mapping.NewEntity("Person", ti))
//
//	people, err := strata.Typed[Person](store)
//	err = people.Save(ctx, &strata.DocumentModel[Person]{ID: "people/a", Data: p})
package strata
