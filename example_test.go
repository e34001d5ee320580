package strata_test

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/aretw0/strata"
	"github.com/aretw0/strata/pkg/mapping"
)

type Person struct {
	Name string
	Age  int
}

func (p Person) WithAge(age int) Person {
	p.Age = age
	return p
}

// Example_accessorFunctions maps an immutable type through declared
// get/set functions and stores it.
func Example_accessorFunctions() {
	tmpDir, err := os.MkdirTemp("", "strata-example-*")
	if err != nil {
		log.Fatal(err)
	}
	defer os.RemoveAll(tmpDir)

	ctx := context.Background()
	store, err := strata.Open(ctx, tmpDir)
	if err != nil {
		log.Fatal(err)
	}

	ti := mapping.NewTypeInformation[Person]()
	mapping.Getter(ti, "name", func(p Person) string { return p.Name })
	mapping.Setter(ti, "name", func(p Person, name string) Person { p.Name = name; return p })
	mapping.Getter(ti, "age", func(p Person) int { return p.Age })
	mapping.Setter(ti, "age", func(p Person, age int) Person { return p.WithAge(age) })
	if err := store.Mapping.Register(mapping.NewEntity("Person", ti)); err != nil {
		log.Fatal(err)
	}

	// Direct property access.
	acc, err := mapping.Instance().PropertyAccessor(mapping.NewEntity("Person", ti), Person{Name: "A"})
	if err != nil {
		log.Fatal(err)
	}
	if err := acc.SetProperty(mapping.Property("age"), 30); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%+v\n", acc.Bean())

	// Through a typed repository.
	people, err := strata.Typed[Person](store)
	if err != nil {
		log.Fatal(err)
	}
	if err := people.Save(ctx, &strata.DocumentModel[Person]{ID: "people/a", Data: acc.Bean().(Person)}); err != nil {
		log.Fatal(err)
	}
	got, err := people.Get(ctx, "people/a")
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("%+v\n", got.Data)

	// Output:
	// {Name:A Age:30}
	// {Name:A Age:30}
}
