package mapping_test

import (
	"bytes"
	"errors"
	"log/slog"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

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

func personTypeInformation() *mapping.TypeInformationOf[Person] {
	ti := mapping.NewTypeInformation[Person]()
	mapping.Getter(ti, "name", func(p Person) string { return p.Name })
	mapping.Getter(ti, "age", func(p Person) int { return p.Age })
	mapping.Setter(ti, "age", func(p Person, age int) Person { return p.WithAge(age) })
	return ti
}

// plainTypeInformation declares no accessor functions.
type plainTypeInformation struct{}

func (plainTypeInformation) Type() reflect.Type { return reflect.TypeFor[Person]() }

func TestIsSupported(t *testing.T) {
	factory := mapping.Instance()

	assert.True(t, factory.IsSupported(mapping.NewEntity("Person", personTypeInformation())))
	assert.False(t, factory.IsSupported(mapping.NewEntity("Plain", plainTypeInformation{})))
	assert.False(t, factory.IsSupported(mapping.NewEntity("Empty", nil)))
}

func TestInstanceIsShared(t *testing.T) {
	assert.Same(t, mapping.Instance(), mapping.Instance())
}

func TestPropertyAccessorUnsupportedEntity(t *testing.T) {
	acc, err := mapping.Instance().PropertyAccessor(mapping.NewEntity("Plain", plainTypeInformation{}), Person{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, mapping.ErrUnsupportedEntity))
	assert.Contains(t, err.Error(), "Plain")
	assert.Nil(t, acc)
}

func TestSetPropertyReplacesBean(t *testing.T) {
	entity := mapping.NewEntity("Person", personTypeInformation())

	acc, err := mapping.Instance().PropertyAccessor(entity, Person{Name: "A", Age: 0})
	require.NoError(t, err)

	require.NoError(t, acc.SetProperty(mapping.Property("age"), 30))
	assert.Equal(t, Person{Name: "A", Age: 30}, acc.Bean())

	p, err := mapping.BeanOf[Person](acc)
	require.NoError(t, err)
	assert.Equal(t, 30, p.Age)
}

func TestGetProperty(t *testing.T) {
	entity := mapping.NewEntity("Person", personTypeInformation())
	acc, err := mapping.Instance().PropertyAccessor(entity, Person{Name: "A", Age: 7})
	require.NoError(t, err)

	v, err := acc.GetProperty(mapping.Property("age"))
	require.NoError(t, err)
	assert.Equal(t, 7, v)

	v, err = acc.GetProperty(mapping.Property("email"))
	require.NoError(t, err)
	assert.Nil(t, v, "property without getter reads as nil")
}

func TestSetPropertyWithoutSetterIsNoop(t *testing.T) {
	entity := mapping.NewEntity("Person", personTypeInformation())
	acc, err := mapping.Instance().PropertyAccessor(entity, Person{Name: "A"})
	require.NoError(t, err)

	// "name" has a getter but no setter.
	require.NoError(t, acc.SetProperty(mapping.Property("name"), "B"))
	assert.Equal(t, Person{Name: "A"}, acc.Bean())
}

func TestSetterSeesPriorBean(t *testing.T) {
	ti := mapping.NewTypeInformation[Person]()
	mapping.Setter(ti, "age", func(p Person, delta int) Person { return p.WithAge(p.Age + delta) })
	acc, err := mapping.Instance().PropertyAccessor(mapping.NewEntity("Person", ti), Person{Age: 1})
	require.NoError(t, err)

	require.NoError(t, acc.SetProperty(mapping.Property("age"), 2))
	require.NoError(t, acc.SetProperty(mapping.Property("age"), 3))
	assert.Equal(t, Person{Age: 6}, acc.Bean())
}

func TestFunctionErrorsPropagate(t *testing.T) {
	boom := errors.New("boom")
	ti := mapping.NewTypeInformation[Person]()
	mapping.TrySetter(ti, "age", func(p Person, age int) (Person, error) {
		if age < 0 {
			return p, boom
		}
		return p.WithAge(age), nil
	})

	acc, err := mapping.Instance().PropertyAccessor(mapping.NewEntity("Person", ti), Person{Age: 5})
	require.NoError(t, err)

	err = acc.SetProperty(mapping.Property("age"), -1)
	assert.Same(t, boom, err, "setter error must not be wrapped")
	assert.Equal(t, Person{Age: 5}, acc.Bean(), "failed set keeps previous bean")
}

// failingTypeInformation declares a getter for every property that fails
// with err.
type failingTypeInformation struct {
	err error
}

func (failingTypeInformation) Type() reflect.Type { return reflect.TypeFor[Person]() }

func (failingTypeInformation) HasGetFunctionFor(string) bool { return true }

func (f failingTypeInformation) GetFunctionFor(string) mapping.GetFunction {
	return func(any) (any, error) { return nil, f.err }
}

func (failingTypeInformation) HasSetFunctionFor(string) bool { return false }

func (failingTypeInformation) SetFunctionFor(string) mapping.SetFunction { return nil }

func TestGetterErrorsPropagate(t *testing.T) {
	sentinel := errors.New("unreadable")
	entity := mapping.NewEntity("Person", failingTypeInformation{err: sentinel})

	acc, err := mapping.Instance().PropertyAccessor(entity, Person{Name: "A"})
	require.NoError(t, err)

	v, err := acc.GetProperty(mapping.Property("name"))
	assert.Same(t, sentinel, err, "getter error must not be wrapped")
	assert.Nil(t, v)
	assert.Equal(t, Person{Name: "A"}, acc.Bean())
}

func TestFunctionPanicsPropagate(t *testing.T) {
	ti := mapping.NewTypeInformation[*Person]()
	mapping.Getter(ti, "name", func(p *Person) string { return p.Name })

	acc, err := mapping.Instance().PropertyAccessor(mapping.NewEntity("Person", ti), (*Person)(nil))
	require.NoError(t, err)

	assert.Panics(t, func() {
		_, _ = acc.GetProperty(mapping.Property("name"))
	})
}

func TestWrongValueType(t *testing.T) {
	acc, err := mapping.Instance().PropertyAccessor(mapping.NewEntity("Person", personTypeInformation()), Person{})
	require.NoError(t, err)

	err = acc.SetProperty(mapping.Property("age"), "thirty")
	assert.ErrorIs(t, err, mapping.ErrValueType)

	// Lossless numeric conversion is accepted, lossy is not.
	require.NoError(t, acc.SetProperty(mapping.Property("age"), 30.0))
	assert.Equal(t, Person{Age: 30}, acc.Bean())
	assert.ErrorIs(t, acc.SetProperty(mapping.Property("age"), 30.5), mapping.ErrValueType)

	// nil is the zero value.
	require.NoError(t, acc.SetProperty(mapping.Property("age"), nil))
	assert.Equal(t, Person{}, acc.Bean())
}

func TestWrongBeanType(t *testing.T) {
	acc, err := mapping.Instance().PropertyAccessor(mapping.NewEntity("Person", personTypeInformation()), "not a person")
	require.NoError(t, err)

	_, err = acc.GetProperty(mapping.Property("age"))
	assert.ErrorIs(t, err, mapping.ErrBeanType)

	_, err = mapping.BeanOf[Person](acc)
	assert.ErrorIs(t, err, mapping.ErrBeanType)
}

func TestDebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	factory := mapping.NewAccessorFunctionFactory(mapping.WithLogger(logger))

	entity := mapping.NewEntity("Person", personTypeInformation())
	require.True(t, factory.IsSupported(entity))
	acc, err := factory.PropertyAccessor(entity, Person{})
	require.NoError(t, err)
	require.NoError(t, acc.SetProperty(mapping.Property("age"), 1))

	out := buf.String()
	assert.Contains(t, out, "entity=Person")
	assert.Contains(t, out, "property=age")
}

func TestTypeInformationProperties(t *testing.T) {
	ti := personTypeInformation()
	assert.Equal(t, []string{"age", "name"}, ti.Properties())
	assert.Equal(t, reflect.TypeFor[Person](), ti.Type())

	entity := mapping.NewEntity("Person", ti)
	props := entity.Properties()
	require.Len(t, props, 2)
	assert.Equal(t, "age", props[0].Name())
}
