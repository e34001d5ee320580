package mapping_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/strata/pkg/mapping"
)

func TestMappingContext(t *testing.T) {
	ctx := mapping.NewMappingContext()
	person := mapping.NewEntity("Person", personTypeInformation())

	require.NoError(t, ctx.Register(person))
	require.NoError(t, ctx.Register(accountEntity(t)))

	err := ctx.Register(mapping.NewEntity("Person", plainTypeInformation{}))
	assert.ErrorIs(t, err, mapping.ErrDuplicateEntity)

	got, err := ctx.Entity("Person")
	require.NoError(t, err)
	assert.Same(t, person, got)

	got, err = mapping.EntityOf[Person](ctx)
	require.NoError(t, err)
	assert.Same(t, person, got)

	_, err = ctx.Entity("Missing")
	assert.ErrorIs(t, err, mapping.ErrEntityNotFound)

	state, ok := ctx.State().(mapping.MappingContextState)
	require.True(t, ok)
	assert.Equal(t, 2, state.EntityCount)
	assert.Equal(t, []string{"Account", "Person"}, state.Entities)
	assert.Equal(t, "mapping-context", ctx.ComponentType())
}
