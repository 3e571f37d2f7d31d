package concolic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariableRegistryDeclareAndLookup(t *testing.T) {
	r := NewVariableRegistry()
	require.NoError(t, r.Declare("x", SortInt, int64(5)))
	v, ok := r.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, SortInt, v.Sort)
	assert.Equal(t, int64(5), v.Seed)
}

func TestVariableRegistryRedeclareSameSortUpdatesSeed(t *testing.T) {
	r := NewVariableRegistry()
	require.NoError(t, r.Declare("x", SortInt, int64(5)))
	require.NoError(t, r.Declare("x", SortInt, int64(9)))
	v, _ := r.Lookup("x")
	assert.Equal(t, int64(9), v.Seed)
}

func TestVariableRegistryRedeclareDifferentSortErrors(t *testing.T) {
	r := NewVariableRegistry()
	require.NoError(t, r.Declare("x", SortInt, int64(5)))
	err := r.Declare("x", SortReal, 1.0)
	require.Error(t, err)
	var sme *SortMismatchError
	assert.ErrorAs(t, err, &sme)
}

func TestVariableRegistryUpdateSeed(t *testing.T) {
	r := NewVariableRegistry()
	require.NoError(t, r.Declare("x", SortInt, int64(5)))
	assert.True(t, r.UpdateSeed("x", int64(7)))
	v, _ := r.Lookup("x")
	assert.Equal(t, int64(7), v.Seed)
	assert.False(t, r.UpdateSeed("missing", int64(1)))
}

func TestVariableRegistrySeedsSnapshot(t *testing.T) {
	r := NewVariableRegistry()
	require.NoError(t, r.Declare("x", SortInt, int64(1)))
	require.NoError(t, r.Declare("y", SortInt, int64(2)))
	seeds := r.Seeds()
	assert.Equal(t, int64(1), seeds["x"])
	assert.Equal(t, int64(2), seeds["y"])
}

func TestVariableRegistryClear(t *testing.T) {
	r := NewVariableRegistry()
	require.NoError(t, r.Declare("x", SortInt, int64(1)))
	r.Clear()
	_, ok := r.Lookup("x")
	assert.False(t, ok)
	assert.Empty(t, r.Names())
}
