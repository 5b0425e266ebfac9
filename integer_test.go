package ndindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/ndindex/internal/kind"
)

func TestNewInteger(t *testing.T) {
	i, err := NewInteger(5)
	require.NoError(t, err)
	assert.Equal(t, kind.Integer, i.Kind())
	assert.Equal(t, 5, i.Raw())

	i2, err := NewInteger(int32(5))
	require.NoError(t, err)
	assert.True(t, i.Equal(i2))

	_, err = NewInteger("not an int")
	assert.ErrorIs(t, err, ErrBadIndex)
}

func TestIntegerReduceNoShape(t *testing.T) {
	i, err := NewInteger(-3)
	require.NoError(t, err)
	reduced, err := i.Reduce()
	require.NoError(t, err)
	assert.True(t, i.Equal(reduced), "reduce() without a shape is a no-op")
}

func TestIntegerReduceWithShape(t *testing.T) {
	i, err := NewInteger(-1)
	require.NoError(t, err)
	reduced, err := i.Reduce([]int{5})
	require.NoError(t, err)
	want, err := NewInteger(4)
	require.NoError(t, err)
	assert.True(t, want.Equal(reduced))

	_, err = i.Reduce([]int{0})
	assert.ErrorIs(t, err, ErrOutOfBounds)

	oob, err := NewInteger(10)
	require.NoError(t, err)
	_, err = oob.Reduce([]int{5})
	assert.ErrorIs(t, err, ErrOutOfBounds)
}

func TestIntegerNewShapeDropsAxis(t *testing.T) {
	i, err := NewInteger(0)
	require.NoError(t, err)
	s, err := i.NewShape([]int{5, 3})
	require.NoError(t, err)
	assert.True(t, s.Equal([]int{3}))
}

func TestIntegerExpand(t *testing.T) {
	i, err := NewInteger(0)
	require.NoError(t, err)
	tup, err := i.Expand([]int{5, 3})
	require.NoError(t, err)
	require.Len(t, tup.Args(), 2)
	assert.Equal(t, kind.Integer, tup.Args()[0].Kind())
	assert.Equal(t, kind.Slice, tup.Args()[1].Kind())
}
