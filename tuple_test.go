package ndindex

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gomlx/ndindex/internal/kind"
)

func TestNewTupleRejectsDoubleEllipsis(t *testing.T) {
	_, err := NewTuple(Ellipsis, 0, Ellipsis)
	assert.ErrorIs(t, err, ErrBadEllipsis)
}

func TestTupleReduceDropsRedundantEllipsisAndSlice(t *testing.T) {
	// Tuple(0, ..., Slice(0, 3)) against shape (5, 3): the ellipsis
	// expands to zero axes, the trailing slice is a full-axis no-op
	// absorbed by it, and the lone remaining Integer unwraps.
	slice03, err := NewSlice(0, 3)
	require.NoError(t, err)
	tup, err := NewTuple(0, Ellipsis, slice03)
	require.NoError(t, err)

	reduced, err := tup.Reduce([]int{5, 3})
	require.NoError(t, err)
	want, err := NewInteger(0)
	require.NoError(t, err)
	assert.True(t, reduced.Equal(want))
}

func TestTupleReduceKeepsEllipsisAfterAbsorbingLeadingSlice(t *testing.T) {
	// Tuple(Slice(0, 5), ..., 0) against shape (5, 3): the leading full
	// slice is absorbed into the ellipsis, which survives since it's not
	// trailing.
	slice05, err := NewSlice(0, 5)
	require.NoError(t, err)
	tup, err := NewTuple(slice05, Ellipsis, 0)
	require.NoError(t, err)

	reduced, err := tup.Reduce([]int{5, 3})
	require.NoError(t, err)
	reducedTuple, ok := reduced.(*Tuple)
	require.True(t, ok)
	require.Len(t, reducedTuple.Args(), 2)
	assert.Equal(t, kind.Ellipsis, reducedTuple.Args()[0].Kind())
	assert.Equal(t, kind.Integer, reducedTuple.Args()[1].Kind())
}

func TestTupleReduceTrailingEllipsisVanishes(t *testing.T) {
	tup, err := NewTuple(0, Ellipsis)
	require.NoError(t, err)
	reduced, err := tup.Reduce([]int{2, 3})
	require.NoError(t, err)
	want, err := NewInteger(0)
	require.NoError(t, err)
	assert.True(t, reduced.Equal(want))
}

func TestTupleReduceNoEllipsisShorterThanRank(t *testing.T) {
	tup, err := NewTuple(0, 1)
	require.NoError(t, err)
	reduced, err := tup.Reduce([]int{2, 3, 4})
	require.NoError(t, err)
	reducedTuple, ok := reduced.(*Tuple)
	require.True(t, ok)
	require.Len(t, reducedTuple.Args(), 2)
}

func TestTupleReduceTooManyIndices(t *testing.T) {
	tup, err := NewTuple(0, 1, 2)
	require.NoError(t, err)
	_, err = tup.Reduce([]int{2, 3})
	assert.ErrorIs(t, err, ErrTooManyIndices)
}

func TestTupleExpandAlwaysEliminatesEllipsis(t *testing.T) {
	tup, err := NewTuple(0, Ellipsis)
	require.NoError(t, err)
	expanded, err := tup.Expand([]int{2, 3, 4})
	require.NoError(t, err)
	require.Len(t, expanded.Args(), 3)
	for _, a := range expanded.Args() {
		assert.NotEqual(t, kind.Ellipsis, a.Kind())
	}
}

func TestTupleNewShape(t *testing.T) {
	slice, err := NewSlice(0, 3)
	require.NoError(t, err)
	tup, err := NewTuple(0, slice, Ellipsis)
	require.NoError(t, err)
	s, err := tup.NewShape([]int{5, 10, 4, 6})
	require.NoError(t, err)
	assert.True(t, s.Equal([]int{3, 4, 6}))
}
