// Package ndindex implements an algebra of n-dimensional array indices:
// a small closed set of values (Integer, Slice, Ellipsis, Tuple) that
// stand for what a language's `a[idx]` would select from an array of a
// given shape, together with the operations needed to reason about that
// selection without ever materializing the array itself.
//
// Every Index value is immutable once constructed: a constructor either
// returns a fully canonicalized value or an error, and every rewriting
// operation (Reduce, Expand, NewShape) returns a new value rather than
// mutating the receiver.
package ndindex

import (
	"github.com/pkg/errors"

	"github.com/gomlx/ndindex/internal/kind"
	"github.com/gomlx/ndindex/types/shape"
)

// Index is implemented by Integer, Slice, Ellipsis and Tuple: the four
// variants of the index algebra. It is a closed set by convention, not by
// a sealed-interface trick -- see internal/kind for the runtime tag.
type Index interface {
	// Kind reports which of the four variants this value is.
	Kind() kind.Kind

	// Raw returns the plain Go value that New would accept to reconstruct
	// an equal Index (an int, a SliceRaw, the Ellipsis singleton, or a
	// []any of the tuple's own Raw values).
	Raw() any

	// Equal reports structural equality.
	Equal(other Index) bool

	// Key returns a canonical string encoding of the value, suitable as a
	// map key or set element -- the sense in which Index values are
	// "hashable".
	Key() string

	String() string

	// Reduce canonicalizes the index. Called with no shape it applies only
	// the normalizations that don't depend on an axis length. Called with
	// a shape argument (anything shape.FromRaw accepts) it additionally
	// resolves negative positions, clamps out-of-range slice bounds, and
	// validates Integer bounds against the shape.
	Reduce(shapeArg ...any) (Index, error)

	// Expand is Reduce(shape) with every Ellipsis eliminated: the result
	// always has exactly one element per axis of shape.
	Expand(shapeArg any) (*Tuple, error)

	// NewShape returns the shape of a[idx] for an array of shape shapeArg.
	NewShape(shapeArg any) (shape.Shape, error)
}

// New classifies a raw value into the Index it denotes: an Index value
// passes through unchanged, a SliceRaw becomes a Slice, a []any becomes a
// Tuple, and anything integer-like becomes an Integer. Anything else is
// ErrBadIndex.
func New(raw any) (Index, error) {
	if idx, ok := raw.(Index); ok {
		return idx, nil
	}
	if sr, ok := raw.(SliceRaw); ok {
		return NewSlice(sr.args()...)
	}
	if tup, ok := raw.([]any); ok {
		return NewTuple(tup...)
	}
	idx, err := NewInteger(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrBadIndex, "cannot classify %T as an index", raw)
	}
	return idx, nil
}

// SliceRaw is the raw form of a Slice: a (start, stop, step) triple with
// nil meaning "absent". It is what Slice.Raw returns and what New accepts
// to round-trip it.
type SliceRaw struct {
	Start, Stop, Step *int
}

func (r SliceRaw) args() []any {
	return []any{ptrToAny(r.Start), ptrToAny(r.Stop), ptrToAny(r.Step)}
}

func ptrToAny(p *int) any {
	if p == nil {
		return nil
	}
	return *p
}

// parseOptionalShape interprets the variadic shapeArg of Reduce: zero
// arguments means "no shape", one argument is parsed with shape.FromRaw,
// anything else is a programmer error.
func parseOptionalShape(shapeArg []any) (shape.Shape, bool, error) {
	if len(shapeArg) == 0 {
		return nil, false, nil
	}
	if len(shapeArg) > 1 {
		return nil, false, errors.Errorf("reduce takes at most one shape argument, got %d", len(shapeArg))
	}
	s, err := parseShapeArg(shapeArg[0])
	if err != nil {
		return nil, false, err
	}
	return s, true, nil
}

// parseShapeArg rejects an Index value (ErrTypeError) before delegating to
// shape.FromRaw, which sits below the index algebra and can't do that
// check itself.
func parseShapeArg(raw any) (shape.Shape, error) {
	if idx, ok := raw.(Index); ok {
		return nil, errors.Wrapf(ErrTypeError, "expected a shape, got an Index value of kind %s", idx.Kind())
	}
	return shape.FromRaw(raw)
}

// wrapSingle wraps a lone atom into the one-element Tuple it's equivalent
// to for Expand and NewShape, which are naturally tuple-shaped operations.
func wrapSingle(idx Index) *Tuple {
	ei := 1
	if idx.Kind() == kind.Ellipsis {
		ei = 0
	}
	return &Tuple{args: []Index{idx}, ellipsisIndex: ei}
}
