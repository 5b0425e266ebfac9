package ndindex

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gomlx/ndindex/internal/kind"
	"github.com/gomlx/ndindex/types/shape"
)

// Integer is the index that selects a single position along an axis. Its
// value is fixed at construction; resolving a negative value against an
// axis length, and bounds-checking it, only happens in Reduce/NewShape
// once a shape is known.
type Integer struct {
	value int
}

// NewInteger coerces raw (any Go integer kind) into an Integer.
func NewInteger(raw any) (*Integer, error) {
	v, err := coerceInt(raw)
	if err != nil {
		return nil, errors.Wrapf(ErrBadIndex, "Integer: %v", err)
	}
	return &Integer{value: v}, nil
}

func (i *Integer) Kind() kind.Kind { return kind.Integer }

func (i *Integer) Raw() any { return i.value }

func (i *Integer) Equal(other Index) bool {
	o, ok := other.(*Integer)
	return ok && o.value == i.value
}

func (i *Integer) Key() string { return fmt.Sprintf("I:%d", i.value) }

func (i *Integer) String() string { return fmt.Sprintf("Integer(%d)", i.value) }

// reduceAxis resolves a negative value and bounds-checks it against an
// axis of length n, the per-axis semantics shared by the standalone
// Reduce(shape) below and Tuple's element-wise reduce.
func (i *Integer) reduceAxis(n int) (*Integer, error) {
	v := i.value
	if v < -n || v >= n {
		return nil, errors.Wrapf(ErrOutOfBounds, "index %d is out of bounds for an axis of size %d", v, n)
	}
	if v < 0 {
		v += n
	}
	return &Integer{value: v}, nil
}

// Reduce with no shape is a no-op: an Integer carries no axis-dependent
// state to normalize until a shape is known. Reduce(shape) resolves and
// bounds-checks it against axis 0.
func (i *Integer) Reduce(shapeArg ...any) (Index, error) {
	s, has, err := parseOptionalShape(shapeArg)
	if err != nil {
		return nil, err
	}
	if !has {
		return i, nil
	}
	if s.Len() == 0 {
		return nil, errors.Wrapf(ErrTooManyIndices, "cannot index a scalar (empty shape) with Integer(%d)", i.value)
	}
	n, _ := s.At(0)
	return i.reduceAxis(n)
}

func (i *Integer) Expand(shapeArg any) (*Tuple, error) {
	return wrapSingle(i).Expand(shapeArg)
}

func (i *Integer) NewShape(shapeArg any) (shape.Shape, error) {
	return wrapSingle(i).NewShape(shapeArg)
}
