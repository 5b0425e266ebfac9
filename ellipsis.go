package ndindex

import (
	"github.com/gomlx/ndindex/internal/kind"
	"github.com/gomlx/ndindex/types/shape"
)

// ellipsisIndex is the index placeholder that stands for "as many full
// axes as needed to fill out the shape". It carries no state of its own:
// the number of axes it expands to is only known inside a Tuple, once a
// shape is supplied to Reduce/Expand.
type ellipsisIndex struct{}

// Ellipsis is the only value of kind.Ellipsis. Use it as a Tuple element
// the way Python code uses a bare `...`.
var Ellipsis Index = ellipsisIndex{}

func (ellipsisIndex) Kind() kind.Kind { return kind.Ellipsis }

func (e ellipsisIndex) Raw() any { return e }

func (e ellipsisIndex) Equal(other Index) bool {
	return other != nil && other.Kind() == kind.Ellipsis
}

func (e ellipsisIndex) Key() string { return "E" }

func (e ellipsisIndex) String() string { return "Ellipsis" }

// Reduce is a no-op on a standalone Ellipsis: it only resolves into
// concrete axes as part of a Tuple, where the surrounding elements pin
// down how many axes it covers.
func (e ellipsisIndex) Reduce(shapeArg ...any) (Index, error) {
	if _, _, err := parseOptionalShape(shapeArg); err != nil {
		return nil, err
	}
	return e, nil
}

func (e ellipsisIndex) Expand(shapeArg any) (*Tuple, error) {
	return wrapSingle(e).Expand(shapeArg)
}

func (e ellipsisIndex) NewShape(shapeArg any) (shape.Shape, error) {
	return wrapSingle(e).NewShape(shapeArg)
}
