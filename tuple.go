package ndindex

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/gomlx/ndindex/internal/kind"
	"github.com/gomlx/ndindex/internal/utils"
	"github.com/gomlx/ndindex/types/shape"
)

// Tuple is an ordered composite of indices, one (conceptually) per axis,
// with at most one element allowed to be Ellipsis.
type Tuple struct {
	args []Index
	// ellipsisIndex is the position of the Ellipsis element in args, or
	// len(args) if there is none.
	ellipsisIndex int
}

// NewTuple classifies each rawArgs element with New and assembles a
// Tuple, rejecting a second Ellipsis with ErrBadEllipsis.
func NewTuple(rawArgs ...any) (*Tuple, error) {
	args := make([]Index, len(rawArgs))
	ellipsisPos := len(rawArgs)
	for i, raw := range rawArgs {
		idx, err := New(raw)
		if err != nil {
			return nil, errors.Wrapf(err, "Tuple argument %d", i)
		}
		if idx.Kind() == kind.Ellipsis {
			if ellipsisPos != len(rawArgs) {
				return nil, errors.Wrapf(ErrBadEllipsis, "Tuple has an ellipsis at both position %d and %d", ellipsisPos, i)
			}
			ellipsisPos = i
		}
		args[i] = idx
	}
	return &Tuple{args: args, ellipsisIndex: ellipsisPos}, nil
}

// newBareTuple assembles a Tuple from already-classified elements,
// recomputing ellipsisIndex by scanning for it.
func newBareTuple(args []Index) *Tuple {
	ei := len(args)
	for i, a := range args {
		if a.Kind() == kind.Ellipsis {
			ei = i
			break
		}
	}
	return &Tuple{args: args, ellipsisIndex: ei}
}

func (t *Tuple) Kind() kind.Kind { return kind.Tuple }

func (t *Tuple) Raw() any {
	raw := make([]any, len(t.args))
	for i, a := range t.args {
		raw[i] = a.Raw()
	}
	return raw
}

// Args exposes the tuple's elements in order.
func (t *Tuple) Args() []Index {
	out := make([]Index, len(t.args))
	copy(out, t.args)
	return out
}

func (t *Tuple) Equal(other Index) bool {
	o, ok := other.(*Tuple)
	if !ok || len(o.args) != len(t.args) {
		return false
	}
	for i := range t.args {
		if !t.args[i].Equal(o.args[i]) {
			return false
		}
	}
	return true
}

func (t *Tuple) Key() string {
	parts := make([]string, len(t.args))
	for i, a := range t.args {
		parts[i] = a.Key()
	}
	return "T[" + strings.Join(parts, ";") + "]"
}

func (t *Tuple) String() string {
	parts := make([]string, len(t.args))
	for i, a := range t.args {
		parts[i] = a.String()
	}
	return "Tuple(" + strings.Join(parts, ", ") + ")"
}

func (t *Tuple) hasEllipsis() bool {
	return t.ellipsisIndex < len(t.args)
}

func (t *Tuple) Reduce(shapeArg ...any) (Index, error) {
	shp, has, err := parseOptionalShape(shapeArg)
	if err != nil {
		return nil, err
	}
	if !has {
		return t.reduceNoShape()
	}
	return t.reduceShape(shp)
}

// reduceNoShape reduces each element without a shape and drops a trailing
// Ellipsis, which is always a no-op regardless of the eventual shape.
func (t *Tuple) reduceNoShape() (Index, error) {
	args := make([]Index, len(t.args))
	for i, a := range t.args {
		red, err := a.Reduce()
		if err != nil {
			return nil, err
		}
		args[i] = red
	}
	if n := len(args); n > 0 && args[n-1].Kind() == kind.Ellipsis {
		args = args[:n-1]
	}
	if len(args) == 1 && args[0].Kind() != kind.Ellipsis {
		return args[0], nil
	}
	return newBareTuple(args), nil
}

// reduceShape is the dense part of the algebra: it reduces every element
// against its axis, then canonicalizes the Ellipsis (if any) by absorbing
// adjacent no-op full-axis slices into it and dropping it outright if
// that leaves it trailing, since a trailing ellipsis never changes the
// selection. Without an ellipsis, it instead trims redundant trailing
// full-axis slices directly.
func (t *Tuple) reduceShape(shp shape.Shape) (Index, error) {
	hasEllipsis := t.hasEllipsis()
	var preRaw, postRaw []Index
	if hasEllipsis {
		preRaw = t.args[:t.ellipsisIndex]
		postRaw = t.args[t.ellipsisIndex+1:]
	} else {
		preRaw = t.args
	}
	if len(preRaw)+len(postRaw) > shp.Len() {
		return nil, errors.Wrapf(ErrTooManyIndices, "too many indices: %d non-ellipsis element(s) for a shape of rank %d", len(preRaw)+len(postRaw), shp.Len())
	}

	pre, preAxisSize, err := reduceElements(preRaw, shp, 0)
	if err != nil {
		return nil, err
	}
	base := shp.Len() - len(postRaw)
	post, postAxisSize, err := reduceElements(postRaw, shp, base)
	if err != nil {
		return nil, err
	}

	var result []Index
	switch {
	case hasEllipsis:
		for len(pre) > 0 && isFullAxisSlice(pre[len(pre)-1], preAxisSize[len(preAxisSize)-1]) {
			pre = pre[:len(pre)-1]
			preAxisSize = preAxisSize[:len(preAxisSize)-1]
		}
		for len(post) > 0 && isFullAxisSlice(post[0], postAxisSize[0]) {
			post = post[1:]
			postAxisSize = postAxisSize[1:]
		}
		if len(post) == 0 {
			// A trailing ellipsis, of any effective width, is a no-op.
			result = pre
		} else {
			result = make([]Index, 0, len(pre)+1+len(post))
			result = append(result, pre...)
			result = append(result, Ellipsis)
			result = append(result, post...)
		}
	default:
		result = pre
		for len(result) > 0 {
			axis := len(result) - 1
			n, _ := shp.At(axis)
			if !isFullAxisSlice(result[axis], n) {
				break
			}
			result = result[:axis]
		}
	}

	if len(result) == 1 && result[0].Kind() != kind.Ellipsis {
		return result[0], nil
	}
	return newBareTuple(result), nil
}

func reduceElements(elems []Index, shp shape.Shape, axisOffset int) ([]Index, []int, error) {
	out := make([]Index, len(elems))
	axisSizes := make([]int, len(elems))
	for i, a := range elems {
		n, _ := shp.At(axisOffset + i)
		red, err := reduceElementAxis(a, n)
		if err != nil {
			return nil, nil, err
		}
		out[i] = red
		axisSizes[i] = n
	}
	return out, axisSizes, nil
}

// reduceElementAxis reduces a single non-ellipsis tuple element against
// its axis length.
func reduceElementAxis(a Index, n int) (Index, error) {
	switch v := a.(type) {
	case *Integer:
		return v.reduceAxis(n)
	case *Slice:
		return v.reduceAxis(n)
	default:
		return nil, errors.Errorf("unexpected %s in a tuple axis position", a.Kind())
	}
}

// isFullAxisSlice reports whether a is the Slice(0, n, 1) that selects
// every element of an axis of length n, making it a no-op.
func isFullAxisSlice(a Index, n int) bool {
	sl, ok := a.(*Slice)
	if !ok || sl.start == nil || sl.stop == nil {
		return false
	}
	return *sl.start == 0 && *sl.stop == n && sl.step == 1
}

func fullAxisSlice() *Slice {
	return &Slice{start: nil, stop: nil, step: 1}
}

// Expand is Reduce(shape) with the Ellipsis always eliminated: the result
// has exactly one element per axis of shape.
func (t *Tuple) Expand(shapeArg any) (*Tuple, error) {
	shp, err := parseShapeArg(shapeArg)
	if err != nil {
		return nil, err
	}

	hasEllipsis := t.hasEllipsis()
	var pre, post []Index
	if hasEllipsis {
		pre = t.args[:t.ellipsisIndex]
		post = t.args[t.ellipsisIndex+1:]
	} else {
		pre = t.args
	}
	if len(pre)+len(post) > shp.Len() {
		return nil, errors.Wrapf(ErrTooManyIndices, "too many indices: %d non-ellipsis element(s) for a shape of rank %d", len(pre)+len(post), shp.Len())
	}

	result := make([]Index, shp.Len())
	for i, a := range pre {
		n, _ := shp.At(i)
		red, err := reduceElementAxis(a, n)
		if err != nil {
			return nil, err
		}
		result[i] = red
	}
	base := shp.Len() - len(post)
	for i, a := range post {
		n, _ := shp.At(base + i)
		red, err := reduceElementAxis(a, n)
		if err != nil {
			return nil, err
		}
		result[base+i] = red
	}
	for axis := len(pre); axis < base; axis++ {
		n, _ := shp.At(axis)
		full, err := fullAxisSlice().reduceAxis(n)
		if err != nil {
			return nil, err
		}
		result[axis] = full
	}
	return newBareTuple(result), nil
}

// NewShape returns the shape of a[t] for an array of shape shapeArg: one
// axis dropped per Integer, one axis kept (with its post-reduce length)
// per Slice, Ellipsis expanded to identity axes.
func (t *Tuple) NewShape(shapeArg any) (shape.Shape, error) {
	expanded, err := t.Expand(shapeArg)
	if err != nil {
		return nil, err
	}
	out := make(shape.Shape, 0, len(expanded.args))
	for _, a := range expanded.args {
		switch v := a.(type) {
		case *Integer:
			// Axis dropped.
		case *Slice:
			out = append(out, rangeLenOf(v))
		}
	}
	return out, nil
}

func rangeLenOf(s *Slice) int {
	return utils.RangeLen(*s.start, *s.stop, s.step)
}
