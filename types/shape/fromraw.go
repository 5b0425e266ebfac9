// Package shape defines Shape, the finite ordered sequence of
// non-negative integers describing the extent of each axis of an
// n-dimensional array, and FromRaw, the dispatcher that coerces a raw
// user-supplied shape argument into one.
package shape

import (
	"reflect"

	"github.com/pkg/errors"
)

// Shape is a finite ordered sequence of non-negative integers, one per
// axis of an n-dimensional array.
type Shape []int

// Len returns the number of axes.
func (s Shape) Len() int {
	return len(s)
}

// At returns the length of the given axis.
func (s Shape) At(axis int) (int, error) {
	if axis < 0 || axis >= len(s) {
		return 0, errors.Errorf("axis %d out of range for shape %v of rank %d", axis, s, len(s))
	}
	return s[axis], nil
}

// Validate reports whether every dimension of s is non-negative.
func (s Shape) Validate() error {
	for axis, dim := range s {
		if dim < 0 {
			return errors.Errorf("shape %v has a negative dimension %d at axis %d", s, dim, axis)
		}
	}
	return nil
}

// Clone returns an independent copy of s.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// Equal reports whether s and other have the same dimensions.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i, dim := range s {
		if other[i] != dim {
			return false
		}
	}
	return true
}

// FromRaw coerces a raw shape argument into a Shape.
//
// Accepted inputs, per the package contract: a Shape, a single
// non-negative integer (of any integer Go type) treated as a
// one-element shape, or any slice/array of non-negative integers (of
// any integer Go type). Anything else -- including a float, a string,
// or a nil interface -- fails.
//
// FromRaw does not special-case index-algebra values: callers that must
// reject an Index argument with ErrTypeError do that check themselves
// before calling FromRaw, since Shape sits below the index algebra and
// cannot reference it without a cycle.
func FromRaw(raw any) (Shape, error) {
	if raw == nil {
		return nil, errors.Errorf("cannot build a shape from a nil value")
	}
	if s, ok := raw.(Shape); ok {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s.Clone(), nil
	}
	if ints, ok := raw.([]int); ok {
		s := Shape(append([]int(nil), ints...))
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	}

	v := reflect.ValueOf(raw)
	t := v.Type()
	if isIntegerKind(t.Kind()) {
		dim, err := dimFromReflect(v)
		if err != nil {
			return nil, err
		}
		return Shape{dim}, nil
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		s := make(Shape, v.Len())
		for i := range s {
			elem := v.Index(i)
			if !isIntegerKind(elem.Kind()) {
				return nil, errors.Errorf("cannot build a shape from %T: element %d has non-integer type %s", raw, i, elem.Type())
			}
			dim, err := dimFromReflect(elem)
			if err != nil {
				return nil, err
			}
			s[i] = dim
		}
		if err := s.Validate(); err != nil {
			return nil, err
		}
		return s, nil
	}
	return nil, errors.Errorf("cannot build a shape from %T: expected an integer or a sequence of integers", raw)
}

func isIntegerKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	default:
		return false
	}
}

func dimFromReflect(v reflect.Value) (int, error) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := v.Int()
		if n < 0 {
			return 0, errors.Errorf("shape dimension %d is negative", n)
		}
		return int(n), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint()), nil
	default:
		return 0, errors.Errorf("cannot convert %s to a shape dimension", v.Type())
	}
}
