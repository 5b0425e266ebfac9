package ndindex

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/gomlx/ndindex/internal/kind"
	"github.com/gomlx/ndindex/internal/utils"
	"github.com/gomlx/ndindex/types/shape"
)

// Slice is the index that selects a strided range along an axis: start,
// stop and step mirror Python's slice(start, stop, step), with nil
// start/stop meaning "absent" and step always explicit and non-zero.
type Slice struct {
	start, stop *int
	step        int
}

// NewSlice builds a Slice (or, when it provably selects exactly one
// element, the equivalent Integer) from 1 to 3 positional arguments:
// NewSlice(stop), NewSlice(start, stop) or NewSlice(start, stop, step).
// Any argument may be nil, meaning absent; this mirrors Python's
// slice(x) meaning "stop=x", not "start=x".
func NewSlice(args ...any) (Index, error) {
	if len(args) == 0 || len(args) > 3 {
		return nil, errors.Wrapf(ErrBadIndex, "Slice takes 1 to 3 arguments (stop | start, stop | start, stop, step), got %d", len(args))
	}
	var rawStart, rawStop, rawStep any
	switch len(args) {
	case 1:
		rawStop = args[0]
	case 2:
		rawStart, rawStop = args[0], args[1]
	case 3:
		rawStart, rawStop, rawStep = args[0], args[1], args[2]
	}

	step := 1
	if rawStep != nil {
		v, err := coerceInt(rawStep)
		if err != nil {
			return nil, errors.Wrapf(ErrBadIndex, "Slice step: %v", err)
		}
		step = v
	}
	if step == 0 {
		return nil, errors.Wrapf(ErrBadStep, "Slice")
	}

	start, err := coerceOptionalInt(rawStart)
	if err != nil {
		return nil, errors.Wrapf(ErrBadIndex, "Slice start: %v", err)
	}
	stop, err := coerceOptionalInt(rawStop)
	if err != nil {
		return nil, errors.Wrapf(ErrBadIndex, "Slice stop: %v", err)
	}

	// A slice with both endpoints explicit already denotes a concrete,
	// shape-independent selection: collapse it if it's degenerately empty
	// or a singleton, the same way the real object would print.
	if start != nil && stop != nil {
		if utils.RangeLen(*start, *stop, step) == 1 {
			return NewInteger(*start)
		}
	}
	start, stop, step = collapseIfEmpty(start, stop, step)
	return &Slice{start: start, stop: stop, step: step}, nil
}

// newRawSlice builds a Slice directly from already-canonical fields,
// skipping the public constructor's singleton-to-Integer collapse. Reduce
// and AsSubindex need this: a reduced or intersected Slice must stay a
// Slice even when it selects a single element, to preserve dimensionality.
func newRawSlice(start, stop *int, step int) *Slice {
	start, stop, step = collapseIfEmpty(start, stop, step)
	return &Slice{start: start, stop: stop, step: step}
}

// collapseIfEmpty replaces a degenerately empty (start == stop, no
// wrap-around involved) range with the canonical empty form (0, 0, 1).
func collapseIfEmpty(start, stop *int, step int) (*int, *int, int) {
	if start != nil && stop != nil {
		rl := utils.RangeLen(*start, *stop, step)
		if rl == 0 && ((step > 0 && *start <= *stop) || (step < 0 && *stop <= *start)) {
			zero := 0
			return &zero, &zero, 1
		}
	}
	return start, stop, step
}

func (s *Slice) Kind() kind.Kind { return kind.Slice }

func (s *Slice) Raw() any {
	return SliceRaw{Start: clonePtr(s.start), Stop: clonePtr(s.stop), Step: clonePtr(&s.step)}
}

func clonePtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s *Slice) Equal(other Index) bool {
	o, ok := other.(*Slice)
	if !ok || s.step != o.step {
		return false
	}
	return intPtrEqual(s.start, o.start) && intPtrEqual(s.stop, o.stop)
}

func intPtrEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func (s *Slice) Key() string {
	return fmt.Sprintf("S:%s,%s,%d", intPtrString(s.start), intPtrString(s.stop), s.step)
}

func intPtrString(p *int) string {
	if p == nil {
		return "_"
	}
	return fmt.Sprintf("%d", *p)
}

func (s *Slice) String() string {
	return fmt.Sprintf("Slice(%s, %s, %d)", intPtrString(s.start), intPtrString(s.stop), s.step)
}

// Len returns the maximum possible length of a[s] across all axis sizes,
// and is exact when both endpoints are explicit and, together with a
// None endpoint resolved against the direction of step, don't grow
// without bound as the axis grows. It fails with ErrNoLength when no
// finite bound exists.
func (s *Slice) Len() (int, error) {
	step := s.step
	start, stop := s.start, s.stop

	switch {
	case start == nil && stop == nil:
		return 0, errors.Wrapf(ErrNoLength, "Slice(%s)", s)

	case start == nil:
		if step > 0 {
			if *stop < 0 {
				return 0, errors.Wrapf(ErrNoLength, "Slice(%s): stop grows with the axis size", s)
			}
			return utils.RangeLen(0, *stop, step), nil
		}
		return 0, errors.Wrapf(ErrNoLength, "Slice(%s): start grows with the axis size", s)

	case stop == nil:
		if step > 0 {
			return 0, errors.Wrapf(ErrNoLength, "Slice(%s): stop grows with the axis size", s)
		}
		if *start < 0 {
			return 0, errors.Wrapf(ErrNoLength, "Slice(%s): start grows with the axis size", s)
		}
		return utils.RangeLen(*start, -1, step), nil

	default:
		startNeg, stopNeg := *start < 0, *stop < 0
		if step > 0 {
			switch {
			case startNeg == stopNeg:
				return utils.RangeLen(*start, *stop, step), nil
			case startNeg && !stopNeg:
				// A negative start leaves at most -start positions after it.
				return utils.RangeLen(0, minInt(-*start, *stop), step), nil
			default:
				return 0, errors.Wrapf(ErrNoLength, "Slice(%s): stop grows with the axis size", s)
			}
		}
		if *stop == -1 {
			// -1 is the "before index 0" sentinel of a backward slice.
			if startNeg {
				return 0, errors.Wrapf(ErrNoLength, "Slice(%s): start grows with the axis size", s)
			}
			return utils.RangeLen(*start, -1, step), nil
		}
		switch {
		case startNeg == stopNeg:
			return utils.RangeLen(*start, *stop, step), nil
		case !startNeg && stopNeg:
			// A stop below -1 leaves at most -stop-1 positions above it.
			return utils.RangeLen(minInt(*start, -*stop-2), -1, step), nil
		default:
			return 0, errors.Wrapf(ErrNoLength, "Slice(%s): start grows with the axis size", s)
		}
	}
}

// reduceNoShape defaults a forward-step start to 0 and re-collapses a
// now-degenerate range, without touching anything that still depends on
// an unknown axis length.
func (s *Slice) reduceNoShape() *Slice {
	start, stop, step := s.start, s.stop, s.step
	if step > 0 && start == nil {
		zero := 0
		start = &zero
	}
	return newRawSlice(start, stop, step)
}

// reduceAxis resolves start/stop against an axis of length n: negative
// positions wrap, absent endpoints default to the start/end of the axis
// (or, going backwards, to the -1 sentinel one-before-the-first-element,
// which an explicit backward stop of -1 also denotes), and the result is
// clamped into range. It then tightens the result to
// the smallest (start, stop) pair denoting the same elements, collapsing
// to the canonical empty or single-element forms where applicable.
func (s *Slice) reduceAxis(n int) (*Slice, error) {
	step := s.step
	var start, stop int
	if step > 0 {
		start = valueOr(s.start, 0)
		if s.start != nil && start < 0 {
			start += n
		}
		start = utils.Clamp(start, 0, n)

		stop = valueOr(s.stop, n)
		if s.stop != nil && stop < 0 {
			stop += n
		}
		stop = utils.Clamp(stop, 0, n)
	} else {
		start = valueOr(s.start, n-1)
		if s.start != nil && start < 0 {
			start += n
		}
		start = utils.Clamp(start, -1, n-1)

		// A stop of -1, default or explicit, is the canonical "before index
		// 0" sentinel and must not be wrapped; only a stop below -1 wraps.
		stop = valueOr(s.stop, -1)
		if s.stop != nil && stop < -1 {
			stop += n
		}
		stop = utils.Clamp(stop, -1, n-1)
	}

	length := utils.RangeLen(start, stop, step)
	switch length {
	case 0:
		return newRawSlice(intPtr(0), intPtr(0), 1), nil
	case 1:
		return newRawSlice(intPtr(start), intPtr(start+1), 1), nil
	default:
		last := start + (length-1)*step
		tightStop := last + 1
		if step < 0 {
			tightStop = last - 1
		}
		return newRawSlice(intPtr(start), intPtr(tightStop), step), nil
	}
}

func valueOr(p *int, def int) int {
	if p == nil {
		return def
	}
	return *p
}

func intPtr(v int) *int { return &v }

func (s *Slice) Reduce(shapeArg ...any) (Index, error) {
	shp, has, err := parseOptionalShape(shapeArg)
	if err != nil {
		return nil, err
	}
	if !has {
		return s.reduceNoShape(), nil
	}
	if shp.Len() == 0 {
		return nil, errors.Wrapf(ErrTooManyIndices, "cannot index a scalar (empty shape) with a Slice")
	}
	n, _ := shp.At(0)
	return s.reduceAxis(n)
}

func (s *Slice) Expand(shapeArg any) (*Tuple, error) {
	return wrapSingle(s).Expand(shapeArg)
}

func (s *Slice) NewShape(shapeArg any) (shape.Shape, error) {
	return wrapSingle(s).NewShape(shapeArg)
}

// AsSubindex computes, for two slices over the same axis, the index into
// other's selection that produces the elements s and other have in common:
// a[other][result] selects the elements of a[s] that are also in a[other].
// It's restricted to slices with a positive step and explicit,
// non-negative bounds; anything else is ErrNotImplemented, matching the
// documented subset of the operation.
func (s *Slice) AsSubindex(otherIdx Index) (*Slice, error) {
	other, ok := otherIdx.(*Slice)
	if !ok {
		return nil, errors.Wrapf(ErrNotImplemented, "as_subindex is only implemented when both operands are Slice, got %s", otherIdx.Kind())
	}
	if s.step <= 0 || other.step <= 0 {
		return nil, errors.Wrapf(ErrNotImplemented, "as_subindex only supports slices with a positive step")
	}
	if s.start == nil || s.stop == nil || other.start == nil || other.stop == nil {
		return nil, errors.Wrapf(ErrNotImplemented, "as_subindex requires both slices to have explicit, bounded start and stop")
	}
	if *s.start < 0 || *s.stop < 0 || *other.start < 0 || *other.stop < 0 {
		return nil, errors.Wrapf(ErrNotImplemented, "as_subindex requires non-negative bounds")
	}

	aStart, aStep := *s.start, s.step
	bStart, bStop, bStep := *other.start, *other.stop, other.step

	x0, step, ok := intersectProgressions(aStart, aStep, bStart, bStep)
	if !ok {
		return newRawSlice(intPtr(0), intPtr(0), 1), nil
	}

	lo := maxInt(aStart, bStart)
	hi := minInt(*s.stop, bStop)
	x0 = advanceToAtLeast(x0, step, lo)
	if x0 >= hi {
		return newRawSlice(intPtr(0), intPtr(0), 1), nil
	}
	count := utils.RangeLen(x0, hi, step)

	j0 := (x0 - bStart) / bStep
	jStep := step / bStep
	jStop := j0 + count*jStep
	return newRawSlice(intPtr(j0), intPtr(jStop), jStep), nil
}

// intersectProgressions finds the arithmetic progression of integers
// congruent to aStart mod aStep and to bStart mod bStep, via the Chinese
// Remainder Theorem. It returns the smallest non-negative representative
// x0 and the combined step (lcm(aStep, bStep)); ok is false when the two
// progressions never meet.
func intersectProgressions(aStart, aStep, bStart, bStep int) (x0, step int, ok bool) {
	g, p, _ := utils.ExtendedGCD(aStep, bStep)
	diff := bStart - aStart
	if diff%g != 0 {
		return 0, 0, false
	}
	step = aStep / g * bStep
	x := aStart + aStep*p*(diff/g)
	x0 = x % step
	if x0 < 0 {
		x0 += step
	}
	return x0, step, true
}

// advanceToAtLeast returns the smallest value >= lo that is congruent to
// x0 modulo step.
func advanceToAtLeast(x0, step, lo int) int {
	if x0 >= lo {
		k := (x0 - lo) / step
		return x0 - k*step
	}
	k := (lo - x0 + step - 1) / step
	return x0 + k*step
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
