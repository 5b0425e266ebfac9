package ndindex

import (
	"testing"

	"pgregory.net/rapid"
)

// genStep draws a non-zero step in a small range.
func genStep(t *rapid.T) int {
	step := rapid.IntRange(-5, 5).Draw(t, "step")
	if step == 0 {
		step = 1
	}
	return step
}

func genOptionalInt(t *rapid.T, label string) *int {
	if rapid.Bool().Draw(t, label+"_absent") {
		return nil
	}
	v := rapid.IntRange(-15, 15).Draw(t, label)
	return &v
}

func genSlice(t *rapid.T) *Slice {
	start := genOptionalInt(t, "start")
	stop := genOptionalInt(t, "stop")
	step := genStep(t)
	idx, err := NewSlice(ptrToAny(start), ptrToAny(stop), step)
	if err != nil {
		t.Fatalf("NewSlice: %v", err)
	}
	sl, ok := idx.(*Slice)
	if !ok {
		// Collapsed to a singleton Integer; wrap it back into an
		// equivalent raw Slice for the property below, which only cares
		// about reduceAxis semantics.
		sl = &Slice{start: start, stop: stop, step: step}
	}
	return sl
}

// TestSliceReduceAxisIdempotent checks that reducing against a shape
// twice is the same as reducing once: Reduce is a canonicalizer, and a
// canonical value is its own fixed point.
func TestSliceReduceAxisIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sl := genSlice(t)
		n := rapid.IntRange(0, 12).Draw(t, "n")

		once, err := sl.reduceAxis(n)
		if err != nil {
			t.Fatalf("reduceAxis: %v", err)
		}
		twice, err := once.reduceAxis(n)
		if err != nil {
			t.Fatalf("reduceAxis (2nd): %v", err)
		}
		if !once.Equal(twice) {
			t.Fatalf("reduceAxis not idempotent: once=%v twice=%v", once, twice)
		}
	})
}

// TestSliceReduceAxisLengthMatchesLen checks that the reduced slice's own
// range length matches what Slice.Len reports once the axis size is the
// one actually used, its central correctness property.
func TestSliceReduceAxisLengthMatchesLen(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		sl := genSlice(t)
		n := rapid.IntRange(0, 12).Draw(t, "n")

		reduced, err := sl.reduceAxis(n)
		if err != nil {
			t.Fatalf("reduceAxis: %v", err)
		}
		got, err := reduced.Len()
		if err != nil {
			t.Fatalf("reduced slice must always have a definite length: %v", err)
		}
		if got < 0 || got > n {
			t.Fatalf("reduced length %d out of [0, %d]", got, n)
		}
		if want := rangeLenOf(reduced); got != want {
			t.Fatalf("Len() = %d, but the reduced range %v has %d elements", got, reduced, want)
		}
	})
}

// TestIntegerReduceShapeInBounds checks the post-condition of
// Integer.Reduce(shape): the result, when it succeeds, always lies in
// [0, n).
func TestIntegerReduceShapeInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.IntRange(-20, 20).Draw(t, "v")
		n := rapid.IntRange(1, 12).Draw(t, "n")

		i, err := NewInteger(v)
		if err != nil {
			t.Fatalf("NewInteger: %v", err)
		}
		reduced, err := i.Reduce([]int{n})
		if err != nil {
			if v < -n || v >= n {
				return // expected ErrOutOfBounds
			}
			t.Fatalf("unexpected error: %v", err)
		}
		ri, ok := reduced.(*Integer)
		if !ok {
			t.Fatalf("Integer.Reduce(shape) must return an Integer, got %T", reduced)
		}
		if ri.value < 0 || ri.value >= n {
			t.Fatalf("reduced value %d out of [0, %d)", ri.value, n)
		}
	})
}

// TestDispatcherRoundTripProperty checks that New(idx.Raw()) reconstructs
// an equal Index, for generated Integer and Slice values.
func TestDispatcherRoundTripProperty(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		if rapid.Bool().Draw(t, "isSlice") {
			start := genOptionalInt(t, "rtStart")
			stop := genOptionalInt(t, "rtStop")
			step := genStep(t)
			idx, err := NewSlice(ptrToAny(start), ptrToAny(stop), step)
			if err != nil {
				t.Fatalf("NewSlice: %v", err)
			}
			rebuilt, err := New(idx.Raw())
			if err != nil {
				t.Fatalf("New(Raw()): %v", err)
			}
			if !idx.Equal(rebuilt) {
				t.Fatalf("round-trip mismatch: %v != %v", idx, rebuilt)
			}
		} else {
			v := rapid.IntRange(-1000, 1000).Draw(t, "v")
			i, err := NewInteger(v)
			if err != nil {
				t.Fatalf("NewInteger: %v", err)
			}
			rebuilt, err := New(i.Raw())
			if err != nil {
				t.Fatalf("New(Raw()): %v", err)
			}
			if !i.Equal(rebuilt) {
				t.Fatalf("round-trip mismatch: %v != %v", i, rebuilt)
			}
		}
	})
}
