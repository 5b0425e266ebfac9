package ndindex

import "github.com/pkg/errors"

// Sentinel errors of the index algebra. Constructors and rewriters wrap
// one of these with errors.Wrapf so that callers can match the kind with
// errors.Is while still getting a human-readable message with context (the
// operand, the axis, the shape). A shape argument that is not an Index
// value and cannot be parsed fails with shape.FromRaw's own error, which
// wraps none of these.
var (
	// ErrBadIndex is returned when a raw value cannot be classified into
	// any Index variant, or when a constructor's argument is not
	// integer-convertible.
	ErrBadIndex = errors.New("bad index")

	// ErrBadStep is returned when a Slice is constructed with step == 0.
	ErrBadStep = errors.New("slice step cannot be zero")

	// ErrBadEllipsis is returned when a Tuple is constructed with more
	// than one Ellipsis.
	ErrBadEllipsis = errors.New("an index can only have a single ellipsis")

	// ErrOutOfBounds is returned when an Integer index falls outside
	// [-n, n) for axis length n.
	ErrOutOfBounds = errors.New("index out of bounds")

	// ErrTooManyIndices is returned when a Tuple has more non-ellipsis
	// elements than the shape has axes, or when an Integer or Slice is
	// reduced against a scalar (empty) shape.
	ErrTooManyIndices = errors.New("too many indices")

	// ErrNoLength is returned by Slice.Len when the length depends on an
	// axis size that isn't known.
	ErrNoLength = errors.New("length is not defined without a known shape")

	// ErrNotImplemented is returned by as_subindex for configurations
	// outside its supported subset.
	ErrNotImplemented = errors.New("operation not implemented for this configuration")

	// ErrTypeError is returned when an operation that expects a plain
	// shape is handed an Index value instead.
	ErrTypeError = errors.New("expected a shape, not an Index value")
)
