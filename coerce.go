package ndindex

import (
	"reflect"

	"github.com/pkg/errors"
)

// coerceInt converts a raw value into a plain int, accepting any Go integer
// kind. It is used everywhere a constructor needs to accept "an integer"
// without committing callers to a specific width.
func coerceInt(raw any) (int, error) {
	if raw == nil {
		return 0, errors.New("nil is not integer-like")
	}
	if n, ok := raw.(int); ok {
		return n, nil
	}
	v := reflect.ValueOf(raw)
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return int(v.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return int(v.Uint()), nil
	default:
		return 0, errors.Errorf("%T is not integer-like", raw)
	}
}

// coerceOptionalInt is coerceInt with nil meaning "absent", for the optional
// start/stop/step positions of a Slice.
func coerceOptionalInt(raw any) (*int, error) {
	if raw == nil {
		return nil, nil
	}
	n, err := coerceInt(raw)
	if err != nil {
		return nil, err
	}
	return &n, nil
}
