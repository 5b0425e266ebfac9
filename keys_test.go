package ndindex

import (
	"testing"

	"github.com/gomlx/ndindex/internal/utils"
)

// TestIndexKeysAreDistinct checks that Key(), the map-key encoding backing
// the "Index values are hashable" invariant, doesn't collide across a
// sampling of structurally different values.
func TestIndexKeysAreDistinct(t *testing.T) {
	slice17, err := NewSlice(1, 7, 2)
	if err != nil {
		t.Fatal(err)
	}
	slice010, err := NewSlice(0, 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	tup, err := NewTuple(0, Ellipsis, slice17)
	if err != nil {
		t.Fatal(err)
	}

	values := []Index{
		mustIndex(t, 0),
		mustIndex(t, 1),
		mustIndex(t, -1),
		slice17,
		slice010,
		Ellipsis,
		tup,
	}

	seen := utils.MakeSet[string](len(values))
	for _, v := range values {
		key := v.Key()
		if seen.Has(key) {
			t.Fatalf("Key() collision for %v: %q already seen", v, key)
		}
		seen.Insert(key)
	}
}
