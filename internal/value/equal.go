package value

import (
	"fmt"
	"slices"
	"strings"
)

// Equal reports whether a and b are structurally equal.
//
// Scalars delegate to their own Equal. Sequences must match in length and
// element order. Mappings must have the same key set with equal values per
// key. Values of different kinds are never equal. Equal never fails.
func Equal(a, b Value) bool {
	a, b = normalize(a), normalize(b)
	if a.Kind() != b.Kind() {
		return false
	}

	switch av := a.(type) {
	case Sequence:
		bv := b.(Sequence)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true

	case Mapping:
		bv := b.(Mapping)
		if len(av) != len(bv) {
			return false
		}
		for k, x := range av {
			y, ok := bv[k]
			if !ok || !Equal(x, y) {
				return false
			}
		}
		return true

	case Scalar:
		bs, ok := b.(Scalar)
		return ok && av.Equal(bs)
	}

	return false
}

// Deep converts a and b with FromGo and compares the results.
// Inputs that cannot be converted compare unequal.
func Deep(a, b any) bool {
	va, err := FromGo(a)
	if err != nil {
		return false
	}
	vb, err := FromGo(b)
	if err != nil {
		return false
	}
	return Equal(va, vb)
}

// Diff compares a and b and, when they differ, returns the path of the first
// mismatch ("$" for the root, "$[2]" for a sequence index, "$.name" for a
// mapping key). Mapping keys are visited in sorted order so the reported
// path is deterministic.
func Diff(a, b Value) (path string, equal bool) {
	rev, ok := diff(a, b)
	if ok {
		return "", true
	}
	var sb strings.Builder
	sb.WriteString("$")
	for i := len(rev) - 1; i >= 0; i-- {
		sb.WriteString(rev[i])
	}
	return sb.String(), false
}

func normalize(v Value) Value {
	if v == nil {
		return Null{}
	}
	return v
}

// diff returns the path segments of the first mismatch, innermost first.
// Segments are only built once a mismatch is found.
func diff(a, b Value) ([]string, bool) {
	a, b = normalize(a), normalize(b)
	if a.Kind() != b.Kind() {
		return nil, false
	}

	switch av := a.(type) {
	case Sequence:
		bv := b.(Sequence)
		if len(av) != len(bv) {
			return nil, false
		}
		for i := range av {
			if rev, ok := diff(av[i], bv[i]); !ok {
				return append(rev, fmt.Sprintf("[%d]", i)), false
			}
		}
		return nil, true

	case Mapping:
		bv := b.(Mapping)
		for _, k := range sortedKeys(av, bv) {
			x, inA := av[k]
			y, inB := bv[k]
			if !inA || !inB {
				return []string{"." + k}, false
			}
			if rev, ok := diff(x, y); !ok {
				return append(rev, "."+k), false
			}
		}
		return nil, true

	case Scalar:
		bs, ok := b.(Scalar)
		return nil, ok && av.Equal(bs)
	}

	return nil, false
}

// sortedKeys returns the union of both mappings' keys in sorted order.
func sortedKeys(a, b Mapping) []string {
	keys := make([]string, 0, len(a)+len(b))
	for k := range a {
		keys = append(keys, k)
	}
	for k := range b {
		if _, ok := a[k]; !ok {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}
