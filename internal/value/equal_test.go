package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtures covers every kind, including nesting.
func fixtures() map[string]Value {
	return map[string]Value{
		"null":     Null{},
		"string":   String("hello"),
		"empty":    String(""),
		"int":      Int(42),
		"float":    Float(1.5),
		"bool":     Bool(true),
		"opaque":   Opaque{V: struct{ A int }{A: 1}},
		"seq":      Seq(Int(1), Int(2), Int(3)),
		"emptyseq": Seq(),
		"map":      Map(P("a", Int(1)), P("b", Int(2))),
		"emptymap": Map(),
		"nested": Map(
			P("items", Seq(String("x"), Map(P("n", Int(1))))),
			P("ok", Bool(false)),
		),
	}
}

func TestEqual_Reflexive(t *testing.T) {
	for name, v := range fixtures() {
		t.Run(name, func(t *testing.T) {
			assert.True(t, Equal(v, v))
		})
	}
}

func TestEqual_Symmetric(t *testing.T) {
	fs := fixtures()
	for na, a := range fs {
		for nb, b := range fs {
			assert.Equal(t, Equal(a, b), Equal(b, a), "%s vs %s", na, nb)
		}
	}
}

func TestEqual_Sequences(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"same order", Seq(Int(1), Int(2), Int(3)), Seq(Int(1), Int(2), Int(3)), true},
		{"reversed", Seq(Int(1), Int(2), Int(3)), Seq(Int(3), Int(2), Int(1)), false},
		{"shorter", Seq(Int(1), Int(2)), Seq(Int(1), Int(2), Int(3)), false},
		{"both empty", Seq(), Seq(), true},
		{"nested equal", Seq(Seq(Int(1)), Seq()), Seq(Seq(Int(1)), Seq()), true},
		{"nested differ", Seq(Seq(Int(1))), Seq(Seq(Int(2))), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEqual_Mappings(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want bool
	}{
		{"key order ignored", Map(P("a", Int(1)), P("b", Int(2))), Map(P("b", Int(2)), P("a", Int(1))), true},
		{"different value", Map(P("a", Int(1))), Map(P("a", Int(2))), false},
		{"missing key", Map(P("a", Int(1)), P("b", Int(2))), Map(P("a", Int(1))), false},
		{"same size different keys", Map(P("a", Int(1))), Map(P("b", Int(1))), false},
		{"both empty", Map(), Map(), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Equal(tt.a, tt.b))
		})
	}
}

func TestEqual_NoCoercion(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
	}{
		{"int vs float", Int(1), Float(1)},
		{"int vs string", Int(1), String("1")},
		{"bool vs int", Bool(true), Int(1)},
		{"null vs empty string", Null{}, String("")},
		{"sequence vs mapping", Seq(), Map()},
		{"scalar vs sequence", Int(1), Seq(Int(1))},
		{"opaque different types", Opaque{V: int8(1)}, Opaque{V: int16(1)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.False(t, Equal(tt.a, tt.b))
			assert.False(t, Equal(tt.b, tt.a))
		})
	}
}

func TestEqual_NilIsNull(t *testing.T) {
	assert.True(t, Equal(nil, nil))
	assert.True(t, Equal(nil, Null{}))
	assert.True(t, Equal(Seq(nil), Seq(Null{})))
	assert.False(t, Equal(nil, Int(0)))
}

func TestEqual_NaN(t *testing.T) {
	nan := Float(math.NaN())
	assert.False(t, Equal(nan, nan))
}

func TestDiff_Paths(t *testing.T) {
	tests := []struct {
		name string
		a, b Value
		want string
	}{
		{"root scalar", Int(1), Int(2), "$"},
		{"length mismatch", Seq(Int(1)), Seq(), "$"},
		{"sequence index", Seq(Int(1), Int(2)), Seq(Int(1), Int(3)), "$[1]"},
		{"mapping key", Map(P("a", Int(1))), Map(P("a", Int(2))), "$.a"},
		{"missing key sorted", Map(P("b", Int(1)), P("c", Int(1))), Map(P("c", Int(1)), P("a", Int(1))), "$.a"},
		{"nested", Map(P("xs", Seq(Int(1), Map(P("k", Bool(true)))))), Map(P("xs", Seq(Int(1), Map(P("k", Bool(false)))))), "$.xs[1].k"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, eq := Diff(tt.a, tt.b)
			assert.False(t, eq)
			assert.Equal(t, tt.want, path)
		})
	}
}

func TestEqual_AgreesWithDiff(t *testing.T) {
	fs := fixtures()
	for na, a := range fs {
		for nb, b := range fs {
			_, eq := Diff(a, b)
			assert.Equal(t, eq, Equal(a, b), "%s vs %s", na, nb)
		}
	}
}

func TestEqual_DoesNotBuildPaths(t *testing.T) {
	xs := make(Sequence, 100)
	ys := make(Sequence, 100)
	for i := range xs {
		xs[i] = Int(int64(i))
		ys[i] = Int(int64(i))
	}

	allocs := testing.AllocsPerRun(100, func() { Equal(xs, ys) })
	assert.Zero(t, allocs)

	allocs = testing.AllocsPerRun(100, func() { Diff(xs, ys) })
	assert.Zero(t, allocs)
}

func TestDiff_Equal(t *testing.T) {
	path, eq := Diff(Seq(Int(1)), Seq(Int(1)))
	assert.True(t, eq)
	assert.Empty(t, path)
}

func TestDeep(t *testing.T) {
	assert.True(t, Deep([]int{1, 2, 3}, []any{1, 2, 3}))
	assert.False(t, Deep([]int{1, 2, 3}, []int{3, 2, 1}))
	assert.True(t, Deep(map[string]int{"a": 1, "b": 2}, map[string]any{"b": 2, "a": 1}))
	assert.True(t, Deep("x", "x"))
	assert.False(t, Deep(1, 1.0))

	// Unconvertible inputs never compare equal, not even to themselves.
	f := func() {}
	assert.False(t, Deep(f, f))

	type holder struct{ X any }
	require.NotPanics(t, func() {
		assert.False(t, Deep(holder{X: []int{1}}, holder{X: []int{1}}))
	})
}

func TestOpaque_EqualRejectsUncomparableDynamicValues(t *testing.T) {
	type holder struct{ X any }
	a := Opaque{V: holder{X: []int{1}}}
	b := Opaque{V: holder{X: []int{1}}}

	require.NotPanics(t, func() { assert.False(t, a.Equal(b)) })
	assert.True(t, Opaque{V: holder{X: 1}}.Equal(Opaque{V: holder{X: 1}}))
}
