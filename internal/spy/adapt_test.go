package spy

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdapt_WrongArity(t *testing.T) {
	s := New(Adapt2(func(a, b int) (int, error) { return a + b, nil }))

	assert.Same(t, NoValue, s.Call(1))

	out, _ := s.OutcomeAt(0)
	var arityErr *ArityError
	require.ErrorAs(t, out.Err(), &arityErr)
	assert.Equal(t, 2, arityErr.Want)
	assert.Equal(t, 1, arityErr.Got)
}

func TestAdapt_WrongType(t *testing.T) {
	s := New(Adapt1(func(x int) (int, error) { return x, nil }))

	assert.Same(t, NoValue, s.Call("three"))

	out, _ := s.OutcomeAt(0)
	var typeErr *ArgTypeError
	require.ErrorAs(t, out.Err(), &typeErr)
	assert.Equal(t, 0, typeErr.Index)
	assert.Equal(t, "int", typeErr.Want)
	assert.Equal(t, "argument 0: expected int, got string", typeErr.Error())
}

func TestAdapt_NilForPointer(t *testing.T) {
	s := New(Adapt1(func(p *int) (bool, error) { return p == nil, nil }))

	assert.Equal(t, true, s.Call(nil))
}

func TestAdapt_NilForValueType(t *testing.T) {
	s := New(Adapt1(func(x int) (int, error) { return x, nil }))

	assert.Same(t, NoValue, s.Call(nil))
}

func TestAdapt2(t *testing.T) {
	s := New(Adapt2(func(sep string, parts []string) (string, error) {
		return strings.Join(parts, sep), nil
	}))

	assert.Equal(t, "a-b", s.Call("-", []string{"a", "b"}))
}

func TestVariadic(t *testing.T) {
	sum := Variadic(func(args []any) (int, error) {
		total := 0
		for _, a := range args {
			total += a.(int)
		}
		return total, nil
	})
	s := New(sum)

	assert.Equal(t, 21, s.Call(1, 2, 3, 4, 5, 6))
	assert.Equal(t, [][]any{{1, 2, 3, 4, 5, 6}}, s.Calls())
}

func TestPure(t *testing.T) {
	s := New(Pure(func(args ...any) int { return len(args) }))

	assert.Equal(t, 3, s.Call("a", "b", "c"))
}

func TestOutcome_Accessors(t *testing.T) {
	ok := Ok(6)
	threw := Threw("boom")

	v, isOk := ok.Returned()
	assert.True(t, isOk)
	assert.Equal(t, 6, v)
	assert.True(t, ok.IsOk())
	assert.NoError(t, ok.Err())
	_, thrown := ok.Thrown()
	assert.False(t, thrown)

	_, isOk = threw.Returned()
	assert.False(t, isOk)
	assert.EqualError(t, threw.Err(), "panic: boom")

	assert.Equal(t, "Ok(6)", ok.String())
	assert.Equal(t, "Threw(boom)", threw.String())
	assert.Equal(t, "Outcome(invalid)", Outcome{}.String())
	assert.Equal(t, "threw", OutcomeThrew.String())
}
