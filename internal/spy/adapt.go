package spy

import (
	"fmt"
	"reflect"
)

// ArityError is thrown (recorded as a Threw outcome) when an adapted
// callable receives the wrong number of arguments.
type ArityError struct {
	Want int
	Got  int
}

func (e *ArityError) Error() string {
	return fmt.Sprintf("expected %d argument(s), got %d", e.Want, e.Got)
}

// ArgTypeError is thrown when an adapted callable receives an argument of
// the wrong type.
type ArgTypeError struct {
	Index int
	Want  string
	Got   any
}

func (e *ArgTypeError) Error() string {
	return fmt.Sprintf("argument %d: expected %s, got %T", e.Index, e.Want, e.Got)
}

// Adapt0 adapts a zero-argument callable.
func Adapt0[R any](f func() (R, error)) Func {
	return func(args ...any) (any, error) {
		if len(args) != 0 {
			return nil, &ArityError{Want: 0, Got: len(args)}
		}
		r, err := f()
		return r, err
	}
}

// Adapt1 adapts a one-argument callable.
func Adapt1[A, R any](f func(A) (R, error)) Func {
	return func(args ...any) (any, error) {
		if len(args) != 1 {
			return nil, &ArityError{Want: 1, Got: len(args)}
		}
		a, err := argAs[A](args, 0)
		if err != nil {
			return nil, err
		}
		r, err := f(a)
		return r, err
	}
}

// Adapt2 adapts a two-argument callable.
func Adapt2[A, B, R any](f func(A, B) (R, error)) Func {
	return func(args ...any) (any, error) {
		if len(args) != 2 {
			return nil, &ArityError{Want: 2, Got: len(args)}
		}
		a, err := argAs[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := argAs[B](args, 1)
		if err != nil {
			return nil, err
		}
		r, err := f(a, b)
		return r, err
	}
}

// Variadic adapts a callable that takes its arguments as one positional
// list. Higher-arity and variadic callables are spied on this way.
func Variadic[R any](f func([]any) (R, error)) Func {
	return func(args ...any) (any, error) {
		r, err := f(args)
		return r, err
	}
}

// Pure adapts a callable that cannot fail (it may still panic).
func Pure[R any](f func(args ...any) R) Func {
	return func(args ...any) (any, error) {
		return f(args...), nil
	}
}

func argAs[T any](args []any, i int) (T, error) {
	var zero T
	if args[i] == nil && nilable(reflect.TypeOf((*T)(nil)).Elem()) {
		return zero, nil
	}
	v, ok := args[i].(T)
	if !ok {
		return zero, &ArgTypeError{Index: i, Want: reflect.TypeOf((*T)(nil)).Elem().String(), Got: args[i]}
	}
	return v, nil
}

// nilable reports whether an untyped nil argument converts to t.
func nilable(t reflect.Type) bool {
	switch t.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Slice, reflect.Map, reflect.Chan, reflect.Func:
		return true
	}
	return false
}
