package value

import (
	"fmt"
	"math"
	"reflect"
)

// Value is a sealed interface over the comparable value kinds.
// Only the scalar types below, Sequence and Mapping implement it.
type Value interface {
	Kind() Kind
	value() // Sealed
}

// Kind tags the variant a Value belongs to.
type Kind int

const (
	// KindScalar is any leaf value with its own equality predicate.
	KindScalar Kind = iota + 1
	// KindSequence is an ordered list of values.
	KindSequence
	// KindMapping is a set of unique string keys to values.
	KindMapping
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindSequence:
		return "sequence"
	case KindMapping:
		return "mapping"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Scalar is a leaf value that knows how to compare itself.
// Scalars of different concrete types are never equal.
type Scalar interface {
	Value
	Equal(other Scalar) bool
}

// Null represents the absence of a value. A nil Value compares as Null.
type Null struct{}

func (Null) value()     {}
func (Null) Kind() Kind { return KindScalar }

// Equal reports whether other is also Null.
func (Null) Equal(other Scalar) bool {
	_, ok := other.(Null)
	return ok
}

// String is a string scalar.
type String string

func (String) value()     {}
func (String) Kind() Kind { return KindScalar }

// Equal compares byte-for-byte. Format normalises for display only.
func (s String) Equal(other Scalar) bool {
	o, ok := other.(String)
	return ok && s == o
}

// Int is a signed integer scalar. Every Go integer width converts to Int.
type Int int64

func (Int) value()     {}
func (Int) Kind() Kind { return KindScalar }

// Equal reports whether other is an Int with the same value.
func (i Int) Equal(other Scalar) bool {
	o, ok := other.(Int)
	return ok && i == o
}

// Float is a floating point scalar. Comparison is exact; NaN is never equal.
type Float float64

func (Float) value()     {}
func (Float) Kind() Kind { return KindScalar }

// Equal reports whether other is a Float with the same value.
func (f Float) Equal(other Scalar) bool {
	o, ok := other.(Float)
	return ok && f == o
}

// Bool is a boolean scalar.
type Bool bool

func (Bool) value()     {}
func (Bool) Kind() Kind { return KindScalar }

// Equal reports whether other is a Bool with the same value.
func (b Bool) Equal(other Scalar) bool {
	o, ok := other.(Bool)
	return ok && b == o
}

// Opaque wraps any other comparable Go value (pointers, structs of
// comparable fields, channels). Equality is Go's ==, and only between
// values of the same dynamic type.
type Opaque struct {
	V any
}

func (Opaque) value()     {}
func (Opaque) Kind() Kind { return KindScalar }

// Equal compares the wrapped values with ==.
func (o Opaque) Equal(other Scalar) bool {
	p, ok := other.(Opaque)
	if !ok {
		return false
	}
	if reflect.TypeOf(o.V) != reflect.TypeOf(p.V) {
		return false
	}
	if !reflect.ValueOf(o.V).Comparable() || !reflect.ValueOf(p.V).Comparable() {
		return false
	}
	return o.V == p.V
}

// Sequence is an ordered list of values.
type Sequence []Value

func (Sequence) value()     {}
func (Sequence) Kind() Kind { return KindSequence }

// Mapping is a set of string keys to values.
type Mapping map[string]Value

func (Mapping) value()     {}
func (Mapping) Kind() Kind { return KindMapping }

// Seq builds a Sequence from values.
func Seq(vals ...Value) Sequence {
	return Sequence(vals)
}

// Pair is a key-value pair for Mapping construction.
type Pair struct {
	Key   string
	Value Value
}

// P is a shorthand for Pair.
// Example: Map(P("name", String("cart")), P("count", Int(5)))
func P(key string, v Value) Pair {
	return Pair{Key: key, Value: v}
}

// Map builds a Mapping from pairs. Later duplicates overwrite earlier ones.
func Map(pairs ...Pair) Mapping {
	m := make(Mapping, len(pairs))
	for _, p := range pairs {
		m[p.Key] = p.Value
	}
	return m
}

// FromGo converts Go data into a Value.
//
// It accepts what yaml.v3 and encoding/json decode into (string, int,
// float64, bool, nil, []any, map[string]any), plus every integer width,
// typed slices, arrays and string-keyed maps. Other comparable values become
// Opaque. Funcs, non-comparable structs and maps with non-string keys are
// rejected with the path of the offending element.
func FromGo(v any) (Value, error) {
	return fromGo(v, "$")
}

// MustFromGo is like FromGo but panics on error.
// Use only in tests or with literals known to convert.
func MustFromGo(v any) Value {
	val, err := FromGo(v)
	if err != nil {
		panic(err)
	}
	return val
}

func fromGo(v any, path string) (Value, error) {
	switch val := v.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return val, nil
	case string:
		return String(val), nil
	case bool:
		return Bool(val), nil
	case int:
		return Int(val), nil
	case int64:
		return Int(val), nil
	case float64:
		return Float(val), nil
	case []any:
		seq := make(Sequence, len(val))
		for i, elem := range val {
			e, err := fromGo(elem, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			seq[i] = e
		}
		return seq, nil
	case map[string]any:
		m := make(Mapping, len(val))
		for k, elem := range val {
			e, err := fromGo(elem, path+"."+k)
			if err != nil {
				return nil, err
			}
			m[k] = e
		}
		return m, nil
	}
	return fromReflect(reflect.ValueOf(v), path)
}

// fromReflect handles the typed cases the fast path above does not cover.
func fromReflect(rv reflect.Value, path string) (Value, error) {
	switch rv.Kind() {
	case reflect.String:
		return String(rv.String()), nil
	case reflect.Bool:
		return Bool(rv.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return Int(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		u := rv.Uint()
		if u > math.MaxInt64 {
			return nil, fmt.Errorf("%s: unsigned integer %d overflows int64", path, u)
		}
		return Int(int64(u)), nil
	case reflect.Float32, reflect.Float64:
		return Float(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return Sequence{}, nil
		}
		seq := make(Sequence, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			e, err := fromGo(rv.Index(i).Interface(), fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return nil, err
			}
			seq[i] = e
		}
		return seq, nil
	case reflect.Map:
		m := make(Mapping, rv.Len())
		iter := rv.MapRange()
		for iter.Next() {
			k := iter.Key()
			if k.Kind() == reflect.Interface {
				k = k.Elem()
			}
			if k.Kind() != reflect.String {
				return nil, fmt.Errorf("%s: mapping keys must be strings, got %s", path, iter.Key().Type())
			}
			e, err := fromGo(iter.Value().Interface(), path+"."+k.String())
			if err != nil {
				return nil, err
			}
			m[k.String()] = e
		}
		return m, nil
	case reflect.Func:
		return nil, fmt.Errorf("%s: functions are not comparable", path)
	}

	// The type check alone misses interface fields holding slices or maps.
	if !rv.Type().Comparable() || !rv.Comparable() {
		return nil, fmt.Errorf("%s: unsupported non-comparable type %s", path, rv.Type())
	}
	return Opaque{V: rv.Interface()}, nil
}
