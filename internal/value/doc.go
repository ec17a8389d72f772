// Package value provides the runtime value model used for structural
// comparison.
//
// A Value is one of three kinds:
//   - Scalar: String, Int, Float, Bool, Null or Opaque. Every scalar carries
//     its own equality predicate.
//   - Sequence: an ordered list of values. Comparison is order-sensitive.
//   - Mapping: string keys to values. Comparison ignores key order.
//
// This package imports nothing internal; spy, suite and runner all build on
// it.
//
// Key constraints:
//   - No implicit coercion between scalar types: Int(1) != Float(1)
//   - Values are never mutated during comparison
//   - Cyclic values are not supported (recursion follows nesting depth)
package value
