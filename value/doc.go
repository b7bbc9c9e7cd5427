// Package value provides the dynamically typed value tree edited by vtree.
//
// # Overview
//
// A Value is a recursive tagged union with the JSON/YAML data model:
//
//   - NullType: null
//   - BoolType: Bool
//   - NumberType: Number (float64)
//   - StringType: String
//   - ArrayType: ordered Values
//   - ObjectType: Fields (keys) and Values, parallel slices
//
// A value knows nothing about views or navigation nodes layered over it; the
// tree package maintains those.
//
// # Objects
//
// For ObjectType values, Fields[i] is the key of Values[i], so there are
// always as many fields as values. Keys are unique and kept in strictly
// ascending byte order. FieldPos locates a key (or its insertion point) by
// binary search, and InsertField, DeleteField preserve the order. Code
// building objects by hand must keep the order itself; FromMap and
// FromKeyVals do so.
//
// # Identity
//
// Container slots hold *Value. Structural edits move pointers between slots
// rather than copying values, so a reference to a child value stays valid
// when its siblings are inserted, removed or reordered, and when the child is
// re-homed into another container.
//
// # Boundary
//
// FromAny converts decoded Go data into a Value and rejects anything outside
// the data model (channels, structs, non-finite numbers, ...). FromJSON and
// MarshalJSON convert to and from JSON text.
//
// # Conversions
//
// Convert implements the total conversion table returned by Rule. See
// Outcome for the classes.
package value
