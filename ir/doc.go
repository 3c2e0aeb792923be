// Package ir provides the generic JSON document tree exchanged with the
// remote data store.
//
// # Node Structure
//
// A Node is one JSON value:
//
//   - NullType, BoolType, NumberType, StringType: atomic values
//   - ArrayType: ordered Values
//   - ObjectType: Fields[i] (a string node) is the key of Values[i]
//
// Numbers keep their exact value: integers fitting in 64 signed bits are
// placed under Int64, larger unsigned integers keep their literal text in
// Number, and other numbers are placed under Float64.
//
// # JSON
//
//	node, err := ir.FromJSON([]byte(`{"type":"uint8","value":8}`))
//	d, err := ir.ToJSON(node)
//
// Object field order is preserved in both directions.
//
// # Thread Safety
//
// Node structures are not thread-safe.  Documents decoded by independent
// calls share nothing.
package ir
