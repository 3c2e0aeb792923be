// Package attr defines the typed attribute values held by leaves of the
// remote data tree.
//
// An [Attribute] is one of
//
//   - [*Null]: no value
//   - [*Atomic][T]: one bool, integer or float value
//   - [*String]: one UTF-8 string
//   - [*Array][T]: an N-dimensional row-major array of a primitive kind
//   - [*Dictionary]: string keys mapped to owned attributes
//
// Every attribute also carries a description, a group name and a summary
// flag.  Attributes decoded from summary documents report IsSummary; a
// summary array has a shape but no elements and a summary dictionary may
// be empty.
//
// # Casting
//
// Use [As] to obtain the concrete type.  It fails cleanly when the kinds
// differ:
//
//	u, ok := attr.As[*attr.Atomic[uint8]](a)
//	arr, ok := attr.As[*attr.Array[int32]](a)
//
// Code which does not know the element type statically can use the
// [AnyAtomic] and [AnyArray] interfaces.
//
// # Thread Safety
//
// Attributes are plain values owned by whoever decoded or built them and
// are not safe for concurrent mutation.
package attr
