// Package strided implements row-major N-dimensional arrays.
//
// An [Array] holds a shape, the strides derived from it and a flat
// buffer of Size(shape) elements.  For shape [3 4] the strides are [4 1],
// so index (1, 0) and flat offset 4 address the same element.
//
// Two kinds of access are provided.  [Array.At], [Array.Set] and
// [Array.Ptr] check every index against the shape and accept at most
// [MaxDims] indices, with trailing [Unused] markers ignored.  [Array.Flat]
// and [Array.At2] skip those checks for bulk scans.
package strided
