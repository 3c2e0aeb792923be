// Package kind is the registry of attribute kinds and their wire names.
//
// The registry is a fixed, read-only table: [Kind.String] and [Parse] are
// mutually inverse over the twelve primitive kinds (eight integer kinds,
// two float kinds, bool and string) and the three structural kinds (null,
// array, dictionary).  A lookup miss in [Parse] is an
// [errs.UnrecognizedType] error.
//
// Generic code maps a Go element type to its Kind with [Of].
package kind
