// Package errs defines the error kinds reported by the datatree packages.
//
// Every failure is an [*Error] carrying a [Code] plus the offending field
// path or index values:
//
//	a, err := codec.Decode(doc)
//	if errors.Is(err, errs.ErrUnrecognizedType) {
//	    // ...
//	}
//
// Decoding never partially succeeds; the first failure is returned.
package errs
