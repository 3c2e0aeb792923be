package errs

import (
	"errors"
	"fmt"
)

// Code classifies an Error.
type Code string

const (
	UnrecognizedType     Code = "unrecognized_type"
	MissingField         Code = "missing_field"
	TypeMismatch         Code = "type_mismatch"
	MalformedArray       Code = "malformed_array"
	UnsupportedEncoding  Code = "unsupported_encoding"
	IndexOutOfRange      Code = "index_out_of_range"
	KeyNotFound          Code = "key_not_found"
	UnsupportedOperation Code = "unsupported_operation"
)

// Sentinels for use with errors.Is.  Matching is by Code only.
var (
	ErrUnrecognizedType     = &Error{Code: UnrecognizedType}
	ErrMissingField         = &Error{Code: MissingField}
	ErrTypeMismatch         = &Error{Code: TypeMismatch}
	ErrMalformedArray       = &Error{Code: MalformedArray}
	ErrUnsupportedEncoding  = &Error{Code: UnsupportedEncoding}
	ErrIndexOutOfRange      = &Error{Code: IndexOutOfRange}
	ErrKeyNotFound          = &Error{Code: KeyNotFound}
	ErrUnsupportedOperation = &Error{Code: UnsupportedOperation}
)

// Error is the single error type produced by the decoding, encoding and
// indexing operations of this module.
type Error struct {
	Code Code
	// Field is the dotted path of the offending document field, if any.
	Field   string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Field != "" && e.Message != "":
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Field, e.Message)
	case e.Field != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Field)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	return string(e.Code)
}

// Is implements the errors.Is interface for error matching.
func (e *Error) Is(target error) bool {
	if e == nil {
		return false
	}
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// New creates an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Field creates an Error about the named document field.
func Field(code Code, field, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Field = field
	return e
}

// Missing reports that field is required but absent.
func Missing(field string) *Error {
	return &Error{Code: MissingField, Field: field}
}

// Wrap prefixes the Field of err with parent, so that an error found while
// decoding a nested document names its full location.  Errors which are not
// an *Error are returned unchanged.
func Wrap(parent string, err error) error {
	var e *Error
	if !errors.As(err, &e) {
		return err
	}
	res := *e
	switch {
	case parent == "":
	case res.Field == "":
		res.Field = parent
	default:
		res.Field = parent + "." + res.Field
	}
	return &res
}

// CodeOf returns the Code of err, or "" if err is not an *Error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
