package ir

import (
	"errors"
)

var (
	ErrParse = errors.New("parse error")
	// ErrNumber is returned by the numeric accessors when a number does
	// not fit the requested Go type.
	ErrNumber = errors.New("number out of range")
)
