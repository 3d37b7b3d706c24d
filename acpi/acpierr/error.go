// Package acpierr defines the error type shared by the table and bytecode
// encoders.
package acpierr

import "fmt"

// Kind classifies an encoding failure.
type Kind uint8

// The list of supported error kinds.
const (
	KindUnknown Kind = iota
	KindInvalidName
	KindLengthOverflow
	KindInvalidMethodFlags
	KindBufferTooSmall
	KindInvalidPlacement
	KindInvalidArgument
)

var kindNames = [...]string{
	KindUnknown:            "unknown",
	KindInvalidName:        "invalid name",
	KindLengthOverflow:     "length overflow",
	KindInvalidMethodFlags: "invalid method flags",
	KindBufferTooSmall:     "buffer too small",
	KindInvalidPlacement:   "invalid placement",
	KindInvalidArgument:    "invalid argument",
}

// String implements fmt.Stringer.
func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return kindNames[KindUnknown]
}

// Error describes an encoding failure. Errors returned by this module are
// always of type *Error and can be matched against the exported sentinels
// with errors.Is; matching compares the Kind only.
type Error struct {
	// The module where the error occurred.
	Module string

	// Kind classifies the failure.
	Kind Kind

	// The error message
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Module == "" {
		return e.Message
	}
	return e.Module + ": " + e.Message
}

// Is reports whether target is an *Error with the same Kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrInvalidName        = &Error{Kind: KindInvalidName, Message: "invalid name"}
	ErrLengthOverflow     = &Error{Kind: KindLengthOverflow, Message: "length overflow"}
	ErrInvalidMethodFlags = &Error{Kind: KindInvalidMethodFlags, Message: "invalid method flags"}
	ErrBufferTooSmall     = &Error{Kind: KindBufferTooSmall, Message: "buffer too small"}
	ErrInvalidPlacement   = &Error{Kind: KindInvalidPlacement, Message: "invalid placement"}
	ErrInvalidArgument    = &Error{Kind: KindInvalidArgument, Message: "invalid argument"}
)

// New returns an error of the given kind with a formatted message.
func New(module string, kind Kind, format string, args ...interface{}) *Error {
	return &Error{
		Module:  module,
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}
