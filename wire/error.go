// Copyright (c) 2025-2026 The Quornet developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package wire

// ErrorKind identifies a kind of error.  It has full support for errors.Is
// and errors.As, so the caller can directly check against an error kind when
// determining the reason for an error.
type ErrorKind string

// These constants are used to identify a specific Error.
const (
	// ErrUnknownCmd is returned when a message with an unknown command is
	// received.
	ErrUnknownCmd = ErrorKind("ErrUnknownCmd")

	// ErrPayloadTooLarge is returned when a payload exceeds the maximum
	// payload size allowed for the message.
	ErrPayloadTooLarge = ErrorKind("ErrPayloadTooLarge")

	// ErrBitVecTooLarge is returned when a dialability bit vector exceeds
	// the maximum size allowed.
	ErrBitVecTooLarge = ErrorKind("ErrBitVecTooLarge")

	// ErrTooManyAddrs is returned when an address list exceeds the maximum
	// allowed.
	ErrTooManyAddrs = ErrorKind("ErrTooManyAddrs")

	// ErrMalformedAddr is returned when an announced peer address is not
	// structurally valid, such as an IP with an unsupported length.
	ErrMalformedAddr = ErrorKind("ErrMalformedAddr")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}

// MessageError identifies an error related to wire messages.  It has full
// support for errors.Is and errors.As, so the caller can ascertain the
// specific reason for the error by checking the underlying error.
type MessageError struct {
	Func        string
	Err         error
	Description string
}

// Error satisfies the error interface and prints human-readable errors.
func (e MessageError) Error() string {
	return e.Description
}

// Unwrap returns the underlying wrapped error.
func (e MessageError) Unwrap() error {
	return e.Err
}

// messageError creates a MessageError given a set of arguments.
func messageError(fn string, kind ErrorKind, desc string) MessageError {
	return MessageError{Func: fn, Err: kind, Description: desc}
}
