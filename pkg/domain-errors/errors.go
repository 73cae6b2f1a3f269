// Package domainerrors carries coded errors from domain services to the
// transport layer. Services return *Error values (optionally wrapping a cause);
// handlers translate the code into an HTTP status with ToHTTPStatus.
package domainerrors

import (
	"errors"
	"net/http"
)

// Code is a stable, machine-readable error identifier returned to clients in
// the "error" field of the JSON envelope.
type Code string

const (
	// Input validation failures.
	CodeBadRequest           Code = "bad_request"
	CodeMissingFields        Code = "missing_fields"
	CodeInvalidEmail         Code = "invalid_email"
	CodeInvalidDID           Code = "invalid_did"
	CodeInvalidIssuer        Code = "invalid_issuer"
	CodeIncompleteCredential Code = "incomplete_credential"
	CodeMalformed            Code = "malformed"

	// Authentication and verification failures.
	CodeUnauthorized     Code = "unauthorized"
	CodeInvalidSignature Code = "invalid_signature"
	CodeExpired          Code = "expired"

	CodeMethodNotAllowed Code = "method_not_allowed"
	CodeInternal         Code = "internal_error"
)

// Error is a domain error with a code and a client-safe message.
type Error struct {
	Code    Code
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches another *Error by code and message so tests can compare against
// freshly constructed values.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

// New creates a domain error.
func New(code Code, msg string) error {
	return &Error{Code: code, Message: msg}
}

// Wrap attaches a code and message to an underlying cause.
func Wrap(err error, code Code, msg string) error {
	if err == nil {
		return nil
	}
	return &Error{Code: code, Message: msg, Err: err}
}

// CodeOf returns the code of the outermost domain error in the chain, or
// CodeInternal when err carries none.
func CodeOf(err error) Code {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	return CodeInternal
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	var de *Error
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// ToHTTPStatus maps a code to its HTTP status.
func ToHTTPStatus(code Code) int {
	switch code {
	case CodeBadRequest, CodeMissingFields, CodeInvalidEmail, CodeInvalidDID,
		CodeInvalidIssuer, CodeIncompleteCredential, CodeMalformed:
		return http.StatusBadRequest
	case CodeUnauthorized, CodeInvalidSignature, CodeExpired:
		return http.StatusUnauthorized
	case CodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	default:
		return http.StatusInternalServerError
	}
}
