package status

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Code is a stable machine-readable error code. The integer values cross
// the serving boundary and must never change.
type Code int

const (
	// CodeOK is the success sentinel; it never appears inside an Error.
	CodeOK Code = 0

	// CodeNoConsent means the consent gate denied the (purpose, subject)
	// pair, or the consent store itself failed.
	CodeNoConsent Code = 1

	// CodePolicyDenied means a training-time governance gate (differential
	// privacy or fairness) rejected the request.
	CodePolicyDenied Code = 2

	// CodeModelMissing means no active model is selected, or the requested
	// model id/version has never been registered.
	CodeModelMissing Code = 3

	// CodeInvalidInput means the request payload was malformed or missing
	// required fields.
	CodeInvalidInput Code = 4

	// CodeInternal is the catch-all for invariant violations and bugs.
	CodeInternal Code = 5

	// CodeNotFound means a dataset or artifact is absent from storage.
	CodeNotFound Code = 6

	// CodeIO means a filesystem or storage-backend failure.
	CodeIO Code = 7
)

// String returns the canonical lowercase name of the code.
func (c Code) String() string {
	switch c {
	case CodeOK:
		return "ok"
	case CodeNoConsent:
		return "no_consent"
	case CodePolicyDenied:
		return "policy_denied"
	case CodeModelMissing:
		return "model_missing"
	case CodeInvalidInput:
		return "invalid_input"
	case CodeInternal:
		return "internal"
	case CodeNotFound:
		return "not_found"
	case CodeIO:
		return "io"
	default:
		return fmt.Sprintf("code(%d)", int(c))
	}
}

// Error is the canonical error type for the runtime. Reason is a short
// snake_case token safe to surface across the boundary; Cause is optional
// diagnostic context that stays inside the process.
type Error struct {
	Code   Code
	Reason string
	Cause  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Reason, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Reason)
}

// Unwrap returns the wrapped cause for error chain traversal.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches two status errors by code, so callers can use errors.Is with
// a code-only template such as status.NoConsent().
func (e *Error) Is(target error) bool {
	var se *Error
	if !errors.As(target, &se) {
		return false
	}
	return e.Code == se.Code
}

// Invalid returns an InvalidInput error with the given reason.
func Invalid(reason string) *Error {
	return &Error{Code: CodeInvalidInput, Reason: reason}
}

// NoConsent returns the consent-denied error. The optional cause records
// an infrastructure failure of the consent store; the caller-visible
// outcome is identical either way.
func NoConsent(cause ...error) *Error {
	e := &Error{Code: CodeNoConsent, Reason: "no_consent"}
	if len(cause) > 0 {
		e.Cause = cause[0]
	}
	return e
}

// PolicyDenied returns a training-governance denial carrying the specific
// gate reason code (for example "dp_epsilon_exceeded").
func PolicyDenied(reason string) *Error {
	return &Error{Code: CodePolicyDenied, Reason: reason}
}

// ModelMissing returns a missing-model error with the given reason.
func ModelMissing(reason string) *Error {
	return &Error{Code: CodeModelMissing, Reason: reason}
}

// NotFound returns a missing-record error with the given reason.
func NotFound(reason string) *Error {
	return &Error{Code: CodeNotFound, Reason: reason}
}

// IO wraps a filesystem or storage failure.
func IO(reason string, cause error) *Error {
	return &Error{Code: CodeIO, Reason: reason, Cause: cause}
}

// Internal returns an internal error with the given reason and optional cause.
func Internal(reason string, cause ...error) *Error {
	e := &Error{Code: CodeInternal, Reason: reason}
	if len(cause) > 0 {
		e.Cause = cause[0]
	}
	return e
}

// CodeOf extracts the status code from an error chain. Non-status errors
// degrade to CodeInternal; nil maps to CodeOK.
func CodeOf(err error) Code {
	if err == nil {
		return CodeOK
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}

// ReasonOf extracts the reason token from an error chain, falling back to
// the plain error message for non-status errors.
func ReasonOf(err error) string {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Reason
	}
	return err.Error()
}

// envelope is the wire form of a failed JSON-returning operation.
type envelope struct {
	OK   bool   `json:"ok"`
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

// Envelope renders an error as the documented failure object
// {"ok":false,"code":<int>,"msg":"<reason>"}. It never fails: the envelope
// fields are all primitives.
func Envelope(err error) string {
	body, marshalErr := json.Marshal(envelope{
		OK:   false,
		Code: int(CodeOf(err)),
		Msg:  ReasonOf(err),
	})
	if marshalErr != nil {
		return `{"ok":false,"code":5,"msg":"internal"}`
	}
	return string(body)
}
