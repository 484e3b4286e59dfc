// Package status defines the flat error taxonomy shared by every public
// operation of the runtime.
//
// Each failure carries a stable integer Code that crosses the serving
// boundary unchanged, a short machine-parsable reason string, and an
// optional wrapped cause for diagnostics. Codes are part of the external
// contract and must never be renumbered.
//
// Errors are matched either by code:
//
//	if status.CodeOf(err) == status.CodeNoConsent { ... }
//
// or with the standard errors helpers:
//
//	var se *status.Error
//	if errors.As(err, &se) && se.Code == status.CodePolicyDenied { ... }
//
// Boundary layers render failures with Envelope, which produces the
// documented `{"ok":false,"code":<int>,"msg":"<reason>"}` object instead of
// propagating a panic or a bare error string.
package status
