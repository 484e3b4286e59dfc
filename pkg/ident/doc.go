// Package ident provides the deterministic, non-cryptographic hash used to
// derive dataset and model identifiers and to fingerprint audit payloads.
//
// The hash is FNV-1a over 32 bits. Two digest forms are exposed: an
// 8-character hex string for compact identifiers, and a 64-character hex
// string (the 32-bit state expanded through a fixed rotate/mix schedule)
// for audit hashes. Both are stable across processes and platforms, which
// is what makes identifiers and audit trails reproducible.
//
// This hash is not suitable for anything adversarial; integrity against
// tampering is out of scope.
package ident
