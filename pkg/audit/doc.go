// Package audit builds the WhyLog explanation record attached to every
// prediction and defines the persisted audit-trail record.
//
// The WhyLog hash is computed over the merged response body exactly as it
// stands before the audit field is appended. This ordering is a
// correctness invariant: verifying a prediction means stripping the
// "whylog" field and re-hashing the remainder; re-hashing the full body
// with the field present must not reproduce the stored hash.
//
// Canonical form relies on encoding/json's stable marshaling of maps
// (keys sorted lexicographically), so the same body always produces the
// same bytes and therefore the same hash.
package audit
