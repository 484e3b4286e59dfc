// Package engine provides the two deterministic scoring engines (tabular
// and text) and the dispatch layer that selects one by routing target and
// degrades from text to tabular on failure.
//
// Both engines are pure: the score is a hash of (model id, raw input), so
// repeated calls with the same inputs produce identical responses. Nothing
// is cached; every response is produced fresh.
//
// Fallback protocol: a text-engine failure of any kind triggers exactly one
// retry against the tabular engine, and the tabular result is returned with
// an effective target of tabular. Tabular failures propagate unmodified,
// whether tabular ran as primary or as fallback. There is no further fallback, so
// inference never fails solely because text-specific input was malformed
// when a tabular path is viable.
package engine
