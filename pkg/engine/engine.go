package engine

import (
	"deltaml/delta/pkg/ident"
	"deltaml/delta/pkg/model"
)

// Request carries everything an engine needs for one scoring call. Payload
// is the decoded input object; Raw is the input JSON exactly as received,
// which participates in deterministic scoring.
type Request struct {
	Model   model.Version
	Payload map[string]any
	Raw     string
}

// Response is the raw engine output before audit packaging. Produced fresh
// per call, never cached.
type Response struct {
	// Fields are the engine's own output fields, merged into the final
	// prediction body by the serving layer.
	Fields map[string]any

	// Confidence is the calibrated confidence for this engine family.
	Confidence float64

	// Saliency lists the most influential inputs, at most five entries.
	Saliency []string

	// Rationale is a short human-readable explanation of the scoring.
	Rationale string
}

// Engine scores a single request. Implementations must be safe for
// concurrent use and fully deterministic in their inputs.
type Engine interface {
	// Name identifies the engine in logs and audit records.
	Name() string

	// Infer scores the request. Failures are status errors; the dispatch
	// layer decides whether a fallback applies.
	Infer(req Request) (Response, error)
}

// maxSaliency caps the saliency list for both engines.
const maxSaliency = 5

// score derives a deterministic value in [0, 1) from the model id and the
// raw input. The same (model, input) pair always scores identically, which
// is what makes predictions reproducible and auditable.
func score(id model.ModelID, raw string) float64 {
	h := ident.New()
	h.UpdateString(id.String())
	h.UpdateString(raw)
	return float64(h.Sum32()) / (1 << 32)
}
