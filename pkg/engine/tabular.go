package engine

import (
	"sort"
)

// Reserved payload keys that never count as tabular features.
var reservedKeys = map[string]bool{
	"context": true,
	"text":    true,
}

// Tabular scores feature-style payloads. Saliency is derived from the
// payload's top-level keys (reserved keys excluded), sorted so the output
// is deterministic regardless of map iteration order.
type Tabular struct{}

// Name implements Engine.
func (Tabular) Name() string { return "tabular" }

// Infer implements Engine. Confidence is 0.5 + score/2, so tabular
// predictions always sit in [0.5, 1).
func (Tabular) Infer(req Request) (Response, error) {
	keys := make([]string, 0, len(req.Payload))
	for key := range req.Payload {
		if !reservedKeys[key] {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	if len(keys) > maxSaliency {
		keys = keys[:maxSaliency]
	}

	s := score(req.Model.ID, req.Raw)
	return Response{
		Fields: map[string]any{
			"score": s,
		},
		Confidence: 0.5 + s*0.5,
		Saliency:   keys,
		Rationale:  "tabular score over top-level payload features",
	}, nil
}
