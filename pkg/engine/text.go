package engine

import (
	"strings"

	"deltaml/delta/pkg/status"
)

// Text scores free-text payloads. The payload must carry a non-empty
// "text" field; its absence is an InvalidInput failure rather than a
// silent degradation, since the dispatch layer owns the fallback decision.
type Text struct{}

// Name implements Engine.
func (Text) Name() string { return "text" }

// Infer implements Engine. Saliency is the first five whitespace tokens;
// confidence is 0.4 + score*0.6, so text predictions sit in [0.4, 1).
func (Text) Infer(req Request) (Response, error) {
	text, ok := req.Payload["text"].(string)
	if !ok || text == "" {
		return Response{}, status.Invalid("text_missing")
	}

	tokens := strings.Fields(text)
	if len(tokens) > maxSaliency {
		tokens = tokens[:maxSaliency]
	}

	s := score(req.Model.ID, req.Raw)
	return Response{
		Fields: map[string]any{
			"score": s,
		},
		Confidence: 0.4 + s*0.6,
		Saliency:   tokens,
		Rationale:  "text score over leading tokens",
	}, nil
}
