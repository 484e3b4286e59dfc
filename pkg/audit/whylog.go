package audit

import (
	"encoding/json"

	"deltaml/delta/pkg/ident"
	"deltaml/delta/pkg/status"
)

// bodyKey is the field name under which the WhyLog is appended to the
// prediction body.
const bodyKey = "whylog"

// WhyLog is the audit record attached to a prediction: the canonical hash
// of the body it explains, plus the saliency and rationale copied verbatim
// from the engine response.
type WhyLog struct {
	Hash      string   `json:"hash"`
	Saliency  []string `json:"saliency"`
	Rationale string   `json:"rationale"`
}

// HashBody computes the 64-hex-character audit hash of a response body in
// its canonical JSON form. The body must not already contain the whylog
// field; Build enforces that ordering.
func HashBody(body map[string]any) (string, error) {
	canonical, err := json.Marshal(body)
	if err != nil {
		return "", status.Internal("whylog_canonicalize", err)
	}
	h := ident.New()
	h.Update(canonical)
	return h.Hex64(), nil
}

// Build hashes the merged body, constructs the WhyLog from the hash and
// the engine's saliency/rationale, appends it to the body, and returns the
// final serialized JSON alongside the record.
//
// The hash is always taken before the append; the returned JSON therefore
// contains a whylog field whose hash covers every other field but not
// itself.
func Build(body map[string]any, saliency []string, rationale string) (WhyLog, string, error) {
	hash, err := HashBody(body)
	if err != nil {
		return WhyLog{}, "", err
	}

	if saliency == nil {
		saliency = []string{}
	}
	wl := WhyLog{Hash: hash, Saliency: saliency, Rationale: rationale}

	body[bodyKey] = map[string]any{
		"hash":      wl.Hash,
		"saliency":  wl.Saliency,
		"rationale": wl.Rationale,
	}
	final, err := json.Marshal(body)
	if err != nil {
		return WhyLog{}, "", status.Internal("whylog_serialize", err)
	}
	return wl, string(final), nil
}

// Verify recomputes the hash of a serialized prediction body after
// stripping the whylog field and compares it with the stored hash. It
// returns false for bodies that do not carry a well-formed whylog field.
func Verify(serialized string) (bool, error) {
	var body map[string]any
	if err := json.Unmarshal([]byte(serialized), &body); err != nil {
		return false, status.Invalid("prediction_body_malformed")
	}

	field, ok := body[bodyKey].(map[string]any)
	if !ok {
		return false, nil
	}
	stored, ok := field["hash"].(string)
	if !ok {
		return false, nil
	}

	delete(body, bodyKey)
	recomputed, err := HashBody(body)
	if err != nil {
		return false, err
	}
	return recomputed == stored, nil
}
