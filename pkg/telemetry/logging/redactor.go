package logging

import (
	"fmt"

	"deltaml/delta/pkg/ident"
)

// Redactor rewrites data-subject identifiers in log fields so raw ids
// never reach log sinks. The replacement is a stable digest token, which
// keeps log lines correlatable per subject.
type Redactor struct {
	keys map[string]struct{}
}

// redactedKeys are the field names whose values carry subject identity.
var redactedKeys = []string{"subject_id", "subject"}

// NewRedactor creates a redactor covering the default subject fields.
func NewRedactor() *Redactor {
	keys := make(map[string]struct{}, len(redactedKeys))
	for _, k := range redactedKeys {
		keys[k] = struct{}{}
	}
	return &Redactor{keys: keys}
}

// RedactArgs rewrites values of redacted keys in alternating key/value
// log args. Non-string keys and trailing unpaired args pass through.
func (r *Redactor) RedactArgs(args ...any) []any {
	out := make([]any, len(args))
	copy(out, args)

	for i := 0; i+1 < len(out); i += 2 {
		key, ok := out[i].(string)
		if !ok {
			continue
		}
		if _, redact := r.keys[key]; redact {
			out[i+1] = r.Token(fmt.Sprint(out[i+1]))
		}
	}
	return out
}

// Token returns the stable redaction token for a subject identifier.
func (r *Redactor) Token(value string) string {
	h := ident.New()
	h.UpdateString(value)
	return "subj-" + h.Hex8()
}
