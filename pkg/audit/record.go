package audit

import (
	"time"
)

// Record is the persisted audit-trail entry for one prediction. It carries
// the routing and governance metadata an auditor needs to reconstruct why
// a request was answered the way it was.
type Record struct {
	// ID is the unique id assigned to the inference request.
	ID string

	// CreatedAt is when the prediction was produced.
	CreatedAt time.Time

	// PurposeID and SubjectID identify the consented context.
	PurposeID string
	SubjectID string

	// ModelID and Version identify the serving model.
	ModelID string
	Version string

	// Target and Reason are the reconciled routing outcome; FellBack
	// records an engine degradation from text to tabular.
	Target   string
	Reason   string
	FellBack bool

	// Hash is the WhyLog hash of the prediction body.
	Hash string

	// Confidence and LatencyMS mirror the prediction's reported values.
	Confidence float64
	LatencyMS  int64
}
