package serving

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"deltaml/delta/pkg/audit"
	"deltaml/delta/pkg/engine"
	"deltaml/delta/pkg/model"
	"deltaml/delta/pkg/routing"
	"deltaml/delta/pkg/status"
	"deltaml/delta/pkg/telemetry/logging"
)

// InferRequest is one scoring request with its consent context.
type InferRequest struct {
	// PurposeID and SubjectID identify the consented processing context.
	PurposeID string
	SubjectID string

	// FeaturesOnly asserts the input carries no free text worth routing
	// on. The payload can also set the same flag; either one counts.
	FeaturesOnly bool

	// InputJSON is the input object exactly as received.
	InputJSON string
}

// Prediction is the packaged outcome of a successful inference.
type Prediction struct {
	// RequestID is the unique id assigned to this request.
	RequestID string

	// JSON is the serialized prediction body, whylog field included.
	JSON string

	// WhyLog is the audit record embedded in JSON.
	WhyLog audit.WhyLog

	// Target and Reason are the reconciled routing outcome.
	Target routing.Target
	Reason routing.Reason

	// FellBack is true when the tabular engine answered a text-routed
	// request.
	FellBack bool

	// Confidence is the serving engine's calibrated confidence.
	Confidence float64

	// LatencyMS is the wall-clock serving time in milliseconds.
	LatencyMS int64
}

// Infer runs the full serving path: consent gate, active-model snapshot,
// routing, engine dispatch, WhyLog packaging and audit append. The audit
// append is best effort; every other step failing fails the request.
func (s *Service) Infer(ctx context.Context, req InferRequest) (Prediction, error) {
	start := time.Now()
	requestID := uuid.NewString()
	ctx = logging.WithRequestID(ctx, requestID)
	ctx = logging.WithPurpose(ctx, req.PurposeID)

	fail := func(target routing.Target, reason routing.Reason, err error) (Prediction, error) {
		s.metrics.RecordInference(string(target), string(reason), status.CodeOf(err).String(), time.Since(start))
		return Prediction{}, err
	}
	// Failures before the router has run carry no routing outcome.
	failEarly := func(err error) (Prediction, error) {
		return fail("none", "none", err)
	}

	granted, err := s.consent.IsGranted(ctx, req.PurposeID, req.SubjectID)
	if err != nil {
		s.metrics.RecordConsentDenial()
		s.logger.WarnContext(ctx, "consent store failed", "error", err)
		return failEarly(status.NoConsent(err))
	}
	if !granted {
		s.metrics.RecordConsentDenial()
		s.logger.InfoContext(ctx, "consent denied", "subject_id", req.SubjectID)
		return failEarly(status.NoConsent())
	}

	active, ok := s.slot.Snapshot()
	if !ok {
		return failEarly(status.ModelMissing("no_active_model"))
	}
	ctx = logging.WithModel(ctx, active.ID.String())

	var payload map[string]any
	if err := json.Unmarshal([]byte(req.InputJSON), &payload); err != nil {
		return failEarly(status.Invalid("input_malformed"))
	}

	decision := s.router.Decide(routing.BuildContext(payload, req.FeaturesOnly))
	decision = routing.Reconcile(decision, active.Kind.Family())

	result, err := s.engines.Dispatch(decision.Target, engine.Request{
		Model:   active,
		Payload: payload,
		Raw:     req.InputJSON,
	})
	if err != nil {
		return fail(decision.Target, decision.Reason, err)
	}
	if result.FellBack {
		s.metrics.RecordFallback()
	}

	body := make(map[string]any, len(result.Response.Fields)+6)
	for k, v := range result.Response.Fields {
		body[k] = v
	}
	body["model_id"] = active.ID.String()
	body["version"] = active.Version.String()
	body["target"] = string(result.Target)
	body["reason"] = string(decision.Reason)
	body["confidence"] = result.Response.Confidence
	body["request_id"] = requestID

	wl, serialized, err := audit.Build(body, result.Response.Saliency, result.Response.Rationale)
	if err != nil {
		return fail(result.Target, decision.Reason, err)
	}

	elapsed := time.Since(start)
	pred := Prediction{
		RequestID:  requestID,
		JSON:       serialized,
		WhyLog:     wl,
		Target:     result.Target,
		Reason:     decision.Reason,
		FellBack:   result.FellBack,
		Confidence: result.Response.Confidence,
		LatencyMS:  elapsed.Milliseconds(),
	}

	s.appendAudit(ctx, req, pred, active)
	s.metrics.RecordInference(string(pred.Target), string(pred.Reason), status.CodeOK.String(), elapsed)
	s.logger.InfoContext(ctx, "prediction served",
		"target", string(pred.Target),
		"reason", string(pred.Reason),
		"fell_back", pred.FellBack,
		"latency_ms", pred.LatencyMS,
	)
	return pred, nil
}

// InferAsync runs Infer on the worker pool and delivers the outcome to the
// callback from a pool goroutine. The callback must not block the pool for
// long.
func (s *Service) InferAsync(ctx context.Context, req InferRequest, done func(Prediction, error)) {
	s.pool.Submit(func() {
		done(s.Infer(ctx, req))
	})
}

// appendAudit stores the audit record for a served prediction. Audit
// failures never fail the prediction that produced them.
func (s *Service) appendAudit(ctx context.Context, req InferRequest, pred Prediction, active model.Version) {
	if !s.auditEnabled {
		return
	}
	rec := audit.Record{
		ID:         pred.RequestID,
		CreatedAt:  time.Now().UTC(),
		PurposeID:  req.PurposeID,
		SubjectID:  req.SubjectID,
		ModelID:    active.ID.String(),
		Version:    active.Version.String(),
		Target:     string(pred.Target),
		Reason:     string(pred.Reason),
		FellBack:   pred.FellBack,
		Hash:       pred.WhyLog.Hash,
		Confidence: pred.Confidence,
		LatencyMS:  pred.LatencyMS,
	}
	if err := s.auditStore.Append(ctx, rec); err != nil {
		s.logger.WarnContext(ctx, "audit append failed", "error", err)
	}
}
