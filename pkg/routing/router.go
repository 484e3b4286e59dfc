package routing

import (
	"unicode/utf8"

	"deltaml/delta/pkg/model"
)

// Target is the model family a request is dispatched to.
type Target string

const (
	// TargetTabular dispatches to the tabular engine.
	TargetTabular Target = "tabular"

	// TargetText dispatches to the text engine.
	TargetText Target = "text"
)

// Reason explains a routing decision. It is informational: nothing after
// the router branches on it except the audit record.
type Reason string

const (
	// ReasonFeatureOverride records that the features_only flag forced a
	// tabular decision.
	ReasonFeatureOverride Reason = "feature_override"

	// ReasonLongText records that the text length threshold selected the
	// text family.
	ReasonLongText Reason = "long_text"

	// ReasonDefaultTabular records the fall-through default.
	ReasonDefaultTabular Reason = "default_tabular"
)

// LongTextThreshold is the character count above which a request routes to
// the text family.
const LongTextThreshold = 256

// Context carries the routing-relevant features of one request, derived
// fresh per call from the payload and the caller's inference context.
type Context struct {
	// FeaturesOnly is true when any of the three signal paths set it.
	FeaturesOnly bool

	// TextLength is the character count of the payload's text field.
	TextLength int
}

// Decision is the router's output.
type Decision struct {
	Target Target
	Reason Reason
}

// BuildContext derives a routing context from a decoded request payload.
// callerFeaturesOnly is the flag supplied explicitly with the inference
// context; the payload may also set it at the top level ("features_only")
// or inside a nested "context" object. Any one of the three suffices.
func BuildContext(payload map[string]any, callerFeaturesOnly bool) Context {
	featuresOnly := callerFeaturesOnly
	if flag, ok := payload["features_only"].(bool); ok && flag {
		featuresOnly = true
	}
	if nested, ok := payload["context"].(map[string]any); ok {
		if flag, ok := nested["features_only"].(bool); ok && flag {
			featuresOnly = true
		}
	}

	textLength := 0
	if text, ok := payload["text"].(string); ok {
		textLength = utf8.RuneCountInString(text)
	}

	return Context{FeaturesOnly: featuresOnly, TextLength: textLength}
}

// Router is the deterministic decision capability. The closed set of
// implementations is DefaultRouter; the interface exists so tests can
// substitute fixed decisions.
type Router interface {
	Decide(rc Context) Decision
}

// DefaultRouter is the production router: the three-step ordered state
// machine described in the package documentation.
type DefaultRouter struct{}

// Decide classifies a request into a target family with a reason code.
func (DefaultRouter) Decide(rc Context) Decision {
	if rc.FeaturesOnly {
		return Decision{Target: TargetTabular, Reason: ReasonFeatureOverride}
	}
	if rc.TextLength > LongTextThreshold {
		return Decision{Target: TargetText, Reason: ReasonLongText}
	}
	return Decision{Target: TargetTabular, Reason: ReasonDefaultTabular}
}

// FamilyTarget maps a model family to its routing target.
func FamilyTarget(f model.Family) Target {
	if f == model.FamilyText {
		return TargetText
	}
	return TargetTabular
}

// Reconcile compares a decision against the active model's family. On
// disagreement the target is downgraded to tabular; the original reason is
// retained in the returned decision.
func Reconcile(d Decision, active model.Family) Decision {
	if d.Target != FamilyTarget(active) {
		return Decision{Target: TargetTabular, Reason: d.Reason}
	}
	return d
}
