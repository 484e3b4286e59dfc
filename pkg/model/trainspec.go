package model

import (
	"encoding/json"

	"deltaml/delta/pkg/status"
)

// Default differential-privacy values applied when the config omits the
// section or individual fields. The defaults sit exactly on the policy
// bounds so an empty config passes the DP gate when enabled.
const (
	DefaultEpsilon         = 3.0
	DefaultDelta           = 1e-5
	DefaultClip            = 1.0
	DefaultNoiseMultiplier = 1.0
)

// TrainSpec is a training request decoded from raw config JSON. Derived
// once at parse time and never mutated afterwards.
type TrainSpec struct {
	// Raw is the config JSON exactly as received; it participates in
	// model-id derivation so byte-identical configs map to the same id.
	Raw string

	// Kind is the requested model kind.
	Kind Kind

	// DP is the differential-privacy section with defaults applied.
	DP DifferentialPrivacy

	// Fairness is the fairness report, nil when the section is absent.
	// The policy gate treats absence as a denial, not a skipped check.
	Fairness *FairnessReport
}

// trainConfigJSON is the wire shape of a training config. The dp section is
// kept raw so field defaults can be pre-seeded before decoding.
type trainConfigJSON struct {
	ModelKind string          `json:"model_kind"`
	DP        json.RawMessage `json:"dp"`
	Fairness  *FairnessReport `json:"fairness"`
}

// ParseTrainSpec decodes raw training-config JSON into a TrainSpec.
// Malformed JSON is an InvalidInput failure; missing sections fall back to
// defaults (logistic kind, DP disabled with on-bound budget, no fairness
// report).
func ParseTrainSpec(raw string) (TrainSpec, error) {
	var cfg trainConfigJSON
	if err := json.Unmarshal([]byte(raw), &cfg); err != nil {
		return TrainSpec{}, status.Invalid("train_config_malformed")
	}

	dp := DifferentialPrivacy{
		Epsilon:         DefaultEpsilon,
		Delta:           DefaultDelta,
		Clip:            DefaultClip,
		NoiseMultiplier: DefaultNoiseMultiplier,
	}
	if len(cfg.DP) > 0 {
		// Decoding over the pre-seeded struct keeps defaults for any
		// field the section leaves out.
		if err := json.Unmarshal(cfg.DP, &dp); err != nil {
			return TrainSpec{}, status.Invalid("train_config_dp_malformed")
		}
	}

	return TrainSpec{
		Raw:      raw,
		Kind:     KindFromConfig(cfg.ModelKind),
		DP:       dp,
		Fairness: cfg.Fairness,
	}, nil
}
