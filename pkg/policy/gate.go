package policy

import (
	"deltaml/delta/pkg/model"
	"deltaml/delta/pkg/status"
)

// Hard governance ceilings. These are product commitments, not tunables;
// changing them changes what the platform promises its auditors.
const (
	// MaxEpsilon is the differential-privacy epsilon ceiling.
	MaxEpsilon = 3.0

	// MaxDelta is the differential-privacy delta ceiling.
	MaxDelta = 1e-5

	// MaxDeltaTPR is the largest allowed true-positive-rate gap.
	MaxDeltaTPR = 0.05

	// MaxDeltaFPR is the largest allowed false-positive-rate gap.
	MaxDeltaFPR = 0.03

	// MaxDeltaPPV is the largest allowed precision gap.
	MaxDeltaPPV = 0.04

	// epsilonSlack absorbs float rounding on the epsilon comparison so a
	// config at exactly the ceiling passes.
	epsilonSlack = 1e-9
)

// Denial reason codes.
const (
	ReasonDPEpsilonExceeded     = "dp_epsilon_exceeded"
	ReasonDPDeltaExceeded       = "dp_delta_exceeded"
	ReasonDPClipInvalid         = "dp_clip_invalid"
	ReasonDPNoiseInvalid        = "dp_noise_invalid"
	ReasonFairnessReportMissing = "fairness_report_missing"
	ReasonFairnessTPRExceeded   = "delta_tpr_exceeded"
	ReasonFairnessFPRExceeded   = "delta_fpr_exceeded"
	ReasonFairnessPPVExceeded   = "delta_ppv_exceeded"
)

// CheckDifferentialPrivacy validates the DP section of a training spec.
// A disabled budget skips every check. Enabled budgets must respect the
// epsilon and delta ceilings and carry positive clip and noise values.
func CheckDifferentialPrivacy(dp model.DifferentialPrivacy) error {
	if !dp.Enabled {
		return nil
	}
	if dp.Epsilon > MaxEpsilon+epsilonSlack {
		return status.PolicyDenied(ReasonDPEpsilonExceeded)
	}
	if dp.Delta > MaxDelta {
		return status.PolicyDenied(ReasonDPDeltaExceeded)
	}
	if dp.Clip <= 0 {
		return status.PolicyDenied(ReasonDPClipInvalid)
	}
	if dp.NoiseMultiplier <= 0 {
		return status.PolicyDenied(ReasonDPNoiseInvalid)
	}
	return nil
}

// CheckFairness validates the fairness report of a training spec. Absence
// of the report is itself a denial, not a skipped check. Gaps are checked
// in tpr, fpr, ppv order and the first violation short-circuits.
func CheckFairness(report *model.FairnessReport) error {
	if report == nil {
		return status.PolicyDenied(ReasonFairnessReportMissing)
	}
	if report.DeltaTPR > MaxDeltaTPR {
		return status.PolicyDenied(ReasonFairnessTPRExceeded)
	}
	if report.DeltaFPR > MaxDeltaFPR {
		return status.PolicyDenied(ReasonFairnessFPRExceeded)
	}
	if report.DeltaPPV > MaxDeltaPPV {
		return status.PolicyDenied(ReasonFairnessPPVExceeded)
	}
	return nil
}

// CheckTrainSpec runs both gates in order: differential privacy first,
// then fairness. Both must pass before a version may be registered.
func CheckTrainSpec(spec model.TrainSpec) error {
	if err := CheckDifferentialPrivacy(spec.DP); err != nil {
		return err
	}
	return CheckFairness(spec.Fairness)
}
