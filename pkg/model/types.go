package model

// DatasetID is an opaque handle to an ingested dataset.
type DatasetID string

// String returns the raw identifier.
func (d DatasetID) String() string { return string(d) }

// ModelID is an opaque handle to a model family instance. It is derived
// deterministically from (dataset, config, kind); see DeriveModelID.
type ModelID string

// String returns the raw identifier.
func (m ModelID) String() string { return string(m) }

// VersionName is a model's version label, "v" followed by a millisecond
// timestamp. Unique per ModelID at insertion time.
type VersionName string

// String returns the raw label.
func (v VersionName) String() string { return string(v) }

// Kind is the closed enumeration of governed model kinds. No dynamic
// extension: exactly these three families are served.
type Kind int

const (
	// KindTabularLogistic is a logistic-regression tabular model.
	KindTabularLogistic Kind = iota

	// KindTabularGradientBoosting is a gradient-boosted tabular model.
	KindTabularGradientBoosting

	// KindTextMiniLM is a compact text embedding model.
	KindTextMiniLM
)

// kindLabels are the stable wire labels used in identifiers, model cards
// and artifact paths. Order matches the Kind constants.
var kindLabels = [...]string{
	KindTabularLogistic:         "tabular-logreg",
	KindTabularGradientBoosting: "tabular-gbdt",
	KindTextMiniLM:              "text-minilm",
}

// Label returns the stable wire label for the kind.
func (k Kind) Label() string {
	if int(k) < 0 || int(k) >= len(kindLabels) {
		return kindLabels[KindTabularLogistic]
	}
	return kindLabels[k]
}

// KindFromLabel resolves a stable wire label back to its Kind. The second
// return is false for unknown labels.
func KindFromLabel(label string) (Kind, bool) {
	for k, l := range kindLabels {
		if l == label {
			return Kind(k), true
		}
	}
	return KindTabularLogistic, false
}

// Family is the coarse model family a request can be routed to.
type Family string

const (
	// FamilyTabular covers both tabular kinds.
	FamilyTabular Family = "tabular"

	// FamilyText covers the text kind.
	FamilyText Family = "text"
)

// Family returns the routing family the kind belongs to.
func (k Kind) Family() Family {
	if k == KindTextMiniLM {
		return FamilyText
	}
	return FamilyTabular
}

// KindFromConfig maps a training-config model_kind value to a Kind.
// Unknown or empty values fall back to the logistic tabular model, which
// is the default family.
func KindFromConfig(value string) Kind {
	switch value {
	case "tabular_gbdt":
		return KindTabularGradientBoosting
	case "text_minilm":
		return KindTextMiniLM
	default:
		return KindTabularLogistic
	}
}

// DifferentialPrivacy is the training privacy budget captured at training
// time. The numeric fields are only meaningful when Enabled is true.
type DifferentialPrivacy struct {
	Enabled         bool    `json:"enabled"`
	Epsilon         float64 `json:"epsilon"`
	Delta           float64 `json:"delta"`
	Clip            float64 `json:"clip"`
	NoiseMultiplier float64 `json:"noise_multiplier"`
}

// FairnessReport holds the observed fairness gaps across protected groups.
// A report is mandatory for training to succeed.
type FairnessReport struct {
	DeltaTPR float64 `json:"delta_tpr"`
	DeltaFPR float64 `json:"delta_fpr"`
	DeltaPPV float64 `json:"delta_ppv"`
}

// Metadata is the governance snapshot attached to a model version. It
// persists unchanged for the lifetime of the version.
type Metadata struct {
	DP       DifferentialPrivacy
	Fairness *FairnessReport
}

// Clone returns a deep copy so registry callers never share the fairness
// pointer with stored records.
func (m Metadata) Clone() Metadata {
	out := m
	if m.Fairness != nil {
		fr := *m.Fairness
		out.Fairness = &fr
	}
	return out
}

// Version is a trained, servable artifact. Immutable after creation and
// uniquely keyed by (ID, Version).
type Version struct {
	ID           ModelID
	Version      VersionName
	Kind         Kind
	ArtifactPath string
	Metadata     Metadata
}

// Clone returns a deep copy of the version.
func (v Version) Clone() Version {
	out := v
	out.Metadata = v.Metadata.Clone()
	return out
}
