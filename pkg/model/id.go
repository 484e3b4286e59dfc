package model

import (
	"fmt"

	"deltaml/delta/pkg/ident"
)

// DeriveModelID computes the deterministic identifier for a model family
// instance from the dataset, the raw training config and the requested
// kind. The same triple always yields the same id, so identical training
// requests converge on one model family.
func DeriveModelID(dataset DatasetID, rawConfig string, kind Kind) ModelID {
	h := ident.New()
	h.UpdateString(dataset.String())
	h.UpdateString(rawConfig)
	h.UpdateString(kind.Label())
	return ModelID(fmt.Sprintf("%s-%s", kind.Label(), h.Hex8()))
}

// ArtifactPath returns the canonical artifact location for a model version.
func ArtifactPath(id ModelID, version VersionName) string {
	return fmt.Sprintf("models/%s/%s/model.bin", id, version)
}
