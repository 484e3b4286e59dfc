package serving

import (
	"context"
	"encoding/json"
	"time"

	"deltaml/delta/pkg/dataset"
	"deltaml/delta/pkg/metadata"
	"deltaml/delta/pkg/model"
	"deltaml/delta/pkg/policy"
	"deltaml/delta/pkg/status"
)

// Ingest reads the dataset file at path, persists its metadata record and
// returns it. The file contents determine the dataset id, so re-ingesting
// identical data converges on one record.
func (s *Service) Ingest(ctx context.Context, path, schemaJSON string) (dataset.Dataset, error) {
	ds, err := dataset.Ingest(path, schemaJSON)
	if err != nil {
		return dataset.Dataset{}, err
	}
	if err := s.meta.SaveDataset(ctx, ds); err != nil {
		return dataset.Dataset{}, err
	}
	s.logger.Info("dataset ingested",
		"dataset_id", ds.ID.String(),
		"rows", ds.Rows,
	)
	return ds, nil
}

// Train parses the training config, runs the governance gates, and
// registers a new model version. Both gates must pass before anything is
// stored; a denial leaves the registry untouched.
func (s *Service) Train(ctx context.Context, datasetID model.DatasetID, configJSON string) (model.Version, error) {
	spec, err := model.ParseTrainSpec(configJSON)
	if err != nil {
		s.metrics.RecordTraining("unknown", status.CodeOf(err).String())
		return model.Version{}, err
	}

	if err := policy.CheckTrainSpec(spec); err != nil {
		s.metrics.RecordPolicyDenial(status.ReasonOf(err))
		s.metrics.RecordTraining(spec.Kind.Label(), status.CodeOf(err).String())
		s.logger.Info("training denied by policy gate",
			"dataset_id", datasetID.String(),
			"kind", spec.Kind.Label(),
			"reason", status.ReasonOf(err),
		)
		return model.Version{}, err
	}

	id := model.DeriveModelID(datasetID, spec.Raw, spec.Kind)
	version := s.nextVersion()
	v := model.Version{
		ID:           id,
		Version:      version,
		Kind:         spec.Kind,
		ArtifactPath: model.ArtifactPath(id, version),
		Metadata: model.Metadata{
			DP:       spec.DP,
			Fairness: spec.Fairness,
		},
	}

	// Persist first: a version the registry serves but the store lost
	// would vanish on restart.
	if err := s.meta.SaveVersion(ctx, v); err != nil {
		s.metrics.RecordTraining(spec.Kind.Label(), status.CodeOf(err).String())
		return model.Version{}, err
	}
	s.registry.Insert(v)

	s.metrics.RecordTraining(spec.Kind.Label(), status.CodeOK.String())
	s.logger.Info("model version registered",
		"model_id", id.String(),
		"version", version.String(),
		"kind", spec.Kind.Label(),
	)
	return v.Clone(), nil
}

// Activate selects the model version that serves subsequent inference.
// An empty or "latest" version name resolves through the latest pointer.
func (s *Service) Activate(ctx context.Context, id model.ModelID, version model.VersionName) (model.Version, error) {
	var (
		v   model.Version
		err error
	)
	if version == "" || version == "latest" {
		v, err = s.registry.Latest(id)
	} else {
		v, err = s.registry.Get(id, version)
	}
	if err != nil {
		return model.Version{}, err
	}

	s.slot.Activate(v)
	act := metadata.Activation{
		ModelID:     v.ID,
		Version:     v.Version,
		ActivatedAt: time.Now().UTC(),
	}
	if err := s.meta.SaveActivation(ctx, act); err != nil {
		// The slot already serves the new model; losing the persisted
		// pointer only affects the next process.
		s.logger.Error("failed to persist activation",
			"model_id", v.ID.String(),
			"version", v.Version.String(),
			"error", err,
		)
	}
	s.metrics.SetActiveModel(v.ID.String(), v.Version.String())
	s.logger.Info("model activated",
		"model_id", v.ID.String(),
		"version", v.Version.String(),
	)
	return v, nil
}

// Active returns the currently serving model version, if any.
func (s *Service) Active() (model.Version, bool) {
	return s.slot.Snapshot()
}

// modelCard is the wire shape of an exported model card.
type modelCard struct {
	ModelID  string                    `json:"model_id"`
	Version  string                    `json:"version"`
	Kind     string                    `json:"kind"`
	Artifact string                    `json:"artifact"`
	DP       model.DifferentialPrivacy `json:"dp"`
	Fairness *model.FairnessReport     `json:"fairness"`
}

// ExportModelCard renders the governance card of the latest version of the
// model as JSON.
func (s *Service) ExportModelCard(id model.ModelID) (string, error) {
	v, err := s.registry.Latest(id)
	if err != nil {
		return "", err
	}

	card := modelCard{
		ModelID:  v.ID.String(),
		Version:  v.Version.String(),
		Kind:     v.Kind.Label(),
		Artifact: v.ArtifactPath,
		DP:       v.Metadata.DP,
		Fairness: v.Metadata.Fairness,
	}
	body, err := json.Marshal(card)
	if err != nil {
		return "", status.Internal("model_card_serialize", err)
	}
	return string(body), nil
}

// ExportDatasheet renders the datasheet of an ingested dataset as JSON.
func (s *Service) ExportDatasheet(ctx context.Context, id model.DatasetID) (string, error) {
	ds, err := s.meta.GetDataset(ctx, id)
	if err != nil {
		return "", err
	}
	if ds == nil {
		return "", status.NotFound("dataset")
	}

	body, err := json.Marshal(ds.Sheet(s.retentionDays))
	if err != nil {
		return "", status.Internal("datasheet_serialize", err)
	}
	return string(body), nil
}
