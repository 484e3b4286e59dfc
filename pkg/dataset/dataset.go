package dataset

import (
	"time"

	"deltaml/delta/pkg/model"
)

// Dataset is the metadata record for an ingested dataset. Immutable once
// created.
type Dataset struct {
	ID         model.DatasetID
	SchemaJSON string
	CreatedAt  time.Time
	Rows       int64
}

// DefaultRetentionDays is the retention policy reported on datasheets and
// enforced by the retention pruner when the configuration does not
// override it.
const DefaultRetentionDays = 30

// Datasheet is the machine-readable governance summary of a dataset.
type Datasheet struct {
	DatasetID     string `json:"dataset_id"`
	Schema        string `json:"schema"`
	RetentionDays int    `json:"retention_days"`
	CreatedMS     int64  `json:"created_ms"`
	Rows          int64  `json:"rows"`
}

// Sheet renders the dataset's datasheet with the given retention policy;
// zero or negative selects the default.
func (d Dataset) Sheet(retentionDays int) Datasheet {
	if retentionDays <= 0 {
		retentionDays = DefaultRetentionDays
	}
	schema := "inline"
	if d.SchemaJSON == "" || d.SchemaJSON == "{}" {
		schema = "none"
	}
	return Datasheet{
		DatasetID:     d.ID.String(),
		Schema:        schema,
		RetentionDays: retentionDays,
		CreatedMS:     d.CreatedAt.UnixMilli(),
		Rows:          d.Rows,
	}
}
