package metadata

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"deltaml/delta/pkg/dataset"
	"deltaml/delta/pkg/model"
	"deltaml/delta/pkg/status"
)

// SQLiteStore implements Store on a SQLite database file. Suitable for
// single-instance deployments where metadata must survive restarts.
//
// The store opens the database in WAL mode with a busy timeout, and keeps
// a single writer connection per SQLite's locking model.
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex

	closeOnce sync.Once
}

// SQLiteStoreConfig configures the SQLite metadata store.
type SQLiteStoreConfig struct {
	// DBPath is the path to the SQLite database file.
	DBPath string

	// BusyTimeout is how long to wait for locks before failing.
	// Default: 5 seconds
	BusyTimeout time.Duration
}

// NewSQLiteStore opens a metadata store with default settings.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	return NewSQLiteStoreWithConfig(SQLiteStoreConfig{DBPath: dbPath})
}

// NewSQLiteStoreWithConfig opens a metadata store with custom configuration.
func NewSQLiteStoreWithConfig(cfg SQLiteStoreConfig) (*SQLiteStore, error) {
	if cfg.DBPath == "" {
		return nil, status.Invalid("metadata_db_path_empty")
	}
	if cfg.BusyTimeout == 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_busy_timeout=%d",
		cfg.DBPath, int(cfg.BusyTimeout.Milliseconds()))

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, status.IO("metadata_open", err)
	}

	// SQLite only supports a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, status.IO("metadata_schema", err)
	}
	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS datasets (
		id TEXT PRIMARY KEY,
		schema_json TEXT NOT NULL,
		rows INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);

	CREATE TABLE IF NOT EXISTS model_versions (
		model_id TEXT NOT NULL,
		version TEXT NOT NULL,
		kind TEXT NOT NULL,
		artifact_path TEXT NOT NULL,
		metadata_json TEXT NOT NULL,
		inserted_at INTEGER NOT NULL,
		PRIMARY KEY (model_id, version)
	);

	CREATE TABLE IF NOT EXISTS activations (
		slot INTEGER PRIMARY KEY CHECK (slot = 0),
		model_id TEXT NOT NULL,
		version TEXT NOT NULL,
		activated_at INTEGER NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_datasets_created ON datasets(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// SaveDataset upserts a dataset record keyed by its id.
func (s *SQLiteStore) SaveDataset(ctx context.Context, ds dataset.Dataset) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO datasets (id, schema_json, rows, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (id) DO UPDATE SET
			schema_json = excluded.schema_json,
			rows = excluded.rows
	`, ds.ID.String(), ds.SchemaJSON, ds.Rows, ds.CreatedAt.UnixMilli())
	if err != nil {
		return status.IO("metadata_save_dataset", err)
	}
	return nil
}

// GetDataset returns the dataset record for the id, or nil when absent.
func (s *SQLiteStore) GetDataset(ctx context.Context, id model.DatasetID) (*dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		schema    string
		count     int64
		createdMS int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT schema_json, rows, created_at FROM datasets WHERE id = ?`,
		id.String(),
	).Scan(&schema, &count, &createdMS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, status.IO("metadata_get_dataset", err)
	}

	return &dataset.Dataset{
		ID:         id,
		SchemaJSON: schema,
		Rows:       count,
		CreatedAt:  time.UnixMilli(createdMS),
	}, nil
}

// ListDatasets returns all dataset records, oldest first.
func (s *SQLiteStore) ListDatasets(ctx context.Context) ([]dataset.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, schema_json, rows, created_at
		FROM datasets
		ORDER BY created_at ASC, id ASC
	`)
	if err != nil {
		return nil, status.IO("metadata_list_datasets", err)
	}
	defer rows.Close()

	var out []dataset.Dataset
	for rows.Next() {
		var (
			id        string
			schema    string
			count     int64
			createdMS int64
		)
		if err := rows.Scan(&id, &schema, &count, &createdMS); err != nil {
			return nil, status.IO("metadata_scan_dataset", err)
		}
		out = append(out, dataset.Dataset{
			ID:         model.DatasetID(id),
			SchemaJSON: schema,
			Rows:       count,
			CreatedAt:  time.UnixMilli(createdMS),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, status.IO("metadata_list_datasets", err)
	}
	return out, nil
}

// PruneDatasetsBefore removes dataset records created before the cutoff.
func (s *SQLiteStore) PruneDatasetsBefore(ctx context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`DELETE FROM datasets WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, status.IO("metadata_prune_datasets", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, status.IO("metadata_prune_datasets", err)
	}
	return int(removed), nil
}

// SaveVersion persists a trained model version.
func (s *SQLiteStore) SaveVersion(ctx context.Context, v model.Version) error {
	meta, err := json.Marshal(versionMetaJSON{
		DP:       v.Metadata.DP,
		Fairness: v.Metadata.Fairness,
	})
	if err != nil {
		return status.Internal("metadata_encode_version", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO model_versions (model_id, version, kind, artifact_path, metadata_json, inserted_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (model_id, version) DO UPDATE SET
			kind = excluded.kind,
			artifact_path = excluded.artifact_path,
			metadata_json = excluded.metadata_json
	`, v.ID.String(), v.Version.String(), v.Kind.Label(), v.ArtifactPath,
		string(meta), time.Now().UnixMilli())
	if err != nil {
		return status.IO("metadata_save_version", err)
	}
	return nil
}

// ListVersions returns all persisted versions in insertion order.
func (s *SQLiteStore) ListVersions(ctx context.Context) ([]model.Version, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT model_id, version, kind, artifact_path, metadata_json
		FROM model_versions
		ORDER BY inserted_at ASC, model_id ASC, version ASC
	`)
	if err != nil {
		return nil, status.IO("metadata_list_versions", err)
	}
	defer rows.Close()

	var out []model.Version
	for rows.Next() {
		var (
			id       string
			version  string
			kind     string
			artifact string
			metaJSON string
		)
		if err := rows.Scan(&id, &version, &kind, &artifact, &metaJSON); err != nil {
			return nil, status.IO("metadata_scan_version", err)
		}

		var meta versionMetaJSON
		if err := json.Unmarshal([]byte(metaJSON), &meta); err != nil {
			return nil, status.Internal("metadata_decode_version", err)
		}
		k, ok := model.KindFromLabel(kind)
		if !ok {
			return nil, status.Internal("metadata_unknown_kind", fmt.Errorf("kind %q", kind))
		}

		out = append(out, model.Version{
			ID:           model.ModelID(id),
			Version:      model.VersionName(version),
			Kind:         k,
			ArtifactPath: artifact,
			Metadata: model.Metadata{
				DP:       meta.DP,
				Fairness: meta.Fairness,
			},
		})
	}
	if err := rows.Err(); err != nil {
		return nil, status.IO("metadata_list_versions", err)
	}
	return out, nil
}

// SaveActivation records the serving selection, replacing any prior one.
func (s *SQLiteStore) SaveActivation(ctx context.Context, act Activation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO activations (slot, model_id, version, activated_at)
		VALUES (0, ?, ?, ?)
		ON CONFLICT (slot) DO UPDATE SET
			model_id = excluded.model_id,
			version = excluded.version,
			activated_at = excluded.activated_at
	`, act.ModelID.String(), act.Version.String(), act.ActivatedAt.UnixMilli())
	if err != nil {
		return status.IO("metadata_save_activation", err)
	}
	return nil
}

// Activation returns the recorded serving selection, or nil when unset.
func (s *SQLiteStore) Activation(ctx context.Context) (*Activation, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var (
		id          string
		version     string
		activatedMS int64
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT model_id, version, activated_at FROM activations WHERE slot = 0`,
	).Scan(&id, &version, &activatedMS)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, status.IO("metadata_load_activation", err)
	}

	return &Activation{
		ModelID:     model.ModelID(id),
		Version:     model.VersionName(version),
		ActivatedAt: time.UnixMilli(activatedMS),
	}, nil
}

// Close releases the underlying database. Safe to call multiple times.
func (s *SQLiteStore) Close() error {
	var closeErr error
	s.closeOnce.Do(func() {
		if s.db != nil {
			_, _ = s.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)")
			closeErr = s.db.Close()
		}
	})
	return closeErr
}

type versionMetaJSON struct {
	DP       model.DifferentialPrivacy `json:"dp"`
	Fairness *model.FairnessReport     `json:"fairness,omitempty"`
}
