package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"deltaml/delta/pkg/audit"
	"deltaml/delta/pkg/status"
)

// SQLiteConfig configures the SQLite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	Path string

	// MaxOpenConns caps open connections. Default: 10.
	MaxOpenConns int

	// BusyTimeout is how long a writer waits on a locked database.
	// Default: 5s.
	BusyTimeout time.Duration
}

// DefaultSQLiteConfig returns the default SQLite configuration.
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path:         "data/audit.db",
		MaxOpenConns: 10,
		BusyTimeout:  5 * time.Second,
	}
}

const auditSchema = `
CREATE TABLE IF NOT EXISTS audit_records (
	id          TEXT PRIMARY KEY,
	created_at  INTEGER NOT NULL,
	purpose_id  TEXT NOT NULL,
	subject_id  TEXT NOT NULL,
	model_id    TEXT NOT NULL,
	version     TEXT NOT NULL,
	target      TEXT NOT NULL,
	reason      TEXT NOT NULL,
	fell_back   INTEGER NOT NULL,
	hash        TEXT NOT NULL,
	confidence  REAL NOT NULL,
	latency_ms  INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_audit_created_at ON audit_records(created_at);
CREATE INDEX IF NOT EXISTS idx_audit_model ON audit_records(model_id, version);
`

// SQLite persists audit records in a SQLite database with WAL mode enabled
// for concurrent writers.
type SQLite struct {
	db  *sql.DB
	cfg SQLiteConfig
}

// NewSQLite opens (and if needed initializes) the audit database.
func NewSQLite(cfg SQLiteConfig) (*SQLite, error) {
	if cfg.Path == "" {
		cfg = DefaultSQLiteConfig()
	}
	if cfg.MaxOpenConns <= 0 {
		cfg.MaxOpenConns = 10
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf("%s?_busy_timeout=%d&_journal_mode=WAL", cfg.Path, cfg.BusyTimeout.Milliseconds())
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, status.IO("audit_db_open", err)
	}
	db.SetMaxOpenConns(cfg.MaxOpenConns)

	if _, err := db.Exec(auditSchema); err != nil {
		db.Close()
		return nil, status.IO("audit_db_schema", err)
	}

	return &SQLite{db: db, cfg: cfg}, nil
}

// Append implements Backend.
func (s *SQLite) Append(ctx context.Context, rec audit.Record) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_records
			(id, created_at, purpose_id, subject_id, model_id, version,
			 target, reason, fell_back, hash, confidence, latency_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.CreatedAt.UnixMilli(), rec.PurposeID, rec.SubjectID,
		rec.ModelID, rec.Version, rec.Target, rec.Reason,
		boolToInt(rec.FellBack), rec.Hash, rec.Confidence, rec.LatencyMS,
	)
	if err != nil {
		return status.IO("audit_append", err)
	}
	return nil
}

// List implements Backend.
func (s *SQLite) List(ctx context.Context, limit int) ([]audit.Record, error) {
	query := `
		SELECT id, created_at, purpose_id, subject_id, model_id, version,
		       target, reason, fell_back, hash, confidence, latency_ms
		FROM audit_records ORDER BY created_at DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, status.IO("audit_list", err)
	}
	defer rows.Close()

	var out []audit.Record
	for rows.Next() {
		var rec audit.Record
		var createdMS int64
		var fellBack int
		if err := rows.Scan(&rec.ID, &createdMS, &rec.PurposeID, &rec.SubjectID,
			&rec.ModelID, &rec.Version, &rec.Target, &rec.Reason,
			&fellBack, &rec.Hash, &rec.Confidence, &rec.LatencyMS); err != nil {
			return nil, status.IO("audit_scan", err)
		}
		rec.CreatedAt = time.UnixMilli(createdMS)
		rec.FellBack = fellBack != 0
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, status.IO("audit_rows", err)
	}
	return out, nil
}

// PruneBefore implements Backend.
func (s *SQLite) PruneBefore(ctx context.Context, cutoff time.Time) (int, error) {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM audit_records WHERE created_at < ?`, cutoff.UnixMilli())
	if err != nil {
		return 0, status.IO("audit_prune", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, status.IO("audit_prune_count", err)
	}
	return int(n), nil
}

// Close implements Backend.
func (s *SQLite) Close() error {
	return s.db.Close()
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
