package export

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"jsonbench/internal/runner"
)

const schema = `
CREATE TABLE IF NOT EXISTS results (
	run_id            TEXT    NOT NULL,
	recorded_at       TEXT    NOT NULL,
	library           TEXT    NOT NULL,
	file              TEXT    NOT NULL,
	file_size         INTEGER NOT NULL,
	parse_time_ms     REAL    NOT NULL,
	serialize_time_ms REAL    NOT NULL,
	throughput_mb_s   REAL    NOT NULL,
	parse_p50_ms      REAL    NOT NULL,
	parse_p99_ms      REAL    NOT NULL,
	iterations        INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS results_run ON results (run_id);
`

// SQLiteSink appends results to a SQLite database so runs can be compared
// with plain SQL.
type SQLiteSink struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(path string) (*SQLiteSink, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create results dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &SQLiteSink{db: db}, nil
}

func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Write inserts every measured result under runID in one transaction.
func (s *SQLiteSink) Write(ctx context.Context, runID string, at time.Time, results []runner.Result) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO results
		(run_id, recorded_at, library, file, file_size, parse_time_ms, serialize_time_ms,
		 throughput_mb_s, parse_p50_ms, parse_p99_ms, iterations)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	stamp := at.UTC().Format(time.RFC3339Nano)
	for _, r := range results {
		if !r.Measured() {
			continue
		}
		if _, err := stmt.ExecContext(ctx, runID, stamp, r.Library, r.File, r.FileSizeBytes,
			r.ParseTimeMs, r.SerializeTimeMs, r.ThroughputMBs, r.ParseP50Ms, r.ParseP99Ms, r.Iterations); err != nil {
			return fmt.Errorf("insert %s/%s: %w", r.Library, r.File, err)
		}
	}
	return tx.Commit()
}

// Results returns the rows stored for runID in insertion order.
func (s *SQLiteSink) Results(ctx context.Context, runID string) ([]runner.Result, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT library, file, file_size, parse_time_ms,
		serialize_time_ms, throughput_mb_s, parse_p50_ms, parse_p99_ms, iterations
		FROM results WHERE run_id = ? ORDER BY rowid`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []runner.Result
	for rows.Next() {
		var r runner.Result
		if err := rows.Scan(&r.Library, &r.File, &r.FileSizeBytes, &r.ParseTimeMs,
			&r.SerializeTimeMs, &r.ThroughputMBs, &r.ParseP50Ms, &r.ParseP99Ms, &r.Iterations); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
