package history

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"vesper/internal/config"
)

// Run is one recorded batch invocation.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	Orders     int
	Rendered   int
	Skipped    int
	Failed     int
}

// Job is one recorded per-job outcome.
type Job struct {
	RunID            string
	JobID            string
	Language         string
	Slot             string
	State            string
	Reason           string
	NarrationSeconds float64
	ImageCount       int
	MusicName        string
}

const schema = `
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at TEXT NOT NULL,
    finished_at TEXT NOT NULL,
    orders INTEGER NOT NULL,
    rendered INTEGER NOT NULL,
    skipped INTEGER NOT NULL,
    failed INTEGER NOT NULL
);
CREATE TABLE IF NOT EXISTS jobs (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id TEXT NOT NULL REFERENCES runs(id),
    job_id TEXT NOT NULL,
    language TEXT NOT NULL,
    slot TEXT NOT NULL,
    state TEXT NOT NULL,
    reason TEXT NOT NULL,
    narration_seconds REAL NOT NULL,
    image_count INTEGER NOT NULL,
    music_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_jobs_run ON jobs(run_id);
`

// Store manages run history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}
	dbPath := filepath.Join(cfg.LogDir(), "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: dbPath}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// RecordRun inserts one run and its job rows in a single transaction.
func (s *Store) RecordRun(ctx context.Context, run Run, jobs []Job) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin history transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, finished_at, orders, rendered, skipped, failed)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.StartedAt.UTC().Format(time.RFC3339Nano),
		run.FinishedAt.UTC().Format(time.RFC3339Nano),
		run.Orders, run.Rendered, run.Skipped, run.Failed,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	for _, job := range jobs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO jobs (run_id, job_id, language, slot, state, reason, narration_seconds, image_count, music_name)
             VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			run.ID, job.JobID, job.Language, job.Slot, job.State, job.Reason,
			job.NarrationSeconds, job.ImageCount, job.MusicName,
		)
		if err != nil {
			return fmt.Errorf("insert job %s: %w", job.JobID, err)
		}
	}
	return tx.Commit()
}

// RecentRuns returns the most recent runs, newest first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, finished_at, orders, rendered, skipped, failed
         FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var run Run
		var started, finished string
		if err := rows.Scan(&run.ID, &started, &finished, &run.Orders, &run.Rendered, &run.Skipped, &run.Failed); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt, _ = time.Parse(time.RFC3339Nano, started)
		run.FinishedAt, _ = time.Parse(time.RFC3339Nano, finished)
		out = append(out, run)
	}
	return out, rows.Err()
}

// JobsForRun returns the job rows recorded for one run, insertion order.
func (s *Store) JobsForRun(ctx context.Context, runID string) ([]Job, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT run_id, job_id, language, slot, state, reason, narration_seconds, image_count, music_name
         FROM jobs WHERE run_id = ? ORDER BY id`, runID)
	if err != nil {
		return nil, fmt.Errorf("query jobs: %w", err)
	}
	defer rows.Close()

	var out []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.RunID, &job.JobID, &job.Language, &job.Slot, &job.State, &job.Reason, &job.NarrationSeconds, &job.ImageCount, &job.MusicName); err != nil {
			return nil, fmt.Errorf("scan job: %w", err)
		}
		out = append(out, job)
	}
	return out, rows.Err()
}
