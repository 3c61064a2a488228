// Package jobstore tracks submitted analysis jobs in Postgres for the
// optional HTTP server. It stores job metadata only — status, submission
// time, output paths — never the in-memory Plan, Graph, or MetricsTable
// values those jobs computed, which stay per-job and are discarded once
// the job's run finishes.
package jobstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Status string

const (
	StatusQueued    Status = "queued"
	StatusRunning   Status = "running"
	StatusSucceeded Status = "succeeded"
	StatusFailed    Status = "failed"
)

// Job is one submitted analysis run's metadata row.
type Job struct {
	ID          string
	Status      Status
	SubmittedAt time.Time
	FinishedAt  *time.Time
	MetricsPath string
	ReportPath  string
	Error       string
}

const schema = `
CREATE TABLE IF NOT EXISTS jobs (
	id           TEXT PRIMARY KEY,
	status       TEXT NOT NULL,
	submitted_at TIMESTAMPTZ NOT NULL,
	finished_at  TIMESTAMPTZ,
	metrics_path TEXT,
	report_path  TEXT,
	error        TEXT
);`

// Store wraps a pgx connection pool over the jobs table.
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to databaseURL and ensures the jobs table exists.
func Open(ctx context.Context, databaseURL string) (*Store, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	if _, err := pool.Exec(ctx, schema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return &Store{pool: pool}, nil
}

// Create inserts a new queued job row.
func (s *Store) Create(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO jobs(id, status, submitted_at) VALUES ($1, $2, $3)`,
		id, StatusQueued, time.Now())
	return err
}

// SetRunning marks a job as running.
func (s *Store) SetRunning(ctx context.Context, id string) error {
	_, err := s.pool.Exec(ctx, `UPDATE jobs SET status = $1 WHERE id = $2`, StatusRunning, id)
	return err
}

// Finish records a job's terminal outcome.
func (s *Store) Finish(ctx context.Context, id string, metricsPath, reportPath, jobErr string) error {
	status := StatusSucceeded
	if jobErr != "" {
		status = StatusFailed
	}
	_, err := s.pool.Exec(ctx,
		`UPDATE jobs SET status = $1, finished_at = $2, metrics_path = $3, report_path = $4, error = $5 WHERE id = $6`,
		status, time.Now(), metricsPath, reportPath, jobErr, id)
	return err
}

// Get returns a job's current metadata row.
func (s *Store) Get(ctx context.Context, id string) (*Job, error) {
	var j Job
	err := s.pool.QueryRow(ctx,
		`SELECT id, status, submitted_at, finished_at, COALESCE(metrics_path, ''), COALESCE(report_path, ''), COALESCE(error, '') FROM jobs WHERE id = $1`, id,
	).Scan(&j.ID, &j.Status, &j.SubmittedAt, &j.FinishedAt, &j.MetricsPath, &j.ReportPath, &j.Error)
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// Close releases the connection pool.
func (s *Store) Close() {
	s.pool.Close()
}
