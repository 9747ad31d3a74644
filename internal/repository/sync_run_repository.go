package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobtracker/internal/database"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrRunNotFound = errors.New("sync run not found")
)

// Run statuses.
const (
	RunStatusRunning   = "running"
	RunStatusSucceeded = "succeeded"
	RunStatusFailed    = "failed"
	RunStatusSkipped   = "skipped"
)

// Run triggers.
const (
	TriggerManual    = "manual"
	TriggerScheduled = "scheduled"
	TriggerAPI       = "api"
)

// SyncRun is one recorded refresh attempt against the index.
type SyncRun struct {
	ID                uuid.UUID
	TriggeredBy       string
	Source            string
	Status            string
	StartedAt         time.Time
	FinishedAt        *time.Time
	OccupationsLoaded int
	WagesLoaded       int
	SkillsLoaded      int
	FailedDocuments   int
	Error             string
}

type SyncRunRepository interface {
	Create(ctx context.Context, run SyncRun) error
	Finish(ctx context.Context, run SyncRun) error
	GetByID(ctx context.Context, id uuid.UUID) (SyncRun, error)
	Latest(ctx context.Context, limit int) ([]SyncRun, error)
	LatestSucceeded(ctx context.Context) (SyncRun, error)
}

type PostgresSyncRunRepository struct {
	db database.DB
}

func NewPostgresSyncRunRepository(db database.DB) *PostgresSyncRunRepository {
	return &PostgresSyncRunRepository{db: db}
}

func (r *PostgresSyncRunRepository) Create(ctx context.Context, run SyncRun) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO sync_runs (id, triggered_by, source, status, started_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		run.ID, run.TriggeredBy, run.Source, run.Status, run.StartedAt.UTC(),
	)
	return err
}

// Finish writes the terminal state of a run.
func (r *PostgresSyncRunRepository) Finish(ctx context.Context, run SyncRun) error {
	_, err := r.db.Exec(ctx,
		`UPDATE sync_runs
		 SET status = $2,
		     finished_at = $3,
		     occupations_loaded = $4,
		     wages_loaded = $5,
		     skills_loaded = $6,
		     failed_documents = $7,
		     error = $8
		 WHERE id = $1`,
		run.ID, run.Status, run.FinishedAt, run.OccupationsLoaded,
		run.WagesLoaded, run.SkillsLoaded, run.FailedDocuments, run.Error,
	)
	return err
}

func (r *PostgresSyncRunRepository) GetByID(ctx context.Context, id uuid.UUID) (SyncRun, error) {
	row := r.db.QueryRow(ctx, selectRuns+` WHERE id = $1`, id)
	return scanRun(row)
}

func (r *PostgresSyncRunRepository) Latest(ctx context.Context, limit int) ([]SyncRun, error) {
	if limit <= 0 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	rows, err := r.db.Query(ctx, selectRuns+` ORDER BY started_at DESC LIMIT $1`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SyncRun, 0, limit)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresSyncRunRepository) LatestSucceeded(ctx context.Context) (SyncRun, error) {
	row := r.db.QueryRow(ctx, selectRuns+` WHERE status = $1 ORDER BY started_at DESC LIMIT 1`, RunStatusSucceeded)
	return scanRun(row)
}

const selectRuns = `SELECT id, triggered_by, source, status, started_at, finished_at,
	occupations_loaded, wages_loaded, skills_loaded, failed_documents, error
	FROM sync_runs`

type scannable interface {
	Scan(dest ...any) error
}

func scanRun(row scannable) (SyncRun, error) {
	var run SyncRun
	err := row.Scan(
		&run.ID, &run.TriggeredBy, &run.Source, &run.Status, &run.StartedAt,
		&run.FinishedAt, &run.OccupationsLoaded, &run.WagesLoaded,
		&run.SkillsLoaded, &run.FailedDocuments, &run.Error,
	)
	if err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return SyncRun{}, ErrRunNotFound
		}
		return SyncRun{}, err
	}
	return run, nil
}
