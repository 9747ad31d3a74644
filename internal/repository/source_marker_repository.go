package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobtracker/internal/database"

	"github.com/jackc/pgx/v5"
)

var (
	ErrMarkerNotFound = errors.New("source marker not found")
)

// Source names used as marker keys.
const (
	SourceBLS  = "bls"
	SourceONet = "onet"
)

// Check statuses recorded on a marker.
const (
	CheckStatusUnknown   = "unknown"
	CheckStatusUnchanged = "unchanged"
	CheckStatusChanged   = "changed"
	CheckStatusFailed    = "failed"
)

// SourceMarker records the last observed reference period of one data
// source. ReferencePeriod is an opaque string compared by inequality.
type SourceMarker struct {
	Source          string
	ReferencePeriod string
	LastStatus      string
	LastCheckedAt   *time.Time
	LastChangedAt   *time.Time
}

type SourceMarkerRepository interface {
	Get(ctx context.Context, source string) (SourceMarker, error)
	RecordCheck(ctx context.Context, source, status string, checkedAt time.Time) error
	RecordChange(ctx context.Context, source, referencePeriod string, changedAt time.Time) error
	List(ctx context.Context) ([]SourceMarker, error)
}

type PostgresSourceMarkerRepository struct {
	db database.DB
}

func NewPostgresSourceMarkerRepository(db database.DB) *PostgresSourceMarkerRepository {
	return &PostgresSourceMarkerRepository{db: db}
}

func (r *PostgresSourceMarkerRepository) Get(ctx context.Context, source string) (SourceMarker, error) {
	var m SourceMarker
	row := r.db.QueryRow(ctx,
		`SELECT source, reference_period, last_status, last_checked_at, last_changed_at
		 FROM source_markers
		 WHERE source = $1`,
		source,
	)
	if err := row.Scan(&m.Source, &m.ReferencePeriod, &m.LastStatus, &m.LastCheckedAt, &m.LastChangedAt); err != nil {
		if err == sql.ErrNoRows || errors.Is(err, pgx.ErrNoRows) {
			return SourceMarker{}, ErrMarkerNotFound
		}
		return SourceMarker{}, err
	}
	return m, nil
}

// RecordCheck stamps a check attempt without touching the stored
// reference period.
func (r *PostgresSourceMarkerRepository) RecordCheck(ctx context.Context, source, status string, checkedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO source_markers (source, last_status, last_checked_at)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (source) DO UPDATE
		 SET last_status = EXCLUDED.last_status,
		     last_checked_at = EXCLUDED.last_checked_at`,
		source, status, checkedAt.UTC(),
	)
	return err
}

// RecordChange stores a newly observed reference period after a load
// completed against it.
func (r *PostgresSourceMarkerRepository) RecordChange(ctx context.Context, source, referencePeriod string, changedAt time.Time) error {
	_, err := r.db.Exec(ctx,
		`INSERT INTO source_markers (source, reference_period, last_status, last_checked_at, last_changed_at)
		 VALUES ($1, $2, $3, $4, $4)
		 ON CONFLICT (source) DO UPDATE
		 SET reference_period = EXCLUDED.reference_period,
		     last_status = EXCLUDED.last_status,
		     last_checked_at = EXCLUDED.last_checked_at,
		     last_changed_at = EXCLUDED.last_changed_at`,
		source, referencePeriod, CheckStatusChanged, changedAt.UTC(),
	)
	return err
}

func (r *PostgresSourceMarkerRepository) List(ctx context.Context) ([]SourceMarker, error) {
	rows, err := r.db.Query(ctx,
		`SELECT source, reference_period, last_status, last_checked_at, last_changed_at
		 FROM source_markers
		 ORDER BY source`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]SourceMarker, 0)
	for rows.Next() {
		var m SourceMarker
		if err := rows.Scan(&m.Source, &m.ReferencePeriod, &m.LastStatus, &m.LastCheckedAt, &m.LastChangedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
