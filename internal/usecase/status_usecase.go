package usecase

import (
	"context"
	"errors"
	"log"
	"strings"

	"jobtracker/internal/index"
	"jobtracker/internal/pipeline"
	"jobtracker/internal/repository"
)

// StatusIndex is the health surface of the search index.
type StatusIndex interface {
	Health(ctx context.Context) bool
	AllStats(ctx context.Context) (map[string]index.CollectionStats, error)
}

// Refresher drives the data pipeline. The pipeline engine satisfies it.
type Refresher interface {
	RunFullRefresh(ctx context.Context, trigger string) (repository.SyncRun, error)
	RunSourceRefresh(ctx context.Context, source, trigger string) (repository.SyncRun, error)
	RunIfChanged(ctx context.Context, trigger string) (repository.SyncRun, error)
	CheckForUpdates(ctx context.Context) []pipeline.SourceStatus
	Running() bool
}

type StatusUsecase interface {
	Status(ctx context.Context) (SystemStatus, error)
	Check(ctx context.Context) ([]pipeline.SourceStatus, error)
	Refresh(ctx context.Context, source, trigger string) (repository.SyncRun, error)
	RefreshIfChanged(ctx context.Context, trigger string) (repository.SyncRun, error)
	StartRefresh(source, trigger string) error
}

type Status struct {
	idx     StatusIndex
	runs    repository.SyncRunRepository
	markers repository.SourceMarkerRepository
	engine  Refresher
	log     *log.Logger
}

func NewStatusUsecase(
	idx StatusIndex,
	runs repository.SyncRunRepository,
	markers repository.SourceMarkerRepository,
	engine Refresher,
	logger *log.Logger,
) *Status {
	if logger == nil {
		logger = log.Default()
	}
	return &Status{idx: idx, runs: runs, markers: markers, engine: engine, log: logger}
}

// SystemStatus is the operational snapshot served by GET /status.
type SystemStatus struct {
	IndexHealthy bool                             `json:"index_healthy"`
	Collections  map[string]index.CollectionStats `json:"collections,omitempty"`
	Sources      []repository.SourceMarker        `json:"sources"`
	LastRun      *repository.SyncRun              `json:"last_run,omitempty"`
	RecentRuns   []repository.SyncRun             `json:"recent_runs"`
}

func (u *Status) Status(ctx context.Context) (SystemStatus, error) {
	out := SystemStatus{}

	if u.idx != nil {
		out.IndexHealthy = u.idx.Health(ctx)
		if out.IndexHealthy {
			stats, err := u.idx.AllStats(ctx)
			if err != nil {
				u.log.Printf("usecase=status op=stats status=error err=%v", err)
			} else {
				out.Collections = stats
			}
		}
	}

	if u.markers != nil {
		markers, err := u.markers.List(ctx)
		if err != nil {
			u.log.Printf("usecase=status op=markers status=error err=%v", err)
		} else {
			out.Sources = markers
		}
	}

	if u.runs != nil {
		runs, err := u.runs.Latest(ctx, 10)
		if err != nil {
			u.log.Printf("usecase=status op=runs status=error err=%v", err)
		} else {
			out.RecentRuns = runs
			if len(runs) > 0 {
				out.LastRun = &runs[0]
			}
		}
	}

	return out, nil
}

func (u *Status) Check(ctx context.Context) ([]pipeline.SourceStatus, error) {
	if u.engine == nil {
		return nil, ErrInternal
	}
	return u.engine.CheckForUpdates(ctx), nil
}

// Refresh starts a refresh of the requested source: "all" or empty for
// both, "bls" or "onet" for one side.
func (u *Status) Refresh(ctx context.Context, source, trigger string) (repository.SyncRun, error) {
	if u.engine == nil {
		return repository.SyncRun{}, ErrInternal
	}

	var run repository.SyncRun
	var err error
	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", "all":
		run, err = u.engine.RunFullRefresh(ctx, trigger)
	case repository.SourceBLS:
		run, err = u.engine.RunSourceRefresh(ctx, repository.SourceBLS, trigger)
	case repository.SourceONet:
		run, err = u.engine.RunSourceRefresh(ctx, repository.SourceONet, trigger)
	default:
		return repository.SyncRun{}, ErrInvalidInput
	}

	if err != nil {
		if errors.Is(err, pipeline.ErrRefreshInProgress) {
			return run, ErrConflict
		}
		u.log.Printf("usecase=status op=refresh source=%s status=error err=%v", source, err)
		return run, ErrInternal
	}
	return run, nil
}

// StartRefresh validates the request, then runs the refresh in the
// background so the HTTP handler can answer immediately.
func (u *Status) StartRefresh(source, trigger string) error {
	if u.engine == nil {
		return ErrInternal
	}

	switch strings.ToLower(strings.TrimSpace(source)) {
	case "", "all", repository.SourceBLS, repository.SourceONet:
	default:
		return ErrInvalidInput
	}

	if u.engine.Running() {
		return ErrConflict
	}

	go func() {
		if _, err := u.Refresh(context.Background(), source, trigger); err != nil {
			u.log.Printf("usecase=status op=start_refresh source=%s status=error err=%v", source, err)
		}
	}()
	return nil
}

func (u *Status) RefreshIfChanged(ctx context.Context, trigger string) (repository.SyncRun, error) {
	if u.engine == nil {
		return repository.SyncRun{}, ErrInternal
	}
	run, err := u.engine.RunIfChanged(ctx, trigger)
	if err != nil {
		if errors.Is(err, pipeline.ErrRefreshInProgress) {
			return run, ErrConflict
		}
		u.log.Printf("usecase=status op=refresh_if_changed status=error err=%v", err)
		return run, ErrInternal
	}
	return run, nil
}
