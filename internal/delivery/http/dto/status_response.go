package dto

import (
	"time"

	"jobtracker/internal/index"
	"jobtracker/internal/repository"
	"jobtracker/internal/usecase"
)

type SourceResponse struct {
	Source          string `json:"source"`
	ReferencePeriod string `json:"reference_period"`
	LastStatus      string `json:"last_status"`
	LastCheckedAt   string `json:"last_checked_at,omitempty"`
	LastChangedAt   string `json:"last_changed_at,omitempty"`
}

type StatusResponse struct {
	IndexHealthy bool                             `json:"index_healthy"`
	Collections  map[string]index.CollectionStats `json:"collections,omitempty"`
	Sources      []SourceResponse                 `json:"sources"`
	LastRun      *RunResponse                     `json:"last_run,omitempty"`
	RecentRuns   []RunResponse                    `json:"recent_runs"`
}

func NewStatusResponse(status usecase.SystemStatus) StatusResponse {
	out := StatusResponse{
		IndexHealthy: status.IndexHealthy,
		Collections:  status.Collections,
		Sources:      make([]SourceResponse, 0, len(status.Sources)),
		RecentRuns:   make([]RunResponse, 0, len(status.RecentRuns)),
	}
	for _, m := range status.Sources {
		out.Sources = append(out.Sources, newSourceResponse(m))
	}
	for _, r := range status.RecentRuns {
		out.RecentRuns = append(out.RecentRuns, NewRunResponse(r))
	}
	if status.LastRun != nil {
		last := NewRunResponse(*status.LastRun)
		out.LastRun = &last
	}
	return out
}

func newSourceResponse(m repository.SourceMarker) SourceResponse {
	out := SourceResponse{
		Source:          m.Source,
		ReferencePeriod: m.ReferencePeriod,
		LastStatus:      m.LastStatus,
	}
	if m.LastCheckedAt != nil {
		out.LastCheckedAt = m.LastCheckedAt.UTC().Format(time.RFC3339)
	}
	if m.LastChangedAt != nil {
		out.LastChangedAt = m.LastChangedAt.UTC().Format(time.RFC3339)
	}
	return out
}
