package dto

import (
	"time"

	"jobtracker/internal/repository"
)

type RunResponse struct {
	RunID             string `json:"run_id"`
	Source            string `json:"source"`
	Status            string `json:"status"`
	TriggeredBy       string `json:"triggered_by"`
	StartedAt         string `json:"started_at"`
	FinishedAt        string `json:"finished_at,omitempty"`
	OccupationsLoaded int    `json:"occupations_loaded"`
	WagesLoaded       int    `json:"wages_loaded"`
	SkillsLoaded      int    `json:"skills_loaded"`
	FailedDocuments   int    `json:"failed_documents"`
	Error             string `json:"error,omitempty"`
}

func NewRunResponse(run repository.SyncRun) RunResponse {
	out := RunResponse{
		RunID:             run.ID.String(),
		Source:            run.Source,
		Status:            run.Status,
		TriggeredBy:       run.TriggeredBy,
		StartedAt:         run.StartedAt.UTC().Format(time.RFC3339),
		OccupationsLoaded: run.OccupationsLoaded,
		WagesLoaded:       run.WagesLoaded,
		SkillsLoaded:      run.SkillsLoaded,
		FailedDocuments:   run.FailedDocuments,
		Error:             run.Error,
	}
	if run.FinishedAt != nil && !run.FinishedAt.IsZero() {
		out.FinishedAt = run.FinishedAt.UTC().Format(time.RFC3339)
	}
	return out
}
