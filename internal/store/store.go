package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Performance is one stored performance vector for a mode, already
// aggregated and validated upstream. Values is ordered to match the mode's
// dimension list; dimensions where lower is better are stored negated.
type Performance struct {
	EntryID     string    `json:"entry_id"`
	Mode        string    `json:"mode"`
	DisplayName string    `json:"display_name"`
	Team        string    `json:"team,omitempty"`
	Era         string    `json:"era,omitempty"`
	Values      []float64 `json:"values"`
}

type RunStatus string

const (
	RunStatusRunning   RunStatus = "running"
	RunStatusCompleted RunStatus = "completed"
	RunStatusFailed    RunStatus = "failed"
)

// AnalysisRun is one batch analysis of a mode's population. Result holds the
// full engine output as stored JSONB; it is opaque to the store.
type AnalysisRun struct {
	ID             uuid.UUID       `json:"run_id"`
	Mode           string          `json:"mode"`
	Status         RunStatus       `json:"status"`
	StartedAt      time.Time       `json:"started_at"`
	CompletedAt    *time.Time      `json:"completed_at,omitempty"`
	Error          string          `json:"error,omitempty"`
	PopulationSize int             `json:"population_size"`
	Result         json.RawMessage `json:"result,omitempty"`
}

type RunFilter struct {
	Mode   string
	Status *RunStatus
	Limit  int
	Offset int
}

type RunStats struct {
	TotalRuns      int     `json:"total_runs"`
	TotalCompleted int     `json:"total_completed"`
	TotalFailed    int     `json:"total_failed"`
	AvgDurationMs  float64 `json:"avg_duration_ms"`
}

type Store interface {
	ListPerformances(ctx context.Context, mode string) ([]*Performance, error)

	CreateRun(ctx context.Context, run *AnalysisRun) error
	CompleteRun(ctx context.Context, id uuid.UUID, populationSize int, result json.RawMessage) error
	FailRun(ctx context.Context, id uuid.UUID, errMsg string) error
	GetRun(ctx context.Context, id uuid.UUID) (*AnalysisRun, error)
	ListRuns(ctx context.Context, filter RunFilter) ([]*AnalysisRun, error)
	GetLatestResult(ctx context.Context, mode string) (json.RawMessage, error)

	GetStats(ctx context.Context) (*RunStats, error)

	Close() error
}
