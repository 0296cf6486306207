// Package engine orchestrates analysis runs: it loads a mode's population
// from the store, feeds it through the pareto core, persists the result, and
// reports lifecycle events and metrics.
package engine

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/courtmetrics/echelon/internal/config"
	"github.com/courtmetrics/echelon/internal/events"
	"github.com/courtmetrics/echelon/internal/metrics"
	"github.com/courtmetrics/echelon/internal/pareto"
	"github.com/courtmetrics/echelon/internal/store"
)

type Runner struct {
	store   store.Store
	events  events.Client
	metrics *metrics.Metrics
	cfg     *config.Config
	logger  *slog.Logger
}

// New creates a Runner. events may be nil; the runner then skips publishing.
func New(s store.Store, ev events.Client, m *metrics.Metrics, cfg *config.Config, logger *slog.Logger) *Runner {
	return &Runner{store: s, events: ev, metrics: m, cfg: cfg, logger: logger}
}

// Modes lists the configured dimension sets.
func (r *Runner) Modes() []pareto.DimensionSet {
	out := make([]pareto.DimensionSet, 0, len(r.cfg.Analysis.Modes))
	for _, m := range r.cfg.Analysis.Modes {
		out = append(out, m.DimensionSet())
	}
	return out
}

// Run executes one full analysis for the named mode and persists the
// outcome. Per-entry data problems survive inside the result's skipped list;
// run-level failures mark the run failed and return the error.
func (r *Runner) Run(ctx context.Context, mode string) (*store.AnalysisRun, error) {
	mc, ok := r.cfg.Mode(mode)
	if !ok {
		return nil, fmt.Errorf("unknown mode %q", mode)
	}

	run := &store.AnalysisRun{Mode: mode, Status: store.RunStatusRunning}
	if err := r.store.CreateRun(ctx, run); err != nil {
		return nil, fmt.Errorf("create run: %w", err)
	}
	r.publish(events.SubjectRunStarted(run.ID.String()), events.RunEvent{
		RunID: run.ID.String(),
		Mode:  mode,
	})

	start := time.Now()
	result, err := r.analyze(ctx, mc)
	if err != nil {
		return r.fail(ctx, run, mode, start, err)
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return r.fail(ctx, run, mode, start, fmt.Errorf("marshal result: %w", err))
	}
	population := len(result.Layers) + len(result.Skipped)
	if err := r.store.CompleteRun(ctx, run.ID, population, payload); err != nil {
		return r.fail(ctx, run, mode, start, fmt.Errorf("complete run: %w", err))
	}

	dur := time.Since(start)
	subsets := (1 << uint(len(mc.Dimensions))) - 1
	r.metrics.RunCompleted(mode, dur, population, subsets, len(result.Skipped))
	r.publish(events.SubjectRunCompleted(run.ID.String()), events.RunEvent{
		RunID:          run.ID.String(),
		Mode:           mode,
		PopulationSize: population,
		MaxLayer:       result.DAG.Stats.MaxLayer,
	})
	r.logger.Info("analysis run completed",
		"run_id", run.ID,
		"mode", mode,
		"population", population,
		"max_layer", result.DAG.Stats.MaxLayer,
		"skipped", len(result.Skipped),
		"duration_ms", dur.Milliseconds(),
	)

	run.Status = store.RunStatusCompleted
	run.PopulationSize = population
	run.Result = payload
	return run, nil
}

// fail is the single exit path for run-level errors, wherever they happen in
// the lifecycle: the run row never stays in running status.
func (r *Runner) fail(ctx context.Context, run *store.AnalysisRun, mode string, start time.Time, err error) (*store.AnalysisRun, error) {
	r.logger.Error("analysis run failed", "run_id", run.ID, "mode", mode, "error", err)
	if failErr := r.store.FailRun(ctx, run.ID, err.Error()); failErr != nil {
		r.logger.Error("failed to mark run failed", "run_id", run.ID, "error", failErr)
	}
	r.metrics.RunFailed(mode, time.Since(start))
	r.publish(events.SubjectRunFailed(run.ID.String()), events.RunEvent{
		RunID: run.ID.String(),
		Mode:  mode,
		Error: err.Error(),
	})
	run.Status = store.RunStatusFailed
	run.Error = err.Error()
	return run, err
}

// RunAll executes every configured mode. Modes are independent populations,
// so they run concurrently; one mode failing does not stop the others.
func (r *Runner) RunAll(ctx context.Context) ([]*store.AnalysisRun, error) {
	modes := r.cfg.Analysis.Modes

	runs := make([]*store.AnalysisRun, len(modes))
	errs := make([]error, len(modes))
	var wg sync.WaitGroup
	for i, m := range modes {
		wg.Add(1)
		go func(i int, mode string) {
			defer wg.Done()
			runs[i], errs[i] = r.Run(ctx, mode)
		}(i, m.Name)
	}
	wg.Wait()

	var out []*store.AnalysisRun
	var firstErr error
	for i := range runs {
		if runs[i] != nil {
			out = append(out, runs[i])
		}
		if errs[i] != nil && firstErr == nil {
			firstErr = fmt.Errorf("mode %q: %w", modes[i].Name, errs[i])
		}
	}
	return out, firstErr
}

func (r *Runner) analyze(ctx context.Context, mc config.ModeConfig) (*pareto.Result, error) {
	perfs, err := r.store.ListPerformances(ctx, mc.Name)
	if err != nil {
		return nil, fmt.Errorf("load performances: %w", err)
	}

	vectors := make([]*pareto.Vector, 0, len(perfs))
	for _, p := range perfs {
		meta := map[string]interface{}{"name": p.DisplayName}
		if p.Team != "" {
			meta["team"] = p.Team
		}
		if p.Era != "" {
			meta["era"] = p.Era
		}
		vectors = append(vectors, &pareto.Vector{ID: p.EntryID, Values: p.Values, Meta: meta})
	}

	return pareto.Analyze(vectors, mc.DimensionSet(), pareto.Options{
		SubFrontier: pareto.SubFrontierOptions{
			Workers:       r.cfg.Analysis.Workers,
			WarnThreshold: r.cfg.Analysis.SubsetWarnThreshold,
			HardCap:       r.cfg.Analysis.DimensionCap,
		},
		EliteMaxLayer: r.cfg.Analysis.EliteMaxLayer,
	})
}

func (r *Runner) publish(subject string, event events.RunEvent) {
	if r.events == nil {
		return
	}
	if err := r.events.Publish(subject, event); err != nil {
		r.logger.Warn("failed to publish event", "subject", subject, "error", err)
	}
}
