package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresStore struct {
	pool *pgxpool.Pool
}

func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) ListPerformances(ctx context.Context, mode string) ([]*Performance, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT entry_id, mode, display_name, team, era, dims
		FROM performances
		WHERE mode = $1
		ORDER BY entry_id`, mode)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*Performance
	for rows.Next() {
		p := &Performance{}
		if err := rows.Scan(&p.EntryID, &p.Mode, &p.DisplayName, &p.Team, &p.Era, &p.Values); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

const runColumns = `run_id, mode, status, started_at, completed_at, error, population_size, result`

func (s *PostgresStore) CreateRun(ctx context.Context, run *AnalysisRun) error {
	return s.pool.QueryRow(ctx, `
		INSERT INTO analysis_runs (mode, status)
		VALUES ($1, $2)
		RETURNING run_id, started_at`,
		run.Mode, run.Status,
	).Scan(&run.ID, &run.StartedAt)
}

func (s *PostgresStore) CompleteRun(ctx context.Context, id uuid.UUID, populationSize int, result json.RawMessage) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE analysis_runs
		SET status = 'completed', completed_at = now(), population_size = $2, result = $3
		WHERE run_id = $1`,
		id, populationSize, result)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

func (s *PostgresStore) FailRun(ctx context.Context, id uuid.UUID, errMsg string) error {
	tag, err := s.pool.Exec(ctx, `
		UPDATE analysis_runs
		SET status = 'failed', completed_at = now(), error = $2
		WHERE run_id = $1`,
		id, errMsg)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id uuid.UUID) (*AnalysisRun, error) {
	run, err := scanRun(s.pool.QueryRow(ctx, `
		SELECT `+runColumns+`
		FROM analysis_runs WHERE run_id = $1`, id))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	return run, err
}

func (s *PostgresStore) ListRuns(ctx context.Context, filter RunFilter) ([]*AnalysisRun, error) {
	query := `SELECT ` + runColumns + ` FROM analysis_runs WHERE 1=1`
	args := []interface{}{}
	n := 0

	if filter.Mode != "" {
		n++
		query += fmt.Sprintf(" AND mode = $%d", n)
		args = append(args, filter.Mode)
	}
	if filter.Status != nil {
		n++
		query += fmt.Sprintf(" AND status = $%d", n)
		args = append(args, string(*filter.Status))
	}

	query += " ORDER BY started_at DESC"

	limit := filter.Limit
	if limit <= 0 {
		limit = 50
	}
	n++
	query += fmt.Sprintf(" LIMIT $%d", n)
	args = append(args, limit)

	if filter.Offset > 0 {
		n++
		query += fmt.Sprintf(" OFFSET $%d", n)
		args = append(args, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*AnalysisRun
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, run)
	}
	return out, rows.Err()
}

func (s *PostgresStore) GetLatestResult(ctx context.Context, mode string) (json.RawMessage, error) {
	var result json.RawMessage
	err := s.pool.QueryRow(ctx, `
		SELECT result
		FROM analysis_runs
		WHERE mode = $1 AND status = 'completed'
		ORDER BY completed_at DESC
		LIMIT 1`, mode,
	).Scan(&result)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *PostgresStore) GetStats(ctx context.Context) (*RunStats, error) {
	stats := &RunStats{}
	err := s.pool.QueryRow(ctx, `
		SELECT
			count(*),
			count(*) FILTER (WHERE status = 'completed'),
			count(*) FILTER (WHERE status = 'failed'),
			coalesce(avg(EXTRACT(EPOCH FROM (completed_at - started_at)) * 1000)
				FILTER (WHERE completed_at IS NOT NULL), 0)
		FROM analysis_runs`,
	).Scan(&stats.TotalRuns, &stats.TotalCompleted, &stats.TotalFailed, &stats.AvgDurationMs)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*AnalysisRun, error) {
	run := &AnalysisRun{}
	var errMsg *string
	var popSize *int
	if err := row.Scan(
		&run.ID, &run.Mode, &run.Status,
		&run.StartedAt, &run.CompletedAt, &errMsg,
		&popSize, &run.Result,
	); err != nil {
		return nil, err
	}
	if errMsg != nil {
		run.Error = *errMsg
	}
	if popSize != nil {
		run.PopulationSize = *popSize
	}
	return run, nil
}
