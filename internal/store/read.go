package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// Run is one audited placement.
type Run struct {
	ID           string      `json:"id"`
	Source       string      `json:"source"`
	Origin       ident.ID    `json:"origin,omitzero"`
	Dimension    ident.ID    `json:"dimension"`
	Anchor       terrain.Pos `json:"anchor"`
	StartedAt    time.Time   `json:"startedAt"`
	TraceVersion string      `json:"traceVersion"`
	Digest       string      `json:"digest,omitempty"`
}

// Summary aggregates the records of a run.
type Summary struct {
	Blocks     int            `json:"blocks"`
	Entities   int            `json:"entities"`
	Reasons    map[string]int `json:"reasons"`
	Categories map[string]int `json:"categories"`
}

const runColumns = `id, source, origin, dimension, anchor, started_at, trace_version, digest`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (Run, error) {
	var (
		run                            Run
		origin, dim, anchor, startedAt string
	)
	if err := row.Scan(&run.ID, &run.Source, &origin, &dim, &anchor, &startedAt, &run.TraceVersion, &run.Digest); err != nil {
		return Run{}, err
	}
	var err error
	if run.Origin, err = unmarshalID(origin); err != nil {
		return Run{}, fmt.Errorf("run %s: origin: %w", run.ID, err)
	}
	if run.Dimension, err = unmarshalID(dim); err != nil {
		return Run{}, fmt.Errorf("run %s: dimension: %w", run.ID, err)
	}
	if run.Anchor, err = unmarshalPos(anchor); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	if run.StartedAt, err = unmarshalTime(startedAt); err != nil {
		return Run{}, fmt.Errorf("run %s: %w", run.ID, err)
	}
	return run, nil
}

// ReadRun returns one run.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+runColumns+` FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return run, nil
}

// ListRuns returns all runs ordered by start time, then ID.
// Returns an empty slice, not nil, when there are none.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+runColumns+` FROM runs
		ORDER BY started_at ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// ReadRecords returns the records of a run in sequence order.
func (s *Store) ReadRecords(ctx context.Context, runID string) ([]trace.Record, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return nil, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT body FROM records
		WHERE run_id = ?
		ORDER BY seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	records := []trace.Record{}
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		r, err := unmarshalRecord(body)
		if err != nil {
			return nil, err
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return records, nil
}

// Summary counts the records of a run by kind, block reason and category
// of replaced blocks.
func (s *Store) Summary(ctx context.Context, runID string) (Summary, error) {
	if _, err := s.ReadRun(ctx, runID); err != nil {
		return Summary{}, err
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT kind, reason, category, COUNT(*)
		FROM records
		WHERE run_id = ?
		GROUP BY kind, reason, category
		ORDER BY kind, reason, category
	`, runID)
	if err != nil {
		return Summary{}, fmt.Errorf("query summary: %w", err)
	}
	defer rows.Close()

	sum := Summary{Reasons: map[string]int{}, Categories: map[string]int{}}
	for rows.Next() {
		var kind, reason, category string
		var n int
		if err := rows.Scan(&kind, &reason, &category, &n); err != nil {
			return Summary{}, fmt.Errorf("scan summary: %w", err)
		}
		if trace.Kind(kind) == trace.KindEntity {
			sum.Entities += n
			continue
		}
		sum.Blocks += n
		sum.Reasons[reason] += n
		if engine.Reason(reason) == engine.ReasonReplaced {
			sum.Categories[category] += n
		}
	}
	if err := rows.Err(); err != nil {
		return Summary{}, fmt.Errorf("iterate summary: %w", err)
	}
	return sum, nil
}
