package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// CreateRun inserts a run. An empty ID is generated and a zero StartedAt
// is taken from the store clock. The stored run is returned.
func (s *Store) CreateRun(ctx context.Context, run Run) (Run, error) {
	if run.ID == "" {
		run.ID = s.ids.Generate()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = s.clock.Now()
	}
	run.StartedAt = run.StartedAt.UTC()
	run.TraceVersion = trace.Version
	run.Digest = ""

	anchor, err := marshalPos(run.Anchor)
	if err != nil {
		return Run{}, fmt.Errorf("create run: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO runs (id, source, origin, dimension, anchor, started_at, trace_version)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`,
		run.ID,
		run.Source,
		run.Origin.String(),
		run.Dimension.String(),
		anchor,
		marshalTime(run.StartedAt),
		run.TraceVersion,
	)
	if err != nil {
		return Run{}, fmt.Errorf("create run %s: %w", run.ID, err)
	}
	return run, nil
}

// WriteRecords appends records to a run in one transaction. Records whose
// sequence number is already stored for the run are ignored, so writing
// the same batch twice is harmless.
func (s *Store) WriteRecords(ctx context.Context, runID string, records []trace.Record) error {
	for _, r := range records {
		if err := r.Validate(); err != nil {
			return fmt.Errorf("write records: %w", err)
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("write records: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := runExists(ctx, tx, runID); err != nil {
		return fmt.Errorf("write records: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (run_id, seq, kind, reason, category, body)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, seq) DO NOTHING
	`)
	if err != nil {
		return fmt.Errorf("write records: prepare: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		body, err := trace.Marshal(r)
		if err != nil {
			return fmt.Errorf("write records: %w", err)
		}
		reason, category := indexColumns(r)
		if _, err := stmt.ExecContext(ctx, runID, r.Seq, string(r.Kind), reason, category, string(body)); err != nil {
			return fmt.Errorf("write records: seq %d: %w", r.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("write records: commit: %w", err)
	}
	return nil
}

// FinishRun computes the digest of the stored records of a run, saves it
// on the run and returns it.
func (s *Store) FinishRun(ctx context.Context, runID string) (string, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("finish run: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := runExists(ctx, tx, runID); err != nil {
		return "", fmt.Errorf("finish run: %w", err)
	}

	rows, err := tx.QueryContext(ctx, `SELECT body FROM records WHERE run_id = ? ORDER BY seq ASC`, runID)
	if err != nil {
		return "", fmt.Errorf("finish run: query records: %w", err)
	}
	var lines [][]byte
	for rows.Next() {
		var body string
		if err := rows.Scan(&body); err != nil {
			rows.Close()
			return "", fmt.Errorf("finish run: scan: %w", err)
		}
		lines = append(lines, []byte(body))
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return "", fmt.Errorf("finish run: iterate: %w", err)
	}
	rows.Close()

	digest := trace.DigestLines(lines)
	if _, err := tx.ExecContext(ctx, `UPDATE runs SET digest = ? WHERE id = ?`, digest, runID); err != nil {
		return "", fmt.Errorf("finish run: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("finish run: commit: %w", err)
	}
	return digest, nil
}

func runExists(ctx context.Context, tx *sql.Tx, runID string) error {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM runs WHERE id = ?`, runID).Scan(&one)
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return err
}
