package harness

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/claustra01/yungsbettertfc/internal/config"
	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/placement"
	"github.com/claustra01/yungsbettertfc/internal/store"
	"github.com/claustra01/yungsbettertfc/internal/testutil"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// Run executes a scenario and returns the result.
//
// Each scenario runs with a fresh engine, worker and in-memory database.
//
// Execution flow:
// 1. Load the configuration and target registry
// 2. Build the template and record its origin
// 3. Place the template with a recording worker attached by the hook
// 4. Store the run and its records
// 5. Evaluate assertions
func Run(scenario *Scenario) (*Result, error) {
	return RunContext(context.Background(), scenario)
}

// RunContext is Run with a caller-supplied context.
func RunContext(ctx context.Context, scenario *Scenario) (*Result, error) {
	cfg, err := config.Load(scenario.resolve(scenario.Config))
	if err != nil {
		return nil, err
	}
	reg, err := cfg.LoadRegistry()
	if err != nil {
		return nil, fmt.Errorf("failed to load registry: %w", err)
	}

	dim, err := scenario.DimensionID()
	if err != nil {
		return nil, fmt.Errorf("dimension: %w", err)
	}
	origin, err := scenario.OriginID()
	if err != nil {
		return nil, fmt.Errorf("origin: %w", err)
	}
	world, err := scenario.World()
	if err != nil {
		return nil, err
	}
	tpl, err := scenario.BuildTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to build template: %w", err)
	}

	origins := placement.NewOriginTable()
	if !origin.IsZero() {
		origins.Record(tpl, origin)
	}

	opts := append(cfg.EngineOptions(),
		engine.WithOriginLookup(origins.Lookup),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	eng := engine.New(reg, opts...)

	var recOpts []trace.RecorderOption
	if scenario.ChangedOnly {
		recOpts = append(recOpts, trace.ChangedOnly())
	}
	rec := trace.NewRecorder(recOpts...)
	worker := eng.NewWorker(rec.WorkerOptions()...)

	placed, err := placement.Place(ctx, world, tpl, scenario.Anchor, placement.NewSettings(dim), worker.Attach)
	if err != nil {
		return nil, fmt.Errorf("failed to place template: %w", err)
	}

	st, err := store.Open(":memory:",
		store.WithClock(testutil.NewDeterministicClock()),
		store.WithIDGenerator(testutil.NewFixedRunID(scenario.RunID)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory store: %w", err)
	}
	defer st.Close()

	run, err := st.CreateRun(ctx, store.Run{
		Source:    scenario.Name,
		Origin:    origin,
		Dimension: dim,
		Anchor:    scenario.Anchor,
	})
	if err != nil {
		return nil, err
	}
	if err := st.WriteRecords(ctx, run.ID, rec.Records()); err != nil {
		return nil, err
	}
	if _, err := st.FinishRun(ctx, run.ID); err != nil {
		return nil, err
	}

	result := NewResult()
	result.Placed = placed
	if result.Run, err = st.ReadRun(ctx, run.ID); err != nil {
		return nil, err
	}
	if result.Records, err = st.ReadRecords(ctx, run.ID); err != nil {
		return nil, err
	}
	if result.Summary, err = st.Summary(ctx, run.ID); err != nil {
		return nil, err
	}

	for _, msg := range EvaluateAssertions(result, scenario.Assertions) {
		result.AddError(msg)
	}
	return result, nil
}
