package harness

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// Snapshot renders a result as canonical JSON lines: one header line for
// the run, then one line per record. Only the fields that describe the
// outcome are kept, so hint defaults and other internals can change
// without touching golden files.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	header := map[string]any{
		"scenario":  scenarioName,
		"run_id":    result.Run.ID,
		"dimension": result.Run.Dimension.String(),
	}
	if !result.Run.Origin.IsZero() {
		header["origin"] = result.Run.Origin.String()
	}

	var buf bytes.Buffer
	line, err := trace.Marshal(header)
	if err != nil {
		return nil, err
	}
	buf.Write(line)
	buf.WriteByte('\n')

	for _, r := range result.Records {
		line, err := trace.Marshal(snapshotRecord(r))
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", r.Seq, err)
		}
		buf.Write(line)
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

func snapshotRecord(r trace.Record) map[string]any {
	m := map[string]any{
		"seq":  r.Seq,
		"kind": string(r.Kind),
	}
	switch {
	case r.Block != nil:
		d := r.Block
		m["pos"] = []int{d.Pos.X, d.Pos.Y, d.Pos.Z}
		m["in"] = d.In.String()
		m["out"] = d.Out.String()
		m["reason"] = string(d.Reason)
		if d.Category != "" {
			m["category"] = string(d.Category)
		}
	case r.Entity != nil:
		d := r.Entity
		m["entity"] = d.Entity.String()
		m["tier"] = d.Tier
		changes := make([]string, len(d.Changes))
		for i, c := range d.Changes {
			changes[i] = fmt.Sprintf("%s[%d] %s -> %s", c.Slot, c.Index, c.From, c.To)
		}
		m["changes"] = changes
	}
	return m
}

// RunWithGolden executes a scenario and compares the snapshot against a
// golden file stored in testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
//
// Returns error if scenario execution fails.
// Test failure (via goldie) occurs if the snapshot doesn't match the golden file.
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares an already computed result against a golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	snapshot, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, snapshot)
	return nil
}
