package harness

import (
	"fmt"
	"sort"
	"strings"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// AssertionError is returned when an assertion fails.
// It includes the recorded decisions to help debug the failure.
type AssertionError struct {
	Type     string         // Assertion type for categorization
	Expected string         // Human-readable expected outcome
	Actual   string         // Human-readable actual outcome
	Records  []trace.Record // Full trace for debugging context
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder

	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s\n", e.Actual)

	if len(e.Records) > 0 {
		fmt.Fprintf(&buf, "\nFull trace:\n")
		for _, r := range e.Records {
			fmt.Fprintf(&buf, "  [%d] %s\n", r.Seq, describe(r))
		}
	}
	return buf.String()
}

// describe renders a record on one line.
func describe(r trace.Record) string {
	switch {
	case r.Block != nil:
		d := r.Block
		s := fmt.Sprintf("%s %s -> %s (%s", d.Pos, d.In, d.Out, d.Reason)
		if d.Category != "" {
			s += " " + string(d.Category)
		}
		return s + ")"
	case r.Entity != nil:
		d := r.Entity
		return fmt.Sprintf("%s %s tier=%s changes=%d", d.Pos, d.Entity, d.Tier, len(d.Changes))
	default:
		return string(r.Kind)
	}
}

// EvaluateAssertions checks every assertion and returns the failure
// messages, in assertion order.
func EvaluateAssertions(result *Result, assertions []Assertion) []string {
	var errs []string
	for i, a := range assertions {
		var err error
		switch a.Type {
		case AssertBlockOut:
			err = assertBlockOut(result, a)
		case AssertReasonCount:
			err = assertReasonCount(result.Records, a)
		case AssertCategoryCount:
			err = assertCategoryCount(result.Records, a)
		case AssertEntityTier:
			err = assertEntityTier(result.Records, a)
		case AssertItemOut:
			err = assertItemOut(result.Records, a)
		case AssertStoredSummary:
			err = assertStoredSummary(result, a)
		default:
			err = fmt.Errorf("unknown assertion type %q", a.Type)
		}
		if err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

// assertBlockOut checks the state written at a template-relative position.
func assertBlockOut(result *Result, a Assertion) error {
	want, err := blockstate.Parse(a.State)
	if err != nil {
		return err
	}
	pos := result.Run.Anchor.Add(terrain.Pos{X: a.Pos[0], Y: a.Pos[1], Z: a.Pos[2]})
	for _, b := range result.Placed.Blocks {
		if b.Pos != pos {
			continue
		}
		if b.State.Equal(want) {
			return nil
		}
		return &AssertionError{
			Type:     AssertBlockOut,
			Expected: fmt.Sprintf("%s at %s", want, pos),
			Actual:   b.State.String(),
			Records:  result.Records,
		}
	}
	return &AssertionError{
		Type:     AssertBlockOut,
		Expected: fmt.Sprintf("%s at %s", want, pos),
		Actual:   "no block placed at that position",
		Records:  result.Records,
	}
}

// assertReasonCount checks the number of block decisions with a reason.
func assertReasonCount(records []trace.Record, a Assertion) error {
	count := 0
	for _, r := range records {
		if r.Block != nil && string(r.Block.Reason) == a.Reason {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertReasonCount,
			Expected: fmt.Sprintf("%d decisions with reason %s", a.Count, a.Reason),
			Actual:   fmt.Sprintf("%d decisions", count),
			Records:  records,
		}
	}
	return nil
}

// assertCategoryCount checks the number of replaced blocks in a category.
func assertCategoryCount(records []trace.Record, a Assertion) error {
	count := 0
	for _, r := range records {
		if r.Block != nil && r.Block.Reason.Changed() && string(r.Block.Category) == a.Category {
			count++
		}
	}
	if count != a.Count {
		return &AssertionError{
			Type:     AssertCategoryCount,
			Expected: fmt.Sprintf("%d replacements in category %s", a.Count, a.Category),
			Actual:   fmt.Sprintf("%d replacements", count),
			Records:  records,
		}
	}
	return nil
}

// assertEntityTier checks that every entity decision used one tier. A run
// with no entity decisions fails.
func assertEntityTier(records []trace.Record, a Assertion) error {
	seen := 0
	for _, r := range records {
		if r.Entity == nil {
			continue
		}
		seen++
		if r.Entity.Tier != a.Tier {
			return &AssertionError{
				Type:     AssertEntityTier,
				Expected: fmt.Sprintf("tier %s", a.Tier),
				Actual:   fmt.Sprintf("tier %s for %s", r.Entity.Tier, r.Entity.Entity),
				Records:  records,
			}
		}
	}
	if seen == 0 {
		return &AssertionError{
			Type:     AssertEntityTier,
			Expected: fmt.Sprintf("tier %s", a.Tier),
			Actual:   "no entity decisions",
			Records:  records,
		}
	}
	return nil
}

// assertItemOut checks that some stack was rewritten to an item.
func assertItemOut(records []trace.Record, a Assertion) error {
	for _, r := range records {
		if r.Entity == nil {
			continue
		}
		for _, c := range r.Entity.Changes {
			if c.To.String() == a.Item {
				return nil
			}
		}
	}
	return &AssertionError{
		Type:     AssertItemOut,
		Expected: fmt.Sprintf("a stack rewritten to %s", a.Item),
		Actual:   "not found in trace",
		Records:  records,
	}
}

// assertStoredSummary checks the reason counts of the stored run.
func assertStoredSummary(result *Result, a Assertion) error {
	reasons := make([]string, 0, len(a.Expect))
	for reason := range a.Expect {
		reasons = append(reasons, reason)
	}
	sort.Strings(reasons)

	for _, reason := range reasons {
		want := a.Expect[reason]
		if got := result.Summary.Reasons[reason]; got != want {
			return &AssertionError{
				Type:     AssertStoredSummary,
				Expected: fmt.Sprintf("%d stored decisions with reason %s", want, reason),
				Actual:   fmt.Sprintf("%d stored decisions", got),
			}
		}
	}
	return nil
}
