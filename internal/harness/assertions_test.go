package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/equipment"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/placement"
	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/store"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

var mustParseState = blockstate.MustParse

func blockRecord(seq int64, in, out string, reason engine.Reason, cat rules.Category) trace.Record {
	return trace.Record{Seq: seq, Kind: trace.KindBlock, Block: &engine.BlockDecision{
		In:       mustParseState(in),
		Out:      mustParseState(out),
		Reason:   reason,
		Category: cat,
	}}
}

func entityRecord(seq int64, tier string, changes ...equipment.Change) trace.Record {
	return trace.Record{Seq: seq, Kind: trace.KindEntity, Entity: &engine.EntityDecision{
		Entity:  equipment.ArmorStand,
		Tier:    tier,
		Changes: changes,
	}}
}

func sampleResult() *Result {
	r := NewResult()
	r.Run = store.Run{Anchor: terrain.Pos{X: 10, Y: 64}}
	r.Records = []trace.Record{
		blockRecord(1, "minecraft:stone", "tfc:rock/raw/granite", engine.ReasonReplaced, rules.CategoryStone),
		blockRecord(2, "minecraft:oak_log[axis=y]", "tfc:wood/log/oak[axis=y]", engine.ReasonReplaced, rules.CategoryWood),
		blockRecord(3, "minecraft:bookshelf", "minecraft:bookshelf", engine.ReasonNoMatch, ""),
		blockRecord(4, "minecraft:coarse_dirt", "minecraft:coarse_dirt", engine.ReasonUnregistered, rules.CategorySoil),
		entityRecord(5, "wrought_iron", equipment.Change{
			Slot: "HandItems", Index: 0,
			From: ident.MustParse("minecraft:iron_sword"),
			To:   ident.MustParse("tfc:metal/sword/wrought_iron"),
		}),
	}
	r.Placed = placement.Result{Blocks: []placement.BlockInfo{
		{Pos: terrain.Pos{X: 10, Y: 64}, State: mustParseState("tfc:rock/raw/granite")},
		{Pos: terrain.Pos{X: 11, Y: 64}, State: mustParseState("tfc:wood/log/oak[axis=y]")},
	}}
	r.Summary = store.Summary{Blocks: 4, Entities: 1, Reasons: map[string]int{"replaced": 2, "no_match": 1, "unregistered": 1}}
	return r
}

func TestEvaluateAssertions_Pass(t *testing.T) {
	errs := EvaluateAssertions(sampleResult(), []Assertion{
		{Type: AssertBlockOut, Pos: pos(1, 0, 0), State: "tfc:wood/log/oak[axis=y]"},
		{Type: AssertReasonCount, Reason: "replaced", Count: 2},
		{Type: AssertReasonCount, Reason: "air", Count: 0},
		{Type: AssertCategoryCount, Category: "stone", Count: 1},
		{Type: AssertCategoryCount, Category: "soil", Count: 0},
		{Type: AssertEntityTier, Tier: "wrought_iron"},
		{Type: AssertItemOut, Item: "tfc:metal/sword/wrought_iron"},
		{Type: AssertStoredSummary, Expect: map[string]int{"replaced": 2, "unregistered": 1}},
	})
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_Fail(t *testing.T) {
	tests := []struct {
		name      string
		assertion Assertion
		want      string
	}{
		{"wrong state", Assertion{Type: AssertBlockOut, Pos: pos(0, 0, 0), State: "tfc:rock/raw/basalt"}, "Actual: tfc:rock/raw/granite"},
		{"nothing placed", Assertion{Type: AssertBlockOut, Pos: pos(5, 0, 0), State: "minecraft:stone"}, "no block placed"},
		{"reason count", Assertion{Type: AssertReasonCount, Reason: "no_match", Count: 2}, "1 decisions"},
		{"category count", Assertion{Type: AssertCategoryCount, Category: "wood", Count: 3}, "1 replacements"},
		{"tier", Assertion{Type: AssertEntityTier, Tier: "black_steel"}, "tier wrought_iron"},
		{"item", Assertion{Type: AssertItemOut, Item: "tfc:metal/axe/wrought_iron"}, "not found in trace"},
		{"summary", Assertion{Type: AssertStoredSummary, Expect: map[string]int{"air": 1}}, "0 stored decisions"},
		{"unknown", Assertion{Type: "final_state"}, "unknown assertion type"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := EvaluateAssertions(sampleResult(), []Assertion{tt.assertion})
			require.Len(t, errs, 1)
			assert.Contains(t, errs[0], "assertions[0]")
			assert.Contains(t, errs[0], tt.want)
		})
	}
}

func TestEntityTier_NoEntities(t *testing.T) {
	r := sampleResult()
	r.Records = r.Records[:4]

	errs := EvaluateAssertions(r, []Assertion{{Type: AssertEntityTier, Tier: "wrought_iron"}})
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "no entity decisions")
}

func TestAssertionError_IncludesTrace(t *testing.T) {
	err := &AssertionError{
		Type:     AssertReasonCount,
		Expected: "2 decisions with reason air",
		Actual:   "0 decisions",
		Records:  sampleResult().Records[:1],
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: reason_count")
	assert.Contains(t, msg, "Full trace:")
	assert.Contains(t, msg, "[1] (0, 0, 0) minecraft:stone -> tfc:rock/raw/granite (replaced stone)")
}
