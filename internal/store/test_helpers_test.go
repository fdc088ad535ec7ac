package store

import (
	"path/filepath"
	"testing"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
	"github.com/claustra01/yungsbettertfc/internal/testutil"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

// createTestStore opens a store in a temporary directory with a
// deterministic clock.
func createTestStore(t *testing.T, opts ...Option) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	opts = append([]Option{WithClock(testutil.NewDeterministicClock())}, opts...)
	s, err := Open(path, opts...)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func testRun(id string) Run {
	return Run{
		ID:        id,
		Source:    "betterstrongholds/rooms/armoury.json",
		Origin:    ident.MustParse("betterstrongholds:rooms/armoury"),
		Dimension: scope.Overworld,
		Anchor:    terrain.Pos{X: 8, Y: 64, Z: -8},
	}
}

func blockRecord(seq int64, in, out string, reason engine.Reason, cat rules.Category) trace.Record {
	d := engine.BlockDecision{
		Pos:       terrain.Pos{X: int(seq)},
		Dimension: scope.Overworld,
		Scope:     scope.Full,
		In:        blockstate.MustParse(in),
		Out:       blockstate.MustParse(out),
		Reason:    reason,
		Category:  cat,
		Hints:     engine.Hints{Rock: "granite", Soil: "loam", Wood: "oak"},
	}
	return trace.Record{Seq: seq, Kind: trace.KindBlock, Block: &d}
}

func entityRecord(seq int64) trace.Record {
	d := engine.EntityDecision{
		Entity: ident.MustParse("minecraft:armor_stand"),
		Tier:   "black_steel",
	}
	return trace.Record{Seq: seq, Kind: trace.KindEntity, Entity: &d}
}
