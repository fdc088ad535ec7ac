package store

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claustra01/yungsbettertfc/internal/engine"
	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/testutil"
	"github.com/claustra01/yungsbettertfc/internal/trace"
)

func TestCreateRun_Defaults(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t, WithIDGenerator(testutil.NewFixedRunID("run-1")))

	run, err := s.CreateRun(ctx, testRun(""))
	require.NoError(t, err)
	assert.Equal(t, "run-1", run.ID)
	assert.True(t, run.StartedAt.Equal(testutil.Epoch.Add(time.Second)))
	assert.Equal(t, trace.Version, run.TraceVersion)

	got, err := s.ReadRun(ctx, "run-1")
	require.NoError(t, err)
	assert.Equal(t, run.Origin, got.Origin)
	assert.Equal(t, run.Dimension, got.Dimension)
	assert.Equal(t, run.Anchor, got.Anchor)
	assert.True(t, run.StartedAt.Equal(got.StartedAt))
	assert.Empty(t, got.Digest)
}

func TestCreateRun_GeneratesUUIDv7(t *testing.T) {
	s := createTestStore(t)

	a, err := s.CreateRun(context.Background(), testRun(""))
	require.NoError(t, err)
	b, err := s.CreateRun(context.Background(), testRun(""))
	require.NoError(t, err)

	assert.Len(t, a.ID, 36)
	assert.NotEqual(t, a.ID, b.ID)
}

func TestCreateRun_DuplicateID(t *testing.T) {
	s := createTestStore(t)
	_, err := s.CreateRun(context.Background(), testRun("dup"))
	require.NoError(t, err)

	_, err = s.CreateRun(context.Background(), testRun("dup"))
	assert.Error(t, err)
}

func TestReadRun_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.ReadRun(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestListRuns_Ordered(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	runs, err := s.ListRuns(ctx)
	require.NoError(t, err)
	assert.NotNil(t, runs)
	assert.Empty(t, runs)

	for _, id := range []string{"b", "a", "c"} {
		_, err := s.CreateRun(ctx, testRun(id))
		require.NoError(t, err)
	}

	runs, err = s.ListRuns(ctx)
	require.NoError(t, err)
	ids := make([]string, len(runs))
	for i, r := range runs {
		ids[i] = r.ID
	}
	assert.Equal(t, []string{"b", "a", "c"}, ids, "ordered by start time")
}

func TestWriteRecords_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	_, err := s.CreateRun(ctx, testRun("r"))
	require.NoError(t, err)

	records := []trace.Record{
		blockRecord(2, "minecraft:stone_bricks", "tfc:rock/bricks/granite", engine.ReasonReplaced, rules.CategoryStone),
		blockRecord(1, "minecraft:air", "minecraft:air", engine.ReasonAir, ""),
		entityRecord(3),
	}
	require.NoError(t, s.WriteRecords(ctx, "r", records))

	got, err := s.ReadRecords(ctx, "r")
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, int64(1), got[0].Seq, "ordered by sequence")
	assert.Equal(t, engine.ReasonAir, got[0].Block.Reason)
	assert.Equal(t, "tfc:rock/bricks/granite", got[1].Block.Out.String())
	assert.Equal(t, "black_steel", got[2].Entity.Tier)
}

func TestWriteRecords_Idempotent(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	_, err := s.CreateRun(ctx, testRun("r"))
	require.NoError(t, err)

	batch := []trace.Record{blockRecord(1, "minecraft:stone", "tfc:rock/raw/granite", engine.ReasonReplaced, rules.CategoryStone)}
	require.NoError(t, s.WriteRecords(ctx, "r", batch))
	require.NoError(t, s.WriteRecords(ctx, "r", batch))

	got, err := s.ReadRecords(ctx, "r")
	require.NoError(t, err)
	assert.Len(t, got, 1)
}

func TestWriteRecords_Errors(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)

	err := s.WriteRecords(ctx, "missing", []trace.Record{entityRecord(1)})
	assert.ErrorIs(t, err, ErrRunNotFound)

	_, err = s.CreateRun(ctx, testRun("r"))
	require.NoError(t, err)
	err = s.WriteRecords(ctx, "r", []trace.Record{{Seq: 1, Kind: trace.KindBlock}})
	assert.Error(t, err)

	got, err := s.ReadRecords(ctx, "r")
	require.NoError(t, err)
	assert.Empty(t, got, "invalid batches are rejected whole")
}

func TestFinishRun_Digest(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	_, err := s.CreateRun(ctx, testRun("r"))
	require.NoError(t, err)

	records := []trace.Record{
		blockRecord(1, "minecraft:stone", "tfc:rock/raw/granite", engine.ReasonReplaced, rules.CategoryStone),
		entityRecord(2),
	}
	require.NoError(t, s.WriteRecords(ctx, "r", records))

	digest, err := s.FinishRun(ctx, "r")
	require.NoError(t, err)
	want, err := trace.Digest(records)
	require.NoError(t, err)
	assert.Equal(t, want, digest)

	run, err := s.ReadRun(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, digest, run.Digest)

	_, err = s.FinishRun(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}

func TestSummary(t *testing.T) {
	ctx := context.Background()
	s := createTestStore(t)
	_, err := s.CreateRun(ctx, testRun("r"))
	require.NoError(t, err)

	require.NoError(t, s.WriteRecords(ctx, "r", []trace.Record{
		blockRecord(1, "minecraft:stone", "tfc:rock/raw/granite", engine.ReasonReplaced, rules.CategoryStone),
		blockRecord(2, "minecraft:cobblestone", "tfc:rock/cobble/granite", engine.ReasonReplaced, rules.CategoryStone),
		blockRecord(3, "minecraft:torch", "tfc:torch", engine.ReasonReplaced, rules.CategoryLighting),
		blockRecord(4, "minecraft:coarse_dirt", "minecraft:coarse_dirt", engine.ReasonUnregistered, rules.CategorySoil),
		blockRecord(5, "minecraft:air", "minecraft:air", engine.ReasonAir, ""),
		entityRecord(6),
	}))

	sum, err := s.Summary(ctx, "r")
	require.NoError(t, err)
	assert.Equal(t, 5, sum.Blocks)
	assert.Equal(t, 1, sum.Entities)
	assert.Equal(t, map[string]int{"replaced": 3, "unregistered": 1, "air": 1}, sum.Reasons)
	assert.Equal(t, map[string]int{"stone": 2, "lighting": 1}, sum.Categories)

	_, err = s.Summary(ctx, "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
