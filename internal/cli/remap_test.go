package cli

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
	"github.com/claustra01/yungsbettertfc/internal/store"
	"github.com/claustra01/yungsbettertfc/internal/template"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
)

// writeTemplates lays out a dungeon room and a vanilla house under a new
// template root.
func writeTemplates(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	room := &template.Template{
		Size: terrain.Pos{X: 1, Y: 2, Z: 1},
		Blocks: []template.Block{
			{Pos: terrain.Pos{}, State: blockstate.MustParse("minecraft:cobblestone")},
			{Pos: terrain.Pos{Y: 1}, State: blockstate.MustParse("minecraft:oak_planks")},
		},
		Entities: []template.Entity{{
			Pos:      template.Vec{X: 0.5, Y: 1.5, Z: 0.5},
			BlockPos: terrain.Pos{Y: 1},
			NBT: nbt.Compound{
				"id":   "minecraft:item_frame",
				"Item": map[string]any{"id": "minecraft:iron_sword", "Count": 1},
			},
		}},
	}
	require.NoError(t, template.Save(filepath.Join(root, "betterdungeons", "rooms", "a"+template.ExtCompressed), room))

	house := &template.Template{
		Size: terrain.Pos{X: 1, Y: 1, Z: 1},
		Blocks: []template.Block{
			{Pos: terrain.Pos{}, State: blockstate.MustParse("minecraft:cobblestone")},
		},
	}
	require.NoError(t, template.Save(filepath.Join(root, "minecraft", "village", "house"+template.ExtJSON), house))
	return root
}

func TestRemap_WritesTemplates(t *testing.T) {
	root := writeTemplates(t)
	out := t.TempDir()

	stdout, err := execute(t, "--format", "json", "remap", root,
		"--out", out, "--anchor", "100,64,-20", "--terrain", "tfc:rock/raw/basalt")
	require.NoError(t, err)

	var data RemapResult
	decodeData(t, stdout, &data)
	require.Len(t, data.Templates, 2)

	room := data.Templates[0]
	assert.Equal(t, "betterdungeons:rooms/a", room.ID)
	assert.True(t, room.Active)
	assert.Equal(t, 2, room.Blocks)
	assert.Equal(t, 2, room.Replaced)
	assert.Equal(t, 1, room.Entities)
	assert.Empty(t, room.RunID)

	house := data.Templates[1]
	assert.Equal(t, "minecraft:village/house", house.ID)
	assert.False(t, house.Active)
	assert.Zero(t, house.Replaced)

	assert.Equal(t, 1, data.Diagnostics.Replaced["stone"])
	assert.Equal(t, 1, data.Diagnostics.Replaced["wood"])
	assert.Equal(t, 1, data.Diagnostics.EntitiesRewritten)

	got, err := template.Load(filepath.Join(out, "betterdungeons", "rooms", "a.json"))
	require.NoError(t, err)
	require.Len(t, got.Blocks, 2)
	assert.Equal(t, terrain.Pos{}, got.Blocks[0].Pos)
	assert.Equal(t, "tfc:rock/cobble/basalt", got.Blocks[0].State.String())
	assert.Equal(t, "tfc:wood/planks/oak", got.Blocks[1].State.String())
	require.Len(t, got.Entities, 1)
	assert.Equal(t, terrain.Pos{Y: 1}, got.Entities[0].BlockPos)
	assert.InDelta(t, 1.5, got.Entities[0].Pos.Y, 1e-9)
	item, ok := got.Entities[0].NBT.GetCompound("Item")
	require.True(t, ok)
	id, _ := item.GetString("id")
	assert.Equal(t, "tfc:metal/sword/wrought_iron", id)

	copied, err := template.Load(filepath.Join(out, "minecraft", "village", "house.json"))
	require.NoError(t, err)
	assert.Equal(t, "minecraft:cobblestone", copied.Blocks[0].State.String())
}

func TestRemap_Compressed(t *testing.T) {
	root := writeTemplates(t)
	out := t.TempDir()

	_, err := execute(t, "remap", root, "--out", out, "--compress")
	require.NoError(t, err)

	got, err := template.Load(filepath.Join(out, "betterdungeons", "rooms", "a"+template.ExtCompressed))
	require.NoError(t, err)
	assert.Equal(t, "tfc:rock/cobble/granite", got.Blocks[0].State.String())
}

func TestRemap_Text(t *testing.T) {
	root := writeTemplates(t)

	stdout, err := execute(t, "remap", root, "--out", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "✓ betterdungeons:rooms/a: 2/2 blocks replaced, 1 entities rewritten")
	assert.Contains(t, stdout, "- minecraft:village/house (not enabled, copied)")
	assert.Contains(t, stdout, "Remapped 2 template(s)")
}

func TestRemap_Empty(t *testing.T) {
	stdout, err := execute(t, "remap", t.TempDir(), "--out", t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, stdout, "No templates found.")
}

func TestRemap_Errors(t *testing.T) {
	root := writeTemplates(t)
	tests := []struct {
		name string
		args []string
	}{
		{"bad anchor", []string{"remap", root, "--out", t.TempDir(), "--anchor", "x"}},
		{"bad terrain", []string{"remap", root, "--out", t.TempDir(), "--terrain", "Bad"}},
		{"missing root", []string{"remap", filepath.Join(root, "nope"), "--out", t.TempDir()}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}

func TestRemap_AuditAndReport(t *testing.T) {
	root := writeTemplates(t)
	db := filepath.Join(t.TempDir(), "audit.db")

	stdout, err := execute(t, "--format", "json", "remap", root,
		"--out", t.TempDir(), "--db", db, "--terrain", "tfc:rock/raw/basalt")
	require.NoError(t, err)

	var data RemapResult
	decodeData(t, stdout, &data)
	require.Len(t, data.Templates, 2)
	runID := data.Templates[0].RunID
	require.NotEmpty(t, runID)
	assert.NotEmpty(t, data.Templates[0].Digest)
	assert.Empty(t, data.Templates[1].RunID, "inactive templates are not audited")

	listed, err := execute(t, "--format", "json", "report", "--db", db)
	require.NoError(t, err)
	var runs []store.Run
	decodeData(t, listed, &runs)
	require.Len(t, runs, 1)
	assert.Equal(t, runID, runs[0].ID)
	assert.Equal(t, "betterdungeons:rooms/a", runs[0].Source)

	one, err := execute(t, "--format", "json", "report", "--db", db, runID)
	require.NoError(t, err)
	var report RunReport
	decodeData(t, one, &report)
	assert.Equal(t, "minecraft:overworld", report.Run.Dimension.String())
	assert.Equal(t, 2, report.Summary.Blocks)
	assert.Equal(t, 1, report.Summary.Entities)
	assert.Equal(t, 2, report.Summary.Reasons["replaced"])

	text, err := execute(t, "report", "--db", db, runID)
	require.NoError(t, err)
	assert.Contains(t, text, "Run:       "+runID)
	assert.Contains(t, text, "Origin:    betterdungeons:rooms/a")
	assert.Contains(t, text, "replaced")
}

func TestReport_UnknownRun(t *testing.T) {
	db := filepath.Join(t.TempDir(), "audit.db")
	_, err := execute(t, "report", "--db", db, "no-such-run")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
}

func TestReport_Empty(t *testing.T) {
	db := filepath.Join(t.TempDir(), "audit.db")
	out, err := execute(t, "report", "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "No runs recorded.")
}

func TestReport_NoDatabase(t *testing.T) {
	_, err := execute(t, "report")
	require.Error(t, err)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
}
