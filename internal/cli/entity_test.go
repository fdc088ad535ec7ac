package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claustra01/yungsbettertfc/internal/nbt"
)

const armourStand = `{"id":"minecraft:armor_stand","ArmorItems":[{},{},{},{"id":"minecraft:iron_helmet","Count":1}]}`

func TestEntity_ArmorStandJSON(t *testing.T) {
	out, err := execute(t, "--format", "json", "entity",
		"--origin", "betterstrongholds:rooms/armoury", armourStand)
	require.NoError(t, err)

	var data EntityResult
	decodeData(t, out, &data)
	assert.Equal(t, "minecraft:armor_stand", data.Entity)
	assert.Equal(t, "black_steel", data.Tier)
	require.Len(t, data.Changes, 1)
	assert.Equal(t, "ArmorItems", data.Changes[0].Slot)
	assert.Equal(t, 3, data.Changes[0].Index)
	assert.Equal(t, "tfc:metal/helmet/black_steel", data.Changes[0].To.String())

	armor, ok := data.NBT.GetList("ArmorItems")
	require.True(t, ok)
	helmet, ok := nbt.AsCompound(armor[3])
	require.True(t, ok)
	id, _ := helmet.GetString("id")
	assert.Equal(t, "tfc:metal/helmet/black_steel", id)
}

func TestEntity_Text(t *testing.T) {
	out, err := execute(t, "entity", "--origin", "betterfortresses:bridge/straight",
		`{"id":"minecraft:item_frame","Item":{"id":"minecraft:iron_axe","Count":1}}`)
	require.NoError(t, err)

	assert.Contains(t, out, "minecraft:item_frame (tier wrought_iron)")
	assert.Contains(t, out, "✓ Item[-1] minecraft:iron_axe -> tfc:metal/axe/wrought_iron")
	assert.Contains(t, out, `"tfc:metal/axe/wrought_iron"`)
}

func TestEntity_Unchanged(t *testing.T) {
	out, err := execute(t, "entity", `{"id":"minecraft:zombie"}`)
	require.NoError(t, err)
	assert.Contains(t, out, "No equipment rewritten.")
}

func TestEntity_Stdin(t *testing.T) {
	t.Setenv("YBTFC_CONFIG", "")
	cmd := NewRootCommand()
	var buf strings.Builder
	cmd.SetOut(&buf)
	cmd.SetIn(strings.NewReader(armourStand))
	cmd.SetArgs([]string{"entity", "--file", "-", "--origin", "betterstrongholds:rooms/armoury"})
	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "tfc:metal/helmet/black_steel")
}

func TestEntity_Errors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"no input", []string{"entity"}},
		{"bad json", []string{"entity", `{"id":`}},
		{"not an object", []string{"entity", `null`}},
		{"bad origin", []string{"entity", "--origin", "Bad:Origin", `{"id":"minecraft:zombie"}`}},
		{"missing file", []string{"entity", "--file", "/nonexistent/entity.json"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := execute(t, tt.args...)
			require.Error(t, err)
			assert.Equal(t, ExitCommandError, GetExitCode(err))
		})
	}
}
