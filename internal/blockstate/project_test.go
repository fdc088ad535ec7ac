package blockstate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claustra01/yungsbettertfc/internal/ident"
)

func firepitDef(axisProp string) *Definition {
	return NewDefinition(ident.MustParse("tfc:firepit"),
		Property{Name: axisProp, Values: []string{"x", "z"}, Default: "x"},
		Property{Name: "lit", Values: []string{"true", "false"}, Default: "false"},
	)
}

func TestProject_CopiesSharedProperties(t *testing.T) {
	src := MustParse("minecraft:stone_brick_stairs[facing=east,half=top,shape=outer_left,waterlogged=true]")
	out, outcomes := Project(src, stairsDef("tfc:rock/bricks/granite_stairs"))

	assert.Equal(t, "tfc:rock/bricks/granite_stairs[facing=east,half=top,shape=outer_left,waterlogged=true]", out.String())
	require.Len(t, outcomes, 4)
	for _, o := range outcomes {
		assert.True(t, o.Applied(), o.Property)
	}
}

func TestProject_SkipsUnknownAndIllegal(t *testing.T) {
	target := NewDefinition(ident.MustParse("tfc:wood/planks/oak_slab"),
		Property{Name: "type", Values: []string{"top", "bottom", "double"}, Default: "bottom"},
		Property{Name: "waterlogged", Values: []string{"true", "false"}, Default: "false"},
	)
	src := MustParse("minecraft:oak_slab[type=sideways,waterlogged=true,powered=true]")

	out, outcomes := Project(src, target)

	assert.Equal(t, "bottom", out.Props["type"], "illegal value keeps the target default")
	assert.Equal(t, "true", out.Props["waterlogged"])
	_, hasPowered := out.Get("powered")
	assert.False(t, hasPowered)

	require.Len(t, outcomes, 3)
	byName := map[string]Outcome{}
	for _, o := range outcomes {
		byName[o.Property] = o
	}
	assert.True(t, IsUnknownProperty(byName["powered"].Err))
	assert.True(t, IsIllegalValue(byName["type"].Err))
	assert.True(t, byName["waterlogged"].Applied())
}

func TestProject_NoSourceProperties(t *testing.T) {
	target := stairsDef("tfc:x")
	out, outcomes := Project(MustParse("minecraft:stone"), target)
	assert.True(t, out.Equal(target.Default()))
	assert.Empty(t, outcomes)
}

func TestAxisFromFacing(t *testing.T) {
	tests := []struct {
		facing string
		want   string
	}{
		{"north", "z"},
		{"south", "z"},
		{"east", "x"},
		{"west", "x"},
	}
	for _, prop := range []string{PropAxis, PropHorizontalAxis} {
		def := firepitDef(prop)
		for _, tt := range tests {
			t.Run(prop+"/"+tt.facing, func(t *testing.T) {
				src := Of(ident.MustParse("minecraft:furnace"), map[string]string{"facing": tt.facing, "lit": "true"})
				got := AxisFromFacing(src, def, def.Default())
				assert.Equal(t, tt.want, got.Props[prop])
			})
		}
	}
}

func TestAxisFromFacing_NoFacing(t *testing.T) {
	def := firepitDef(PropAxis)
	base := def.Default()
	got := AxisFromFacing(MustParse("minecraft:campfire[lit=true]"), def, base)
	assert.True(t, got.Equal(base))

	vertical := AxisFromFacing(MustParse("minecraft:furnace[facing=up]"), def, base)
	assert.True(t, vertical.Equal(base))
}

func TestAxisFromFacing_TargetWithoutAxis(t *testing.T) {
	def := NewDefinition(ident.MustParse("tfc:firepit"),
		Property{Name: "lit", Values: []string{"true", "false"}, Default: "false"})
	base := def.Default()
	got := AxisFromFacing(MustParse("minecraft:furnace[facing=east]"), def, base)
	assert.True(t, got.Equal(base))
}

func TestAxisThenProject(t *testing.T) {
	def := firepitDef(PropAxis)
	src := MustParse("minecraft:furnace[facing=north,lit=true]")

	base := AxisFromFacing(src, def, def.Default())
	out, _ := ProjectOnto(src, def, base)

	assert.Equal(t, "tfc:firepit[axis=z,lit=true]", out.String())
}
