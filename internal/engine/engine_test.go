package engine

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/nbt"
	"github.com/claustra01/yungsbettertfc/internal/placement"
	"github.com/claustra01/yungsbettertfc/internal/registry"
	"github.com/claustra01/yungsbettertfc/internal/rules"
	"github.com/claustra01/yungsbettertfc/internal/scope"
	"github.com/claustra01/yungsbettertfc/internal/template"
	"github.com/claustra01/yungsbettertfc/internal/terrain"
	"github.com/claustra01/yungsbettertfc/internal/testutil"
)

var (
	anchor     = terrain.Pos{X: 8, Y: 64, Z: -8}
	stronghold = ident.MustParse("betterstrongholds:rooms/armoury")
)

func dioriteWorld() *terrain.Map {
	return testutil.Column(anchor, "tfc:grass/silt", "tfc:dirt/silt", "tfc:rock/raw/diorite")
}

func newWorker(t *testing.T, opts ...Option) *Worker {
	t.Helper()
	return New(testutil.Registry(), opts...).NewWorker()
}

func state(s string) blockstate.State {
	return blockstate.MustParse(s)
}

func TestWorker_StoneUsesTerrainRock(t *testing.T) {
	w := newWorker(t)

	d := w.Remap(dioriteWorld(), anchor, scope.Overworld, state("minecraft:stone_bricks"))

	assert.Equal(t, ReasonReplaced, d.Reason)
	assert.Equal(t, rules.CategoryStone, d.Category)
	assert.Equal(t, "tfc:rock/bricks/diorite", d.Out.String())
	assert.Equal(t, Hints{Rock: "diorite", Soil: "silt", Wood: "oak"}, d.Hints)
	assert.Equal(t, scope.Full, d.Scope)
}

func TestWorker_KeepsSharedProperties(t *testing.T) {
	w := newWorker(t)

	d := w.Remap(dioriteWorld(), anchor, scope.Overworld,
		state("minecraft:stone_brick_stairs[facing=east,half=top,shape=outer_left,waterlogged=true]"))

	assert.Equal(t, "tfc:rock/bricks/diorite_stairs[facing=east,half=top,shape=outer_left,waterlogged=true]", d.Out.String())
	assert.Empty(t, d.Skipped)
}

func TestWorker_Infested(t *testing.T) {
	w := newWorker(t)

	d := w.Remap(dioriteWorld(), anchor, scope.Overworld, state("minecraft:infested_cracked_stone_bricks"))

	assert.Equal(t, "tfc:rock/cracked_bricks/diorite", d.Out.String())
}

func TestWorker_Firepit(t *testing.T) {
	w := newWorker(t)
	info := placement.BlockInfo{
		Pos:   anchor,
		State: state("minecraft:furnace[facing=north,lit=true]"),
		NBT:   nbt.Compound{"id": "minecraft:furnace", "BurnTime": float64(20)},
	}

	for _, dim := range []ident.ID{scope.Overworld, scope.Nether} {
		out, d := w.Block(dioriteWorld(), anchor, dim, info)

		assert.Equal(t, "tfc:firepit[axis=z,lit=true]", out.State.String(), dim.String())
		assert.Nil(t, out.NBT, "block entity data is dropped")
		assert.True(t, d.DroppedNBT)
		assert.Equal(t, []string{"facing"}, d.Skipped)
		assert.Equal(t, rules.CategoryFirepit, d.Category)
	}
	assert.Equal(t, "minecraft:furnace", info.NBT["id"], "input untouched")
}

func TestWorker_UpperSeagrassBecomesWater(t *testing.T) {
	w := newWorker(t)
	data := nbt.Compound{"marker": "kept"}

	out, d := w.Block(dioriteWorld(), anchor, scope.Overworld, placement.BlockInfo{
		Pos:   anchor,
		State: state("minecraft:tall_seagrass[half=upper]"),
		NBT:   data,
	})

	assert.Equal(t, ReasonSeagrass, d.Reason)
	assert.Equal(t, "minecraft:water[level=0]", out.State.String())
	assert.Equal(t, data, out.NBT)
	assert.Empty(t, d.Category, "the chain is not consulted")

	lower := w.Remap(dioriteWorld(), anchor, scope.Overworld, state("minecraft:tall_seagrass[half=lower]"))
	assert.Equal(t, rules.CategoryDecor, lower.Category)
	assert.Equal(t, "tfc:plant/eel_grass[age=0,fluid=salt_water]", lower.Out.String())
}

func TestWorker_Planks(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"minecraft:oak_planks", "tfc:wood/planks/oak"},
		{"minecraft:spruce_planks", "tfc:wood/planks/spruce"},
		{"minecraft:dark_oak_planks", "tfc:wood/planks/oak"},
		{"minecraft:jungle_planks", "tfc:wood/planks/acacia"},
		{"minecraft:birch_slab[type=top,waterlogged=false]", "tfc:wood/planks/birch_slab[type=top,waterlogged=false]"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			w := newWorker(t)
			d := w.Remap(dioriteWorld(), anchor, scope.Overworld, state(tt.in))
			assert.Equal(t, ReasonReplaced, d.Reason)
			assert.Equal(t, tt.want, d.Out.String())
		})
	}
}

func TestWorker_PassThrough(t *testing.T) {
	tests := []struct {
		name   string
		dim    ident.ID
		in     string
		reason Reason
	}{
		{"air", scope.Overworld, "minecraft:air", ReasonAir},
		{"cave air", scope.Overworld, "minecraft:cave_air", ReasonAir},
		{"foreign namespace", scope.Overworld, "tfc:rock/raw/granite", ReasonForeign},
		{"no rule", scope.Overworld, "minecraft:bookshelf", ReasonNoMatch},
		{"stone outside the overworld", scope.Nether, "minecraft:stone_bricks", ReasonNoMatch},
		{"candidate not registered", scope.Overworld, "minecraft:coarse_dirt", ReasonUnregistered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := newWorker(t)
			in := state(tt.in)
			out, d := w.Block(dioriteWorld(), anchor, tt.dim, placement.BlockInfo{Pos: anchor, State: in})
			assert.Equal(t, tt.reason, d.Reason)
			assert.False(t, d.Reason.Changed())
			assert.True(t, in.Equal(out.State))
		})
	}
}

func TestWorker_UnregisteredKeepsCategory(t *testing.T) {
	w := newWorker(t)

	d := w.Remap(dioriteWorld(), anchor, scope.Overworld, state("minecraft:coarse_dirt"))

	assert.Equal(t, rules.CategorySoil, d.Category)
	assert.Equal(t, "tfc:coarse_dirt/silt", d.Candidate.String())
}

func TestWorker_SoilFallbackPassesThrough(t *testing.T) {
	w := newWorker(t)
	empty := terrain.NewMap(terrain.DefaultMinBuildHeight)

	in := state("minecraft:dirt")
	out, d := w.Block(empty, anchor, scope.Overworld, placement.BlockInfo{Pos: anchor, State: in})
	assert.Equal(t, ReasonUnregistered, d.Reason)
	assert.Equal(t, rules.CategorySoil, d.Category)
	assert.Equal(t, "tfc:dirt/mollisol", d.Candidate.String())
	assert.Equal(t, "mollisol", d.Hints.Soil)
	assert.True(t, in.Equal(out.State))

	found := newWorker(t).Remap(dioriteWorld(), anchor, scope.Overworld, in)
	assert.Equal(t, ReasonReplaced, found.Reason)
	assert.Equal(t, "tfc:dirt/silt", found.Out.String())
}

func TestWorker_UtilityScope(t *testing.T) {
	w := newWorker(t)
	world := dioriteWorld()

	chest := w.Remap(world, anchor, scope.Nether, state("minecraft:chest[facing=west,type=single,waterlogged=false]"))
	assert.Equal(t, "tfc:wood/chest/oak[facing=west,type=single,waterlogged=false]", chest.Out.String())
	assert.Equal(t, scope.UtilityOnly, chest.Scope)
	assert.Equal(t, Hints{Rock: "granite", Soil: "mollisol", Wood: "oak"}, chest.Hints)
	assert.Zero(t, world.Reads(), "terrain is not sampled outside full scope")

	bars := w.Remap(world, anchor, scope.End, state("minecraft:iron_bars"))
	assert.Equal(t, rules.CategoryMetalUtility, bars.Category)
}

func TestWorker_NetherOverlay(t *testing.T) {
	d := newWorker(t).Remap(dioriteWorld(), anchor, scope.Nether, state("minecraft:crimson_planks"))
	assert.Equal(t, rules.CategoryOverlay, d.Category)
	assert.Equal(t, "beneath:wood/planks/crimson", d.Out.String())

	bare := New(registry.TFC())
	assert.False(t, bare.OverlayAvailable())
	d = bare.NewWorker().Remap(dioriteWorld(), anchor, scope.Nether, state("minecraft:crimson_planks"))
	assert.Equal(t, ReasonNoMatch, d.Reason)
}

func TestWorker_WoodHintCachedPerAnchor(t *testing.T) {
	w := newWorker(t)
	world := dioriteWorld()
	chest := state("minecraft:chest[facing=north,type=single,waterlogged=false]")

	w.Remap(world, anchor, scope.Overworld, state("minecraft:spruce_planks"))
	d := w.Remap(world, anchor, scope.Overworld, chest)
	assert.Equal(t, "spruce", d.Hints.Wood)
	assert.Equal(t, ident.MustParse("tfc:wood/chest/spruce"), d.Out.Block)

	w.Remap(world, anchor, scope.Overworld, state("minecraft:birch_log[axis=y]"))
	d = w.Remap(world, anchor, scope.Overworld, chest)
	assert.Equal(t, "spruce", d.Hints.Wood, "the first species wins")

	other := anchor.Add(terrain.Pos{X: 32})
	d = w.Remap(world, other, scope.Overworld, chest)
	assert.Equal(t, "oak", d.Hints.Wood)
	assert.Equal(t, 1, w.Caches().Wood.Len(), "default wood is not cached")
}

func TestWorker_RockCachedPerAnchor(t *testing.T) {
	w := newWorker(t)
	world := dioriteWorld()

	w.Remap(world, anchor, scope.Overworld, state("minecraft:stone_bricks"))
	require.NotZero(t, world.Reads())

	world.ResetReads()
	d := w.Remap(world, anchor, scope.Overworld, state("minecraft:cobblestone"))
	assert.Zero(t, world.Reads())
	assert.Equal(t, "tfc:rock/cobble/diorite", d.Out.String())

	// A later change to the terrain is not seen at a cached anchor.
	world.Set(anchor.Down(2), state("tfc:rock/raw/basalt"))
	d = w.Remap(world, anchor, scope.Overworld, state("minecraft:stone"))
	assert.Equal(t, "tfc:rock/raw/diorite", d.Out.String())
}

func TestWorker_CacheCapacity(t *testing.T) {
	w := newWorker(t, WithCacheCapacity(2))
	world := terrain.NewMap(terrain.DefaultMinBuildHeight)

	for i := range 3 {
		w.Remap(world, terrain.Pos{X: i * 16, Y: 64}, scope.Overworld, state("minecraft:stone"))
	}
	assert.Equal(t, 1, w.Caches().Rock.Len())
	assert.Equal(t, 1, w.Caches().Rock.Clears())
}

func TestWorker_Entity(t *testing.T) {
	w := newWorker(t)
	info := placement.EntityInfo{
		BlockPos: anchor,
		NBT: nbt.Compound{
			"id":   "minecraft:glow_item_frame",
			"Item": map[string]any{"id": "minecraft:iron_axe", "components": map[string]any{}},
		},
	}

	out, d := w.Entity(info, ident.MustParse("betterdungeons:skeleton_dungeon/rooms/a"))
	require.Len(t, d.Changes, 1)
	assert.Equal(t, "wrought_iron", d.Tier)
	item, _ := out.NBT.GetCompound("Item")
	assert.Equal(t, nbt.Compound{"id": "tfc:metal/axe/wrought_iron"}, item)

	out, d = w.Entity(placement.EntityInfo{NBT: nbt.Compound{"id": "minecraft:zombie"}}, stronghold)
	assert.Empty(t, d.Changes)
	assert.Equal(t, "minecraft:zombie", out.NBT["id"])

	_, d = w.Entity(placement.EntityInfo{NBT: nbt.Compound{}}, stronghold)
	assert.True(t, d.Entity.IsZero())
}

func room() *template.Template {
	return &template.Template{
		Size: terrain.Pos{X: 3, Y: 2, Z: 3},
		Blocks: []template.Block{
			{Pos: terrain.Pos{}, State: state("minecraft:stone_bricks")},
			{Pos: terrain.Pos{X: 1}, State: state("minecraft:oak_planks")},
			{Pos: terrain.Pos{X: 2}, State: state("minecraft:air")},
			{Pos: terrain.Pos{X: 1, Y: 1, Z: 1}, State: state("minecraft:campfire[facing=east,lit=true,signal_fire=false,waterlogged=false]")},
		},
		Entities: []template.Entity{{
			Pos:      template.Vec{X: 1.5, Y: 1, Z: 2.5},
			BlockPos: terrain.Pos{X: 1, Y: 1, Z: 2},
			NBT: nbt.Compound{
				"id":         "minecraft:armor_stand",
				"ArmorItems": []any{map[string]any{}, map[string]any{}, map[string]any{}, map[string]any{"id": "minecraft:iron_helmet"}},
			},
		}},
	}
}

func TestWorker_Attach(t *testing.T) {
	origins := placement.NewOriginTable()
	e := New(testutil.Registry(), WithOriginLookup(origins.Lookup))
	w := e.NewWorker()

	allowed, vanilla, unknown := room(), room(), room()
	origins.Record(allowed, stronghold)
	origins.Record(vanilla, ident.MustParse("minecraft:village/plains/houses/a"))

	s := placement.NewSettings(scope.Overworld)
	w.Attach(allowed, s)
	w.Attach(allowed, s)
	assert.Len(t, s.Processors(), 1, "attached at most once")

	for _, tpl := range []*template.Template{vanilla, unknown} {
		s := placement.NewSettings(scope.Overworld)
		w.Attach(tpl, s)
		assert.False(t, s.HasProcessor(ProcessorName))
	}
}

func TestPlace_RemapsRoom(t *testing.T) {
	origins := placement.NewOriginTable()
	e := New(testutil.Registry(), WithOriginLookup(origins.Lookup))
	var blocks []BlockDecision
	var entities []EntityDecision
	w := e.NewWorker(
		WithBlockTrace(func(d BlockDecision) { blocks = append(blocks, d) }),
		WithEntityTrace(func(d EntityDecision) { entities = append(entities, d) }),
	)

	tpl := room()
	origins.Record(tpl, stronghold)

	res, err := placement.Place(context.Background(), dioriteWorld(), tpl, anchor, placement.NewSettings(scope.Overworld), w.Attach)
	require.NoError(t, err)

	got := make([]string, len(res.Blocks))
	for i, b := range res.Blocks {
		got[i] = b.State.String()
	}
	assert.Equal(t, []string{
		"tfc:rock/bricks/diorite",
		"tfc:wood/planks/oak",
		"minecraft:air",
		"tfc:firepit[axis=x,lit=true]",
	}, got)
	assert.Equal(t, anchor.Add(terrain.Pos{X: 1, Y: 1, Z: 1}), res.Blocks[3].Pos)

	require.Len(t, blocks, 4)
	for _, d := range blocks {
		assert.Equal(t, anchor, d.Anchor)
	}

	require.Len(t, entities, 1)
	assert.Equal(t, "black_steel", entities[0].Tier)
	armor, _ := res.Entities[0].NBT.GetList("ArmorItems")
	helmet, _ := nbt.AsCompound(armor[3])
	assert.Equal(t, "tfc:metal/helmet/black_steel", helmet["id"])
}

func TestPlace_UnattachedTemplateUntouched(t *testing.T) {
	e := New(testutil.Registry())
	w := e.NewWorker()
	tpl := room()

	res, err := placement.Place(context.Background(), dioriteWorld(), tpl, anchor, placement.NewSettings(scope.Overworld), w.Attach)
	require.NoError(t, err)
	for i, b := range res.Blocks {
		assert.True(t, tpl.Blocks[i].State.Equal(b.State))
	}
}

func TestWorkers_Concurrent(t *testing.T) {
	e := New(testutil.Registry(), WithDiagnostics(MustNewDiagnostics(nil, nil)))
	const workers = 8

	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := range workers {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			w := e.NewWorker()
			world := dioriteWorld()
			for range 50 {
				results[i] = w.Remap(world, anchor, scope.Overworld, state("minecraft:mossy_stone_bricks")).Out.String()
			}
		}(i)
	}
	wg.Wait()

	for _, r := range results {
		assert.Equal(t, "tfc:rock/mossy_bricks/diorite", r)
	}
}
