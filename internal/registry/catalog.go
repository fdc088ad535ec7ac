package registry

import (
	"github.com/claustra01/yungsbettertfc/internal/blockstate"
	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// Content of the built-in catalogue.
var (
	Rocks = []string{
		"granite", "diorite", "gabbro", "shale", "claystone", "limestone", "conglomerate",
		"dolomite", "chert", "chalk", "rhyolite", "basalt", "andesite", "dacite",
		"quartzite", "slate", "phyllite", "schist", "gneiss", "marble",
	}

	Soils = []string{"loam", "silt", "sandy_loam", "silty_loam"}

	Woods = []string{
		"acacia", "ash", "aspen", "birch", "blackwood", "chestnut", "douglas_fir", "hickory",
		"kapok", "mangrove", "maple", "oak", "palm", "pine", "rosewood", "sequoia", "spruce",
		"sycamore", "white_cedar", "willow",
	}

	ToolMetals = []string{
		"bismuth_bronze", "black_bronze", "bronze", "copper", "wrought_iron",
		"steel", "black_steel", "blue_steel", "red_steel",
	}

	Colors = []string{
		"white", "orange", "magenta", "light_blue", "yellow", "lime", "pink", "gray",
		"light_gray", "cyan", "purple", "blue", "brown", "green", "red", "black",
	}

	PottedPlants = []string{
		"allium", "athyrium_fern", "blood_lily", "blue_orchid", "dandelion", "houstonia",
		"lady_fern", "oxeye_daisy", "poppy", "rose", "sacred_datura", "snapdragon_red",
	}

	equipmentKinds = []string{
		"sword", "axe", "pickaxe", "shovel", "hoe", "helmet", "chestplate", "greaves",
		"boots", "shield", "javelin", "mace",
	}
)

type builder struct {
	m  *Memory
	ns string
}

func (b builder) block(path string, props []blockstate.Property) {
	b.m.MustAddBlock(blockstate.NewDefinition(ident.New(b.ns, path), props...))
}

func (b builder) item(path string) {
	b.m.AddItem(ident.New(b.ns, path))
}

// TFC returns the built-in catalogue of target blocks and items: every
// identifier the replacement tables can produce for stock content, plus
// the base blocks they fall back to.
func TFC() *Memory {
	m := New()
	mc := builder{m: m, ns: ident.Minecraft}
	mc.block("air", cubeShape())
	mc.block("water", fluidShape())

	t := builder{m: m, ns: ident.TFC}
	for _, r := range Rocks {
		addRock(t, r)
	}
	for _, s := range Soils {
		for _, kind := range []string{"dirt", "grass", "grass_path", "rooted_dirt", "farmland", "clay_grass", "clay", "mud"} {
			t.block(kind+"/"+s, cubeShape())
		}
	}
	for _, w := range Woods {
		addWood(t, w)
	}
	addMetals(t)

	t.block("firepit", firepitShape())
	t.block("ceramic/large_vessel", largeVesselShape())
	t.block("torch", cubeShape())
	t.block("wall_torch", wallTorchShape())
	t.block("plant/eel_grass", eelGrassShape())
	t.block("sea_pickle", seaPickleShape())
	t.block("candle", candleShape())
	t.block("candle_cake", candleCakeShape())
	for _, c := range Colors {
		t.block("candle/"+c, candleShape())
		t.block("candle_cake/"+c, candleCakeShape())
	}
	for _, p := range PottedPlants {
		t.block("plant/potted/"+p, cubeShape())
	}

	for _, metal := range ToolMetals {
		for _, kind := range equipmentKinds {
			t.item("metal/" + kind + "/" + metal)
		}
	}
	return m
}

// Beneath returns the catalogue of the nether companion content set.
func Beneath() *Memory {
	m := New()
	b := builder{m: m, ns: ident.Beneath}
	for _, w := range []string{"crimson", "warped"} {
		addWood(b, w)
	}
	b.block("ore/normal_nether_gold", cubeShape())
	b.block("ore/nether_cupronickel", cubeShape())
	return m
}

func addRock(b builder, rock string) {
	for _, family := range []string{"raw", "smooth", "cobble", "mossy_cobble", "bricks", "mossy_bricks", "cracked_bricks"} {
		prefix := "rock/" + family + "/" + rock
		b.block(prefix, cubeShape())
		b.block(prefix+"_stairs", stairsShape())
		b.block(prefix+"_slab", slabShape())
		b.block(prefix+"_wall", wallShape())
	}
	b.block("rock/chiseled/"+rock, cubeShape())
	b.block("rock/gravel/"+rock, cubeShape())
	b.block("rock/hardened/"+rock, cubeShape())
	b.block("rock/button/"+rock, buttonShape())
	b.block("rock/pressure_plate/"+rock, pressurePlateShape())
}

func addWood(b builder, wood string) {
	b.block("wood/log/"+wood, axisShape())
	b.block("wood/stripped_log/"+wood, axisShape())
	b.block("wood/wood/"+wood, axisShape())
	b.block("wood/stripped_wood/"+wood, axisShape())
	b.block("wood/planks/"+wood, cubeShape())
	b.block("wood/planks/"+wood+"_stairs", stairsShape())
	b.block("wood/planks/"+wood+"_slab", slabShape())
	b.block("wood/fence/"+wood, paneShape())
	b.block("wood/fence_gate/"+wood, fenceGateShape())
	b.block("wood/door/"+wood, doorShape())
	b.block("wood/trapdoor/"+wood, trapdoorShape())
	b.block("wood/pressure_plate/"+wood, pressurePlateShape())
	b.block("wood/button/"+wood, buttonShape())
	if b.ns != ident.TFC {
		return
	}
	b.block("wood/sign/"+wood, signShape())
	b.block("wood/wall_sign/"+wood, wallSignShape())
	b.block("wood/chest/"+wood, chestShape())
	b.block("wood/trapped_chest/"+wood, chestShape())
	b.block("wood/lectern/"+wood, lecternShape())
	b.block("wood/workbench/"+wood, cubeShape())
}

func addMetals(b builder) {
	b.block("metal/bars/wrought_iron", paneShape())
	b.block("metal/chain/wrought_iron", chainShape())
	b.block("metal/trapdoor/wrought_iron", trapdoorShape())
	for _, metal := range []string{"wrought_iron", "gold", "copper", "bronze", "steel"} {
		b.block("metal/block/"+metal, cubeShape())
	}
	for _, family := range []string{"block", "exposed_block", "weathered_block", "oxidized_block"} {
		if family != "block" {
			b.block("metal/"+family+"/copper", cubeShape())
		}
		b.block("metal/"+family+"/copper_slab", slabShape())
		b.block("metal/"+family+"/copper_stairs", stairsShape())
	}
}
