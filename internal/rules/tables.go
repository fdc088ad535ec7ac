package rules

// Replacement tables. Paths are base-namespace block paths with the
// infested prefix already removed.

// stoneTarget is "rock/<family>/<rock><suffix>".
type stoneTarget struct {
	family string
	suffix string
}

var stoneTable = map[string]stoneTarget{
	"stone_bricks":             {"bricks", ""},
	"mossy_stone_bricks":       {"mossy_bricks", ""},
	"cracked_stone_bricks":     {"cracked_bricks", ""},
	"chiseled_stone_bricks":    {"chiseled", ""},
	"stone_brick_stairs":       {"bricks", "_stairs"},
	"stone_brick_slab":         {"bricks", "_slab"},
	"stone_brick_wall":         {"bricks", "_wall"},
	"mossy_stone_brick_stairs": {"mossy_bricks", "_stairs"},
	"mossy_stone_brick_slab":   {"mossy_bricks", "_slab"},
	"mossy_stone_brick_wall":   {"mossy_bricks", "_wall"},

	"cobblestone":              {"cobble", ""},
	"mossy_cobblestone":        {"mossy_cobble", ""},
	"cobblestone_stairs":       {"cobble", "_stairs"},
	"cobblestone_slab":         {"cobble", "_slab"},
	"cobblestone_wall":         {"cobble", "_wall"},
	"mossy_cobblestone_stairs": {"mossy_cobble", "_stairs"},
	"mossy_cobblestone_slab":   {"mossy_cobble", "_slab"},
	"mossy_cobblestone_wall":   {"mossy_cobble", "_wall"},

	"stone":             {"raw", ""},
	"stone_stairs":      {"raw", "_stairs"},
	"stone_slab":        {"raw", "_slab"},
	"smooth_stone":      {"smooth", ""},
	"smooth_stone_slab": {"smooth", "_slab"},

	"gravel": {"gravel", ""},

	"andesite":                 {"raw", ""},
	"andesite_stairs":          {"raw", "_stairs"},
	"andesite_slab":            {"raw", "_slab"},
	"andesite_wall":            {"raw", "_wall"},
	"polished_andesite":        {"smooth", ""},
	"polished_andesite_stairs": {"smooth", "_stairs"},
	"polished_andesite_slab":   {"smooth", "_slab"},

	"stone_button":         {"button", ""},
	"stone_pressure_plate": {"pressure_plate", ""},
}

// soilTable maps to "<family>/<soil>".
var soilTable = map[string]string{
	"dirt":        "dirt",
	"coarse_dirt": "coarse_dirt",
	"grass_block": "grass",
	"grass_path":  "grass_path",
	"rooted_dirt": "rooted_dirt",
	"farmland":    "farmland",
}

// woodUtilityTable maps blocks with no species in their name to
// "wood/<family>/<wood hint>".
var woodUtilityTable = map[string]string{
	"chest":          "chest",
	"trapped_chest":  "trapped_chest",
	"lectern":        "lectern",
	"crafting_table": "workbench",
}

// woodSuffixRule maps "[prefix]<species><suffix>" to "wood/<family>/<species>"
// or, for the planks family, "wood/planks/<species><tail>".
type woodSuffixRule struct {
	prefix string
	suffix string
	family string
	planks bool
	tail   string
}

// woodSuffixRules are tried in order; the first whose affixes match decides.
var woodSuffixRules = []woodSuffixRule{
	{suffix: "_planks", planks: true},
	{suffix: "_stairs", planks: true, tail: "_stairs"},
	{suffix: "_slab", planks: true, tail: "_slab"},
	{prefix: "stripped_", suffix: "_log", family: "stripped_log"},
	{prefix: "stripped_", suffix: "_wood", family: "stripped_wood"},
	{suffix: "_log", family: "log"},
	{suffix: "_wood", family: "wood"},
	{suffix: "_fence_gate", family: "fence_gate"},
	{suffix: "_fence", family: "fence"},
	{suffix: "_door", family: "door"},
	{suffix: "_trapdoor", family: "trapdoor"},
	{suffix: "_pressure_plate", family: "pressure_plate"},
	{suffix: "_button", family: "button"},
	{suffix: "_wall_sign", family: "wall_sign"},
	{suffix: "_sign", family: "sign"},
}

// speciesFallback lists source woods with no target of their own.
var speciesFallback = map[string]string{
	"dark_oak": "oak",
	"jungle":   "acacia",
	"cherry":   "oak",
	"bamboo":   "oak",
	"crimson":  "oak",
	"warped":   "oak",
}

var metalTable = map[string]string{
	"iron_bars":     "metal/bars/wrought_iron",
	"chain":         "metal/chain/wrought_iron",
	"iron_block":    "metal/block/wrought_iron",
	"iron_trapdoor": "metal/trapdoor/wrought_iron",

	"gold_block":     "metal/block/gold",
	"raw_gold_block": "metal/block/gold",

	"copper_block":      "metal/block/copper",
	"cut_copper":        "metal/block/copper",
	"cut_copper_slab":   "metal/block/copper_slab",
	"cut_copper_stairs": "metal/block/copper_stairs",

	"exposed_copper":            "metal/exposed_block/copper",
	"exposed_cut_copper":        "metal/exposed_block/copper",
	"exposed_cut_copper_slab":   "metal/exposed_block/copper_slab",
	"exposed_cut_copper_stairs": "metal/exposed_block/copper_stairs",

	"weathered_copper":            "metal/weathered_block/copper",
	"weathered_cut_copper":        "metal/weathered_block/copper",
	"weathered_cut_copper_slab":   "metal/weathered_block/copper_slab",
	"weathered_cut_copper_stairs": "metal/weathered_block/copper_stairs",

	"oxidized_copper":                  "metal/oxidized_block/copper",
	"oxidized_cut_copper":              "metal/oxidized_block/copper",
	"waxed_oxidized_cut_copper":        "metal/oxidized_block/copper",
	"oxidized_cut_copper_slab":         "metal/oxidized_block/copper_slab",
	"waxed_oxidized_cut_copper_slab":   "metal/oxidized_block/copper_slab",
	"oxidized_cut_copper_stairs":       "metal/oxidized_block/copper_stairs",
	"waxed_oxidized_cut_copper_stairs": "metal/oxidized_block/copper_stairs",
}

// metalUtility is the part of metalTable that also runs outside the overworld.
var metalUtility = map[string]bool{
	"iron_bars":     true,
	"chain":         true,
	"iron_trapdoor": true,
}

// decorTable holds fixed decor replacements as full identifiers.
var decorTable = map[string]string{
	"kelp":          "minecraft:water",
	"kelp_plant":    "minecraft:water",
	"seagrass":      "tfc:plant/eel_grass",
	"tall_seagrass": "tfc:plant/eel_grass",
	"sea_pickle":    "tfc:sea_pickle",
	"candle":        "tfc:candle",
	"candle_cake":   "tfc:candle_cake",
}

var vesselTable = map[string]string{
	"cauldron":             "ceramic/large_vessel",
	"water_cauldron":       "ceramic/large_vessel",
	"lava_cauldron":        "ceramic/large_vessel",
	"powder_snow_cauldron": "ceramic/large_vessel",
}

var lightingTable = map[string]string{
	"torch":      "torch",
	"wall_torch": "wall_torch",
}

var firepitSources = map[string]bool{
	"furnace":       true,
	"campfire":      true,
	"soul_campfire": true,
}

// overlayTable maps nether wood and ore onto the companion namespace.
var overlayTable = buildOverlayTable()

func buildOverlayTable() map[string]string {
	t := map[string]string{
		"nether_gold_ore": "ore/normal_nether_gold",
	}
	for _, w := range []string{"crimson", "warped"} {
		t[w+"_planks"] = "wood/planks/" + w
		t[w+"_slab"] = "wood/planks/" + w + "_slab"
		t[w+"_stairs"] = "wood/planks/" + w + "_stairs"
		for _, kind := range []string{"door", "trapdoor", "button", "pressure_plate", "fence", "fence_gate"} {
			t[w+"_"+kind] = "wood/" + kind + "/" + w
		}
		t[w+"_stem"] = "wood/log/" + w
		t[w+"_hyphae"] = "wood/wood/" + w
		t["stripped_"+w+"_stem"] = "wood/stripped_log/" + w
		t["stripped_"+w+"_hyphae"] = "wood/stripped_wood/" + w
	}
	return t
}
