package rules

import (
	"strings"

	"github.com/claustra01/yungsbettertfc/internal/hint"
	"github.com/claustra01/yungsbettertfc/internal/ident"
)

// Membership is the registry view the matchers need.
type Membership interface {
	HasBlock(id ident.ID) bool
}

// Category names one stage of the chain.
type Category string

const (
	CategoryFirepit      Category = "firepit"
	CategoryOverlay      Category = "overlay"
	CategoryWoodUtility  Category = "wood_utility"
	CategoryMetalUtility Category = "metal_utility"
	CategoryStone        Category = "stone"
	CategorySoil         Category = "soil"
	CategoryWood         Category = "wood"
	CategoryMetal        Category = "metal"
	CategoryDecor        Category = "decor"
	CategoryVessel       Category = "vessel"
	CategoryLighting     Category = "lighting"
)

// matchFunc is one category matcher.
type matchFunc func(path string, ctx Context, reg Membership) (ident.ID, bool)

var matchers = map[Category]matchFunc{
	CategoryFirepit:      matchFirepit,
	CategoryOverlay:      matchOverlay,
	CategoryWoodUtility:  matchWoodUtility,
	CategoryMetalUtility: matchMetalUtility,
	CategoryStone:        matchStone,
	CategorySoil:         matchSoil,
	CategoryWood:         matchWood,
	CategoryMetal:        matchMetal,
	CategoryDecor:        matchDecor,
	CategoryVessel:       matchVessel,
	CategoryLighting:     matchLighting,
}

func tfc(path string) ident.ID {
	return ident.New(ident.TFC, path)
}

// Firepit is the target of the cooking fixtures.
var Firepit = tfc("firepit")

func matchFirepit(path string, _ Context, _ Membership) (ident.ID, bool) {
	if firepitSources[path] {
		return Firepit, true
	}
	return ident.ID{}, false
}

func matchOverlay(path string, ctx Context, reg Membership) (ident.ID, bool) {
	if !ctx.Overlay {
		return ident.ID{}, false
	}
	target, ok := overlayTable[path]
	if !ok {
		return ident.ID{}, false
	}
	id := ident.New(ident.Beneath, target)
	if !reg.HasBlock(id) {
		return ident.ID{}, false
	}
	return id, true
}

func matchStone(path string, ctx Context, _ Membership) (ident.ID, bool) {
	t, ok := stoneTable[path]
	if !ok {
		return ident.ID{}, false
	}
	return tfc("rock/" + t.family + "/" + ctx.Rock + t.suffix), true
}

func matchSoil(path string, ctx Context, _ Membership) (ident.ID, bool) {
	family, ok := soilTable[path]
	if !ok {
		return ident.ID{}, false
	}
	return tfc(family + "/" + ctx.Soil), true
}

func matchWoodUtility(path string, ctx Context, reg Membership) (ident.ID, bool) {
	family, ok := woodUtilityTable[path]
	if !ok {
		return ident.ID{}, false
	}
	return woodTarget(reg, "wood/"+family+"/", ctx.Wood, "", ctx.DefaultWood), true
}

func matchWood(path string, ctx Context, reg Membership) (ident.ID, bool) {
	if id, ok := matchWoodUtility(path, ctx, reg); ok {
		return id, true
	}
	for _, rule := range woodSuffixRules {
		species, ok := rule.species(path)
		if !ok {
			continue
		}
		if !hint.IsVanillaWood(species) {
			return ident.ID{}, false
		}
		if rule.planks {
			return woodTarget(reg, "wood/planks/", species, rule.tail, ctx.DefaultWood), true
		}
		return woodTarget(reg, "wood/"+rule.family+"/", species, "", ctx.DefaultWood), true
	}
	return ident.ID{}, false
}

// species returns the part of path between the rule's prefix and suffix.
func (r woodSuffixRule) species(path string) (string, bool) {
	if !strings.HasPrefix(path, r.prefix) || !strings.HasSuffix(path, r.suffix) {
		return "", false
	}
	if len(path) < len(r.prefix)+len(r.suffix) {
		return "", false
	}
	return path[len(r.prefix) : len(path)-len(r.suffix)], true
}

// NormalizeWood maps a source species to the target species used for it.
func NormalizeWood(species string) string {
	if to, ok := speciesFallback[species]; ok {
		return to
	}
	return species
}

// woodTarget builds prefix+species+suffix for the normalized species, and
// falls back to the fallback species when that block is not registered.
// An empty fallback means hint.DefaultWood.
func woodTarget(reg Membership, prefix, species, suffix, fallback string) ident.ID {
	id := tfc(prefix + NormalizeWood(species) + suffix)
	if reg.HasBlock(id) {
		return id
	}
	if fallback == "" {
		fallback = hint.DefaultWood
	}
	return tfc(prefix + NormalizeWood(fallback) + suffix)
}

func matchMetal(path string, _ Context, _ Membership) (ident.ID, bool) {
	target, ok := metalTable[path]
	if !ok {
		return ident.ID{}, false
	}
	return tfc(target), true
}

func matchMetalUtility(path string, ctx Context, reg Membership) (ident.ID, bool) {
	if !metalUtility[path] {
		return ident.ID{}, false
	}
	return matchMetal(path, ctx, reg)
}

func matchDecor(path string, _ Context, reg Membership) (ident.ID, bool) {
	if target, ok := decorTable[path]; ok {
		return ident.MustParse(target), true
	}
	if plant, ok := strings.CutPrefix(path, "potted_"); ok {
		if id := tfc("plant/potted/" + plant); reg.HasBlock(id) {
			return id, true
		}
	}
	if color, ok := strings.CutSuffix(path, "_candle"); ok {
		if id := tfc("candle/" + color); reg.HasBlock(id) {
			return id, true
		}
	}
	if color, ok := strings.CutSuffix(path, "_candle_cake"); ok {
		if id := tfc("candle_cake/" + color); reg.HasBlock(id) {
			return id, true
		}
	}
	return ident.ID{}, false
}

func matchVessel(path string, _ Context, _ Membership) (ident.ID, bool) {
	target, ok := vesselTable[path]
	if !ok {
		return ident.ID{}, false
	}
	return tfc(target), true
}

func matchLighting(path string, _ Context, _ Membership) (ident.ID, bool) {
	target, ok := lightingTable[path]
	if !ok {
		return ident.ID{}, false
	}
	return tfc(target), true
}
