package rules

import (
	"slices"

	"github.com/claustra01/yungsbettertfc/internal/ident"
	"github.com/claustra01/yungsbettertfc/internal/scope"
)

// Chains per scope, after the always-on categories.
var (
	alwaysChain = []Category{CategoryFirepit}

	fullChain = []Category{
		CategoryStone,
		CategorySoil,
		CategoryWood,
		CategoryMetal,
		CategoryDecor,
		CategoryVessel,
		CategoryLighting,
	}

	utilityChain = []Category{
		CategoryOverlay,
		CategoryWoodUtility,
		CategoryMetalUtility,
		CategoryDecor,
		CategoryVessel,
		CategoryLighting,
	}
)

// Chain returns the categories consulted for a scope, in order.
func Chain(s scope.Scope) []Category {
	out := slices.Clone(alwaysChain)
	if s == scope.Full {
		return append(out, fullChain...)
	}
	return append(out, utilityChain...)
}

// Result is a chain match.
type Result struct {
	ID       ident.ID
	Category Category
}

// Engine runs the replacement chain against a target registry.
// An Engine is immutable and safe for concurrent use.
type Engine struct {
	reg Membership
}

// New returns an engine validating against reg.
func New(reg Membership) *Engine {
	return &Engine{reg: reg}
}

// Match runs the chain for a base-namespace path with the infested prefix
// already stripped. The category of the first candidate is reported even
// when the candidate is rejected by the registry, with ok false.
func (e *Engine) Match(path string, ctx Context) (Result, bool) {
	for _, cat := range Chain(ctx.Scope) {
		id, ok := matchers[cat](path, ctx, e.reg)
		if !ok {
			continue
		}
		res := Result{ID: id, Category: cat}
		return res, e.reg.HasBlock(id)
	}
	return Result{}, false
}

// Classify maps a block identifier. Identifiers outside the base namespace
// never match, so classifying an output again yields nothing.
func (e *Engine) Classify(id ident.ID, ctx Context) (ident.ID, bool) {
	if !id.In(ident.Minecraft) {
		return ident.ID{}, false
	}
	path, infested := ident.StripInfested(id.Path)
	ctx.Infested = infested
	res, ok := e.Match(path, ctx)
	if !ok {
		return ident.ID{}, false
	}
	return res.ID, true
}

// Sources lists what a category reacts to, sorted: fixed source paths for
// table categories and "[prefix]*suffix" patterns for wood.
func Sources(cat Category) []string {
	var out []string
	switch cat {
	case CategoryFirepit:
		out = setKeys(firepitSources)
	case CategoryOverlay:
		out = mapKeys(overlayTable)
	case CategoryWoodUtility:
		out = mapKeys(woodUtilityTable)
	case CategoryMetalUtility:
		out = setKeys(metalUtility)
	case CategoryStone:
		for k := range stoneTable {
			out = append(out, k)
		}
	case CategorySoil:
		out = mapKeys(soilTable)
	case CategoryWood:
		out = mapKeys(woodUtilityTable)
		for _, r := range woodSuffixRules {
			out = append(out, r.prefix+"*"+r.suffix)
		}
	case CategoryMetal:
		out = mapKeys(metalTable)
	case CategoryDecor:
		out = append(mapKeys(decorTable), "potted_*", "*_candle", "*_candle_cake")
	case CategoryVessel:
		out = mapKeys(vesselTable)
	case CategoryLighting:
		out = mapKeys(lightingTable)
	}
	slices.Sort(out)
	return out
}

func mapKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

func setKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
