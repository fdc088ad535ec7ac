// Package rules implements the ordered replacement chain that maps a base
// block path onto a target block identifier.
//
// The chain is a fixed sequence of category matchers. Each matcher is pure:
// it reads the block path, the placement Context and registry membership,
// and either produces a candidate or declines. The first category with a
// candidate wins and later categories are not consulted.
//
// CHAIN ORDER:
//
// Always, in every scope:
//  1. firepit: furnaces and campfires become the firepit
//
// UtilityOnly scope (every dimension except the overworld):
//  2. overlay: nether wood and ore from the companion set, only in the
//     nether and only when that set is registered
//  3. wood_utility: chests, lecterns and crafting tables by wood hint
//  4. metal_utility: bars, chains and iron trapdoors
//  5. decor: aquatic plants, flower pots, candles
//  6. vessel: cauldrons
//  7. lighting: torches
//
// Full scope (the overworld):
//  2. stone: stone, brick, cobble and andesite families by rock hint
//  3. soil: dirt, grass and farmland by soil hint
//  4. wood: wood utility blocks, then species-named wood by suffix
//  5. metal
//  6. decor
//  7. vessel
//  8. lighting
//
// REGISTRY SAFETY:
//
// Every winning candidate is checked against the target registry before it
// is returned. A winner that is not registered is a miss for the whole
// chain; the block passes through unchanged. Categories that guess at
// optional content (potted plants, coloured candles, the nether overlay)
// check membership themselves and decline instead, so the chain continues.
// Wood outputs retry with the default species before giving up.
//
// The tables are built once and shared read-only by every worker.
package rules
