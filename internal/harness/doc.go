// Package harness runs placement scenarios through the remapping engine
// and checks the outcome.
//
// A scenario describes one template placement: the structure the template
// came from, the dimension and anchor it is placed at, the terrain column
// under the anchor, and the template itself. The harness places the
// template with a fresh worker, records every decision, stores the run in
// an in-memory audit database and evaluates the assertions.
//
// # Scenario Format
//
//	name: stronghold_armoury
//	description: "Stronghold room in diorite country"
//	origin: betterstrongholds:rooms/armoury
//	dimension: minecraft:overworld
//	anchor: {x: 8, y: 64, z: -8}
//	terrain:
//	  - tfc:grass/silt
//	  - tfc:dirt/silt
//	  - tfc:rock/raw/diorite
//	blocks:
//	  - pos: [0, 0, 0]
//	    state: minecraft:stone_bricks
//	entities:
//	  - pos: [1.5, 1, 2.5]
//	    block_pos: [1, 1, 2]
//	    nbt: {id: minecraft:armor_stand}
//	assertions:
//	  - type: block_out
//	    pos: [0, 0, 0]
//	    state: tfc:rock/bricks/diorite
//	  - type: reason_count
//	    reason: replaced
//	    count: 1
//
// Instead of inline blocks a scenario may name a template file, resolved
// relative to the scenario file.
//
// # Assertion Types
//
//   - block_out: the block placed at a template position has the given state
//   - reason_count: exactly count block decisions have the given reason
//   - category_count: exactly count replaced blocks have the given category
//   - entity_tier: every entity decision picked the given equipment tier
//   - item_out: some entity stack was rewritten to the given item
//   - stored_summary: the stored run summary has the given reason counts
//
// # Deterministic Testing
//
// Runs use a fixed run ID (scenario run_id or "test-run-default") and the
// deterministic clock from testutil, so stored runs and golden traces are
// identical across executions.
package harness
