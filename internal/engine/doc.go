// Package engine wires the remapping modules into a structure processor.
//
// An Engine holds everything that is shared between generation workers:
// the rule chain, the hint resolver, the activation gate, the equipment
// remapper and the target registry. All of it is immutable once built.
//
// ARCHITECTURE:
//
// Per-Worker State:
// Each generation worker owns a Worker, which owns the rock, soil and wood
// hint caches. A Worker is never shared, so the caches need no locking.
// Blocks of one placement are processed by one Worker in template order.
//
// Block Flow:
//  1. air and non-base namespaces pass through
//  2. the infested prefix is stripped
//  3. the upper half of tall seagrass becomes water, bypassing the chain
//  4. hints are resolved once per placement anchor (cached)
//  5. the rule chain picks a target block
//  6. the source state is projected onto the target's default state
//
// Entity Flow:
// Item frames and armor stands have their gear rewritten to the tier picked
// by the template origin.
//
// Attachment:
// Attach is a placement hook. It adds the Worker to the placement settings
// when the template origin passes the gate, at most once per settings.
//
// Diagnostics:
// A process-wide Diagnostics counts replacements and logs the first one.
// It is optional; an Engine without it behaves identically.
package engine
