// Package store provides SQLite-backed audit storage for remapping runs.
//
// A run is one template placement (or one scenario) processed by the
// engine. The store keeps:
//   - Runs: what was placed, where, in which dimension, and the run digest
//   - Records: every block and entity decision of the run, in sequence
//
// # Ordering
//
// Records are ordered by their logical sequence number, never by the time
// they were written. All record queries use ORDER BY seq ASC so a run reads
// back identically however it was written.
//
// # Bodies
//
// Record bodies are stored as canonical JSON (see package trace). The
// reason and category columns are copies of body fields for aggregation.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL
//   - busy_timeout=5000
//   - foreign_keys=ON
package store
