// Package trace records the decisions of a remapping run as an ordered
// list of records and renders them in a canonical form.
//
// Records are numbered with a logical sequence, never a wall-clock time,
// so the same template placed with the same inputs produces byte-identical
// output. The canonical form is used for stored audits, golden files and
// run digests.
//
// Canonical JSON:
//   - object keys sorted by UTF-16 code units
//   - strings NFC normalized, no HTML escaping
//   - no insignificant whitespace
//   - integers only; fractional numbers are rejected
package trace
