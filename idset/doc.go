// Package idset implements a sorted, deduplicated set of small integer ids.
//
// Set is the set algebra primitive used for parent, ancestor, child and
// annotation sets. Elements are kept in ascending order at all times:
// membership uses binary search, union and intersection are single linear
// merges, and iteration order is deterministic. The binary codec relies on
// that order to produce byte-identical snapshots.
//
// The zero value is an empty set ready to use. Sets are not safe for
// concurrent mutation; once an ontology is frozen its sets are only read.
package idset
