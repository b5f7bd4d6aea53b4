// Package catalog tracks the ontology releases stored in a blob store.
//
// A catalog is a single binary blob named CATALOG. It lists every
// published snapshot with its release date, format version, compression,
// size and CRC32C, and names one of them as current. Snapshots themselves
// live under releases/ and are never rewritten; publishing a release
// writes the snapshot first and then replaces the catalog.
//
//	cs := catalog.NewStore(store)
//	cat, err := cs.Load(ctx)
//	entry, err := cat.CurrentEntry()
package catalog
