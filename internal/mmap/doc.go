// Package mmap maps ontology snapshot files into memory read-only.
//
// A snapshot is decoded in a single sequential pass, so the local blob store
// maps the file, advises AccessSequential and hands the bytes straight to the
// decoder without an intermediate copy.
//
//	m, err := mmap.Open("hp-2025-01-16.hpo")
//	if err != nil { ... }
//	defer m.Close()
//
//	_ = m.Advise(mmap.AccessSequential)
//	data := m.Bytes()
//
// Unix platforms use mmap(2) and madvise(2). Windows uses
// CreateFileMapping/MapViewOfFile and ignores access hints.
//
// Mapping is safe for concurrent reads. Close is idempotent, but callers must
// stop using Bytes before calling it.
package mmap
