// Package codec serializes frozen ontologies.
//
// # Binary format
//
// All integers are big-endian.
//
//	Header      "HPO" + u8 version (absent in legacy version 1 files)
//	Metadata    u16 year, u8 month, u8 day (version >= 2)
//	Sections    u32 byte length + payload, in this order:
//	              terms, parent edges, genes, OMIM diseases,
//	              ORPHA diseases (version >= 3)
//
//	Term        u32 total_len, u32 id, u8 name_len, name
//	            [u8 flags (bit 0 obsolete), u32 replacement (0 none)]  version >= 2
//	Parents     u32 parent_count, u32 term_id, parent_count × u32 parent_id
//	Gene        u32 total_len, u32 id, u8 name_len, name, u32 term_count, term ids
//	Disease     u32 total_len, u32 id, u32 name_len, name, u32 term_count, term ids
//
// total_len counts the whole record including its own four bytes. Records
// are written in ascending id order, so encoding the same ontology always
// yields the same bytes. Information content is not stored; it is
// recomputed when decoding.
//
// Decoding validates every length against the remaining input and returns
// an error wrapping ErrMalformed instead of panicking.
//
// # Compression envelope
//
// Compress wraps an encoded snapshot in an envelope for storage:
//
//	"HPZC", u8 algorithm, u32 CRC32 of the raw snapshot, u32 raw length, payload
//
// Decompress accepts both enveloped and raw snapshots.
package codec
