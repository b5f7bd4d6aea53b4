// Package hash provides the CRC32-Castagnoli checksum shared by snapshot
// compression envelopes, the release catalog and S3 uploads.
//
// Go's hash/crc32 uses hardware instructions (SSE4.2, ARM CRC) for this
// polynomial when available.
package hash
