package hash

import (
	"encoding/base64"
	"encoding/binary"
	"hash/crc32"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

// CRC32C returns the Castagnoli checksum of data.
func CRC32C(data []byte) uint32 {
	return crc32.Checksum(data, castagnoli)
}

// CRC32CBase64 returns the checksum of data as base64 of its big-endian
// bytes, the form S3 expects in the x-amz-checksum-crc32c header.
func CRC32CBase64(data []byte) string {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], CRC32C(data))
	return base64.StdEncoding.EncodeToString(b[:])
}
