package codec

import "errors"

var (
	// ErrMalformed is returned when the input is truncated or inconsistent.
	ErrMalformed = errors.New("malformed binary")

	// ErrUnsupportedVersion is returned for unknown format versions.
	ErrUnsupportedVersion = errors.New("unsupported binary version")

	// ErrChecksum is returned when a decompressed snapshot does not match
	// the checksum of its envelope.
	ErrChecksum = errors.New("checksum mismatch")
)
