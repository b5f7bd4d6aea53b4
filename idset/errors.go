package idset

import "errors"

// ErrEncoding is returned when a binary id sequence is not a multiple of 4 bytes.
var ErrEncoding = errors.New("idset: encoded length is not a multiple of 4")
