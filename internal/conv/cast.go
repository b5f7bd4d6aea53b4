package conv

import (
	"fmt"
	"math"
)

// IntToUint32 converts a non-negative int that fits in 32 bits.
func IntToUint32(v int) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (negative)", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint32 (too large)", v)
	}
	return uint32(v), nil
}

// IntToUint8 converts a non-negative int that fits in 8 bits.
func IntToUint8(v int) (uint8, error) {
	if v < 0 || v > math.MaxUint8 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint8", v)
	}
	return uint8(v), nil
}

// Uint32ToInt converts a length read from disk into an int.
func Uint32ToInt(v uint32) (int, error) {
	if uint64(v) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to int (too large)", v)
	}
	return int(v), nil
}

// MustUint32 is IntToUint32 for values bounded by construction. It panics
// on overflow.
func MustUint32(v int) uint32 {
	u, err := IntToUint32(v)
	if err != nil {
		panic(err)
	}
	return u
}
