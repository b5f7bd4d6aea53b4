package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIntToUint32(t *testing.T) {
	v, err := IntToUint32(42)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), v)

	_, err = IntToUint32(-1)
	require.Error(t, err)

	if math.MaxInt > math.MaxUint32 {
		var big uint64 = math.MaxUint32 + 1
		_, err = IntToUint32(int(big))
		require.Error(t, err)
	}
}

func TestIntToUint8(t *testing.T) {
	v, err := IntToUint8(255)
	require.NoError(t, err)
	assert.Equal(t, uint8(255), v)

	_, err = IntToUint8(256)
	require.Error(t, err)
	_, err = IntToUint8(-3)
	require.Error(t, err)
}

func TestUint32ToInt(t *testing.T) {
	v, err := Uint32ToInt(1 << 20)
	require.NoError(t, err)
	assert.Equal(t, 1<<20, v)
}

func TestMustUint32(t *testing.T) {
	assert.Equal(t, uint32(7), MustUint32(7))
	assert.Panics(t, func() { MustUint32(-7) })
}
