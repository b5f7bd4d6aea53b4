package codec

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hpograph/testutil"
)

func TestCompress_RoundTrip(t *testing.T) {
	raw := mustEncode(t, testutil.NewRNG(1).Ontology(testutil.RandomOptions{Terms: 300, Genes: 50, Omim: 20}))

	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			env, err := Compress(raw, c)
			require.NoError(t, err)
			assert.True(t, IsCompressed(env))
			if c != CompressionNone {
				assert.Less(t, len(env), len(raw))
			}

			out, err := Decompress(env)
			require.NoError(t, err)
			assert.Equal(t, raw, out)

			ont, err := Decode(out)
			require.NoError(t, err)
			assert.Equal(t, 300, ont.Len())
		})
	}
}

func TestCompress_Incompressible(t *testing.T) {
	raw := []byte{0x01, 0x02}
	env, err := Compress(raw, CompressionLZ4)
	require.NoError(t, err)
	assert.Equal(t, byte(CompressionNone), env[4])

	out, err := Decompress(env)
	require.NoError(t, err)
	assert.Equal(t, raw, out)
}

func TestDecompress_PassThrough(t *testing.T) {
	out, err := Decompress(tinyV3)
	require.NoError(t, err)
	assert.Equal(t, tinyV3, out)
	assert.False(t, IsCompressed(tinyV3))
}

func TestDecompress_Errors(t *testing.T) {
	env, err := Compress(tinyV3, CompressionNone)
	require.NoError(t, err)

	corrupt := bytes.Clone(env)
	corrupt[len(corrupt)-1] ^= 0xFF
	_, err = Decompress(corrupt)
	require.ErrorIs(t, err, ErrChecksum)

	_, err = Decompress(env[:8])
	require.ErrorIs(t, err, ErrMalformed)

	_, err = Decompress(env[:len(env)-3])
	require.ErrorIs(t, err, ErrMalformed)

	unknown := bytes.Clone(env)
	unknown[4] = 9
	_, err = Decompress(unknown)
	require.ErrorIs(t, err, ErrMalformed)

	zenv, err := Compress(tinyV3, CompressionZSTD)
	require.NoError(t, err)
	_, err = Decompress(zenv[:len(zenv)-4])
	require.Error(t, err)

	_, err = Compress(tinyV3, Compression(7))
	require.Error(t, err)
}

func TestDecompress_ZstdBoundedBySize(t *testing.T) {
	raw := make([]byte, 16<<20)
	env, err := Compress(raw, CompressionZSTD)
	require.NoError(t, err)
	require.Less(t, len(env), 1<<16)

	binary.BigEndian.PutUint32(env[9:13], 10)

	_, err = Decompress(env)
	require.ErrorIs(t, err, ErrMalformed)
	assert.Contains(t, err.Error(), "decompressed 11 bytes")
}

func TestParseCompression(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		got, err := ParseCompression(c.String())
		require.NoError(t, err)
		assert.Equal(t, c, got)
	}
	got, err := ParseCompression("")
	require.NoError(t, err)
	assert.Equal(t, CompressionNone, got)
	_, err = ParseCompression("gzip")
	require.Error(t, err)
}
