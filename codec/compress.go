package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"sync"

	"github.com/hupe1980/hpograph/internal/hash"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Compression selects the envelope algorithm.
type Compression uint8

const (
	// CompressionNone stores the snapshot as is.
	CompressionNone Compression = 0
	// CompressionLZ4 uses LZ4 block compression (fast).
	CompressionLZ4 Compression = 1
	// CompressionZSTD uses zstd (better ratio).
	CompressionZSTD Compression = 2
)

// String returns the lower-case algorithm name.
func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionLZ4:
		return "lz4"
	case CompressionZSTD:
		return "zstd"
	default:
		return fmt.Sprintf("compression(%d)", uint8(c))
	}
}

// ParseCompression parses "none", "lz4" or "zstd". The empty string means
// none.
func ParseCompression(s string) (Compression, error) {
	switch s {
	case "", "none":
		return CompressionNone, nil
	case "lz4":
		return CompressionLZ4, nil
	case "zstd":
		return CompressionZSTD, nil
	default:
		return 0, fmt.Errorf("unknown compression %q", s)
	}
}

var envelopeMagic = []byte("HPZC")

const (
	envelopeHeaderSize = 4 + 1 + 4 + 4

	// maxLZ4Ratio bounds the size an LZ4 block can expand to.
	maxLZ4Ratio = 255
	// maxCapacityHint caps preallocation based on untrusted headers.
	maxCapacityHint = 64 << 20
)

// ZSTD encoder/decoder pools for efficiency
var (
	zstdEncoderPool sync.Pool
	zstdDecoderPool sync.Pool
)

func getZstdEncoder() *zstd.Encoder {
	if v := zstdEncoderPool.Get(); v != nil {
		return v.(*zstd.Encoder)
	}
	enc, _ := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	return enc
}

func putZstdEncoder(enc *zstd.Encoder) {
	zstdEncoderPool.Put(enc)
}

func getZstdDecoder() *zstd.Decoder {
	if v := zstdDecoderPool.Get(); v != nil {
		return v.(*zstd.Decoder)
	}
	dec, _ := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	return dec
}

func putZstdDecoder(dec *zstd.Decoder) {
	_ = dec.Reset(nil)
	zstdDecoderPool.Put(dec)
}

// zstdDecode inflates payload, stopping one byte past size so oversized
// output is detected without materializing it.
func zstdDecode(payload []byte, size uint32) ([]byte, error) {
	dec := getZstdDecoder()
	defer putZstdDecoder(dec)

	if err := dec.Reset(bytes.NewReader(payload)); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.Grow(int(min(size, maxCapacityHint)))
	if _, err := buf.ReadFrom(io.LimitReader(dec, int64(size)+1)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// IsCompressed reports whether data starts with an envelope header.
func IsCompressed(data []byte) bool {
	return len(data) >= len(envelopeMagic) && bytes.Equal(data[:len(envelopeMagic)], envelopeMagic)
}

// Compress wraps raw in an envelope. LZ4 falls back to storing the data
// uncompressed if it does not shrink.
func Compress(raw []byte, c Compression) ([]byte, error) {
	if uint64(len(raw)) > 0xFFFFFFFF {
		return nil, fmt.Errorf("snapshot of %d bytes is too large for an envelope", len(raw))
	}

	var payload []byte
	switch c {
	case CompressionNone:
		payload = raw
	case CompressionLZ4:
		buf := make([]byte, lz4.CompressBlockBound(len(raw)))
		n, err := lz4.CompressBlock(raw, buf, nil)
		if err != nil {
			return nil, err
		}
		if n == 0 || n >= len(raw) {
			c, payload = CompressionNone, raw
		} else {
			payload = buf[:n]
		}
	case CompressionZSTD:
		enc := getZstdEncoder()
		payload = enc.EncodeAll(raw, nil)
		putZstdEncoder(enc)
	default:
		return nil, fmt.Errorf("unknown compression %d", uint8(c))
	}

	out := make([]byte, 0, envelopeHeaderSize+len(payload))
	out = append(out, envelopeMagic...)
	out = append(out, uint8(c))
	out = binary.BigEndian.AppendUint32(out, hash.CRC32C(raw))
	out = binary.BigEndian.AppendUint32(out, uint32(len(raw))) //nolint:gosec // checked above
	return append(out, payload...), nil
}

// Decompress returns the raw snapshot of an envelope. Data without an
// envelope header is returned unchanged.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return data, nil
	}
	if len(data) < envelopeHeaderSize {
		return nil, fmt.Errorf("%w: envelope header truncated", ErrMalformed)
	}

	c := Compression(data[4])
	checksum := binary.BigEndian.Uint32(data[5:9])
	size := binary.BigEndian.Uint32(data[9:13])
	payload := data[envelopeHeaderSize:]

	var raw []byte
	switch c {
	case CompressionNone:
		raw = payload
	case CompressionLZ4:
		if uint64(size) > maxLZ4Ratio*uint64(len(payload))+envelopeHeaderSize {
			return nil, fmt.Errorf("%w: lz4 size %d implausible for %d byte payload", ErrMalformed, size, len(payload))
		}
		raw = make([]byte, size)
		n, err := lz4.UncompressBlock(payload, raw)
		if err != nil {
			return nil, fmt.Errorf("%w: lz4: %w", ErrMalformed, err)
		}
		raw = raw[:n]
	case CompressionZSTD:
		out, err := zstdDecode(payload, size)
		if err != nil {
			return nil, fmt.Errorf("%w: zstd: %w", ErrMalformed, err)
		}
		raw = out
	default:
		return nil, fmt.Errorf("%w: unknown compression %d", ErrMalformed, uint8(c))
	}

	if uint64(len(raw)) != uint64(size) {
		return nil, fmt.Errorf("%w: decompressed %d bytes, expected %d", ErrMalformed, len(raw), size)
	}
	if hash.CRC32C(raw) != checksum {
		return nil, ErrChecksum
	}
	return raw, nil
}
