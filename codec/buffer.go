package codec

import (
	"encoding/binary"
	"fmt"
	"unicode/utf8"

	"github.com/hupe1980/hpograph/internal/conv"
)

// payloadBuffer reads big-endian values from a byte slice. The first
// failure sticks; later reads return zero values.
type payloadBuffer struct {
	buf []byte
	pos int
	err error
}

func newPayloadBuffer(b []byte) *payloadBuffer {
	return &payloadBuffer{buf: b}
}

func (p *payloadBuffer) fail(format string, args ...any) {
	if p.err == nil {
		p.err = fmt.Errorf("%w: "+format, append([]any{ErrMalformed}, args...)...)
	}
}

func (p *payloadBuffer) remaining() int { return len(p.buf) - p.pos }

func (p *payloadBuffer) take(n int, what string) []byte {
	if p.err != nil {
		return nil
	}
	if n < 0 || n > p.remaining() {
		p.fail("%s: need %d bytes at offset %d, have %d", what, n, p.pos, p.remaining())
		return nil
	}
	b := p.buf[p.pos : p.pos+n]
	p.pos += n
	return b
}

func (p *payloadBuffer) readUint8(what string) uint8 {
	b := p.take(1, what)
	if b == nil {
		return 0
	}
	return b[0]
}

func (p *payloadBuffer) readUint16(what string) uint16 {
	b := p.take(2, what)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint16(b)
}

func (p *payloadBuffer) readUint32(what string) uint32 {
	b := p.take(4, what)
	if b == nil {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// readLength reads a u32 length and checks it against the remaining bytes.
func (p *payloadBuffer) readLength(what string) int {
	v := p.readUint32(what)
	if p.err != nil {
		return 0
	}
	if uint64(v) > uint64(p.remaining()) {
		p.fail("%s: length %d exceeds remaining %d bytes", what, v, p.remaining())
		return 0
	}
	return int(v)
}

// section splits off the next n bytes as an independent buffer.
func (p *payloadBuffer) section(n int, what string) *payloadBuffer {
	b := p.take(n, what)
	sub := newPayloadBuffer(b)
	sub.err = p.err
	return sub
}

func (p *payloadBuffer) readName(n int, what string) string {
	b := p.take(n, what)
	if p.err != nil {
		return ""
	}
	if !utf8.Valid(b) {
		p.fail("%s: invalid utf-8 at offset %d", what, p.pos-n)
		return ""
	}
	return string(b)
}

// payloadWriter appends big-endian values.
type payloadWriter struct {
	buf []byte
}

func (w *payloadWriter) writeUint8(v uint8) { w.buf = append(w.buf, v) }

func (w *payloadWriter) writeUint16(v uint16) {
	w.buf = binary.BigEndian.AppendUint16(w.buf, v)
}

func (w *payloadWriter) writeUint32(v uint32) {
	w.buf = binary.BigEndian.AppendUint32(w.buf, v)
}

// reserve appends a placeholder u32 and returns its offset.
func (w *payloadWriter) reserve() int {
	off := len(w.buf)
	w.buf = append(w.buf, 0, 0, 0, 0)
	return off
}

// patchLength stores the number of bytes written since off, optionally
// including the placeholder itself.
func (w *payloadWriter) patchLength(off int, inclusive bool) error {
	n := len(w.buf) - off
	if !inclusive {
		n -= 4
	}
	v, err := conv.IntToUint32(n)
	if err != nil {
		return fmt.Errorf("record length: %w", err)
	}
	binary.BigEndian.PutUint32(w.buf[off:], v)
	return nil
}

// truncateName cuts s to at most limit bytes without splitting a rune.
func truncateName(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
