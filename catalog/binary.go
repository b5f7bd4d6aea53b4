package catalog

import (
	"encoding/binary"
	"fmt"
	"io"
	"time"

	"github.com/hupe1980/hpograph/codec"
	"github.com/hupe1980/hpograph/internal/conv"
	"github.com/hupe1980/hpograph/internal/hash"
	"github.com/hupe1980/hpograph/model"
)

const (
	binaryMagic      = 0x43504F48 // "HPOC"
	binaryHeaderSize = 16
)

// WriteBinary writes the catalog in binary format.
// Format:
// Magic (4 bytes)
// Version (4 bytes)
// Checksum (4 bytes) - CRC32C of payload
// PayloadLength (4 bytes)
// Payload:
//
//	Generation (8 bytes)
//	UpdatedAt (8 bytes) - UnixNano
//	Current (string)
//	NumEntries (4 bytes)
//	Entries...
//	  Name (string)
//	  Year (2 bytes)
//	  Month (1 byte)
//	  Day (1 byte)
//	  FormatVersion (1 byte)
//	  Compression (1 byte)
//	  Size (8 bytes)
//	  Checksum (4 bytes)
//	  CreatedAt (8 bytes) - UnixNano
func (c *Catalog) WriteBinary(w io.Writer) error {
	pb := newPayloadBuffer(make([]byte, 0, 64+len(c.Entries)*80))

	pb.writeUint64(c.Generation)
	pb.writeTime(c.UpdatedAt)
	pb.writeString(c.Current)
	pb.writeCount(len(c.Entries))

	for _, e := range c.Entries {
		pb.writeString(e.Name)
		pb.writeUint16(e.Release.Year)
		pb.writeUint8(e.Release.Month)
		pb.writeUint8(e.Release.Day)
		pb.writeUint8(e.FormatVersion)
		pb.writeUint8(uint8(e.Compression))
		pb.writeUint64(uint64(e.Size)) //nolint:gosec // sizes are non-negative
		pb.writeUint32(e.Checksum)
		pb.writeTime(e.CreatedAt)
	}

	if pb.err != nil {
		return pb.err
	}

	payload := pb.buf
	length, err := conv.IntToUint32(len(payload))
	if err != nil {
		return err
	}

	header := make([]byte, binaryHeaderSize)
	binary.LittleEndian.PutUint32(header[0:4], binaryMagic)
	binary.LittleEndian.PutUint32(header[4:8], CurrentVersion)
	binary.LittleEndian.PutUint32(header[8:12], hash.CRC32C(payload))
	binary.LittleEndian.PutUint32(header[12:16], length)

	if _, err := w.Write(header); err != nil {
		return err
	}
	_, err = w.Write(payload)
	return err
}

// ReadBinary reads a catalog written by WriteBinary.
func ReadBinary(r io.Reader) (*Catalog, error) {
	header := make([]byte, binaryHeaderSize)
	if _, err := io.ReadFull(r, header); err != nil {
		return nil, fmt.Errorf("%w: header: %w", ErrCorrupt, err)
	}

	if magic := binary.LittleEndian.Uint32(header[0:4]); magic != binaryMagic {
		return nil, fmt.Errorf("%w: invalid magic %x", ErrCorrupt, magic)
	}
	version := binary.LittleEndian.Uint32(header[4:8])
	if version != CurrentVersion {
		return nil, fmt.Errorf("%w: %d", ErrIncompatibleVersion, version)
	}
	checksum := binary.LittleEndian.Uint32(header[8:12])
	length, err := conv.Uint32ToInt(binary.LittleEndian.Uint32(header[12:16]))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}

	payload := make([]byte, length)
	if _, err := io.ReadFull(r, payload); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrCorrupt, err)
	}

	if hash.CRC32C(payload) != checksum {
		return nil, fmt.Errorf("%w: checksum mismatch", ErrCorrupt)
	}

	pb := newPayloadBuffer(payload)
	c := &Catalog{Version: int(version)}

	c.Generation = pb.readUint64()
	c.UpdatedAt = pb.readTime()
	c.Current = pb.readString()

	n := pb.readUint32()
	// Every entry takes at least 28 bytes; reject counts the payload cannot hold.
	if uint64(n)*28 > uint64(len(payload)) {
		return nil, fmt.Errorf("%w: %d entries in %d bytes", ErrCorrupt, n, len(payload))
	}

	c.Entries = make([]Entry, 0, n)
	for range n {
		var e Entry
		e.Name = pb.readString()
		e.Release = model.ReleaseVersion{
			Year:  pb.readUint16(),
			Month: pb.readUint8(),
			Day:   pb.readUint8(),
		}
		e.FormatVersion = pb.readUint8()
		e.Compression = codec.Compression(pb.readUint8())
		e.Size = int64(pb.readUint64()) //nolint:gosec // written from an int64
		e.Checksum = pb.readUint32()
		e.CreatedAt = pb.readTime()
		c.Entries = append(c.Entries, e)
	}

	if pb.err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorrupt, pb.err)
	}
	if pb.pos != len(pb.buf) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrCorrupt, len(pb.buf)-pb.pos)
	}

	return c, nil
}

type payloadBuffer struct {
	buf []byte
	pos int
	err error
}

func newPayloadBuffer(b []byte) *payloadBuffer {
	return &payloadBuffer{buf: b}
}

func (p *payloadBuffer) writeUint64(v uint64) {
	if p.err != nil {
		return
	}
	p.buf = binary.LittleEndian.AppendUint64(p.buf, v)
}

func (p *payloadBuffer) writeUint32(v uint32) {
	if p.err != nil {
		return
	}
	p.buf = binary.LittleEndian.AppendUint32(p.buf, v)
}

func (p *payloadBuffer) writeUint16(v uint16) {
	if p.err != nil {
		return
	}
	p.buf = binary.LittleEndian.AppendUint16(p.buf, v)
}

func (p *payloadBuffer) writeUint8(v uint8) {
	if p.err != nil {
		return
	}
	p.buf = append(p.buf, v)
}

func (p *payloadBuffer) writeCount(n int) {
	v, err := conv.IntToUint32(n)
	if err != nil {
		p.err = err
		return
	}
	p.writeUint32(v)
}

func (p *payloadBuffer) writeTime(t time.Time) {
	var v int64
	if !t.IsZero() {
		v = t.UnixNano()
	}
	p.writeUint64(uint64(v)) //nolint:gosec // round-trips through readTime
}

func (p *payloadBuffer) writeString(s string) {
	if p.err != nil {
		return
	}
	if len(s) > 65535 {
		p.err = fmt.Errorf("string too long: %d", len(s))
		return
	}
	p.buf = binary.LittleEndian.AppendUint16(p.buf, uint16(len(s)))
	p.buf = append(p.buf, s...)
}

func (p *payloadBuffer) take(n int) []byte {
	if p.err != nil {
		return nil
	}
	if p.pos+n > len(p.buf) {
		p.err = io.ErrUnexpectedEOF
		return nil
	}
	b := p.buf[p.pos : p.pos+n]
	p.pos += n
	return b
}

func (p *payloadBuffer) readUint64() uint64 {
	if b := p.take(8); b != nil {
		return binary.LittleEndian.Uint64(b)
	}
	return 0
}

func (p *payloadBuffer) readUint32() uint32 {
	if b := p.take(4); b != nil {
		return binary.LittleEndian.Uint32(b)
	}
	return 0
}

func (p *payloadBuffer) readUint16() uint16 {
	if b := p.take(2); b != nil {
		return binary.LittleEndian.Uint16(b)
	}
	return 0
}

func (p *payloadBuffer) readUint8() uint8 {
	if b := p.take(1); b != nil {
		return b[0]
	}
	return 0
}

func (p *payloadBuffer) readTime() time.Time {
	v := int64(p.readUint64()) //nolint:gosec // written from an int64
	if v == 0 {
		return time.Time{}
	}
	return time.Unix(0, v).UTC()
}

func (p *payloadBuffer) readString() string {
	l := int(p.readUint16())
	b := p.take(l)
	if b == nil {
		return ""
	}
	return string(b)
}
