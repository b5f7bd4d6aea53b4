package codec

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/internal/conv"
	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
)

// Format versions.
const (
	// Version1 has no metadata and no obsolete information.
	Version1 uint8 = 1
	// Version2 adds the release date and obsolete flags with replacements.
	Version2 uint8 = 2
	// Version3 adds the ORPHA disease section.
	Version3 uint8 = 3

	// LatestVersion is written by default.
	LatestVersion = Version3
)

var binaryMagic = []byte("HPO")

const (
	headerSize     = 4
	metadataSize   = 4
	maxTermNameLen = 0xFF
	maxGeneNameLen = 0xFF

	flagObsolete uint8 = 1 << 0
)

// Header describes an encoded snapshot.
type Header struct {
	Version uint8
	// Legacy is true for version 1 snapshots written without magic bytes.
	Legacy  bool
	Release model.ReleaseVersion
}

// Options configures Encode.
type Options struct {
	// Version selects the format version to write.
	Version uint8
}

// DefaultOptions writes the latest version.
var DefaultOptions = Options{
	Version: LatestVersion,
}

// WithVersion selects the format version to write.
func WithVersion(v uint8) func(o *Options) {
	return func(o *Options) {
		o.Version = v
	}
}

// Encode serializes ont. Older versions drop the data they cannot
// represent: version 1 loses the release and obsolete flags, versions 1
// and 2 lose ORPHA diseases. Version 1 snapshots carry no magic.
func Encode(ont *ontology.Ontology, optFns ...func(o *Options)) ([]byte, error) {
	opts := DefaultOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.Version < Version1 || opts.Version > LatestVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, opts.Version)
	}
	v := opts.Version

	// Version 1 is written in its legacy form, without magic.
	w := &payloadWriter{buf: make([]byte, 0, estimateSize(ont))}
	if v >= Version2 {
		w.buf = append(w.buf, binaryMagic...)
		w.writeUint8(v)
		r := ont.Release()
		w.writeUint16(r.Year)
		w.writeUint8(r.Month)
		w.writeUint8(r.Day)
	}

	if err := writeSection(w, func() error { return writeTerms(w, ont, v) }); err != nil {
		return nil, err
	}
	if err := writeSection(w, func() error { return writeParents(w, ont) }); err != nil {
		return nil, err
	}
	if err := writeSection(w, func() error { return writeGenes(w, ont) }); err != nil {
		return nil, err
	}
	if err := writeSection(w, func() error { return writeDiseases(w, ont, model.Omim) }); err != nil {
		return nil, err
	}
	if v >= Version3 {
		if err := writeSection(w, func() error { return writeDiseases(w, ont, model.Orpha) }); err != nil {
			return nil, err
		}
	}
	return w.buf, nil
}

// Write encodes ont to w.
func Write(w io.Writer, ont *ontology.Ontology, optFns ...func(o *Options)) (int64, error) {
	b, err := Encode(ont, optFns...)
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

func estimateSize(ont *ontology.Ontology) int {
	return headerSize + metadataSize + 20 + ont.Len()*48 + ont.GeneCount()*32 +
		(ont.DiseaseCount(model.Omim)+ont.DiseaseCount(model.Orpha))*64
}

func writeSection(w *payloadWriter, body func() error) error {
	off := w.reserve()
	if err := body(); err != nil {
		return err
	}
	return w.patchLength(off, false)
}

func writeTerms(w *payloadWriter, ont *ontology.Ontology, v uint8) error {
	for t := range ont.Terms() {
		off := w.reserve()
		w.writeUint32(uint32(t.ID()))
		name := truncateName(t.Name(), maxTermNameLen)
		w.writeUint8(uint8(len(name))) //nolint:gosec // truncated to 255
		w.buf = append(w.buf, name...)
		if v >= Version2 {
			var flags uint8
			if t.IsObsolete() {
				flags |= flagObsolete
			}
			w.writeUint8(flags)
			w.writeUint32(uint32(t.ReplacementID()))
		}
		if err := w.patchLength(off, true); err != nil {
			return err
		}
	}
	return nil
}

func writeParents(w *payloadWriter, ont *ontology.Ontology) error {
	for t := range ont.Terms() {
		parents := t.Parents()
		if parents.IsEmpty() {
			continue
		}
		w.writeUint32(conv.MustUint32(parents.Len()))
		w.writeUint32(uint32(t.ID()))
		w.buf = parents.AppendBinary(w.buf)
	}
	return nil
}

func writeGenes(w *payloadWriter, ont *ontology.Ontology) error {
	for g := range ont.Genes() {
		off := w.reserve()
		w.writeUint32(uint32(g.ID))
		name := truncateName(g.Name, maxGeneNameLen)
		w.writeUint8(uint8(len(name))) //nolint:gosec // truncated to 255
		w.buf = append(w.buf, name...)
		writeTermIDs(w, g.Terms)
		if err := w.patchLength(off, true); err != nil {
			return err
		}
	}
	return nil
}

func writeDiseases(w *payloadWriter, ont *ontology.Ontology, kind model.DiseaseKind) error {
	for d := range ont.Diseases(kind) {
		off := w.reserve()
		w.writeUint32(uint32(d.ID))
		nameLen, err := conv.IntToUint32(len(d.Name))
		if err != nil {
			return fmt.Errorf("disease %s: name: %w", model.FormatDiseaseID(kind, d.ID), err)
		}
		w.writeUint32(nameLen)
		w.buf = append(w.buf, d.Name...)
		writeTermIDs(w, d.Terms)
		if err := w.patchLength(off, true); err != nil {
			return err
		}
	}
	return nil
}

func writeTermIDs(w *payloadWriter, terms idset.Set[model.TermID]) {
	w.writeUint32(conv.MustUint32(terms.Len()))
	w.buf = terms.AppendBinary(w.buf)
}

// ReadHeader parses the header and metadata of a snapshot.
func ReadHeader(data []byte) (Header, error) {
	h, _, err := readHeader(newPayloadBuffer(data))
	return h, err
}

func readHeader(p *payloadBuffer) (Header, *payloadBuffer, error) {
	if p.remaining() < headerSize || !bytes.Equal(p.buf[:len(binaryMagic)], binaryMagic) {
		return Header{Version: Version1, Legacy: true}, p, nil
	}
	p.take(len(binaryMagic), "magic")
	h := Header{Version: p.readUint8("version")}
	switch h.Version {
	case Version1:
	case Version2, Version3:
		h.Release = model.ReleaseVersion{
			Year:  p.readUint16("release year"),
			Month: p.readUint8("release month"),
			Day:   p.readUint8("release day"),
		}
	default:
		return h, p, fmt.Errorf("%w: %d", ErrUnsupportedVersion, h.Version)
	}
	return h, p, p.err
}

type termRecord struct {
	id          model.TermID
	obsolete    bool
	replacement model.TermID
}

// Decode parses a snapshot and rebuilds the ontology, including ancestor
// closures and information content.
func Decode(data []byte, optFns ...func(o *ontology.BuildOptions)) (*ontology.Ontology, error) {
	h, p, err := readHeader(newPayloadBuffer(data))
	if err != nil {
		return nil, err
	}

	b := ontology.NewBuilder(0)
	b.SetRelease(h.Release)

	// Terms
	sec := p.section(p.readLength("terms section"), "terms section")
	var obsolete []termRecord
	for sec.err == nil && sec.remaining() > 0 {
		rec, name := readTerm(sec, h.Version)
		if sec.err != nil {
			break
		}
		if err := b.AddTerm(rec.id, name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		if rec.obsolete {
			obsolete = append(obsolete, rec)
		}
	}
	if sec.err != nil {
		return nil, sec.err
	}

	// Parents
	tb := b.Terms()
	sec = p.section(p.readLength("parents section"), "parents section")
	for sec.err == nil && sec.remaining() > 0 {
		count := sec.readLength("parent count")
		child := model.TermID(sec.readUint32("child id"))
		if uint64(count)*4 > uint64(sec.remaining()) {
			sec.fail("term %s: %d parents exceed remaining %d bytes", child, count, sec.remaining())
		}
		for range count {
			parent := model.TermID(sec.readUint32("parent id"))
			if sec.err != nil {
				break
			}
			if err := tb.Connect(parent, child); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
		}
	}
	if sec.err != nil {
		return nil, sec.err
	}
	for _, rec := range obsolete {
		if err := tb.SetObsolete(rec.id, rec.replacement); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
	}

	cb, err := tb.CacheAncestors()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}

	// Genes
	sec = p.section(p.readLength("genes section"), "genes section")
	for sec.err == nil && sec.remaining() > 0 {
		id, name, terms := readAnnotation(sec, false)
		if sec.err != nil {
			break
		}
		gene := model.GeneID(id)
		if err := cb.AddGene(gene, name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
		}
		for _, t := range terms {
			if err := cb.LinkGene(gene, t); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
		}
	}
	if sec.err != nil {
		return nil, sec.err
	}

	// Diseases
	kinds := []model.DiseaseKind{model.Omim}
	if h.Version >= Version3 {
		kinds = append(kinds, model.Orpha)
	}
	for _, kind := range kinds {
		what := fmt.Sprintf("%s section", kind)
		sec = p.section(p.readLength(what), what)
		for sec.err == nil && sec.remaining() > 0 {
			id, name, terms := readAnnotation(sec, true)
			if sec.err != nil {
				break
			}
			disease := model.DiseaseID(id)
			if err := cb.AddDisease(kind, disease, name); err != nil {
				return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
			}
			for _, t := range terms {
				if err := cb.LinkDisease(kind, disease, t); err != nil {
					return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
				}
			}
		}
		if sec.err != nil {
			return nil, sec.err
		}
	}

	if p.err != nil {
		return nil, p.err
	}
	if p.remaining() != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrMalformed, p.remaining())
	}
	return cb.Build(optFns...), nil
}

// Read decodes a snapshot from r.
func Read(r io.Reader, optFns ...func(o *ontology.BuildOptions)) (*ontology.Ontology, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Decode(data, optFns...)
}

func readTerm(sec *payloadBuffer, v uint8) (termRecord, string) {
	total := sec.readUint32("term record length")
	minLen := uint32(4 + 4 + 1)
	if v >= Version2 {
		minLen += 1 + 4
	}
	if sec.err == nil && total < minLen {
		sec.fail("term record length %d below minimum %d", total, minLen)
	}
	if sec.err == nil && uint64(total-4) > uint64(sec.remaining()) {
		sec.fail("term record length %d exceeds remaining %d bytes", total, sec.remaining())
	}
	if sec.err != nil {
		return termRecord{}, ""
	}
	rec := sec.section(int(total-4), "term record")

	out := termRecord{id: model.TermID(rec.readUint32("term id"))}
	name := rec.readName(int(rec.readUint8("term name length")), "term name")
	if v >= Version2 {
		flags := rec.readUint8("term flags")
		out.replacement = model.TermID(rec.readUint32("term replacement"))
		if flags&^flagObsolete != 0 {
			rec.fail("term %s: unknown flags %#x", out.id, flags)
		}
		out.obsolete = flags&flagObsolete != 0
		if !out.obsolete && out.replacement != 0 {
			rec.fail("term %s: replacement without obsolete flag", out.id)
		}
	}
	if rec.err == nil && rec.remaining() != 0 {
		rec.fail("term %s: %d unexpected bytes in record", out.id, rec.remaining())
	}
	sec.err = rec.err
	return out, name
}

func readAnnotation(sec *payloadBuffer, longName bool) (uint32, string, []model.TermID) {
	total := sec.readUint32("record length")
	if sec.err == nil && total < 4 {
		sec.fail("record length %d below minimum", total)
	}
	if sec.err == nil && uint64(total-4) > uint64(sec.remaining()) {
		sec.fail("record length %d exceeds remaining %d bytes", total, sec.remaining())
	}
	if sec.err != nil {
		return 0, "", nil
	}
	rec := sec.section(int(total-4), "record")

	id := rec.readUint32("id")
	var nameLen int
	if longName {
		nameLen = rec.readLength("name length")
	} else {
		nameLen = int(rec.readUint8("name length"))
	}
	name := rec.readName(nameLen, "name")
	count := rec.readLength("term count")
	var terms []model.TermID
	if rec.err == nil {
		if uint64(count)*4 != uint64(rec.remaining()) {
			rec.fail("record %d: %d terms do not fill %d bytes", id, count, rec.remaining())
		} else {
			terms = make([]model.TermID, 0, count)
			for range count {
				terms = append(terms, model.TermID(rec.readUint32("term id")))
			}
		}
	}
	sec.err = rec.err
	return id, name, terms
}

// IsMalformed reports whether err was caused by invalid input.
func IsMalformed(err error) bool {
	return errors.Is(err, ErrMalformed)
}
