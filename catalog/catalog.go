package catalog

import (
	"cmp"
	"fmt"
	"slices"
	"time"

	"github.com/hupe1980/hpograph/codec"
	"github.com/hupe1980/hpograph/internal/hash"
	"github.com/hupe1980/hpograph/model"
)

const (
	// BlobName is the name of the catalog blob.
	BlobName = "CATALOG"
	// ReleasePrefix is the directory snapshots are published under.
	ReleasePrefix = "releases/"
	// CurrentVersion is the version of the catalog format.
	CurrentVersion = 1
)

// Entry describes one stored snapshot.
type Entry struct {
	// Name is the blob name of the snapshot.
	Name          string
	Release       model.ReleaseVersion
	FormatVersion uint8
	Compression   codec.Compression
	// Size and Checksum cover the stored bytes, envelope included.
	Size      int64
	Checksum  uint32
	CreatedAt time.Time
}

// NewEntry describes data stored under name.
func NewEntry(name string, release model.ReleaseVersion, formatVersion uint8, c codec.Compression, data []byte) Entry {
	return Entry{
		Name:          name,
		Release:       release,
		FormatVersion: formatVersion,
		Compression:   c,
		Size:          int64(len(data)),
		Checksum:      hash.CRC32C(data),
		CreatedAt:     time.Now().UTC(),
	}
}

// Verify checks data against the recorded size and checksum.
func (e Entry) Verify(data []byte) error {
	if int64(len(data)) != e.Size {
		return fmt.Errorf("%w: %s: size %d, want %d", ErrIntegrity, e.Name, len(data), e.Size)
	}
	if sum := hash.CRC32C(data); sum != e.Checksum {
		return fmt.Errorf("%w: %s: checksum %08x, want %08x", ErrIntegrity, e.Name, sum, e.Checksum)
	}
	return nil
}

// BlobNameFor returns the conventional blob name of a release snapshot.
func BlobNameFor(release model.ReleaseVersion, c codec.Compression) string {
	name := ReleasePrefix + "hp-" + release.String() + ".hpo"
	switch c {
	case codec.CompressionLZ4:
		name += ".lz4"
	case codec.CompressionZSTD:
		name += ".zst"
	}
	return name
}

// Catalog lists stored releases. Entries are ordered by release, then by
// creation time.
type Catalog struct {
	Version int
	// Generation increases with every save.
	Generation uint64
	UpdatedAt  time.Time
	Entries    []Entry
	// Current is the name of the current entry, or empty.
	Current string
}

// New creates an empty catalog.
func New() *Catalog {
	return &Catalog{Version: CurrentVersion}
}

// Add inserts e, replacing any entry with the same name. If makeCurrent is
// set the entry becomes current.
func (c *Catalog) Add(e Entry, makeCurrent bool) {
	c.Entries = slices.DeleteFunc(c.Entries, func(x Entry) bool { return x.Name == e.Name })
	c.Entries = append(c.Entries, e)
	c.sort()

	if makeCurrent {
		c.Current = e.Name
	}
}

// Remove deletes the entry called name. Removing the current entry clears
// the current pointer.
func (c *Catalog) Remove(name string) bool {
	n := len(c.Entries)
	c.Entries = slices.DeleteFunc(c.Entries, func(x Entry) bool { return x.Name == name })
	if c.Current == name {
		c.Current = ""
	}
	return len(c.Entries) != n
}

// SetCurrent points the catalog at an existing entry.
func (c *Catalog) SetCurrent(name string) error {
	if _, ok := c.Lookup(name); !ok {
		return fmt.Errorf("%w: %s", ErrReleaseNotFound, name)
	}
	c.Current = name
	return nil
}

// Lookup returns the entry called name.
func (c *Catalog) Lookup(name string) (Entry, bool) {
	for _, e := range c.Entries {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// ByRelease returns the most recently created entry for release.
func (c *Catalog) ByRelease(release model.ReleaseVersion) (Entry, error) {
	for i := len(c.Entries) - 1; i >= 0; i-- {
		if c.Entries[i].Release == release {
			return c.Entries[i], nil
		}
	}
	return Entry{}, fmt.Errorf("%w: %s", ErrReleaseNotFound, release)
}

// CurrentEntry returns the entry the current pointer names.
func (c *Catalog) CurrentEntry() (Entry, error) {
	if c.Current == "" {
		return Entry{}, ErrNoCurrent
	}
	e, ok := c.Lookup(c.Current)
	if !ok {
		return Entry{}, fmt.Errorf("%w: current %s", ErrReleaseNotFound, c.Current)
	}
	return e, nil
}

// Latest returns the entry with the newest release.
func (c *Catalog) Latest() (Entry, bool) {
	if len(c.Entries) == 0 {
		return Entry{}, false
	}
	return c.Entries[len(c.Entries)-1], true
}

// Releases returns the distinct release versions in ascending order.
func (c *Catalog) Releases() []model.ReleaseVersion {
	var out []model.ReleaseVersion
	for _, e := range c.Entries {
		if len(out) == 0 || out[len(out)-1] != e.Release {
			out = append(out, e.Release)
		}
	}
	return out
}

func (c *Catalog) sort() {
	slices.SortStableFunc(c.Entries, func(a, b Entry) int {
		return cmp.Or(
			compareRelease(a.Release, b.Release),
			a.CreatedAt.Compare(b.CreatedAt),
			cmp.Compare(a.Name, b.Name),
		)
	})
}

func compareRelease(a, b model.ReleaseVersion) int {
	return cmp.Or(
		cmp.Compare(a.Year, b.Year),
		cmp.Compare(a.Month, b.Month),
		cmp.Compare(a.Day, b.Day),
	)
}
