package catalog

import "errors"

var (
	// ErrNotFound is returned when the store holds no catalog.
	ErrNotFound = errors.New("catalog not found")

	// ErrReleaseNotFound is returned when no entry matches a release or name.
	ErrReleaseNotFound = errors.New("release not found in catalog")

	// ErrNoCurrent is returned when the catalog has no current release.
	ErrNoCurrent = errors.New("catalog has no current release")

	// ErrIncompatibleVersion is returned for catalogs written by a newer format.
	ErrIncompatibleVersion = errors.New("incompatible catalog version")

	// ErrCorrupt is returned when the catalog blob fails magic or checksum validation.
	ErrCorrupt = errors.New("corrupt catalog")

	// ErrIntegrity is returned when a snapshot does not match its catalog entry.
	ErrIntegrity = errors.New("snapshot does not match catalog entry")
)
