package hpograph

import (
	"errors"
	"fmt"

	"github.com/hupe1980/hpograph/batch"
	"github.com/hupe1980/hpograph/blobstore"
	"github.com/hupe1980/hpograph/catalog"
	"github.com/hupe1980/hpograph/codec"
	"github.com/hupe1980/hpograph/internal/resource"
	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
)

var (
	// ErrNotFound is returned when a term, gene, disease, blob or release
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidIdentifier is returned for identifiers that cannot be parsed.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrMalformedBinary is returned when a snapshot or catalog is truncated,
	// inconsistent or fails its checksum.
	ErrMalformedBinary = errors.New("malformed binary")

	// ErrUnsupportedVersion is returned for unknown snapshot or catalog versions.
	ErrUnsupportedVersion = errors.New("unsupported version")

	// ErrClosed is returned by a Graph after Close.
	ErrClosed = errors.New("graph is closed")

	// ErrBudgetExceeded is returned when a pairwise matrix would exceed the
	// cell budget set with WithLimits.
	ErrBudgetExceeded = resource.ErrBudgetExceeded

	// ErrMixedOntologies is returned when term sets of another graph are
	// scored.
	ErrMixedOntologies = batch.ErrMixedOntologies
)

// ErrIO indicates a blob store failure other than a missing blob.
//
// The original underlying error can be accessed via errors.Unwrap.
type ErrIO struct {
	Op    string
	Name  string
	cause error
}

func (e *ErrIO) Error() string {
	return fmt.Sprintf("%s %q: %v", e.Op, e.Name, e.cause)
}

func (e *ErrIO) Unwrap() error { return e.cause }

func translateError(err error) error {
	if err == nil {
		return nil
	}

	// Not found unification.
	if errors.Is(err, ontology.ErrNotFound) ||
		errors.Is(err, blobstore.ErrNotFound) ||
		errors.Is(err, catalog.ErrNotFound) ||
		errors.Is(err, catalog.ErrReleaseNotFound) ||
		errors.Is(err, catalog.ErrNoCurrent) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}

	if errors.Is(err, model.ErrInvalidID) {
		return fmt.Errorf("%w: %w", ErrInvalidIdentifier, err)
	}

	if errors.Is(err, codec.ErrUnsupportedVersion) || errors.Is(err, catalog.ErrIncompatibleVersion) {
		return fmt.Errorf("%w: %w", ErrUnsupportedVersion, err)
	}

	if errors.Is(err, codec.ErrMalformed) ||
		errors.Is(err, codec.ErrChecksum) ||
		errors.Is(err, catalog.ErrCorrupt) ||
		errors.Is(err, catalog.ErrIntegrity) {
		return fmt.Errorf("%w: %w", ErrMalformedBinary, err)
	}

	return err
}

// ioError translates err and wraps store failures that carry no domain
// meaning into *ErrIO.
func ioError(op, name string, err error) error {
	if err == nil {
		return nil
	}

	terr := translateError(err)
	if terr != err { //nolint:errorlint // identity check: translateError returns err unchanged when unmapped
		return terr
	}

	var eio *ErrIO
	if errors.As(err, &eio) {
		return err
	}

	return &ErrIO{Op: op, Name: name, cause: err}
}
