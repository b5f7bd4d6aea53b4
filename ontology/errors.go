package ontology

import (
	"errors"

	"github.com/hupe1980/hpograph/internal/arena"
)

var (
	// ErrNotFound is returned when a term, gene or disease does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an id is inserted twice.
	ErrDuplicate = errors.New("duplicate id")

	// ErrCycle is returned when the parent edges contain a cycle.
	ErrCycle = arena.ErrCycle

	// ErrBuilderConsumed is the panic value (wrapped) when a builder is used
	// after it advanced to the next stage.
	ErrBuilderConsumed = errors.New("builder already consumed")
)
