package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrInvalidID is returned when text cannot be parsed into an identifier.
var ErrInvalidID = errors.New("invalid identifier")

// TermID identifies a phenotype term.
type TermID uint32

// RootTermID is the id of the ontology root ("All", HP:0000001).
const RootTermID TermID = 1

// String renders the id in HP:0000001 form.
func (id TermID) String() string {
	return fmt.Sprintf("HP:%07d", uint32(id))
}

// ParseTermID parses "HP:0000118", "HP_0000118" or a bare number.
func ParseTermID(s string) (TermID, error) {
	v, err := parsePrefixed(s, "HP:", "HP_")
	if err != nil {
		return 0, fmt.Errorf("%w: term %q", ErrInvalidID, s)
	}
	return TermID(v), nil
}

// MustParseTermID is like ParseTermID but panics on error.
func MustParseTermID(s string) TermID {
	id, err := ParseTermID(s)
	if err != nil {
		panic(err)
	}
	return id
}

// GeneID identifies a gene (NCBI gene id).
type GeneID uint32

// String renders the id in NCBIGene:n form.
func (id GeneID) String() string {
	return "NCBIGene:" + strconv.FormatUint(uint64(id), 10)
}

// ParseGeneID parses "NCBIGene:2200" or a bare number.
func ParseGeneID(s string) (GeneID, error) {
	v, err := parsePrefixed(s, "NCBIGene:")
	if err != nil {
		return 0, fmt.Errorf("%w: gene %q", ErrInvalidID, s)
	}
	return GeneID(v), nil
}

// DiseaseKind selects a disease namespace.
type DiseaseKind uint8

const (
	// Omim is the OMIM disease namespace.
	Omim DiseaseKind = iota
	// Orpha is the ORPHAnet disease namespace.
	Orpha
)

// String returns the namespace prefix.
func (k DiseaseKind) String() string {
	switch k {
	case Omim:
		return "OMIM"
	case Orpha:
		return "ORPHA"
	default:
		return fmt.Sprintf("DiseaseKind(%d)", uint8(k))
	}
}

// InformationContentKind returns the IC kind computed from this namespace.
func (k DiseaseKind) InformationContentKind() InformationContentKind {
	if k == Orpha {
		return ICOrpha
	}
	return ICOmim
}

// DiseaseID identifies a disease within one DiseaseKind namespace.
type DiseaseID uint32

// ParseDiseaseID parses "OMIM:600001", "ORPHA:123" or a bare number. The
// kind is derived from the prefix; bare numbers default to Omim.
func ParseDiseaseID(s string) (DiseaseKind, DiseaseID, error) {
	if rest, ok := cutPrefixFold(s, "ORPHA:"); ok {
		v, err := strconv.ParseUint(rest, 10, 32)
		if err != nil {
			return 0, 0, fmt.Errorf("%w: disease %q", ErrInvalidID, s)
		}
		return Orpha, DiseaseID(v), nil
	}
	v, err := parsePrefixed(s, "OMIM:")
	if err != nil {
		return 0, 0, fmt.Errorf("%w: disease %q", ErrInvalidID, s)
	}
	return Omim, DiseaseID(v), nil
}

// FormatDiseaseID renders a disease id with its namespace prefix.
func FormatDiseaseID(kind DiseaseKind, id DiseaseID) string {
	return kind.String() + ":" + strconv.FormatUint(uint64(id), 10)
}

func parsePrefixed(s string, prefixes ...string) (uint32, error) {
	s = strings.TrimSpace(s)
	for _, p := range prefixes {
		if rest, ok := cutPrefixFold(s, p); ok {
			s = rest
			break
		}
	}
	if s == "" {
		return 0, ErrInvalidID
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint32(v), nil
}

func cutPrefixFold(s, prefix string) (string, bool) {
	if len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix) {
		return s[len(prefix):], true
	}
	return s, false
}
