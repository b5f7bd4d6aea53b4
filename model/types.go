package model

import (
	"fmt"
	"strings"
	"time"
)

// InformationContentKind selects one of the per-term information content values.
type InformationContentKind uint8

const (
	// ICGene is derived from the gene annotation frequency.
	ICGene InformationContentKind = iota
	// ICOmim is derived from the OMIM disease annotation frequency.
	ICOmim
	// ICOrpha is derived from the ORPHA disease annotation frequency.
	ICOrpha
	// ICCustom is injected by the caller at build time.
	ICCustom
)

// String returns a lower-case name for the kind.
func (k InformationContentKind) String() string {
	switch k {
	case ICGene:
		return "gene"
	case ICOmim:
		return "omim"
	case ICOrpha:
		return "orpha"
	case ICCustom:
		return "custom"
	default:
		return fmt.Sprintf("ickind(%d)", uint8(k))
	}
}

// InformationContent holds the IC of a term for every kind.
type InformationContent struct {
	Gene   float32 `json:"gene"`
	Omim   float32 `json:"omim"`
	Orpha  float32 `json:"orpha"`
	Custom float32 `json:"custom"`
}

// Get returns the value for kind. Unknown kinds yield 0.
func (ic InformationContent) Get(kind InformationContentKind) float32 {
	switch kind {
	case ICGene:
		return ic.Gene
	case ICOmim:
		return ic.Omim
	case ICOrpha:
		return ic.Orpha
	case ICCustom:
		return ic.Custom
	default:
		return 0
	}
}

// Set stores v for kind. Unknown kinds are ignored.
func (ic *InformationContent) Set(kind InformationContentKind, v float32) {
	switch kind {
	case ICGene:
		ic.Gene = v
	case ICOmim:
		ic.Omim = v
	case ICOrpha:
		ic.Orpha = v
	case ICCustom:
		ic.Custom = v
	}
}

// ReleaseVersion is the release date of the source ontology.
type ReleaseVersion struct {
	Year  uint16
	Month uint8
	Day   uint8
}

// ParseReleaseVersion parses "2024-04-26". It also accepts the OBO
// data-version form "hp/releases/2024-04-26".
func ParseReleaseVersion(s string) (ReleaseVersion, error) {
	if i := strings.LastIndexByte(s, '/'); i >= 0 {
		s = s[i+1:]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return ReleaseVersion{}, fmt.Errorf("%w: release %q", ErrInvalidID, s)
	}
	return ReleaseVersion{Year: uint16(t.Year()), Month: uint8(t.Month()), Day: uint8(t.Day())}, nil
}

// IsZero reports whether the version is unknown.
func (r ReleaseVersion) IsZero() bool {
	return r == ReleaseVersion{}
}

// String renders the version as YYYY-MM-DD.
func (r ReleaseVersion) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", r.Year, r.Month, r.Day)
}
