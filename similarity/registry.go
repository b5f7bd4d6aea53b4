package similarity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hupe1980/hpograph/model"
)

var (
	// ErrUnknownAlgorithm is returned by ByName for unsupported names.
	ErrUnknownAlgorithm = errors.New("unknown similarity algorithm")
	// ErrUnknownCombiner is returned by CombinerByName for unsupported names.
	ErrUnknownCombiner = errors.New("unknown combiner")
)

// ByName returns an algorithm by its case-insensitive name. kind selects
// the information content for IC-based algorithms and is ignored by
// distance.
func ByName(name string, kind model.InformationContentKind) (Algorithm, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "resnik":
		return Resnik{Kind: kind}, nil
	case "lin":
		return Lin{Kind: kind}, nil
	case "jc", "jc2":
		return Jc{Kind: kind}, nil
	case "graphic":
		return GraphIC{Kind: kind}, nil
	case "relevance", "rel":
		return Relevance{Kind: kind}, nil
	case "ic", "informationcoefficient":
		return InformationCoefficient{Kind: kind}, nil
	case "distance", "dist":
		return Distance{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownAlgorithm, name)
	}
}

// CombinerByName returns a combiner by its case-insensitive name.
func CombinerByName(name string) (Combiner, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "funsimavg":
		return FunSimAvg{}, nil
	case "funsimmax":
		return FunSimMax{}, nil
	case "bwa":
		return BWA{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownCombiner, name)
	}
}

// Names lists the canonical algorithm names.
func Names() []string {
	return []string{"resnik", "lin", "jc", "graphic", "relevance", "ic", "distance"}
}

// CombinerNames lists the canonical combiner names.
func CombinerNames() []string {
	return []string{"funsimavg", "funsimmax", "bwa"}
}
