package codec

import (
	"io"

	gojson "github.com/goccy/go-json"

	"github.com/hupe1980/hpograph/idset"
	"github.com/hupe1980/hpograph/model"
	"github.com/hupe1980/hpograph/ontology"
)

// JSONOptions configures WriteJSON.
type JSONOptions struct {
	// Indent pretty-prints the document with two spaces.
	Indent bool
	// InformationContent adds the IC values of every term.
	InformationContent bool
}

// WithIndent pretty-prints the JSON document.
func WithIndent() func(o *JSONOptions) {
	return func(o *JSONOptions) { o.Indent = true }
}

// WithInformationContent includes per-term IC values.
func WithInformationContent() func(o *JSONOptions) {
	return func(o *JSONOptions) { o.InformationContent = true }
}

// JSONDocument is the exported form of an ontology. Identifiers are
// rendered as "HP:0000118", "NCBIGene:2200", "OMIM:154700", "ORPHA:558".
type JSONDocument struct {
	Release string           `json:"release,omitempty"`
	Terms   []JSONTerm       `json:"terms"`
	Genes   []JSONAnnotation `json:"genes"`
	Omim    []JSONAnnotation `json:"omim"`
	Orpha   []JSONAnnotation `json:"orpha"`
}

// JSONTerm is a term of a JSONDocument.
type JSONTerm struct {
	ID          string                    `json:"id"`
	Name        string                    `json:"name"`
	Parents     []string                  `json:"parents,omitempty"`
	Obsolete    bool                      `json:"obsolete,omitempty"`
	Replacement string                    `json:"replacement,omitempty"`
	IC          *model.InformationContent `json:"ic,omitempty"`
}

// JSONAnnotation is a gene or disease of a JSONDocument.
type JSONAnnotation struct {
	ID    string   `json:"id"`
	Name  string   `json:"name"`
	Terms []string `json:"terms"`
}

// NewJSONDocument converts ont into its exported form.
func NewJSONDocument(ont *ontology.Ontology, optFns ...func(o *JSONOptions)) *JSONDocument {
	var opts JSONOptions
	for _, fn := range optFns {
		fn(&opts)
	}

	doc := &JSONDocument{
		Terms: make([]JSONTerm, 0, ont.Len()),
		Genes: make([]JSONAnnotation, 0, ont.GeneCount()),
		Omim:  make([]JSONAnnotation, 0, ont.DiseaseCount(model.Omim)),
		Orpha: make([]JSONAnnotation, 0, ont.DiseaseCount(model.Orpha)),
	}
	if r := ont.Release(); !r.IsZero() {
		doc.Release = r.String()
	}

	for t := range ont.Terms() {
		jt := JSONTerm{
			ID:       t.ID().String(),
			Name:     t.Name(),
			Parents:  termStrings(t.Parents()),
			Obsolete: t.IsObsolete(),
		}
		if r := t.ReplacementID(); r != 0 {
			jt.Replacement = r.String()
		}
		if opts.InformationContent {
			ic := t.InformationContent()
			jt.IC = &ic
		}
		doc.Terms = append(doc.Terms, jt)
	}
	for g := range ont.Genes() {
		doc.Genes = append(doc.Genes, JSONAnnotation{ID: g.ID.String(), Name: g.Name, Terms: termStrings(g.Terms)})
	}
	for d := range ont.Diseases(model.Omim) {
		doc.Omim = append(doc.Omim, diseaseJSON(d))
	}
	for d := range ont.Diseases(model.Orpha) {
		doc.Orpha = append(doc.Orpha, diseaseJSON(d))
	}
	return doc
}

// WriteJSON exports ont as a JSON document.
func WriteJSON(w io.Writer, ont *ontology.Ontology, optFns ...func(o *JSONOptions)) error {
	var opts JSONOptions
	for _, fn := range optFns {
		fn(&opts)
	}
	enc := gojson.NewEncoder(w)
	if opts.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(NewJSONDocument(ont, optFns...))
}

// ReadJSON parses a document written by WriteJSON.
func ReadJSON(r io.Reader) (*JSONDocument, error) {
	var doc JSONDocument
	if err := gojson.NewDecoder(r).Decode(&doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func diseaseJSON(d ontology.Disease) JSONAnnotation {
	return JSONAnnotation{
		ID:    model.FormatDiseaseID(d.Kind, d.ID),
		Name:  d.Name,
		Terms: termStrings(d.Terms),
	}
}

func termStrings(s idset.Set[model.TermID]) []string {
	out := make([]string, 0, s.Len())
	for id := range s.All() {
		out = append(out, id.String())
	}
	return out
}
