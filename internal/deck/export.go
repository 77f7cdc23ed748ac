package deck

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/arcanaland/bulkdata/internal/card"
	"github.com/arcanaland/bulkdata/internal/format"
)

// Document is the structured form of a deck used by export and import.
// Raw holds the field text exactly as it would be written; Values holds the
// decoded values for consumers that do not parse bulk data fields.
type Document struct {
	Header string         `yaml:"header,omitempty" json:"header,omitempty"`
	Cards  []CardDocument `yaml:"cards" json:"cards"`
}

type CardDocument struct {
	Name   string   `yaml:"name" json:"name"`
	Raw    []string `yaml:"raw" json:"raw"`
	Values []any    `yaml:"values" json:"values"`
}

// Document converts the deck to its structured form
func (d *Deck) Document() Document {
	doc := Document{Header: d.Header, Cards: make([]CardDocument, len(d.cards))}
	for i, c := range d.cards {
		values := c.Values()
		cd := CardDocument{Name: c.Name(), Raw: c.Raw(), Values: make([]any, len(values))}
		for j, v := range values {
			cd.Values[j] = v.Interface()
		}
		doc.Cards[i] = cd
	}
	return doc
}

// FromDocument rebuilds a deck from the raw field text of doc. Values are
// ignored.
func FromDocument(doc Document, width int) *Deck {
	d := &Deck{Header: doc.Header, cards: make([]*card.Card, len(doc.Cards))}
	for i, cd := range doc.Cards {
		d.cards[i] = card.FromRaw(format.RawCard{Name: cd.Name, Fields: cd.Raw}, width)
	}
	return d
}

// EncodeYAML writes the deck document as YAML
func (d *Deck) EncodeYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d.Document()); err != nil {
		return fmt.Errorf("error encoding yaml: %w", err)
	}
	return enc.Close()
}

// EncodeJSON writes the deck document as indented JSON
func (d *Deck) EncodeJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d.Document()); err != nil {
		return fmt.Errorf("error encoding json: %w", err)
	}
	return nil
}

// DecodeDocument reads a deck document written by EncodeYAML or EncodeJSON
func DecodeDocument(r io.Reader, width int) (*Deck, error) {
	var doc Document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("error decoding deck document: %w", err)
	}
	return FromDocument(doc, width), nil
}
