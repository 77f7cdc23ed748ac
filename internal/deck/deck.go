package deck

import (
	"cmp"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/arcanaland/bulkdata/internal/card"
	"github.com/arcanaland/bulkdata/internal/format"
)

// Deck represents a bulk data file: the free text header that precedes the
// BEGIN BULK line and the cards that follow it
type Deck struct {
	Header string
	cards  []*card.Card
}

// Warning is a non-fatal problem found while loading a deck
type Warning struct {
	Line    int
	Message string
}

func (w Warning) String() string {
	if w.Line > 0 {
		return fmt.Sprintf("line %d: %s", w.Line, w.Message)
	}
	return w.Message
}

// New creates a deck holding cards in order
func New(header string, cards ...*card.Card) *Deck {
	return &Deck{Header: header, cards: cards}
}

// Loads parses bulk data text into a deck. Cards without a name are kept but
// reported as warnings, since they usually mean the text was not parsed the
// way its author intended.
func Loads(text string, f format.Format) (*Deck, []Warning, error) {
	header, raw, err := f.ReadDeck(text)
	if err != nil {
		return nil, nil, fmt.Errorf("error parsing deck: %w", err)
	}

	d := &Deck{Header: header, cards: make([]*card.Card, 0, len(raw))}
	var warnings []Warning
	for _, rc := range raw {
		if rc.Name == "" {
			warnings = append(warnings, Warning{
				Line:    rc.Line,
				Message: "card has no name, continuation may be detached from its card",
			})
		}
		d.cards = append(d.cards, card.FromRaw(rc, f.FieldWidth))
	}
	return d, warnings, nil
}

// Load reads all of r and parses it as a deck
func Load(r io.Reader, f format.Format) (*Deck, []Warning, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, nil, fmt.Errorf("error reading deck: %w", err)
	}
	return Loads(string(data), f)
}

// Dumps formats the deck. When a header is present the output is closed with
// an ENDDATA line so it can be read back as the same deck.
func (d *Deck) Dumps(f format.Format) (string, error) {
	raw := make([]format.RawCard, len(d.cards))
	for i, c := range d.cards {
		raw[i] = format.RawCard{Name: c.Name(), Fields: c.Raw()}
	}

	out, err := f.WriteDeck(d.Header, raw)
	if err != nil {
		return "", err
	}
	if d.Header != "" {
		out += format.EndData + f.Newline
	}
	return out, nil
}

// Dump writes the formatted deck to w
func (d *Deck) Dump(w io.Writer, f format.Format) error {
	text, err := d.Dumps(f)
	if err != nil {
		return err
	}
	if _, err := io.WriteString(w, text); err != nil {
		return fmt.Errorf("error writing deck: %w", err)
	}
	return nil
}

// String formats the deck in the fixed layout, or in the free layout when a
// number does not fit a fixed cell
func (d *Deck) String() string {
	if s, err := d.Dumps(format.FixedFormat()); err == nil {
		return s
	}
	s, _ := d.Dumps(format.FreeFormat())
	return s
}

// Len returns the number of cards
func (d *Deck) Len() int {
	return len(d.cards)
}

// Append adds a card to the end of the deck
func (d *Deck) Append(c *card.Card) {
	d.cards = append(d.cards, c)
}

// Extend adds cards to the end of the deck, in order
func (d *Deck) Extend(cards ...*card.Card) {
	d.cards = append(d.cards, cards...)
}

// Card returns the card at index i. Negative indexes count from the end.
func (d *Deck) Card(i int) (*card.Card, error) {
	i, err := d.index(i)
	if err != nil {
		return nil, err
	}
	return d.cards[i], nil
}

// Set replaces the card at index i
func (d *Deck) Set(i int, c *card.Card) error {
	i, err := d.index(i)
	if err != nil {
		return err
	}
	d.cards[i] = c
	return nil
}

// Cards returns the deck's cards. The slice is a copy; the cards are not.
func (d *Deck) Cards() []*card.Card {
	return slices.Clone(d.cards)
}

// Names returns every distinct card name in order of first appearance
func (d *Deck) Names() []string {
	seen := make(map[string]bool)
	var names []string
	for _, c := range d.cards {
		if !seen[c.Name()] {
			seen[c.Name()] = true
			names = append(names, c.Name())
		}
	}
	return names
}

// Find returns every card matching filter
func (d *Deck) Find(filter Filter) []*card.Card {
	var found []*card.Card
	for _, i := range d.match(filter) {
		found = append(found, d.cards[i])
	}
	return found
}

// FindOne returns the first card matching filter, or nil
func (d *Deck) FindOne(filter Filter) *card.Card {
	for _, c := range d.cards {
		if matches(filter, c) {
			return c
		}
	}
	return nil
}

// Replace puts a copy of c in place of every card matching filter and
// returns how many were replaced
func (d *Deck) Replace(filter Filter, c *card.Card) int {
	idx := d.match(filter)
	for _, i := range idx {
		d.cards[i] = c.Clone()
	}
	return len(idx)
}

// ReplaceOne puts c in place of the first card matching filter. It reports
// whether a card was replaced.
func (d *Deck) ReplaceOne(filter Filter, c *card.Card) bool {
	for i := range d.cards {
		if matches(filter, d.cards[i]) {
			d.cards[i] = c
			return true
		}
	}
	return false
}

// Update assigns values to the fields at indexes of every card matching
// filter. It stops at the first card that rejects the assignment and
// returns how many cards were updated before it.
func (d *Deck) Update(filter Filter, indexes []int, values ...any) (int, error) {
	n := 0
	for _, i := range d.match(filter) {
		c := d.cards[i]
		if err := c.SetMany(indexes, values...); err != nil {
			return n, fmt.Errorf("error updating card %q: %w", c.Name(), err)
		}
		n++
	}
	return n, nil
}

// UpdateLarge encodes one value across the fields at indexes of every card
// matching filter
func (d *Deck) UpdateLarge(filter Filter, indexes []int, v any) (int, error) {
	n := 0
	for _, i := range d.match(filter) {
		c := d.cards[i]
		if err := c.SetLarge(indexes, v); err != nil {
			return n, fmt.Errorf("error updating card %q: %w", c.Name(), err)
		}
		n++
	}
	return n, nil
}

// Delete removes every card matching filter and returns how many were removed
func (d *Deck) Delete(filter Filter) int {
	before := len(d.cards)
	d.cards = slices.DeleteFunc(d.cards, func(c *card.Card) bool {
		return matches(filter, c)
	})
	return before - len(d.cards)
}

// SortByName orders cards by name. Cards sharing a name keep their order.
func (d *Deck) SortByName(reverse bool) {
	d.SortFunc(func(a, b *card.Card) int {
		if reverse {
			return cmp.Compare(b.Name(), a.Name())
		}
		return cmp.Compare(a.Name(), b.Name())
	})
}

// SortFunc orders cards with a stable sort using compare
func (d *Deck) SortFunc(compare func(a, b *card.Card) int) {
	slices.SortStableFunc(d.cards, compare)
}

// HeaderLines returns the header split into right-trimmed lines
func (d *Deck) HeaderLines() []string {
	if d.Header == "" {
		return nil
	}
	lines := strings.Split(d.Header, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " \t\r")
	}
	return lines
}

func (d *Deck) match(filter Filter) []int {
	var idx []int
	for i, c := range d.cards {
		if matches(filter, c) {
			idx = append(idx, i)
		}
	}
	return idx
}

func (d *Deck) index(i int) (int, error) {
	n := len(d.cards)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: card index %d, deck has %d cards", card.ErrIndexOutOfRange, i, n)
	}
	return i, nil
}
