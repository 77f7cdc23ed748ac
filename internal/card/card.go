package card

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/bulkdata/internal/field"
	"github.com/arcanaland/bulkdata/internal/format"
)

var (
	ErrIndexOutOfRange   = errors.New("field index out of range")
	ErrMalformedIndexing = errors.New("malformed field indexing")
)

// Card represents one bulk data record: a name and an ordered list of fields.
// Fields are addressed by index and never grow implicitly; use Resize or
// Append to make room before assigning.
type Card struct {
	name   string
	width  int
	fields []field.Field
}

// New creates a card with size blank fields of the default width
func New(name string, size int) *Card {
	return NewWidth(name, size, field.DefaultWidth)
}

// NewWidth creates a card whose values are encoded into cells of width
// characters
func NewWidth(name string, size, width int) *Card {
	if width < 1 {
		width = field.DefaultWidth
	}
	c := &Card{name: strings.TrimSpace(name), width: width}
	c.Resize(size)
	return c
}

// Loads parses the first card found in text
func Loads(text string, f format.Format) (*Card, error) {
	rc, err := f.ReadCard(text)
	if err != nil {
		return nil, fmt.Errorf("error parsing card: %w", err)
	}
	return FromRaw(rc, f.FieldWidth), nil
}

// FromRaw builds a card from parsed text without re-encoding its fields
func FromRaw(rc format.RawCard, width int) *Card {
	c := NewWidth(rc.Name, 0, width)
	c.fields = make([]field.Field, len(rc.Fields))
	for i, raw := range rc.Fields {
		c.fields[i] = field.FromRaw(raw)
	}
	return c
}

// Dumps formats the card as bulk data text
func (c *Card) Dumps(f format.Format) (string, error) {
	return f.WriteCard(c.name, c.Raw())
}

// String formats the card in the fixed layout, or in the free layout when a
// number does not fit a fixed cell
func (c *Card) String() string {
	if s, err := c.Dumps(format.FixedFormat()); err == nil {
		return s
	}
	s, _ := c.Dumps(format.FreeFormat())
	return s
}

// Name returns the trimmed card name
func (c *Card) Name() string {
	return c.name
}

// SetName renames the card
func (c *Card) SetName(name string) {
	c.name = strings.TrimSpace(name)
}

// Width returns the cell width values are encoded into
func (c *Card) Width() int {
	return c.width
}

// Len returns the number of fields
func (c *Card) Len() int {
	return len(c.fields)
}

// Clone returns a deep copy of the card
func (c *Card) Clone() *Card {
	out := *c
	out.fields = append([]field.Field(nil), c.fields...)
	return &out
}

// Append encodes v into one new field at the end of the card
func (c *Card) Append(v any) error {
	return c.AppendSpan(v, 1)
}

// AppendSpan encodes v over span new fields at the end of the card
func (c *Card) AppendSpan(v any, span int) error {
	fields, err := c.encode(v, span)
	if err != nil {
		return err
	}
	c.fields = append(c.fields, fields...)
	return nil
}

// Extend appends each value as one field. Nothing is appended if any value
// fails to encode.
func (c *Card) Extend(vs ...any) error {
	fields := make([]field.Field, 0, len(vs))
	for _, v := range vs {
		f, err := c.encode(v, 1)
		if err != nil {
			return err
		}
		fields = append(fields, f...)
	}
	c.fields = append(c.fields, fields...)
	return nil
}

// Pop removes and returns the last field
func (c *Card) Pop() (field.Field, error) {
	if len(c.fields) == 0 {
		return field.Field{}, fmt.Errorf("%w: pop from empty card", ErrIndexOutOfRange)
	}
	last := c.fields[len(c.fields)-1]
	c.fields = c.fields[:len(c.fields)-1]
	return last, nil
}

// Resize truncates the card to n fields or pads it with blanks
func (c *Card) Resize(n int) {
	if n < 0 {
		n = 0
	}
	if n <= len(c.fields) {
		c.fields = c.fields[:n]
		return
	}
	c.fields = append(c.fields, make([]field.Field, n-len(c.fields))...)
}

// Strip removes trailing blank fields
func (c *Card) Strip() {
	n := len(c.fields)
	for n > 0 && c.fields[n-1].IsBlank() {
		n--
	}
	c.fields = c.fields[:n]
}

// Delete removes the field at index i, shifting later fields left
func (c *Card) Delete(i int) error {
	i, err := c.index(i)
	if err != nil {
		return err
	}
	c.fields = append(c.fields[:i], c.fields[i+1:]...)
	return nil
}

// Set replaces the field at index i with the encoding of v
func (c *Card) Set(i int, v any) error {
	i, err := c.index(i)
	if err != nil {
		return err
	}
	fields, err := c.encode(v, 1)
	if err != nil {
		return err
	}
	c.fields[i] = fields[0]
	return nil
}

// SetMany assigns values to indexes pairwise. Indexes left without a value
// are set blank; more values than indexes is an error.
func (c *Card) SetMany(indexes []int, values ...any) error {
	if len(values) > len(indexes) {
		return fmt.Errorf("%w: %d values for %d indexes", ErrMalformedIndexing, len(values), len(indexes))
	}
	resolved, err := c.indexes(indexes)
	if err != nil {
		return err
	}

	next := append([]field.Field(nil), c.fields...)
	for n, i := range resolved {
		var v any
		if n < len(values) {
			v = values[n]
		}
		f, err := c.encode(v, 1)
		if err != nil {
			return fmt.Errorf("index %d: %w", indexes[n], err)
		}
		next[i] = f[0]
	}
	c.fields = next
	return nil
}

// SetLarge encodes one value across the fields at indexes, in order
func (c *Card) SetLarge(indexes []int, v any) error {
	if len(indexes) == 0 {
		return fmt.Errorf("%w: no indexes for large field", ErrMalformedIndexing)
	}
	resolved, err := c.indexes(indexes)
	if err != nil {
		return err
	}
	fields, err := c.encode(v, len(resolved))
	if err != nil {
		return err
	}
	for n, i := range resolved {
		c.fields[i] = fields[n]
	}
	return nil
}

// Get returns the value of the field at index i
func (c *Card) Get(i int) (field.Value, error) {
	i, err := c.index(i)
	if err != nil {
		return field.Value{}, err
	}
	return c.fields[i].Value(), nil
}

// GetMany returns the values at indexes, in order
func (c *Card) GetMany(indexes []int) ([]field.Value, error) {
	resolved, err := c.indexes(indexes)
	if err != nil {
		return nil, err
	}
	values := make([]field.Value, len(resolved))
	for n, i := range resolved {
		values[n] = c.fields[i].Value()
	}
	return values, nil
}

// GetLarge joins the raw text of the fields at indexes and decodes it as a
// single value
func (c *Card) GetLarge(indexes []int) (field.Value, error) {
	if len(indexes) == 0 {
		return field.Value{}, fmt.Errorf("%w: no indexes for large field", ErrMalformedIndexing)
	}
	resolved, err := c.indexes(indexes)
	if err != nil {
		return field.Value{}, err
	}
	parts := make([]field.Field, len(resolved))
	for n, i := range resolved {
		parts[n] = c.fields[i]
	}
	return field.Join(parts).Value(), nil
}

// Field returns the field at index i
func (c *Card) Field(i int) (field.Field, error) {
	i, err := c.index(i)
	if err != nil {
		return field.Field{}, err
	}
	return c.fields[i], nil
}

// Fields returns a copy of the card's fields
func (c *Card) Fields() []field.Field {
	return append([]field.Field(nil), c.fields...)
}

// Values returns the decoded value of every field
func (c *Card) Values() []field.Value {
	values := make([]field.Value, len(c.fields))
	for i, f := range c.fields {
		values[i] = f.Value()
	}
	return values
}

// Raw returns the raw text of every field
func (c *Card) Raw() []string {
	raw := make([]string, len(c.fields))
	for i, f := range c.fields {
		raw[i] = f.Raw()
	}
	return raw
}

// Contains reports whether any field decodes to a value equal to v. Integers
// and reals compare numerically.
func (c *Card) Contains(v any) bool {
	want, err := field.ValueOf(v)
	if err != nil {
		return false
	}
	for _, f := range c.fields {
		if f.Value().Equal(want) {
			return true
		}
	}
	return false
}

// Range lists indexes from start up to but excluding stop, step apart.
// Negative start or stop count back from the end, and a stop of zero means
// the end of the card. A step below 1 is taken as 1.
func (c *Card) Range(start, stop, step int) []int {
	n := len(c.fields)
	if start < 0 {
		start += n
	}
	if stop <= 0 {
		stop += n
	}
	start = max(start, 0)
	stop = min(stop, n)
	step = max(step, 1)

	var idx []int
	for i := start; i < stop; i += step {
		idx = append(idx, i)
	}
	return idx
}

// encode converts v into exactly span fields of the card's width
func (c *Card) encode(v any, span int) ([]field.Field, error) {
	val, err := field.ValueOf(v)
	if err != nil {
		return nil, err
	}
	if span == 1 {
		f, err := field.New(val, c.width)
		if err != nil {
			return nil, err
		}
		return []field.Field{f}, nil
	}
	return field.Large(val, span, c.width)
}

func (c *Card) index(i int) (int, error) {
	n := len(c.fields)
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("%w: index %d, card %q has %d fields", ErrIndexOutOfRange, i, c.name, n)
	}
	return i, nil
}

func (c *Card) indexes(idx []int) ([]int, error) {
	out := make([]int, len(idx))
	for n, i := range idx {
		r, err := c.index(i)
		if err != nil {
			return nil, err
		}
		out[n] = r
	}
	return out, nil
}
