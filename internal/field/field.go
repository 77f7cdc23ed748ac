package field

import "strings"

// Field is one cell of card data. The decoded value is computed from the raw
// text when the Field is built and never changes afterwards; assigning a new
// value means building a new Field.
type Field struct {
	raw   string
	span  int
	value Value
}

// FromRaw builds a single-cell Field from raw text
func FromRaw(raw string) Field {
	return fromRaw(raw, 1)
}

// New encodes v into a single cell of the given width
func New(v Value, width int) (Field, error) {
	raw, err := Write(v, 1, width)
	if err != nil {
		return Field{}, err
	}
	return FromRaw(raw), nil
}

func fromRaw(raw string, span int) Field {
	raw = strings.TrimSpace(raw)
	return Field{raw: raw, span: span, value: Read(raw)}
}

// Raw returns the field text
func (f Field) Raw() string {
	return f.raw
}

// Span returns the number of cells the field occupies
func (f Field) Span() int {
	if f.span < 1 {
		return 1
	}
	return f.span
}

// Value returns the decoded value
func (f Field) Value() Value {
	return f.value
}

// IsBlank reports whether the field holds no text
func (f Field) IsBlank() bool {
	return f.raw == ""
}

func (f Field) String() string {
	return f.raw
}

// Large encodes v over span cells of the given width and returns exactly
// span single-cell fields, padding with blanks when the text is short.
func Large(v Value, span, width int) ([]Field, error) {
	raw, err := Write(v, span, width)
	if err != nil {
		return nil, err
	}
	cells := SplitRaw(raw, span, width)
	fields := make([]Field, len(cells))
	for i, c := range cells {
		fields[i] = FromRaw(c)
	}
	return fields, nil
}

// Join concatenates the raw text of consecutive fields into one Field
// spanning all of them.
func Join(fields []Field) Field {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.raw)
	}
	return fromRaw(b.String(), len(fields))
}

// SplitRaw cuts raw into exactly span cells of width characters
func SplitRaw(raw string, span, width int) []string {
	cells := Split(raw, width)
	for len(cells) < span {
		cells = append(cells, "")
	}
	return cells[:span]
}

// Split cuts raw into consecutive cells of width characters. The last cell
// may be shorter.
func Split(raw string, width int) []string {
	if width < 1 {
		return []string{raw}
	}
	var cells []string
	for start := 0; start < len(raw); start += width {
		end := min(start+width, len(raw))
		cells = append(cells, raw[start:end])
	}
	return cells
}
