package format

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/arcanaland/bulkdata/internal/field"
)

// WriteCard lays out a card name and its raw fields as physical lines.
// Trailing blank fields are dropped, a continuation pair is inserted after
// every BodyFields fields except the last, and the text ends with exactly
// one newline. A numeric field that cannot be re-encoded within its cell
// fails with field.ErrOverflow.
func (f Format) WriteCard(name string, fields []string) (string, error) {
	fields = StripTrailingBlanks(fields)
	delim := f.delimiter()

	var b strings.Builder
	b.WriteString(f.cell(truncate(strings.TrimSpace(name), f.HeadWidth), f.HeadWidth))
	if len(fields) > 0 {
		b.WriteString(delim)
	}

	pos, label := 0, 0
	for i, fl := range fields {
		text, err := f.fieldText(fl)
		if err != nil {
			return "", fmt.Errorf("%s field %d: %w", strings.TrimSpace(name), i+1, err)
		}
		b.WriteString(f.cell(text, f.FieldWidth))
		b.WriteString(delim)
		pos++

		if pos == f.BodyFields && i < len(fields)-1 {
			tag := "+" + strconv.Itoa(label)
			b.WriteString(f.cell(tag, f.HeadWidth))
			b.WriteString(f.Newline)
			b.WriteString(f.cell(tag, f.HeadWidth))
			b.WriteString(delim)
			pos = 0
			label++
		}
	}

	return strings.TrimRight(b.String(), " "+delim) + f.Newline, nil
}

// WriteDeck concatenates the cards in order. A non-empty header is written
// first, followed by a BEGIN BULK line. No ENDDATA line is added.
func (f Format) WriteDeck(header string, cards []RawCard) (string, error) {
	var b strings.Builder
	if header != "" {
		b.WriteString(header)
		b.WriteString(f.Newline)
		b.WriteString(BeginBulk)
		b.WriteString(f.Newline)
	}
	for _, c := range cards {
		text, err := f.WriteCard(c.Name, c.Fields)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}
	return b.String(), nil
}

func (f Format) delimiter() string {
	if f.Mode == ModeFree {
		return string(f.Delimiter)
	}
	return ""
}

// fieldText fits raw field text to FieldWidth. Strings are truncated.
// Numbers are re-encoded in fixed mode and kept whole in free mode.
func (f Format) fieldText(raw string) (string, error) {
	text := strings.TrimSpace(raw)
	if len(text) <= f.FieldWidth {
		return text, nil
	}

	v := field.Read(text)
	if v.Kind() == field.String {
		return truncate(text, f.FieldWidth), nil
	}
	if f.Mode == ModeFree {
		return text, nil
	}
	return field.Write(v, 1, f.FieldWidth)
}

// cell pads text to width in fixed mode
func (f Format) cell(text string, width int) string {
	if f.Mode == ModeFree {
		return text
	}
	pad := strings.Repeat(" ", max(width-utf8.RuneCountInString(text), 0))
	if f.Align == AlignRight {
		return pad + text
	}
	return text + pad
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	s = s[:n]
	for len(s) > 0 && !utf8.ValidString(s) {
		s = s[:len(s)-1]
	}
	return s
}
