package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/arcanaland/bulkdata/internal/field"
)

// Deck boundary markers
const (
	BeginBulk = "BEGIN BULK"
	EndData   = "ENDDATA"
)

// Mode selects how cards are written. Reading detects the style per line.
type Mode int

const (
	ModeFixed Mode = iota
	ModeFree
)

func (m Mode) String() string {
	switch m {
	case ModeFixed:
		return "fixed"
	case ModeFree:
		return "free"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Alignment controls padding of fixed-mode cells
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

func (a Alignment) String() string {
	if a == AlignRight {
		return "right"
	}
	return "left"
}

// ParseAlignment maps "left" or "right" to an Alignment
func ParseAlignment(s string) (Alignment, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "left":
		return AlignLeft, nil
	case "right":
		return AlignRight, nil
	default:
		return AlignLeft, fmt.Errorf("%w: unknown alignment %q", ErrInvalidFormat, s)
	}
}

var ErrInvalidFormat = errors.New("invalid format")

// Format is the complete description of a bulk data layout. The zero value
// is not usable; start from FixedFormat, FreeFormat or LargeFormat.
type Format struct {
	Mode Mode

	// FieldWidth is the width of one body cell, HeadWidth the width of the
	// name and continuation columns.
	FieldWidth int
	HeadWidth  int

	// FieldsPerLine counts every cell of a full physical line: one head,
	// BodyFields body cells and one tail.
	FieldsPerLine int
	BodyFields    int

	Delimiter     byte
	CommentMarker byte
	Newline       string
	Align         Alignment

	// MaxLineLength bounds fixed-style input lines. Free-style lines may
	// additionally carry one delimiter per cell, so a free line written by
	// WriteCard with every cell FieldWidth wide still reads back.
	MaxLineLength int

	// StrictContinuation requires each continuation head to repeat the
	// tail label of the line before it.
	StrictContinuation bool
}

// FixedFormat is the small-field column layout: 10 cells of 8 characters
func FixedFormat() Format {
	return Format{
		Mode:          ModeFixed,
		FieldWidth:    field.DefaultWidth,
		HeadWidth:     field.DefaultWidth,
		FieldsPerLine: 10,
		BodyFields:    8,
		Delimiter:     ',',
		CommentMarker: '$',
		Newline:       "\n",
		MaxLineLength: 80,
	}
}

// FreeFormat writes comma-delimited lines with the small-field layout
func FreeFormat() Format {
	f := FixedFormat()
	f.Mode = ModeFree
	return f
}

// LargeFormat is the large-field column layout: an 8 character head, four
// 16 character body cells and an 8 character tail.
func LargeFormat() Format {
	f := FixedFormat()
	f.FieldWidth = 2 * field.DefaultWidth
	f.FieldsPerLine = 6
	f.BodyFields = 4
	return f
}

// Preset returns the named layout: fixed, free or large
func Preset(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "fixed":
		return FixedFormat(), nil
	case "free":
		return FreeFormat(), nil
	case "large":
		return LargeFormat(), nil
	default:
		return Format{}, fmt.Errorf("%w: unknown format %q (expected fixed, free or large)", ErrInvalidFormat, name)
	}
}

// Validate checks that the layout is self-consistent
func (f Format) Validate() error {
	switch {
	case f.Mode != ModeFixed && f.Mode != ModeFree:
		return fmt.Errorf("%w: mode %d", ErrInvalidFormat, int(f.Mode))
	case f.FieldWidth < 1 || f.HeadWidth < 1:
		return fmt.Errorf("%w: field width %d, head width %d", ErrInvalidFormat, f.FieldWidth, f.HeadWidth)
	case f.BodyFields < 1:
		return fmt.Errorf("%w: body fields %d < 1", ErrInvalidFormat, f.BodyFields)
	case f.FieldsPerLine != f.BodyFields+2:
		return fmt.Errorf("%w: %d fields per line does not hold 1 head + %d body + 1 tail",
			ErrInvalidFormat, f.FieldsPerLine, f.BodyFields)
	case f.Delimiter == 0 || f.Delimiter == ' ':
		return fmt.Errorf("%w: delimiter %q", ErrInvalidFormat, f.Delimiter)
	case f.Newline == "":
		return fmt.Errorf("%w: empty newline", ErrInvalidFormat)
	case f.MaxLineLength < f.HeadWidth:
		return fmt.Errorf("%w: max line length %d", ErrInvalidFormat, f.MaxLineLength)
	}
	return nil
}

// WriteField encodes v as raw field text spanning span cells
func (f Format) WriteField(v field.Value, span int) (string, error) {
	return field.Write(v, span, f.FieldWidth)
}

// ReadField decodes raw field text
func (f Format) ReadField(text string) field.Value {
	return field.Read(text)
}

// Split cuts a large field's raw text into cells of the body width
func (f Format) Split(raw string) []string {
	return field.Split(raw, f.FieldWidth)
}
