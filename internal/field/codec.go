package field

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"
)

const (
	// DefaultWidth is the width of one small-field cell
	DefaultWidth = 8

	// MaxNumericSpan is the largest number of cells a numeric value may occupy
	MaxNumericSpan = 2
)

var (
	ErrOverflow         = errors.New("value overflows field width")
	ErrInvalidSpan      = errors.New("invalid field span")
	ErrUnsupportedValue = errors.New("unsupported field value")
)

var (
	integerPattern = regexp.MustCompile(`^[-+]?([1-9]\d*|0)$`)

	// Mantissa with optional point, then an optional exponent that is either
	// marked with E/e or introduced by a bare sign (1.235+13).
	realPattern = regexp.MustCompile(`^[-+]?(\d*\.\d+|\d+\.?)([Ee][-+]?\d+|[-+]\d+)?$`)
)

// Write encodes v into the raw text of a field occupying span cells of the
// given width. The result is trimmed and at most span*width characters long.
func Write(v Value, span, width int) (string, error) {
	if span < 1 {
		return "", fmt.Errorf("%w: span %d < 1", ErrInvalidSpan, span)
	}
	if width < 1 {
		return "", fmt.Errorf("%w: width %d < 1", ErrInvalidSpan, width)
	}
	limit := span * width

	switch v.kind {
	case Blank:
		return "", nil
	case String:
		return strings.TrimSpace(truncate(v.text, limit)), nil
	}

	if span > MaxNumericSpan {
		return "", fmt.Errorf("%w: non-character values cannot span more than %d fields, got %d",
			ErrInvalidSpan, MaxNumericSpan, span)
	}

	switch v.kind {
	case Integer:
		s := strconv.FormatInt(v.num, 10)
		if len(s) > limit {
			return "", fmt.Errorf("%w: integer %s needs %d characters, field has %d",
				ErrOverflow, s, len(s), limit)
		}
		return s, nil
	case Real:
		return writeReal(v.real, limit)
	default:
		return "", fmt.Errorf("%w: kind %s", ErrUnsupportedValue, v.kind)
	}
}

// Read decodes raw field text. Integers are tried first, then reals; anything
// else is the trimmed string.
func Read(text string) Value {
	s := strings.TrimSpace(text)
	if s == "" {
		return Value{}
	}
	if IsInteger(s) {
		if i, err := strconv.ParseInt(s, 10, 64); err == nil {
			return IntValue(i)
		}
	}
	if IsReal(s) {
		if f, err := strconv.ParseFloat(ForceExponent(s), 64); err == nil {
			return RealValue(f)
		}
	}
	return StringValue(s)
}

// IsInteger reports whether text is an integer field
func IsInteger(text string) bool {
	return integerPattern.MatchString(strings.TrimSpace(text))
}

// IsReal reports whether text is a real field, with or without exponent marker
func IsReal(text string) bool {
	return realPattern.MatchString(strings.TrimSpace(text))
}

// ForceExponent inserts the E elided by the compact notation. A sign at the
// start of the text or right after an existing E is left alone.
func ForceExponent(text string) string {
	var b strings.Builder
	b.Grow(len(text) + 1)
	for i := 0; i < len(text); i++ {
		c := text[i]
		if (c == '+' || c == '-') && i > 0 && text[i-1] != 'E' && text[i-1] != 'e' {
			b.WriteByte('E')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// writeReal picks between fixed-point and compact exponent notation,
// keeping whichever loses less precision within width characters.
func writeReal(f float64, width int) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v", ErrUnsupportedValue, f)
	}
	if f == 0 {
		if width < 2 {
			return "", fmt.Errorf("%w: 0. does not fit in %d characters", ErrOverflow, width)
		}
		return "0.", nil
	}

	fixed, fixedOK := fixedPoint(f, width)
	sci, sciOK := compactExponent(f, width)

	switch {
	case fixedOK && sciOK:
		if realError(sci, f) < realError(fixed, f) {
			return sci, nil
		}
		return fixed, nil
	case fixedOK:
		return fixed, nil
	case sciOK:
		return sci, nil
	}
	return "", fmt.Errorf("%w: real %g does not fit in %d characters", ErrOverflow, f, width)
}

func fixedPoint(f float64, width int) (string, bool) {
	for prec := width; prec >= 0; prec-- {
		s := strconv.FormatFloat(f, 'f', prec, 64)
		if strings.Contains(s, ".") {
			s = strings.TrimRight(s, "0")
		} else {
			s += "."
		}
		switch {
		case strings.HasPrefix(s, "0."):
			s = s[1:]
		case strings.HasPrefix(s, "-0."):
			s = "-" + s[2:]
		}
		if len(s) > width {
			continue
		}
		// rounded away to nothing, fewer decimals will not help
		if !strings.ContainsAny(s, "0123456789") {
			return "", false
		}
		return s, true
	}
	return "", false
}

func compactExponent(f float64, width int) (string, bool) {
	for prec := width; prec >= 0; prec-- {
		s := strconv.FormatFloat(f, 'e', prec, 64)
		mant, exp, _ := strings.Cut(s, "e")
		if strings.Contains(mant, ".") {
			mant = strings.TrimRight(mant, "0")
		} else {
			mant += "."
		}
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		out := mant + exp[:1] + digits
		if len(out) <= width {
			return out, true
		}
	}
	return "", false
}

func realError(text string, f float64) float64 {
	got, err := strconv.ParseFloat(ForceExponent(text), 64)
	if err != nil {
		return math.Inf(1)
	}
	return math.Abs(got - f)
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
