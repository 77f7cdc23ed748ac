package format

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmptyLine            = errors.New("line has no fields")
	ErrLineTooLong          = errors.New("line exceeds maximum length")
	ErrContinuationMismatch = errors.New("continuation label does not match")
)

// LineError ties a parse failure to a 1-based input line number
type LineError struct {
	Line int
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *LineError) Unwrap() error {
	return e.Err
}

// IsComment reports whether line is blank or starts with the comment marker
func (f Format) IsComment(line string) bool {
	line = strings.TrimLeft(line, " \t")
	return line == "" || line[0] == f.CommentMarker
}

// IsFree reports whether line is written in the delimited style
func (f Format) IsFree(line string) bool {
	return strings.IndexByte(line, f.Delimiter) >= 0
}

// SplitFixed cuts a column-style line into its head cell followed by body
// cells. The last cell may be short.
func (f Format) SplitFixed(line string) []string {
	if line == "" {
		return nil
	}
	if len(line) <= f.HeadWidth {
		return []string{line}
	}
	cells := []string{line[:f.HeadWidth]}
	for start := f.HeadWidth; start < len(line); start += f.FieldWidth {
		end := min(start+f.FieldWidth, len(line))
		cells = append(cells, line[start:end])
	}
	return cells
}

// SplitFree cuts a delimited line into trimmed cells. Empty cells are kept;
// one trailing delimiter is dropped.
func (f Format) SplitFree(line string) []string {
	line = strings.TrimRight(line, " \t")
	line = strings.TrimSuffix(line, string(f.Delimiter))
	cells := strings.Split(line, string(f.Delimiter))
	for i, c := range cells {
		cells[i] = strings.TrimSpace(c)
	}
	return cells
}

// Classify separates a line's cells into head, body and tail. A tail exists
// only on a full line. The body is padded with blanks to BodyFields so every
// physical line contributes the same number of field slots.
func (f Format) Classify(cells []string) (head string, body []string, tail string, hasTail bool, err error) {
	if len(cells) == 0 {
		return "", nil, "", false, ErrEmptyLine
	}
	head = cells[0]
	body = append([]string(nil), cells[1:]...)
	if len(cells) == f.FieldsPerLine {
		tail = body[len(body)-1]
		body = body[:len(body)-1]
		hasTail = true
	}
	for len(body) < f.BodyFields {
		body = append(body, "")
	}
	return head, body, tail, hasTail, nil
}

// Line is one classified non-comment input line
type Line struct {
	Num     int
	Free    bool
	Head    string
	Body    []string
	Tail    string
	HasTail bool
}

// ReadLine checks and classifies one physical line; num is its 1-based
// position, used in errors. Trailing whitespace is not part of the line.
func (f Format) ReadLine(num int, text string) (Line, error) {
	text = strings.TrimRight(text, " \t")
	free := f.IsFree(text)

	limit := f.MaxLineLength
	if free {
		limit += f.FieldsPerLine
	}
	if n := len(text); n > limit {
		return Line{}, &LineError{Line: num, Err: fmt.Errorf("%w: %d > %d", ErrLineTooLong, n, limit)}
	}

	var cells []string
	if free {
		cells = f.SplitFree(text)
	} else {
		cells = f.SplitFixed(text)
	}

	head, body, tail, hasTail, err := f.Classify(cells)
	if err != nil {
		return Line{}, &LineError{Line: num, Err: err}
	}
	return Line{Num: num, Free: free, Head: head, Body: body, Tail: tail, HasTail: hasTail}, nil
}
