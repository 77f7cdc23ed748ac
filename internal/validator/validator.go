package validator

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/arcanaland/bulkdata/internal/deck"
	"github.com/arcanaland/bulkdata/internal/format"
)

type ValidationResults struct {
	Errors   []string
	Warnings []string
}

// Validator lints one bulk data file. Problems that stop the file from
// being read back are errors; layout that reads back but is likely not
// what the author meant is a warning.
type Validator struct {
	DeckPath string
	Format   format.Format
	Results  ValidationResults
}

func NewValidator(deckPath string, f format.Format) *Validator {
	return &Validator{
		DeckPath: deckPath,
		Format:   f,
		Results:  ValidationResults{},
	}
}

func (v *Validator) Validate() (ValidationResults, error) {
	data, err := os.ReadFile(v.DeckPath)
	if err != nil {
		return v.Results, fmt.Errorf("error reading deck file: %w", err)
	}
	if err := v.Format.Validate(); err != nil {
		return v.Results, err
	}

	v.ValidateText(string(data))
	return v.Results, nil
}

// ValidateText runs every check against text and records the findings
func (v *Validator) ValidateText(text string) {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	start, end := v.validateMarkers(lines)
	data := v.readLines(lines, start, end)

	v.validateStyle(data)
	v.validateContinuations(data)
	v.validateFieldWidths(data)
	v.validateCards(text)
}

// validateMarkers locates the bulk section and checks its boundary lines
func (v *Validator) validateMarkers(lines []string) (start, end int) {
	start, end = 0, len(lines)
	begin, enddata := -1, -1
	for i, l := range lines {
		if v.Format.IsComment(l) {
			continue
		}
		if begin < 0 && strings.Contains(l, format.BeginBulk) {
			begin = i
		}
		if strings.HasPrefix(strings.TrimLeft(l, " \t"), format.EndData) {
			enddata = i
			break
		}
	}

	if enddata >= 0 {
		end = enddata
	}
	if begin >= 0 && begin < end {
		start = begin + 1
		if enddata < 0 {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: %s without a closing %s line", begin+1, format.BeginBulk, format.EndData))
		}
	}
	return start, end
}

// readLines classifies the data lines, recording the ones that cannot be read
func (v *Validator) readLines(lines []string, start, end int) []format.Line {
	var data []format.Line
	for i := start; i < end; i++ {
		text := lines[i]
		if v.Format.IsComment(text) {
			continue
		}
		if strings.ContainsRune(text, '\t') {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: tab characters do not keep columns aligned", i+1))
		}

		l, err := v.Format.ReadLine(i+1, text)
		if err != nil {
			v.Results.Errors = append(v.Results.Errors, err.Error())
			continue
		}
		data = append(data, l)
	}
	return data
}

// validateStyle warns when fixed and free lines are mixed in one file
func (v *Validator) validateStyle(data []format.Line) {
	free, fixed := 0, 0
	firstFree, firstFixed := 0, 0
	for _, l := range data {
		if l.Free {
			if free == 0 {
				firstFree = l.Num
			}
			free++
		} else {
			if fixed == 0 {
				firstFixed = l.Num
			}
			fixed++
		}
	}
	if free > 0 && fixed > 0 {
		v.Results.Warnings = append(v.Results.Warnings,
			fmt.Sprintf("file mixes %d fixed lines (first at line %d) with %d free lines (first at line %d)",
				fixed, firstFixed, free, firstFree))
	}
}

// validateContinuations checks that continuation labels pair up
func (v *Validator) validateContinuations(data []format.Line) {
	for i, l := range data {
		head := strings.TrimSpace(l.Head)
		cont := format.IsContinuation(l.Head)

		if i == 0 {
			// a leading continuation surfaces as a nameless card
			continue
		}

		prev := data[i-1]
		tail := strings.TrimSpace(prev.Tail)
		switch {
		case cont && head != tail && (v.Format.StrictContinuation || head != "" && tail != ""):
			msg := fmt.Sprintf("line %d: continuation %q does not match %q on line %d", l.Num, head, tail, prev.Num)
			if v.Format.StrictContinuation {
				v.Results.Errors = append(v.Results.Errors, msg)
			} else {
				v.Results.Warnings = append(v.Results.Warnings, msg)
			}
		case !cont && prev.HasTail && tail != "":
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: ends with continuation %q but line %d starts card %s", prev.Num, tail, l.Num, head))
		}
	}
}

// validateFieldWidths warns about free fields that a fixed rewrite would cut
func (v *Validator) validateFieldWidths(data []format.Line) {
	for _, l := range data {
		if !l.Free {
			continue
		}
		if n := len(strings.TrimSpace(l.Head)); n > v.Format.HeadWidth {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("line %d: name %q is %d characters, wider than %d", l.Num, strings.TrimSpace(l.Head), n, v.Format.HeadWidth))
		}
		for j, cell := range l.Body {
			if len(cell) > v.Format.FieldWidth {
				v.Results.Warnings = append(v.Results.Warnings,
					fmt.Sprintf("line %d: field %d %q is wider than %d and will be truncated", l.Num, j+1, cell, v.Format.FieldWidth))
			}
		}
	}
}

// validateCards parses the whole deck and reports what the loader reports
func (v *Validator) validateCards(text string) {
	d, warnings, err := deck.Loads(text, v.Format)
	if err != nil {
		var le *format.LineError
		if errors.As(err, &le) && (errors.Is(le.Err, format.ErrLineTooLong) || errors.Is(le.Err, format.ErrContinuationMismatch)) {
			// already reported per line
			return
		}
		v.Results.Errors = append(v.Results.Errors, err.Error())
		return
	}
	for _, w := range warnings {
		v.Results.Warnings = append(v.Results.Warnings, w.String())
	}
	if d.Len() == 0 {
		v.Results.Warnings = append(v.Results.Warnings, "no cards found")
	}
}
