package format

import (
	"fmt"
	"strings"
)

// RawCard is a card as it appears in text: a trimmed name and the raw text
// of its fields. Field values are decoded on demand by the caller. Line is
// the 1-based input line the card starts on, or 0 for cards not read from
// text.
type RawCard struct {
	Name   string
	Fields []string
	Line   int
}

type parseState int

const (
	expectHeaderOrCard parseState = iota
	inCard
	done
)

// parser reassembles logical cards from classified physical lines
type parser struct {
	f     Format
	lines []Line
	pos   int
	state parseState

	card RawCard
	tail string
}

// ReadDeck parses a whole bulk data text. The non-comment lines before the
// BEGIN BULK line are returned as the header; everything from the ENDDATA
// line on is ignored.
func (f Format) ReadDeck(text string) (string, []RawCard, error) {
	if err := f.Validate(); err != nil {
		return "", nil, err
	}

	lines := splitLines(text)
	if end := indexEndData(lines); end >= 0 {
		lines = lines[:end]
	}

	header, start := "", 0
	for i, l := range lines {
		if !f.IsComment(l) && strings.Contains(l, BeginBulk) {
			header = f.joinHeader(lines[:i])
			start = i + 1
			break
		}
	}

	p, err := f.newParser(lines, start)
	if err != nil {
		return "", nil, err
	}

	var cards []RawCard
	for {
		c, ok, err := p.next()
		if err != nil {
			return "", nil, err
		}
		if !ok {
			break
		}
		cards = append(cards, c)
	}
	return header, cards, nil
}

// ReadCard parses the first card found in text
func (f Format) ReadCard(text string) (RawCard, error) {
	if err := f.Validate(); err != nil {
		return RawCard{}, err
	}

	p, err := f.newParser(splitLines(text), 0)
	if err != nil {
		return RawCard{}, err
	}
	c, ok, err := p.next()
	if err != nil {
		return RawCard{}, err
	}
	if !ok {
		return RawCard{}, fmt.Errorf("%w: no card in text", ErrEmptyLine)
	}
	return c, nil
}

func (f Format) newParser(lines []string, start int) (*parser, error) {
	p := &parser{f: f}
	for i := start; i < len(lines); i++ {
		if f.IsComment(lines[i]) {
			continue
		}
		pl, err := f.ReadLine(i+1, lines[i])
		if err != nil {
			return nil, err
		}
		p.lines = append(p.lines, pl)
	}
	return p, nil
}

// next runs the state machine until one card is complete. ok is false once
// the input is exhausted.
func (p *parser) next() (RawCard, bool, error) {
	for {
		switch p.state {
		case expectHeaderOrCard:
			if p.pos == len(p.lines) {
				p.state = done
				continue
			}
			l := p.lines[p.pos]
			p.pos++
			p.card = RawCard{Name: strings.TrimSpace(l.Head), Fields: l.Body, Line: l.Num}
			p.tail = l.Tail
			p.state = inCard

		case inCard:
			if p.pos == len(p.lines) {
				p.state = done
				return p.finish(), true, nil
			}
			l := p.lines[p.pos]
			if !IsContinuation(l.Head) {
				p.state = expectHeaderOrCard
				return p.finish(), true, nil
			}
			if p.f.StrictContinuation && strings.TrimSpace(l.Head) != strings.TrimSpace(p.tail) {
				return RawCard{}, false, &LineError{
					Line: l.Num,
					Err:  fmt.Errorf("%w: got %q, previous line ends with %q", ErrContinuationMismatch, strings.TrimSpace(l.Head), strings.TrimSpace(p.tail)),
				}
			}
			p.pos++
			p.card.Fields = append(p.card.Fields, l.Body...)
			p.tail = l.Tail

		case done:
			return RawCard{}, false, nil
		}
	}
}

func (p *parser) finish() RawCard {
	c := p.card
	c.Fields = StripTrailingBlanks(c.Fields)
	p.card = RawCard{}
	return c
}

// IsContinuation reports whether a line head continues the previous card.
// Label text after the marker is not interpreted.
func IsContinuation(head string) bool {
	head = strings.TrimSpace(head)
	return head == "" || head[0] == '+' || head[0] == '*'
}

// StripTrailingBlanks drops blank fields from the end of fields
func StripTrailingBlanks(fields []string) []string {
	n := len(fields)
	for n > 0 && strings.TrimSpace(fields[n-1]) == "" {
		n--
	}
	return fields[:n]
}

// joinHeader keeps the header lines that are not comments or blank
func (f Format) joinHeader(lines []string) string {
	var kept []string
	for _, l := range lines {
		if !f.IsComment(l) {
			kept = append(kept, l)
		}
	}
	return strings.Join(kept, "\n")
}

func splitLines(text string) []string {
	lines := strings.Split(text, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

func indexEndData(lines []string) int {
	for i, l := range lines {
		if strings.HasPrefix(strings.TrimLeft(l, " \t"), EndData) {
			return i
		}
	}
	return -1
}
