package deck

import (
	"github.com/arcanaland/bulkdata/internal/card"
	"github.com/arcanaland/bulkdata/internal/field"
)

// Filter selects cards. A nil Filter matches every card.
type Filter interface {
	Match(c *card.Card) bool
}

func matches(f Filter, c *card.Card) bool {
	return f == nil || f.Match(c)
}

// ByName matches cards with exactly this name
type ByName string

func (n ByName) Match(c *card.Card) bool {
	return c.Name() == string(n)
}

// ByField matches cards whose field at Index decodes to Value. Cards too short
// to have the field never match.
type ByField struct {
	Index int
	Value any
}

func (b ByField) Match(c *card.Card) bool {
	want, err := field.ValueOf(b.Value)
	if err != nil {
		return false
	}
	got, err := c.Get(b.Index)
	if err != nil {
		return false
	}
	return got.Equal(want)
}

// ByContains matches cards holding every one of Values. A value listed twice
// must be found in two different fields.
type ByContains struct {
	Values []any
}

func (b ByContains) Match(c *card.Card) bool {
	want := make([]field.Value, 0, len(b.Values))
	for _, v := range b.Values {
		fv, err := field.ValueOf(v)
		if err != nil {
			return false
		}
		want = append(want, fv)
	}

	for _, got := range c.Values() {
		for i, w := range want {
			if got.Equal(w) {
				want = append(want[:i], want[i+1:]...)
				break
			}
		}
		if len(want) == 0 {
			return true
		}
	}
	return len(want) == 0
}

// FilterFunc adapts a plain function to a Filter
type FilterFunc func(c *card.Card) bool

func (f FilterFunc) Match(c *card.Card) bool {
	return f(c)
}

type all []Filter

func (a all) Match(c *card.Card) bool {
	for _, f := range a {
		if !matches(f, c) {
			return false
		}
	}
	return true
}

// All matches cards that satisfy every filter
func All(filters ...Filter) Filter {
	return all(filters)
}
