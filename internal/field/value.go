package field

import (
	"fmt"
	"math"
	"strconv"
)

// Kind identifies the type of a decoded field value
type Kind int

const (
	Blank Kind = iota
	String
	Integer
	Real
)

func (k Kind) String() string {
	switch k {
	case Blank:
		return "blank"
	case String:
		return "string"
	case Integer:
		return "integer"
	case Real:
		return "real"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Value is a decoded field value. The zero Value is blank.
type Value struct {
	kind Kind
	text string
	num  int64
	real float64
}

// StringValue returns a character value. An empty string is blank.
func StringValue(s string) Value {
	if s == "" {
		return Value{}
	}
	return Value{kind: String, text: s}
}

// IntValue returns an integer value
func IntValue(i int64) Value {
	return Value{kind: Integer, num: i}
}

// RealValue returns a real value
func RealValue(f float64) Value {
	return Value{kind: Real, real: f}
}

// ValueOf converts a Go value into a field Value. nil converts to blank.
func ValueOf(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, nil
	case Value:
		return x, nil
	case Field:
		return x.Value(), nil
	case string:
		return StringValue(x), nil
	case int:
		return IntValue(int64(x)), nil
	case int8:
		return IntValue(int64(x)), nil
	case int16:
		return IntValue(int64(x)), nil
	case int32:
		return IntValue(int64(x)), nil
	case int64:
		return IntValue(x), nil
	case uint8:
		return IntValue(int64(x)), nil
	case uint16:
		return IntValue(int64(x)), nil
	case uint32:
		return IntValue(int64(x)), nil
	case uint:
		if uint64(x) > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %d exceeds int64", ErrUnsupportedValue, x)
		}
		return IntValue(int64(x)), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, fmt.Errorf("%w: %d exceeds int64", ErrUnsupportedValue, x)
		}
		return IntValue(int64(x)), nil
	case float32:
		return RealValue(float64(x)), nil
	case float64:
		return RealValue(x), nil
	default:
		return Value{}, fmt.Errorf("%w: %T", ErrUnsupportedValue, v)
	}
}

// Kind returns the value kind
func (v Value) Kind() Kind {
	return v.kind
}

// IsBlank reports whether the value is blank
func (v Value) IsBlank() bool {
	return v.kind == Blank
}

// Text returns the character content of a String value, or "" for any other kind
func (v Value) Text() string {
	return v.text
}

// Int returns the integer content and whether the value is an Integer
func (v Value) Int() (int64, bool) {
	return v.num, v.kind == Integer
}

// Float returns the numeric content as a float64. Integers are converted.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case Real:
		return v.real, true
	case Integer:
		return float64(v.num), true
	default:
		return 0, false
	}
}

// Interface returns the value as nil, string, int64 or float64
func (v Value) Interface() any {
	switch v.kind {
	case String:
		return v.text
	case Integer:
		return v.num
	case Real:
		return v.real
	default:
		return nil
	}
}

// Equal compares two values. Integer and Real values compare numerically.
func (v Value) Equal(o Value) bool {
	if v.kind == o.kind {
		switch v.kind {
		case Blank:
			return true
		case String:
			return v.text == o.text
		case Integer:
			return v.num == o.num
		case Real:
			return v.real == o.real
		}
	}
	a, aok := v.Float()
	b, bok := o.Float()
	return aok && bok && a == b
}

// Less orders values: blanks first, then numbers, then strings
func (v Value) Less(o Value) bool {
	rank := func(x Value) int {
		switch x.kind {
		case Blank:
			return 0
		case Integer, Real:
			return 1
		default:
			return 2
		}
	}
	if rank(v) != rank(o) {
		return rank(v) < rank(o)
	}
	switch rank(v) {
	case 1:
		if v.kind == Integer && o.kind == Integer {
			return v.num < o.num
		}
		a, _ := v.Float()
		b, _ := o.Float()
		return a < b
	case 2:
		return v.text < o.text
	}
	return false
}

func (v Value) String() string {
	switch v.kind {
	case String:
		return v.text
	case Integer:
		return strconv.FormatInt(v.num, 10)
	case Real:
		return strconv.FormatFloat(v.real, 'g', -1, 64)
	default:
		return ""
	}
}
