package field

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRawDecodesEagerly(t *testing.T) {
	f := FromRaw("  99    ")
	assert.Equal(t, "99", f.Raw())
	assert.Equal(t, 1, f.Span())
	assert.True(t, f.Value().Equal(IntValue(99)))
	assert.False(t, f.IsBlank())

	assert.True(t, FromRaw("        ").IsBlank())
}

func TestNewField(t *testing.T) {
	f, err := New(RealValue(3.3), DefaultWidth)
	require.NoError(t, err)
	assert.Equal(t, "3.3", f.Raw())
	assert.Equal(t, Real, f.Value().Kind())

	_, err = New(IntValue(123456789), DefaultWidth)
	assert.ErrorIs(t, err, ErrOverflow)
}

func TestLargeString(t *testing.T) {
	fields, err := Large(StringValue("helloworld"), 2, DefaultWidth)
	require.NoError(t, err)
	require.Len(t, fields, 2)
	assert.Equal(t, "hellowor", fields[0].Raw())
	assert.Equal(t, "ld", fields[1].Raw())

	joined := Join(fields)
	assert.Equal(t, 2, joined.Span())
	assert.Equal(t, "helloworld", joined.Value().Text())
}

func TestLargePadsToSpan(t *testing.T) {
	fields, err := Large(StringValue("hi"), 3, DefaultWidth)
	require.NoError(t, err)
	require.Len(t, fields, 3)
	assert.Equal(t, "hi", fields[0].Raw())
	assert.True(t, fields[1].IsBlank())
	assert.True(t, fields[2].IsBlank())
}

func TestLargeNumber(t *testing.T) {
	const big = int64(1000000000000000)

	fields, err := Large(IntValue(big), 2, DefaultWidth)
	require.NoError(t, err)
	require.Len(t, fields, 2)

	got, ok := Join(fields).Value().Int()
	require.True(t, ok)
	assert.Equal(t, big, got)

	first, _ := fields[0].Value().Int()
	assert.Equal(t, int64(10000000), first)

	_, err = Large(IntValue(big), 3, DefaultWidth)
	assert.ErrorIs(t, err, ErrInvalidSpan)
}

func TestSplit(t *testing.T) {
	s := "the answer to the universe is 42"
	cells := Split(s, DefaultWidth)
	require.Len(t, cells, 4)
	assert.Equal(t, s[:8], cells[0])
	assert.Equal(t, s[24:], cells[3])

	assert.Equal(t, []string{"abc"}, Split("abc", DefaultWidth))
	assert.Empty(t, Split("", DefaultWidth))
	assert.Equal(t, []string{"abcdefgh", ""}, SplitRaw("abcdefgh", 2, DefaultWidth))
}

func TestValueOf(t *testing.T) {
	tests := []struct {
		in   any
		kind Kind
	}{
		{nil, Blank},
		{"", Blank},
		{"THRU", String},
		{7, Integer},
		{int32(7), Integer},
		{uint16(7), Integer},
		{float32(1.5), Real},
		{2.5, Real},
		{IntValue(3), Integer},
	}
	for _, tc := range tests {
		v, err := ValueOf(tc.in)
		require.NoError(t, err)
		assert.Equal(t, tc.kind, v.Kind(), "%v", tc.in)
	}

	_, err := ValueOf([]int{1})
	assert.ErrorIs(t, err, ErrUnsupportedValue)

	_, err = ValueOf(uint64(1 << 63))
	assert.ErrorIs(t, err, ErrUnsupportedValue)
}

func TestValueEqualAndLess(t *testing.T) {
	assert.True(t, IntValue(1).Equal(RealValue(1.0)))
	assert.False(t, IntValue(1).Equal(StringValue("1")))
	assert.True(t, Value{}.Equal(StringValue("")))

	assert.True(t, Value{}.Less(IntValue(-5)))
	assert.True(t, IntValue(2).Less(RealValue(2.5)))
	assert.True(t, RealValue(9e9).Less(StringValue("A")))
	assert.True(t, StringValue("A").Less(StringValue("B")))
	assert.False(t, StringValue("B").Less(StringValue("A")))
}
