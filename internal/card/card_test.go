package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/bulkdata/internal/field"
	"github.com/arcanaland/bulkdata/internal/format"
)

const helloCard = "HELLO   99      helloworld      0       3.3     1       6.6     2       +0      \n+0      9.9\n"

// fillHello assigns the HELLO fields to a card with at least 9 fields
func fillHello(t *testing.T, c *Card) {
	t.Helper()
	require.NoError(t, c.Set(0, 99))
	require.NoError(t, c.SetLarge([]int{1, 2}, "helloworld"))
	require.NoError(t, c.SetMany(c.Range(3, 9, 2), 0, 1, 2))
	require.NoError(t, c.SetMany(c.Range(4, 9, 2), 3.3, 6.6, 9.9))
}

func assertHello(t *testing.T, c *Card) {
	t.Helper()
	v, err := c.Get(0)
	require.NoError(t, err)
	assert.True(t, v.Equal(field.IntValue(99)))

	large, err := c.GetLarge([]int{1, 2})
	require.NoError(t, err)
	assert.Equal(t, "helloworld", large.Text())

	ints, err := c.GetMany([]int{3, 5, 7})
	require.NoError(t, err)
	for n, want := range []int64{0, 1, 2} {
		got, ok := ints[n].Int()
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	reals, err := c.GetMany([]int{4, 6, 8})
	require.NoError(t, err)
	for n, want := range []float64{3.3, 6.6, 9.9} {
		got, ok := reals[n].Float()
		assert.True(t, ok)
		assert.InDelta(t, want, got, 1e-12)
	}
}

func TestNewTrimsNameAndSizes(t *testing.T) {
	c := New("BLANK   ", 16)
	assert.Equal(t, "BLANK", c.Name())
	assert.Equal(t, 16, c.Len())
	for _, v := range c.Values() {
		assert.True(t, v.IsBlank())
	}
	assert.Equal(t, "BLANK\n", dump(t, c, format.FixedFormat()))
}

func TestSizeAndSet(t *testing.T) {
	c := New("HELLO", 9)
	fillHello(t, c)
	assert.Equal(t, 9, c.Len())
	assertHello(t, c)
	assert.Equal(t, helloCard, dump(t, c, format.FixedFormat()))
}

func TestResizeAndSet(t *testing.T) {
	c := New("HELLO", 0)
	c.Resize(9)
	assert.Equal(t, 9, c.Len())
	fillHello(t, c)
	assertHello(t, c)
	assert.Equal(t, helloCard, c.String())

	c.Resize(3)
	assert.Equal(t, 3, c.Len())
	c.Resize(-1)
	assert.Equal(t, 0, c.Len())
}

func TestOversizeSetStrip(t *testing.T) {
	c := New("HELLO", 1000)
	fillHello(t, c)
	c.Strip()
	assert.Equal(t, 9, c.Len())
	assertHello(t, c)
	assert.Equal(t, helloCard, dump(t, c, format.FixedFormat()))
}

func TestSetDoesNotGrow(t *testing.T) {
	c := New("GRID", 2)
	require.ErrorIs(t, c.Set(2, 1), ErrIndexOutOfRange)
	require.ErrorIs(t, c.Set(-3, 1), ErrIndexOutOfRange)
	assert.Equal(t, 2, c.Len())

	require.NoError(t, c.Set(-1, 7))
	v, err := c.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "7", v.String())

	_, err = c.Get(5)
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestSetManyArity(t *testing.T) {
	c := New("GRID", 4)
	err := c.SetMany([]int{0, 1}, 1, 2, 3)
	require.ErrorIs(t, err, ErrMalformedIndexing)

	require.NoError(t, c.SetMany([]int{0, 1, 2, 3}, "a", "b"))
	assert.Equal(t, []string{"a", "b", "", ""}, c.Raw())

	require.ErrorIs(t, c.SetMany([]int{0, 9}, 1, 2), ErrIndexOutOfRange)
	assert.Equal(t, []string{"a", "b", "", ""}, c.Raw(), "failed assignment must not change fields")
}

func TestSetManyRejectsOverflowWithoutPartialWrite(t *testing.T) {
	c := New("GRID", 2)
	err := c.SetMany([]int{0, 1}, 1, 123456789)
	require.ErrorIs(t, err, field.ErrOverflow)
	assert.Equal(t, []string{"", ""}, c.Raw())
}

func TestSetLargeAcrossFields(t *testing.T) {
	c := New("", 2)
	require.NoError(t, c.SetLarge(c.Range(0, 0, 1), "the-answer-is-42"))
	assert.Equal(t, []string{"the-answ", "er-is-42"}, c.Raw())

	require.NoError(t, c.SetLarge(c.Range(0, 0, 1), 1234567891012345))
	v, err := c.GetLarge([]int{0, 1})
	require.NoError(t, err)
	got, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, int64(1234567891012345), got)

	err = New("", 3).SetLarge([]int{0, 1, 2}, 1)
	assert.ErrorIs(t, err, field.ErrInvalidSpan)
}

func TestAppendAndExtend(t *testing.T) {
	want := "TEST    1       2       3       4       5       6       7       8       +0      \n" +
		"+0      1.1     2.2     3.3     4.4     5.5     6.6     7.7     8.8     +1      \n" +
		"+1      a       b       c       d       e       f       g       h\n"

	appended := New("TEST", 0)
	for _, v := range []any{1, 2, 3, 4, 5, 6, 7, 8, 1.1, 2.2, 3.3, 4.4, 5.5, 6.6, 7.7, 8.8, "a", "b", "c", "d", "e", "f", "g", "h"} {
		require.NoError(t, appended.Append(v))
	}
	assert.Equal(t, want, dump(t, appended, format.FixedFormat()))

	extended := New("TEST", 0)
	require.NoError(t, extended.Extend(1, 2, 3, 4, 5, 6, 7, 8))
	require.NoError(t, extended.Extend(1.1, 2.2, 3.3, 4.4, 5.5, 6.6, 7.7, 8.8))
	require.NoError(t, extended.Extend("a", "b", "c", "d", "e", "f", "g", "h"))
	assert.Equal(t, want, dump(t, extended, format.FixedFormat()))
}

func TestExtendIsAtomic(t *testing.T) {
	c := New("TEST", 0)
	require.ErrorIs(t, c.Extend(1, struct{}{}), field.ErrUnsupportedValue)
	assert.Equal(t, 0, c.Len())
}

func TestIncrementalAppend(t *testing.T) {
	c := New("HELLO", 0)
	require.NoError(t, c.Append(99))
	require.NoError(t, c.AppendSpan("helloworld", 2))
	for n, i := range []int{0, 1, 2} {
		require.NoError(t, c.Append(i))
		require.NoError(t, c.Append([]float64{3.3, 6.6, 9.9}[n]))
	}
	assert.Equal(t, helloCard, dump(t, c, format.FixedFormat()))

	c2 := New("HELLO", 0)
	require.NoError(t, c2.Extend(99, "hellowor", "ld", 0, 3.3, 1, 6.6, 2, 9.9))
	assert.Equal(t, helloCard, dump(t, c2, format.FixedFormat()))
}

func TestContains(t *testing.T) {
	c := New("TEST", 0)
	require.NoError(t, c.Extend("one", 1, 1.0))
	for _, v := range []any{"one", 1, 1.0, int64(1)} {
		assert.True(t, c.Contains(v), "%v", v)
	}
	assert.False(t, c.Contains("two"))
	assert.False(t, c.Contains(struct{}{}))
}

func TestLoadModifyDump(t *testing.T) {
	c, err := Loads(helloCard, format.FixedFormat())
	require.NoError(t, err)
	assert.Equal(t, helloCard, dump(t, c, format.FixedFormat()))

	for _, v := range []any{99, "hellowor", 0, 1, 2, 3.3, 6.6, 9.9} {
		assert.True(t, c.Contains(v), "%v", v)
	}

	c.SetName("GOODBYE")
	require.NoError(t, c.Set(0, 100))
	require.NoError(t, c.Set(1, "she"))
	require.NoError(t, c.Set(2, "planet"))
	require.NoError(t, c.SetMany(c.Range(3, 0, 2), 3, 4, 5))
	require.NoError(t, c.SetMany(c.Range(4, 0, 2), 1.1, 2.2, 3.3))

	want := "GOODBYE 100     she     planet  3       1.1     4       2.2     5       +0      \n+0      3.3\n"
	assert.Equal(t, want, dump(t, c, format.FixedFormat()))
}

func TestGetLargeString(t *testing.T) {
	const span = 6
	const s = "the-answer-to-life-the-universe-and-everything"

	c := New("LONGSTR", 0)
	require.NoError(t, c.AppendSpan(s, span))
	assert.Equal(t, span, c.Len())

	for _, idx := range [][]int{c.Range(0, span, 1), c.Range(0, 0, 1), {0, 1, 2, 3, 4, 5}} {
		v, err := c.GetLarge(idx)
		require.NoError(t, err)
		assert.Equal(t, s, v.Text())
	}

	v, err := c.GetLarge([]int{0})
	require.NoError(t, err)
	assert.Equal(t, "the-answ", v.Text())

	_, err = c.GetLarge(nil)
	assert.ErrorIs(t, err, ErrMalformedIndexing)
}

func TestGetLargeNumber(t *testing.T) {
	const n = int64(1000000000000000)

	c := New("LONGNUM", 0)
	require.NoError(t, c.AppendSpan(n, 2))

	v, err := c.GetLarge(c.Range(0, 0, 1))
	require.NoError(t, err)
	got, ok := v.Int()
	require.True(t, ok)
	assert.Equal(t, n, got)

	first, err := c.Get(0)
	require.NoError(t, err)
	got, ok = first.Int()
	require.True(t, ok)
	assert.Equal(t, int64(10000000), got)
}

func TestFreeFormat(t *testing.T) {
	c := New("HELLO", 9)
	fillHello(t, c)
	assert.Equal(t, "HELLO,99,hellowor,ld,0,3.3,1,6.6,2,+0\n+0,9.9\n", dump(t, c, format.FreeFormat()))

	loaded, err := Loads(dump(t, c, format.FreeFormat()), format.FreeFormat())
	require.NoError(t, err)
	assert.Equal(t, c.Raw(), loaded.Raw())
}

func TestSparse(t *testing.T) {
	text := "SPARSE  test\n        test\n        test\n"

	c := New("SPARSE", 0)
	for i := 0; i < 3; i++ {
		require.NoError(t, c.Extend("test", nil, nil, nil, nil, nil, nil, nil))
	}

	loaded, err := Loads(text, format.FixedFormat())
	require.NoError(t, err)
	assert.Equal(t, 17, loaded.Len())
	assert.Equal(t, dump(t, loaded, format.FixedFormat()), dump(t, c, format.FixedFormat()))
}

func TestPopAndDelete(t *testing.T) {
	c := New("TEST", 0)
	require.NoError(t, c.Extend(1, 2, 3))

	last, err := c.Pop()
	require.NoError(t, err)
	assert.Equal(t, "3", last.Raw())

	require.NoError(t, c.Delete(0))
	assert.Equal(t, []string{"2"}, c.Raw())
	assert.ErrorIs(t, c.Delete(4), ErrIndexOutOfRange)

	_, err = c.Pop()
	require.NoError(t, err)
	_, err = c.Pop()
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
}

func TestRange(t *testing.T) {
	c := New("", 9)
	assert.Equal(t, []int{3, 5, 7}, c.Range(3, 0, 2))
	assert.Equal(t, []int{4, 6, 8}, c.Range(4, 9, 2))
	assert.Equal(t, []int{7, 8}, c.Range(-2, 0, 1))
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, c.Range(0, -1, 0))
	assert.Nil(t, c.Range(5, 3, 1))
	assert.Equal(t, []int{8}, c.Range(8, 20, 1))
}

func TestCloneIsIndependent(t *testing.T) {
	c := New("GRID", 2)
	cp := c.Clone()
	require.NoError(t, cp.Set(0, 5))
	cp.SetName("CORD")
	assert.Equal(t, []string{"", ""}, c.Raw())
	assert.Equal(t, "GRID", c.Name())
}

func TestLargeWidthCard(t *testing.T) {
	c := NewWidth("GRID*", 0, 16)
	require.NoError(t, c.Extend(1, nil, 1.2345678901, 2.5))
	assert.Equal(t, []string{"1", "", "1.2345678901", "2.5"}, c.Raw())

	loaded, err := Loads(dump(t, c, format.LargeFormat()), format.LargeFormat())
	require.NoError(t, err)
	assert.Equal(t, 16, loaded.Width())
	assert.Equal(t, c.Raw(), loaded.Raw())
}

func TestLoadsEmpty(t *testing.T) {
	_, err := Loads("$ nothing here\n", format.FixedFormat())
	assert.ErrorIs(t, err, format.ErrEmptyLine)
}

func TestStringFallsBackToFree(t *testing.T) {
	c := FromRaw(format.RawCard{Name: "GRID", Fields: []string{"1", "123456789"}}, field.DefaultWidth)

	_, err := c.Dumps(format.FixedFormat())
	assert.ErrorIs(t, err, field.ErrOverflow)
	assert.Equal(t, "GRID,1,123456789\n", c.String())
}

func dump(t *testing.T, c *Card, f format.Format) string {
	t.Helper()
	out, err := c.Dumps(f)
	require.NoError(t, err)
	return out
}
