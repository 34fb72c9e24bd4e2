package listview

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainStyles() Styles {
	// Zero styles so Render output is comparable as plain text.
	return Styles{}
}

func items(values ...string) []Item {
	out := make([]Item, len(values))
	for i, v := range values {
		out[i] = Item{Text: v}
	}
	return out
}

func TestSetItemsReplacesPreviousList(t *testing.T) {
	l := New(plainStyles(), Options{})

	l.SetItems(items("apple", "apricot"))
	require.True(t, l.Open())
	require.Equal(t, 2, l.Len())

	l.Next()
	require.Equal(t, 1, l.Cursor())

	// Regenerating resets the cursor and replaces the items wholesale.
	l.SetItems(items("banana"))
	assert.Equal(t, 1, l.Len())
	assert.Equal(t, 0, l.Cursor())
	assert.Equal(t, "banana", l.Items()[0].Text)
}

func TestCloseIsIdempotent(t *testing.T) {
	l := New(plainStyles(), Options{})
	l.SetItems(items("apple"))

	l.Close()
	assert.False(t, l.Open())
	assert.NotPanics(t, func() { l.Close() })
	assert.Equal(t, -1, l.Cursor())
	assert.Empty(t, l.Render())
}

func TestEmptyItemsStayClosed(t *testing.T) {
	l := New(plainStyles(), Options{})
	l.SetItems(nil)
	assert.False(t, l.Open())
}

func TestCursorWrap(t *testing.T) {
	l := New(plainStyles(), Options{Edge: Wrap})
	l.SetItems(items("a", "b", "c"))

	l.Prev()
	assert.Equal(t, 2, l.Cursor(), "prev from top should wrap to bottom")
	l.Next()
	assert.Equal(t, 0, l.Cursor(), "next from bottom should wrap to top")
}

func TestCursorClamp(t *testing.T) {
	l := New(plainStyles(), Options{Edge: Clamp})
	l.SetItems(items("a", "b"))

	l.Prev()
	assert.Equal(t, 0, l.Cursor(), "prev at top should clamp")
	l.Next()
	l.Next()
	l.Next()
	assert.Equal(t, 1, l.Cursor(), "next at bottom should clamp")
}

func TestRenderShowsAllRowsAndEllipsis(t *testing.T) {
	l := New(plainStyles(), Options{MaxVisible: 2})
	l.SetItems(items("apple", "apricot", "avocado"))

	out := l.Render()
	assert.Contains(t, out, "apple")
	assert.Contains(t, out, "apricot")
	assert.NotContains(t, out, "avocado")
	assert.Contains(t, out, "…")
}

func TestRenderScrollsToKeepCursorVisible(t *testing.T) {
	l := New(plainStyles(), Options{MaxVisible: 2, Edge: Clamp})
	l.SetItems(items("a", "b", "c", "d", "e", "f"))

	for i := 0; i < 5; i++ {
		l.Next()
	}
	require.Equal(t, 5, l.Cursor())

	// The window follows the cursor to the last two rows.
	out := l.Render()
	assert.Contains(t, out, "e")
	assert.Contains(t, out, "f")
	assert.NotContains(t, out, "a\n")
	assert.Contains(t, out, "…", "rows hidden above are marked")

	l.Prev()
	l.Prev()
	l.Prev()
	require.Equal(t, 2, l.Cursor())
	out = l.Render()
	assert.Contains(t, out, "b")
	assert.Contains(t, out, "c", "scrolling back up keeps the cursor rendered")
	assert.NotContains(t, out, "f\n")
}

func TestRenderCustomizer(t *testing.T) {
	l := New(plainStyles(), Options{
		Customize: func(item Item, line string) string {
			return line + " (fruit)"
		},
	})
	l.SetItems(items("apple"))

	assert.Contains(t, l.Render(), "apple (fruit)")
}

func TestHighlightBatchesContiguousRuns(t *testing.T) {
	styled := DefaultStyles().Highlight
	out := highlight("apple", []int{1, 2}, styled)

	// The styled span covers "pp" in one run; the surrounding text is
	// untouched.
	assert.True(t, strings.HasPrefix(out, "a"))
	assert.True(t, strings.HasSuffix(out, "le"))
	assert.Contains(t, out, "pp")
}

func TestHighlightIgnoresOutOfRangeIndexes(t *testing.T) {
	out := highlight("ab", []int{-1, 5}, DefaultStyles().Highlight)
	assert.Equal(t, "ab", out)
}
