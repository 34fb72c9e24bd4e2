// Package listview owns the rendered results list of a typeahead widget:
// at most one list is live per instance, the previous one is destroyed
// before a new one is created, and a navigation cursor moves over the
// visible items.
package listview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Item is one rendered row. Indexes are the matched rune positions of
// Text, used for highlighting. Payload carries the owner's per-item data
// through to the customizer.
type Item struct {
	Text    string
	Indexes []int
	Payload any
}

// Customizer lets the host rewrite a rendered line for an item. It runs
// after highlighting, before selection styling.
type Customizer func(item Item, line string) string

// Options control list construction.
type Options struct {
	Highlight  bool
	MaxVisible int // 0 means all items
	Edge       EdgeMode
	Customize  Customizer
}

// Styles holds the lipgloss styles used by Render.
type Styles struct {
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Highlight lipgloss.Style
	More      lipgloss.Style
}

// DefaultStyles returns the stock look: selected row inverted, matched
// runes bold.
func DefaultStyles() Styles {
	return Styles{
		Item:      lipgloss.NewStyle().PaddingLeft(2),
		Selected:  lipgloss.NewStyle().PaddingLeft(0).SetString("> ").Reverse(true),
		Highlight: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75")),
		More:      lipgloss.NewStyle().Faint(true).PaddingLeft(2),
	}
}

// List is the single live results list of one widget instance.
type List struct {
	styles Styles
	opts   Options

	open   bool
	items  []Item
	cursor *Cursor
}

// New returns a closed list.
func New(styles Styles, opts Options) *List {
	return &List{
		styles: styles,
		opts:   opts,
		cursor: NewCursor(0, opts.Edge),
	}
}

// SetItems replaces the current list with a fresh one and resets the
// cursor. An already-open list is destroyed first, never appended to.
func (l *List) SetItems(items []Item) {
	l.Close()
	if len(items) == 0 {
		return
	}
	l.items = items
	l.cursor.Reset(len(items))
	l.open = true
}

// Close destroys the list. Calling it on a closed list is a no-op.
func (l *List) Close() {
	l.items = nil
	l.cursor.Reset(0)
	l.open = false
}

// Open reports whether a list is currently live.
func (l *List) Open() bool { return l.open }

// Len returns the number of live items.
func (l *List) Len() int { return len(l.items) }

// Items returns the live items.
func (l *List) Items() []Item { return l.items }

// Cursor returns the current cursor position, -1 when closed.
func (l *List) Cursor() int {
	if !l.open {
		return -1
	}
	return l.cursor.Index()
}

// Next moves the selection down; Prev moves it up. Both are no-ops on a
// closed list.
func (l *List) Next() {
	if l.open {
		l.cursor.Next()
	}
}

func (l *List) Prev() {
	if l.open {
		l.cursor.Prev()
	}
}

// Render returns the styled list. Closed lists render empty. When
// MaxVisible caps the rows, the window scrolls so the cursor row is
// always rendered.
func (l *List) Render() string {
	if !l.open {
		return ""
	}

	visible := l.items
	start := 0
	hiddenBelow := 0
	if l.opts.MaxVisible > 0 && len(visible) > l.opts.MaxVisible {
		if cur := l.cursor.Index(); cur >= l.opts.MaxVisible {
			start = cur - l.opts.MaxVisible + 1
		}
		hiddenBelow = len(visible) - (start + l.opts.MaxVisible)
		visible = visible[start : start+l.opts.MaxVisible]
	}

	var b strings.Builder
	if start > 0 {
		b.WriteString(l.styles.More.Render("…"))
		b.WriteByte('\n')
	}
	for i, item := range visible {
		line := item.Text
		if l.opts.Highlight && len(item.Indexes) > 0 {
			line = highlight(item.Text, item.Indexes, l.styles.Highlight)
		}
		if l.opts.Customize != nil {
			line = l.opts.Customize(item, line)
		}
		if start+i == l.cursor.Index() {
			b.WriteString(l.styles.Selected.Render(line))
		} else {
			b.WriteString(l.styles.Item.Render(line))
		}
		b.WriteByte('\n')
	}
	if hiddenBelow > 0 {
		b.WriteString(l.styles.More.Render("…"))
		b.WriteByte('\n')
	}
	return b.String()
}

// highlight wraps the matched rune positions of text in the given style,
// batching contiguous runs into one styled span.
func highlight(text string, indexes []int, style lipgloss.Style) string {
	runes := []rune(text)
	matched := make(map[int]bool, len(indexes))
	for _, i := range indexes {
		if i >= 0 && i < len(runes) {
			matched[i] = true
		}
	}

	var b strings.Builder
	for i := 0; i < len(runes); {
		if !matched[i] {
			b.WriteRune(runes[i])
			i++
			continue
		}
		j := i
		for j < len(runes) && matched[j] {
			j++
		}
		b.WriteString(style.Render(string(runes[i:j])))
		i = j
	}
	return b.String()
}
