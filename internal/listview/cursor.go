package listview

// EdgeMode decides what happens when the cursor moves past an edge.
type EdgeMode int

const (
	// Wrap moves from the last item back to the first and vice versa.
	Wrap EdgeMode = iota
	// Clamp pins the cursor at the edges.
	Clamp
)

// Cursor is an index into the rendered list, bounded to [0, count-1].
// It resets whenever the list is regenerated.
type Cursor struct {
	index int
	count int
	mode  EdgeMode
}

// NewCursor returns a cursor over count items.
func NewCursor(count int, mode EdgeMode) *Cursor {
	return &Cursor{count: count, mode: mode}
}

// Index returns the current position, or -1 when the list is empty.
func (c *Cursor) Index() int {
	if c.count == 0 {
		return -1
	}
	return c.index
}

// Reset moves the cursor back to the first item and rebinds it to a new
// item count.
func (c *Cursor) Reset(count int) {
	c.index = 0
	c.count = count
}

// Next moves the cursor down one item.
func (c *Cursor) Next() {
	if c.count == 0 {
		return
	}
	if c.index+1 < c.count {
		c.index++
		return
	}
	if c.mode == Wrap {
		c.index = 0
	}
}

// Prev moves the cursor up one item.
func (c *Cursor) Prev() {
	if c.count == 0 {
		return
	}
	if c.index > 0 {
		c.index--
		return
	}
	if c.mode == Wrap {
		c.index = c.count - 1
	}
}
