package state

// List tracks the rows, filter, cursor and viewport of a filterable list.
type List struct {
	Items          []Item
	Full           []Item
	Filter         string
	Cursor         int
	LastCursor     int
	ViewportOffset int
}

// NewList constructs a List holding items.
func NewList(items []Item) *List {
	l := &List{LastCursor: -1}
	l.UpdateItems(items)
	return l
}

// IndexOf returns the index for a given item identifier.
func (l *List) IndexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, item := range l.Items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// Current returns the item under the cursor.
func (l *List) Current() (Item, bool) {
	if l.Cursor < 0 || l.Cursor >= len(l.Items) {
		return Item{}, false
	}
	return l.Items[l.Cursor], true
}

// UpdateItems replaces the rows, keeping the cursor on the same item id
// when it is still present.
func (l *List) UpdateItems(items []Item) {
	prevOffset := l.ViewportOffset
	var prevID string
	if current, ok := l.Current(); ok {
		prevID = current.ID
	}
	l.Full = CloneItems(items)
	l.applyFilter()
	if idx := l.IndexOf(prevID); idx >= 0 {
		l.Cursor = idx
	}
	if prevOffset < 0 || prevOffset >= len(l.Items) {
		prevOffset = 0
	}
	l.ViewportOffset = prevOffset
}

// clamp bounds i to a valid index for n rows; 0 when there are none.
func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}
