package searchbar

// Direction represents cursor movements
type Direction string

const (
	DirectionUp       Direction = "up"
	DirectionDown     Direction = "down"
	DirectionPageUp   Direction = "pageup"
	DirectionPageDown Direction = "pagedown"
)

// Navigator tracks the highlighted row and the dropdown viewport. The cursor
// is -1 when nothing is highlighted and never wraps.
type Navigator struct {
	cursor         int
	viewportOffset int
	viewportHeight int
	count          int
	resume         int // row highlighted before the last append, -1 if none
}

// NewNavigator creates a navigator showing height rows at a time
func NewNavigator(height int) *Navigator {
	if height < 1 {
		height = 1
	}
	return &Navigator{cursor: -1, viewportHeight: height, resume: -1}
}

// Cursor returns the highlighted index, -1 for none
func (n *Navigator) Cursor() int { return n.cursor }

// Offset returns the first visible row
func (n *Navigator) Offset() int { return n.viewportOffset }

// Height returns the number of visible rows
func (n *Navigator) Height() int { return n.viewportHeight }

// Visible returns the [start, end) range of rows on screen
func (n *Navigator) Visible() (int, int) {
	end := n.viewportOffset + n.viewportHeight
	if end > n.count {
		end = n.count
	}
	return n.viewportOffset, end
}

// AtBottom reports whether the last row is on screen
func (n *Navigator) AtBottom() bool {
	_, end := n.Visible()
	return n.count > 0 && end >= n.count
}

// ListReplaced resets cursor and viewport for a new list
func (n *Navigator) ListReplaced(count int) {
	n.count = count
	n.cursor = -1
	n.resume = -1
	n.viewportOffset = 0
}

// ListExtended resets the cursor after rows were appended. The viewport
// stays where it is and the next move continues from the row that was
// highlighted, so the list does not jump back to the top.
func (n *Navigator) ListExtended(count int) {
	n.count = count
	if n.cursor >= 0 {
		n.resume = n.cursor
	}
	n.cursor = -1
	n.clampOffset()
}

// Navigate moves the cursor in a direction
func (n *Navigator) Navigate(direction Direction) {
	if n.count == 0 {
		return
	}
	if n.cursor < 0 && n.resume >= 0 {
		n.cursor = n.resume
	}
	n.resume = -1

	switch direction {
	case DirectionUp:
		if n.cursor > 0 {
			n.cursor--
		}
	case DirectionDown:
		if n.cursor < n.count-1 {
			n.cursor++
		}
	case DirectionPageUp:
		n.cursor = n.clampIndex(n.cursor - n.viewportHeight)
	case DirectionPageDown:
		n.cursor = n.clampIndex(n.cursor + n.viewportHeight)
	}
	n.ensureVisible()
}

// MoveToIndex highlights a specific row
func (n *Navigator) MoveToIndex(index int) {
	if n.count == 0 {
		return
	}
	n.cursor = n.clampIndex(index)
	n.resume = -1
	n.ensureVisible()
}

// Scroll moves the viewport without touching the cursor
func (n *Navigator) Scroll(delta int) {
	n.viewportOffset += delta
	n.clampOffset()
}

func (n *Navigator) clampIndex(index int) int {
	if index < 0 {
		return 0
	}
	if index > n.count-1 {
		return n.count - 1
	}
	return index
}

func (n *Navigator) clampOffset() {
	maxOffset := n.count - n.viewportHeight
	if maxOffset < 0 {
		maxOffset = 0
	}
	if n.viewportOffset > maxOffset {
		n.viewportOffset = maxOffset
	}
	if n.viewportOffset < 0 {
		n.viewportOffset = 0
	}
}

func (n *Navigator) ensureVisible() {
	if n.cursor < 0 {
		return
	}
	if n.cursor < n.viewportOffset {
		n.viewportOffset = n.cursor
	} else if n.cursor >= n.viewportOffset+n.viewportHeight {
		n.viewportOffset = n.cursor - n.viewportHeight + 1
	}
}
