package searchbar

import tea "github.com/charmbracelet/bubbletea"

type hitArea int

const (
	hitOutside hitArea = iota
	hitLabel
	hitInput
	hitDropdown // border or a non-interactive line
	hitRow
	hitFooter
)

// hitTest maps a widget-relative cell to the element drawn there. The
// layout is label, a three-line input box, then the bordered dropdown.
func (m *Model) hitTest(x, y int) (hitArea, int) {
	if x < 0 || x >= m.styles.Width || y < 0 {
		return hitOutside, -1
	}
	label := m.labelLines()
	if y < label {
		return hitLabel, -1
	}
	y -= label
	if y < 3 {
		return hitInput, -1
	}
	if !m.IsOpen() {
		return hitOutside, -1
	}
	y -= 3

	body := m.bodyLines()
	if y >= body+2 {
		return hitOutside, -1
	}
	line := y - 1
	if line < 0 || line >= body {
		return hitDropdown, -1
	}
	if len(m.fetcher.Results()) > 0 {
		start, end := m.nav.Visible()
		if line < end-start {
			return hitRow, start + line
		}
	}
	if line == body-1 && m.footer() == footerLoadMore {
		return hitFooter, -1
	}
	return hitDropdown, -1
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	area, row := m.hitTest(msg.X-m.originX, msg.Y-m.originY)
	inDropdown := area == hitRow || area == hitDropdown || area == hitFooter

	switch {
	case msg.Button == tea.MouseButtonWheelUp && inDropdown:
		m.nav.Scroll(-1)
		return nil

	case msg.Button == tea.MouseButtonWheelDown && inDropdown:
		m.nav.Scroll(1)
		if m.opts.InfiniteScroll && m.nav.AtBottom() {
			return m.loadMore()
		}
		return nil

	case msg.Action == tea.MouseActionMotion:
		if area == hitRow {
			m.hover = row
		} else {
			m.hover = -1
		}
		return nil

	case msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft:
		switch area {
		case hitRow:
			m.nav.MoveToIndex(row)
			return m.selectIndex(row)
		case hitFooter:
			return m.loadMore()
		case hitInput, hitLabel:
			m.dismissed = false
			return m.Focus()
		case hitOutside:
			m.dismiss()
			m.Blur()
		}
	}
	return nil
}
