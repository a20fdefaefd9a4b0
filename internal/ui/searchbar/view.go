package searchbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"companybar/internal/domain"
)

const (
	indicatorOpen   = "▴"
	indicatorClosed = "▾"
	checkmark       = "✓"
)

type footerKind int

const (
	footerNone footerKind = iota
	footerRefreshing
	footerLoadingMore
	footerLoadMore
)

// View renders label, input row and, when open, the dropdown
func (m *Model) View() string {
	var parts []string
	if m.opts.Label != "" {
		parts = append(parts, m.styles.Label.Render(m.opts.Label))
	}
	parts = append(parts, m.renderInput())
	if m.IsOpen() {
		parts = append(parts, m.renderDropdown())
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (m *Model) labelLines() int {
	if m.opts.Label == "" {
		return 0
	}
	return 1
}

func (m *Model) contentWidth() int {
	return m.styles.Width - 2 - 2*m.styles.PadX
}

func (m *Model) renderInput() string {
	indicator := indicatorClosed
	if m.IsOpen() {
		indicator = indicatorOpen
	}
	field := ansi.Truncate(m.input.View(), m.contentWidth()-2, "")
	gap := max(1, m.contentWidth()-lipgloss.Width(field)-1)
	line := field + strings.Repeat(" ", gap) + m.styles.Indicator.Render(indicator)

	style := m.styles.Input
	if m.focused {
		style = m.styles.InputFocused
	}
	return style.Render(line)
}

func (m *Model) footer() footerKind {
	if len(m.fetcher.Results()) == 0 {
		return footerNone
	}
	if m.fetcher.Loading() {
		return footerRefreshing
	}
	if m.fetcher.LoadingMore() {
		return footerLoadingMore
	}
	if !m.opts.InfiniteScroll && m.fetcher.CanLoadMore() {
		return footerLoadMore
	}
	return footerNone
}

// bodyLines is the number of lines between the dropdown borders
func (m *Model) bodyLines() int {
	n := 1
	if len(m.fetcher.Results()) > 0 {
		start, end := m.nav.Visible()
		n = end - start
	}
	if m.footer() != footerNone {
		n++
	}
	return n
}

func (m *Model) renderDropdown() string {
	results := m.fetcher.Results()
	var lines []string

	switch {
	case len(results) == 0 && (m.fetcher.Loading() || m.fetcher.State() == StatePending):
		lines = append(lines, m.styles.Empty.Render(m.spinner.View()+" Searching..."))
	case len(results) == 0:
		style := m.styles.Empty
		if m.fetcher.Err() != nil {
			style = style.Foreground(m.styles.Error.GetForeground())
		}
		lines = append(lines, style.Render("No results found"))
	default:
		start, end := m.nav.Visible()
		selected := m.store.Selection()
		for i := start; i < end; i++ {
			c := results[i]
			isSelected := selected != nil && selected.ID == c.ID
			lines = append(lines, m.renderRow(c, i == m.nav.Cursor(), i == m.hover, isSelected))
		}
	}

	switch m.footer() {
	case footerRefreshing:
		lines = append(lines, m.styles.Footer.Render(m.spinner.View()+" Searching..."))
	case footerLoadingMore:
		lines = append(lines, m.styles.Footer.Render(m.spinner.View()+" Loading more..."))
	case footerLoadMore:
		label := "Load more"
		if p := m.fetcher.Pagination(); p != nil && p.TotalHits > 0 {
			label = fmt.Sprintf("Load more (%d of %d)", len(results), p.TotalHits)
		}
		lines = append(lines, m.styles.Footer.Render(label))
	}

	return m.styles.Dropdown.Render(strings.Join(lines, "\n"))
}

func (m *Model) renderRow(c domain.Company, highlighted, hovered, selected bool) string {
	width := m.contentWidth()

	badge := m.renderBadge(c)
	check := " "
	if selected || hovered {
		check = m.styles.Check.Render(checkmark)
	}

	room := width - lipgloss.Width(badge) - 3
	name := ansi.Truncate(c.Name, max(room, 1), "…")
	text := m.styles.Name.Render(name)
	if dn := domain.DomainName(c.Website); dn != "" {
		if left := room - lipgloss.Width(name) - 2; left >= 4 {
			text += "  " + m.styles.Domain.Render(ansi.Truncate(dn, left, "…"))
		}
	}

	left := badge + " " + text
	gap := max(1, width-lipgloss.Width(left)-1)
	line := left + strings.Repeat(" ", gap) + check

	style := m.styles.Row
	switch {
	case highlighted:
		style = m.styles.RowHighlight
	case hovered:
		style = m.styles.RowHover
	}
	return style.Render(line)
}

// renderBadge draws the initials badge, tinted with the logo colour once
// it is known
func (m *Model) renderBadge(c domain.Company) string {
	initials := domain.Initials(c.Name)
	if initials == "" {
		initials = "?"
	}
	initials = fmt.Sprintf("%-2s", initials)

	style := m.styles.Badge
	if color := m.logoColors[c.ID]; color != "" {
		style = style.Background(lipgloss.Color(color)).Foreground(contrastText(color))
	}
	return style.Render(initials)
}

// contrastText picks black or white text for a "#rrggbb" background
func contrastText(hex string) lipgloss.Color {
	var r, g, b int
	if _, err := fmt.Sscanf(hex, "#%02x%02x%02x", &r, &g, &b); err != nil {
		return lipgloss.Color("#FFFFFF")
	}
	if 299*r+587*g+114*b > 128000 {
		return lipgloss.Color("#000000")
	}
	return lipgloss.Color("#FFFFFF")
}
