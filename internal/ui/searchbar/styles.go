package searchbar

import (
	"sort"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"companybar/internal/config"
)

// SizePreset fixes the geometry of one size variant
type SizePreset struct {
	Width int // outer width in columns, borders included
	Rows  int // visible dropdown rows
	PadX  int // horizontal padding inside input and rows
	Bold  bool
}

var sizePresets = map[string]SizePreset{
	config.SizeSmall:  {Width: 40, Rows: 4, PadX: 0},
	config.SizeMedium: {Width: 50, Rows: 6, PadX: 1},
	config.SizeLarge:  {Width: 60, Rows: 8, PadX: 1, Bold: true},
}

// PresetFor returns the preset for size, medium when unknown
func PresetFor(size string) SizePreset {
	if p, ok := sizePresets[size]; ok {
		return p
	}
	return sizePresets[config.SizeMedium]
}

// Styles holds every style the widget renders with
type Styles struct {
	Width int
	Rows  int
	PadX  int

	Label        lipgloss.Style
	Input        lipgloss.Style
	InputFocused lipgloss.Style
	Prompt       lipgloss.Style
	Text         lipgloss.Style
	Placeholder  lipgloss.Style
	Indicator    lipgloss.Style
	Dropdown     lipgloss.Style
	Row          lipgloss.Style
	RowHighlight lipgloss.Style
	RowHover     lipgloss.Style
	Name         lipgloss.Style
	Domain       lipgloss.Style
	Badge        lipgloss.Style
	Check        lipgloss.Style
	Empty        lipgloss.Style
	Spinner      lipgloss.Style
	Footer       lipgloss.Style
	Error        lipgloss.Style
}

// ResolveStyles builds the final styles in layers: defaults, size preset,
// theme and accent, then caller overrides. Each layer only touches the
// properties it sets, so an override of one colour keeps the rest.
func ResolveStyles(opts Options) Styles {
	opts = opts.withDefaults()
	preset := PresetFor(opts.Size)
	if opts.Width > 0 {
		preset.Width = opts.Width
	}

	s := defaultStyles()
	s = s.sized(preset)
	s = s.themed(ThemeFor(opts), lipgloss.Color(opts.AccentColor))
	s.override(opts.Styles)
	return s
}

func defaultStyles() Styles {
	box := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	return Styles{
		Label:        lipgloss.NewStyle().Bold(true),
		Input:        box,
		InputFocused: box,
		Prompt:       lipgloss.NewStyle(),
		Text:         lipgloss.NewStyle(),
		Placeholder:  lipgloss.NewStyle().Italic(true),
		Indicator:    lipgloss.NewStyle(),
		Dropdown:     box,
		Row:          lipgloss.NewStyle(),
		RowHighlight: lipgloss.NewStyle(),
		RowHover:     lipgloss.NewStyle(),
		Name:         lipgloss.NewStyle(),
		Domain:       lipgloss.NewStyle(),
		Badge:        lipgloss.NewStyle().Bold(true).Padding(0, 1),
		Check:        lipgloss.NewStyle().Bold(true),
		Empty:        lipgloss.NewStyle().Italic(true),
		Spinner:      lipgloss.NewStyle(),
		Footer:       lipgloss.NewStyle().Italic(true),
		Error:        lipgloss.NewStyle(),
	}
}

func (s Styles) sized(p SizePreset) Styles {
	s.Width = p.Width
	s.Rows = p.Rows
	s.PadX = p.PadX

	inner := p.Width - 2
	s.Input = s.Input.Width(inner).Padding(0, p.PadX)
	s.InputFocused = s.InputFocused.Width(inner).Padding(0, p.PadX)
	s.Dropdown = s.Dropdown.Width(inner)
	for _, row := range []*lipgloss.Style{&s.Row, &s.RowHighlight, &s.RowHover, &s.Empty, &s.Footer} {
		*row = row.Width(inner).Padding(0, p.PadX)
	}
	if p.Bold {
		s.Name = s.Name.Bold(true)
		s.Text = s.Text.Bold(true)
	}
	return s
}

func (s Styles) themed(t Theme, accent lipgloss.Color) Styles {
	s.Label = s.Label.Foreground(t.Text)
	s.Input = s.Input.BorderForeground(t.Border)
	s.InputFocused = s.InputFocused.BorderForeground(accent)
	s.Prompt = s.Prompt.Foreground(t.Muted)
	s.Text = s.Text.Foreground(t.Text)
	s.Placeholder = s.Placeholder.Foreground(t.Muted)
	s.Indicator = s.Indicator.Foreground(t.Muted)
	s.Dropdown = s.Dropdown.BorderForeground(t.Border)
	s.Row = s.Row.Foreground(t.Text)
	s.RowHighlight = s.RowHighlight.Foreground(t.Text).Background(t.HighlightBg)
	s.RowHover = s.RowHover.Foreground(t.Text).Background(t.Surface)
	s.Name = s.Name.Foreground(t.Text)
	s.Domain = s.Domain.Foreground(t.Muted)
	s.Badge = s.Badge.Foreground(t.BadgeText).Background(t.Badge)
	s.Check = s.Check.Foreground(accent)
	s.Empty = s.Empty.Foreground(t.Muted)
	s.Spinner = s.Spinner.Foreground(accent)
	s.Footer = s.Footer.Foreground(accent)
	s.Error = s.Error.Foreground(lipgloss.Color("203"))
	return s
}

func (s *Styles) byName() map[string]*lipgloss.Style {
	return map[string]*lipgloss.Style{
		"label":         &s.Label,
		"input":         &s.Input,
		"input_focused": &s.InputFocused,
		"prompt":        &s.Prompt,
		"text":          &s.Text,
		"placeholder":   &s.Placeholder,
		"indicator":     &s.Indicator,
		"dropdown":      &s.Dropdown,
		"row":           &s.Row,
		"row_highlight": &s.RowHighlight,
		"row_hover":     &s.RowHover,
		"name":          &s.Name,
		"domain":        &s.Domain,
		"badge":         &s.Badge,
		"check":         &s.Check,
		"empty":         &s.Empty,
		"spinner":       &s.Spinner,
		"footer":        &s.Footer,
		"error":         &s.Error,
	}
}

// StyleNames lists the element names accepted as override keys
func StyleNames() []string {
	var s Styles
	names := make([]string, 0, 19)
	for name := range s.byName() {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *Styles) override(overrides map[string]config.StyleOverride) {
	targets := s.byName()
	for name, o := range overrides {
		target, ok := targets[name]
		if !ok {
			logrus.WithField("element", name).Warn("ignoring style override for unknown element")
			continue
		}
		*target = applyOverride(*target, o)
	}
}

func applyOverride(st lipgloss.Style, o config.StyleOverride) lipgloss.Style {
	if o.Foreground != "" {
		st = st.Foreground(lipgloss.Color(o.Foreground))
	}
	if o.Background != "" {
		st = st.Background(lipgloss.Color(o.Background))
	}
	if o.BorderColor != "" {
		st = st.BorderForeground(lipgloss.Color(o.BorderColor))
	}
	if o.Bold != nil {
		st = st.Bold(*o.Bold)
	}
	if o.Italic != nil {
		st = st.Italic(*o.Italic)
	}
	if o.Faint != nil {
		st = st.Faint(*o.Faint)
	}
	if o.Underline != nil {
		st = st.Underline(*o.Underline)
	}
	if o.PaddingLeft != nil {
		st = st.PaddingLeft(*o.PaddingLeft)
	}
	if o.PaddingRight != nil {
		st = st.PaddingRight(*o.PaddingRight)
	}
	return st
}
