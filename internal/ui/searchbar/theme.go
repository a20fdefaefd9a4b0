package searchbar

import (
	"github.com/charmbracelet/lipgloss"

	"companybar/internal/config"
)

// Theme is the colour set the styles are painted with
type Theme struct {
	Text        lipgloss.Color
	Muted       lipgloss.Color
	Border      lipgloss.Color
	Surface     lipgloss.Color
	HighlightBg lipgloss.Color
	Badge       lipgloss.Color
	BadgeText   lipgloss.Color
}

// LightTheme is the palette for light terminals
func LightTheme() Theme {
	return Theme{
		Text:        lipgloss.Color("#111827"),
		Muted:       lipgloss.Color("#6B7280"),
		Border:      lipgloss.Color("#D1D5DB"),
		Surface:     lipgloss.Color("#FFFFFF"),
		HighlightBg: lipgloss.Color("#F3F4F6"),
		Badge:       lipgloss.Color("#E5E7EB"),
		BadgeText:   lipgloss.Color("#374151"),
	}
}

// DarkTheme is the palette for dark terminals
func DarkTheme() Theme {
	return Theme{
		Text:        lipgloss.Color("#F9FAFB"),
		Muted:       lipgloss.Color("#9CA3AF"),
		Border:      lipgloss.Color("#4B5563"),
		Surface:     lipgloss.Color("#1F2937"),
		HighlightBg: lipgloss.Color("#374151"),
		Badge:       lipgloss.Color("#4B5563"),
		BadgeText:   lipgloss.Color("#F9FAFB"),
	}
}

// WithTokens returns t with every non-empty token replacing its colour
func (t Theme) WithTokens(tok config.ThemeTokens) Theme {
	set := func(dst *lipgloss.Color, v string) {
		if v != "" {
			*dst = lipgloss.Color(v)
		}
	}
	set(&t.Text, tok.Text)
	set(&t.Muted, tok.Muted)
	set(&t.Border, tok.Border)
	set(&t.Surface, tok.Surface)
	set(&t.HighlightBg, tok.HighlightBg)
	set(&t.Badge, tok.Badge)
	set(&t.BadgeText, tok.BadgeText)
	return t
}

// IsDark resolves a theme mode. Auto asks the terminal.
func IsDark(mode string) bool {
	switch mode {
	case config.ThemeLight:
		return false
	case config.ThemeDark:
		return true
	default:
		return lipgloss.HasDarkBackground()
	}
}

// ThemeFor picks the palette for mode and applies the matching token overrides
func ThemeFor(opts Options) Theme {
	if IsDark(opts.Theme) {
		return DarkTheme().WithTokens(opts.Dark)
	}
	return LightTheme().WithTokens(opts.Light)
}
