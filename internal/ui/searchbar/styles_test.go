package searchbar

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"companybar/internal/config"
)

func boolPtr(b bool) *bool { return &b }
func intPtr(i int) *int    { return &i }

func TestResolveStylesSizePresets(t *testing.T) {
	tests := []struct {
		size  string
		width int
		rows  int
	}{
		{config.SizeSmall, 40, 4},
		{config.SizeMedium, 50, 6},
		{config.SizeLarge, 60, 8},
		{"", 50, 6},
	}
	for _, tt := range tests {
		t.Run(tt.size, func(t *testing.T) {
			s := ResolveStyles(Options{Size: tt.size, Theme: config.ThemeLight})
			assert.Equal(t, tt.width, s.Width)
			assert.Equal(t, tt.rows, s.Rows)
			assert.Equal(t, tt.width-2, s.Input.GetWidth())
		})
	}
}

func TestResolveStylesExplicitWidthWins(t *testing.T) {
	s := ResolveStyles(Options{Size: config.SizeSmall, Width: 72, Theme: config.ThemeDark})
	assert.Equal(t, 72, s.Width)
	assert.Equal(t, 4, s.Rows)
}

func TestResolveStylesThemes(t *testing.T) {
	light := ResolveStyles(Options{Theme: config.ThemeLight})
	dark := ResolveStyles(Options{Theme: config.ThemeDark})

	assert.Equal(t, LightTheme().Text, light.Name.GetForeground())
	assert.Equal(t, DarkTheme().Text, dark.Name.GetForeground())
	assert.Equal(t, DarkTheme().HighlightBg, dark.RowHighlight.GetBackground())
}

func TestResolveStylesThemeTokens(t *testing.T) {
	s := ResolveStyles(Options{
		Theme: config.ThemeDark,
		Dark:  config.ThemeTokens{Muted: "#123456"},
		Light: config.ThemeTokens{Muted: "#654321"},
	})
	assert.Equal(t, lipgloss.Color("#123456"), s.Domain.GetForeground())
	assert.Equal(t, DarkTheme().Text, s.Name.GetForeground(), "unset tokens keep the palette")
}

func TestResolveStylesAccent(t *testing.T) {
	s := ResolveStyles(Options{Theme: config.ThemeLight, AccentColor: "#FF0000"})
	accent := lipgloss.Color("#FF0000")
	assert.Equal(t, accent, s.Check.GetForeground())
	assert.Equal(t, accent, s.InputFocused.GetBorderTopForeground())
	assert.Equal(t, LightTheme().Border, s.Input.GetBorderTopForeground())
}

func TestResolveStylesOverridesWinPerField(t *testing.T) {
	s := ResolveStyles(Options{
		Size:  config.SizeLarge,
		Theme: config.ThemeLight,
		Styles: map[string]config.StyleOverride{
			"name":     {Foreground: "#00FF00", Italic: boolPtr(true)},
			"row":      {PaddingLeft: intPtr(3)},
			"dropdown": {BorderColor: "#0000FF"},
			"bogus":    {Foreground: "#FFFFFF"},
		},
	})

	assert.Equal(t, lipgloss.Color("#00FF00"), s.Name.GetForeground())
	assert.True(t, s.Name.GetItalic())
	assert.True(t, s.Name.GetBold(), "size preset survives the override")
	assert.Equal(t, 3, s.Row.GetPaddingLeft())
	assert.Equal(t, 1, s.Row.GetPaddingRight())
	assert.Equal(t, lipgloss.Color("#0000FF"), s.Dropdown.GetBorderTopForeground())
}

func TestStyleNames(t *testing.T) {
	names := StyleNames()
	assert.Contains(t, names, "row_highlight")
	assert.Contains(t, names, "badge")
	assert.IsIncreasing(t, names)
}

func TestContrastText(t *testing.T) {
	assert.Equal(t, lipgloss.Color("#000000"), contrastText("#FFFF00"))
	assert.Equal(t, lipgloss.Color("#FFFFFF"), contrastText("#101010"))
	assert.Equal(t, lipgloss.Color("#FFFFFF"), contrastText("garbage"))
}
