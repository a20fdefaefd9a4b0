package searchbar

import (
	"context"
	"time"

	"companybar/internal/api"
	"companybar/internal/config"
	"companybar/internal/domain"
	"companybar/internal/eventbus"
)

// LogoResolver resolves a logo URL to a "#rrggbb" badge colour
type LogoResolver interface {
	Color(ctx context.Context, imageURL string) (string, error)
}

// Options configures a widget instance. Zero values fall back to the
// defaults of config.DefaultConfig.
type Options struct {
	Searcher api.Searcher
	Logos    LogoResolver      // optional
	Bus      eventbus.EventBus // optional
	OnSelect func(domain.Company)

	MinQueryLength int
	Debounce       time.Duration

	AccentColor    string
	Placeholder    string
	Label          string
	Size           string
	Width          int // overrides the size preset width when > 0
	InitiallyOpen  bool
	AlwaysOpen     bool
	InfiniteScroll bool

	Theme  string
	Light  config.ThemeTokens
	Dark   config.ThemeTokens
	Styles map[string]config.StyleOverride

	Keys *KeyMap
}

// OptionsFromConfig maps the widget and search sections of a config file
func OptionsFromConfig(w config.WidgetSettings, s config.SearchSettings) Options {
	return Options{
		MinQueryLength: s.MinQueryLength,
		Debounce:       s.Debounce.Std(),
		AccentColor:    w.AccentColor,
		Placeholder:    w.Placeholder,
		Label:          w.Label,
		Size:           w.Size,
		Width:          w.Width,
		InitiallyOpen:  w.InitiallyOpen,
		AlwaysOpen:     w.AlwaysOpen,
		InfiniteScroll: w.InfiniteScroll,
		Theme:          w.Theme,
		Light:          w.Light,
		Dark:           w.Dark,
		Styles:         w.Styles,
	}
}

func (o Options) withDefaults() Options {
	def := config.DefaultConfig()
	if o.MinQueryLength <= 0 {
		o.MinQueryLength = def.Search.MinQueryLength
	}
	if o.Debounce <= 0 {
		o.Debounce = def.Search.Debounce.Std()
	}
	if o.AccentColor == "" {
		o.AccentColor = def.Widget.AccentColor
	}
	if o.Placeholder == "" {
		o.Placeholder = def.Widget.Placeholder
	}
	if o.Size == "" {
		o.Size = def.Widget.Size
	}
	if o.Theme == "" {
		o.Theme = def.Widget.Theme
	}
	if o.Keys == nil {
		keys := DefaultKeyMap()
		o.Keys = &keys
	}
	return o
}
