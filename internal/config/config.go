package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"

	"companybar/internal/eventbus"
)

// Environment variables consulted after the file is read
const (
	EnvAPIKey   = "COMPANYBAR_API_KEY"
	EnvEndpoint = "COMPANYBAR_ENDPOINT"
)

// DefaultEndpoint is the company search API
const DefaultEndpoint = "https://api.roozna.com/v1/search"

// Auth modes for the search API
const (
	AuthBearer = "bearer"
	AuthAPIKey = "api-key"
)

// Widget sizes
const (
	SizeSmall  = "small"
	SizeMedium = "medium"
	SizeLarge  = "large"
)

// Theme modes
const (
	ThemeLight = "light"
	ThemeDark  = "dark"
	ThemeAuto  = "auto"
)

// Duration is a time.Duration that reads and writes as "300ms" in TOML
type Duration time.Duration

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", text, err)
	}
	*d = Duration(v)
	return nil
}

// Std returns the value as a time.Duration
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config represents the application configuration
type Config struct {
	Version int            `toml:"version"`
	API     APISettings    `toml:"api"`
	Search  SearchSettings `toml:"search"`
	Widget  WidgetSettings `toml:"widget"`
	Log     LogSettings    `toml:"log"`
}

// APISettings configures the network boundary
type APISettings struct {
	Endpoint  string   `toml:"endpoint"`
	Key       string   `toml:"api_key,omitempty"`
	Auth      string   `toml:"auth"`
	Timeout   Duration `toml:"timeout"`
	RateLimit float64  `toml:"rate_limit"` // requests per second, 0 disables
	Burst     int      `toml:"burst"`
	CacheTTL  Duration `toml:"cache_ttl"` // 0 disables the response cache
}

// SearchSettings configures the debounced fetcher
type SearchSettings struct {
	MinQueryLength int      `toml:"min_query_length"`
	Debounce       Duration `toml:"debounce"`
}

// WidgetSettings is the widget configuration surface
type WidgetSettings struct {
	AccentColor    string                   `toml:"accent_color"`
	Placeholder    string                   `toml:"placeholder"`
	Label          string                   `toml:"label"`
	Size           string                   `toml:"size"`
	Width          int                      `toml:"width,omitempty"`
	InitiallyOpen  bool                     `toml:"initially_open"`
	AlwaysOpen     bool                     `toml:"always_open"`
	InfiniteScroll bool                     `toml:"infinite_scroll"`
	Theme          string                   `toml:"theme"`
	Light          ThemeTokens              `toml:"light,omitempty"`
	Dark           ThemeTokens              `toml:"dark,omitempty"`
	Styles         map[string]StyleOverride `toml:"styles,omitempty"`
}

// ThemeTokens are the colours a theme is built from. Empty fields keep the
// built-in value.
type ThemeTokens struct {
	Text        string `toml:"text,omitempty"`
	Muted       string `toml:"muted,omitempty"`
	Border      string `toml:"border,omitempty"`
	Surface     string `toml:"surface,omitempty"`
	HighlightBg string `toml:"highlight_bg,omitempty"`
	Badge       string `toml:"badge,omitempty"`
	BadgeText   string `toml:"badge_text,omitempty"`
}

// StyleOverride adjusts one rendered element. Unset fields leave the
// resolved style untouched.
type StyleOverride struct {
	Foreground   string `toml:"foreground,omitempty"`
	Background   string `toml:"background,omitempty"`
	BorderColor  string `toml:"border_color,omitempty"`
	Bold         *bool  `toml:"bold,omitempty"`
	Italic       *bool  `toml:"italic,omitempty"`
	Faint        *bool  `toml:"faint,omitempty"`
	Underline    *bool  `toml:"underline,omitempty"`
	PaddingLeft  *int   `toml:"padding_left,omitempty"`
	PaddingRight *int   `toml:"padding_right,omitempty"`
}

// LogSettings configures the rotated log file
type LogSettings struct {
	File       string `toml:"file"`
	Level      string `toml:"level"`
	MaxSizeMB  int    `toml:"max_size_mb"`
	MaxBackups int    `toml:"max_backups"`
}

// ConfigService handles configuration management
type ConfigService interface {
	Load() (*Config, error)
	Save(config *Config) error
	LoadFromPath(path string) (*Config, error)
	SaveToPath(config *Config, path string) error
	Path() string
}

// configService is the concrete implementation
type configService struct {
	bus      eventbus.EventBus
	filePath string
}

// DefaultPath returns the per-user config file location
func DefaultPath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir, err = os.UserHomeDir()
		if err != nil {
			configDir = "."
		}
		configDir = filepath.Join(configDir, ".config")
	}
	return filepath.Join(configDir, "companybar", "config.toml")
}

// NewConfigService creates a config service reading path, or the default
// location when path is empty
func NewConfigService(path string) ConfigService {
	if path == "" {
		path = DefaultPath()
	}
	return &configService{filePath: path}
}

// NewConfigServiceWithBus creates a config service with event bus support
func NewConfigServiceWithBus(path string, bus eventbus.EventBus) ConfigService {
	cs := NewConfigService(path).(*configService)
	cs.bus = bus
	return cs
}

func (cs *configService) Path() string { return cs.filePath }

// Load loads the configuration file. A missing file yields the defaults;
// environment overrides are applied either way.
func (cs *configService) Load() (*Config, error) {
	cfg, err := cs.LoadFromPath(cs.filePath)
	if errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig()
		err = nil
	}
	if err != nil {
		return nil, err
	}

	applyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigLoadedEvent{Path: cs.filePath})
	}
	return cfg, nil
}

// Save saves the configuration to the service's file
func (cs *configService) Save(config *Config) error {
	if err := cs.SaveToPath(config, cs.filePath); err != nil {
		return err
	}
	if cs.bus != nil {
		cs.bus.Publish(eventbus.ConfigSavedEvent{Path: cs.filePath})
	}
	return nil
}

// LoadFromPath loads configuration from a specific path. Keys missing from
// the file keep their default values.
func (cs *configService) LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("config file not found: %s: %w", path, os.ErrNotExist)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.Widget.Styles == nil {
		cfg.Widget.Styles = make(map[string]StyleOverride)
	}
	return cfg, nil
}

// SaveToPath saves configuration to a specific path
func (cs *configService) SaveToPath(config *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	// the file may carry an API key
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	if key := os.Getenv(EnvAPIKey); key != "" {
		cfg.API.Key = key
	}
	if endpoint := os.Getenv(EnvEndpoint); endpoint != "" {
		cfg.API.Endpoint = endpoint
	}
}

// Validate rejects values the widget cannot honour
func (c *Config) Validate() error {
	switch c.API.Auth {
	case AuthBearer, AuthAPIKey:
	default:
		return fmt.Errorf("invalid api.auth %q: want %q or %q", c.API.Auth, AuthBearer, AuthAPIKey)
	}
	if c.API.Endpoint == "" {
		return errors.New("api.endpoint must not be empty")
	}
	if c.API.Timeout < 0 || c.API.CacheTTL < 0 || c.Search.Debounce < 0 {
		return errors.New("durations must not be negative")
	}
	if c.API.RateLimit < 0 {
		return errors.New("api.rate_limit must not be negative")
	}
	if c.Search.MinQueryLength < 0 {
		return errors.New("search.min_query_length must not be negative")
	}
	switch c.Widget.Size {
	case SizeSmall, SizeMedium, SizeLarge:
	default:
		return fmt.Errorf("invalid widget.size %q", c.Widget.Size)
	}
	switch c.Widget.Theme {
	case ThemeLight, ThemeDark, ThemeAuto:
	default:
		return fmt.Errorf("invalid widget.theme %q", c.Widget.Theme)
	}
	if c.Widget.Width < 0 {
		return errors.New("widget.width must not be negative")
	}
	return nil
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Version: 1,
		API: APISettings{
			Endpoint:  DefaultEndpoint,
			Auth:      AuthBearer,
			Timeout:   Duration(10 * time.Second),
			RateLimit: 5,
			Burst:     3,
		},
		Search: SearchSettings{
			MinQueryLength: 2,
			Debounce:       Duration(300 * time.Millisecond),
		},
		Widget: WidgetSettings{
			AccentColor:   "#8B5CF6",
			Placeholder:   "Search companies...",
			Label:         "Company name*",
			Size:          SizeMedium,
			InitiallyOpen: true,
			Theme:         ThemeAuto,
			Styles:        make(map[string]StyleOverride),
		},
		Log: LogSettings{
			File:       "companybar.log",
			Level:      "info",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}
