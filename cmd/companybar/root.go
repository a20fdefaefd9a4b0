package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"companybar/internal/api"
	"companybar/internal/config"
	"companybar/internal/domain"
	"companybar/internal/eventbus"
	"companybar/internal/logging"
	"companybar/internal/logo"
	"companybar/internal/ui"
	"companybar/internal/ui/searchbar"
)

const logoCacheTTL = 30 * time.Minute

// newRootCmd builds the command tree
func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:   "companybar",
		Short: "Search companies from the terminal",
		Long: `companybar opens a company search box backed by the company lookup API.
Type to search, move with the arrow keys and press enter to pick a company.
The chosen company is printed to stdout as JSON.

The API key is read from the config file, the ` + config.EnvAPIKey + `
environment variable or --api-key.`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSearch(cmd, configPath)
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "config file (default "+config.DefaultPath()+")")

	f := root.Flags()
	f.String("api-key", "", "API key for the search API")
	f.String("endpoint", "", "search endpoint URL")
	f.String("auth", "", "auth header style: bearer or api-key")
	f.String("size", "", "widget size: small, medium or large")
	f.String("theme", "", "colour theme: light, dark or auto")
	f.Int("width", 0, "widget width in columns, overrides the size preset")
	f.String("accent", "", "accent colour, e.g. #8B5CF6")
	f.String("placeholder", "", "input placeholder")
	f.String("label", "", "label above the input")
	f.Bool("infinite-scroll", false, "load the next page when scrolling past the last row")
	f.Bool("always-open", false, "keep the dropdown open")
	f.Int("min-query", 0, "minimum query length before searching")
	f.Duration("debounce", 0, "quiet time after typing before a search is sent")
	f.String("log-file", "", "log file, empty to disable logging")
	f.String("log-level", "", "log level: debug, info, warn or error")

	root.AddCommand(newConfigCmd(&configPath))
	return root
}

// applyFlags copies explicitly set flags over the loaded configuration
func applyFlags(cmd *cobra.Command, cfg *config.Config) error {
	f := cmd.Flags()
	str := func(name string, dst *string) {
		if f.Changed(name) {
			*dst, _ = f.GetString(name)
		}
	}
	str("api-key", &cfg.API.Key)
	str("endpoint", &cfg.API.Endpoint)
	str("auth", &cfg.API.Auth)
	str("size", &cfg.Widget.Size)
	str("theme", &cfg.Widget.Theme)
	str("accent", &cfg.Widget.AccentColor)
	str("placeholder", &cfg.Widget.Placeholder)
	str("label", &cfg.Widget.Label)
	str("log-file", &cfg.Log.File)
	str("log-level", &cfg.Log.Level)

	if f.Changed("width") {
		cfg.Widget.Width, _ = f.GetInt("width")
	}
	if f.Changed("infinite-scroll") {
		cfg.Widget.InfiniteScroll, _ = f.GetBool("infinite-scroll")
	}
	if f.Changed("always-open") {
		cfg.Widget.AlwaysOpen, _ = f.GetBool("always-open")
	}
	if f.Changed("min-query") {
		cfg.Search.MinQueryLength, _ = f.GetInt("min-query")
	}
	if f.Changed("debounce") {
		d, _ := f.GetDuration("debounce")
		cfg.Search.Debounce = config.Duration(d)
	}
	return cfg.Validate()
}

func runSearch(cmd *cobra.Command, configPath string) error {
	bus := eventbus.New()
	defer bus.Close()

	svc := config.NewConfigServiceWithBus(configPath, bus)
	cfg, err := svc.Load()
	if err != nil {
		return err
	}
	if err := applyFlags(cmd, cfg); err != nil {
		return err
	}

	logs, err := logging.Setup(cfg.Log)
	if err != nil {
		return err
	}
	defer logs.Close()
	logrus.WithField("path", svc.Path()).Debug("config loaded")

	client, err := api.NewClient(api.OptionsFromConfig(cfg.API))
	if errors.Is(err, api.ErrEmptyAPIKey) {
		return fmt.Errorf("%w: set %s or pass --api-key", err, config.EnvAPIKey)
	}
	if err != nil {
		return err
	}

	var picked *domain.Company
	opts := searchbar.OptionsFromConfig(cfg.Widget, cfg.Search)
	opts.Searcher = client
	opts.Logos = logo.NewResolver(cfg.API.Timeout.Std(), logoCacheTTL)
	opts.Bus = bus
	opts.OnSelect = func(c domain.Company) { picked = &c }

	widget := searchbar.New(opts)
	defer widget.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	p := tea.NewProgram(
		ui.NewApp(widget, "Company search"),
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	)
	forwardEvents(bus, p)

	logrus.WithField("endpoint", cfg.API.Endpoint).Info("starting companybar")
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("running program: %w", err)
	}
	if picked == nil {
		logrus.Info("exited without a selection")
		return nil
	}

	out := json.NewEncoder(cmd.OutOrStdout())
	out.SetIndent("", "  ")
	return out.Encode(picked)
}

// forwardEvents sends the events the host displays into the program
func forwardEvents(bus eventbus.EventBus, p *tea.Program) {
	forward := func(e eventbus.DomainEvent) {
		p.Send(ui.EventMsg{Event: e})
	}
	bus.Subscribe(eventbus.EventSearchFailed, forward)
	bus.Subscribe(eventbus.EventPageLoaded, forward)
}
