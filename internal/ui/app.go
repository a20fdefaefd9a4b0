package ui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"companybar/internal/domain"
	"companybar/internal/eventbus"
	"companybar/internal/ui/searchbar"
)

// EnvE2E makes the app print a readiness marker for the pty test suite
const EnvE2E = "COMPANYBAR_E2E_TEST"

// EventMsg wraps a bus event forwarded into the program
type EventMsg struct {
	Event eventbus.DomainEvent
}

type clearStatusMsg struct{}

// appKeyMap adds the host's own bindings to the widget's
type appKeyMap struct {
	searchbar.KeyMap
	Quit key.Binding
}

func (k appKeyMap) ShortHelp() []key.Binding {
	return append(k.KeyMap.ShortHelp(), k.Quit)
}

func (k appKeyMap) FullHelp() [][]key.Binding {
	return append(k.KeyMap.FullHelp(), []key.Binding{k.Quit})
}

// App hosts a single search widget full-screen and quits once a company
// has been picked
type App struct {
	widget *searchbar.Model
	keys   appKeyMap
	help   help.Model

	width  int
	height int

	title     string
	status    string
	statusErr bool
	selected  *domain.Company
	e2e       bool
}

var (
	mainStyle   = lipgloss.NewStyle().Padding(1, 2)
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("99")).MarginBottom(1)
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("203")).MarginTop(1)
	helpStyle   = lipgloss.NewStyle().Faint(true).MarginTop(1)
)

// NewApp creates the host model around widget
func NewApp(widget *searchbar.Model, title string) *App {
	a := &App{
		widget: widget,
		keys: appKeyMap{
			KeyMap: widget.KeyMap(),
			Quit: key.NewBinding(
				key.WithKeys("ctrl+c"),
				key.WithHelp("ctrl+c", "quit"),
			),
		},
		help:  help.New(),
		title: title,
		e2e:   os.Getenv(EnvE2E) == "1",
	}
	// padding, then the title and its margin
	widget.SetOrigin(mainStyle.GetPaddingLeft(), mainStyle.GetPaddingTop()+lipgloss.Height(titleStyle.Render(title)))
	return a
}

// Selected returns the company picked before the program quit, or nil
func (a *App) Selected() *domain.Company { return a.selected }

func (a *App) Init() tea.Cmd {
	return a.widget.Init()
}

func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.help.Width = msg.Width
		return a, nil

	case tea.KeyMsg:
		if key.Matches(msg, a.keys.Quit) {
			a.widget.Close()
			return a, tea.Quit
		}

	case searchbar.SelectedMsg:
		c := msg.Company
		a.selected = &c
		a.widget.Close()
		return a, tea.Quit

	case EventMsg:
		return a, a.handleEvent(msg.Event)

	case clearStatusMsg:
		a.status = ""
		a.statusErr = false
		return a, nil
	}

	_, cmd := a.widget.Update(msg)
	return a, cmd
}

func (a *App) handleEvent(e eventbus.DomainEvent) tea.Cmd {
	switch e := e.(type) {
	case eventbus.SearchFailedEvent:
		a.status = fmt.Sprintf("Search failed: %v", e.Err)
		a.statusErr = true
		return tea.Tick(5*time.Second, func(time.Time) tea.Msg { return clearStatusMsg{} })
	case eventbus.PageLoadedEvent:
		if e.TotalHits > 0 {
			a.status = fmt.Sprintf("%d of %d companies", e.Count, e.TotalHits)
		} else {
			a.status = ""
		}
		a.statusErr = false
	}
	return nil
}

func (a *App) View() string {
	var b []string
	b = append(b, titleStyle.Render(a.title))
	b = append(b, a.widget.View())
	if a.status != "" {
		style := statusStyle
		if a.statusErr {
			style = errorStyle
		}
		b = append(b, style.Render(a.status))
	}
	b = append(b, helpStyle.Render(a.help.View(a.keys)))
	if a.e2e {
		b = append(b, "__READY__")
	}
	return mainStyle.Render(lipgloss.JoinVertical(lipgloss.Left, b...))
}
