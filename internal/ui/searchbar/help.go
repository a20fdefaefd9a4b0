package searchbar

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/noborus/ov/oviewer"
)

// RenderHelp renders the key reference shown in the pager
func RenderHelp(keys KeyMap, accent string) string {
	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(accent)).
		MarginBottom(1)

	sectionStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color("39")).
		MarginTop(1)

	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("220"))
	descStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("252"))

	sections := []struct {
		title    string
		bindings []key.Binding
	}{
		{"Navigation", []key.Binding{keys.Up, keys.Down, keys.PageUp, keys.PageDown}},
		{"Selection", []key.Binding{keys.Select, keys.Close, keys.Reset}},
		{"Results", []key.Binding{keys.LoadMore}},
		{"Other", []key.Binding{keys.Help}},
	}

	width := 0
	for _, sec := range sections {
		for _, b := range sec.bindings {
			width = max(width, lipgloss.Width(b.Help().Key))
		}
	}

	var help strings.Builder
	help.WriteString(titleStyle.Render("Company Search Help"))
	help.WriteString("\n")
	for _, sec := range sections {
		help.WriteString(sectionStyle.Render(sec.title))
		help.WriteString("\n")
		for _, b := range sec.bindings {
			h := b.Help()
			pad := strings.Repeat(" ", width-lipgloss.Width(h.Key))
			help.WriteString(fmt.Sprintf("  %s%s  %s\n", keyStyle.Render(h.Key), pad, descStyle.Render(h.Desc)))
		}
	}
	help.WriteString("\n")
	help.WriteString(lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241")).
		Render("  Mouse: click a row to select, wheel to scroll, click outside to close"))
	return help.String()
}

// pagerCommand runs ov over a fixed text. ov drives the tty itself, so the
// stdio handed over by Bubble Tea is not used.
type pagerCommand struct {
	content string
}

func (p *pagerCommand) SetStdin(io.Reader)  {}
func (p *pagerCommand) SetStdout(io.Writer) {}
func (p *pagerCommand) SetStderr(io.Writer) {}

func (p *pagerCommand) Run() error {
	root, err := oviewer.NewRoot(strings.NewReader(p.content))
	if err != nil {
		return err
	}

	// keep ov from writing over our screen on exit
	config := oviewer.NewConfig()
	config.IsWriteOnExit = false
	config.IsWriteOriginal = false
	root.SetConfig(config)

	return root.Run()
}

// showHelp suspends the program and pages the key reference
func (m *Model) showHelp() tea.Cmd {
	pager := &pagerCommand{content: RenderHelp(m.keys, m.opts.AccentColor)}
	return tea.Exec(pager, func(err error) tea.Msg {
		return helpPagerMsg{err: err}
	})
}
