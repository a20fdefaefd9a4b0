package ui

import (
	"context"
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"companybar/internal/config"
	"companybar/internal/domain"
	"companybar/internal/eventbus"
	"companybar/internal/ui/searchbar"
)

type emptySearcher struct{}

func (emptySearcher) Search(_ context.Context, _ string, page int) (*domain.Page, error) {
	return &domain.Page{Pagination: domain.Pagination{CurrentPage: page, TotalPages: page}}, nil
}

func newTestApp(t *testing.T) *App {
	t.Helper()
	w := searchbar.New(searchbar.Options{
		Searcher: emptySearcher{},
		Theme:    config.ThemeDark,
		Label:    "Company name*",
	})
	return NewApp(w, "companybar")
}

func TestAppQuitsOnSelection(t *testing.T) {
	a := newTestApp(t)
	company := domain.Company{ID: "42", Name: "Acme"}

	_, cmd := a.Update(searchbar.SelectedMsg{Company: company})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	require.NotNil(t, a.Selected())
	assert.Equal(t, company, *a.Selected())
}

func TestAppQuitsOnCtrlC(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(tea.KeyMsg{Type: tea.KeyCtrlC})
	require.NotNil(t, cmd)
	assert.Equal(t, tea.QuitMsg{}, cmd())
	assert.Nil(t, a.Selected())
}

func TestAppShowsSearchErrors(t *testing.T) {
	a := newTestApp(t)
	_, cmd := a.Update(EventMsg{Event: eventbus.SearchFailedEvent{Query: "ac", Page: 1, Err: errors.New("status 401")}})
	assert.NotNil(t, cmd, "the message clears itself")
	assert.Contains(t, a.View(), "Search failed: status 401")

	a.Update(clearStatusMsg{})
	assert.NotContains(t, a.View(), "Search failed")
}

func TestAppShowsHitCount(t *testing.T) {
	a := newTestApp(t)
	a.Update(EventMsg{Event: eventbus.PageLoadedEvent{Query: "ac", Page: 1, Count: 10, TotalHits: 21}})
	assert.Contains(t, a.View(), "10 of 21 companies")
}

func TestAppViewLayout(t *testing.T) {
	t.Setenv(EnvE2E, "1")
	a := newTestApp(t)
	a.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	out := a.View()
	assert.Contains(t, out, "companybar")
	assert.Contains(t, out, "Company name*")
	assert.Contains(t, out, "quit")
	assert.Contains(t, out, "__READY__")
}
