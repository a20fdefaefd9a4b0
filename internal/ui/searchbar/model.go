package searchbar

import (
	"context"
	"sync/atomic"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"

	"companybar/internal/domain"
	"companybar/internal/eventbus"
)

const prompt = "⌕ "

var lastID int64

// Model is the company search combobox. It is a self-contained Bubble Tea
// component: hosts forward messages to Update, render View and react to
// SelectedMsg.
type Model struct {
	id     int
	opts   Options
	keys   KeyMap
	styles Styles

	ctx    context.Context
	cancel context.CancelFunc

	input    textinput.Model
	spinner  spinner.Model
	spinning bool

	store   *Store
	fetcher *Fetcher
	nav     *Navigator

	focused   bool
	dismissed bool // closed with Esc, stays closed until the next edit
	hover     int

	originX, originY int

	logoColors  map[domain.CompanyID]string
	logoPending map[domain.CompanyID]bool
}

// New creates a widget. Options.Searcher must be set.
func New(opts Options) *Model {
	opts = opts.withDefaults()
	ctx, cancel := context.WithCancel(context.Background())
	id := int(atomic.AddInt64(&lastID, 1))
	styles := ResolveStyles(opts)

	ti := textinput.New()
	ti.Prompt = prompt
	ti.Placeholder = opts.Placeholder
	ti.PromptStyle = styles.Prompt
	ti.TextStyle = styles.Text
	ti.PlaceholderStyle = styles.Placeholder
	ti.Width = max(1, styles.Width-2-2*styles.PadX-lipgloss.Width(prompt)-3)

	sp := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.Spinner),
	)

	return &Model{
		id:          id,
		opts:        opts,
		keys:        *opts.Keys,
		styles:      styles,
		ctx:         ctx,
		cancel:      cancel,
		input:       ti,
		spinner:     sp,
		store:       NewStore(opts.InitiallyOpen || opts.AlwaysOpen),
		fetcher:     NewFetcher(ctx, id, opts.Searcher, opts.MinQueryLength, opts.Debounce),
		nav:         NewNavigator(styles.Rows),
		hover:       -1,
		logoColors:  make(map[domain.CompanyID]string),
		logoPending: make(map[domain.CompanyID]bool),
	}
}

// Init focuses the input and starts the fetch for the empty query. The
// dropdown opens only when InitiallyOpen or AlwaysOpen is set.
func (m *Model) Init() tea.Cmd {
	m.store.SetQuery("")
	if m.opts.InitiallyOpen {
		return tea.Batch(m.Focus(), m.observe())
	}
	return tea.Batch(m.focusInput(), m.observe())
}

// Close cancels in-flight requests. The widget must not be used afterwards.
func (m *Model) Close() {
	m.cancel()
}

// Query returns the current input text
func (m *Model) Query() string { return m.store.Query() }

// Selection returns the confirmed company, or nil
func (m *Model) Selection() *domain.Company { return m.store.Selection() }

// Results returns the displayed results
func (m *Model) Results() []domain.Company { return m.fetcher.Results() }

// Cursor returns the highlighted row, -1 when none
func (m *Model) Cursor() int { return m.nav.Cursor() }

// Loading reports whether any request is outstanding
func (m *Model) Loading() bool { return m.fetcher.Loading() || m.fetcher.LoadingMore() }

// Err returns the error of the last failed fetch
func (m *Model) Err() error { return m.fetcher.Err() }

// Focused reports whether the input has focus
func (m *Model) Focused() bool { return m.focused }

// IsOpen reports whether the dropdown is shown
func (m *Model) IsOpen() bool { return m.opts.AlwaysOpen || m.store.IsOpen() }

// KeyMap returns the active key bindings
func (m *Model) KeyMap() KeyMap { return m.keys }

// SetOrigin tells the widget where its top-left cell is on screen so mouse
// events can be hit-tested
func (m *Model) SetOrigin(x, y int) {
	m.originX, m.originY = x, y
}

// Focus focuses the input and opens the dropdown unless it was dismissed
func (m *Model) Focus() tea.Cmd {
	if !m.dismissed {
		m.store.SetOpen(true)
	}
	return m.focusInput()
}

func (m *Model) focusInput() tea.Cmd {
	m.focused = true
	return m.input.Focus()
}

// Blur removes focus; key messages are ignored until the next Focus
func (m *Model) Blur() {
	m.focused = false
	m.input.Blur()
}

// Reset clears query and selection, reopens the dropdown and focuses the input
func (m *Model) Reset() tea.Cmd {
	m.store.Reset()
	m.dismissed = false
	m.input.SetValue("")
	m.publish(eventbus.SearchResetEvent{})
	return tea.Batch(m.Focus(), m.observe())
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case debounceMsg:
		if msg.id != m.id {
			return m, nil
		}
		cmd, ok := m.fetcher.Settle(msg)
		if !ok {
			return m, nil
		}
		if cmd == nil {
			m.listReplaced()
			return m, nil
		}
		m.publish(eventbus.SearchIssuedEvent{Query: msg.query, Page: 1, Seq: m.fetcher.Seq()})
		return m, tea.Batch(cmd, m.startSpinner())

	case fetchResultMsg:
		if msg.id != m.id {
			return m, nil
		}
		return m, m.applyResult(msg)

	case logoColorMsg:
		if msg.id != m.id {
			return m, nil
		}
		delete(m.logoPending, msg.key)
		if msg.err != nil {
			logrus.WithError(msg.err).WithField("id", msg.key).Debug("logo colour unavailable")
		}
		// an empty colour marks a failed logo; it renders on the neutral badge
		m.logoColors[msg.key] = msg.color
		return m, nil

	case spinner.TickMsg:
		if msg.ID != m.spinner.ID() {
			return m, nil
		}
		if !m.Loading() {
			m.spinning = false
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			logrus.WithError(msg.err).Warn("help pager failed")
		}
		return m, nil

	case tea.MouseMsg:
		return m, m.handleMouse(msg)

	case tea.KeyMsg:
		if !m.focused {
			return m, nil
		}
		return m, m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Help):
		return m.showHelp()
	case key.Matches(msg, m.keys.Close):
		m.dismiss()
		return nil
	case key.Matches(msg, m.keys.Reset):
		return m.Reset()
	case key.Matches(msg, m.keys.Select):
		if m.IsOpen() && m.nav.Cursor() >= 0 {
			return m.selectIndex(m.nav.Cursor())
		}
		return nil
	case key.Matches(msg, m.keys.LoadMore):
		return m.loadMore()
	case key.Matches(msg, m.keys.Up):
		return m.navigate(DirectionUp)
	case key.Matches(msg, m.keys.Down):
		return m.navigate(DirectionDown)
	case key.Matches(msg, m.keys.PageUp):
		return m.navigate(DirectionPageUp)
	case key.Matches(msg, m.keys.PageDown):
		return m.navigate(DirectionPageDown)
	}
	return m.edit(msg)
}

// edit forwards a key to the input and records the change in the store
func (m *Model) edit(msg tea.KeyMsg) tea.Cmd {
	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	value := m.input.Value()
	if value == before {
		return cmd
	}
	m.store.SetQuery(value)
	m.dismissed = false
	m.store.SetOpen(true)
	return tea.Batch(cmd, m.observe())
}

// observe reacts to the store's last change the way an effect on the query
// would: start a quiet window unless the change asked to skip it
func (m *Model) observe() tea.Cmd {
	if m.store.ConsumeRefetch() {
		return m.fetcher.QueryChanged(m.store.Query())
	}
	return nil
}

func (m *Model) navigate(d Direction) tea.Cmd {
	if !m.IsOpen() {
		m.dismissed = false
		m.store.SetOpen(true)
		return nil
	}
	m.nav.Navigate(d)
	if m.opts.InfiniteScroll && m.nav.Cursor() == len(m.fetcher.Results())-1 {
		return m.loadMore()
	}
	return nil
}

func (m *Model) dismiss() {
	if m.opts.AlwaysOpen {
		return
	}
	m.store.SetOpen(false)
	m.dismissed = true
}

// selectIndex commits the row at i: selection, callback, event, input text
// rewritten without a fetch, dropdown closed
func (m *Model) selectIndex(i int) tea.Cmd {
	results := m.fetcher.Results()
	if i < 0 || i >= len(results) {
		return nil
	}
	c := results[i]

	m.store.SetSelection(&c)
	m.fetcher.Suppress()
	m.store.SetQueryWithoutFetch(c.Name)
	m.input.SetValue(c.Name)
	m.input.CursorEnd()
	if !m.opts.AlwaysOpen {
		m.store.SetOpen(false)
	}

	logrus.WithFields(logrus.Fields{"id": c.ID, "name": c.Name}).Info("company selected")
	if m.opts.OnSelect != nil {
		m.opts.OnSelect(c)
	}
	m.publish(eventbus.CompanySelectedEvent{Company: c})

	return tea.Batch(m.observe(), func() tea.Msg { return SelectedMsg{Company: c} })
}

func (m *Model) loadMore() tea.Cmd {
	cmd := m.fetcher.LoadMore()
	if cmd == nil {
		return nil
	}
	page := m.fetcher.Pagination().CurrentPage + 1
	m.publish(eventbus.SearchIssuedEvent{Query: m.fetcher.Query(), Page: page, Seq: m.fetcher.Seq()})
	return tea.Batch(cmd, m.startSpinner())
}

func (m *Model) applyResult(msg fetchResultMsg) tea.Cmd {
	out := m.fetcher.Apply(msg)
	if !out.Applied {
		return nil
	}

	if out.Err != nil {
		m.publish(eventbus.SearchFailedEvent{Query: msg.query, Page: msg.page, Err: out.Err})
	} else {
		total := 0
		if p := m.fetcher.Pagination(); p != nil {
			total = p.TotalHits
		}
		m.publish(eventbus.PageLoadedEvent{Query: msg.query, Page: msg.page, Count: len(m.fetcher.Results()), TotalHits: total})
	}

	if out.Replaced {
		m.listReplaced()
	} else {
		m.nav.ListExtended(len(m.fetcher.Results()))
	}
	return m.resolveLogos(out.Added)
}

func (m *Model) listReplaced() {
	m.nav.ListReplaced(len(m.fetcher.Results()))
	m.hover = -1
}

func (m *Model) startSpinner() tea.Cmd {
	if m.spinning {
		return nil
	}
	m.spinning = true
	return m.spinner.Tick
}

func (m *Model) resolveLogos(companies []domain.Company) tea.Cmd {
	if m.opts.Logos == nil {
		return nil
	}
	var cmds []tea.Cmd
	for _, c := range companies {
		if c.Image == "" || m.logoPending[c.ID] {
			continue
		}
		if _, ok := m.logoColors[c.ID]; ok {
			continue
		}
		m.logoPending[c.ID] = true
		id, ctx, logos := m.id, m.ctx, m.opts.Logos
		cmds = append(cmds, func() tea.Msg {
			color, err := logos.Color(ctx, c.Image)
			return logoColorMsg{id: id, key: c.ID, color: color, err: err}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Model) publish(event eventbus.DomainEvent) {
	if m.opts.Bus != nil {
		m.opts.Bus.Publish(event)
	}
}
