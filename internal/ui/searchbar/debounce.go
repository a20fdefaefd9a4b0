package searchbar

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// debounceMsg is delivered when a scheduled quiet window elapses
type debounceMsg struct {
	id    int
	tag   int
	query string
}

// Debouncer is a per-widget trailing-edge timer. Each Schedule supersedes
// the previous one; only the tick carrying the latest tag is honoured.
type Debouncer struct {
	id    int
	tag   int
	delay time.Duration
}

// NewDebouncer creates a debouncer owned by widget id
func NewDebouncer(id int, delay time.Duration) *Debouncer {
	return &Debouncer{id: id, delay: delay}
}

// Schedule starts a new quiet window for query
func (d *Debouncer) Schedule(query string) tea.Cmd {
	d.tag++
	id, tag := d.id, d.tag
	return tea.Tick(d.delay, func(time.Time) tea.Msg {
		return debounceMsg{id: id, tag: tag, query: query}
	})
}

// CancelPending invalidates any scheduled tick
func (d *Debouncer) CancelPending() {
	d.tag++
}

// Current reports whether msg is the latest tick for this debouncer
func (d *Debouncer) Current(msg debounceMsg) bool {
	return msg.id == d.id && msg.tag == d.tag
}
