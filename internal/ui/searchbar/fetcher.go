package searchbar

import (
	"context"
	"time"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"

	"companybar/internal/api"
	"companybar/internal/domain"
)

// FetchState is the lifecycle of one query in the fetcher
type FetchState int

const (
	StateIdle FetchState = iota
	StatePending
	StateLoading
	StateSettled
)

func (s FetchState) String() string {
	switch s {
	case StatePending:
		return "pending"
	case StateLoading:
		return "loading"
	case StateSettled:
		return "settled"
	default:
		return "idle"
	}
}

// fetchResultMsg carries a finished request back into the update loop
type fetchResultMsg struct {
	id    int
	seq   uint64
	query string
	page  int
	res   *domain.Page
	err   error
	took  time.Duration
}

// FetchOutcome tells the widget what applying a result changed
type FetchOutcome struct {
	Applied  bool // false for stale responses
	Replaced bool // page 1 replaced the list
	Added    []domain.Company
	Err      error
}

// Fetcher turns settled queries into result pages. Page 1 replaces the list,
// later pages append. Every request carries a sequence number and responses
// older than the newest applied one are dropped, so a slow response can never
// overwrite newer data.
type Fetcher struct {
	id             int
	ctx            context.Context
	searcher       api.Searcher
	debounce       *Debouncer
	minQueryLength int

	state        FetchState
	pendingQuery string // query waiting for its quiet window
	query        string // query the current results belong to
	results      []domain.Company
	pagination   *domain.Pagination

	seq      uint64 // last issued
	applied  uint64 // newest applied
	current  uint64 // start of the current query, older responses are stale
	firstSeq uint64 // newest page-1 request still awaited, 0 if none
	moreSeq  uint64 // follow-up page request still awaited, 0 if none
	err      error
}

// NewFetcher creates a fetcher for widget id. Requests run with ctx.
func NewFetcher(ctx context.Context, id int, searcher api.Searcher, minQueryLength int, debounce time.Duration) *Fetcher {
	return &Fetcher{
		id:             id,
		ctx:            ctx,
		searcher:       searcher,
		debounce:       NewDebouncer(id, debounce),
		minQueryLength: minQueryLength,
	}
}

// State returns the current lifecycle state
func (f *Fetcher) State() FetchState { return f.state }

// PendingQuery returns the query waiting for its quiet window
func (f *Fetcher) PendingQuery() string { return f.pendingQuery }

// Query returns the query the displayed results belong to
func (f *Fetcher) Query() string { return f.query }

// Results returns the displayed results
func (f *Fetcher) Results() []domain.Company { return f.results }

// Pagination returns the metadata of the last applied page, or nil
func (f *Fetcher) Pagination() *domain.Pagination { return f.pagination }

// Loading reports whether a page-1 request is outstanding
func (f *Fetcher) Loading() bool { return f.firstSeq != 0 }

// LoadingMore reports whether a follow-up page request is outstanding
func (f *Fetcher) LoadingMore() bool { return f.moreSeq != 0 }

// Err returns the error of the last failed fetch, cleared by the next success
func (f *Fetcher) Err() error { return f.err }

// Seq returns the sequence number of the last issued request
func (f *Fetcher) Seq() uint64 { return f.seq }

// QueryChanged restarts the quiet window for q
func (f *Fetcher) QueryChanged(q string) tea.Cmd {
	f.state = StatePending
	f.pendingQuery = q
	return f.debounce.Schedule(q)
}

// Suppress cancels a pending quiet window without fetching. In-flight
// requests are left alone.
func (f *Fetcher) Suppress() {
	f.debounce.CancelPending()
	if f.state == StatePending {
		f.state = f.restingState()
	}
}

// Settle handles a debounce tick and reports whether the tick was current.
// Short non-empty queries settle to an empty list without a network call;
// everything else requests page 1.
func (f *Fetcher) Settle(msg debounceMsg) (tea.Cmd, bool) {
	if !f.debounce.Current(msg) {
		return nil, false
	}
	q := msg.query
	if q != "" && utf8.RuneCountInString(q) < f.minQueryLength {
		f.settleEmpty(q)
		return nil, true
	}
	f.state = StateLoading
	return f.issue(q, 1), true
}

// CanLoadMore reports whether LoadMore would issue a request
func (f *Fetcher) CanLoadMore() bool {
	return f.state == StateSettled &&
		f.moreSeq == 0 &&
		f.pagination != nil &&
		f.pagination.HasMore()
}

// LoadMore requests the page after the current one for the current query.
// It is a no-op on the last page, while a follow-up is in flight, and while
// a new query is pending or loading.
func (f *Fetcher) LoadMore() tea.Cmd {
	if !f.CanLoadMore() {
		return nil
	}
	return f.issue(f.query, f.pagination.CurrentPage+1)
}

// Apply folds a finished request into the state. Responses older than the
// newest applied one, or issued before the current query started, are dropped.
func (f *Fetcher) Apply(msg fetchResultMsg) FetchOutcome {
	if msg.seq == f.firstSeq {
		f.firstSeq = 0
	}
	if msg.seq == f.moreSeq {
		f.moreSeq = 0
	}

	log := logrus.WithFields(logrus.Fields{
		"query": msg.query,
		"page":  msg.page,
		"seq":   msg.seq,
		"took":  msg.took,
	})
	if msg.seq <= f.applied || msg.seq < f.current {
		log.Debug("dropping stale search response")
		return FetchOutcome{}
	}
	f.applied = msg.seq
	if f.firstSeq == 0 && f.state == StateLoading {
		f.state = StateSettled
	}

	if msg.err != nil {
		log.WithError(msg.err).Warn("search failed")
		f.query = msg.query
		f.results = nil
		f.pagination = nil
		f.err = msg.err
		return FetchOutcome{Applied: true, Replaced: true, Err: msg.err}
	}

	f.err = nil
	pagination := msg.res.Pagination
	f.pagination = &pagination
	if msg.page == 1 {
		f.query = msg.query
		f.results = append([]domain.Company(nil), msg.res.Results...)
		log.WithField("count", len(f.results)).Debug("search results replaced")
		return FetchOutcome{Applied: true, Replaced: true, Added: msg.res.Results}
	}

	f.results = append(f.results, msg.res.Results...)
	log.WithField("count", len(f.results)).Debug("search results appended")
	return FetchOutcome{Applied: true, Added: msg.res.Results}
}

func (f *Fetcher) issue(q string, page int) tea.Cmd {
	f.seq++
	seq := f.seq
	if page == 1 {
		f.current = seq
		f.firstSeq = seq
		f.moreSeq = 0
	} else {
		f.moreSeq = seq
	}

	logrus.WithFields(logrus.Fields{"query": q, "page": page, "seq": seq}).Debug("search issued")

	id, ctx, searcher := f.id, f.ctx, f.searcher
	return func() tea.Msg {
		start := time.Now()
		res, err := searcher.Search(ctx, q, page)
		return fetchResultMsg{id: id, seq: seq, query: q, page: page, res: res, err: err, took: time.Since(start)}
	}
}

// settleEmpty clears the list for a short query. It also counts as the newest
// applied state so in-flight responses for older queries are dropped.
func (f *Fetcher) settleEmpty(q string) {
	f.seq++
	f.applied = f.seq
	f.current = f.seq
	f.firstSeq = 0
	f.moreSeq = 0
	f.query = q
	f.results = nil
	f.pagination = nil
	f.err = nil
	f.state = StateSettled
}

func (f *Fetcher) restingState() FetchState {
	if f.firstSeq != 0 {
		return StateLoading
	}
	if f.applied == 0 {
		return StateIdle
	}
	return StateSettled
}
