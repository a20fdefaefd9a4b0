package searchbar

import (
	"context"
	"strings"
	"sync"

	"companybar/internal/domain"
)

type searchCall struct {
	query string
	page  int
}

// fakeSearcher answers from a table of canned pages and records every call
type fakeSearcher struct {
	mu    sync.Mutex
	calls []searchCall
	pages map[searchCall]*domain.Page
	err   error
	held  map[string]chan struct{}
}

func newFakeSearcher() *fakeSearcher {
	return &fakeSearcher{pages: make(map[searchCall]*domain.Page)}
}

func (f *fakeSearcher) on(query string, page int, res *domain.Page) *fakeSearcher {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pages[searchCall{query, page}] = res
	return f
}

// hold makes searches for query wait until the returned channel is closed
func (f *fakeSearcher) hold(query string) chan struct{} {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.held == nil {
		f.held = make(map[string]chan struct{})
	}
	ch := make(chan struct{})
	f.held[query] = ch
	return ch
}

func (f *fakeSearcher) failWith(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.err = err
}

func (f *fakeSearcher) Search(ctx context.Context, query string, page int) (*domain.Page, error) {
	f.mu.Lock()
	gate := f.held[query]
	f.mu.Unlock()
	if gate != nil {
		select {
		case <-gate:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, searchCall{query, page})
	if f.err != nil {
		return nil, f.err
	}
	if res, ok := f.pages[searchCall{query, page}]; ok {
		return res, nil
	}
	return &domain.Page{Pagination: domain.Pagination{CurrentPage: page, TotalPages: page}}, nil
}

func (f *fakeSearcher) Calls() []searchCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]searchCall(nil), f.calls...)
}

// resultPage builds a page whose companies are named after names
func resultPage(current, total int, names ...string) *domain.Page {
	p := &domain.Page{
		Pagination: domain.Pagination{
			CurrentPage: current,
			TotalPages:  total,
			TotalHits:   total * len(names),
			HitsPerPage: len(names),
		},
	}
	for _, name := range names {
		p.Results = append(p.Results, domain.Company{
			ID:      domain.CompanyID(strings.ToLower(strings.ReplaceAll(name, " ", "-"))),
			Name:    name,
			Website: "https://www." + strings.ToLower(strings.ReplaceAll(name, " ", "")) + ".com",
		})
	}
	return p
}

func namesOf(companies []domain.Company) []string {
	out := make([]string, len(companies))
	for i, c := range companies {
		out[i] = c.Name
	}
	return out
}
