//go:build e2e && unix

package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

type company struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Website string `json:"website"`
}

var directory = []company{
	{1, "Acme", "https://www.acme.com"},
	{2, "Acme Labs", "https://acmelabs.io"},
	{3, "Globex", "https://globex.com"},
	{4, "Initech", "https://initech.com"},
	{5, "Umbrella", "https://umbrella.com"},
}

// fakeAPI serves the directory one company per page so pagination is easy
// to reach
type fakeAPI struct {
	srv *httptest.Server

	mu      sync.Mutex
	queries []string
}

func newFakeAPI(t *testing.T) *fakeAPI {
	t.Helper()
	api := &fakeAPI{}
	api.srv = httptest.NewServer(http.HandlerFunc(api.serve))
	t.Cleanup(api.srv.Close)
	return api
}

func (a *fakeAPI) URL() string { return a.srv.URL + "/v1/search" }

func (a *fakeAPI) Queries() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.queries...)
}

func (a *fakeAPI) serve(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("Authorization") != "Bearer e2e-key" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	q := r.URL.Query().Get("q")
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}

	a.mu.Lock()
	a.queries = append(a.queries, q+"#"+strconv.Itoa(page))
	a.mu.Unlock()

	var hits []company
	for _, c := range directory {
		if strings.Contains(strings.ToLower(c.Name), strings.ToLower(q)) {
			hits = append(hits, c)
		}
	}

	const perPage = 3
	total := (len(hits) + perPage - 1) / perPage
	start := min((page-1)*perPage, len(hits))
	end := min(start+perPage, len(hits))

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"results": hits[start:end],
		"pagination": map[string]any{
			"currentPage": page,
			"totalPages":  total,
			"totalHits":   len(hits),
			"hitsPerPage": perPage,
		},
	})
}
