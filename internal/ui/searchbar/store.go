package searchbar

import "companybar/internal/domain"

// Store holds the query text, the confirmed selection and whether the
// dropdown is open
type Store struct {
	query       string
	selection   *domain.Company
	open        bool
	skipRefetch bool
	changed     bool
}

// NewStore creates an empty store
func NewStore(open bool) *Store {
	return &Store{open: open}
}

// Query returns the current query text
func (s *Store) Query() string { return s.query }

// Selection returns the confirmed company, or nil
func (s *Store) Selection() *domain.Company { return s.selection }

// IsOpen reports whether the dropdown is open
func (s *Store) IsOpen() bool { return s.open }

// SetOpen opens or closes the dropdown
func (s *Store) SetOpen(open bool) { s.open = open }

// SetQuery records a user edit; the next ConsumeRefetch reports true
func (s *Store) SetQuery(q string) {
	s.query = q
	s.changed = true
}

// SetQueryWithoutFetch rewrites the visible text and suppresses exactly the
// next refetch
func (s *Store) SetQueryWithoutFetch(q string) {
	s.skipRefetch = true
	s.SetQuery(q)
}

// SetSelection records the confirmed company
func (s *Store) SetSelection(c *domain.Company) {
	s.selection = c
}

// Reset clears query and selection and reopens the dropdown
func (s *Store) Reset() {
	s.selection = nil
	s.open = true
	s.SetQuery("")
}

// ConsumeRefetch observes the last change. It reports whether a fetch cycle
// should start and clears the one-shot suppress flag.
func (s *Store) ConsumeRefetch() bool {
	if !s.changed {
		return false
	}
	s.changed = false
	if s.skipRefetch {
		s.skipRefetch = false
		return false
	}
	return true
}
