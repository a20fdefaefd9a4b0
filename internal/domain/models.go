package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CompanyID identifies a company. The search API emits ids as either JSON
// strings or JSON numbers, both decode to the same textual form.
type CompanyID string

// UnmarshalJSON accepts both string and numeric ids
func (id *CompanyID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = CompanyID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("company id must be a string or number: %w", err)
	}
	*id = CompanyID(n.String())
	return nil
}

// Company is a single search hit
type Company struct {
	ID      CompanyID `json:"id"`
	Name    string    `json:"name"`
	Website string    `json:"website"`
	Image   string    `json:"image,omitempty"`
}

// Pagination describes where a result page sits in the full hit list
type Pagination struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalHits   int  `json:"totalHits"`
	HitsPerPage int  `json:"hitsPerPage"`
	NextPage    *int `json:"nextPage"`
}

// HasMore reports whether a further page can be requested
func (p Pagination) HasMore() bool {
	return p.CurrentPage < p.TotalPages
}

// Page is one server response: matches plus pagination metadata
type Page struct {
	Results    []Company  `json:"results"`
	Pagination Pagination `json:"pagination"`
}

// Initials returns up to two upper-cased leading letters of the words in name
func Initials(name string) string {
	var b strings.Builder
	count := 0
	for _, word := range strings.Fields(name) {
		r, _ := utf8.DecodeRuneInString(word)
		b.WriteRune(unicode.ToUpper(r))
		count++
		if count == 2 {
			break
		}
	}
	return b.String()
}

// DomainName returns the host of a website URL without a leading "www.".
// Inputs that are not absolute URLs are returned unchanged.
func DomainName(website string) string {
	u, err := url.Parse(website)
	if err != nil || u.Host == "" {
		return website
	}
	return strings.TrimPrefix(u.Hostname(), "www.")
}
