package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompanyIDAcceptsStringAndNumber(t *testing.T) {
	var page Page
	body := `{"results":[{"id":1,"name":"Acme"},{"id":"abc-2","name":"Beta"}],
		"pagination":{"currentPage":1,"totalPages":3,"totalHits":25,"hitsPerPage":10,"nextPage":2}}`
	require.NoError(t, json.Unmarshal([]byte(body), &page))

	require.Len(t, page.Results, 2)
	assert.Equal(t, CompanyID("1"), page.Results[0].ID)
	assert.Equal(t, CompanyID("abc-2"), page.Results[1].ID)
	require.NotNil(t, page.Pagination.NextPage)
	assert.Equal(t, 2, *page.Pagination.NextPage)
	assert.True(t, page.Pagination.HasMore())
}

func TestCompanyIDRejectsObjects(t *testing.T) {
	var c Company
	err := json.Unmarshal([]byte(`{"id":{"x":1},"name":"Acme"}`), &c)
	require.Error(t, err)
}

func TestPaginationHasMore(t *testing.T) {
	assert.False(t, Pagination{CurrentPage: 3, TotalPages: 3}.HasMore())
	assert.False(t, Pagination{}.HasMore())
	assert.True(t, Pagination{CurrentPage: 1, TotalPages: 2}.HasMore())
}

func TestInitials(t *testing.T) {
	cases := map[string]string{
		"Acme":                "A",
		"acme corp":           "AC",
		"Very Big Company":    "VB",
		"  spaced   out name": "SO",
		"":                    "",
		"élan vital":          "ÉV",
	}
	for name, want := range cases {
		assert.Equal(t, want, Initials(name), name)
	}
}

func TestDomainName(t *testing.T) {
	assert.Equal(t, "acme.com", DomainName("https://www.acme.com/about"))
	assert.Equal(t, "shop.acme.com", DomainName("http://shop.acme.com:8080"))
	assert.Equal(t, "acme.com", DomainName("acme.com"))
	assert.Equal(t, "", DomainName(""))
}
