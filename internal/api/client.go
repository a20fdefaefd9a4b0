package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"

	"companybar/internal/config"
	"companybar/internal/domain"
)

const userAgent = "companybar/1.0"

var (
	// ErrEmptyAPIKey is returned by NewClient when no key was supplied
	ErrEmptyAPIKey = errors.New("api key is required")
	// ErrMalformedResponse wraps bodies that are not a result page
	ErrMalformedResponse = errors.New("malformed search response")
)

// Searcher fetches one page of companies matching a query
type Searcher interface {
	Search(ctx context.Context, query string, page int) (*domain.Page, error)
}

// StatusError is returned for any non-2xx response
type StatusError struct {
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("search request failed: %s", e.Status)
}

// Options configures a Client
type Options struct {
	Endpoint   string
	APIKey     string
	Auth       string // config.AuthBearer or config.AuthAPIKey
	Timeout    time.Duration
	RateLimit  float64 // requests per second, 0 disables
	Burst      int
	CacheTTL   time.Duration // 0 disables
	HTTPClient *http.Client
}

// OptionsFromConfig maps the [api] section onto client options
func OptionsFromConfig(s config.APISettings) Options {
	return Options{
		Endpoint:  s.Endpoint,
		APIKey:    s.Key,
		Auth:      s.Auth,
		Timeout:   s.Timeout.Std(),
		RateLimit: s.RateLimit,
		Burst:     s.Burst,
		CacheTTL:  s.CacheTTL.Std(),
	}
}

// Client talks to the company search endpoint
type Client struct {
	endpoint *url.URL
	apiKey   string
	auth     string
	http     *http.Client
	limiter  *rate.Limiter
	cache    *cache.Cache
	cacheTTL time.Duration
}

// NewClient validates opts and builds a client
func NewClient(opts Options) (*Client, error) {
	if opts.APIKey == "" {
		return nil, ErrEmptyAPIKey
	}
	endpoint, err := url.Parse(opts.Endpoint)
	if err != nil || endpoint.Scheme == "" || endpoint.Host == "" {
		return nil, fmt.Errorf("invalid search endpoint %q", opts.Endpoint)
	}

	c := &Client{
		endpoint: endpoint,
		apiKey:   opts.APIKey,
		auth:     opts.Auth,
		http:     opts.HTTPClient,
		cacheTTL: opts.CacheTTL,
	}
	if c.auth == "" {
		c.auth = config.AuthBearer
	}
	if c.http == nil {
		c.http = &http.Client{Timeout: opts.Timeout}
	}
	if opts.RateLimit > 0 {
		burst := opts.Burst
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(opts.RateLimit), burst)
	}
	if opts.CacheTTL > 0 {
		c.cache = cache.New(opts.CacheTTL, 2*opts.CacheTTL)
	}
	return c, nil
}

// Search performs GET <endpoint>?q=<query>&page=<page>. Transport failures,
// non-2xx statuses and undecodable bodies all come back as errors; nothing is
// retried.
func (c *Client) Search(ctx context.Context, query string, page int) (*domain.Page, error) {
	if page < 1 {
		page = 1
	}
	key := cacheKey(query, page)
	if c.cache != nil {
		if v, ok := c.cache.Get(key); ok {
			logrus.WithFields(logrus.Fields{"query": query, "page": page}).Debug("search cache hit")
			return clonePage(v.(*domain.Page)), nil
		}
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.requestURL(query, page), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build search request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	switch c.auth {
	case config.AuthAPIKey:
		req.Header.Set("x-api-key", c.apiKey)
	default:
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("search request failed: %w", err)
	}
	defer resp.Body.Close()

	logrus.WithFields(logrus.Fields{
		"query":    query,
		"page":     page,
		"status":   resp.StatusCode,
		"duration": time.Since(start),
	}).Debug("search response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	result, err := decodePage(resp.Body, page)
	if err != nil {
		return nil, err
	}
	if c.cache != nil {
		c.cache.Set(key, clonePage(result), c.cacheTTL)
	}
	return result, nil
}

func (c *Client) requestURL(query string, page int) string {
	u := *c.endpoint
	q := u.Query()
	q.Set("q", query)
	q.Set("page", strconv.Itoa(page))
	u.RawQuery = q.Encode()
	return u.String()
}

// wirePage distinguishes a missing "results" key from an empty one
type wirePage struct {
	Results    *[]domain.Company  `json:"results"`
	Pagination *domain.Pagination `json:"pagination"`
}

func decodePage(r io.Reader, requested int) (*domain.Page, error) {
	var wire wirePage
	if err := json.NewDecoder(r).Decode(&wire); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if wire.Results == nil {
		return nil, fmt.Errorf("%w: missing results", ErrMalformedResponse)
	}

	page := &domain.Page{Results: *wire.Results}
	if wire.Pagination != nil {
		page.Pagination = *wire.Pagination
	}
	// older deployments answer without pagination: treat as a single page
	if page.Pagination.CurrentPage == 0 {
		page.Pagination.CurrentPage = requested
		if page.Pagination.TotalPages < requested {
			page.Pagination.TotalPages = requested
		}
		if page.Pagination.TotalHits == 0 {
			page.Pagination.TotalHits = len(page.Results)
		}
	}
	return page, nil
}

func cacheKey(query string, page int) string {
	return strconv.Itoa(page) + ":" + query
}

func clonePage(p *domain.Page) *domain.Page {
	out := *p
	out.Results = append([]domain.Company(nil), p.Results...)
	if p.Pagination.NextPage != nil {
		next := *p.Pagination.NextPage
		out.Pagination.NextPage = &next
	}
	return &out
}
