// internal/hints/wiki.go
//
// Wikipedia client: the external encyclopedia collaborator.
// Exposes two capabilities:
//   - FetchSummary: a short plain-text intro extract for a taxon title.
//   - FetchLeadImage: the URL of the article's lead image, if any.
//
// Both go through the public MediaWiki action API with redirect and title
// normalization enabled, so "vulpes vulpes" resolves to the red fox page.

package hints

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const defaultAPIBase = "https://en.wikipedia.org/w/api.php"

// ErrNotFound marks a title with no Wikipedia page.
var ErrNotFound = errors.New("hints: no page for title")

// Summary is a resolved encyclopedia extract.
type Summary struct {
	Extract        string
	CanonicalTitle string
}

// SummaryFetcher is the capability the resolver needs. Satisfied by
// WikiClient in production and by fakes in tests.
type SummaryFetcher interface {
	FetchSummary(ctx context.Context, title string) (Summary, error)
}

// WikiClient talks to the MediaWiki API.
type WikiClient struct {
	base   string
	client *http.Client
}

// NewWikiClient builds a client. A nil httpClient gets a 10s-timeout default.
func NewWikiClient(httpClient *http.Client) *WikiClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &WikiClient{base: defaultAPIBase, client: httpClient}
}

// NewWikiClientAt is NewWikiClient against a non-default API base,
// for tests against httptest servers.
func NewWikiClientAt(base string, httpClient *http.Client) *WikiClient {
	c := NewWikiClient(httpClient)
	c.base = base
	return c
}

// wikiPage mirrors the slice of the action API response we care about.
type wikiPage struct {
	PageID   int    `json:"pageid"`
	Title    string `json:"title"`
	Missing  string `json:"missing"`
	Extract  string `json:"extract"`
	Original *struct {
		Source string `json:"source"`
	} `json:"original"`
}

type wikiResponse struct {
	Query struct {
		Pages map[string]wikiPage `json:"pages"`
	} `json:"query"`
}

// FetchSummary returns a two-sentence plain-text intro for title.
// Returns ErrNotFound when no page exists.
func (c *WikiClient) FetchSummary(ctx context.Context, title string) (Summary, error) {
	params := url.Values{
		"action":        {"query"},
		"prop":          {"extracts"},
		"exintro":       {"true"},
		"exsentences":   {"2"},
		"explaintext":   {"true"},
		"redirects":     {"1"},
		"converttitles": {"1"},
		"format":        {"json"},
		"titles":        {title},
	}
	page, err := c.query(ctx, params)
	if err != nil {
		return Summary{}, err
	}
	return Summary{Extract: page.Extract, CanonicalTitle: page.Title}, nil
}

// FetchLeadImage returns the URL of the article's lead image, or "" when
// the page has none. Returns ErrNotFound when no page exists.
func (c *WikiClient) FetchLeadImage(ctx context.Context, title string) (string, error) {
	params := url.Values{
		"action":    {"query"},
		"prop":      {"pageimages"},
		"piprop":    {"original"},
		"redirects": {"1"},
		"format":    {"json"},
		"titles":    {title},
	}
	page, err := c.query(ctx, params)
	if err != nil {
		return "", err
	}
	if page.Original == nil {
		return "", nil
	}
	return page.Original.Source, nil
}

// query performs one action API call and returns the single result page.
func (c *WikiClient) query(ctx context.Context, params url.Values) (wikiPage, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"?"+params.Encode(), nil)
	if err != nil {
		return wikiPage{}, err
	}
	res, err := c.client.Do(req)
	if err != nil {
		return wikiPage{}, fmt.Errorf("hints: wikipedia request: %w", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return wikiPage{}, fmt.Errorf("hints: wikipedia status %d", res.StatusCode)
	}

	var body wikiResponse
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		return wikiPage{}, fmt.Errorf("hints: decode wikipedia response: %w", err)
	}
	// The pages object has exactly one entry; key "-1" means no page.
	for id, page := range body.Query.Pages {
		if id == "-1" {
			return wikiPage{}, ErrNotFound
		}
		return page, nil
	}
	return wikiPage{}, ErrNotFound
}
