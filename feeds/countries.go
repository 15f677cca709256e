package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Currency is one entry of a country's currency list as returned by the feed
type Currency struct {
	Code   string `json:"code"`
	Name   string `json:"name"`
	Symbol string `json:"symbol"`
}

// RawCountry is a country entry as returned by the feed. Population is a
// pointer so that an absent value can be told apart from zero.
type RawCountry struct {
	Name       string     `json:"name"`
	Capital    string     `json:"capital"`
	Region     string     `json:"region"`
	Population *int64     `json:"population"`
	Flag       string     `json:"flag"`
	Currencies []Currency `json:"currencies"`
}

// CountryClient fetches raw country records from the country metadata feed
type CountryClient struct {
	url    string
	client *http.Client
}

// NewCountryClient creates a country feed client with a bounded request timeout
func NewCountryClient(url string, timeout time.Duration) *CountryClient {
	return &CountryClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the full country list. Any transport failure, non-success
// status or malformed body is reported as an UpstreamError tagged with the
// countries feed.
func (c *CountryClient) Fetch(ctx context.Context) ([]RawCountry, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &UpstreamError{Feed: FeedCountries, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Feed: FeedCountries, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Feed: FeedCountries, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var countries []RawCountry
	if err := json.NewDecoder(resp.Body).Decode(&countries); err != nil {
		return nil, &UpstreamError{Feed: FeedCountries, Err: fmt.Errorf("malformed response body: %w", err)}
	}

	return countries, nil
}
