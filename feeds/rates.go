package feeds

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

type ratesResponse struct {
	Rates map[string]float64 `json:"rates"`
}

// RateClient fetches currency exchange rates relative to USD
type RateClient struct {
	url    string
	client *http.Client
}

// NewRateClient creates an exchange rate feed client with a bounded request timeout
func NewRateClient(url string, timeout time.Duration) *RateClient {
	return &RateClient{
		url:    url,
		client: &http.Client{Timeout: timeout},
	}
}

// Fetch retrieves the currency code to USD rate mapping. Failures are
// reported as an UpstreamError tagged with the exchange rate feed.
func (c *RateClient) Fetch(ctx context.Context) (map[string]float64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, &UpstreamError{Feed: FeedExchangeRates, Err: err}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, &UpstreamError{Feed: FeedExchangeRates, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		io.Copy(io.Discard, resp.Body)
		return nil, &UpstreamError{Feed: FeedExchangeRates, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	var body ratesResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, &UpstreamError{Feed: FeedExchangeRates, Err: fmt.Errorf("malformed response body: %w", err)}
	}
	if body.Rates == nil {
		body.Rates = map[string]float64{}
	}

	return body.Rates, nil
}
