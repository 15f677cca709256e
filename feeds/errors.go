package feeds

import "fmt"

// Feed identifiers used to tag upstream failures
const (
	FeedCountries     = "countries"
	FeedExchangeRates = "exchange-rates"
)

// UpstreamError reports an unreachable, non-success or malformed response
// from an external feed. The Feed tag identifies which upstream failed.
type UpstreamError struct {
	Feed string
	Err  error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("%s feed unavailable: %v", e.Feed, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}
