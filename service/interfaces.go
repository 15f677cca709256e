package service

import (
	"context"
	"time"

	"countrydex/events"
	"countrydex/feeds"
	"countrydex/models"
)

// CountryRepository defines the interface for country data access
type CountryRepository interface {
	// List returns countries matching the optional filters in the requested order
	List(ctx context.Context, filter models.ListFilter) ([]*models.Country, error)

	// GetByName retrieves a country by case-insensitive name, nil when absent
	GetByName(ctx context.Context, name string) (*models.Country, error)

	// DeleteByName removes a country by case-insensitive name, true iff a row was removed
	DeleteByName(ctx context.Context, name string) (bool, error)

	// UpsertBatch writes the whole batch atomically, keyed by case-insensitive name
	UpsertBatch(ctx context.Context, countries []*models.Country) (int, error)

	// Count returns the total number of country rows
	Count(ctx context.Context) (int64, error)

	// TopByGDP returns up to limit countries with the highest estimated GDP
	TopByGDP(ctx context.Context, limit int) ([]*models.Country, error)
}

// RefreshMetadataRepository defines the interface for the refresh timestamp
type RefreshMetadataRepository interface {
	// GetLastRefresh returns the last successful refresh time, nil before the first
	GetLastRefresh(ctx context.Context) (*time.Time, error)

	// SetLastRefresh updates the global refresh timestamp
	SetLastRefresh(ctx context.Context, ts time.Time) error
}

// CountryFetcher retrieves raw country records from the country metadata feed
type CountryFetcher interface {
	Fetch(ctx context.Context) ([]feeds.RawCountry, error)
}

// RateFetcher retrieves the currency code to USD rate mapping
type RateFetcher interface {
	Fetch(ctx context.Context) (map[string]float64, error)
}

// EventPublisher publishes domain events
type EventPublisher interface {
	Emit(ctx context.Context, event events.Event)
}

// RefreshService runs the fetch-aggregate-persist cycle
type RefreshService interface {
	// Refresh fetches both feeds, aggregates and upserts the batch.
	// Returns the number of records written.
	Refresh(ctx context.Context) (int, error)
}

// CountryService defines read and delete operations over stored countries
type CountryService interface {
	ListCountries(ctx context.Context, filter models.ListFilter) ([]*models.Country, error)
	GetCountry(ctx context.Context, name string) (*models.Country, error)
	DeleteCountry(ctx context.Context, name string) (bool, error)
	GetStatus(ctx context.Context) (*models.Status, error)
}

// SummaryRenderer produces the summary image artifact
type SummaryRenderer interface {
	Render(ctx context.Context) error
}
