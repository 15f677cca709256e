package service

import (
	"context"
	"fmt"
	"time"

	"countrydex/events"
	"countrydex/models"
)

// countryService implements the CountryService interface
type countryService struct {
	countryRepo  CountryRepository
	metadataRepo RefreshMetadataRepository
	publisher    EventPublisher
}

// NewCountryService creates a new country service
func NewCountryService(
	countryRepo CountryRepository,
	metadataRepo RefreshMetadataRepository,
	publisher EventPublisher,
) CountryService {
	return &countryService{
		countryRepo:  countryRepo,
		metadataRepo: metadataRepo,
		publisher:    publisher,
	}
}

// ListCountries returns countries matching the optional filters
func (s *countryService) ListCountries(ctx context.Context, filter models.ListFilter) ([]*models.Country, error) {
	countries, err := s.countryRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return countries, nil
}

// GetCountry returns a single country by case-insensitive name, nil when absent
func (s *countryService) GetCountry(ctx context.Context, name string) (*models.Country, error) {
	country, err := s.countryRepo.GetByName(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return country, nil
}

// DeleteCountry removes a country by case-insensitive name.
// Returns true iff a row was removed.
func (s *countryService) DeleteCountry(ctx context.Context, name string) (bool, error) {
	deleted, err := s.countryRepo.DeleteByName(ctx, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete country: %w", err)
	}
	if deleted {
		s.publisher.Emit(ctx, events.CountryDeletedEvent{Name: name})
	}
	return deleted, nil
}

// GetStatus reports the row count and the last refresh timestamp,
// formatted as ISO-8601 UTC with a trailing Z, or null before the first refresh.
func (s *countryService) GetStatus(ctx context.Context) (*models.Status, error) {
	total, err := s.countryRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	lastRefresh, err := s.metadataRepo.GetLastRefresh(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get last refresh: %w", err)
	}

	status := &models.Status{TotalCountries: total}
	if lastRefresh != nil {
		formatted := lastRefresh.UTC().Format(time.RFC3339)
		status.LastRefreshedAt = &formatted
	}
	return status, nil
}
