package service

import (
	"context"
	"time"

	"countrydex/events"
	"countrydex/feeds"
	"countrydex/models"

	"github.com/stretchr/testify/mock"
)

// MockCountryRepository is a mock implementation of CountryRepository
type MockCountryRepository struct {
	mock.Mock
}

func (m *MockCountryRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Country, error) {
	args := m.Called(ctx, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Country), args.Error(1)
}

func (m *MockCountryRepository) GetByName(ctx context.Context, name string) (*models.Country, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Country), args.Error(1)
}

func (m *MockCountryRepository) DeleteByName(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

func (m *MockCountryRepository) UpsertBatch(ctx context.Context, countries []*models.Country) (int, error) {
	args := m.Called(ctx, countries)
	return args.Int(0), args.Error(1)
}

func (m *MockCountryRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockCountryRepository) TopByGDP(ctx context.Context, limit int) ([]*models.Country, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Country), args.Error(1)
}

// MockRefreshMetadataRepository is a mock implementation of RefreshMetadataRepository
type MockRefreshMetadataRepository struct {
	mock.Mock
}

func (m *MockRefreshMetadataRepository) GetLastRefresh(ctx context.Context) (*time.Time, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockRefreshMetadataRepository) SetLastRefresh(ctx context.Context, ts time.Time) error {
	args := m.Called(ctx, ts)
	return args.Error(0)
}

// MockCountryFetcher is a mock implementation of CountryFetcher
type MockCountryFetcher struct {
	mock.Mock
}

func (m *MockCountryFetcher) Fetch(ctx context.Context) ([]feeds.RawCountry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]feeds.RawCountry), args.Error(1)
}

// MockRateFetcher is a mock implementation of RateFetcher
type MockRateFetcher struct {
	mock.Mock
}

func (m *MockRateFetcher) Fetch(ctx context.Context) (map[string]float64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]float64), args.Error(1)
}

// MockEventPublisher is a mock implementation of EventPublisher
type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Emit(ctx context.Context, event events.Event) {
	m.Called(ctx, event)
}
