package service

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"

	"countrydex/events"
	"countrydex/metrics"
	"countrydex/models"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"
)

// refreshService implements the RefreshService interface
type refreshService struct {
	countryRepo  CountryRepository
	metadataRepo RefreshMetadataRepository
	countries    CountryFetcher
	rates        RateFetcher
	publisher    EventPublisher

	// Serializes concurrent refresh calls so the metadata timestamp always
	// belongs to the batch that wrote it.
	mu sync.Mutex
}

// NewRefreshService creates a new refresh service
func NewRefreshService(
	countryRepo CountryRepository,
	metadataRepo RefreshMetadataRepository,
	countries CountryFetcher,
	rates RateFetcher,
	publisher EventPublisher,
) RefreshService {
	return &refreshService{
		countryRepo:  countryRepo,
		metadataRepo: metadataRepo,
		countries:    countries,
		rates:        rates,
		publisher:    publisher,
	}
}

// Refresh fetches the country and exchange rate feeds, joins them on
// currency code, derives the estimated GDP metric and upserts the batch.
// A failure of either feed aborts the whole refresh with no writes.
func (s *refreshService) Refresh(ctx context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := prometheus.NewTimer(metrics.RefreshDuration)
	defer timer.ObserveDuration()

	raw, err := s.countries.Fetch(ctx)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("upstream_error").Inc()
		metrics.UpstreamFailuresTotal.WithLabelValues("countries").Inc()
		return 0, err
	}

	rates, err := s.rates.Fetch(ctx)
	if err != nil {
		metrics.RefreshTotal.WithLabelValues("upstream_error").Inc()
		metrics.UpstreamFailuresTotal.WithLabelValues("exchange-rates").Inc()
		return 0, err
	}

	now := time.Now().UTC()
	batch := make([]*models.Country, 0, len(raw))

	for _, rc := range raw {
		// Rows without a name or population are dropped, never written
		if rc.Name == "" || rc.Population == nil {
			continue
		}

		c := &models.Country{
			Name:        rc.Name,
			Capital:     optional(rc.Capital),
			Region:      optional(rc.Region),
			Population:  *rc.Population,
			FlagURL:     optional(rc.Flag),
			LastRefresh: now,
		}

		// No usable currency means a GDP of zero, distinct from the null
		// GDP of a currency the rate feed does not know.
		zero := 0.0
		c.EstimatedGDP = &zero

		if len(rc.Currencies) > 0 {
			// Only the first currency in feed order is ever considered
			if code := rc.Currencies[0].Code; code != "" {
				c.CurrencyCode = &code
				if rate, ok := rates[code]; ok && rate != 0 {
					draw := 1000 + rand.Float64()*1000
					gdp := float64(c.Population) * draw / rate
					c.ExchangeRate = &rate
					c.EstimatedGDP = &gdp
				} else {
					c.EstimatedGDP = nil
				}
			}
		}

		batch = append(batch, c)
	}

	if len(batch) > 0 {
		if _, err := s.countryRepo.UpsertBatch(ctx, batch); err != nil {
			metrics.RefreshTotal.WithLabelValues("internal_error").Inc()
			return 0, err
		}
		if err := s.metadataRepo.SetLastRefresh(ctx, now); err != nil {
			metrics.RefreshTotal.WithLabelValues("internal_error").Inc()
			return 0, err
		}
	}

	metrics.RefreshTotal.WithLabelValues("success").Inc()
	metrics.CountriesUpsertedTotal.Add(float64(len(batch)))

	log.WithFields(log.Fields{
		"fetched":  len(raw),
		"upserted": len(batch),
	}).Info("Refresh completed")

	// Best-effort side effects (summary image, notifications) run off the bus
	s.publisher.Emit(ctx, events.RefreshCompletedEvent{Count: len(batch), Timestamp: now})

	return len(batch), nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
