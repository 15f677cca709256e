package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RefreshTotal counts refresh attempts by outcome (success, upstream_error, internal_error)
	RefreshTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "countrydex_refresh_total",
		Help: "Total number of refresh operations by outcome",
	}, []string{"outcome"})

	// UpstreamFailuresTotal counts failed feed fetches by feed tag
	UpstreamFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "countrydex_upstream_failures_total",
		Help: "Total number of failed upstream feed fetches",
	}, []string{"feed"})

	// CountriesUpsertedTotal counts rows written by refresh batches
	CountriesUpsertedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "countrydex_countries_upserted_total",
		Help: "Total number of country rows written by refresh batches",
	})

	// RefreshDuration observes end-to-end refresh latency
	RefreshDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "countrydex_refresh_duration_seconds",
		Help:    "End-to-end duration of refresh operations",
		Buckets: prometheus.DefBuckets,
	})

	// ImageRenderFailuresTotal counts failed summary image renders
	ImageRenderFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "countrydex_image_render_failures_total",
		Help: "Total number of failed summary image renders",
	})
)
