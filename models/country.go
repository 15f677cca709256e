package models

import "time"

// Country represents an aggregated country row. CurrencyCode, ExchangeRate
// and EstimatedGDP are pointers because the pipeline distinguishes "no
// currency" (GDP zero) from "currency with no known rate" (GDP null).
type Country struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Capital      *string   `json:"capital"`
	Region       *string   `json:"region"`
	Population   int64     `json:"population"`
	CurrencyCode *string   `json:"currency_code"`
	ExchangeRate *float64  `json:"exchange_rate"`
	EstimatedGDP *float64  `json:"estimated_gdp"`
	FlagURL      *string   `json:"flag_url"`
	LastRefresh  time.Time `json:"last_refreshed_at"`
}

// SortKey identifies a recognized listing order
type SortKey string

const (
	SortGDPDesc        SortKey = "gdp_desc"
	SortGDPAsc         SortKey = "gdp_asc"
	SortNameAsc        SortKey = "name_asc"
	SortPopulationDesc SortKey = "population_desc"
)

// ListFilter carries the optional listing filters and sort order.
// Region and currency match case-insensitively when set.
type ListFilter struct {
	Region   string
	Currency string
	Sort     SortKey
}

// Status is the aggregate reported by GET /status
type Status struct {
	TotalCountries  int64   `json:"total_countries"`
	LastRefreshedAt *string `json:"last_refreshed_at"`
}
