package testutil

import (
	"time"

	"countrydex/models"
)

// CreateTestCountry creates a test country with default values
func CreateTestCountry(name string, population int64) *models.Country {
	capital := name + " City"
	region := "Testlandia"
	flag := "https://flags.example/" + name + ".png"
	zero := 0.0
	return &models.Country{
		Name:         name,
		Capital:      &capital,
		Region:       &region,
		Population:   population,
		FlagURL:      &flag,
		EstimatedGDP: &zero,
		LastRefresh:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

// CreateTestCountryWithGDP creates a test country with a currency and GDP
func CreateTestCountryWithGDP(name string, population int64, code string, rate, gdp float64) *models.Country {
	c := CreateTestCountry(name, population)
	c.CurrencyCode = &code
	c.ExchangeRate = &rate
	c.EstimatedGDP = &gdp
	return c
}

// CreateTestCountryUnrated creates a test country whose currency has no known rate
func CreateTestCountryUnrated(name string, population int64, code string) *models.Country {
	c := CreateTestCountry(name, population)
	c.CurrencyCode = &code
	c.EstimatedGDP = nil
	return c
}

// WithRegion overrides the region
func WithRegion(c *models.Country, region string) *models.Country {
	c.Region = &region
	return c
}
