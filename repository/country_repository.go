package repository

import (
	"context"
	"fmt"

	"countrydex/database"
	"countrydex/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// queryable abstracts over the pool and a transaction
type queryable interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

const countryColumns = `id, name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at`

// CountryRepository provides typed access to the countries table
type CountryRepository struct {
	db *database.DB
	q  queryable
}

// NewCountryRepository creates a new country repository
func NewCountryRepository(db *database.DB) *CountryRepository {
	return &CountryRepository{db: db, q: db.Pool}
}

func scanCountry(row pgx.Row) (*models.Country, error) {
	var c models.Country
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Capital,
		&c.Region,
		&c.Population,
		&c.CurrencyCode,
		&c.ExchangeRate,
		&c.EstimatedGDP,
		&c.FlagURL,
		&c.LastRefresh,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func collectCountries(rows pgx.Rows) ([]*models.Country, error) {
	defer rows.Close()

	countries := make([]*models.Country, 0)
	for rows.Next() {
		c, err := scanCountry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan country row: %w", err)
		}
		countries = append(countries, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read country rows: %w", err)
	}
	return countries, nil
}

// List returns countries matching the optional filters, ordered by the
// requested sort key. Filters match case-insensitively and combine with AND.
// An unrecognized or absent sort key falls back to ascending name order.
func (r *CountryRepository) List(ctx context.Context, filter models.ListFilter) ([]*models.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE 1=1`
	args := []any{}

	if filter.Region != "" {
		args = append(args, filter.Region)
		query += fmt.Sprintf(" AND LOWER(region) = LOWER($%d)", len(args))
	}
	if filter.Currency != "" {
		args = append(args, filter.Currency)
		query += fmt.Sprintf(" AND LOWER(currency_code) = LOWER($%d)", len(args))
	}

	// NULLS placement mirrors treating a missing GDP as the smallest value
	switch filter.Sort {
	case models.SortGDPDesc:
		query += " ORDER BY estimated_gdp DESC NULLS LAST"
	case models.SortGDPAsc:
		query += " ORDER BY estimated_gdp ASC NULLS FIRST"
	case models.SortPopulationDesc:
		query += " ORDER BY population DESC"
	default:
		query += " ORDER BY name ASC"
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list countries: %w", err)
	}
	return collectCountries(rows)
}

// GetByName retrieves a country by name, case-insensitively.
// Returns nil when no row matches.
func (r *CountryRepository) GetByName(ctx context.Context, name string) (*models.Country, error) {
	query := `SELECT ` + countryColumns + ` FROM countries WHERE LOWER(name) = LOWER($1)`

	c, err := scanCountry(r.q.QueryRow(ctx, query, name))
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get country %q: %w", name, err)
	}
	return c, nil
}

// DeleteByName removes a country by name, case-insensitively.
// Returns true iff a row was removed.
func (r *CountryRepository) DeleteByName(ctx context.Context, name string) (bool, error) {
	tag, err := r.q.Exec(ctx, `DELETE FROM countries WHERE LOWER(name) = LOWER($1)`, name)
	if err != nil {
		return false, fmt.Errorf("failed to delete country %q: %w", name, err)
	}
	return tag.RowsAffected() > 0, nil
}

const upsertCountryQuery = `
	INSERT INTO countries
		(name, capital, region, population, currency_code, exchange_rate, estimated_gdp, flag_url, last_refreshed_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	ON CONFLICT (LOWER(name)) DO UPDATE SET
		capital = EXCLUDED.capital,
		region = EXCLUDED.region,
		population = EXCLUDED.population,
		currency_code = EXCLUDED.currency_code,
		exchange_rate = EXCLUDED.exchange_rate,
		estimated_gdp = EXCLUDED.estimated_gdp,
		flag_url = EXCLUDED.flag_url,
		last_refreshed_at = EXCLUDED.last_refreshed_at
`

// UpsertBatch inserts or overwrites the given countries keyed by
// case-insensitive name, as a single transaction over the whole batch.
// Returns the number of records written.
func (r *CountryRepository) UpsertBatch(ctx context.Context, countries []*models.Country) (int, error) {
	if len(countries) == 0 {
		return 0, nil
	}

	err := r.db.WithTransaction(ctx, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, c := range countries {
			batch.Queue(upsertCountryQuery,
				c.Name,
				c.Capital,
				c.Region,
				c.Population,
				c.CurrencyCode,
				c.ExchangeRate,
				c.EstimatedGDP,
				c.FlagURL,
				c.LastRefresh,
			)
		}

		results := tx.SendBatch(ctx, batch)
		defer results.Close()

		for range countries {
			if _, err := results.Exec(); err != nil {
				return fmt.Errorf("failed to upsert country: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return len(countries), nil
}

// Count returns the total number of country rows
func (r *CountryRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM countries`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count countries: %w", err)
	}
	return count, nil
}

// TopByGDP returns up to limit countries with the highest estimated GDP,
// descending, excluding rows with no GDP value.
func (r *CountryRepository) TopByGDP(ctx context.Context, limit int) ([]*models.Country, error) {
	query := `SELECT ` + countryColumns + `
		FROM countries
		WHERE estimated_gdp IS NOT NULL
		ORDER BY estimated_gdp DESC
		LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get top countries by GDP: %w", err)
	}
	return collectCountries(rows)
}
