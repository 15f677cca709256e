package repository

import (
	"context"
	"testing"

	"countrydex/models"
	"countrydex/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedCountries(t *testing.T, repo *CountryRepository, countries ...*models.Country) {
	t.Helper()
	count, err := repo.UpsertBatch(context.Background(), countries)
	require.NoError(t, err)
	require.Equal(t, len(countries), count)
}

func names(countries []*models.Country) []string {
	out := make([]string, len(countries))
	for i, c := range countries {
		out[i] = c.Name
	}
	return out
}

func TestCountryRepository_UpsertBatch(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewCountryRepository(testDB.DB)
	ctx := context.Background()

	t.Run("insert new rows", func(t *testing.T) {
		seedCountries(t, repo,
			testutil.CreateTestCountryWithGDP("Arcadia", 1000, "ARC", 2.0, 750000),
			testutil.CreateTestCountry("Barterland", 500),
		)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total)
	})

	t.Run("overwrite on case-insensitive name conflict", func(t *testing.T) {
		updated := testutil.CreateTestCountryWithGDP("ARCADIA", 2000, "ARC", 4.0, 900000)
		seedCountries(t, repo, updated)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(2), total, "conflicting row overwritten, not duplicated")

		got, err := repo.GetByName(ctx, "arcadia")
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Arcadia", got.Name, "original name casing preserved")
		assert.Equal(t, int64(2000), got.Population)
		require.NotNil(t, got.ExchangeRate)
		assert.Equal(t, 4.0, *got.ExchangeRate)
	})

	t.Run("null distinction survives the round trip", func(t *testing.T) {
		seedCountries(t, repo, testutil.CreateTestCountryUnrated("Obscuria", 300, "OBS"))

		got, err := repo.GetByName(ctx, "Obscuria")
		require.NoError(t, err)
		require.NotNil(t, got)
		require.NotNil(t, got.CurrencyCode)
		assert.Nil(t, got.ExchangeRate)
		assert.Nil(t, got.EstimatedGDP)

		barter, err := repo.GetByName(ctx, "Barterland")
		require.NoError(t, err)
		require.NotNil(t, barter)
		require.NotNil(t, barter.EstimatedGDP)
		assert.Equal(t, 0.0, *barter.EstimatedGDP)
	})

	t.Run("empty batch writes nothing", func(t *testing.T) {
		count, err := repo.UpsertBatch(ctx, nil)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}

func TestCountryRepository_GetByName(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewCountryRepository(testDB.DB)
	ctx := context.Background()

	seedCountries(t, repo, testutil.CreateTestCountry("Arcadia", 1000))

	t.Run("case-insensitive match", func(t *testing.T) {
		for _, name := range []string{"Arcadia", "arcadia", "ARCADIA"} {
			got, err := repo.GetByName(ctx, name)
			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, "Arcadia", got.Name)
		}
	})

	t.Run("absent name returns nil", func(t *testing.T) {
		got, err := repo.GetByName(ctx, "Atlantis")
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestCountryRepository_DeleteByName(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewCountryRepository(testDB.DB)
	ctx := context.Background()

	seedCountries(t, repo,
		testutil.CreateTestCountry("Arcadia", 1000),
		testutil.CreateTestCountry("Barterland", 500),
	)

	t.Run("removes exactly the matching row", func(t *testing.T) {
		deleted, err := repo.DeleteByName(ctx, "ARCADIA")
		require.NoError(t, err)
		assert.True(t, deleted)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})

	t.Run("absent name leaves storage unchanged", func(t *testing.T) {
		deleted, err := repo.DeleteByName(ctx, "Atlantis")
		require.NoError(t, err)
		assert.False(t, deleted)

		total, err := repo.Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
	})
}

func TestCountryRepository_List(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewCountryRepository(testDB.DB)
	ctx := context.Background()

	seedCountries(t, repo,
		testutil.WithRegion(testutil.CreateTestCountryWithGDP("Alpha", 100, "AAA", 1.0, 300), "Europe"),
		testutil.WithRegion(testutil.CreateTestCountryWithGDP("Bravo", 300, "BBB", 2.0, 100), "europe"),
		testutil.WithRegion(testutil.CreateTestCountryUnrated("Charlie", 200, "AAA"), "Asia"),
		testutil.WithRegion(testutil.CreateTestCountry("Delta", 400), "Asia"),
	)

	t.Run("default sort is name ascending", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta"}, names(countries))
	})

	t.Run("unrecognized sort falls back to name ascending", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{Sort: "bogus"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Bravo", "Charlie", "Delta"}, names(countries))
	})

	t.Run("gdp descending puts missing values last", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{Sort: models.SortGDPDesc})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Bravo", "Delta", "Charlie"}, names(countries))
	})

	t.Run("gdp ascending puts missing values first", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{Sort: models.SortGDPAsc})
		require.NoError(t, err)
		assert.Equal(t, []string{"Charlie", "Delta", "Bravo", "Alpha"}, names(countries))
	})

	t.Run("population descending", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{Sort: models.SortPopulationDesc})
		require.NoError(t, err)
		assert.Equal(t, []string{"Delta", "Bravo", "Charlie", "Alpha"}, names(countries))
	})

	t.Run("region filter is case-insensitive", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{Region: "EUROPE"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Bravo"}, names(countries))
	})

	t.Run("currency filter is case-insensitive", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{Currency: "aaa"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha", "Charlie"}, names(countries))
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		countries, err := repo.List(ctx, models.ListFilter{Region: "europe", Currency: "AAA"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Alpha"}, names(countries))
	})
}

func TestCountryRepository_TopByGDP(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewCountryRepository(testDB.DB)
	ctx := context.Background()

	seedCountries(t, repo,
		testutil.CreateTestCountryWithGDP("Alpha", 100, "AAA", 1.0, 300),
		testutil.CreateTestCountryWithGDP("Bravo", 300, "BBB", 2.0, 100),
		testutil.CreateTestCountryWithGDP("Echo", 300, "EEE", 2.0, 500),
		testutil.CreateTestCountryUnrated("Charlie", 200, "CCC"),
	)

	top, err := repo.TopByGDP(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"Echo", "Alpha"}, names(top))

	all, err := repo.TopByGDP(ctx, 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Echo", "Alpha", "Bravo"}, names(all), "null GDP rows excluded")
}
