package repository

import (
	"context"
	"testing"
	"time"

	"countrydex/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshMetadataRepository(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	repo := NewRefreshMetadataRepository(testDB.DB)
	ctx := context.Background()

	t.Run("seed row starts with no timestamp", func(t *testing.T) {
		ts, err := repo.GetLastRefresh(ctx)
		require.NoError(t, err)
		assert.Nil(t, ts)
	})

	t.Run("set and get round trip", func(t *testing.T) {
		want := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repo.SetLastRefresh(ctx, want))

		got, err := repo.GetLastRefresh(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Equal(want))
	})

	t.Run("set overwrites in place", func(t *testing.T) {
		later := time.Date(2024, 6, 2, 8, 0, 0, 0, time.UTC)
		require.NoError(t, repo.SetLastRefresh(ctx, later))

		got, err := repo.GetLastRefresh(ctx)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.True(t, got.Equal(later))
	})
}
