package repository

import (
	"context"
	"fmt"
	"time"

	"countrydex/database"
)

// RefreshMetadataRepository provides access to the singleton refresh metadata row
type RefreshMetadataRepository struct {
	q queryable
}

// NewRefreshMetadataRepository creates a new refresh metadata repository
func NewRefreshMetadataRepository(db *database.DB) *RefreshMetadataRepository {
	return &RefreshMetadataRepository{q: db.Pool}
}

// GetLastRefresh returns the timestamp of the most recent successful refresh,
// or nil if no refresh has completed yet.
func (r *RefreshMetadataRepository) GetLastRefresh(ctx context.Context) (*time.Time, error) {
	var ts *time.Time
	err := r.q.QueryRow(ctx, `SELECT last_refreshed_at FROM refresh_metadata WHERE id = 1`).Scan(&ts)
	if err != nil {
		return nil, fmt.Errorf("failed to get last refresh timestamp: %w", err)
	}
	return ts, nil
}

// SetLastRefresh updates the global refresh timestamp
func (r *RefreshMetadataRepository) SetLastRefresh(ctx context.Context, ts time.Time) error {
	tag, err := r.q.Exec(ctx, `UPDATE refresh_metadata SET last_refreshed_at = $1 WHERE id = 1`, ts)
	if err != nil {
		return fmt.Errorf("failed to set last refresh timestamp: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("refresh metadata row is missing")
	}
	return nil
}
