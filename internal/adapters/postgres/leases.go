package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
)

// AcquireLease takes the lease if it is free, expired, or already ours.
// Expiry is judged by the database clock so processes with skewed clocks
// agree.
func (db *DB) AcquireLease(ctx context.Context, key, owner string, ttl time.Duration) (bool, error) {
	var got string
	err := db.Pool.QueryRow(ctx, `
		INSERT INTO entity_leases (key, owner, expires_at)
		VALUES ($1, $2, now() + $3::float8 * interval '1 millisecond')
		ON CONFLICT (key) DO UPDATE
		SET owner = EXCLUDED.owner, expires_at = EXCLUDED.expires_at
		WHERE entity_leases.expires_at < now() OR entity_leases.owner = EXCLUDED.owner
		RETURNING owner
	`, key, owner, ttl.Milliseconds()).Scan(&got)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return got == owner, nil
}

func (db *DB) ReleaseLease(ctx context.Context, key, owner string) error {
	_, err := db.Pool.Exec(ctx, `DELETE FROM entity_leases WHERE key = $1 AND owner = $2`, key, owner)
	return err
}
