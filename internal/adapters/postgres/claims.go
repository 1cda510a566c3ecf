package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"receivables/internal/domain"
)

const claimColumns = `id, face_value, maturity_at, creator, holder, status, created_at, updated_at`

func scanClaim(row pgx.Row) (domain.Claim, error) {
	var c domain.Claim
	err := row.Scan(&c.ID, &c.FaceValue, &c.MaturityAt, &c.Creator, &c.Holder, &c.Status, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (db *DB) GetClaim(ctx context.Context, id string) (domain.Claim, error) {
	c, err := scanClaim(db.Pool.QueryRow(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = $1`, id))
	return c, notFound(err)
}

func (db *DB) InsertClaim(ctx context.Context, c domain.Claim) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = c.CreatedAt
	}
	_, err := db.Pool.Exec(ctx, `
		INSERT INTO claims (`+claimColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, c.ID, c.FaceValue, c.MaturityAt, c.Creator, c.Holder, c.Status, c.CreatedAt, c.UpdatedAt)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return domain.ErrConflict
	}
	return err
}

func (db *DB) ListMaturedClaims(ctx context.Context, asOf time.Time, limit int) ([]domain.Claim, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT c.id, c.face_value, c.maturity_at, c.creator, c.holder, c.status, c.created_at, c.updated_at
		FROM claims c
		WHERE c.status = 'owned' AND c.maturity_at <= $1
		  AND NOT EXISTS (SELECT 1 FROM maturity_payments p WHERE p.claim_id = c.id)
		ORDER BY c.maturity_at, c.id
		LIMIT $2
	`, asOf, limitOrAll(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []domain.Claim
	for rows.Next() {
		c, err := scanClaim(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// moveClaim updates status and holder of a claim inside tx.
func moveClaim(ctx context.Context, tx pgx.Tx, id string, status domain.ClaimStatus, holder string, at time.Time) error {
	_, err := tx.Exec(ctx, `UPDATE claims SET status = $2, holder = $3, updated_at = $4 WHERE id = $1`, id, status, holder, at)
	return err
}

// limitOrAll maps a non-positive limit to no limit.
func limitOrAll(limit int) any {
	if limit <= 0 {
		return nil
	}
	return limit
}
