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

const bidColumns = `id, auction_id, bidder, amount, instrument_id, confirmation, status, reason, created_at, updated_at`

func scanBid(row pgx.Row) (domain.Bid, error) {
	var b domain.Bid
	err := row.Scan(&b.ID, &b.AuctionID, &b.Bidder, &b.Amount, &b.InstrumentID, &b.Confirmation, &b.Status, &b.Reason, &b.CreatedAt, &b.UpdatedAt)
	return b, err
}

func collectBids(rows pgx.Rows) ([]domain.Bid, error) {
	defer rows.Close()
	var out []domain.Bid
	for rows.Next() {
		b, err := scanBid(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// PlaceBid serializes bids on the auction row. The bidder's previous active
// bid, if any, is superseded before the new one is inserted so the partial
// unique index on (auction_id, bidder) holds.
func (db *DB) PlaceBid(ctx context.Context, b domain.Bid, now time.Time) (domain.Bid, *domain.Bid, error) {
	var superseded *domain.Bid
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		a, err := scanAuction(tx.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1 FOR UPDATE`, b.AuctionID))
		if err != nil {
			return notFound(err)
		}
		var hasActive bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bids WHERE auction_id = $1 AND status = 'active')`, a.ID).Scan(&hasActive); err != nil {
			return err
		}
		if err := domain.CheckBid(a, hasActive, b.Amount, now); err != nil {
			return err
		}

		prior, err := scanBid(tx.QueryRow(ctx, `
			UPDATE bids SET status = 'superseded', reason = $3, updated_at = $4
			WHERE auction_id = $1 AND bidder = $2 AND status = 'active'
			RETURNING `+bidColumns, a.ID, b.Bidder, domain.ReasonRebid, now))
		switch {
		case err == nil:
			superseded = &prior
		case !errors.Is(err, pgx.ErrNoRows):
			return err
		}

		if b.ID == "" {
			b.ID = uuid.NewString()
		}
		b.Status = domain.BidActive
		b.Reason = ""
		b.CreatedAt = now
		b.UpdatedAt = now
		_, err = tx.Exec(ctx, `
			INSERT INTO bids (`+bidColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, b.ID, b.AuctionID, b.Bidder, b.Amount, b.InstrumentID, b.Confirmation, b.Status, b.Reason, b.CreatedAt, b.UpdatedAt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrConflict
		}
		if err != nil {
			return err
		}
		return refreshCurrentBid(ctx, tx, a.ID)
	})
	if err != nil {
		return domain.Bid{}, nil, err
	}
	return b, superseded, nil
}

func (db *DB) ActiveBids(ctx context.Context, auctionID string) ([]domain.Bid, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT `+bidColumns+` FROM bids
		WHERE auction_id = $1 AND status = 'active'
		ORDER BY amount DESC, created_at ASC, id ASC
	`, auctionID)
	if err != nil {
		return nil, err
	}
	return collectBids(rows)
}

func (db *DB) RejectBid(ctx context.Context, bidID string, reason string, at time.Time) (bool, error) {
	var done bool
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var auctionID string
		err := tx.QueryRow(ctx, `
			UPDATE bids SET status = 'superseded', reason = $2, updated_at = $3
			WHERE id = $1 AND status = 'active'
			RETURNING auction_id
		`, bidID, reason, at).Scan(&auctionID)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM bids WHERE id = $1)`, bidID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domain.ErrNotFound
			}
			return nil
		}
		if err != nil {
			return err
		}
		done = true
		return refreshCurrentBid(ctx, tx, auctionID)
	})
	return done, err
}

// refreshCurrentBid sets an active auction's current bid to its highest
// active bid, falling back to the minimum bid.
func refreshCurrentBid(ctx context.Context, tx pgx.Tx, auctionID string) error {
	_, err := tx.Exec(ctx, `
		UPDATE auctions a
		SET current_bid = COALESCE(
			(SELECT max(b.amount) FROM bids b WHERE b.auction_id = a.id AND b.status = 'active'),
			a.min_bid)
		WHERE a.id = $1 AND a.status = 'active'
	`, auctionID)
	return err
}
