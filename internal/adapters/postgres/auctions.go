package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

const auctionColumns = `id, claim_id, face_value, expires_at, min_bid, current_bid, original_owner, custody, status, winner, final_price, created_at, settled_at`

func scanAuction(row pgx.Row) (domain.Auction, error) {
	var a domain.Auction
	var price decimal.NullDecimal
	err := row.Scan(&a.ID, &a.ClaimID, &a.FaceValue, &a.ExpiresAt, &a.MinBid, &a.CurrentBid,
		&a.OriginalOwner, &a.Custody, &a.Status, &a.Winner, &price, &a.CreatedAt, &a.SettledAt)
	if price.Valid {
		a.FinalPrice = &price.Decimal
	}
	return a, err
}

func (db *DB) GetAuction(ctx context.Context, id string) (domain.Auction, error) {
	a, err := scanAuction(db.Pool.QueryRow(ctx, `SELECT `+auctionColumns+` FROM auctions WHERE id = $1`, id))
	return a, notFound(err)
}

func (db *DB) CreateAuction(ctx context.Context, a domain.Auction, custodian string) error {
	return db.inTx(ctx, func(tx pgx.Tx) error {
		c, err := scanClaim(tx.QueryRow(ctx, `SELECT `+claimColumns+` FROM claims WHERE id = $1 FOR UPDATE`, a.ClaimID))
		if err != nil {
			return notFound(err)
		}
		if c.Status != domain.ClaimOwned || c.Holder != a.OriginalOwner {
			return domain.ErrInvalidTransition
		}
		_, err = tx.Exec(ctx, `
			INSERT INTO auctions (id, claim_id, face_value, expires_at, min_bid, current_bid, original_owner, custody, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		`, a.ID, a.ClaimID, a.FaceValue, a.ExpiresAt, a.MinBid, a.CurrentBid, a.OriginalOwner, a.Custody, a.Status, a.CreatedAt)
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrConflict
		}
		if err != nil {
			return err
		}
		return moveClaim(ctx, tx, c.ID, domain.ClaimListed, custodian, a.CreatedAt)
	})
}

func (db *DB) ListExpiredAuctions(ctx context.Context, asOf time.Time, limit int) ([]string, error) {
	rows, err := db.Pool.Query(ctx, `
		SELECT id FROM auctions
		WHERE status = 'active' AND expires_at <= $1
		ORDER BY expires_at, id
		LIMIT $2
	`, asOf, limitOrAll(limit))
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

// CompleteAuction records the winner, marks the winning bid cashed and hands
// the claim to the winner in one transaction. It is a no-op returning false
// when the auction has already left the active state.
func (db *DB) CompleteAuction(ctx context.Context, s ports.AuctionSettlement) (bool, error) {
	var done bool
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE auctions
			SET status = 'completed', winner = $2, final_price = $3, current_bid = $3, settled_at = $4
			WHERE id = $1 AND status = 'active'
		`, s.AuctionID, s.Winner, s.Price, s.SettledAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM auctions WHERE id = $1)`, s.AuctionID).Scan(&exists); err != nil {
				return err
			}
			if !exists {
				return domain.ErrNotFound
			}
			return nil
		}
		tag, err = tx.Exec(ctx, `
			UPDATE bids SET status = 'cashed', updated_at = $3
			WHERE id = $1 AND auction_id = $2 AND status = 'active'
		`, s.BidID, s.AuctionID, s.SettledAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return domain.ErrInvalidTransition
		}
		if err := moveClaim(ctx, tx, s.ClaimID, domain.ClaimOwned, s.Winner, s.SettledAt); err != nil {
			return err
		}
		done = true
		return nil
	})
	return done, err
}

func (db *DB) UnlistAuction(ctx context.Context, auctionID string, at time.Time) (bool, error) {
	var done bool
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var claimID, owner string
		err := tx.QueryRow(ctx, `
			UPDATE auctions SET status = 'unlisted', settled_at = $2
			WHERE id = $1 AND status = 'active'
			RETURNING claim_id, original_owner
		`, auctionID, at).Scan(&claimID, &owner)
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM auctions WHERE id = $1)`, auctionID).Scan(&exists); err != nil {
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
		if err := moveClaim(ctx, tx, claimID, domain.ClaimOwned, owner, at); err != nil {
			return err
		}
		done = true
		return nil
	})
	return done, err
}
