package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"

	"receivables/internal/domain"
)

const paymentColumns = `id, claim_id, debtor, creditor, amount, maturity_at, status, instrument_id, confirmation, created_at, updated_at`

func scanPayment(row pgx.Row) (domain.MaturityPayment, error) {
	var p domain.MaturityPayment
	err := row.Scan(&p.ID, &p.ClaimID, &p.Debtor, &p.Creditor, &p.Amount, &p.MaturityAt, &p.Status,
		&p.InstrumentID, &p.Confirmation, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

// CreateMaturityPayment relies on the unique claim_id constraint: a second
// scan for the same claim inserts nothing and reports false.
func (db *DB) CreateMaturityPayment(ctx context.Context, p domain.MaturityPayment) (bool, error) {
	var created bool
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx, `
			UPDATE claims SET status = 'matured', updated_at = $2
			WHERE id = $1 AND status = 'owned'
		`, p.ClaimID, p.CreatedAt)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return nil
		}
		var id string
		err = tx.QueryRow(ctx, `
			INSERT INTO maturity_payments (`+paymentColumns+`)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
			ON CONFLICT (claim_id) DO NOTHING
			RETURNING id
		`, p.ID, p.ClaimID, p.Debtor, p.Creditor, p.Amount, p.MaturityAt, p.Status,
			p.InstrumentID, p.Confirmation, p.CreatedAt, p.UpdatedAt).Scan(&id)
		if errors.Is(err, pgx.ErrNoRows) {
			// lost the race; undo the claim update with the rollback
			return errSkip
		}
		if err != nil {
			return err
		}
		created = true
		return nil
	})
	if errors.Is(err, errSkip) {
		return false, nil
	}
	return created, err
}

var errSkip = errors.New("skip")

func (db *DB) GetPayment(ctx context.Context, id string) (domain.MaturityPayment, error) {
	p, err := scanPayment(db.Pool.QueryRow(ctx, `SELECT `+paymentColumns+` FROM maturity_payments WHERE id = $1`, id))
	return p, notFound(err)
}

func (db *DB) SetInstrument(ctx context.Context, id string, from, to domain.PaymentStatus, instrumentID, confirmation string, at time.Time) (bool, error) {
	tag, err := db.Pool.Exec(ctx, `
		UPDATE maturity_payments
		SET status = $3, instrument_id = $4, confirmation = $5, updated_at = $6
		WHERE id = $1 AND status = $2
	`, id, from, to, instrumentID, confirmation, at)
	if err != nil {
		return false, err
	}
	if tag.RowsAffected() == 0 {
		return false, db.paymentExists(ctx, id)
	}
	return true, nil
}

func (db *DB) MarkPaymentCashed(ctx context.Context, id string, from domain.PaymentStatus, at time.Time) (bool, error) {
	var done bool
	err := db.inTx(ctx, func(tx pgx.Tx) error {
		var claimID string
		err := tx.QueryRow(ctx, `
			UPDATE maturity_payments SET status = 'cashed', updated_at = $3
			WHERE id = $1 AND status = $2
			RETURNING claim_id
		`, id, from, at).Scan(&claimID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		if _, err := tx.Exec(ctx, `
			UPDATE claims SET status = 'redeemed', updated_at = $2
			WHERE id = $1 AND status = 'matured'
		`, claimID, at); err != nil {
			return err
		}
		done = true
		return nil
	})
	if err == nil && !done {
		err = db.paymentExists(ctx, id)
	}
	return done, err
}

// MarkOverdue is the set form of MaturityPayment.DueBy: maturity_at + grace
// <= now.
func (db *DB) MarkOverdue(ctx context.Context, now time.Time, grace time.Duration) ([]string, error) {
	cutoff := now.Add(-grace)
	rows, err := db.Pool.Query(ctx, `
		UPDATE maturity_payments SET status = 'overdue', updated_at = $2
		WHERE status IN ('pending', 'created') AND maturity_at <= $1
		RETURNING id
	`, cutoff, now)
	if err != nil {
		return nil, err
	}
	return pgx.CollectRows(rows, pgx.RowTo[string])
}

func (db *DB) paymentExists(ctx context.Context, id string) error {
	var exists bool
	if err := db.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM maturity_payments WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return domain.ErrNotFound
	}
	return nil
}
