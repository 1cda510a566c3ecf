package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

// Bounded applies a per-call deadline to every gateway operation. A call
// that runs into the deadline is reported as indeterminate, never as failed.
type Bounded struct {
	Next    ports.LedgerGateway
	Timeout time.Duration
}

var _ ports.LedgerGateway = Bounded{}

func WithTimeout(next ports.LedgerGateway, timeout time.Duration) Bounded {
	return Bounded{Next: next, Timeout: timeout}
}

func bound[T any](ctx context.Context, d time.Duration, fn func(context.Context) (T, error)) (T, error) {
	if d <= 0 {
		return fn(ctx)
	}
	cctx, cancel := context.WithTimeout(ctx, d)
	defer cancel()
	out, err := fn(cctx)
	if err != nil && errors.Is(err, context.DeadlineExceeded) && !errors.Is(err, domain.ErrIndeterminate) {
		err = fmt.Errorf("%w: %v", domain.ErrIndeterminate, err)
	}
	return out, err
}

func (b Bounded) Balance(ctx context.Context, account, currency string) (decimal.Decimal, error) {
	return bound(ctx, b.Timeout, func(ctx context.Context) (decimal.Decimal, error) {
		return b.Next.Balance(ctx, account, currency)
	})
}

func (b Bounded) CreateInstrument(ctx context.Context, from, to string, amount decimal.Decimal) (ports.Instrument, error) {
	return bound(ctx, b.Timeout, func(ctx context.Context) (ports.Instrument, error) {
		return b.Next.CreateInstrument(ctx, from, to, amount)
	})
}

func (b Bounded) CashInstrument(ctx context.Context, instrumentID string, amount decimal.Decimal) (ports.Receipt, error) {
	return bound(ctx, b.Timeout, func(ctx context.Context) (ports.Receipt, error) {
		return b.Next.CashInstrument(ctx, instrumentID, amount)
	})
}

func (b Bounded) CancelInstrument(ctx context.Context, instrumentID string) (ports.Receipt, error) {
	return bound(ctx, b.Timeout, func(ctx context.Context) (ports.Receipt, error) {
		return b.Next.CancelInstrument(ctx, instrumentID)
	})
}

func (b Bounded) TransferOwnership(ctx context.Context, assetID, from, to string) (ports.Receipt, error) {
	return bound(ctx, b.Timeout, func(ctx context.Context) (ports.Receipt, error) {
		return b.Next.TransferOwnership(ctx, assetID, from, to)
	})
}

func (b Bounded) InstrumentStatus(ctx context.Context, instrumentID string) (ports.InstrumentState, error) {
	return bound(ctx, b.Timeout, func(ctx context.Context) (ports.InstrumentState, error) {
		return b.Next.InstrumentStatus(ctx, instrumentID)
	})
}

func (b Bounded) OwnerOf(ctx context.Context, assetID string) (string, error) {
	return bound(ctx, b.Timeout, func(ctx context.Context) (string, error) {
		return b.Next.OwnerOf(ctx, assetID)
	})
}
