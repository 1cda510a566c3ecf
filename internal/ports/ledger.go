package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

type InstrumentState string

const (
	InstrumentOpen      InstrumentState = "open"
	InstrumentCashed    InstrumentState = "cashed"
	InstrumentCancelled InstrumentState = "cancelled"
	InstrumentUnknown   InstrumentState = "unknown"
)

type Instrument struct {
	ID           string
	Confirmation string
}

// Receipt carries the ledger's opaque confirmation reference.
type Receipt struct {
	Confirmation string
}

// LedgerGateway executes operations on the external ledger. Errors wrap
// domain.ErrRejected when the ledger confirmed failure and
// domain.ErrIndeterminate when the outcome is unknown.
type LedgerGateway interface {
	Balance(ctx context.Context, account, currency string) (decimal.Decimal, error)
	CreateInstrument(ctx context.Context, from, to string, amount decimal.Decimal) (Instrument, error)
	CashInstrument(ctx context.Context, instrumentID string, amount decimal.Decimal) (Receipt, error)
	CancelInstrument(ctx context.Context, instrumentID string) (Receipt, error)
	TransferOwnership(ctx context.Context, assetID, from, to string) (Receipt, error)

	// Reconciliation queries.
	InstrumentStatus(ctx context.Context, instrumentID string) (InstrumentState, error)
	OwnerOf(ctx context.Context, assetID string) (string, error)
}
