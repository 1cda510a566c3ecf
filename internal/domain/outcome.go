package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type FinalizeOutcome string

const (
	OutcomeCompleted  FinalizeOutcome = "completed"
	OutcomeUnlisted   FinalizeOutcome = "unlisted"
	OutcomeNotExpired FinalizeOutcome = "not_expired"
	// OutcomeInProgress is returned when another caller holds the auction's
	// lease. Nothing was changed.
	OutcomeInProgress FinalizeOutcome = "in_progress"
	// OutcomeDeferred is returned when a ledger outcome could not be
	// reconciled. State is unchanged and the next tick retries.
	OutcomeDeferred FinalizeOutcome = "deferred"
	OutcomeError    FinalizeOutcome = "error"
)

// FinalizeResult is the structured outcome of a finalize attempt.
type FinalizeResult struct {
	AuctionID string
	Outcome   FinalizeOutcome
	Detail    string
	Winner    string
	Price     decimal.Decimal
	SettledAt *time.Time
	// Replayed is true when the auction was already terminal and the result
	// was read back rather than produced by this call.
	Replayed bool
}

// RecordedResult rebuilds the outcome of a terminal auction.
func RecordedResult(a Auction) FinalizeResult {
	res := FinalizeResult{AuctionID: a.ID, Replayed: true, SettledAt: a.SettledAt}
	switch a.Status {
	case AuctionCompleted:
		res.Outcome = OutcomeCompleted
		if a.Winner != nil {
			res.Winner = *a.Winner
		}
		if a.FinalPrice != nil {
			res.Price = *a.FinalPrice
		}
		res.Detail = "auction already completed"
	case AuctionUnlisted:
		res.Outcome = OutcomeUnlisted
		res.Detail = "auction already unlisted"
	}
	return res
}
