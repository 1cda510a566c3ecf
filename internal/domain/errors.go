package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrConflict          = errors.New("concurrent modification")
	ErrAuctionClosed     = errors.New("auction is not accepting bids")
	ErrBidTooLow         = errors.New("bid below current price")
	ErrInsufficientFunds = errors.New("insufficient balance")

	// ErrIndeterminate marks a ledger call whose outcome is unknown (timeout,
	// transport failure, 5xx). Callers must reconcile before committing.
	ErrIndeterminate = errors.New("ledger outcome indeterminate")
	// ErrRejected marks a ledger call the ledger confirmed as failed.
	ErrRejected = errors.New("ledger rejected operation")
)
