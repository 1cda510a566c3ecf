package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Core domain models used internally. API types are generated from OpenAPI and
// sit in internal/api; keep these decoupled where helpful.

type ClaimStatus string

const (
	ClaimMinting  ClaimStatus = "minting"
	ClaimIssued   ClaimStatus = "issued"
	ClaimOwned    ClaimStatus = "owned"
	ClaimListed   ClaimStatus = "listed"
	ClaimMatured  ClaimStatus = "matured"
	ClaimRedeemed ClaimStatus = "redeemed"
	ClaimFailed   ClaimStatus = "failed"
)

// Claim is a tokenized receivable. Creator is the debtor; Holder is whoever
// currently owns the token on the ledger.
type Claim struct {
	ID         string
	FaceValue  decimal.Decimal
	MaturityAt time.Time
	Creator    string
	Holder     string
	Status     ClaimStatus
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type AuctionStatus string

const (
	AuctionActive    AuctionStatus = "active"
	AuctionCompleted AuctionStatus = "completed"
	AuctionUnlisted  AuctionStatus = "unlisted"
)

func (s AuctionStatus) Terminal() bool {
	return s == AuctionCompleted || s == AuctionUnlisted
}

type Auction struct {
	ID            string
	ClaimID       string
	FaceValue     decimal.Decimal
	ExpiresAt     time.Time
	MinBid        decimal.Decimal
	CurrentBid    decimal.Decimal
	OriginalOwner string
	Custody       bool // platform escrows the claim while active
	Status        AuctionStatus
	Winner        *string
	FinalPrice    *decimal.Decimal
	CreatedAt     time.Time
	SettledAt     *time.Time
}

// Expired reports whether the auction may leave the active state at now.
func (a Auction) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

type BidStatus string

const (
	BidActive     BidStatus = "active"
	BidSuperseded BidStatus = "superseded"
	BidCashed     BidStatus = "cashed"
)

// Reasons recorded on superseded bids.
const (
	ReasonRebid               = "rebid"
	ReasonInsufficientBalance = "insufficient_balance"
	ReasonInstrumentFailure   = "instrument_failure"
	ReasonTransferFailure     = "transfer_failure"
)

// Bid is an offer backed by a payment instrument the bidder created on the
// ledger before bidding.
type Bid struct {
	ID           string
	AuctionID    string
	Bidder       string
	Amount       decimal.Decimal
	InstrumentID string
	Confirmation string
	Status       BidStatus
	Reason       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
	PaymentCreated PaymentStatus = "created"
	PaymentCashed  PaymentStatus = "cashed"
	PaymentOverdue PaymentStatus = "overdue"
)

// MaturityPayment is the debtor's repayment obligation for a matured claim.
type MaturityPayment struct {
	ID           string
	ClaimID      string
	Debtor       string
	Creditor     string
	Amount       decimal.Decimal
	MaturityAt   time.Time
	Status       PaymentStatus
	InstrumentID *string
	Confirmation *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// DueBy reports whether the grace period after maturity has fully elapsed.
func (p MaturityPayment) DueBy(now time.Time, grace time.Duration) bool {
	return !now.Before(p.MaturityAt.Add(grace))
}
