package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"receivables/internal/domain"
)

// ClaimRepository reads claims. Claims are minted elsewhere; InsertClaim
// exists for seeding and tests.
type ClaimRepository interface {
	GetClaim(ctx context.Context, id string) (domain.Claim, error)
	InsertClaim(ctx context.Context, c domain.Claim) error
	// ListMaturedClaims returns owned claims with maturity_at <= asOf that
	// have no maturity payment yet.
	ListMaturedClaims(ctx context.Context, asOf time.Time, limit int) ([]domain.Claim, error)
}

// AuctionSettlement is the committed result of a successful candidate.
type AuctionSettlement struct {
	AuctionID string
	ClaimID   string
	BidID     string
	Winner    string
	Price     decimal.Decimal
	SettledAt time.Time
}

// AuctionRepository manages auctions. Terminal writes are compare-and-set on
// status=active and report false when another writer got there first.
type AuctionRepository interface {
	GetAuction(ctx context.Context, id string) (domain.Auction, error)
	// CreateAuction inserts the auction and moves its claim owned -> listed
	// with the given custodian as holder, in one transaction.
	CreateAuction(ctx context.Context, a domain.Auction, custodian string) error
	ListExpiredAuctions(ctx context.Context, asOf time.Time, limit int) ([]string, error)
	CompleteAuction(ctx context.Context, s AuctionSettlement) (bool, error)
	UnlistAuction(ctx context.Context, auctionID string, at time.Time) (bool, error)
}

// BidRepository is the storage half of the bid ledger.
type BidRepository interface {
	// PlaceBid validates and records a bid under the auction's row lock,
	// superseding the bidder's prior active bid and recomputing the auction's
	// current bid in the same transaction.
	PlaceBid(ctx context.Context, b domain.Bid, now time.Time) (placed domain.Bid, superseded *domain.Bid, err error)
	// ActiveBids returns active bids in settlement priority order.
	ActiveBids(ctx context.Context, auctionID string) ([]domain.Bid, error)
	// RejectBid moves an active bid to superseded with a reason and
	// recomputes the auction's current bid.
	RejectBid(ctx context.Context, bidID string, reason string, at time.Time) (bool, error)
}

// PaymentRepository manages maturity payments.
type PaymentRepository interface {
	// CreateMaturityPayment inserts a pending payment and moves the claim
	// owned -> matured. Returns false if the claim already has a payment.
	CreateMaturityPayment(ctx context.Context, p domain.MaturityPayment) (bool, error)
	GetPayment(ctx context.Context, id string) (domain.MaturityPayment, error)
	SetInstrument(ctx context.Context, id string, from, to domain.PaymentStatus, instrumentID, confirmation string, at time.Time) (bool, error)
	// MarkPaymentCashed moves the payment from -> cashed and its claim
	// matured -> redeemed.
	MarkPaymentCashed(ctx context.Context, id string, from domain.PaymentStatus, at time.Time) (bool, error)
	// MarkOverdue moves pending and created payments whose grace period has
	// elapsed at now (see MaturityPayment.DueBy) to overdue and returns
	// their ids.
	MarkOverdue(ctx context.Context, now time.Time, grace time.Duration) ([]string, error)
}

// Store is the full persistence surface used by the engines.
type Store interface {
	ClaimRepository
	AuctionRepository
	BidRepository
	PaymentRepository
}
