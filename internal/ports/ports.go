package ports

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"receivables/internal/domain"
)

type ListAuctionRequest struct {
	ClaimID   string
	Seller    string
	MinBid    decimal.Decimal
	ExpiresAt time.Time
	Custody   bool
}

type PlaceBidRequest struct {
	AuctionID    string
	Bidder       string
	Amount       decimal.Decimal
	InstrumentID string
	Confirmation string
}

// Auctions lists and settles auctions.
type Auctions interface {
	ListAuction(ctx context.Context, req ListAuctionRequest) (domain.Auction, error)
	FinalizeAuction(ctx context.Context, auctionID string) (domain.FinalizeResult, error)
	ProcessExpiredAuctions(ctx context.Context) (int, error)
}

// Bids places bids and reads the bid ledger.
type Bids interface {
	PlaceBid(ctx context.Context, req PlaceBidRequest) (domain.Bid, error)
	ActiveBids(ctx context.Context, auctionID string) ([]domain.Bid, error)
}

// Maturity drives debtor repayment.
type Maturity interface {
	ProcessMaturedClaims(ctx context.Context) (int, error)
	MarkOverduePayments(ctx context.Context) (int, error)
	RecordInstrumentCreated(ctx context.Context, paymentID, instrumentID, confirmation string) (domain.MaturityPayment, error)
	ConfirmInstrumentCashed(ctx context.Context, paymentID string) (domain.MaturityPayment, error)
}
