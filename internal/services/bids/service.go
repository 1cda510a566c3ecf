package bids

import (
	"context"
	"errors"
	"fmt"
	"strings"

	logging "github.com/ipfs/go-log/v2"
	"github.com/jonboulle/clockwork"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

var log = logging.Logger("bids")

var ErrInvalidBid = errors.New("invalid bid")

// Service is the bid ledger: it records bids and exposes them in settlement
// priority order.
type Service struct {
	bids     ports.BidRepository
	ledger   ports.LedgerGateway
	clock    clockwork.Clock
	currency string
}

func New(bids ports.BidRepository, ledger ports.LedgerGateway, clock clockwork.Clock, currency string) *Service {
	return &Service{bids: bids, ledger: ledger, clock: clock, currency: currency}
}

// PlaceBid checks the bidder's balance and instrument, then records the bid.
// A prior active bid from the same bidder is superseded and its instrument
// cancelled on a best-effort basis.
func (s *Service) PlaceBid(ctx context.Context, req ports.PlaceBidRequest) (domain.Bid, error) {
	if strings.TrimSpace(req.Bidder) == "" || strings.TrimSpace(req.InstrumentID) == "" {
		return domain.Bid{}, fmt.Errorf("%w: bidder and instrument are required", ErrInvalidBid)
	}
	if !req.Amount.IsPositive() {
		return domain.Bid{}, fmt.Errorf("%w: amount must be positive", ErrInvalidBid)
	}

	state, err := s.ledger.InstrumentStatus(ctx, req.InstrumentID)
	if err != nil {
		return domain.Bid{}, fmt.Errorf("check instrument: %w", err)
	}
	if state != ports.InstrumentOpen {
		return domain.Bid{}, fmt.Errorf("%w: instrument %s is %s", ErrInvalidBid, req.InstrumentID, state)
	}
	bal, err := s.ledger.Balance(ctx, req.Bidder, s.currency)
	if err != nil {
		return domain.Bid{}, fmt.Errorf("check balance: %w", err)
	}
	if bal.LessThan(req.Amount) {
		return domain.Bid{}, domain.ErrInsufficientFunds
	}

	placed, superseded, err := s.bids.PlaceBid(ctx, domain.Bid{
		AuctionID:    req.AuctionID,
		Bidder:       req.Bidder,
		Amount:       req.Amount,
		InstrumentID: req.InstrumentID,
		Confirmation: req.Confirmation,
	}, s.clock.Now())
	if err != nil {
		return domain.Bid{}, err
	}
	log.Infow("bid placed", "auction", placed.AuctionID, "bid", placed.ID, "bidder", placed.Bidder, "amount", placed.Amount.String())

	if superseded != nil && superseded.InstrumentID != "" && superseded.InstrumentID != placed.InstrumentID {
		if _, err := s.ledger.CancelInstrument(ctx, superseded.InstrumentID); err != nil {
			log.Warnw("cancel superseded instrument", "bid", superseded.ID, "instrument", superseded.InstrumentID, "err", err)
		}
	}
	return placed, nil
}

func (s *Service) ActiveBids(ctx context.Context, auctionID string) ([]domain.Bid, error) {
	return s.bids.ActiveBids(ctx, auctionID)
}
