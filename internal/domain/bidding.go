package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// SortBids orders bids by settlement priority: highest amount first, then
// earliest creation, then id so the order is total.
func SortBids(bids []Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		if c := bids[i].Amount.Cmp(bids[j].Amount); c != 0 {
			return c > 0
		}
		if !bids[i].CreatedAt.Equal(bids[j].CreatedAt) {
			return bids[i].CreatedAt.Before(bids[j].CreatedAt)
		}
		return bids[i].ID < bids[j].ID
	})
}

// LeadingBid is the max active bid amount, or minBid when none are active.
func LeadingBid(minBid decimal.Decimal, bids []Bid) decimal.Decimal {
	lead := minBid
	found := false
	for _, b := range bids {
		if b.Status != BidActive {
			continue
		}
		if !found || b.Amount.GreaterThan(lead) {
			lead = b.Amount
			found = true
		}
	}
	return lead
}

// CheckBid validates a new bid against the auction as read under lock.
func CheckBid(a Auction, hasActive bool, amount decimal.Decimal, now time.Time) error {
	if a.Status != AuctionActive || a.Expired(now) {
		return ErrAuctionClosed
	}
	if amount.LessThan(a.MinBid) {
		return ErrBidTooLow
	}
	if hasActive && !amount.GreaterThan(a.CurrentBid) {
		return ErrBidTooLow
	}
	return nil
}
