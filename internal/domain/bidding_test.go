package domain

import (
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

var base = time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

func genBids(t *rapid.T) []Bid {
	n := rapid.IntRange(0, 20).Draw(t, "n")
	bids := make([]Bid, n)
	for i := range bids {
		bids[i] = Bid{
			ID:        fmt.Sprintf("bid-%02d", i),
			Amount:    decimal.NewFromInt(rapid.Int64Range(1, 50).Draw(t, "amount")),
			CreatedAt: base.Add(time.Duration(rapid.IntRange(0, 10).Draw(t, "at")) * time.Second),
			Status:    BidActive,
		}
	}
	return bids
}

func TestProperty_SortBidsIsSettlementOrder(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		bids := genBids(t)
		SortBids(bids)
		for i := 1; i < len(bids); i++ {
			prev, cur := bids[i-1], bids[i]
			switch c := prev.Amount.Cmp(cur.Amount); {
			case c < 0:
				t.Fatalf("%s (%s) ranked above higher bid %s (%s)", prev.ID, prev.Amount, cur.ID, cur.Amount)
			case c == 0 && prev.CreatedAt.After(cur.CreatedAt):
				t.Fatalf("equal bids %s and %s not in arrival order", prev.ID, cur.ID)
			case c == 0 && prev.CreatedAt.Equal(cur.CreatedAt) && prev.ID > cur.ID:
				t.Fatalf("tie between %s and %s not broken by id", prev.ID, cur.ID)
			}
		}
	})
}

func TestProperty_LeadingBidIsMaxOrMinimum(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		minBid := decimal.NewFromInt(rapid.Int64Range(1, 50).Draw(t, "min"))
		bids := genBids(t)
		for i := range bids {
			if rapid.Bool().Draw(t, "superseded") {
				bids[i].Status = BidSuperseded
			}
		}
		lead := LeadingBid(minBid, bids)

		var active []Bid
		for _, b := range bids {
			if b.Status == BidActive {
				active = append(active, b)
			}
		}
		if len(active) == 0 {
			if !lead.Equal(minBid) {
				t.Fatalf("no active bids: got %s, want min %s", lead, minBid)
			}
			return
		}
		SortBids(active)
		if !lead.Equal(active[0].Amount) {
			t.Fatalf("got %s, want top active bid %s", lead, active[0].Amount)
		}
	})
}

func TestCheckBid(t *testing.T) {
	a := Auction{
		Status:     AuctionActive,
		MinBid:     decimal.NewFromInt(100),
		CurrentBid: decimal.NewFromInt(100),
		ExpiresAt:  base.Add(time.Hour),
	}
	now := base

	assert.NoError(t, CheckBid(a, false, decimal.NewFromInt(100), now), "first bid may equal the minimum")
	assert.ErrorIs(t, CheckBid(a, false, decimal.NewFromInt(99), now), ErrBidTooLow)

	a.CurrentBid = decimal.NewFromInt(150)
	assert.ErrorIs(t, CheckBid(a, true, decimal.NewFromInt(150), now), ErrBidTooLow)
	assert.NoError(t, CheckBid(a, true, decimal.NewFromInt(151), now))

	assert.ErrorIs(t, CheckBid(a, true, decimal.NewFromInt(500), a.ExpiresAt), ErrAuctionClosed, "expiry instant is closed")

	a.Status = AuctionCompleted
	assert.ErrorIs(t, CheckBid(a, true, decimal.NewFromInt(500), now), ErrAuctionClosed)
}

func TestRecordedResult(t *testing.T) {
	winner := "alice"
	price := decimal.NewFromInt(900)
	at := base
	res := RecordedResult(Auction{ID: "a1", Status: AuctionCompleted, Winner: &winner, FinalPrice: &price, SettledAt: &at})
	assert.Equal(t, OutcomeCompleted, res.Outcome)
	assert.Equal(t, "alice", res.Winner)
	assert.True(t, res.Price.Equal(price))
	assert.True(t, res.Replayed)

	res = RecordedResult(Auction{ID: "a2", Status: AuctionUnlisted})
	assert.Equal(t, OutcomeUnlisted, res.Outcome)
	assert.Empty(t, res.Winner)
}

func TestPaymentDueBy(t *testing.T) {
	p := MaturityPayment{MaturityAt: base}
	assert.False(t, p.DueBy(base.Add(47*time.Hour), 48*time.Hour))
	assert.True(t, p.DueBy(base.Add(48*time.Hour), 48*time.Hour))
}
