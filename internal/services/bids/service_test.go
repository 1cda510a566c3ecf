package bids

import (
	"context"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receivables/internal/adapters/ledger"
	"receivables/internal/adapters/memory"
	"receivables/internal/domain"
	"receivables/internal/ports"
)

var t0 = time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)

func setup(t *testing.T) (*Service, *memory.Store, *ledger.Memory) {
	t.Helper()
	clock := clockwork.NewFakeClockAt(t0)
	store := memory.New(clock.Now)
	lg := ledger.NewMemory()
	ctx := context.Background()
	require.NoError(t, store.InsertClaim(ctx, domain.Claim{ID: "c1", Holder: "seller", Status: domain.ClaimOwned}))
	require.NoError(t, store.CreateAuction(ctx, domain.Auction{
		ID:            "a1",
		ClaimID:       "c1",
		MinBid:        decimal.NewFromInt(100),
		CurrentBid:    decimal.NewFromInt(100),
		ExpiresAt:     t0.Add(time.Hour),
		OriginalOwner: "seller",
		Status:        domain.AuctionActive,
	}, "seller"))
	return New(store, lg, clock, "USD"), store, lg
}

func req(bidder, amount, inst string) ports.PlaceBidRequest {
	return ports.PlaceBidRequest{AuctionID: "a1", Bidder: bidder, Amount: decimal.RequireFromString(amount), InstrumentID: inst}
}

func TestPlaceBid(t *testing.T) {
	svc, _, lg := setup(t)
	lg.SetBalance("alice", decimal.NewFromInt(500))
	lg.AddInstrument("i1", "alice", "seller", decimal.NewFromInt(150))

	b, err := svc.PlaceBid(context.Background(), req("alice", "150", "i1"))
	require.NoError(t, err)
	assert.Equal(t, domain.BidActive, b.Status)
	assert.Equal(t, t0, b.CreatedAt)

	active, err := svc.ActiveBids(context.Background(), "a1")
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, b.ID, active[0].ID)
}

func TestPlaceBidChecksLedger(t *testing.T) {
	svc, _, lg := setup(t)
	ctx := context.Background()
	lg.SetBalance("alice", decimal.NewFromInt(100))
	lg.AddInstrument("i1", "alice", "seller", decimal.NewFromInt(150))

	_, err := svc.PlaceBid(ctx, req("alice", "150", "i1"))
	require.ErrorIs(t, err, domain.ErrInsufficientFunds)

	_, err = svc.PlaceBid(ctx, req("alice", "150", "missing"))
	require.ErrorIs(t, err, ErrInvalidBid)

	_, err = svc.PlaceBid(ctx, req("", "150", "i1"))
	require.ErrorIs(t, err, ErrInvalidBid)

	_, err = svc.PlaceBid(ctx, req("alice", "-1", "i1"))
	require.ErrorIs(t, err, ErrInvalidBid)
}

func TestRebidCancelsPreviousInstrument(t *testing.T) {
	svc, store, lg := setup(t)
	ctx := context.Background()
	lg.SetBalance("alice", decimal.NewFromInt(1000))
	lg.AddInstrument("i1", "alice", "seller", decimal.NewFromInt(150))
	lg.AddInstrument("i2", "alice", "seller", decimal.NewFromInt(200))

	first, err := svc.PlaceBid(ctx, req("alice", "150", "i1"))
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, req("alice", "200", "i2"))
	require.NoError(t, err)

	old, ok := store.Bid(first.ID)
	require.True(t, ok)
	assert.Equal(t, domain.BidSuperseded, old.Status)
	assert.Equal(t, ports.InstrumentCancelled, lg.State("i1"))
	assert.Equal(t, ports.InstrumentOpen, lg.State("i2"))

	a, err := store.GetAuction(ctx, "a1")
	require.NoError(t, err)
	assert.True(t, a.CurrentBid.Equal(decimal.NewFromInt(200)))
}

func TestBidMustBeatCurrent(t *testing.T) {
	svc, _, lg := setup(t)
	ctx := context.Background()
	for _, who := range []string{"alice", "bob"} {
		lg.SetBalance(who, decimal.NewFromInt(1000))
		lg.AddInstrument("i-"+who, who, "seller", decimal.NewFromInt(1000))
	}
	_, err := svc.PlaceBid(ctx, req("alice", "300", "i-alice"))
	require.NoError(t, err)
	_, err = svc.PlaceBid(ctx, req("bob", "300", "i-bob"))
	require.ErrorIs(t, err, domain.ErrBidTooLow)
	_, err = svc.PlaceBid(ctx, req("bob", "99", "i-bob"))
	require.ErrorIs(t, err, domain.ErrBidTooLow)
}
