package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

var t0 = time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)

func seeded(t require.TestingT) (*Store, domain.Auction) {
	s := New(func() time.Time { return t0 })
	ctx := context.Background()
	require.NoError(t, s.InsertClaim(ctx, domain.Claim{ID: "c1", FaceValue: decimal.NewFromInt(1000), MaturityAt: t0.Add(24 * time.Hour), Holder: "seller", Status: domain.ClaimOwned}))
	a := domain.Auction{
		ID:            "a1",
		ClaimID:       "c1",
		MinBid:        decimal.NewFromInt(10),
		CurrentBid:    decimal.NewFromInt(10),
		ExpiresAt:     t0.Add(time.Hour),
		OriginalOwner: "seller",
		Status:        domain.AuctionActive,
		CreatedAt:     t0,
	}
	require.NoError(t, s.CreateAuction(ctx, a, "seller"))
	return s, a
}

func TestProperty_CurrentBidTracksActiveBids(t *testing.T) {
	bidders := []string{"alice", "bob", "carol", "dave"}
	rapid.Check(t, func(t *rapid.T) {
		s, a := seeded(t)
		ctx := context.Background()
		var placed []string
		steps := rapid.IntRange(1, 30).Draw(t, "steps")
		for i := 0; i < steps; i++ {
			now := t0.Add(time.Duration(i) * time.Second)
			if len(placed) > 0 && rapid.IntRange(0, 3).Draw(t, "op") == 0 {
				id := rapid.SampledFrom(placed).Draw(t, "reject")
				if _, err := s.RejectBid(ctx, id, domain.ReasonInsufficientBalance, now); err != nil {
					t.Fatalf("reject: %v", err)
				}
			} else {
				b, _, err := s.PlaceBid(ctx, domain.Bid{
					AuctionID: a.ID,
					Bidder:    rapid.SampledFrom(bidders).Draw(t, "bidder"),
					Amount:    decimal.NewFromInt(rapid.Int64Range(1, 100).Draw(t, "amount")),
				}, now)
				if err == nil {
					placed = append(placed, b.ID)
				}
			}

			cur, err := s.GetAuction(ctx, a.ID)
			if err != nil {
				t.Fatal(err)
			}
			active, _ := s.ActiveBids(ctx, a.ID)
			if want := domain.LeadingBid(cur.MinBid, active); !cur.CurrentBid.Equal(want) {
				t.Fatalf("current bid %s, leading active bid %s", cur.CurrentBid, want)
			}
			seen := map[string]bool{}
			for _, b := range active {
				if seen[b.Bidder] {
					t.Fatalf("bidder %s has two active bids", b.Bidder)
				}
				seen[b.Bidder] = true
			}
		}
	})
}

func TestPlaceBidSupersedesOwnBid(t *testing.T) {
	s, a := seeded(t)
	ctx := context.Background()

	first, prior, err := s.PlaceBid(ctx, domain.Bid{AuctionID: a.ID, Bidder: "alice", Amount: decimal.NewFromInt(20), InstrumentID: "i1"}, t0)
	require.NoError(t, err)
	assert.Nil(t, prior)

	_, err = placeAmount(s, "bob", 20)
	require.ErrorIs(t, err, domain.ErrBidTooLow, "must beat the current bid")

	second, prior, err := s.PlaceBid(ctx, domain.Bid{AuctionID: a.ID, Bidder: "alice", Amount: decimal.NewFromInt(30), InstrumentID: "i2"}, t0.Add(time.Second))
	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, first.ID, prior.ID)

	old, _ := s.Bid(first.ID)
	assert.Equal(t, domain.BidSuperseded, old.Status)
	assert.Equal(t, domain.ReasonRebid, old.Reason)

	active, err := s.ActiveBids(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)
}

func placeAmount(s *Store, bidder string, amount int64) (domain.Bid, error) {
	b, _, err := s.PlaceBid(context.Background(), domain.Bid{AuctionID: "a1", Bidder: bidder, Amount: decimal.NewFromInt(amount)}, t0)
	return b, err
}

func TestPlaceBidAfterExpiry(t *testing.T) {
	s, a := seeded(t)
	_, _, err := s.PlaceBid(context.Background(), domain.Bid{AuctionID: a.ID, Bidder: "alice", Amount: decimal.NewFromInt(50)}, a.ExpiresAt)
	require.ErrorIs(t, err, domain.ErrAuctionClosed)
}

func TestTerminalWritesAreCompareAndSet(t *testing.T) {
	s, a := seeded(t)
	ctx := context.Background()
	b, err := placeAmount(s, "alice", 50)
	require.NoError(t, err)

	settle := ports.AuctionSettlement{AuctionID: a.ID, ClaimID: a.ClaimID, BidID: b.ID, Winner: "alice", Price: b.Amount, SettledAt: t0.Add(2 * time.Hour)}
	ok, err := s.CompleteAuction(ctx, settle)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.CompleteAuction(ctx, settle)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = s.UnlistAuction(ctx, a.ID, t0.Add(3*time.Hour))
	require.NoError(t, err)
	assert.False(t, ok, "completed auctions cannot be unlisted")

	c, err := s.GetClaim(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, "alice", c.Holder)
	assert.Equal(t, domain.ClaimOwned, c.Status)
}

func TestCreateAuctionRequiresOwnedClaim(t *testing.T) {
	s, a := seeded(t)
	a.ID = "a2"
	err := s.CreateAuction(context.Background(), a, "seller")
	require.ErrorIs(t, err, domain.ErrInvalidTransition, "claim is already listed")
}

func TestListExpiredAuctionsOrdersByExpiry(t *testing.T) {
	s, _ := seeded(t)
	ctx := context.Background()
	require.NoError(t, s.InsertClaim(ctx, domain.Claim{ID: "c2", Holder: "seller", Status: domain.ClaimOwned}))
	require.NoError(t, s.CreateAuction(ctx, domain.Auction{ID: "a0", ClaimID: "c2", OriginalOwner: "seller", Status: domain.AuctionActive, ExpiresAt: t0.Add(30 * time.Minute)}, "seller"))

	ids, err := s.ListExpiredAuctions(ctx, t0.Add(45*time.Minute), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a0"}, ids)

	ids, err = s.ListExpiredAuctions(ctx, t0.Add(2*time.Hour), 10)
	require.NoError(t, err)
	assert.Equal(t, []string{"a0", "a1"}, ids)

	ids, err = s.ListExpiredAuctions(ctx, t0.Add(2*time.Hour), 1)
	require.NoError(t, err)
	assert.Equal(t, []string{"a0"}, ids)
}

func TestLeases(t *testing.T) {
	now := t0
	s := New(func() time.Time { return now })
	ctx := context.Background()

	ok, err := s.AcquireLease(ctx, "auction/a1", "n1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, _ = s.AcquireLease(ctx, "auction/a1", "n2", time.Minute)
	assert.False(t, ok)

	ok, _ = s.AcquireLease(ctx, "auction/a1", "n1", time.Minute)
	assert.True(t, ok, "holder may renew")

	require.NoError(t, s.ReleaseLease(ctx, "auction/a1", "n2"))
	ok, _ = s.AcquireLease(ctx, "auction/a1", "n2", time.Minute)
	assert.False(t, ok, "release by a non-holder is ignored")

	now = now.Add(2 * time.Minute)
	ok, _ = s.AcquireLease(ctx, "auction/a1", "n2", time.Minute)
	assert.True(t, ok, "expired lease can be taken")
}

func TestMarkOverdueWaitsForFullGrace(t *testing.T) {
	ctx := context.Background()
	s := New(func() time.Time { return t0 })
	require.NoError(t, s.InsertClaim(ctx, domain.Claim{ID: "c2", FaceValue: decimal.NewFromInt(500), MaturityAt: t0, Creator: "debtor", Holder: "investor", Status: domain.ClaimOwned}))
	ok, err := s.CreateMaturityPayment(ctx, domain.MaturityPayment{
		ID: "p-pending", ClaimID: "c2", Debtor: "debtor", Creditor: "investor",
		Amount: decimal.NewFromInt(500), MaturityAt: t0, Status: domain.PaymentPending,
	})
	require.NoError(t, err)
	require.True(t, ok)
	grace := 48 * time.Hour

	ids, err := s.MarkOverdue(ctx, t0.Add(grace-time.Second), grace)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = s.MarkOverdue(ctx, t0.Add(grace), grace)
	require.NoError(t, err)
	assert.Equal(t, []string{"p-pending"}, ids)

	p, err := s.GetPayment(ctx, "p-pending")
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentOverdue, p.Status)
	assert.True(t, p.DueBy(t0.Add(grace), grace))
}
