package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

// Runs against a disposable database:
// RECEIVABLES_INTEGRATION=1 DATABASE_URL=postgres://... go test ./internal/adapters/postgres
func testDB(t *testing.T) *DB {
	t.Helper()
	if os.Getenv("RECEIVABLES_INTEGRATION") != "1" {
		t.Skip("set RECEIVABLES_INTEGRATION=1 to run postgres integration tests")
	}
	url := os.Getenv("DATABASE_URL")
	require.NotEmpty(t, url, "DATABASE_URL")
	ctx := context.Background()
	db, err := Connect(ctx, url, 4)
	require.NoError(t, err)
	t.Cleanup(db.Close)
	require.NoError(t, db.Migrate(ctx))
	return db
}

func seedAuction(t *testing.T, db *DB, now time.Time) domain.Auction {
	t.Helper()
	ctx := context.Background()
	claimID := "claim-" + uuid.NewString()
	require.NoError(t, db.InsertClaim(ctx, domain.Claim{
		ID:         claimID,
		FaceValue:  decimal.NewFromInt(1000),
		MaturityAt: now.Add(24 * time.Hour),
		Creator:    "debtor",
		Holder:     "seller",
		Status:     domain.ClaimOwned,
	}))
	a := domain.Auction{
		ID:            uuid.NewString(),
		ClaimID:       claimID,
		FaceValue:     decimal.NewFromInt(1000),
		ExpiresAt:     now.Add(time.Hour),
		MinBid:        decimal.NewFromInt(100),
		CurrentBid:    decimal.NewFromInt(100),
		OriginalOwner: "seller",
		Status:        domain.AuctionActive,
		CreatedAt:     now,
	}
	require.NoError(t, db.CreateAuction(ctx, a, "seller"))
	return a
}

func TestPostgresBidsAndSettlement(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)
	a := seedAuction(t, db, now)

	c, err := db.GetClaim(ctx, a.ClaimID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimListed, c.Status)

	first, prior, err := db.PlaceBid(ctx, domain.Bid{AuctionID: a.ID, Bidder: "alice", Amount: decimal.NewFromInt(150), InstrumentID: "i1"}, now)
	require.NoError(t, err)
	assert.Nil(t, prior)

	_, _, err = db.PlaceBid(ctx, domain.Bid{AuctionID: a.ID, Bidder: "bob", Amount: decimal.NewFromInt(150), InstrumentID: "i2"}, now)
	require.ErrorIs(t, err, domain.ErrBidTooLow)

	second, prior, err := db.PlaceBid(ctx, domain.Bid{AuctionID: a.ID, Bidder: "alice", Amount: decimal.NewFromInt(175), InstrumentID: "i3"}, now.Add(time.Second))
	require.NoError(t, err)
	require.NotNil(t, prior)
	assert.Equal(t, first.ID, prior.ID)

	active, err := db.ActiveBids(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, active, 1)
	assert.Equal(t, second.ID, active[0].ID)

	got, err := db.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.CurrentBid.Equal(decimal.NewFromInt(175)))

	settle := ports.AuctionSettlement{AuctionID: a.ID, ClaimID: a.ClaimID, BidID: second.ID, Winner: "alice", Price: second.Amount, SettledAt: now.Add(2 * time.Hour)}
	ok, err := db.CompleteAuction(ctx, settle)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = db.CompleteAuction(ctx, settle)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err = db.GetAuction(ctx, a.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.AuctionCompleted, got.Status)
	require.NotNil(t, got.Winner)
	assert.Equal(t, "alice", *got.Winner)
	require.NotNil(t, got.FinalPrice)
	assert.True(t, got.FinalPrice.Equal(decimal.NewFromInt(175)))

	c, err = db.GetClaim(ctx, a.ClaimID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimOwned, c.Status)
	assert.Equal(t, "alice", c.Holder)
}

func TestPostgresUnlistAndNotFound(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	now := time.Now().UTC()
	a := seedAuction(t, db, now)

	ok, err := db.UnlistAuction(ctx, a.ID, now)
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = db.UnlistAuction(ctx, a.ID, now)
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = db.UnlistAuction(ctx, "missing-"+uuid.NewString(), now)
	require.ErrorIs(t, err, domain.ErrNotFound)
	_, err = db.GetAuction(ctx, "missing-"+uuid.NewString())
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestPostgresMaturityPayments(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	now := time.Now().UTC()
	claimID := "claim-" + uuid.NewString()
	require.NoError(t, db.InsertClaim(ctx, domain.Claim{
		ID: claimID, FaceValue: decimal.NewFromInt(500), MaturityAt: now.Add(-time.Hour),
		Creator: "debtor", Holder: "investor", Status: domain.ClaimOwned,
	}))

	p := domain.MaturityPayment{
		ID: uuid.NewString(), ClaimID: claimID, Debtor: "debtor", Creditor: "investor",
		Amount: decimal.NewFromInt(500), MaturityAt: now.Add(-time.Hour), Status: domain.PaymentPending,
		CreatedAt: now, UpdatedAt: now,
	}
	ok, err := db.CreateMaturityPayment(ctx, p)
	require.NoError(t, err)
	assert.True(t, ok)

	dup := p
	dup.ID = uuid.NewString()
	ok, err = db.CreateMaturityPayment(ctx, dup)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = db.SetInstrument(ctx, p.ID, domain.PaymentPending, domain.PaymentCreated, "inst-1", "conf", now)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.MarkPaymentCashed(ctx, p.ID, domain.PaymentCreated, now)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := db.GetPayment(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentCashed, got.Status)
	require.NotNil(t, got.InstrumentID)
	assert.Equal(t, "inst-1", *got.InstrumentID)

	c, err := db.GetClaim(ctx, claimID)
	require.NoError(t, err)
	assert.Equal(t, domain.ClaimRedeemed, c.Status)
}

func TestPostgresLeases(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	key := "auction/" + uuid.NewString()

	ok, err := db.AcquireLease(ctx, key, "n1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = db.AcquireLease(ctx, key, "n2", time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = db.AcquireLease(ctx, key, "n1", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, db.ReleaseLease(ctx, key, "n1"))
	ok, err = db.AcquireLease(ctx, key, "n2", time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}
