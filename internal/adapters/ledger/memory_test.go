package ledger

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

func TestMemoryCashMovesFunds(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SetBalance("alice", decimal.NewFromInt(100))

	in, err := m.CreateInstrument(ctx, "alice", "seller", decimal.NewFromInt(60))
	require.NoError(t, err)
	assert.NotEmpty(t, in.Confirmation)

	_, err = m.CashInstrument(ctx, in.ID, decimal.NewFromInt(60))
	require.NoError(t, err)
	assert.Equal(t, ports.InstrumentCashed, m.State(in.ID))
	assert.True(t, m.BalanceOf("alice").Equal(decimal.NewFromInt(40)))
	assert.True(t, m.BalanceOf("seller").Equal(decimal.NewFromInt(60)))

	_, err = m.CashInstrument(ctx, in.ID, decimal.NewFromInt(60))
	require.ErrorIs(t, err, domain.ErrRejected, "an instrument cashes once")
	_, err = m.CancelInstrument(ctx, in.ID)
	require.ErrorIs(t, err, domain.ErrRejected)
}

func TestMemoryCashWithoutFunds(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.AddInstrument("inst-1", "alice", "seller", decimal.NewFromInt(60))

	_, err := m.CashInstrument(ctx, "inst-1", decimal.NewFromInt(60))
	require.ErrorIs(t, err, domain.ErrRejected)
	assert.Equal(t, ports.InstrumentOpen, m.State("inst-1"))
}

func TestMemoryTransferChecksOwner(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SetOwner("claim-1", "seller")

	_, err := m.TransferOwnership(ctx, "claim-1", "mallory", "bob")
	require.ErrorIs(t, err, domain.ErrRejected)

	_, err = m.TransferOwnership(ctx, "claim-1", "seller", "bob")
	require.NoError(t, err)
	owner, err := m.OwnerOf(ctx, "claim-1")
	require.NoError(t, err)
	assert.Equal(t, "bob", owner)

	_, err = m.OwnerOf(ctx, "claim-9")
	require.ErrorIs(t, err, domain.ErrRejected)
}

func TestMemoryFaults(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()
	m.SetOwner("claim-1", "seller")
	m.InjectFault(OpTransfer, "claim-1", Fault{Err: domain.ErrIndeterminate, Applied: true})
	m.InjectFault(OpTransfer, "claim-1", Fault{Err: domain.ErrIndeterminate})

	_, err := m.TransferOwnership(ctx, "claim-1", "seller", "bob")
	require.ErrorIs(t, err, domain.ErrIndeterminate)
	owner, _ := m.OwnerOf(ctx, "claim-1")
	assert.Equal(t, "bob", owner, "applied fault still executes")

	_, err = m.TransferOwnership(ctx, "claim-1", "bob", "carol")
	require.ErrorIs(t, err, domain.ErrIndeterminate)
	owner, _ = m.OwnerOf(ctx, "claim-1")
	assert.Equal(t, "bob", owner, "unapplied fault does nothing")

	_, err = m.TransferOwnership(ctx, "claim-1", "bob", "carol")
	require.NoError(t, err, "faults are one-shot")
	assert.Equal(t, 3, m.Calls(OpTransfer, "claim-1"))
}
