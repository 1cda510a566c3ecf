package ledger

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/shopspring/decimal"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

var log = logging.Logger("ledger")

type Op string

const (
	OpBalance  Op = "balance"
	OpCreate   Op = "create"
	OpCash     Op = "cash"
	OpCancel   Op = "cancel"
	OpTransfer Op = "transfer"
	OpStatus   Op = "status"
	OpOwner    Op = "owner"
)

// Fault is a one-shot failure injected into the memory ledger. When Applied
// is set the operation takes effect before Err is returned, which models a
// timeout on a call the ledger actually executed.
type Fault struct {
	Err     error
	Applied bool
}

type instrument struct {
	from, to string
	amount   decimal.Decimal
	state    ports.InstrumentState
}

// Memory is an in-process ledger implementing ports.LedgerGateway for
// development and tests. It keeps balances in a single settlement currency.
type Memory struct {
	mu          sync.Mutex
	balances    map[string]decimal.Decimal
	instruments map[string]*instrument
	owners      map[string]string
	faults      map[string][]Fault
	calls       map[string]int
}

var _ ports.LedgerGateway = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{
		balances:    map[string]decimal.Decimal{},
		instruments: map[string]*instrument{},
		owners:      map[string]string{},
		faults:      map[string][]Fault{},
		calls:       map[string]int{},
	}
}

func faultKey(op Op, key string) string { return string(op) + ":" + key }

// SetBalance sets an account's settlement-currency balance.
func (m *Memory) SetBalance(account string, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.balances[account] = amount
}

// SetOwner records the current owner of an asset.
func (m *Memory) SetOwner(assetID, owner string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.owners[assetID] = owner
}

// InjectFault queues a one-shot fault for op against key (account,
// instrument or asset id).
func (m *Memory) InjectFault(op Op, key string, f Fault) {
	m.mu.Lock()
	defer m.mu.Unlock()
	k := faultKey(op, key)
	m.faults[k] = append(m.faults[k], f)
}

// Calls reports how many times op was invoked against key.
func (m *Memory) Calls(op Op, key string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[faultKey(op, key)]
}

func (m *Memory) State(instrumentID string) ports.InstrumentState {
	m.mu.Lock()
	defer m.mu.Unlock()
	if in, ok := m.instruments[instrumentID]; ok {
		return in.state
	}
	return ports.InstrumentUnknown
}

func (m *Memory) BalanceOf(account string) decimal.Decimal {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.balances[account]
}

// enter records the call and pops a pending fault. Must hold mu.
func (m *Memory) enter(op Op, key string) (Fault, bool) {
	k := faultKey(op, key)
	m.calls[k]++
	q := m.faults[k]
	if len(q) == 0 {
		return Fault{}, false
	}
	m.faults[k] = q[1:]
	return q[0], true
}

func (m *Memory) Balance(ctx context.Context, account, currency string) (decimal.Decimal, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.enter(OpBalance, account); ok {
		return decimal.Zero, f.Err
	}
	return m.balances[account], nil
}

func (m *Memory) CreateInstrument(ctx context.Context, from, to string, amount decimal.Decimal) (ports.Instrument, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, faulted := m.enter(OpCreate, from)
	if faulted && !f.Applied {
		return ports.Instrument{}, f.Err
	}
	id := "inst_" + uuid.NewString()
	m.instruments[id] = &instrument{from: from, to: to, amount: amount, state: ports.InstrumentOpen}
	if faulted {
		return ports.Instrument{}, f.Err
	}
	return ports.Instrument{ID: id, Confirmation: confirmation("create", id)}, nil
}

// AddInstrument registers an open instrument under a caller-chosen id.
func (m *Memory) AddInstrument(id, from, to string, amount decimal.Decimal) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.instruments[id] = &instrument{from: from, to: to, amount: amount, state: ports.InstrumentOpen}
}

func (m *Memory) CashInstrument(ctx context.Context, instrumentID string, amount decimal.Decimal) (ports.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, faulted := m.enter(OpCash, instrumentID)
	if faulted && !f.Applied {
		return ports.Receipt{}, f.Err
	}
	in, ok := m.instruments[instrumentID]
	if !ok {
		return ports.Receipt{}, fmt.Errorf("%w: instrument %s not found", domain.ErrRejected, instrumentID)
	}
	if in.state != ports.InstrumentOpen {
		return ports.Receipt{}, fmt.Errorf("%w: instrument %s is %s", domain.ErrRejected, instrumentID, in.state)
	}
	if amount.GreaterThan(in.amount) {
		return ports.Receipt{}, fmt.Errorf("%w: amount exceeds instrument", domain.ErrRejected)
	}
	if m.balances[in.from].LessThan(amount) {
		return ports.Receipt{}, fmt.Errorf("%w: %v", domain.ErrRejected, domain.ErrInsufficientFunds)
	}
	m.balances[in.from] = m.balances[in.from].Sub(amount)
	m.balances[in.to] = m.balances[in.to].Add(amount)
	in.state = ports.InstrumentCashed
	log.Debugw("instrument cashed", "instrument", instrumentID, "amount", amount.String())
	if faulted {
		return ports.Receipt{}, f.Err
	}
	return ports.Receipt{Confirmation: confirmation("cash", instrumentID)}, nil
}

func (m *Memory) CancelInstrument(ctx context.Context, instrumentID string) (ports.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, faulted := m.enter(OpCancel, instrumentID)
	if faulted && !f.Applied {
		return ports.Receipt{}, f.Err
	}
	in, ok := m.instruments[instrumentID]
	if !ok {
		return ports.Receipt{}, fmt.Errorf("%w: instrument %s not found", domain.ErrRejected, instrumentID)
	}
	if in.state != ports.InstrumentOpen {
		return ports.Receipt{}, fmt.Errorf("%w: instrument %s is %s", domain.ErrRejected, instrumentID, in.state)
	}
	in.state = ports.InstrumentCancelled
	if faulted {
		return ports.Receipt{}, f.Err
	}
	return ports.Receipt{Confirmation: confirmation("cancel", instrumentID)}, nil
}

func (m *Memory) TransferOwnership(ctx context.Context, assetID, from, to string) (ports.Receipt, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	f, faulted := m.enter(OpTransfer, assetID)
	if faulted && !f.Applied {
		return ports.Receipt{}, f.Err
	}
	if owner := m.owners[assetID]; owner != from {
		return ports.Receipt{}, fmt.Errorf("%w: asset %s owned by %q, not %q", domain.ErrRejected, assetID, owner, from)
	}
	m.owners[assetID] = to
	log.Debugw("asset transferred", "asset", assetID, "from", from, "to", to)
	if faulted {
		return ports.Receipt{}, f.Err
	}
	return ports.Receipt{Confirmation: confirmation("transfer", assetID+to)}, nil
}

func (m *Memory) InstrumentStatus(ctx context.Context, instrumentID string) (ports.InstrumentState, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.enter(OpStatus, instrumentID); ok {
		return ports.InstrumentUnknown, f.Err
	}
	in, ok := m.instruments[instrumentID]
	if !ok {
		return ports.InstrumentUnknown, nil
	}
	return in.state, nil
}

func (m *Memory) OwnerOf(ctx context.Context, assetID string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f, ok := m.enter(OpOwner, assetID); ok {
		return "", f.Err
	}
	owner, ok := m.owners[assetID]
	if !ok {
		return "", fmt.Errorf("%w: asset %s not found", domain.ErrRejected, assetID)
	}
	return owner, nil
}

func confirmation(kind, id string) string {
	sum := sha256.Sum256([]byte(kind + ":" + id))
	return hex.EncodeToString(sum[:])
}
