package maturity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/jonboulle/clockwork"
	"github.com/sethvargo/go-retry"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

var log = logging.Logger("maturity")

// DefaultGracePeriod is measured from the maturity timestamp.
const DefaultGracePeriod = 7 * 24 * time.Hour

type Repository interface {
	ports.ClaimRepository
	ports.PaymentRepository
}

type Config struct {
	GracePeriod       time.Duration
	BatchSize         int
	ReconcileAttempts int
	ReconcileDelay    time.Duration
}

type Service struct {
	repo   Repository
	ledger ports.LedgerGateway
	events ports.EventPublisher
	clock  clockwork.Clock
	cfg    Config
}

func New(repo Repository, ledger ports.LedgerGateway, events ports.EventPublisher, clock clockwork.Clock, cfg Config) *Service {
	if cfg.GracePeriod <= 0 {
		cfg.GracePeriod = DefaultGracePeriod
	}
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 100
	}
	if cfg.ReconcileAttempts <= 0 {
		cfg.ReconcileAttempts = 3
	}
	if cfg.ReconcileDelay <= 0 {
		cfg.ReconcileDelay = 500 * time.Millisecond
	}
	if events == nil {
		events = ports.NopPublisher{}
	}
	return &Service{repo: repo, ledger: ledger, events: events, clock: clock, cfg: cfg}
}

// ProcessMaturedClaims opens a pending payment for every owned claim past
// maturity. Claims that already have a payment are skipped by the store.
func (s *Service) ProcessMaturedClaims(ctx context.Context) (int, error) {
	now := s.clock.Now()
	claims, err := s.repo.ListMaturedClaims(ctx, now, s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("list matured claims: %w", err)
	}
	created := 0
	for _, c := range claims {
		p := domain.MaturityPayment{
			ID:         uuid.NewString(),
			ClaimID:    c.ID,
			Debtor:     c.Creator,
			Creditor:   c.Holder,
			Amount:     c.FaceValue,
			MaturityAt: c.MaturityAt,
			Status:     domain.PaymentPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}
		ok, err := s.repo.CreateMaturityPayment(ctx, p)
		if err != nil {
			return created, fmt.Errorf("create payment for claim %s: %w", c.ID, err)
		}
		if !ok {
			continue
		}
		created++
		log.Infow("maturity payment created", "payment", p.ID, "claim", c.ID, "debtor", p.Debtor, "creditor", p.Creditor, "amount", p.Amount.String())
		s.emit(ctx, ports.EventMaturityCreated, p.ID, map[string]any{
			"claim_id": c.ID,
			"debtor":   p.Debtor,
			"creditor": p.Creditor,
			"amount":   p.Amount.String(),
		})
	}
	return created, nil
}

// RecordInstrumentCreated attaches the debtor's payment instrument. On an
// overdue payment the instrument is recorded but the status stays overdue.
func (s *Service) RecordInstrumentCreated(ctx context.Context, paymentID, instrumentID, confirmation string) (domain.MaturityPayment, error) {
	if strings.TrimSpace(instrumentID) == "" {
		return domain.MaturityPayment{}, fmt.Errorf("%w: instrument id required", domain.ErrInvalidTransition)
	}
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return domain.MaturityPayment{}, err
	}

	var to domain.PaymentStatus
	switch p.Status {
	case domain.PaymentPending:
		to = domain.PaymentCreated
	case domain.PaymentOverdue:
		if p.InstrumentID != nil {
			return sameInstrument(p, instrumentID)
		}
		to = domain.PaymentOverdue
	default:
		return sameInstrument(p, instrumentID)
	}

	ok, err := s.repo.SetInstrument(ctx, p.ID, p.Status, to, instrumentID, confirmation, s.clock.Now())
	if err != nil {
		return domain.MaturityPayment{}, err
	}
	if !ok {
		return domain.MaturityPayment{}, domain.ErrConflict
	}
	log.Infow("payment instrument recorded", "payment", p.ID, "instrument", instrumentID, "status", to)
	return s.repo.GetPayment(ctx, p.ID)
}

func sameInstrument(p domain.MaturityPayment, instrumentID string) (domain.MaturityPayment, error) {
	if p.InstrumentID != nil && *p.InstrumentID == instrumentID {
		return p, nil
	}
	return domain.MaturityPayment{}, fmt.Errorf("%w: payment %s is %s", domain.ErrInvalidTransition, p.ID, p.Status)
}

// ConfirmInstrumentCashed marks the payment cashed and the claim redeemed.
// Overdue payments are only accepted once the ledger shows the instrument
// cashed.
func (s *Service) ConfirmInstrumentCashed(ctx context.Context, paymentID string) (domain.MaturityPayment, error) {
	p, err := s.repo.GetPayment(ctx, paymentID)
	if err != nil {
		return domain.MaturityPayment{}, err
	}
	switch p.Status {
	case domain.PaymentCashed:
		return p, nil
	case domain.PaymentPending:
		return domain.MaturityPayment{}, fmt.Errorf("%w: no instrument recorded for payment %s", domain.ErrInvalidTransition, p.ID)
	case domain.PaymentOverdue:
		if p.InstrumentID == nil {
			return domain.MaturityPayment{}, fmt.Errorf("%w: no instrument recorded for overdue payment %s", domain.ErrInvalidTransition, p.ID)
		}
		if err := s.verifyCashed(ctx, *p.InstrumentID); err != nil {
			return domain.MaturityPayment{}, err
		}
	}

	ok, err := s.repo.MarkPaymentCashed(ctx, p.ID, p.Status, s.clock.Now())
	if err != nil {
		return domain.MaturityPayment{}, err
	}
	cur, err := s.repo.GetPayment(ctx, p.ID)
	if err != nil {
		return domain.MaturityPayment{}, err
	}
	if !ok {
		if cur.Status == domain.PaymentCashed {
			return cur, nil
		}
		return domain.MaturityPayment{}, domain.ErrConflict
	}
	log.Infow("maturity payment cashed", "payment", p.ID, "claim", p.ClaimID)
	s.emit(ctx, ports.EventMaturityCashed, p.ID, map[string]any{"claim_id": p.ClaimID, "amount": p.Amount.String()})
	return cur, nil
}

var errNotCashed = errors.New("instrument not cashed")

func (s *Service) verifyCashed(ctx context.Context, instrumentID string) error {
	var state ports.InstrumentState
	b := retry.WithMaxRetries(uint64(s.cfg.ReconcileAttempts), retry.NewConstant(s.cfg.ReconcileDelay))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		var err error
		state, err = s.ledger.InstrumentStatus(ctx, instrumentID)
		if err != nil && !errors.Is(err, domain.ErrRejected) {
			return retry.RetryableError(err)
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("verify instrument %s: %w", instrumentID, err)
	}
	if state != ports.InstrumentCashed {
		return fmt.Errorf("%w: %w: instrument %s is %s", domain.ErrInvalidTransition, errNotCashed, instrumentID, state)
	}
	return nil
}

// MarkOverduePayments escalates pending and created payments whose grace
// period after maturity has elapsed.
func (s *Service) MarkOverduePayments(ctx context.Context) (int, error) {
	now := s.clock.Now()
	ids, err := s.repo.MarkOverdue(ctx, now, s.cfg.GracePeriod)
	if err != nil {
		return 0, fmt.Errorf("mark overdue: %w", err)
	}
	for _, id := range ids {
		log.Warnw("maturity payment overdue", "payment", id)
		s.emit(ctx, ports.EventMaturityOverdue, id, nil)
	}
	return len(ids), nil
}

func (s *Service) emit(ctx context.Context, typ, id string, data map[string]any) {
	ev := ports.Event{Type: typ, EntityID: id, At: s.clock.Now(), Data: data}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Warnw("publish event", "type", typ, "id", id, "err", err)
	}
}
