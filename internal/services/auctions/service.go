package auctions

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	logging "github.com/ipfs/go-log/v2"
	"github.com/jonboulle/clockwork"
	"golang.org/x/sync/errgroup"

	"receivables/internal/domain"
	"receivables/internal/ports"
)

var log = logging.Logger("auctions")

// Repository is the part of the store the settlement engine reads and writes.
type Repository interface {
	ports.ClaimRepository
	ports.AuctionRepository
	ports.BidRepository
}

type Config struct {
	PlatformAccount string
	Currency        string
	LeaseTTL        time.Duration
	BatchSize       int
	Concurrency     int
	// Reconciliation re-queries after an indeterminate ledger call.
	ReconcileAttempts int
	ReconcileDelay    time.Duration
}

func (c Config) withDefaults() Config {
	if c.LeaseTTL <= 0 {
		c.LeaseTTL = 5 * time.Minute
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 100
	}
	if c.Concurrency <= 0 {
		c.Concurrency = 4
	}
	if c.ReconcileAttempts <= 0 {
		c.ReconcileAttempts = 3
	}
	if c.ReconcileDelay <= 0 {
		c.ReconcileDelay = 500 * time.Millisecond
	}
	return c
}

// Service is the auction settlement engine. It holds no state between calls;
// every finalize re-reads the auction and its bids.
type Service struct {
	repo     Repository
	leases   ports.Leaser
	ledger   ports.LedgerGateway
	events   ports.EventPublisher
	clock    clockwork.Clock
	cfg      Config
	instance string
}

func New(repo Repository, leases ports.Leaser, ledger ports.LedgerGateway, events ports.EventPublisher, clock clockwork.Clock, cfg Config) *Service {
	if events == nil {
		events = ports.NopPublisher{}
	}
	host, _ := os.Hostname()
	return &Service{
		repo:     repo,
		leases:   leases,
		ledger:   ledger,
		events:   events,
		clock:    clock,
		cfg:      cfg.withDefaults(),
		instance: fmt.Sprintf("%s-%d", host, os.Getpid()),
	}
}

// ListAuction puts an owned claim up for auction. With custody the claim is
// moved into the platform account before the auction is recorded.
func (s *Service) ListAuction(ctx context.Context, req ports.ListAuctionRequest) (domain.Auction, error) {
	now := s.clock.Now()
	if !req.MinBid.IsPositive() {
		return domain.Auction{}, fmt.Errorf("%w: min bid must be positive", domain.ErrInvalidTransition)
	}
	if !req.ExpiresAt.After(now) {
		return domain.Auction{}, fmt.Errorf("%w: expiry must be in the future", domain.ErrInvalidTransition)
	}
	claim, err := s.repo.GetClaim(ctx, req.ClaimID)
	if err != nil {
		return domain.Auction{}, err
	}
	if claim.Status != domain.ClaimOwned || claim.Holder != req.Seller {
		return domain.Auction{}, fmt.Errorf("%w: claim %s is %s held by %s", domain.ErrInvalidTransition, claim.ID, claim.Status, claim.Holder)
	}

	custodian := req.Seller
	if req.Custody {
		custodian = s.cfg.PlatformAccount
		if err := s.moveClaim(ctx, claim.ID, req.Seller, custodian); err != nil {
			return domain.Auction{}, fmt.Errorf("escrow claim: %w", err)
		}
	}

	a := domain.Auction{
		ID:            uuid.NewString(),
		ClaimID:       claim.ID,
		FaceValue:     claim.FaceValue,
		ExpiresAt:     req.ExpiresAt,
		MinBid:        req.MinBid,
		CurrentBid:    req.MinBid,
		OriginalOwner: req.Seller,
		Custody:       req.Custody,
		Status:        domain.AuctionActive,
		CreatedAt:     now,
	}
	if err := s.repo.CreateAuction(ctx, a, custodian); err != nil {
		if req.Custody {
			if rerr := s.moveClaim(ctx, claim.ID, custodian, req.Seller); rerr != nil {
				log.Errorw("return escrowed claim after failed listing", "claim", claim.ID, "err", rerr)
			}
		}
		return domain.Auction{}, err
	}
	log.Infow("auction listed", "auction", a.ID, "claim", a.ClaimID, "expires_at", a.ExpiresAt, "custody", a.Custody)
	return a, nil
}

// FinalizeAuction settles an expired auction. Terminal auctions return their
// recorded outcome; concurrent callers are serialized through a lease.
func (s *Service) FinalizeAuction(ctx context.Context, auctionID string) (domain.FinalizeResult, error) {
	a, err := s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return errorResult(auctionID, err), err
	}
	if a.Status.Terminal() {
		return domain.RecordedResult(a), nil
	}
	if !a.Expired(s.clock.Now()) {
		return domain.FinalizeResult{
			AuctionID: a.ID,
			Outcome:   domain.OutcomeNotExpired,
			Detail:    "auction expires at " + a.ExpiresAt.UTC().Format(time.RFC3339),
		}, nil
	}

	l := &lease{svc: s, key: ports.AuctionLeaseKey(a.ID), owner: s.instance + "/" + uuid.NewString()}
	ok, err := l.acquire(ctx)
	if err != nil {
		return errorResult(a.ID, err), err
	}
	if !ok {
		return domain.FinalizeResult{AuctionID: a.ID, Outcome: domain.OutcomeInProgress, Detail: "settlement in progress elsewhere"}, nil
	}
	defer l.release(ctx)

	// state may have moved while we waited for the lease
	a, err = s.repo.GetAuction(ctx, auctionID)
	if err != nil {
		return errorResult(auctionID, err), err
	}
	if a.Status.Terminal() {
		return domain.RecordedResult(a), nil
	}
	return s.settle(ctx, a, l)
}

// ProcessExpiredAuctions finalizes a batch of expired auctions and reports how
// many reached a terminal state in this pass.
func (s *Service) ProcessExpiredAuctions(ctx context.Context) (int, error) {
	ids, err := s.repo.ListExpiredAuctions(ctx, s.clock.Now(), s.cfg.BatchSize)
	if err != nil {
		return 0, fmt.Errorf("list expired auctions: %w", err)
	}
	var settled atomic.Int64
	var g errgroup.Group
	g.SetLimit(s.cfg.Concurrency)
	for _, id := range ids {
		g.Go(func() error {
			res, err := s.FinalizeAuction(ctx, id)
			if err != nil {
				log.Errorw("finalize failed", "auction", id, "err", err)
				return nil
			}
			if !res.Replayed && (res.Outcome == domain.OutcomeCompleted || res.Outcome == domain.OutcomeUnlisted) {
				settled.Add(1)
			}
			return nil
		})
	}
	_ = g.Wait()
	return int(settled.Load()), nil
}

func errorResult(id string, err error) domain.FinalizeResult {
	return domain.FinalizeResult{AuctionID: id, Outcome: domain.OutcomeError, Detail: err.Error()}
}

func (s *Service) emit(ctx context.Context, typ, id string, data map[string]any) {
	ev := ports.Event{Type: typ, EntityID: id, At: s.clock.Now(), Data: data}
	if err := s.events.Publish(ctx, ev); err != nil {
		log.Warnw("publish event", "type", typ, "id", id, "err", err)
	}
}

func rejected(err error) bool { return errors.Is(err, domain.ErrRejected) }
